package routes

import (
	"time"

	"catering/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterCatalogRoutes registers the price, allergen and quote endpoints.
func RegisterCatalogRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/prices", hb.GetPricesHandler)
	r.GET("/prices/:serviceType", hb.GetPricesByServiceHandler)
	r.POST("/quote", hb.CalculateQuoteHandler)

	allergens := r.Group("/allergens")
	{
		allergens.GET("", hb.GetAllergensHandler)
		allergens.GET("/matrix", hb.GetAllergenMatrixHandler)
		allergens.GET("/:serviceType", hb.GetAllergensByServiceHandler)
	}
}

// RegisterBookingRoutes registers the booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookings := r.Group("/bookings")
	{
		bookings.POST("", hb.CreateBookingHandler)
		bookings.GET("", hb.ListBookingsHandler)
		bookings.GET("/:id", hb.GetBookingHandler)
		bookings.PUT("/:id", hb.UpdateBookingHandler)
	}
}

// RegisterPaymentRoutes registers checkout, redirect, webhook and refund endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/create-checkout-session", hb.CreateCheckoutSessionHandler)
	r.GET("/payment-success", hb.PaymentSuccessHandler)
	r.GET("/payment-cancelled", hb.PaymentCancelledHandler)
	r.POST("/webhook", hb.WebhookHandler)
	r.POST("/refund", hb.RefundHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, origins []string) {
	corsConfig := cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Stripe-Signature", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", handlers.CatalogSourceHeader, "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 1 && origins[0] == "*" {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowCredentials = true
	}
	r.Use(cors.New(corsConfig))

	RegisterCatalogRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
