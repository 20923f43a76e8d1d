package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Catalog endpoints
	GetPricesHandler             gin.HandlerFunc
	GetPricesByServiceHandler    gin.HandlerFunc
	GetAllergensHandler          gin.HandlerFunc
	GetAllergensByServiceHandler gin.HandlerFunc
	GetAllergenMatrixHandler     gin.HandlerFunc
	CalculateQuoteHandler        gin.HandlerFunc

	// Booking endpoints
	CreateBookingHandler gin.HandlerFunc
	ListBookingsHandler  gin.HandlerFunc
	GetBookingHandler    gin.HandlerFunc
	UpdateBookingHandler gin.HandlerFunc

	// Payment endpoints
	CreateCheckoutSessionHandler gin.HandlerFunc
	PaymentSuccessHandler        gin.HandlerFunc
	PaymentCancelledHandler      gin.HandlerFunc
	WebhookHandler               gin.HandlerFunc
	RefundHandler                gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}
