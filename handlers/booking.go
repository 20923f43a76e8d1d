package handlers

import (
	"net/http"

	"catering/models"
	"catering/services/booking"
	"catering/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the booking endpoints.
type BookingHandler struct {
	BookingSvc booking.BookingService
	Logger     *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{BookingSvc: svc, Logger: logger}
}

// CreateBookingHandler handles POST /bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var req models.BookingRequest
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	created, err := h.BookingSvc.CreateBooking(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	message := "Booking request submitted successfully"
	if !created.Durable {
		message = "Booking request received (development mode)"
		h.Logger.Warn("CreateBookingHandler: booking not persisted", zap.String("bookingID", created.BookingID))
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    message,
		"booking_id": created.BookingID,
	})
}

// ListBookingsHandler handles GET /bookings.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	bookings, err := h.BookingSvc.ListBookings(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GetBookingHandler handles GET /bookings/:id.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	b, err := h.BookingSvc.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// UpdateBookingHandler handles PUT /bookings/:id.
func (h *BookingHandler) UpdateBookingHandler(c *gin.Context) {
	var update models.BookingUpdate
	if err := bindJSON(c, &update); err != nil {
		utils.RespondError(c, err)
		return
	}

	b, err := h.BookingSvc.UpdateBooking(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking updated successfully",
		"booking": b,
	})
}
