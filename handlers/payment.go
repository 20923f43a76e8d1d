package handlers

import (
	"io"
	"net/http"
	"strings"

	"catering/config"
	"catering/models"
	"catering/services/payment"
	"catering/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxWebhookBytes caps the webhook body read into memory.
const maxWebhookBytes = int64(65536)

// PaymentHandler serves the checkout, confirmation, webhook and refund endpoints.
type PaymentHandler struct {
	PaymentSvc payment.PaymentService
	Logger     *zap.Logger
}

func NewPaymentHandler(svc payment.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{PaymentSvc: svc, Logger: logger}
}

// CreateCheckoutSessionHandler handles POST /create-checkout-session.
func (h *PaymentHandler) CreateCheckoutSessionHandler(c *gin.Context) {
	var req models.CheckoutRequest
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	result, err := h.PaymentSvc.InitiateCheckout(c.Request.Context(), req, baseURL(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// PaymentSuccessHandler handles GET /payment-success, the processor's redirect
// target after a completed checkout.
func (h *PaymentHandler) PaymentSuccessHandler(c *gin.Context) {
	confirmation, err := h.PaymentSvc.ConfirmFromRedirect(
		c.Request.Context(),
		c.Query("session_id"),
		c.Query("booking_id"),
	)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, confirmation)
}

// PaymentCancelledHandler handles GET /payment-cancelled.
func (h *PaymentHandler) PaymentCancelledHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":    false,
		"message":    "Payment was cancelled. You can try again later.",
		"booking_id": c.Query("booking_id"),
	})
}

// WebhookHandler handles POST /webhook. The raw body is passed through
// untouched because the signature covers the exact bytes sent.
func (h *PaymentHandler) WebhookHandler(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBytes)
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.Logger.Warn("WebhookHandler: failed to read body", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, utils.CategoryValidation, "Invalid payload")
		return
	}

	if err := h.PaymentSvc.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// RefundHandler handles POST /refund.
func (h *PaymentHandler) RefundHandler(c *gin.Context) {
	var req models.RefundRequest
	if err := bindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	result, err := h.PaymentSvc.Refund(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// baseURL is where the processor sends the customer back to. PUBLIC_BASE_URL
// wins; otherwise it is rebuilt from the inbound request.
func baseURL(c *gin.Context) string {
	if base := strings.TrimRight(config.AppConfig.PublicBaseURL, "/"); base != "" {
		return base
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}
	return scheme + "://" + c.Request.Host
}
