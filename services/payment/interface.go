package payment

import (
	"context"

	"catering/models"
	"catering/services/booking"
	"catering/services/tasks"
)

// PaymentService orchestrates deposit checkout, confirmation and refunds.
type PaymentService interface {
	// InitiateCheckout opens a hosted checkout for a booking deposit. baseURL
	// is where the processor redirects the customer afterwards.
	InitiateCheckout(ctx context.Context, req models.CheckoutRequest, baseURL string) (*models.CheckoutResult, error)
	// ConfirmFromRedirect asks the processor for the session status and records
	// the deposit only when it reports the session as paid.
	ConfirmFromRedirect(ctx context.Context, sessionID, bookingID string) (*models.PaymentConfirmation, error)
	// HandleWebhook verifies and applies a processor notification.
	HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error
	Refund(ctx context.Context, req models.RefundRequest) (*models.RefundResult, error)
}

// AlertSink receives payment failure alerts.
type AlertSink interface {
	EnqueuePaymentFailed(ctx context.Context, payload tasks.PaymentFailedPayload) error
}

// DefaultPaymentService implements PaymentService.
type DefaultPaymentService struct {
	Gateway  Gateway
	Bookings booking.BookingService
	Alerts   AlertSink // optional
}

func NewPaymentService(gateway Gateway, bookings booking.BookingService, alerts AlertSink) *DefaultPaymentService {
	return &DefaultPaymentService{Gateway: gateway, Bookings: bookings, Alerts: alerts}
}
