package payment

import (
	"context"

	"catering/models"
)

// CheckoutParams describes a single-line hosted checkout.
type CheckoutParams struct {
	AmountMinor   int64
	Currency      string
	ProductName   string
	Description   string
	CustomerEmail string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

// Refund is the processor's record of a refund.
type Refund struct {
	ID          string
	AmountMinor int64
	Status      string
}

// Gateway is the payment processor as seen by the orchestrator.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*models.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, id string) (*models.CheckoutSession, error)
	// CreateRefund refunds a payment. amountMinor of zero refunds the full amount.
	CreateRefund(ctx context.Context, paymentIntentID string, amountMinor int64, reason string) (*Refund, error)
	// VerifyEvent checks the signature header before decoding the payload.
	VerifyEvent(payload []byte, signatureHeader string) (*models.PaymentEvent, error)
}
