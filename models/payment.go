package models

// CheckoutRequest is the inbound payload for POST /create-checkout-session.
type CheckoutRequest struct {
	BookingID     string `json:"booking_id"`
	Amount        Amount `json:"amount"`
	CustomerEmail string `json:"customer_email"`
	CustomerName  string `json:"customer_name"`
}

// CheckoutSession is the processor's view of a hosted checkout.
type CheckoutSession struct {
	ID              string
	URL             string
	PaymentStatus   string // "paid", "unpaid" or "no_payment_required"
	AmountTotal     int64  // minor units
	Currency        string
	PaymentIntentID string
	Metadata        map[string]string
}

// CheckoutResult is returned to the client after opening a checkout.
type CheckoutResult struct {
	CheckoutURL string `json:"checkout_url"`
	SessionID   string `json:"session_id"`
}

// PaymentConfirmation is returned when a redirect confirms a deposit.
type PaymentConfirmation struct {
	Success    bool    `json:"success"`
	Message    string  `json:"message"`
	BookingID  string  `json:"booking_id"`
	AmountPaid float64 `json:"amount_paid"`
}

// RefundRequest is the inbound payload for POST /refund.
type RefundRequest struct {
	SessionID string `json:"session_id"`
	Amount    Amount `json:"amount"` // optional partial refund, major units
	Reason    string `json:"reason"`
}

// RefundResult reports the refund recorded by the processor.
type RefundResult struct {
	Success  bool    `json:"success"`
	RefundID string  `json:"refund_id"`
	Amount   float64 `json:"amount"`
	Status   string  `json:"status"`
}

// PaymentEvent is a verified webhook notification.
type PaymentEvent struct {
	ID      string
	Type    string
	Session *CheckoutSession // set for checkout.session.* events
	// PaymentIntentID and FailureMessage are set for payment_intent.* events.
	PaymentIntentID string
	FailureMessage  string
	Metadata        map[string]string
}

// Webhook event types handled by the orchestrator.
const (
	EventCheckoutSessionCompleted = "checkout.session.completed"
	EventPaymentIntentFailed      = "payment_intent.payment_failed"
)
