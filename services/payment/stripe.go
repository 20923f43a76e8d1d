package payment

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"catering/models"
	"catering/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

const processorName = "Payment processor"

var errNotConfigured = errors.New("stripe secret key not configured")

// StripeGateway implements Gateway with the Stripe API.
type StripeGateway struct {
	api           *client.API
	webhookSecret string
}

// NewStripeGateway builds a gateway. backends may be nil to use the live API.
// An empty key yields a gateway whose API calls fail with an upstream error,
// while webhook verification still works when a secret is set.
func NewStripeGateway(secretKey, webhookSecret string, backends *stripe.Backends) *StripeGateway {
	g := &StripeGateway{webhookSecret: webhookSecret}
	if secretKey != "" {
		g.api = client.New(secretKey, backends)
	}
	return g
}

// NewStripeBackends routes Stripe's own logging through zap.
func NewStripeBackends() *stripe.Backends {
	return stripe.NewBackendsWithConfig(&stripe.BackendConfig{
		LeveledLogger: utils.GetLogger().Sugar(),
	})
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, p CheckoutParams) (*models.CheckoutSession, error) {
	if g.api == nil {
		return nil, &utils.UpstreamError{Service: processorName, Err: errNotConfigured}
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(strings.ToLower(p.Currency)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:        stripe.String(p.ProductName),
					Description: stripe.String(p.Description),
				},
				UnitAmount: stripe.Int64(p.AmountMinor),
			},
			Quantity: stripe.Int64(1),
		}},
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(p.CustomerEmail),
		SuccessURL:    stripe.String(p.SuccessURL),
		CancelURL:     stripe.String(p.CancelURL),
	}
	params.Context = ctx
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}

	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, processorError(err)
	}
	return toSession(s), nil
}

func (g *StripeGateway) GetCheckoutSession(ctx context.Context, id string) (*models.CheckoutSession, error) {
	if g.api == nil {
		return nil, &utils.UpstreamError{Service: processorName, Err: errNotConfigured}
	}
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	s, err := g.api.CheckoutSessions.Get(id, params)
	if err != nil {
		return nil, processorError(err)
	}
	return toSession(s), nil
}

func (g *StripeGateway) CreateRefund(ctx context.Context, paymentIntentID string, amountMinor int64, reason string) (*Refund, error) {
	if g.api == nil {
		return nil, &utils.UpstreamError{Service: processorName, Err: errNotConfigured}
	}
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
		Reason:        stripe.String(reason),
	}
	if amountMinor > 0 {
		params.Amount = stripe.Int64(amountMinor)
	}
	params.Context = ctx

	r, err := g.api.Refunds.New(params)
	if err != nil {
		return nil, processorError(err)
	}
	return &Refund{ID: r.ID, AmountMinor: r.Amount, Status: string(r.Status)}, nil
}

func (g *StripeGateway) VerifyEvent(payload []byte, signatureHeader string) (*models.PaymentEvent, error) {
	if g.webhookSecret == "" {
		return nil, &utils.SignatureError{Msg: "Webhook secret not configured"}
	}
	if signatureHeader == "" {
		return nil, &utils.SignatureError{Msg: "Invalid signature", Err: webhook.ErrNotSigned}
	}

	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		switch {
		case errors.Is(err, webhook.ErrNotSigned),
			errors.Is(err, webhook.ErrInvalidHeader),
			errors.Is(err, webhook.ErrNoValidSignature),
			errors.Is(err, webhook.ErrTooOld):
			return nil, &utils.SignatureError{Msg: "Invalid signature", Err: err}
		}
		return nil, &utils.SignatureError{Msg: "Invalid payload", Err: err}
	}

	out := &models.PaymentEvent{ID: event.ID, Type: string(event.Type)}
	if event.Data == nil {
		return out, nil
	}

	switch {
	case strings.HasPrefix(out.Type, "checkout.session."):
		var s stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
			return nil, &utils.SignatureError{Msg: "Invalid payload", Err: err}
		}
		out.Session = toSession(&s)
		out.Metadata = out.Session.Metadata
	case strings.HasPrefix(out.Type, "payment_intent."):
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return nil, &utils.SignatureError{Msg: "Invalid payload", Err: err}
		}
		out.PaymentIntentID = pi.ID
		out.Metadata = pi.Metadata
		if pi.LastPaymentError != nil {
			out.FailureMessage = pi.LastPaymentError.Msg
		}
	}
	return out, nil
}

func toSession(s *stripe.CheckoutSession) *models.CheckoutSession {
	out := &models.CheckoutSession{
		ID:            s.ID,
		URL:           s.URL,
		PaymentStatus: string(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
		Metadata:      s.Metadata,
	}
	if s.PaymentIntent != nil {
		out.PaymentIntentID = s.PaymentIntent.ID
	}
	if out.Metadata == nil {
		out.Metadata = map[string]string{}
	}
	return out
}

// processorError separates errors reported by Stripe from transport failures.
func processorError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return &utils.ProcessorError{
			Code:   string(stripeErr.Code),
			Msg:    stripeErr.Msg,
			Status: stripeErr.HTTPStatusCode,
			Err:    err,
		}
	}
	return &utils.UpstreamError{Service: processorName, Err: err}
}
