package payment

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"catering/models"
	"catering/services/pricing"
	"catering/services/tasks"
	"catering/utils"

	"go.uber.org/zap"
)

const (
	productName = "Little Jonny's Catering - Booking Deposit"

	paymentTypeDeposit = "deposit"
	sessionPaid        = "paid"

	DefaultRefundReason = "requested_by_customer"
)

var refundReasons = map[string]bool{
	"duplicate":             true,
	"fraudulent":            true,
	"requested_by_customer": true,
}

func (s *DefaultPaymentService) InitiateCheckout(ctx context.Context, req models.CheckoutRequest, baseURL string) (*models.CheckoutResult, error) {
	bookingID := strings.TrimSpace(req.BookingID)
	switch {
	case bookingID == "":
		return nil, utils.MissingField("booking_id")
	case !req.Amount.Valid:
		return nil, utils.MissingField("amount")
	case strings.TrimSpace(req.CustomerEmail) == "":
		return nil, utils.MissingField("customer_email")
	case strings.TrimSpace(req.CustomerName) == "":
		return nil, utils.MissingField("customer_name")
	}

	amount := ToMinorUnits(req.Amount.Value)
	if amount <= 0 {
		return nil, &utils.ValidationError{Field: "amount", Msg: "Amount must be greater than zero"}
	}

	base := strings.TrimRight(baseURL, "/")
	escaped := url.QueryEscape(bookingID)
	session, err := s.Gateway.CreateCheckoutSession(ctx, CheckoutParams{
		AmountMinor:   amount,
		Currency:      pricing.Currency,
		ProductName:   productName,
		Description:   "Deposit for booking #" + bookingID,
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		// {CHECKOUT_SESSION_ID} is substituted by the processor.
		SuccessURL: base + "/payment-success?session_id={CHECKOUT_SESSION_ID}&booking_id=" + escaped,
		CancelURL:  base + "/payment-cancelled?booking_id=" + escaped,
		Metadata: map[string]string{
			"booking_id":    bookingID,
			"customer_name": strings.TrimSpace(req.CustomerName),
			"payment_type":  paymentTypeDeposit,
		},
	})
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("checkout session created",
		zap.String("booking_id", bookingID),
		zap.String("session_id", session.ID),
		zap.Int64("amount_minor", amount))
	return &models.CheckoutResult{CheckoutURL: session.URL, SessionID: session.ID}, nil
}

func (s *DefaultPaymentService) ConfirmFromRedirect(ctx context.Context, sessionID, bookingID string) (*models.PaymentConfirmation, error) {
	if sessionID == "" || bookingID == "" {
		return nil, &utils.ValidationError{Msg: "Missing session_id or booking_id"}
	}

	session, err := s.Gateway.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.PaymentStatus != sessionPaid {
		return nil, &utils.ValidationError{Msg: "Payment not completed"}
	}
	if owner := session.Metadata["booking_id"]; owner != "" && owner != bookingID {
		return nil, &utils.ValidationError{Field: "booking_id", Msg: "booking_id does not match the checkout session"}
	}

	amount := FromMinorUnits(session.AmountTotal)
	_, err = s.Bookings.ApplyDepositPayment(ctx, bookingID, models.DepositPayment{Amount: amount, SessionID: session.ID})
	if err != nil {
		var upstream *utils.UpstreamError
		if errors.As(err, &upstream) && upstream.Unavailable {
			utils.GetLogger().Warn("payment confirmed but data store unavailable",
				zap.String("booking_id", bookingID), zap.String("session_id", session.ID))
			return &models.PaymentConfirmation{
				Success:    true,
				Message:    "Payment successful! (Development mode)",
				BookingID:  bookingID,
				AmountPaid: amount,
			}, nil
		}
		return nil, err
	}

	return &models.PaymentConfirmation{
		Success:    true,
		Message:    "Payment successful! Your booking deposit has been received.",
		BookingID:  bookingID,
		AmountPaid: amount,
	}, nil
}

func (s *DefaultPaymentService) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	event, err := s.Gateway.VerifyEvent(payload, signatureHeader)
	if err != nil {
		return err
	}
	logger := utils.GetLogger().With(zap.String("event_id", event.ID), zap.String("event_type", event.Type))

	switch event.Type {
	case models.EventCheckoutSessionCompleted:
		return s.completeCheckout(ctx, event, logger)
	case models.EventPaymentIntentFailed:
		s.paymentFailed(ctx, event, logger)
	default:
		logger.Debug("ignoring webhook event")
	}
	return nil
}

// completeCheckout applies the deposit for a completed session. Events that
// cannot be matched to a booking are acknowledged so they are not redelivered.
func (s *DefaultPaymentService) completeCheckout(ctx context.Context, event *models.PaymentEvent, logger *zap.Logger) error {
	session := event.Session
	if session == nil {
		logger.Warn("checkout event without a session object")
		return nil
	}
	bookingID := session.Metadata["booking_id"]
	if bookingID == "" {
		logger.Warn("checkout session has no booking_id metadata", zap.String("session_id", session.ID))
		return nil
	}
	if session.PaymentStatus != sessionPaid {
		logger.Info("checkout completed without payment, waiting for settlement",
			zap.String("booking_id", bookingID), zap.String("payment_status", session.PaymentStatus))
		return nil
	}

	_, err := s.Bookings.ApplyDepositPayment(ctx, bookingID, models.DepositPayment{
		Amount:    FromMinorUnits(session.AmountTotal),
		SessionID: session.ID,
	})
	if err != nil {
		var notFound *utils.NotFoundError
		if errors.As(err, &notFound) {
			logger.Warn("webhook references unknown booking", zap.String("booking_id", bookingID))
			return nil
		}
		logger.Error("failed to record deposit", zap.String("booking_id", bookingID), zap.Error(err))
		return err
	}
	return nil
}

func (s *DefaultPaymentService) paymentFailed(ctx context.Context, event *models.PaymentEvent, logger *zap.Logger) {
	logger.Warn("payment failed",
		zap.String("payment_intent_id", event.PaymentIntentID),
		zap.String("booking_id", event.Metadata["booking_id"]),
		zap.String("reason", event.FailureMessage))

	if s.Alerts == nil {
		return
	}
	err := s.Alerts.EnqueuePaymentFailed(ctx, tasks.PaymentFailedPayload{
		EventID:         event.ID,
		PaymentIntentID: event.PaymentIntentID,
		BookingID:       event.Metadata["booking_id"],
		FailureMessage:  event.FailureMessage,
		OccurredAt:      time.Now().UTC(),
	})
	if err != nil {
		logger.Error("failed to enqueue payment alert", zap.Error(err))
	}
}

func (s *DefaultPaymentService) Refund(ctx context.Context, req models.RefundRequest) (*models.RefundResult, error) {
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		return nil, &utils.ValidationError{Field: "session_id", Msg: "Missing session_id"}
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = DefaultRefundReason
	}
	if !refundReasons[reason] {
		return nil, &utils.ValidationError{Field: "reason", Msg: "Unsupported refund reason: " + reason}
	}

	var amount int64
	if req.Amount.Valid {
		amount = ToMinorUnits(req.Amount.Value)
		if amount <= 0 {
			return nil, &utils.ValidationError{Field: "amount", Msg: "Amount must be greater than zero"}
		}
	}

	session, err := s.Gateway.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.PaymentIntentID == "" {
		return nil, &utils.ValidationError{Field: "session_id", Msg: "Checkout session has no payment to refund"}
	}

	refund, err := s.Gateway.CreateRefund(ctx, session.PaymentIntentID, amount, reason)
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Info("refund created",
		zap.String("session_id", sessionID),
		zap.String("refund_id", refund.ID),
		zap.Int64("amount_minor", refund.AmountMinor),
		zap.String("status", refund.Status))
	return &models.RefundResult{
		Success:  true,
		RefundID: refund.ID,
		Amount:   FromMinorUnits(refund.AmountMinor),
		Status:   refund.Status,
	}, nil
}
