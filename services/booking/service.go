package booking

import (
	"context"

	"catering/database"
	"catering/models"
	"catering/utils"

	"go.uber.org/zap"
)

func (s *DefaultBookingService) CreateBooking(ctx context.Context, req models.BookingRequest) (models.BookingCreated, error) {
	if err := validateRequest(req); err != nil {
		return models.BookingCreated{}, err
	}

	booking := newBooking(req)
	stored, err := s.Repo.Create(ctx, booking)
	if err != nil {
		if database.IsUnavailable(err) {
			utils.GetLogger().Warn("data store unavailable, booking not persisted",
				zap.String("booking_id", booking.ID), zap.Error(err))
			return models.BookingCreated{BookingID: booking.ID, Durable: false}, nil
		}
		return models.BookingCreated{}, storeError(err, booking.ID)
	}

	utils.GetLogger().Info("booking created",
		zap.String("booking_id", stored.ID), zap.String("event_date", stored.EventDate))
	return models.BookingCreated{BookingID: stored.ID, Durable: true}, nil
}

func (s *DefaultBookingService) ListBookings(ctx context.Context) ([]models.Booking, error) {
	bookings, err := s.Repo.GetAll(ctx)
	if err != nil {
		if database.IsUnavailable(err) {
			utils.GetLogger().Warn("data store unavailable, returning no bookings", zap.Error(err))
			return []models.Booking{}, nil
		}
		return nil, storeError(err, "")
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, id)
	}
	return booking, nil
}

func (s *DefaultBookingService) UpdateBooking(ctx context.Context, id string, update models.BookingUpdate) (*models.Booking, error) {
	cols, err := updateColumns(update)
	if err != nil {
		return nil, err
	}
	booking, err := s.Repo.Update(ctx, id, cols)
	if err != nil {
		return nil, storeError(err, id)
	}
	utils.GetLogger().Info("booking updated", zap.String("booking_id", id), zap.Int("fields", len(cols)))
	return booking, nil
}

func (s *DefaultBookingService) ApplyDepositPayment(ctx context.Context, id string, payment models.DepositPayment) (*models.Booking, error) {
	logger := utils.GetLogger().With(zap.String("booking_id", id), zap.String("session_id", payment.SessionID))

	current, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.DepositPaid && current.Status == models.BookingStatusDepositPaid {
		if current.StripeSessionID != nil && *current.StripeSessionID != payment.SessionID {
			logger.Warn("booking already paid by another session, keeping the recorded payment",
				zap.String("recorded_session_id", *current.StripeSessionID))
		} else {
			logger.Debug("deposit already recorded")
		}
		return current, nil
	}

	amount := payment.Amount
	session := payment.SessionID
	booking, err := s.Repo.Update(ctx, id, map[string]any{
		"status":            string(models.BookingStatusDepositPaid),
		"deposit_paid":      true,
		"deposit_amount":    amount,
		"stripe_session_id": session,
	})
	if err != nil {
		return nil, storeError(err, id)
	}
	logger.Info("deposit recorded", zap.Float64("amount", amount))
	return booking, nil
}
