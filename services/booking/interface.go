package booking

import (
	"context"

	bookingRepo "catering/database/repository/booking"
	"catering/models"
)

// BookingService defines the booking lifecycle operations exposed to handlers
// and to the payment orchestrator.
type BookingService interface {
	CreateBooking(ctx context.Context, req models.BookingRequest) (models.BookingCreated, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	UpdateBooking(ctx context.Context, id string, update models.BookingUpdate) (*models.Booking, error)
	// ApplyDepositPayment moves a booking to deposit_paid. Applying the same
	// payment more than once leaves the record unchanged.
	ApplyDepositPayment(ctx context.Context, id string, payment models.DepositPayment) (*models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo bookingRepo.BookingRepository
}

func NewBookingService(repo bookingRepo.BookingRepository) *DefaultBookingService {
	return &DefaultBookingService{Repo: repo}
}
