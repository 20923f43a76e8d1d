package bookingRepo

import (
	"context"
	"errors"

	"catering/models"
)

// ErrNotFound is returned when no booking matches the id.
var ErrNotFound = errors.New("booking not found")

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// Create inserts a new booking and returns the stored record.
	Create(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	// GetAll retrieves all bookings, newest first.
	GetAll(ctx context.Context) ([]models.Booking, error)
	// GetByID retrieves a booking by its id.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// Update applies a partial set of column values and returns the updated record.
	Update(ctx context.Context, id string, fields map[string]any) (*models.Booking, error)
}
