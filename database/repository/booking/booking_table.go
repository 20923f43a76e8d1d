package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"catering/database"
	"catering/models"
)

const bookingsTable = "bookings"

// TableBookingRepo implements BookingRepository on the generic table client.
type TableBookingRepo struct {
	client database.TableClient
}

// NewTableBookingRepo creates a booking repository backed by client.
func NewTableBookingRepo(client database.TableClient) BookingRepository {
	return &TableBookingRepo{client: client}
}

func (r *TableBookingRepo) Create(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	now := time.Now().UTC()
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = now
	}
	booking.UpdatedAt = now

	rows, err := r.client.Insert(ctx, bookingsTable, bookingToRow(booking))
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("failed to create booking: no row returned")
	}
	var stored models.Booking
	if err := rows[0].Decode(&stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *TableBookingRepo) GetAll(ctx context.Context) ([]models.Booking, error) {
	rows, err := r.client.Select(ctx, database.From(bookingsTable).Order("created_at", true))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return database.DecodeRows[models.Booking](rows)
}

func (r *TableBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	rows, err := r.client.Select(ctx, database.From(bookingsTable).Eq("id", id))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	var booking models.Booking
	if err := rows[0].Decode(&booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *TableBookingRepo) Update(ctx context.Context, id string, fields map[string]any) (*models.Booking, error) {
	values := make(database.Row, len(fields)+1)
	for k, v := range fields {
		values[k] = v
	}
	values["updated_at"] = time.Now().UTC()

	rows, err := r.client.Update(ctx, database.From(bookingsTable).Eq("id", id), values)
	if err != nil {
		return nil, fmt.Errorf("failed to update booking with id %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	var booking models.Booking
	if err := rows[0].Decode(&booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// bookingToRow lists every column explicitly so timestamps stay native values
// for both backends.
func bookingToRow(b *models.Booking) database.Row {
	return database.Row{
		"id":                 b.ID,
		"client_name":        b.ClientName,
		"client_email":       b.ClientEmail,
		"client_phone":       b.ClientPhone,
		"event_location":     b.EventLocation,
		"event_date":         b.EventDate,
		"arrival_time":       b.ArrivalTime,
		"power_water":        b.PowerWater,
		"dietary_notes":      b.DietaryNotes,
		"special_requests":   b.SpecialRequests,
		"hog_roast_selected": b.HogRoastSelected,
		"hog_roast_guests":   b.HogRoastGuests,
		"pizza_selected":     b.PizzaSelected,
		"pizza_guests":       b.PizzaGuests,
		"bar_selected":       b.BarSelected,
		"bar_guests":         b.BarGuests,
		"buffet_selected":    b.BuffetSelected,
		"buffet_guests":      b.BuffetGuests,
		"buffet_package":     b.BuffetPackage,
		"canapes":            b.Canapes,
		"sandwiches":         b.Sandwiches,
		"cakes":              b.Cakes,
		"status":             string(b.Status),
		"deposit_paid":       b.DepositPaid,
		"deposit_amount":     b.DepositAmount,
		"stripe_session_id":  b.StripeSessionID,
		"created_at":         b.CreatedAt,
		"updated_at":         b.UpdatedAt,
	}
}
