package booking

import (
	"strings"

	"catering/models"
	"catering/utils"

	"github.com/google/uuid"
)

// validateRequest reports the first missing required field, in form order.
func validateRequest(req models.BookingRequest) error {
	required := []struct {
		name  string
		value string
	}{
		{"name", req.Name},
		{"email", req.Email},
		{"phone", req.Phone},
		{"location", req.Location},
		{"eventDate", req.EventDate},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return utils.MissingField(f.name)
		}
	}
	return nil
}

// newBooking maps a validated request onto a pending booking record.
func newBooking(req models.BookingRequest) *models.Booking {
	b := &models.Booking{
		ID:              uuid.NewString(),
		ClientName:      strings.TrimSpace(req.Name),
		ClientEmail:     strings.TrimSpace(req.Email),
		ClientPhone:     strings.TrimSpace(req.Phone),
		EventLocation:   strings.TrimSpace(req.Location),
		EventDate:       strings.TrimSpace(req.EventDate),
		ArrivalTime:     optional(req.ArrivalTime),
		PowerWater:      optional(req.PowerWater),
		DietaryNotes:    optional(req.DietaryNotes),
		SpecialRequests: optional(req.SpecialRequests),

		HogRoastSelected: req.Services.HogRoast,
		PizzaSelected:    req.Services.Pizza,
		BarSelected:      req.Services.Bar,
		BuffetSelected:   req.Services.Buffet,

		Status:      models.BookingStatusPending,
		DepositPaid: false,
	}

	if b.HogRoastSelected {
		b.HogRoastGuests = req.HogRoastGuests.Ptr()
	}
	if b.PizzaSelected {
		b.PizzaGuests = req.PizzaGuests.Ptr()
	}
	if b.BarSelected {
		b.BarGuests = req.BarGuests.Ptr()
	}
	if b.BuffetSelected {
		b.BuffetGuests = req.BuffetGuests.Ptr()
		b.BuffetPackage = optional(req.BuffetPackage)
		b.Canapes = req.Canapes
		b.Sandwiches = req.Sandwiches
		b.Cakes = req.Cakes
	}
	return b
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
