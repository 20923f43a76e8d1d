package booking

import (
	"strings"

	"catering/models"
	"catering/utils"
)

// updateColumns turns a partial update into column values, rejecting values
// that would break the record's invariants.
func updateColumns(u models.BookingUpdate) (map[string]any, error) {
	cols := map[string]any{}

	required := []struct {
		column string
		value  *string
	}{
		{"client_name", u.ClientName},
		{"client_email", u.ClientEmail},
		{"client_phone", u.ClientPhone},
		{"event_location", u.EventLocation},
		{"event_date", u.EventDate},
	}
	for _, f := range required {
		if f.value == nil {
			continue
		}
		v := strings.TrimSpace(*f.value)
		if v == "" {
			return nil, &utils.ValidationError{Field: f.column, Msg: f.column + " must not be empty"}
		}
		cols[f.column] = v
	}

	for column, value := range map[string]*string{
		"arrival_time":      u.ArrivalTime,
		"power_water":       u.PowerWater,
		"dietary_notes":     u.DietaryNotes,
		"special_requests":  u.SpecialRequests,
		"buffet_package":    u.BuffetPackage,
		"stripe_session_id": u.StripeSessionID,
	} {
		if value != nil {
			cols[column] = optional(*value)
		}
	}

	for column, value := range map[string]*bool{
		"hog_roast_selected": u.HogRoastSelected,
		"pizza_selected":     u.PizzaSelected,
		"bar_selected":       u.BarSelected,
		"buffet_selected":    u.BuffetSelected,
		"canapes":            u.Canapes,
		"sandwiches":         u.Sandwiches,
		"cakes":              u.Cakes,
		"deposit_paid":       u.DepositPaid,
	} {
		if value != nil {
			cols[column] = *value
		}
	}

	services := []struct {
		selected *bool
		guests   models.GuestCount
		column   string
	}{
		{u.HogRoastSelected, u.HogRoastGuests, "hog_roast_guests"},
		{u.PizzaSelected, u.PizzaGuests, "pizza_guests"},
		{u.BarSelected, u.BarGuests, "bar_guests"},
		{u.BuffetSelected, u.BuffetGuests, "buffet_guests"},
	}
	for _, svc := range services {
		switch {
		case svc.selected != nil && !*svc.selected:
			// A guest count only means something while its service is selected.
			cols[svc.column] = nil
		case svc.guests.Valid:
			cols[svc.column] = svc.guests.N
		case svc.guests.Set:
			cols[svc.column] = nil
		}
	}

	if u.Status != nil {
		switch *u.Status {
		case models.BookingStatusPending, models.BookingStatusDepositPaid:
			cols["status"] = string(*u.Status)
		default:
			return nil, &utils.ValidationError{Field: "status", Msg: "Unknown status " + string(*u.Status)}
		}
	}

	if u.DepositAmount.Valid {
		if u.DepositAmount.Value < 0 {
			return nil, &utils.ValidationError{Field: "deposit_amount", Msg: "deposit_amount must not be negative"}
		}
		cols["deposit_amount"] = u.DepositAmount.Value
	}

	if len(cols) == 0 {
		return nil, &utils.ValidationError{Msg: "No fields to update"}
	}
	return cols, nil
}
