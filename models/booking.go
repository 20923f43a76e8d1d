package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending     BookingStatus = "pending"
	BookingStatusDepositPaid BookingStatus = "deposit_paid"
)

// Booking represents a persisted booking record.
type Booking struct {
	ID string `bson:"id" json:"id"` // Opaque identifier assigned at creation

	// Client contact.
	ClientName  string `bson:"client_name" json:"client_name"`
	ClientEmail string `bson:"client_email" json:"client_email"`
	ClientPhone string `bson:"client_phone" json:"client_phone"`

	// Event.
	EventLocation string  `bson:"event_location" json:"event_location"`
	EventDate     string  `bson:"event_date" json:"event_date"`
	ArrivalTime   *string `bson:"arrival_time" json:"arrival_time"`
	PowerWater    *string `bson:"power_water" json:"power_water"`

	DietaryNotes    *string `bson:"dietary_notes" json:"dietary_notes"`
	SpecialRequests *string `bson:"special_requests" json:"special_requests"`

	// Service selections. A guest count is only kept when its service is selected.
	HogRoastSelected bool    `bson:"hog_roast_selected" json:"hog_roast_selected"`
	HogRoastGuests   *int    `bson:"hog_roast_guests" json:"hog_roast_guests"`
	PizzaSelected    bool    `bson:"pizza_selected" json:"pizza_selected"`
	PizzaGuests      *int    `bson:"pizza_guests" json:"pizza_guests"`
	BarSelected      bool    `bson:"bar_selected" json:"bar_selected"`
	BarGuests        *int    `bson:"bar_guests" json:"bar_guests"`
	BuffetSelected   bool    `bson:"buffet_selected" json:"buffet_selected"`
	BuffetGuests     *int    `bson:"buffet_guests" json:"buffet_guests"`
	BuffetPackage    *string `bson:"buffet_package" json:"buffet_package"`
	Canapes          bool    `bson:"canapes" json:"canapes"`
	Sandwiches       bool    `bson:"sandwiches" json:"sandwiches"`
	Cakes            bool    `bson:"cakes" json:"cakes"`

	// Lifecycle and payment.
	Status          BookingStatus `bson:"status" json:"status"`
	DepositPaid     bool          `bson:"deposit_paid" json:"deposit_paid"`
	DepositAmount   *float64      `bson:"deposit_amount" json:"deposit_amount"`
	StripeSessionID *string       `bson:"stripe_session_id" json:"stripe_session_id"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ServiceSelection holds the per-service selection flags sent by clients.
type ServiceSelection struct {
	HogRoast bool `json:"hogRoast"`
	Pizza    bool `json:"pizza"`
	Bar      bool `json:"bar"`
	Buffet   bool `json:"buffet"`
}

// BookingRequest is the inbound payload for POST /bookings. Required fields
// are checked by the booking service, not by binding tags, so the error names
// the first missing field.
type BookingRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	EventDate string `json:"eventDate"`

	ArrivalTime     string `json:"arrivalTime"`
	PowerWater      string `json:"powerWater"`
	DietaryNotes    string `json:"dietaryNotes"`
	SpecialRequests string `json:"specialRequests"`

	Services       ServiceSelection `json:"services"`
	HogRoastGuests GuestCount       `json:"hogRoastGuests"`
	PizzaGuests    GuestCount       `json:"pizzaGuests"`
	BarGuests      GuestCount       `json:"barGuests"`
	BuffetGuests   GuestCount       `json:"buffetGuests"`
	BuffetPackage  string           `json:"buffetPackage"`
	Canapes        bool             `json:"canapes"`
	Sandwiches     bool             `json:"sandwiches"`
	Cakes          bool             `json:"cakes"`
}

// BookingCreated is returned by a create. Durable is false when the store was
// unavailable and the id was generated without persisting anything.
type BookingCreated struct {
	BookingID string `json:"booking_id"`
	Durable   bool   `json:"durable"`
}

// DepositPayment carries the fields written when a deposit is confirmed.
type DepositPayment struct {
	Amount    float64
	SessionID string
}

// BookingUpdate is the inbound payload for PUT /bookings/{id}. Keys use the
// record's column names; absent keys are left untouched.
type BookingUpdate struct {
	ClientName      *string `json:"client_name"`
	ClientEmail     *string `json:"client_email"`
	ClientPhone     *string `json:"client_phone"`
	EventLocation   *string `json:"event_location"`
	EventDate       *string `json:"event_date"`
	ArrivalTime     *string `json:"arrival_time"`
	PowerWater      *string `json:"power_water"`
	DietaryNotes    *string `json:"dietary_notes"`
	SpecialRequests *string `json:"special_requests"`

	HogRoastSelected *bool      `json:"hog_roast_selected"`
	HogRoastGuests   GuestCount `json:"hog_roast_guests"`
	PizzaSelected    *bool      `json:"pizza_selected"`
	PizzaGuests      GuestCount `json:"pizza_guests"`
	BarSelected      *bool      `json:"bar_selected"`
	BarGuests        GuestCount `json:"bar_guests"`
	BuffetSelected   *bool      `json:"buffet_selected"`
	BuffetGuests     GuestCount `json:"buffet_guests"`
	BuffetPackage    *string    `json:"buffet_package"`
	Canapes          *bool      `json:"canapes"`
	Sandwiches       *bool      `json:"sandwiches"`
	Cakes            *bool      `json:"cakes"`

	Status          *BookingStatus `json:"status"`
	DepositPaid     *bool          `json:"deposit_paid"`
	DepositAmount   Amount         `json:"deposit_amount"`
	StripeSessionID *string        `json:"stripe_session_id"`
}
