package models

// QuoteRequest is the inbound payload for POST /quote.
type QuoteRequest struct {
	Services       ServiceSelection `json:"services"`
	HogRoastGuests GuestCount       `json:"hogRoastGuests"`
	PizzaGuests    GuestCount       `json:"pizzaGuests"`
	BuffetGuests   GuestCount       `json:"buffetGuests"`
	BuffetPackage  string           `json:"buffetPackage"`
}

// LineItem is one priced service in a quote breakdown.
type LineItem struct {
	Service      string  `json:"service"`
	Quantity     int     `json:"quantity"`
	Unit         string  `json:"unit"`
	PricePerUnit float64 `json:"price_per_unit"`
	Total        float64 `json:"total"`
	Note         string  `json:"note,omitempty"`
}

// Quote is a derived, non-persisted price estimate.
type Quote struct {
	TotalQuote    float64    `json:"total_quote"`
	DepositAmount float64    `json:"deposit_amount"`
	Breakdown     []LineItem `json:"breakdown"`
	Currency      string     `json:"currency"`
}
