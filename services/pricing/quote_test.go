package pricing

import (
	"encoding/json"
	"testing"

	"catering/models"
	"catering/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateQuote_HogRoastOnly(t *testing.T) {
	q, err := CalculateQuote(models.QuoteRequest{
		Services:       models.ServiceSelection{HogRoast: true},
		HogRoastGuests: models.Guests(60),
	})
	require.NoError(t, err)

	require.Len(t, q.Breakdown, 1)
	assert.Equal(t, models.LineItem{
		Service:      "Hog Roast Catering",
		Quantity:     60,
		Unit:         "person",
		PricePerUnit: 8.50,
		Total:        510.00,
	}, q.Breakdown[0])
	assert.Equal(t, 510.00, q.TotalQuote)
	assert.Equal(t, 500.00, q.DepositAmount)
	assert.Equal(t, "GBP", q.Currency)
}

func TestCalculateQuote_BarAloneUsesDepositFloor(t *testing.T) {
	q, err := CalculateQuote(models.QuoteRequest{Services: models.ServiceSelection{Bar: true}})
	require.NoError(t, err)

	require.Len(t, q.Breakdown, 1)
	assert.Equal(t, "event", q.Breakdown[0].Unit)
	assert.Equal(t, 300.00, q.TotalQuote)
	assert.Equal(t, 500.00, q.DepositAmount)
}

func TestCalculateQuote_HogRoastZeroGuestsExcluded(t *testing.T) {
	q, err := CalculateQuote(models.QuoteRequest{
		Services:       models.ServiceSelection{HogRoast: true},
		HogRoastGuests: models.Guests(0),
	})
	require.NoError(t, err)
	assert.Empty(t, q.Breakdown)
	assert.Equal(t, 0.0, q.TotalQuote)
	assert.Equal(t, 500.00, q.DepositAmount)
}

func TestCalculateQuote_Pizza(t *testing.T) {
	tests := []struct {
		name   string
		guests int
		pizzas int
		total  float64
	}{
		{"zero guests still gets one pizza", 0, 1, 12.00},
		{"one guest", 1, 1, 12.00},
		{"odd guests floor", 3, 4, 48.00},
		{"hundred guests", 100, 150, 1800.00},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := CalculateQuote(models.QuoteRequest{
				Services:    models.ServiceSelection{Pizza: true},
				PizzaGuests: models.Guests(tt.guests),
			})
			require.NoError(t, err)
			require.Len(t, q.Breakdown, 1)
			assert.Equal(t, tt.pizzas, q.Breakdown[0].Quantity)
			assert.Equal(t, tt.total, q.Breakdown[0].Total)
			assert.NotEmpty(t, q.Breakdown[0].Note)
		})
	}
}

func TestCalculateQuote_PizzaWithoutGuestCountExcluded(t *testing.T) {
	q, err := CalculateQuote(models.QuoteRequest{Services: models.ServiceSelection{Pizza: true}})
	require.NoError(t, err)
	assert.Empty(t, q.Breakdown)
}

func TestCalculateQuote_BuffetPackages(t *testing.T) {
	tests := []struct {
		pkg   string
		rate  float64
		label string
	}{
		{"package1", 6.50, "Buffet Catering (Package 1)"},
		{"package2", 8.50, "Buffet Catering (Package 2)"},
		{"package3", 12.50, "Buffet Catering (Package 3)"},
		{"", 6.50, "Buffet Catering (Package 1)"},
		{"platinum", 6.50, "Buffet Catering (Package 1)"},
	}
	for _, tt := range tests {
		t.Run(tt.pkg, func(t *testing.T) {
			q, err := CalculateQuote(models.QuoteRequest{
				Services:      models.ServiceSelection{Buffet: true},
				BuffetGuests:  models.Guests(40),
				BuffetPackage: tt.pkg,
			})
			require.NoError(t, err)
			require.Len(t, q.Breakdown, 1)
			assert.Equal(t, tt.rate, q.Breakdown[0].PricePerUnit)
			assert.Equal(t, Round2(40*tt.rate), q.Breakdown[0].Total)
			assert.Equal(t, tt.label, q.Breakdown[0].Service)
		})
	}
}

func TestCalculateQuote_AllServicesOrderAndTotals(t *testing.T) {
	q, err := CalculateQuote(models.QuoteRequest{
		Services:       models.ServiceSelection{HogRoast: true, Pizza: true, Bar: true, Buffet: true},
		HogRoastGuests: models.Guests(120),
		PizzaGuests:    models.Guests(80),
		BuffetGuests:   models.Guests(100),
		BuffetPackage:  "package3",
	})
	require.NoError(t, err)

	require.Len(t, q.Breakdown, 4)
	assert.Equal(t, "Hog Roast Catering", q.Breakdown[0].Service)
	assert.Equal(t, "Mobile Pizza Van", q.Breakdown[1].Service)
	assert.Equal(t, "Mobile Bar Service", q.Breakdown[2].Service)
	assert.Equal(t, "Buffet Catering (Package 3)", q.Breakdown[3].Service)

	// 1020 + 1440 + 300 + 1250
	assert.Equal(t, 4010.00, q.TotalQuote)
	assert.Equal(t, 802.00, q.DepositAmount)
}

func TestCalculateQuote_TotalIsSumOfLines(t *testing.T) {
	for guests := 0; guests <= 300; guests += 7 {
		q, err := CalculateQuote(models.QuoteRequest{
			Services:       models.ServiceSelection{HogRoast: true, Pizza: true, Bar: true, Buffet: true},
			HogRoastGuests: models.Guests(guests),
			PizzaGuests:    models.Guests(guests),
			BuffetGuests:   models.Guests(guests),
			BuffetPackage:  "package2",
		})
		require.NoError(t, err)

		var sum float64
		for _, item := range q.Breakdown {
			sum += item.Total
		}
		assert.InDelta(t, Round2(sum), q.TotalQuote, 1e-9)
		assert.InDelta(t, Round2(max(500, 0.2*q.TotalQuote)), q.DepositAmount, 1e-9)
	}
}

func TestCalculateQuote_NegativeGuestsRejected(t *testing.T) {
	_, err := CalculateQuote(models.QuoteRequest{
		Services:    models.ServiceSelection{Pizza: true},
		PizzaGuests: models.GuestCount{N: -3, Valid: true},
	})
	var verr *utils.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "pizzaGuests", verr.Field)
}

func TestQuoteRequest_MalformedGuestCountFailsDecode(t *testing.T) {
	var req models.QuoteRequest
	err := json.Unmarshal([]byte(`{"services":{"hogRoast":true},"hogRoastGuests":"sixty"}`), &req)
	assert.Error(t, err)
}

func TestQuoteRequest_StringGuestCountDecodes(t *testing.T) {
	var req models.QuoteRequest
	require.NoError(t, json.Unmarshal([]byte(`{"services":{"hogRoast":true},"hogRoastGuests":"60","pizzaGuests":""}`), &req))
	assert.Equal(t, models.Guests(60), req.HogRoastGuests)
	assert.False(t, req.PizzaGuests.Valid)
}

func TestDeposit(t *testing.T) {
	assert.Equal(t, 500.00, Deposit(0))
	assert.Equal(t, 500.00, Deposit(2500))
	assert.Equal(t, 500.20, Deposit(2501))
	assert.Equal(t, 1234.57, Deposit(6172.83))
}
