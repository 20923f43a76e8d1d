package pricing

import (
	"fmt"
	"math"
	"strings"

	"catering/models"
	"catering/utils"
)

// CalculateQuote prices a service selection. Line items follow the fixed order
// hog roast, pizza, bar, buffet. It has no side effects.
func CalculateQuote(req models.QuoteRequest) (models.Quote, error) {
	if err := validateGuests(req); err != nil {
		return models.Quote{}, err
	}

	breakdown := []models.LineItem{}

	// Hog roast needs a positive head count.
	if req.Services.HogRoast && req.HogRoastGuests.Valid && req.HogRoastGuests.N > 0 {
		r, _ := ruleFor(ServiceHogRoast, "")
		guests := req.HogRoastGuests.N
		breakdown = append(breakdown, models.LineItem{
			Service:      r.ServiceName,
			Quantity:     guests,
			Unit:         r.UnitType,
			PricePerUnit: r.PricePerUnit,
			Total:        Round2(float64(guests) * r.PricePerUnit),
		})
	}

	if req.Services.Pizza && req.PizzaGuests.Valid {
		r, _ := ruleFor(ServicePizza, "")
		guests := req.PizzaGuests.N
		pizzas := PizzasFor(guests)
		breakdown = append(breakdown, models.LineItem{
			Service:      r.ServiceName,
			Quantity:     pizzas,
			Unit:         r.UnitType,
			PricePerUnit: r.PricePerUnit,
			Total:        Round2(float64(pizzas) * r.PricePerUnit),
			Note:         fmt.Sprintf("Estimated %d pizzas for %d guests", pizzas, guests),
		})
	}

	// The bar is a flat fee whatever the head count.
	if req.Services.Bar {
		r, _ := ruleFor(ServiceBar, "")
		breakdown = append(breakdown, models.LineItem{
			Service:      r.ServiceName,
			Quantity:     1,
			Unit:         r.UnitType,
			PricePerUnit: r.PricePerUnit,
			Total:        r.PricePerUnit,
		})
	}

	if req.Services.Buffet && req.BuffetGuests.Valid {
		r := BuffetRule(req.BuffetPackage)
		guests := req.BuffetGuests.N
		breakdown = append(breakdown, models.LineItem{
			Service:      fmt.Sprintf("Buffet Catering (%s)", packageLabel(r.Package)),
			Quantity:     guests,
			Unit:         r.UnitType,
			PricePerUnit: r.PricePerUnit,
			Total:        Round2(float64(guests) * r.PricePerUnit),
		})
	}

	var total float64
	for _, item := range breakdown {
		total += item.Total
	}
	total = Round2(total)

	return models.Quote{
		TotalQuote:    total,
		DepositAmount: Deposit(total),
		Breakdown:     breakdown,
		Currency:      Currency,
	}, nil
}

// PizzasFor estimates 1.5 pizzas per guest, never fewer than one.
func PizzasFor(guests int) int {
	return max(1, int(math.Floor(float64(guests)*PizzasPerGuest)))
}

func packageLabel(pkg string) string {
	return strings.Replace(pkg, "package", "Package ", 1)
}

func validateGuests(req models.QuoteRequest) error {
	counts := []struct {
		field string
		count models.GuestCount
	}{
		{"hogRoastGuests", req.HogRoastGuests},
		{"pizzaGuests", req.PizzaGuests},
		{"buffetGuests", req.BuffetGuests},
	}
	for _, c := range counts {
		if c.count.Valid && c.count.N < 0 {
			return &utils.ValidationError{Field: c.field, Msg: c.field + " must not be negative"}
		}
	}
	return nil
}
