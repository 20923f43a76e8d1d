// Package pricing holds the fixed price table and the quote calculator built on it.
// The same table backs the price catalog fallback so quotes and /prices cannot drift.
package pricing

import "math"

// Currency is the ISO code every price is expressed in.
const Currency = "GBP"

// Service types.
const (
	ServiceHogRoast = "hog_roast"
	ServicePizza    = "pizza"
	ServiceBar      = "bar"
	ServiceBuffet   = "buffet"
)

const (
	HogRoastPerPerson = 8.50
	PizzaPrice        = 12.00
	PizzasPerGuest    = 1.5
	BarPerEvent       = 300.00

	MinimumDeposit = 500.00
	DepositRate    = 0.20

	DefaultBuffetPackage = "package1"
)

// Rule is one row of the price table.
type Rule struct {
	ID              string
	ServiceType     string
	Package         string // buffet tier, empty for other services
	ServiceName     string
	PricePerUnit    float64
	UnitType        string
	MinimumQuantity int // zero means no minimum
	Description     string
}

var rules = []Rule{
	{ID: "1", ServiceType: ServiceHogRoast, ServiceName: "Hog Roast Catering", PricePerUnit: HogRoastPerPerson, UnitType: "person", MinimumQuantity: 50, Description: "Traditional slow-cooked hog roast with all accompaniments"},
	{ID: "2", ServiceType: ServicePizza, ServiceName: "Mobile Pizza Van", PricePerUnit: PizzaPrice, UnitType: "pizza", Description: "Wood-fired pizzas made fresh on-site"},
	{ID: "3", ServiceType: ServiceBar, ServiceName: "Mobile Bar Service", PricePerUnit: BarPerEvent, UnitType: "event", Description: "Professional licensed mobile bar with bartender"},
	{ID: "4", ServiceType: ServiceBuffet, Package: "package1", ServiceName: "Buffet Package 1", PricePerUnit: 6.50, UnitType: "person", MinimumQuantity: 20, Description: "Basic buffet package"},
	{ID: "5", ServiceType: ServiceBuffet, Package: "package2", ServiceName: "Buffet Package 2", PricePerUnit: 8.50, UnitType: "person", MinimumQuantity: 20, Description: "Standard buffet package"},
	{ID: "6", ServiceType: ServiceBuffet, Package: "package3", ServiceName: "Buffet Package 3", PricePerUnit: 12.50, UnitType: "person", MinimumQuantity: 20, Description: "Premium buffet package"},
}

// Rules returns a copy of the price table in catalog order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// ruleFor returns the first rule for a service type (and buffet package).
func ruleFor(serviceType, pkg string) (Rule, bool) {
	for _, r := range rules {
		if r.ServiceType == serviceType && r.Package == pkg {
			return r, true
		}
	}
	return Rule{}, false
}

// BuffetRule resolves a buffet package id. Unknown or empty ids fall back to
// the default package.
func BuffetRule(pkg string) Rule {
	if r, ok := ruleFor(ServiceBuffet, pkg); ok {
		return r
	}
	r, _ := ruleFor(ServiceBuffet, DefaultBuffetPackage)
	return r
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Deposit is max(MinimumDeposit, DepositRate*total) rounded to pence.
func Deposit(total float64) float64 {
	return Round2(math.Max(MinimumDeposit, total*DepositRate))
}
