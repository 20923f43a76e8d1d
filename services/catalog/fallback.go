package catalog

import (
	"catering/models"
	"catering/services/pricing"
)

// FallbackVersion identifies the built-in dataset served while the store is
// unreachable. Bump it whenever the data below or the price table changes.
const FallbackVersion = "2024.1"

// fallbackPrices derives the catalog from the same table the quote calculator
// prices against.
func fallbackPrices() []models.PriceEntry {
	rules := pricing.Rules()
	out := make([]models.PriceEntry, 0, len(rules))
	for _, r := range rules {
		entry := models.PriceEntry{
			ID:           r.ID,
			ServiceType:  r.ServiceType,
			ServiceName:  r.ServiceName,
			PricePerUnit: r.PricePerUnit,
			UnitType:     r.UnitType,
			Description:  r.Description,
			Active:       true,
		}
		if r.MinimumQuantity > 0 {
			minimum := r.MinimumQuantity
			entry.MinimumQuantity = &minimum
		}
		out = append(out, entry)
	}
	return out
}

var allergenData = []models.AllergenEntry{
	{ID: "1", ServiceType: pricing.ServiceHogRoast, ItemName: "Roasted Pork"},
	{ID: "2", ServiceType: pricing.ServiceHogRoast, ItemName: "Bread Rolls", ContainsGluten: true, Vegetarian: true},
	{ID: "3", ServiceType: pricing.ServiceHogRoast, ItemName: "Apple Sauce", Vegetarian: true, Vegan: true},
	{ID: "4", ServiceType: pricing.ServicePizza, ItemName: "Pizza Base", ContainsGluten: true, Vegetarian: true},
	{ID: "5", ServiceType: pricing.ServicePizza, ItemName: "Mozzarella Cheese", ContainsDairy: true, Vegetarian: true},
	{ID: "6", ServiceType: pricing.ServiceBuffet, ItemName: "Mixed Sandwiches", ContainsGluten: true, ContainsDairy: true, Vegetarian: true},
}

func fallbackAllergens() []models.AllergenEntry {
	out := make([]models.AllergenEntry, len(allergenData))
	copy(out, allergenData)
	return out
}

func filterPrices(entries []models.PriceEntry, serviceType string) []models.PriceEntry {
	out := []models.PriceEntry{}
	for _, e := range entries {
		if e.ServiceType == serviceType {
			out = append(out, e)
		}
	}
	return out
}

func filterAllergens(entries []models.AllergenEntry, serviceType string) []models.AllergenEntry {
	out := []models.AllergenEntry{}
	for _, e := range entries {
		if e.ServiceType == serviceType {
			out = append(out, e)
		}
	}
	return out
}

// BuildMatrix groups entries by service type in order of first appearance.
func BuildMatrix(entries []models.AllergenEntry) models.AllergenMatrix {
	matrix := models.AllergenMatrix{}
	index := map[string]int{}
	for _, e := range entries {
		i, ok := index[e.ServiceType]
		if !ok {
			i = len(matrix)
			index[e.ServiceType] = i
			matrix = append(matrix, models.AllergenGroup{ServiceType: e.ServiceType})
		}
		matrix[i].Items = append(matrix[i].Items, e)
	}
	return matrix
}
