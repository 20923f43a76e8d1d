package catalogRepo

import (
	"context"

	"catering/models"
)

// CatalogRepository defines read-only access to the price and allergen tables.
type CatalogRepository interface {
	// ActivePrices returns every active price entry ordered by service type.
	ActivePrices(ctx context.Context) ([]models.PriceEntry, error)
	// PricesByService returns the active price entries for one service type.
	PricesByService(ctx context.Context, serviceType string) ([]models.PriceEntry, error)
	// Allergens returns every allergen entry ordered by service type.
	Allergens(ctx context.Context) ([]models.AllergenEntry, error)
	// AllergensByService returns the allergen entries for one service type.
	AllergensByService(ctx context.Context, serviceType string) ([]models.AllergenEntry, error)
}
