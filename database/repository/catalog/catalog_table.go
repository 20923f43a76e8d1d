package catalogRepo

import (
	"context"
	"fmt"

	"catering/database"
	"catering/models"
)

const (
	pricesTable    = "prices"
	allergensTable = "allergens"
)

// TableCatalogRepo implements CatalogRepository on the generic table client.
type TableCatalogRepo struct {
	client database.TableClient
}

func NewTableCatalogRepo(client database.TableClient) CatalogRepository {
	return &TableCatalogRepo{client: client}
}

func (r *TableCatalogRepo) ActivePrices(ctx context.Context) ([]models.PriceEntry, error) {
	return r.prices(ctx, database.From(pricesTable).Eq("active", true).Order("service_type", false))
}

func (r *TableCatalogRepo) PricesByService(ctx context.Context, serviceType string) ([]models.PriceEntry, error) {
	return r.prices(ctx, database.From(pricesTable).Eq("service_type", serviceType).Eq("active", true).Order("id", false))
}

func (r *TableCatalogRepo) Allergens(ctx context.Context) ([]models.AllergenEntry, error) {
	return r.allergens(ctx, database.From(allergensTable).Order("service_type", false))
}

func (r *TableCatalogRepo) AllergensByService(ctx context.Context, serviceType string) ([]models.AllergenEntry, error) {
	return r.allergens(ctx, database.From(allergensTable).Eq("service_type", serviceType).Order("id", false))
}

func (r *TableCatalogRepo) prices(ctx context.Context, q database.Query) ([]models.PriceEntry, error) {
	rows, err := r.client.Select(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prices: %w", err)
	}
	return database.DecodeRows[models.PriceEntry](rows)
}

func (r *TableCatalogRepo) allergens(ctx context.Context, q database.Query) ([]models.AllergenEntry, error) {
	rows, err := r.client.Select(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch allergens: %w", err)
	}
	return database.DecodeRows[models.AllergenEntry](rows)
}
