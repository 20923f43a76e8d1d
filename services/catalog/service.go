package catalog

import (
	"context"
	"time"

	"catering/database"
	catalogRepo "catering/database/repository/catalog"
	"catering/models"
	"catering/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CatalogService serves the read-only price and allergen catalogs. Every
// result reports whether it came from the store or the built-in fallback.
type CatalogService interface {
	Prices(ctx context.Context) ([]models.PriceEntry, models.CatalogSource, error)
	PricesByService(ctx context.Context, serviceType string) ([]models.PriceEntry, models.CatalogSource, error)
	Allergens(ctx context.Context) ([]models.AllergenEntry, models.CatalogSource, error)
	AllergensByService(ctx context.Context, serviceType string) ([]models.AllergenEntry, models.CatalogSource, error)
	AllergenMatrix(ctx context.Context) (models.AllergenMatrix, models.CatalogSource, error)
}

// DefaultCatalogService implements CatalogService.
type DefaultCatalogService struct {
	Repo  catalogRepo.CatalogRepository
	Cache Cache // optional
	group singleflight.Group
}

func NewCatalogService(repo catalogRepo.CatalogRepository, cache Cache) *DefaultCatalogService {
	return &DefaultCatalogService{Repo: repo, Cache: cache}
}

func (s *DefaultCatalogService) Prices(ctx context.Context) ([]models.PriceEntry, models.CatalogSource, error) {
	return load(ctx, s, "prices:all", s.Repo.ActivePrices, fallbackPrices)
}

func (s *DefaultCatalogService) PricesByService(ctx context.Context, serviceType string) ([]models.PriceEntry, models.CatalogSource, error) {
	return load(ctx, s, "prices:"+serviceType,
		func(ctx context.Context) ([]models.PriceEntry, error) { return s.Repo.PricesByService(ctx, serviceType) },
		func() []models.PriceEntry { return filterPrices(fallbackPrices(), serviceType) })
}

func (s *DefaultCatalogService) Allergens(ctx context.Context) ([]models.AllergenEntry, models.CatalogSource, error) {
	return load(ctx, s, "allergens:all", s.Repo.Allergens, fallbackAllergens)
}

func (s *DefaultCatalogService) AllergensByService(ctx context.Context, serviceType string) ([]models.AllergenEntry, models.CatalogSource, error) {
	return load(ctx, s, "allergens:"+serviceType,
		func(ctx context.Context) ([]models.AllergenEntry, error) { return s.Repo.AllergensByService(ctx, serviceType) },
		func() []models.AllergenEntry { return filterAllergens(fallbackAllergens(), serviceType) })
}

func (s *DefaultCatalogService) AllergenMatrix(ctx context.Context) (models.AllergenMatrix, models.CatalogSource, error) {
	entries, source, err := s.Allergens(ctx)
	if err != nil {
		return nil, source, err
	}
	return BuildMatrix(entries), source, nil
}

const fetchTimeout = 10 * time.Second

// load reads key through the cache, collapsing concurrent store reads. When
// the store is unreachable the fallback is served and nothing is cached.
func load[T any](
	ctx context.Context,
	s *DefaultCatalogService,
	key string,
	fetch func(context.Context) ([]T, error),
	fallback func() []T,
) ([]T, models.CatalogSource, error) {
	logger := utils.GetLogger()

	if s.Cache != nil {
		var cached []T
		ok, err := s.Cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		} else if ok {
			return cached, models.SourceLive, nil
		}
	}

	// Detached from the first caller, whose cancellation would fail every waiter.
	v, err, _ := s.group.Do(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()
		return fetch(fetchCtx)
	})
	if err != nil {
		if database.IsUnavailable(err) {
			logger.Warn("data store unavailable, serving fallback catalog",
				zap.String("key", key), zap.String("version", FallbackVersion))
			return fallback(), models.SourceFallback, nil
		}
		return nil, models.SourceLive, &utils.UpstreamError{Service: "Database", Err: err}
	}

	items := v.([]T)
	if items == nil {
		items = []T{}
	}
	if s.Cache != nil {
		if err := s.Cache.Set(ctx, key, items); err != nil {
			logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return items, models.SourceLive, nil
}
