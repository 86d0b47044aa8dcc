package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/IlyaBatulin/lesopilka/catalog"
	"github.com/IlyaBatulin/lesopilka/config"
	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// FilterService builds the storefront sidebar for one category scope
type FilterService struct {
	log *logrus.Entry
}

func NewFilterService() *FilterService {
	return &FilterService{log: logrus.WithField("component", "filters")}
}

// Metadata returns facets, stock counts and the price range for the subtree
// of categoryID. An unknown or nil category means the whole catalog.
func (s *FilterService) Metadata(ctx context.Context, categoryID *int64) (*models.FilterMetadata, error) {
	store := GetCatalogStore()
	categories, err := store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	metadata := &models.FilterMetadata{}
	var scope []int64
	if categoryID != nil {
		if ids, ok := catalog.NewTree(categories).Scope(*categoryID); ok {
			scope = ids
			metadata.CategoryID = categoryID
		}
	}
	scopeKey := catalog.ScopeKey(scope)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var errs []error

	// 1. Facets
	wg.Add(1)
	go func() {
		defer wg.Done()
		facets, err := s.facets(ctx, store, scope, scopeKey)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			errs = append(errs, err)
		} else {
			metadata.Facets = facets
		}
	}()

	// 2. Availability
	wg.Add(1)
	go func() {
		defer wg.Done()
		availability, err := availabilityCounts(ctx, config.DB, scope)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			errs = append(errs, err)
		} else {
			metadata.Availability = availability
		}
	}()

	// 3. Price range
	wg.Add(1)
	go func() {
		defer wg.Done()
		priceRange, err := priceRange(ctx, config.DB, scope)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			errs = append(errs, err)
		} else {
			metadata.PriceRange = priceRange
		}
	}()

	wg.Wait()

	if len(errs) > 0 {
		err := errors.Join(errs...)
		s.log.WithError(err).WithField("scope", scopeKey).Error("failed to build filter metadata")
		return nil, err
	}
	return metadata, nil
}

func (s *FilterService) facets(ctx context.Context, store *CatalogStore, scope []int64, scopeKey string) ([]models.Facet, error) {
	fc := GetFacetCache()
	if fc != nil {
		if facets, ok := fc.GetFacets(ctx, scopeKey); ok {
			return facets, nil
		}
	}
	rows, err := store.ListCharacteristics(ctx, catalog.ProductFilter{CategoryIDs: scope})
	if err != nil {
		return nil, err
	}
	facets := catalog.ExtractFacets(rows)
	if fc != nil {
		fc.SetFacets(ctx, scopeKey, facets)
	}
	return facets, nil
}

func scopedProducts(ctx context.Context, db *gorm.DB, scope []int64) *gorm.DB {
	q := db.WithContext(ctx).Model(&models.Product{})
	if len(scope) > 0 {
		q = q.Where("category_id IN ?", scope)
	}
	return q
}

func availabilityCounts(ctx context.Context, db *gorm.DB, scope []int64) (*models.AvailabilityData, error) {
	var row struct {
		InStock    int
		OutOfStock int
	}
	err := scopedProducts(ctx, db, scope).
		Select("COALESCE(SUM(CASE WHEN stock > 0 THEN 1 ELSE 0 END), 0) AS in_stock, " +
			"COALESCE(SUM(CASE WHEN stock > 0 THEN 0 ELSE 1 END), 0) AS out_of_stock").
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("availability counts: %w", err)
	}
	return &models.AvailabilityData{InStock: row.InStock, OutOfStock: row.OutOfStock}, nil
}

// priceRange ignores price-on-request products; with none priced both ends are 0
func priceRange(ctx context.Context, db *gorm.DB, scope []int64) (*models.PriceRangeData, error) {
	var row struct {
		Min decimal.NullDecimal
		Max decimal.NullDecimal
	}
	err := scopedProducts(ctx, db, scope).
		Where("price > 0").
		Select("MIN(price) AS min, MAX(price) AS max").
		Scan(&row).Error
	if err != nil {
		return nil, fmt.Errorf("price range: %w", err)
	}
	out := &models.PriceRangeData{Min: decimal.Zero, Max: decimal.Zero}
	if row.Min.Valid {
		out.Min = row.Min.Decimal
	}
	if row.Max.Valid {
		out.Max = row.Max.Decimal
	}
	return out, nil
}

var filterService *FilterService

func GetFilterService() *FilterService {
	if filterService == nil {
		filterService = NewFilterService()
	}
	return filterService
}
