package services

import (
	"context"
	"fmt"

	"github.com/IlyaBatulin/lesopilka/cache"
	"github.com/IlyaBatulin/lesopilka/catalog"
	"github.com/IlyaBatulin/lesopilka/config"
	"github.com/IlyaBatulin/lesopilka/models"
	"gorm.io/gorm"
)

// CatalogStore is the GORM-backed catalog.Store. The flat category list is
// served from the in-process cache.
type CatalogStore struct {
	db *gorm.DB
}

func NewCatalogStore(db *gorm.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

var _ catalog.Store = (*CatalogStore)(nil)

func (s *CatalogStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	if cached, ok := cache.GetCategories(); ok {
		return cached, nil
	}

	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	cache.SetCategories(categories)
	return categories, nil
}

// ListProducts returns products of the given categories ordered by id. The
// evaluator's default sort keeps this order.
func (s *CatalogStore) ListProducts(ctx context.Context, filter catalog.ProductFilter) ([]models.Product, error) {
	var products []models.Product
	if err := s.scoped(ctx, filter).Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *CatalogStore) ListCharacteristics(ctx context.Context, filter catalog.ProductFilter) ([]models.Product, error) {
	var products []models.Product
	if err := s.scoped(ctx, filter).
		Select("id", "category_id", "characteristics").
		Order("id").
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list characteristics: %w", err)
	}
	return products, nil
}

func (s *CatalogStore) scoped(ctx context.Context, filter catalog.ProductFilter) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.Product{})
	if len(filter.CategoryIDs) > 0 {
		q = q.Where("category_id IN ?", filter.CategoryIDs)
	}
	return q
}

// GetCatalogStore returns a store over the application database
func GetCatalogStore() *CatalogStore {
	return NewCatalogStore(config.DB)
}

var facetCache *cache.FacetCache

// GetFacetCache returns the Redis facet cache, or nil when Redis is off
func GetFacetCache() *cache.FacetCache {
	if facetCache == nil && config.RedisClient != nil {
		facetCache = cache.NewFacetCache(config.RedisClient, config.App.Catalog.FacetCacheTTL)
	}
	return facetCache
}

// NewCatalogController builds a catalog engine over the application store
func NewCatalogController() *catalog.Controller {
	opts := []catalog.Option{catalog.WithTimeout(config.App.Catalog.RequestTimeout)}
	if fc := GetFacetCache(); fc != nil {
		opts = append(opts, catalog.WithFacetCache(fc))
	}
	return catalog.NewController(GetCatalogStore(), opts...)
}

// InvalidateCatalog drops every derived catalog cache after a write
func InvalidateCatalog(ctx context.Context) {
	cache.Invalidate()
	if fc := GetFacetCache(); fc != nil {
		fc.InvalidateAll(ctx)
	}
}
