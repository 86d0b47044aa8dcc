package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/IlyaBatulin/lesopilka/catalog"
	"github.com/IlyaBatulin/lesopilka/config"
	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

// ProductListQuery filters the admin product table
type ProductListQuery struct {
	CategoryID *int64 `form:"category_id" binding:"omitempty,min=1"`
	Search     string `form:"search"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type ProductService struct {
	log *logrus.Entry
}

func NewProductService() *ProductService {
	return &ProductService{log: logrus.WithField("component", "product")}
}

// List returns products for the back office, newest id first. A category
// filter includes its subcategories.
func (s *ProductService) List(ctx context.Context, q ProductListQuery) ([]models.Product, *models.Pagination, error) {
	page, limit := normalizePage(q.Page, q.Limit, 20)

	query := config.DB.WithContext(ctx).Model(&models.Product{})
	if q.CategoryID != nil {
		categories, err := GetCatalogStore().ListCategories(ctx)
		if err != nil {
			return nil, nil, err
		}
		ids, ok := catalog.NewTree(categories).Scope(*q.CategoryID)
		if !ok {
			return []models.Product{}, models.NewPagination(page, limit, 0), nil
		}
		query = query.Where("category_id IN ?", ids)
	}
	if search := strings.TrimSpace(q.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ?", pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, fmt.Errorf("count products: %w", err)
	}

	products := []models.Product{}
	if err := query.Order("id DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, nil, fmt.Errorf("list products: %w", err)
	}
	return products, models.NewPagination(page, limit, int(total)), nil
}

func (s *ProductService) Get(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := config.DB.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// Detail is the storefront product page: the product plus its category path
func (s *ProductService) Detail(ctx context.Context, id int64) (*models.ProductDetail, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	categories, err := GetCatalogStore().ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	path := catalog.NewTree(categories).Path(product.CategoryID)
	if path == nil {
		path = []models.Crumb{}
	}
	return &models.ProductDetail{Product: *product, Path: path}, nil
}

func (s *ProductService) Create(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
	if err := GetCategoryService().ensureExists(ctx, config.DB, req.CategoryID, ErrCategoryNotFound); err != nil {
		return nil, err
	}

	unit := strings.TrimSpace(req.Unit)
	if unit == "" {
		unit = "шт"
	}
	product := &models.Product{
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		Price:           req.Price,
		PricePerCubic:   req.PricePerCubic,
		ImageURL:        req.ImageURL,
		CategoryID:      req.CategoryID,
		Unit:            unit,
		Stock:           req.Stock,
		Characteristics: req.Characteristics,
	}
	if err := config.DB.WithContext(ctx).Create(product).Error; err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	InvalidateCatalog(ctx)
	s.log.WithFields(logrus.Fields{"product_id": product.ID, "category_id": product.CategoryID}).Info("product created")
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id int64, req models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.PricePerCubic != nil {
		updates["price_per_cubic"] = *req.PricePerCubic
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.CategoryID != nil {
		if err := GetCategoryService().ensureExists(ctx, config.DB, *req.CategoryID, ErrCategoryNotFound); err != nil {
			return nil, err
		}
		updates["category_id"] = *req.CategoryID
	}
	if req.Unit != nil {
		updates["unit"] = strings.TrimSpace(*req.Unit)
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.Characteristics != nil {
		updates["characteristics"] = *req.Characteristics
	}
	if len(updates) == 0 {
		return product, nil
	}

	if err := config.DB.WithContext(ctx).Model(product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	InvalidateCatalog(ctx)
	s.log.WithField("product_id", id).Info("product updated")
	return s.Get(ctx, id)
}

func (s *ProductService) Delete(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := config.DB.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("delete product: %w", err)
	}

	InvalidateCatalog(ctx)
	s.log.WithField("product_id", id).Info("product deleted")
	return product, nil
}

var productService *ProductService

func GetProductService() *ProductService {
	if productService == nil {
		productService = NewProductService()
	}
	return productService
}
