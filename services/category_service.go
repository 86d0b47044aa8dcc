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

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrParentNotFound   = errors.New("parent category not found")
	ErrCategoryCycle    = errors.New("category cannot be moved under itself or its descendants")
)

// CategoryService reads the category forest and applies admin edits
type CategoryService struct {
	log *logrus.Entry
}

func NewCategoryService() *CategoryService {
	return &CategoryService{log: logrus.WithField("component", "category")}
}

// ════════════════════════════════════════════════════════════
// Reads
// ════════════════════════════════════════════════════════════

func (s *CategoryService) loadTree(ctx context.Context) (*catalog.Tree, error) {
	categories, err := GetCatalogStore().ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.NewTree(categories), nil
}

// Forest returns the category tree with subtree product counts
func (s *CategoryService) Forest(ctx context.Context) ([]models.CategoryNode, error) {
	tree, err := s.loadTree(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := CountProductsByCategory(ctx)
	if err != nil {
		return nil, err
	}
	return tree.ForestWithCounts(counts), nil
}

// Detail returns a category with its direct children and breadcrumb path
func (s *CategoryService) Detail(ctx context.Context, id int64) (*models.CategoryDetail, error) {
	tree, err := s.loadTree(ctx)
	if err != nil {
		return nil, err
	}
	cat, ok := tree.Get(id)
	if !ok {
		return nil, ErrCategoryNotFound
	}
	return &models.CategoryDetail{
		Category:      cat,
		Path:          tree.Path(id),
		Subcategories: tree.Children(id),
	}, nil
}

// List returns every category, optionally filtered by a name substring
func (s *CategoryService) List(ctx context.Context, search string) ([]models.Category, error) {
	categories, err := GetCatalogStore().ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return categories, nil
	}
	out := []models.Category{}
	for _, c := range categories {
		if strings.Contains(strings.ToLower(c.Name), search) {
			out = append(out, c)
		}
	}
	return out, nil
}

// ════════════════════════════════════════════════════════════
// Writes
// ════════════════════════════════════════════════════════════

func (s *CategoryService) Create(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	if req.ParentID != nil {
		if err := s.ensureExists(ctx, config.DB, *req.ParentID, ErrParentNotFound); err != nil {
			return nil, err
		}
	}

	category := &models.Category{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		ParentID:    req.ParentID,
		ImageURL:    req.ImageURL,
		Position:    req.Position,
	}
	if err := config.DB.WithContext(ctx).Create(category).Error; err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	InvalidateCatalog(ctx)
	s.log.WithField("category_id", category.ID).Info("category created")
	return category, nil
}

// Update applies the present fields of req. Moving a category under itself
// or one of its descendants is rejected with ErrCategoryCycle.
func (s *CategoryService) Update(ctx context.Context, id int64, req models.UpdateCategoryRequest) (*models.Category, error) {
	var category models.Category
	err := config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&category, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrCategoryNotFound
			}
			return err
		}

		updates := map[string]interface{}{}
		if req.Name != nil {
			updates["name"] = strings.TrimSpace(*req.Name)
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.ImageURL != nil {
			updates["image_url"] = *req.ImageURL
		}
		if req.Position != nil {
			updates["position"] = *req.Position
		}
		if req.ParentID.Set {
			if parent := req.ParentID.Value; parent != nil {
				if err := s.checkReparent(tx, id, *parent); err != nil {
					return err
				}
				updates["parent_id"] = *parent
			} else {
				updates["parent_id"] = nil
			}
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&category).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&category, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}

	InvalidateCatalog(ctx)
	s.log.WithField("category_id", id).Info("category updated")
	return &category, nil
}

func (s *CategoryService) checkReparent(tx *gorm.DB, id, parentID int64) error {
	if parentID == id {
		return ErrCategoryCycle
	}
	var all []models.Category
	if err := tx.Find(&all).Error; err != nil {
		return err
	}
	tree := catalog.NewTree(all)
	if !tree.Has(parentID) {
		return ErrParentNotFound
	}
	for _, d := range tree.Descendants(id) {
		if d == parentID {
			return ErrCategoryCycle
		}
	}
	return nil
}

// DeleteResult reports what a cascade delete removed
type DeleteResult struct {
	Categories int   `json:"deleted_categories"`
	Products   int64 `json:"deleted_products"`
}

// Delete removes the category, all of its subcategories and every product in
// them, in one transaction
func (s *CategoryService) Delete(ctx context.Context, id int64) (*DeleteResult, error) {
	var result DeleteResult
	err := config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var all []models.Category
		if err := tx.Find(&all).Error; err != nil {
			return err
		}
		tree := catalog.NewTree(all)
		ids, ok := tree.Scope(id)
		if !ok {
			return ErrCategoryNotFound
		}

		res := tx.Where("category_id IN ?", ids).Delete(&models.Product{})
		if res.Error != nil {
			return res.Error
		}
		result.Products = res.RowsAffected

		if err := tx.Where("id IN ?", ids).Delete(&models.Category{}).Error; err != nil {
			return err
		}
		result.Categories = len(ids)
		return nil
	})
	if err != nil {
		return nil, err
	}

	InvalidateCatalog(ctx)
	s.log.WithFields(logrus.Fields{
		"category_id": id,
		"categories":  result.Categories,
		"products":    result.Products,
	}).Info("category deleted with subtree")
	return &result, nil
}

func (s *CategoryService) ensureExists(ctx context.Context, db *gorm.DB, id int64, notFound error) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return notFound
	}
	return nil
}

var categoryService *CategoryService

func GetCategoryService() *CategoryService {
	if categoryService == nil {
		categoryService = NewCategoryService()
	}
	return categoryService
}
