package services

import (
	"errors"
	"testing"

	"github.com/IlyaBatulin/lesopilka/models"
)

func TestCategoryForestCounts(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	forest, err := GetCategoryService().Forest(bg)
	if err != nil {
		t.Fatal(err)
	}
	if len(forest) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(forest))
	}
	lumber := forest[0]
	if lumber.ID != 1 || lumber.ProductCount != 4 {
		t.Errorf("lumber = id %d count %d, want id 1 count 4", lumber.ID, lumber.ProductCount)
	}
	if boards := lumber.Subcategories[0]; boards.ID != 2 || boards.ProductCount != 3 {
		t.Errorf("boards = id %d count %d, want id 2 count 3", boards.ID, boards.ProductCount)
	}
}

func TestCategoryDetail(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	detail, err := GetCategoryService().Detail(bg, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(detail.Path) != 2 || detail.Path[0].ID != 1 || detail.Path[1].ID != 2 {
		t.Errorf("path = %+v", detail.Path)
	}
	if len(detail.Subcategories) != 1 || detail.Subcategories[0].ID != 4 {
		t.Errorf("subcategories = %+v", detail.Subcategories)
	}

	if _, err := GetCategoryService().Detail(bg, 404); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("err = %v, want ErrCategoryNotFound", err)
	}
}

func TestCategoryCreateChecksParent(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	svc := GetCategoryService()

	if _, err := svc.Create(bg, models.CategoryRequest{Name: "Вагонка", ParentID: ptr(int64(99))}); !errors.Is(err, ErrParentNotFound) {
		t.Fatalf("err = %v, want ErrParentNotFound", err)
	}

	created, err := svc.Create(bg, models.CategoryRequest{Name: "  Вагонка ", ParentID: ptr(int64(2))})
	if err != nil {
		t.Fatal(err)
	}
	if created.Name != "Вагонка" {
		t.Errorf("name not trimmed: %q", created.Name)
	}

	// the cache was dropped, so the new child shows up at once
	detail, err := svc.Detail(bg, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(detail.Subcategories) != 2 {
		t.Errorf("expected new subcategory in detail, got %+v", detail.Subcategories)
	}
}

func TestCategoryUpdateRejectsCycles(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	svc := GetCategoryService()

	tests := []struct {
		name   string
		id     int64
		parent int64
		want   error
	}{
		{"self", 2, 2, ErrCategoryCycle},
		{"direct child", 2, 4, ErrCategoryCycle},
		{"grandchild", 1, 4, ErrCategoryCycle},
		{"missing parent", 2, 99, ErrParentNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := models.UpdateCategoryRequest{ParentID: models.OptionalInt64{Set: true, Value: ptr(tt.parent)}}
			if _, err := svc.Update(bg, tt.id, req); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	moved, err := svc.Update(bg, 4, models.UpdateCategoryRequest{ParentID: models.OptionalInt64{Set: true, Value: ptr(int64(3))}})
	if err != nil {
		t.Fatal(err)
	}
	if moved.ParentID == nil || *moved.ParentID != 3 {
		t.Errorf("parent = %v, want 3", moved.ParentID)
	}

	root, err := svc.Update(bg, 4, models.UpdateCategoryRequest{ParentID: models.OptionalInt64{Set: true}})
	if err != nil {
		t.Fatal(err)
	}
	if root.ParentID != nil {
		t.Errorf("explicit null should move to root, parent = %v", *root.ParentID)
	}
}

func TestCategoryUpdateKeepsAbsentFields(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	updated, err := GetCategoryService().Update(bg, 2, models.UpdateCategoryRequest{Name: ptr("Доска обрезная")})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "Доска обрезная" {
		t.Errorf("name = %q", updated.Name)
	}
	if updated.ParentID == nil || *updated.ParentID != 1 {
		t.Errorf("parent changed: %v", updated.ParentID)
	}
	if updated.Position == nil || *updated.Position != 1 {
		t.Errorf("position changed: %v", updated.Position)
	}
}

func TestCategoryDeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	res, err := GetCategoryService().Delete(bg, 2)
	if err != nil {
		t.Fatal(err)
	}
	if res.Categories != 2 || res.Products != 3 {
		t.Errorf("result = %+v, want 2 categories and 3 products", res)
	}
	if n := countRows(t, db, &models.Category{}); n != 3 {
		t.Errorf("categories left = %d, want 3", n)
	}
	if n := countRows(t, db, &models.Product{}); n != 2 {
		t.Errorf("products left = %d, want 2", n)
	}

	if _, err := GetCategoryService().Delete(bg, 2); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("second delete err = %v", err)
	}
}

func TestCategoryListSearch(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	got, err := GetCategoryService().List(bg, "ДОСКА")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 matches, got %+v", got)
	}
}
