package services

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFilterMetadataScoped(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	meta, err := GetFilterService().Metadata(bg, ptr(int64(2)))
	if err != nil {
		t.Fatal(err)
	}
	if meta.CategoryID == nil || *meta.CategoryID != 2 {
		t.Errorf("category id = %v", meta.CategoryID)
	}

	keys := map[string]bool{}
	for _, f := range meta.Facets {
		keys[f.Key] = true
	}
	for _, k := range []string{"grade", "moisture", "thickness"} {
		if !keys[k] {
			t.Errorf("facet %q missing from %+v", k, meta.Facets)
		}
	}

	if meta.Availability.InStock != 2 || meta.Availability.OutOfStock != 1 {
		t.Errorf("availability = %+v", meta.Availability)
	}
	// the 0-priced board is on request and ignored
	if !meta.PriceRange.Min.Equal(decimal.NewFromInt(210)) || !meta.PriceRange.Max.Equal(decimal.NewFromInt(450)) {
		t.Errorf("price range = %s..%s", meta.PriceRange.Min, meta.PriceRange.Max)
	}
}

func TestFilterMetadataUnknownCategoryIsWholeCatalog(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	meta, err := GetFilterService().Metadata(bg, ptr(int64(404)))
	if err != nil {
		t.Fatal(err)
	}
	if meta.CategoryID != nil {
		t.Errorf("unknown category should not be echoed, got %d", *meta.CategoryID)
	}
	if total := meta.Availability.InStock + meta.Availability.OutOfStock; total != 5 {
		t.Errorf("products counted = %d, want 5", total)
	}
	if !meta.PriceRange.Max.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("max = %s", meta.PriceRange.Max)
	}
}

func TestFilterMetadataEmptyScope(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	if err := db.Exec("DELETE FROM products WHERE category_id = 3").Error; err != nil {
		t.Fatal(err)
	}
	meta, err := GetFilterService().Metadata(bg, ptr(int64(3)))
	if err != nil {
		t.Fatal(err)
	}
	if len(meta.Facets) != 0 {
		t.Errorf("facets = %+v", meta.Facets)
	}
	if !meta.PriceRange.Min.IsZero() || !meta.PriceRange.Max.IsZero() {
		t.Errorf("price range = %+v", meta.PriceRange)
	}
}
