package catalog

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/IlyaBatulin/lesopilka/models"
)

// ProductFilter restricts a product listing. Empty CategoryIDs means the
// whole catalog.
type ProductFilter struct {
	CategoryIDs []int64
}

// Store is the read side the catalog engine needs from the data store
type Store interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	// ListCharacteristics is a projection of ListProducts carrying at least
	// ID, CategoryID and Characteristics; it feeds facet derivation.
	ListCharacteristics(ctx context.Context, filter ProductFilter) ([]models.Product, error)
}

// FacetCache stores derived facets per scope key. Misses and errors are
// both reported as ok == false; the engine then recomputes.
type FacetCache interface {
	GetFacets(ctx context.Context, scope string) ([]models.Facet, bool)
	SetFacets(ctx context.Context, scope string, facets []models.Facet)
}

// ScopeKey identifies an effective category scope. The same ids in any
// order give the same key; no ids is the whole catalog.
func ScopeKey(ids []int64) string {
	if len(ids) == 0 {
		return "all"
	}
	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var b strings.Builder
	for i, id := range sorted {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(id, 10))
	}
	return b.String()
}
