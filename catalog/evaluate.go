package catalog

import (
	"sort"
	"strings"

	"github.com/IlyaBatulin/lesopilka/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortMode is the requested product ordering
type SortMode string

const (
	SortDefault   SortMode = "default"
	SortPriceAsc  SortMode = "price-asc"
	SortPriceDesc SortMode = "price-desc"
	SortNameAsc   SortMode = "name-asc"
	SortNameDesc  SortMode = "name-desc"
)

// SortModes lists the accepted values of the sort parameter
var SortModes = []SortMode{SortDefault, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc}

// ParseSortMode maps unknown or empty input to SortDefault
func ParseSortMode(s string) SortMode {
	for _, m := range SortModes {
		if string(m) == s {
			return m
		}
	}
	return SortDefault
}

// Criteria is everything the evaluator filters and sorts by
type Criteria struct {
	// CategoryIDs is the expanded category scope. Empty means no category filter.
	CategoryIDs []int64
	Query       string
	// Attributes maps a characteristic key to its accepted values. Keys are
	// AND'ed, values within one key are OR'ed; an empty value list is ignored.
	Attributes map[string][]string
	Sort       SortMode
}

// Evaluate applies category scope, text search, attribute filters and sort
// to products. It doesn't modify its input and returns the same output for
// the same input.
func Evaluate(products []models.Product, c Criteria) []models.Product {
	var scope map[int64]bool
	if len(c.CategoryIDs) > 0 {
		scope = make(map[int64]bool, len(c.CategoryIDs))
		for _, id := range c.CategoryIDs {
			scope[id] = true
		}
	}
	query := strings.ToLower(strings.TrimSpace(c.Query))
	attrs := activeAttributes(c.Attributes)

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if scope != nil && !scope[p.CategoryID] {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		if !matchesAttributes(p, attrs) {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, c.Sort)
	return out
}

func matchesQuery(p models.Product, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) {
		return true
	}
	return p.Description != nil && strings.Contains(strings.ToLower(*p.Description), query)
}

type attributeFilter struct {
	key    string
	values map[string]bool
}

// activeAttributes drops keys with no selected values and fixes iteration
// order so evaluation is deterministic.
func activeAttributes(attrs map[string][]string) []attributeFilter {
	out := make([]attributeFilter, 0, len(attrs))
	for key, vals := range attrs {
		if len(vals) == 0 {
			continue
		}
		set := make(map[string]bool, len(vals))
		for _, v := range vals {
			set[v] = true
		}
		out = append(out, attributeFilter{key: key, values: set})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].key < out[j].key })
	return out
}

// matchesAttributes fails closed: a product lacking a filtered key is excluded
func matchesAttributes(p models.Product, filters []attributeFilter) bool {
	for _, f := range filters {
		v, ok := p.Characteristics.Get(f.key)
		if !ok || v.IsEmpty() {
			return false
		}
		if !f.values[v.String()] {
			return false
		}
	}
	return true
}

func sortProducts(products []models.Product, mode SortMode) {
	switch mode {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.Cmp(products[j].Price) < 0
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.Cmp(products[j].Price) > 0
		})
	case SortNameAsc, SortNameDesc:
		// Collators keep internal buffers, so each call gets its own.
		col := collate.New(language.Russian)
		sign := 1
		if mode == SortNameDesc {
			sign = -1
		}
		sort.SliceStable(products, func(i, j int) bool {
			return sign*col.CompareString(products[i].Name, products[j].Name) < 0
		})
	}
}
