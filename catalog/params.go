package catalog

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/IlyaBatulin/lesopilka/models"
)

// FilterParamPrefix marks attribute filters in the query string:
// ?filter.grade=A&filter.grade=B&filter.moisture=dry
const FilterParamPrefix = "filter."

// Params is the full catalog navigation state as carried by the URL
type Params struct {
	CategoryID *int64              `json:"category,omitempty"`
	Search     string              `json:"search,omitempty"`
	Page       int                 `json:"page"`
	Sort       SortMode            `json:"sort"`
	Filters    map[string][]string `json:"filters,omitempty"`
}

// ParseParams reads navigation state from a query string. Malformed values
// fall back to their defaults: no category, page 1, default sort.
func ParseParams(q url.Values) Params {
	p := Params{
		Search:  strings.TrimSpace(q.Get("search")),
		Page:    1,
		Sort:    ParseSortMode(q.Get("sort")),
		Filters: map[string][]string{},
	}

	if raw := strings.TrimSpace(q.Get("category")); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
			p.CategoryID = &id
		}
	}
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n >= 1 {
		p.Page = n
	}

	for name, vals := range q {
		key, ok := strings.CutPrefix(name, FilterParamPrefix)
		if !ok || key == "" {
			continue
		}
		seen := make(map[string]bool, len(vals))
		for _, v := range vals {
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			p.Filters[key] = append(p.Filters[key], v)
		}
	}
	return p
}

// Values encodes p back into query parameters. Defaults are omitted so the
// shortest equivalent URL is produced.
func (p Params) Values() url.Values {
	q := url.Values{}
	if p.CategoryID != nil {
		q.Set("category", strconv.FormatInt(*p.CategoryID, 10))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Page > 1 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Sort != "" && p.Sort != SortDefault {
		q.Set("sort", string(p.Sort))
	}
	for key, vals := range p.Filters {
		for _, v := range vals {
			q.Add(FilterParamPrefix+key, v)
		}
	}
	return q
}

// Encode is the canonical query string for p (keys sorted)
func (p Params) Encode() string {
	return p.Values().Encode()
}

// HasActiveFilters reports whether any attribute filter has a selected value
func (p Params) HasActiveFilters() bool {
	for _, vals := range p.Filters {
		if len(vals) > 0 {
			return true
		}
	}
	return false
}

// Selection is the filter state shown in the sidebar. Categories always holds
// the selected category (or nothing); Attributes only keys of current facets.
type Selection struct {
	Categories []string            `json:"categories"`
	Attributes map[string][]string `json:"attributes"`
}

// NewSelection builds the selection for categoryID and drops filter keys that
// are not among facets, e.g. left over from a previous category.
func NewSelection(categoryID *int64, filters map[string][]string, facets []models.Facet) Selection {
	s := Selection{
		Categories: []string{},
		Attributes: map[string][]string{},
	}
	if categoryID != nil {
		s.Categories = append(s.Categories, strconv.FormatInt(*categoryID, 10))
	}

	known := make(map[string]bool, len(facets))
	for _, f := range facets {
		known[f.Key] = true
	}
	for key, vals := range filters {
		if !known[key] || len(vals) == 0 {
			continue
		}
		s.Attributes[key] = append([]string(nil), vals...)
	}
	return s
}

// Count is the number of selected attribute values
func (s Selection) Count() int {
	n := 0
	for _, vals := range s.Attributes {
		n += len(vals)
	}
	return n
}

// Keys returns the filtered attribute keys in sorted order
func (s Selection) Keys() []string {
	keys := make([]string, 0, len(s.Attributes))
	for k := range s.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
