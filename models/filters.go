package models

import "github.com/shopspring/decimal"

// Facet is one filter dimension derived from the scoped product set
type Facet struct {
	Key    string   `json:"key"`
	Label  string   `json:"label"`
	Values []string `json:"values"`
}

// FilterMetadata represents all filter data for one catalog scope
type FilterMetadata struct {
	CategoryID   *int64            `json:"category_id"`
	Facets       []Facet           `json:"facets"`
	Availability *AvailabilityData `json:"availability"`
	PriceRange   *PriceRangeData   `json:"price_range"`
}

// AvailabilityData represents product availability counts
type AvailabilityData struct {
	InStock    int `json:"in_stock"`
	OutOfStock int `json:"out_of_stock"`
}

// PriceRangeData is the min/max non-zero price in the scope
type PriceRangeData struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}
