package services

import (
	"github.com/shopspring/decimal"
)

// normalizePage applies the list defaults: page 1, the given limit, max 100
func normalizePage(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

func formatRub(d decimal.Decimal) string {
	return d.StringFixed(2) + " ₽"
}
