package services

import (
	"context"
	"fmt"

	"github.com/IlyaBatulin/lesopilka/cache"
	"github.com/IlyaBatulin/lesopilka/config"
	"github.com/IlyaBatulin/lesopilka/models"
)

const productCountsQuery = `
	SELECT category_id, COUNT(*)
	FROM products
	GROUP BY category_id
`

// CountProductsByCategory returns the number of products directly in each
// category. Postgres goes through the raw pgx pool; other drivers use GORM.
func CountProductsByCategory(ctx context.Context) (map[int64]int, error) {
	if cached, ok := cache.GetProductCounts(); ok {
		return cached, nil
	}

	counts := make(map[int64]int)
	if config.Pool != nil {
		rows, err := config.Pool.Query(ctx, productCountsQuery)
		if err != nil {
			return nil, fmt.Errorf("count products: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var id int64
			var n int
			if err := rows.Scan(&id, &n); err != nil {
				return nil, fmt.Errorf("scan product count: %w", err)
			}
			counts[id] = n
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("count products: %w", err)
		}
	} else {
		var rows []struct {
			CategoryID int64
			Count      int
		}
		if err := config.DB.WithContext(ctx).
			Model(&models.Product{}).
			Select("category_id, COUNT(*) AS count").
			Group("category_id").
			Scan(&rows).Error; err != nil {
			return nil, fmt.Errorf("count products: %w", err)
		}
		for _, r := range rows {
			counts[r.CategoryID] = r.Count
		}
	}

	cache.SetProductCounts(counts)
	return counts, nil
}
