package cache

import (
	"sync"
	"time"

	"github.com/IlyaBatulin/lesopilka/models"
)

// TTL is how long the in-process category snapshot stays fresh
var TTL = 5 * time.Minute

// ── Flat category list ───────────────────────────────────────────────────────
// Every catalog request rebuilds the tree from this list, so it is kept in
// process and shared by the storefront and admin reads.

type categoriesEntry struct {
	data      []models.Category
	fetchedAt time.Time
}

var (
	categoriesMu    sync.RWMutex
	categoriesCache *categoriesEntry
)

// GetCategories returns the cached list. Callers must not modify it.
func GetCategories() ([]models.Category, bool) {
	categoriesMu.RLock()
	defer categoriesMu.RUnlock()
	if categoriesCache != nil && time.Since(categoriesCache.fetchedAt) < TTL {
		return categoriesCache.data, true
	}
	return nil, false
}

func SetCategories(data []models.Category) {
	categoriesMu.Lock()
	defer categoriesMu.Unlock()
	categoriesCache = &categoriesEntry{data: data, fetchedAt: time.Now()}
}

// ── Direct product counts per category ───────────────────────────────────────

type countsEntry struct {
	data      map[int64]int
	fetchedAt time.Time
}

var (
	countsMu    sync.RWMutex
	countsCache *countsEntry
)

func GetProductCounts() (map[int64]int, bool) {
	countsMu.RLock()
	defer countsMu.RUnlock()
	if countsCache != nil && time.Since(countsCache.fetchedAt) < TTL {
		return countsCache.data, true
	}
	return nil, false
}

func SetProductCounts(data map[int64]int) {
	countsMu.Lock()
	defer countsMu.Unlock()
	countsCache = &countsEntry{data: data, fetchedAt: time.Now()}
}

// ── Invalidate everything (call on any category or product write) ────────────

func Invalidate() {
	categoriesMu.Lock()
	categoriesCache = nil
	categoriesMu.Unlock()

	countsMu.Lock()
	countsCache = nil
	countsMu.Unlock()
}
