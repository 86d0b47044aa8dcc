package cache

import (
	"context"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/redis/go-redis/v9"
)

// testRedisClient skips the test when Redis is unavailable
func testRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: redis not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, facetKeyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})
	return client
}

func TestFacetCacheSetGetInvalidate(t *testing.T) {
	fc := NewFacetCache(testRedisClient(t), time.Minute)
	ctx := context.Background()

	if _, ok := fc.GetFacets(ctx, "1,2,3"); ok {
		t.Fatal("expected miss on empty cache")
	}

	facets := []models.Facet{{Key: "grade", Label: "Сорт", Values: []string{"A", "B"}}}
	fc.SetFacets(ctx, "1,2,3", facets)
	fc.SetFacets(ctx, "all", nil)

	got, ok := fc.GetFacets(ctx, "1,2,3")
	if !ok || !reflect.DeepEqual(got, facets) {
		t.Fatalf("got %v, %v", got, ok)
	}
	if got, ok := fc.GetFacets(ctx, "all"); !ok || len(got) != 0 {
		t.Errorf("empty facet list should be cached, got %v, %v", got, ok)
	}

	fc.InvalidateAll(ctx)
	if _, ok := fc.GetFacets(ctx, "1,2,3"); ok {
		t.Error("expected miss after InvalidateAll")
	}
}

func TestFacetKeyIsStable(t *testing.T) {
	if FacetKey("1,2") != FacetKey("1,2") {
		t.Error("same scope must map to the same key")
	}
	if FacetKey("1,2") == FacetKey("1,3") {
		t.Error("different scopes collided")
	}
}

func TestCategoryCacheTTLAndInvalidate(t *testing.T) {
	defer func(old time.Duration) { TTL = old }(TTL)
	Invalidate()

	if _, ok := GetCategories(); ok {
		t.Fatal("expected empty cache")
	}
	SetCategories([]models.Category{{ID: 1, Name: "Пиломатериалы"}})
	SetProductCounts(map[int64]int{1: 4})

	if got, ok := GetCategories(); !ok || len(got) != 1 {
		t.Errorf("categories = %v, %v", got, ok)
	}
	if got, ok := GetProductCounts(); !ok || got[1] != 4 {
		t.Errorf("counts = %v, %v", got, ok)
	}

	TTL = 0
	if _, ok := GetCategories(); ok {
		t.Error("expired entry returned")
	}

	TTL = time.Minute
	Invalidate()
	if _, ok := GetProductCounts(); ok {
		t.Error("counts survived Invalidate")
	}
}
