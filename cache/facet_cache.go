package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/IlyaBatulin/lesopilka/models"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	facetKeyPrefix = "facets:"

	DefaultFacetTTL = 10 * time.Minute
)

// FacetCache keeps derived filter facets in Redis, one key per category
// scope. Errors are logged and reported as misses.
type FacetCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Entry
}

func NewFacetCache(client *redis.Client, ttl time.Duration) *FacetCache {
	if ttl == 0 {
		ttl = DefaultFacetTTL
	}
	return &FacetCache{
		client: client,
		ttl:    ttl,
		log:    logrus.WithField("component", "facet-cache"),
	}
}

// FacetKey maps a scope key (possibly a long id list) to a fixed-size Redis key
func FacetKey(scope string) string {
	sum := sha256.Sum256([]byte(scope))
	return facetKeyPrefix + hex.EncodeToString(sum[:12])
}

func (fc *FacetCache) GetFacets(ctx context.Context, scope string) ([]models.Facet, bool) {
	val, err := fc.client.Get(ctx, FacetKey(scope)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		fc.log.WithError(err).WithField("scope", scope).Warn("facet cache get error")
		return nil, false
	}

	var facets []models.Facet
	if err := json.Unmarshal(val, &facets); err != nil {
		fc.log.WithError(err).WithField("scope", scope).Warn("corrupt facet cache entry")
		return nil, false
	}
	fc.log.WithField("scope", scope).Debug("facet cache hit")
	return facets, true
}

func (fc *FacetCache) SetFacets(ctx context.Context, scope string, facets []models.Facet) {
	if facets == nil {
		facets = []models.Facet{}
	}
	data, err := json.Marshal(facets)
	if err != nil {
		fc.log.WithError(err).Warn("facet cache marshal error")
		return
	}
	if err := fc.client.Set(ctx, FacetKey(scope), data, fc.ttl).Err(); err != nil {
		fc.log.WithError(err).WithField("scope", scope).Warn("facet cache set error")
	}
}

// InvalidateAll drops every cached scope. Any product or category write can
// change facets of several scopes at once.
func (fc *FacetCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, next, err := fc.client.Scan(ctx, cursor, facetKeyPrefix+"*", 100).Result()
		if err != nil {
			fc.log.WithError(err).Warn("facet cache scan error")
			return
		}
		if len(keys) > 0 {
			if err := fc.client.Del(ctx, keys...).Err(); err != nil {
				fc.log.WithError(err).Warn("facet cache bulk delete error")
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		fc.log.WithField("deleted", deleted).Info("facet cache cleared")
	}
}
