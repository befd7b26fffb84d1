package mongo

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/roamly/tour-booking-api/internal/api/metrics"
)

// CachedCollection is a read-through proxy over a Collection. FindOne results
// are memoized by a canonical serialization of the filter, including the
// not-found (nil) sentinel. Find always delegates: list queries are too varied
// to key cheaply and risk staleness for collection-wide reads. Any write
// clears the entire cache before delegating — a write invalidates all cached
// reads on this collection, not just the affected key.
//
// The cache is per-instance; writes that flow through a different proxy (or
// none) are invisible to it. Concurrent FindOne misses for the same key may
// both reach the store; the last writer to the map wins and staleness is
// bounded by the clear on the next write.
type CachedCollection struct {
	name  string
	inner Collection

	mu    sync.Mutex
	cache map[string]bson.M
}

// NewCachedCollection wraps inner with a memoizing proxy. The name labels the
// cache hit/miss metrics.
func NewCachedCollection(name string, inner Collection) *CachedCollection {
	return &CachedCollection{
		name:  name,
		inner: inner,
		cache: make(map[string]bson.M),
	}
}

// Find bypasses the cache entirely.
func (c *CachedCollection) Find(ctx context.Context, filter any) ([]bson.M, error) {
	return c.inner.Find(ctx, filter)
}

func (c *CachedCollection) FindOne(ctx context.Context, filter any) (bson.M, error) {
	key, err := cacheKey(filter)
	if err != nil {
		// Unkeyable filter: serve from the store without caching.
		return c.inner.FindOne(ctx, filter)
	}

	c.mu.Lock()
	doc, ok := c.cache[key]
	c.mu.Unlock()
	if ok {
		metrics.CacheHitsTotal.WithLabelValues(c.name).Inc()
		return doc, nil
	}
	metrics.CacheMissesTotal.WithLabelValues(c.name).Inc()

	doc, err = c.inner.FindOne(ctx, filter)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[key] = doc
	c.mu.Unlock()
	return doc, nil
}

func (c *CachedCollection) InsertOne(ctx context.Context, doc any) (*mongo.InsertOneResult, error) {
	c.clear()
	return c.inner.InsertOne(ctx, doc)
}

func (c *CachedCollection) UpdateOne(ctx context.Context, filter, update any) (*mongo.UpdateResult, error) {
	c.clear()
	return c.inner.UpdateOne(ctx, filter, update)
}

func (c *CachedCollection) DeleteOne(ctx context.Context, filter any) (*mongo.DeleteResult, error) {
	c.clear()
	return c.inner.DeleteOne(ctx, filter)
}

func (c *CachedCollection) clear() {
	c.mu.Lock()
	c.cache = make(map[string]bson.M)
	c.mu.Unlock()
}

// cacheKey produces a deterministic string for a filter document: the filter
// is round-tripped through BSON to normalize its representation, keys are
// sorted recursively, and the result is serialized as canonical extended JSON.
func cacheKey(filter any) (string, error) {
	raw, err := bson.Marshal(filter)
	if err != nil {
		return "", err
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return "", err
	}

	out, err := bson.MarshalExtJSON(sortValue(m), true, false)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// sortValue rewrites maps as key-sorted bson.D documents, recursively.
func sortValue(v any) any {
	switch t := v.(type) {
	case bson.M:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		doc := make(bson.D, 0, len(t))
		for _, k := range keys {
			doc = append(doc, bson.E{Key: k, Value: sortValue(t[k])})
		}
		return doc
	case bson.D:
		doc := make(bson.D, len(t))
		copy(doc, t)
		sort.Slice(doc, func(i, j int) bool { return doc[i].Key < doc[j].Key })
		for i := range doc {
			doc[i].Value = sortValue(doc[i].Value)
		}
		return doc
	case bson.A:
		arr := make(bson.A, len(t))
		for i, e := range t {
			arr[i] = sortValue(e)
		}
		return arr
	default:
		return v
	}
}
