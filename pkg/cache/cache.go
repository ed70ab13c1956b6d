// Package cache stores computed nesting results between runs.
//
// The [Cache] interface is a small byte store with per-entry expiry.
// [FileCache] keeps entries as JSON files under a directory and is the CLI
// default. [BadgerCache] keeps them in an embedded BadgerDB for large batch
// runs. [NullCache] stores nothing and is used when caching is disabled.
//
// Keys are built by a [Keyer] from the canonical form of a word and every
// option that can change its result, so entries computed under different
// options never collide:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ResultKey(w.Key(), cache.ResultKeyOpts{Circular: true, Policy: "tau"})
//
//	var res nesting.Result
//	if err := cache.GetJSON(ctx, c, key, &res); errors.Is(err, cache.ErrCacheMiss) {
//	    // compute and store
//	}
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrCacheMiss is returned by [GetJSON] when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Cache is a key/value byte store with optional expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored data and true, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

var (
	_ Clearer = (*FileCache)(nil)
	_ Clearer = (*BadgerCache)(nil)
	_ Clearer = NullCache{}
)

// NullCache stores nothing. Every Get is a miss.
type NullCache struct{}

// NewNullCache returns the cache used when caching is disabled.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)         { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                      { return nil }
func (NullCache) Clear(context.Context) (int, error)                        { return 0, nil }
func (NullCache) Close() error                                              { return nil }

// GetJSON loads the entry under key into v.
// It returns [ErrCacheMiss] on a miss, and also when the stored bytes no
// longer decode into v.
func GetJSON(ctx context.Context, c Cache, key string, v any) error {
	data, ok, err := c.Get(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCacheMiss
	}
	if err := json.Unmarshal(data, v); err != nil {
		_ = c.Delete(ctx, key)
		return ErrCacheMiss
	}
	return nil
}

// SetJSON stores v under key as JSON.
func SetJSON(ctx context.Context, c Cache, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Set(ctx, key, data, ttl)
}
