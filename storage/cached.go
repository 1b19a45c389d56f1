package storage

import (
	"context"
	"encoding/json"
	"log"
	"time"
)

// Cached is the read-through helper: cache hit decodes and returns without
// touching the producer; miss runs the producer, stores the JSON-encoded
// result with ttl and returns it. Producer errors propagate uncached so a
// failed fetch can never poison the cache. Cache failures degrade to a miss.
func Cached[T any](ctx context.Context, cache Cache, key string, ttl time.Duration, producer func() (T, error)) (T, error) {
	if raw, ok := cache.Get(ctx, key); ok {
		var value T
		err := json.Unmarshal(raw, &value)
		if err == nil {
			return value, nil
		}
		log.Printf("cache: dropping undecodable entry %s: %v", key, err)
		cache.Delete(ctx, key)
	}

	value, err := producer()
	if err != nil {
		return value, err
	}

	if raw, err := json.Marshal(value); err == nil {
		cache.Set(ctx, key, raw, ttl)
	} else {
		log.Printf("cache: cannot encode value for %s: %v", key, err)
	}
	return value, nil
}
