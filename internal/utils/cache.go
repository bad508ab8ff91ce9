package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"errors"        // Error comparison
	"strings"       // Key joining
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Cache is a JSON read cache backed by Redis.
// A nil *Cache, or one without a client, misses on every read and ignores writes.
type Cache struct {
	rdb *redis.Client // Redis client, may be nil
	ttl time.Duration // Lifetime of stored entries
}

// NewCache wraps a Redis client; rdb may be nil to disable caching
func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// Enabled reports whether the cache talks to Redis
func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// Get retrieves a value from Redis and unmarshals it into dest
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if !c.Enabled() {
		return false, nil // Caching disabled
	}
	val, err := c.rdb.Get(ctx, key).Result() // Get value from Redis
	if errors.Is(err, redis.Nil) {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// Set stores a value in Redis with the cache TTL
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	if !c.Enabled() {
		return nil // Caching disabled
	}
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err() // Set value in Redis with TTL
}

// DeleteNamespace deletes every key of the form ns + ":" + suffix.
// The separator keeps "ledger:user:ann" from matching "ledger:user:anna".
func (c *Cache) DeleteNamespace(ctx context.Context, ns string) error {
	if !c.Enabled() {
		return nil // Caching disabled
	}
	iter := c.rdb.Scan(ctx, 0, ns+":*", 100).Iterator() // Walk keys under ns
	var keys []string                                   // Keys to delete
	for iter.Next(ctx) {
		keys = append(keys, iter.Val()) // Collect each key
	}
	if err := iter.Err(); err != nil {
		return err // Scan failed
	}
	if len(keys) == 0 {
		return nil // Nothing cached
	}
	return c.rdb.Del(ctx, keys...).Err() // Delete keys from Redis
}

// LedgerKey is the cache namespace of everything cached for one user
func LedgerKey(userID string) string {
	return "ledger:user:" + userID
}

// LedgerEntry is the key of one cached response in a user's namespace
func LedgerEntry(userID string, parts ...string) string {
	return LedgerKey(userID) + ":" + strings.Join(parts, ":")
}
