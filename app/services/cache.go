package services

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResponseCache invalidates cached API responses in Redis after ledger
// mutations. A nil ResponseCache is a no-op, so the app runs without Redis.
type ResponseCache struct {
	client *redis.Client
}

// NewResponseCache connects to Redis at addr. Returns nil when addr is empty
// or the server is unreachable; callers treat nil as cache disabled.
func NewResponseCache(addr string) *ResponseCache {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unavailable at %s, response cache disabled: %v", addr, err)
		return nil
	}
	log.Printf("Response cache connected to Redis at %s", addr)
	return &ResponseCache{client: client}
}

// Invalidate drops cached entries for the given request paths.
func (c *ResponseCache) Invalidate(paths ...string) {
	if c == nil || len(paths) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	keys := make([]string, len(paths))
	for i, p := range paths {
		keys[i] = "cache:" + p
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("Cache invalidation failed for %v: %v", paths, err)
	}
}

// Close releases the Redis connection.
func (c *ResponseCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
