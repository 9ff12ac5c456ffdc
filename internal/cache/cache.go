// Package cache is the Redis-backed read cache for public content. Entries
// expire on a short TTL as a fallback; admin mutations invalidate their
// collection eagerly so public reads reflect changes without waiting for
// expiry. All failures are soft: callers fall through to the store.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrMiss = errors.New("cache miss")

// Collection keys used by the public read layer. Invalidation is per
// collection, not per entry: a sector edit drops every sector-derived view.
const (
	CollectionSectors     = "sectors"
	CollectionCaseStudies = "case-studies"
	CollectionSettings    = "settings"
)

type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func New(redisURL string, ttl time.Duration) (*Cache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &Cache{client: client, prefix: "public:", ttl: ttl}, nil
}

// NewWithClient creates a cache from an existing Redis client.
func NewWithClient(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, prefix: "public:", ttl: ttl}
}

func (c *Cache) key(collection, view string) string {
	return c.prefix + collection + ":" + view
}

// Get unmarshals the cached view into target. Returns ErrMiss when absent.
func (c *Cache) Get(ctx context.Context, collection, view string, target any) error {
	jsonData, err := c.client.Get(ctx, c.key(collection, view)).Result()
	if err == redis.Nil {
		return ErrMiss
	}
	if err != nil {
		return fmt.Errorf("cache get: %w", err)
	}
	if err := json.Unmarshal([]byte(jsonData), target); err != nil {
		return fmt.Errorf("cache decode: %w", err)
	}
	return nil
}

// Set stores a view under the collection with the configured TTL.
func (c *Cache) Set(ctx context.Context, collection, view string, value any) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Set(ctx, c.key(collection, view), jsonData, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate drops every cached view of a collection.
func (c *Cache) Invalidate(ctx context.Context, collection string) error {
	iter := c.client.Scan(ctx, 0, c.prefix+collection+":*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
