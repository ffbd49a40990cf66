// Package cache stores generated data URIs in Redis. Rendering is
// deterministic, so a cell is keyed by a hash of its inputs.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonathan/cv-generator/internal/types"
)

// DefaultPrefix is used when Options.Prefix is empty
const DefaultPrefix = "cvgen:"

// Options configures the Redis connection
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string        // Key prefix, default "cvgen:"
	TTL      time.Duration // Expiration for entries, 0 keeps them forever
}

// Cache is a Redis-backed result cache
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// New connects lazily to the Redis server in opts
func New(opts Options) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return NewWithClient(client, opts.Prefix, opts.TTL)
}

// NewWithClient wraps an existing client
func NewWithClient(client *redis.Client, prefix string, ttl time.Duration) *Cache {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Cache{client: client, prefix: prefix, ttl: ttl}
}

// Key hashes the generation inputs. The JSON encoding of CompleteCVData has
// a fixed field order, which makes it canonical for this purpose.
func Key(template types.TemplateID, format types.Format, data *types.CompleteCVData) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cv data for cache key: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(template))
	h.Write([]byte{'|'})
	h.Write([]byte(format))
	h.Write([]byte{'|'})
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil)), nil
}

func (c *Cache) resultKey(key string) string {
	return fmt.Sprintf("%sresult:%s", c.prefix, key)
}

// Get returns the cached data URI for key. A miss is ("", false, nil).
func (c *Cache) Get(ctx context.Context, key string) (string, bool, error) {
	uri, err := c.client.Get(ctx, c.resultKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read cache entry: %w", err)
	}
	return uri, true, nil
}

// Set stores uri under key with the configured TTL
func (c *Cache) Set(ctx context.Context, key, uri string) error {
	if err := c.client.Set(ctx, c.resultKey(key), uri, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Ping checks the connection
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the underlying client
func (c *Cache) Close() error {
	return c.client.Close()
}
