package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Cache provides typed caching for provider responses.
type Cache struct {
	client *Client
	prefix string
}

// NewCache creates a new cache helper.
func NewCache(client *Client, prefix string) *Cache {
	return &Cache{
		client: client,
		prefix: prefix,
	}
}

// Get retrieves a cached value. A miss is not an error.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !c.client.Enabled() {
		return false, nil
	}

	fullKey := fmt.Sprintf("%s:cache:%s", c.prefix, key)
	data, err := c.client.Redis().Get(ctx, fullKey).Bytes()
	if err != nil {
		return false, nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache unmarshal failed: %w", err)
	}

	return true, nil
}

// Set stores a value in cache with TTL.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !c.client.Enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}

	fullKey := fmt.Sprintf("%s:cache:%s", c.prefix, key)
	return c.client.Redis().Set(ctx, fullKey, data, ttl).Err()
}

// Delete removes a cached value.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if !c.client.Enabled() {
		return nil
	}

	fullKey := fmt.Sprintf("%s:cache:%s", c.prefix, key)
	return c.client.Redis().Del(ctx, fullKey).Err()
}

// Per-data-type TTLs for provider responses. Statements and profiles
// change slowly; prices and news go stale within hours.
const (
	TTLPrices     = 1 * time.Hour
	TTLMetrics    = 4 * time.Hour
	TTLNews       = 1 * time.Hour
	TTLProfile    = 24 * time.Hour
	TTLStatements = 7 * 24 * time.Hour
	TTLFilings    = 24 * time.Hour
)

// Cache key generators for provider responses.

func ProfileKey(symbol string) string {
	return fmt.Sprintf("profile:%s", symbol)
}

func MetricsKey(symbol string) string {
	return fmt.Sprintf("metrics:%s", symbol)
}

func NewsKey(symbol string) string {
	return fmt.Sprintf("news:%s", symbol)
}

func FilingsKey(symbol string) string {
	return fmt.Sprintf("filings:%s", symbol)
}
