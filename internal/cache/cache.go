package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps a Redis connection for the two jobs this app has for it:
// best-effort caching and one-shot value handoff. The caching methods fail
// safe, a dead Redis degrades into a cache that always misses. A nil *Client
// behaves the same way, so components can run without Redis at all.
type Client struct {
	client *redis.Client
}

// New creates a new Redis client.
func New(addr, password string, db int) *Client {
	return &Client{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

func (c *Client) unavailable() bool {
	return c == nil || c.client == nil
}

// Get returns the value, or nil when the key is missing or Redis is down.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c.unavailable() {
		return nil, nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// redis.Nil and connectivity errors both behave like a miss
		return nil, nil
	}
	return res, nil
}

// GetDel atomically returns and removes a key, or nil if missing. Unlike Get,
// a Redis outage here is an error: one-shot values must not be silently lost.
func (c *Client) GetDel(ctx context.Context, key string) ([]byte, error) {
	if c.unavailable() {
		return nil, nil
	}
	res, err := c.client.GetDel(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Put stores a value with a TTL. Unlike Set, failures are returned: Put is
// for one-shot handoff values that must not appear stored when they are not.
func (c *Client) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c.unavailable() {
		return errors.New("redis unavailable")
	}
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Set stores a value with a TTL, ignoring Redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c.unavailable() {
		return nil
	}
	_ = c.client.Set(ctx, key, value, ttl).Err()
	return nil
}

// Delete removes a key, ignoring Redis errors.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c.unavailable() {
		return nil
	}
	_ = c.client.Del(ctx, key).Err()
	return nil
}
