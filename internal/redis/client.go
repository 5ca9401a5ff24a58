package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"order_entry/internal/models"
	"order_entry/internal/session"

	"github.com/go-redis/redis/v8"
)

const sessionPrefix = "session:"

// Client stores sessions as JSON under "session:<id>", refreshing the TTL on
// every save.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

func Initialize(ctx context.Context, redisURL string, ttl time.Duration) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb, ttl: ttl}, nil
}

func (c *Client) Save(ctx context.Context, s *models.Session) error {
	jsonData, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	return c.rdb.Set(ctx, sessionPrefix+s.ID, jsonData, c.ttl).Err()
}

func (c *Client) Get(ctx context.Context, id string) (*models.Session, error) {
	val, err := c.rdb.Get(ctx, sessionPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var s models.Session
	if err := json.Unmarshal(val, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	return &s, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.rdb.Del(ctx, sessionPrefix+id).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

var _ session.Store = (*Client)(nil)
