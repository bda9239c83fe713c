package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"moviehub/internal/http-api/models"

	"github.com/redis/go-redis/v9"
)

// MovieCache keeps serialized MovieView detail responses in Redis. A nil
// cache (no Redis configured) is valid and degrades to pass-through, every
// method no-ops, so callers never need to branch on availability.
type MovieCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewMovieCache(redisURL string, ttl time.Duration) (*MovieCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &MovieCache{client: rdb, ttl: ttl}, nil
}

func movieKey(id int64) string {
	return fmt.Sprintf("movie:view:%d", id)
}

// GetView returns the cached view or (nil, nil) on a miss.
func (c *MovieCache) GetView(ctx context.Context, id int64) (*models.MovieView, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	raw, err := c.client.Get(ctx, movieKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var v models.MovieView
	if err := json.Unmarshal(raw, &v); err != nil {
		// stale/corrupt entry, treat as a miss
		return nil, nil
	}
	return &v, nil
}

func (c *MovieCache) SetView(ctx context.Context, v *models.MovieView) error {
	if c == nil || c.client == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, movieKey(v.ID), raw, c.ttl).Err()
}

// Invalidate drops the cached view for a movie. Called after any write that
// changes the movie row or its aggregates.
func (c *MovieCache) Invalidate(ctx context.Context, id int64) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, movieKey(id)).Err()
}

func (c *MovieCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
