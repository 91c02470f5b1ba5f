package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"portfolio-backend/internal/model"
)

const worksKey = "portfolio:works:all"

// WorkListCache keeps the unannotated full work listing in redis for a short
// TTL. Mutating operations invalidate it; favorite toggles do not touch it.
type WorkListCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewWorkListCache(client *redisv9.Client, ttl time.Duration) *WorkListCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &WorkListCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *WorkListCache) GetAll(ctx context.Context) ([]model.Work, bool, error) {
	raw, err := c.client.Get(ctx, worksKey).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get works failed: %w", err)
	}

	var works []model.Work
	if err := json.Unmarshal([]byte(raw), &works); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached works failed: %w", err)
	}
	return works, true, nil
}

func (c *WorkListCache) SetAll(ctx context.Context, works []model.Work) error {
	payload, err := json.Marshal(works)
	if err != nil {
		return fmt.Errorf("marshal works cache failed: %w", err)
	}
	if err := c.client.Set(ctx, worksKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set works failed: %w", err)
	}
	return nil
}

func (c *WorkListCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, worksKey).Err(); err != nil {
		return fmt.Errorf("redis delete works failed: %w", err)
	}
	return nil
}
