package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/efoodhub/backend/internal/models"
)

const (
	foodTTL        = 5 * time.Minute
	idempotencyTTL = 24 * time.Hour
)

// Client is a thin redis wrapper for catalog read-through caching and
// place-order idempotency keys. A nil *Client is valid and disables caching.
type Client struct {
	rdb *redis.Client
}

func New(addr, password string) *Client {
	if addr == "" {
		return nil
	}
	return &Client{rdb: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})}
}

func (c *Client) GetFood(ctx context.Context, id uint) (*models.Food, bool) {
	if c == nil {
		return nil, false
	}
	val, err := c.rdb.Get(ctx, foodKey(id)).Result()
	if err != nil {
		return nil, false
	}
	var f models.Food
	if err := json.Unmarshal([]byte(val), &f); err != nil {
		return nil, false
	}
	return &f, true
}

func (c *Client) SetFood(ctx context.Context, f *models.Food) {
	if c == nil {
		return
	}
	data, err := json.Marshal(f)
	if err != nil {
		return
	}
	c.rdb.Set(ctx, foodKey(f.ID), data, foodTTL)
}

func (c *Client) InvalidateFood(ctx context.Context, id uint) {
	if c == nil {
		return
	}
	c.rdb.Del(ctx, foodKey(id))
}

// ClaimIdempotencyKey marks a key as used. It returns false when the key was
// already claimed by an earlier request.
func (c *Client) ClaimIdempotencyKey(ctx context.Context, key string) (bool, error) {
	if c == nil {
		return true, nil
	}
	ok, err := c.rdb.SetNX(ctx, idempotencyKey(key), "claimed", idempotencyTTL).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, err
	}
	return ok, nil
}

// ReleaseIdempotencyKey frees a claimed key so a rolled-back request can retry.
func (c *Client) ReleaseIdempotencyKey(ctx context.Context, key string) {
	if c == nil {
		return
	}
	c.rdb.Del(ctx, idempotencyKey(key))
}

func foodKey(id uint) string {
	return fmt.Sprintf("food:%d", id)
}

func idempotencyKey(key string) string {
	return fmt.Sprintf("idempotent-key:%s", key)
}

func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
