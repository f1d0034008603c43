package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache guarda respostas de geração de slips por (style, size), com TTL
// curto: os slips são transientes e recomputados a cada expiração.
type Cache struct{ R *redis.Client }

func New(r *redis.Client) *Cache { return &Cache{R: r} }

func keySlips(style string, size int) string {
	return "slips:" + style + ":" + strconv.Itoa(size)
}

func (c *Cache) GetSlips(ctx context.Context, style string, size int, dst any) (bool, error) {
	b, err := c.R.Get(ctx, keySlips(style, size)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(b, dst)
}

func (c *Cache) SetSlips(ctx context.Context, style string, size int, v any, ttl time.Duration) error {
	b, _ := json.Marshal(v)
	return c.R.Set(ctx, keySlips(style, size), b, ttl).Err()
}
