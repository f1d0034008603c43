package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/avik-s/PrizePicker/pkg/contracts/events"
)

// RedisCache encapsula o cache da quote corrente de cada linha de mercado.
// Client: cliente Redis
// TTL: tempo de expiração dos registros
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisCache cria uma instância de cache Redis com TTL configurável
func NewRedisCache(c *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: c, TTL: ttl}
}

// key gera a chave Redis da quote corrente de uma linha de mercado
func key(quoteKey string) string { return "props:current:" + quoteKey }

// SetCurrent armazena a quote corrente com TTL definido
func (r *RedisCache) SetCurrent(ctx context.Context, q events.PropQuoteUpdate) error {
	b, err := json.Marshal(q)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, key(q.Key()), b, r.TTL).Err()
}
