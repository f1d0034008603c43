package pubsub

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const ChannelPropsBroadcast = "prop_quotes_broadcast"

type RedisBroadcaster struct {
	r *redis.Client
}

func NewRedisBroadcaster(r *redis.Client) *RedisBroadcaster {
	return &RedisBroadcaster{r: r}
}

func (b *RedisBroadcaster) Publish(ctx context.Context, channel string, payload []byte) error {
	return b.r.Publish(ctx, channel, payload).Err()
}

// Payload padrão para o WS do slips-service
type WSUpdate struct {
	Sport   string      `json:"sport"`
	Key     string      `json:"key"` // player + prop type
	Payload interface{} `json:"payload"`
}
