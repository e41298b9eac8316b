package cache

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"loans-marketplace-backend/internal/domain/event"
)

// EventChannel carries the JSON audit events for external consumers.
const EventChannel = "loan.events"

// RedisPublisher publishes committed loan events on a pub/sub channel.
type RedisPublisher struct{ rdb *redis.Client }

func NewRedisPublisher(rdb *redis.Client) *RedisPublisher { return &RedisPublisher{rdb: rdb} }

func (p *RedisPublisher) Publish(ctx context.Context, e *event.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, EventChannel, payload).Err()
}
