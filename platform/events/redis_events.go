package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"github.com/21R01A7263/docGPT/models"
	"github.com/21R01A7263/docGPT/pkg/logging"
)

const SessionEventChannel = "session:events"

// RedisPublisher mirrors session events onto a Redis channel so other processes
// can follow the session.
type RedisPublisher struct {
	redisClient *redis.Client
}

func NewRedisPublisher(redisClient *redis.Client) *RedisPublisher {
	return &RedisPublisher{redisClient: redisClient}
}

func (p *RedisPublisher) Publish(ctx context.Context, event models.SessionEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		logging.Logger.Error("fail PublishSessionEvent", "error", err)
		return err
	}
	if err := p.redisClient.Publish(ctx, SessionEventChannel, data).Err(); err != nil {
		logging.Logger.Error("fail PublishSessionEvent", "error", err)
		return err
	}
	return nil
}

func (p *RedisPublisher) SubscribeSessionEvents(ctx context.Context) (<-chan models.SessionEvent, error) {
	pubsub := p.redisClient.Subscribe(ctx, SessionEventChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		logging.Logger.Error("fail SubscribeSessionEvents", "error", err)
		return nil, err
	}
	ch := make(chan models.SessionEvent, 100)

	go func() {
		defer close(ch)
		defer func(pubsub *redis.PubSub) {
			if err := pubsub.Close(); err != nil {
				logging.Logger.Error("fail SubscribeSessionEvents close", "error", err)
			}
		}(pubsub)

		msgs := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var event models.SessionEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					logging.Logger.Error("Failed to unmarshal event", "error", err)
					continue
				}

				select {
				case ch <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
