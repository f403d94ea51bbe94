package notify

import (
	"context"
	"fmt"

	"github.com/donut/jw-webhooks/internal/service/webhook"
	go_json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const eventChannelPrefix = "jw:events:"

var _ Notifier = (*RedisNotifier)(nil)

// RedisNotifier fans events out over Redis pub/sub, one channel per event
// tag, so consumers in other processes can register interest.
type RedisNotifier struct {
	client *redis.Client
}

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

func eventChannel(event string) string {
	return eventChannelPrefix + event
}

func (n *RedisNotifier) Publish(ctx context.Context, event webhook.EventBody) error {
	data, err := go_json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := n.client.Publish(ctx, eventChannel(event.Event), string(data)).Err(); err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

func (n *RedisNotifier) Subscribe(ctx context.Context, events ...string) (<-chan webhook.EventBody, func(), error) {
	var pubsub *redis.PubSub
	if len(events) == 0 {
		pubsub = n.client.PSubscribe(ctx, eventChannelPrefix+"*")
	} else {
		channels := make([]string, 0, len(events))
		for _, event := range events {
			channels = append(channels, eventChannel(event))
		}
		pubsub = n.client.Subscribe(ctx, channels...)
	}

	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("subscribe: %w", err)
	}

	eventCh := make(chan webhook.EventBody)

	go func() {
		defer close(eventCh)
		ch := pubsub.Channel()

		for msg := range ch {
			var event webhook.EventBody
			if err := go_json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}

			select {
			case eventCh <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	unsubscribe := func() {
		_ = pubsub.Close()
	}

	return eventCh, unsubscribe, nil
}
