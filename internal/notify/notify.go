// Package notify fans authenticated platform events out to interested
// consumers. Consumers subscribe to specific event tags; publishing never
// blocks on slow consumers.
package notify

import (
	"context"

	"github.com/donut/jw-webhooks/internal/service/webhook"
)

type Notifier interface {
	Publish(ctx context.Context, event webhook.EventBody) error

	// Subscribe returns a channel receiving events whose tag is in events.
	// An empty events list subscribes to every tag. The returned function
	// must be called to unsubscribe.
	Subscribe(ctx context.Context, events ...string) (<-chan webhook.EventBody, func(), error)
}
