package notify

import (
	"context"
	"sync"

	"github.com/donut/jw-webhooks/internal/service/webhook"
)

const subscriberBuffer = 16

var _ Notifier = (*Broadcaster)(nil)

// Broadcaster is an in-process Notifier for development and tests.
type Broadcaster struct {
	mu   sync.RWMutex
	subs map[int]*subscription
	next int
}

type subscription struct {
	events map[string]struct{}
	ch     chan webhook.EventBody
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subs: make(map[int]*subscription),
	}
}

func (b *Broadcaster) Publish(_ context.Context, event webhook.EventBody) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subs {
		if len(sub.events) > 0 {
			if _, ok := sub.events[event.Event]; !ok {
				continue
			}
		}
		// drop rather than block on a slow consumer
		select {
		case sub.ch <- event:
		default:
		}
	}
	return nil
}

func (b *Broadcaster) Subscribe(ctx context.Context, events ...string) (<-chan webhook.EventBody, func(), error) {
	sub := &subscription{
		ch: make(chan webhook.EventBody, subscriberBuffer),
	}
	if len(events) > 0 {
		sub.events = make(map[string]struct{}, len(events))
		for _, event := range events {
			sub.events[event] = struct{}{}
		}
	}

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = sub
	b.mu.Unlock()

	done := make(chan struct{})

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(sub.ch)
			close(done)
		})
	}

	go func() {
		select {
		case <-ctx.Done():
			unsubscribe()
		case <-done:
		}
	}()

	return sub.ch, unsubscribe, nil
}
