package webhook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/donut/jw-webhooks/internal/storage"
	"github.com/donut/jw-webhooks/internal/xslog"
)

// Notifier receives each successfully authenticated, successfully decoded
// event. Delivery is fire-and-forget from the processor's perspective.
type Notifier interface {
	Publish(ctx context.Context, event EventBody) error
}

type Processor struct {
	hooks    storage.HookStore
	notifier Notifier
}

var _ Service = (*Processor)(nil)

func NewProcessor(hooks storage.HookStore, notifier Notifier) *Processor {
	return &Processor{
		hooks:    hooks,
		notifier: notifier,
	}
}

func (p *Processor) ProcessPublishRequest(ctx context.Context, req PublishRequest) (*EventBody, error) {
	logger := xslog.FromContext(ctx)

	id, err := ExtractWebhookID(req.Body)
	if err != nil {
		logger.ErrorContext(ctx, "failed getting webhook id from publish request",
			xslog.Error(err),
			slog.String("body", string(req.Body)),
		)
		return nil, fmt.Errorf("%w: %v", ErrUnparseableBody, err)
	}

	record, err := p.hooks.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		// expected under registration churn; stale webhooks at the platform
		// keep publishing until resync deletes them
		logger.InfoContext(ctx, "missing local record of webhook",
			xslog.WebhookID(id),
		)
		return nil, ErrUnknownWebhookID
	}
	if err != nil {
		return nil, fmt.Errorf("look up webhook secret: %w", err)
	}

	if err := VerifySignature(req.Authorization, record.Secret, req.Body); err != nil {
		logger.WarnContext(ctx, "failed authenticating publish request",
			xslog.Error(err),
			xslog.WebhookID(id),
			slog.String("authorization", req.Authorization),
			slog.String("body", string(req.Body)),
		)
		return nil, ErrAuthenticationFailed
	}

	event, err := DecodeEventBody(req.Body)
	if err != nil {
		// the signature passed, so this is a platform or schema bug
		logger.ErrorContext(ctx, "failed parsing authenticated publish request",
			xslog.Error(err),
			xslog.WebhookID(id),
			slog.String("body", string(req.Body)),
		)
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	if err := p.notifier.Publish(ctx, *event); err != nil {
		logger.ErrorContext(ctx, "failed to publish event notification",
			xslog.Error(err),
			xslog.WebhookID(event.WebhookID),
			xslog.Event(event.Event),
		)
	}

	logger.InfoContext(ctx, "processed publish request",
		xslog.WebhookID(event.WebhookID),
		xslog.Event(event.Event),
		xslog.MediaID(event.MediaID),
		xslog.SiteID(event.SiteID),
		xslog.EventTime(event.Time()),
	)

	return event, nil
}
