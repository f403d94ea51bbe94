package registration

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"time"

	"github.com/donut/jw-webhooks/internal/client/jw"
	"github.com/donut/jw-webhooks/internal/storage"
	"github.com/donut/jw-webhooks/internal/xslog"
	"golang.org/x/sync/errgroup"
)

var ErrNoEvents = errors.New("no events to register")

// ErrInsecureReceiveURL rejects non-HTTPS receive URLs; the platform only
// publishes to HTTPS endpoints.
var ErrInsecureReceiveURL = errors.New("receive URL must be https")

type Config struct {
	// ReceiveURL is the absolute URL the platform publishes to.
	ReceiveURL string

	// SiteID scopes registered webhooks to one platform site.
	SiteID string

	// WebhookName labels registrations in the platform dashboard.
	WebhookName string
}

type Manager struct {
	webhooks jw.WebhookService
	hooks    storage.HookStore
	cfg      Config
}

var _ Service = (*Manager)(nil)

func NewManager(webhooks jw.WebhookService, hooks storage.HookStore, cfg Config) (*Manager, error) {
	u, err := url.Parse(cfg.ReceiveURL)
	if err != nil {
		return nil, fmt.Errorf("parse receive URL: %w", err)
	}
	if u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %s", ErrInsecureReceiveURL, cfg.ReceiveURL)
	}

	return &Manager{
		webhooks: webhooks,
		hooks:    hooks,
		cfg:      cfg,
	}, nil
}

func (m *Manager) Register(ctx context.Context, events []string) (storage.HookRecord, error) {
	if len(events) == 0 {
		return storage.HookRecord{}, ErrNoEvents
	}

	created, err := m.webhooks.Create(ctx, jw.WebhookMetadata{
		Name:       m.cfg.WebhookName,
		WebhookURL: m.cfg.ReceiveURL,
		Events:     slices.Clone(events),
		SiteIDs:    []string{m.cfg.SiteID},
	})
	if err != nil {
		return storage.HookRecord{}, fmt.Errorf("create remote webhook: %w", err)
	}

	record := storage.HookRecord{
		ID:      created.ID,
		Secret:  created.Secret,
		Created: time.Now().UTC(),
	}
	if err := m.hooks.Insert(ctx, record); err != nil {
		return storage.HookRecord{}, &OrphanedRemoteError{WebhookID: created.ID, Err: err}
	}

	xslog.FromContext(ctx).InfoContext(ctx, "registered webhook",
		xslog.WebhookID(record.ID),
		xslog.Count(len(events)),
	)

	return record, nil
}

func (m *Manager) Unregister(ctx context.Context, id string) error {
	if err := m.webhooks.Delete(ctx, id); err != nil && !jw.IsNotFound(err) {
		return fmt.Errorf("delete remote webhook %s: %w", id, err)
	}
	if err := m.hooks.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete local hook record %s: %w", id, err)
	}

	xslog.FromContext(ctx).InfoContext(ctx, "unregistered webhook", xslog.WebhookID(id))
	return nil
}

func (m *Manager) Sync(ctx context.Context, events []string) (*storage.HookRecord, error) {
	remote, err := m.webhooks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list remote webhooks: %w", err)
	}
	remoteByID := make(map[string]jw.Webhook, len(remote))
	for _, webhook := range remote {
		remoteByID[webhook.ID] = webhook
	}

	local, err := m.hooks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list local hook records: %w", err)
	}

	logger := xslog.FromContext(ctx)

	var keep *storage.HookRecord
	var stale []string

	for _, record := range local {
		webhook, ok := remoteByID[record.ID]
		if !ok {
			// remote webhook vanished; the secret is useless now
			logger.InfoContext(ctx, "dropping local record of vanished webhook",
				xslog.WebhookID(record.ID))
			if err := m.hooks.Delete(ctx, record.ID); err != nil {
				return nil, fmt.Errorf("delete stale hook record %s: %w", record.ID, err)
			}
			continue
		}

		if keep == nil && m.matchesDesired(webhook, events) {
			keep = &record
			continue
		}
		stale = append(stale, record.ID)
	}

	// only webhooks we hold local records for are ours to delete; other
	// registrations on the account are left alone
	g, gctx := errgroup.WithContext(ctx)
	for _, id := range stale {
		g.Go(func() error {
			return m.Unregister(gctx, id)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("unregister stale webhooks: %w", err)
	}

	if keep != nil {
		return keep, nil
	}
	if len(events) == 0 {
		return nil, nil
	}

	record, err := m.Register(ctx, events)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (m *Manager) matchesDesired(webhook jw.Webhook, events []string) bool {
	if len(events) == 0 {
		return false
	}
	if webhook.Metadata.WebhookURL != m.cfg.ReceiveURL {
		return false
	}

	got := slices.Sorted(slices.Values(webhook.Metadata.Events))
	want := slices.Sorted(slices.Values(events))
	return slices.Equal(got, want)
}
