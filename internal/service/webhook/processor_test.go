package webhook

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/donut/jw-webhooks/internal/storage"
	"github.com/google/go-cmp/cmp"
)

type captureNotifier struct {
	published []EventBody
	err       error
}

func (n *captureNotifier) Publish(_ context.Context, event EventBody) error {
	n.published = append(n.published, event)
	return n.err
}

type failingHookStore struct {
	storage.HookStore
	err error
}

func (s *failingHookStore) Get(context.Context, string) (storage.HookRecord, error) {
	return storage.HookRecord{}, s.err
}

func newTestProcessor(t *testing.T, secret string) (*Processor, *captureNotifier) {
	t.Helper()

	hooks := storage.NewMemoryHookStore()
	record := storage.HookRecord{
		ID:      "hook-1",
		Secret:  secret,
		Created: time.Unix(1700000000, 0).UTC(),
	}
	if err := hooks.Insert(t.Context(), record); err != nil {
		t.Fatalf("failed to seed hook store: %v", err)
	}

	notifier := &captureNotifier{}
	return NewProcessor(hooks, notifier), notifier
}

func TestProcessor_Dispatches(t *testing.T) {
	t.Parallel()

	const secret = "per-hook-secret"
	processor, notifier := newTestProcessor(t, secret)

	body := []byte(`{"webhook_id":"hook-1","event":"media_deleted","media_id":"42","site_id":"abc","event_time":1700000000}`)
	req := PublishRequest{Body: body, Authorization: Sign(secret, body)}

	event, err := processor.ProcessPublishRequest(t.Context(), req)
	if err != nil {
		t.Fatalf("ProcessPublishRequest() error = %v", err)
	}

	want := EventBody{
		WebhookID: "hook-1",
		Event:     "media_deleted",
		MediaID:   "42",
		SiteID:    "abc",
		EventTime: 1700000000,
	}
	if diff := cmp.Diff(&want, event); diff != "" {
		t.Errorf("ProcessPublishRequest() event mismatch (-want +got):\n%s", diff)
	}
	if len(notifier.published) != 1 {
		t.Fatalf("notifier received %d events, want 1", len(notifier.published))
	}
	if diff := cmp.Diff(want, notifier.published[0]); diff != "" {
		t.Errorf("notified event mismatch (-want +got):\n%s", diff)
	}
}

func TestProcessor_UnknownWebhookIDNeverVerifies(t *testing.T) {
	t.Parallel()

	processor, notifier := newTestProcessor(t, "per-hook-secret")

	// no matching record: rejected before any signature work, so even a
	// missing Authorization header must not change the outcome
	body := []byte(`{"webhook_id":"X","event":"media_updated","media_id":"42","site_id":"abc"}`)
	req := PublishRequest{Body: body}

	_, err := processor.ProcessPublishRequest(t.Context(), req)
	if !errors.Is(err, ErrUnknownWebhookID) {
		t.Errorf("ProcessPublishRequest() error = %v, want ErrUnknownWebhookID", err)
	}
	if len(notifier.published) != 0 {
		t.Errorf("notifier received %d events, want 0", len(notifier.published))
	}
}

func TestProcessor_RejectsTamperedAuthorization(t *testing.T) {
	t.Parallel()

	const secret = "per-hook-secret"
	processor, notifier := newTestProcessor(t, secret)

	body := []byte(`{"webhook_id":"hook-1","event":"media_deleted","media_id":"42","site_id":"abc","event_time":1700000000}`)
	authorization := Sign(secret, body)
	tampered := authorization[:len(authorization)-1] + "#"

	_, err := processor.ProcessPublishRequest(t.Context(), PublishRequest{
		Body:          body,
		Authorization: tampered,
	})
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("ProcessPublishRequest() error = %v, want ErrAuthenticationFailed", err)
	}
	if len(notifier.published) != 0 {
		t.Errorf("notifier received %d events, want 0", len(notifier.published))
	}
}

func TestProcessor_RejectsMissingAuthorization(t *testing.T) {
	t.Parallel()

	processor, _ := newTestProcessor(t, "per-hook-secret")

	body := []byte(`{"webhook_id":"hook-1","event":"media_updated","media_id":"42","site_id":"abc"}`)

	_, err := processor.ProcessPublishRequest(t.Context(), PublishRequest{Body: body})
	if !errors.Is(err, ErrAuthenticationFailed) {
		t.Errorf("ProcessPublishRequest() error = %v, want ErrAuthenticationFailed", err)
	}
}

func TestProcessor_RejectsUnparseableBody(t *testing.T) {
	t.Parallel()

	processor, notifier := newTestProcessor(t, "per-hook-secret")

	_, err := processor.ProcessPublishRequest(t.Context(), PublishRequest{
		Body: []byte{0x00, 0x01, 0xff},
	})
	if !errors.Is(err, ErrUnparseableBody) {
		t.Errorf("ProcessPublishRequest() error = %v, want ErrUnparseableBody", err)
	}
	if len(notifier.published) != 0 {
		t.Errorf("notifier received %d events, want 0", len(notifier.published))
	}
}

func TestProcessor_RejectsMalformedAuthenticatedPayload(t *testing.T) {
	t.Parallel()

	const secret = "per-hook-secret"
	processor, notifier := newTestProcessor(t, secret)

	// extractable id and a valid signature, but the full decode fails
	body := []byte(`{"webhook_id":"hook-1","event":"media_updated"}`)

	_, err := processor.ProcessPublishRequest(t.Context(), PublishRequest{
		Body:          body,
		Authorization: Sign(secret, body),
	})
	if !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("ProcessPublishRequest() error = %v, want ErrMalformedPayload", err)
	}
	if len(notifier.published) != 0 {
		t.Errorf("notifier received %d events, want 0", len(notifier.published))
	}
}

func TestProcessor_NotifierFailureIsNotPropagated(t *testing.T) {
	t.Parallel()

	const secret = "per-hook-secret"
	hooks := storage.NewMemoryHookStore()
	if err := hooks.Insert(t.Context(), storage.HookRecord{ID: "hook-1", Secret: secret}); err != nil {
		t.Fatalf("failed to seed hook store: %v", err)
	}
	notifier := &captureNotifier{err: errors.New("broker down")}
	processor := NewProcessor(hooks, notifier)

	body := []byte(`{"webhook_id":"hook-1","event":"media_updated","media_id":"42","site_id":"abc"}`)

	if _, err := processor.ProcessPublishRequest(t.Context(), PublishRequest{
		Body:          body,
		Authorization: Sign(secret, body),
	}); err != nil {
		t.Errorf("ProcessPublishRequest() error = %v, want nil", err)
	}
}

func TestProcessor_StoreFailure(t *testing.T) {
	t.Parallel()

	notifier := &captureNotifier{}
	processor := NewProcessor(&failingHookStore{err: errors.New("connection reset")}, notifier)

	body := []byte(`{"webhook_id":"hook-1","event":"media_updated","media_id":"42","site_id":"abc"}`)

	_, err := processor.ProcessPublishRequest(t.Context(), PublishRequest{Body: body})
	if err == nil || errors.Is(err, ErrUnknownWebhookID) {
		t.Errorf("ProcessPublishRequest() error = %v, want storage error", err)
	}
}
