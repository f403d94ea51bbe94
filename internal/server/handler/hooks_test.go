package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	go_json "github.com/goccy/go-json"

	"github.com/donut/jw-webhooks/internal/server/handler"
	"github.com/donut/jw-webhooks/internal/storage"
)

type stubRegistrar struct {
	synced []string
	record *storage.HookRecord
	err    error
}

func (s *stubRegistrar) Register(_ context.Context, _ []string) (storage.HookRecord, error) {
	panic("not used")
}

func (s *stubRegistrar) Unregister(_ context.Context, _ string) error {
	panic("not used")
}

func (s *stubRegistrar) Sync(_ context.Context, events []string) (*storage.HookRecord, error) {
	s.synced = events
	return s.record, s.err
}

func TestHandleList_RedactsSecrets(t *testing.T) {
	t.Parallel()

	hooks := storage.NewMemoryHookStore()
	record := storage.HookRecord{
		ID:      "wh_123",
		Secret:  "super-secret",
		Created: time.Unix(1700000000, 0).UTC(),
	}
	if err := hooks.Insert(context.Background(), record); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	h := handler.NewHooks(hooks, &stubRegistrar{}, nil)

	rec := httptest.NewRecorder()
	h.HandleList(rec, httptest.NewRequest(http.MethodGet, "/hooks", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if strings.Contains(rec.Body.String(), record.Secret) {
		t.Errorf("response leaks webhook secret: %s", rec.Body.String())
	}

	var got struct {
		Hooks []storage.HookRecord `json:"hooks"`
	}
	if err := go_json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(got.Hooks) != 1 || got.Hooks[0].ID != record.ID {
		t.Errorf("hooks = %+v, want one record with id %s", got.Hooks, record.ID)
	}
}

func TestHandleSync_PassesConfiguredEvents(t *testing.T) {
	t.Parallel()

	events := []string{"media_updated", "media_deleted"}
	registrar := &stubRegistrar{
		record: &storage.HookRecord{ID: "wh_456", Created: time.Now().UTC()},
	}

	h := handler.NewHooks(storage.NewMemoryHookStore(), registrar, events)

	rec := httptest.NewRecorder()
	h.HandleSync(rec, httptest.NewRequest(http.MethodPost, "/hooks/sync", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if len(registrar.synced) != len(events) {
		t.Errorf("synced events = %v, want %v", registrar.synced, events)
	}
}

func TestHandleSync_ReportsFailure(t *testing.T) {
	t.Parallel()

	registrar := &stubRegistrar{err: context.DeadlineExceeded}

	h := handler.NewHooks(storage.NewMemoryHookStore(), registrar, nil)

	rec := httptest.NewRecorder()
	h.HandleSync(rec, httptest.NewRequest(http.MethodPost, "/hooks/sync", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}
