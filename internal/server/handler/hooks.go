package handler

import (
	"net/http"

	"github.com/donut/jw-webhooks/internal/service/registration"
	"github.com/donut/jw-webhooks/internal/storage"
	"github.com/donut/jw-webhooks/internal/xerrors"
	"github.com/donut/jw-webhooks/internal/xhttp"
	"github.com/donut/jw-webhooks/internal/xslog"
)

// Hooks exposes the registration state to operators. Secrets never leave
// the store: HookRecord marshals without its secret field.
type Hooks struct {
	hooks     storage.HookStore
	registrar registration.Service
	events    []string
}

func NewHooks(hooks storage.HookStore, registrar registration.Service, events []string) *Hooks {
	return &Hooks{
		hooks:     hooks,
		registrar: registrar,
		events:    events,
	}
}

type listHooksResponse struct {
	Hooks []storage.HookRecord `json:"hooks"`
}

func (h *Hooks) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	records, err := h.hooks.List(ctx)
	if err != nil {
		xerrors.WriteError(ctx, w, xerrors.Internal(
			xerrors.WithMessage("failed to list webhook records"),
			xerrors.WithCause(err),
		))
		return
	}

	xhttp.WriteOK(w, listHooksResponse{Hooks: records})
}

type syncResponse struct {
	Hook *storage.HookRecord `json:"hook"`
}

func (h *Hooks) HandleSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	record, err := h.registrar.Sync(ctx, h.events)
	if err != nil {
		xerrors.WriteError(ctx, w, xerrors.Internal(
			xerrors.WithMessage("failed to sync webhook registration"),
			xerrors.WithCause(err),
		))
		return
	}

	if record != nil {
		xslog.FromContext(ctx).InfoContext(ctx, "webhook registration synced",
			xslog.WebhookID(record.ID),
		)
	}
	xhttp.WriteOK(w, syncResponse{Hook: record})
}
