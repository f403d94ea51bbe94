package handler

import (
	"io"
	"net/http"

	"github.com/donut/jw-webhooks/internal/service/webhook"
	"github.com/donut/jw-webhooks/internal/xhttp"
	"github.com/donut/jw-webhooks/internal/xslog"
)

// Webhook receives publish requests from the platform.
type Webhook struct {
	service      webhook.Service
	maxBodyBytes int64
}

func NewWebhook(service webhook.Service, maxBodyBytes int64) *Webhook {
	return &Webhook{
		service:      service,
		maxBodyBytes: maxBodyBytes,
	}
}

// HandleReceive runs a publish request through the processing pipeline.
//
// The response is the same regardless of outcome. Callers learn nothing
// about whether the request was authenticated, parsed or dispatched;
// every rejection reason is visible only in the logs.
func (h *Webhook) HandleReceive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		xslog.FromContext(ctx).WarnContext(ctx, "failed to read publish request body",
			xslog.Error(err),
		)
		w.WriteHeader(http.StatusOK)
		return
	}

	_, _ = h.service.ProcessPublishRequest(ctx, webhook.PublishRequest{
		Body:          body,
		Authorization: r.Header.Get(xhttp.Authorization),
	})

	w.WriteHeader(http.StatusOK)
}
