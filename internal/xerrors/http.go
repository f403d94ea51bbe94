package xerrors

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/donut/jw-webhooks/internal/xhttp"
	"github.com/donut/jw-webhooks/internal/xslog"
	go_json "github.com/goccy/go-json"
)

type errorResponse struct {
	Message string `json:"message"`
}

func WriteError(ctx context.Context, w http.ResponseWriter, err error) {
	appErr := As(err)
	if appErr == nil {
		appErr = Internal(WithCause(err))
	}

	logError(ctx, appErr)

	xhttp.SetHeaderContentTypeApplicationJSON(w)
	w.WriteHeader(appErr.StatusCode)

	_ = go_json.NewEncoder(w).Encode(errorResponse{Message: appErr.Message})
}

func logError(ctx context.Context, err *Error) {
	logger := xslog.FromContext(ctx)
	attrs := []any{
		xslog.HTTPStatus(err.StatusCode),
		slog.String("message", err.Message),
	}
	if err.Cause != nil {
		attrs = append(attrs, xslog.Error(err.Cause))
	}

	switch err.StatusCode / 100 {
	case 5:
		logger.ErrorContext(ctx, "server error", attrs...)
	case 4:
		logger.WarnContext(ctx, "client error", attrs...)
	default:
		logger.InfoContext(ctx, "error response", attrs...)
	}
}
