package xslog

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/donut/jw-webhooks/internal/version"
	"github.com/donut/jw-webhooks/internal/xhttp"
)

const keyError = "error"

func Error(err error) slog.Attr {
	return slog.String(keyError, err.Error())
}

func RequestID(requestID string) slog.Attr {
	const requestIDKey = "request_id"
	return slog.String(requestIDKey, requestID)
}

func Stack() slog.Attr {
	const stackKey = "stack"
	return slog.String(stackKey, string(debug.Stack()))
}

func HTTPStatus(status int) slog.Attr {
	const statusKey = "status"
	return slog.Int(statusKey, status)
}

func Duration(duration time.Duration) slog.Attr {
	const durationKey = "duration"
	return slog.Duration(durationKey, duration)
}

func RequestMethod(r *http.Request) slog.Attr {
	const methodKey = "method"
	return slog.String(methodKey, r.Method)
}

func RequestPath(r *http.Request) slog.Attr {
	const pathKey = "path"
	return slog.String(pathKey, r.URL.Path)
}

func IP(ip string) slog.Attr {
	const ipKey = "ip"
	return slog.String(ipKey, ip)
}

func RequestIP(r *http.Request) slog.Attr {
	return IP(xhttp.GetRequestIP(r))
}

func Version() slog.Attr {
	const versionKey = "version"
	return slog.String(versionKey, version.Get())
}

func WebhookID(id string) slog.Attr {
	const webhookIDKey = "webhook_id"
	return slog.String(webhookIDKey, id)
}

func Event(event string) slog.Attr {
	const eventKey = "event"
	return slog.String(eventKey, event)
}

func MediaID(id string) slog.Attr {
	const mediaIDKey = "media_id"
	return slog.String(mediaIDKey, id)
}

func SiteID(id string) slog.Attr {
	const siteIDKey = "site_id"
	return slog.String(siteIDKey, id)
}

func EventTime(t time.Time) slog.Attr {
	const eventTimeKey = "event_time"
	return slog.Time(eventTimeKey, t)
}

func Count(count int) slog.Attr {
	const countKey = "count"
	return slog.Int(countKey, count)
}
