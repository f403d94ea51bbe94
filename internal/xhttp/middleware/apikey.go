package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/donut/jw-webhooks/internal/xerrors"
	"github.com/donut/jw-webhooks/internal/xhttp"
)

// APIKey rejects requests whose X-API-Key header does not match key.
func APIKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(xhttp.XAPIKey)
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				xerrors.WriteError(r.Context(), w, xerrors.Unauthorized(
					xerrors.WithMessage("invalid api key"),
				))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
