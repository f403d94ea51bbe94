package handler

import (
	"net/http"

	"github.com/donut/jw-webhooks/internal/version"
	"github.com/donut/jw-webhooks/internal/xhttp"
)

func HandleHealth(w http.ResponseWriter, _ *http.Request) {
	xhttp.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Get(),
	})
}
