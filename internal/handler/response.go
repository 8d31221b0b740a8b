package handler

import (
	"net/http"

	"github.com/hashforge/site-server-go/internal/httputil"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	httputil.WriteJSON(w, status, data)
}

func writeError(w http.ResponseWriter, err error) {
	httputil.WriteError(w, err)
}

// optional maps an empty form field to NULL.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
