package http

import (
	"net/http"

	"discord-logger/internal/handler/http/respond"
)

const (
	maxAuthHeaderBytes = 8 << 10
	maxPathBytes       = 2 << 10
)

// InputValidation rejects oversized Authorization headers and paths before
// any routing or signature work happens.
func InputValidation() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.Header.Get("Authorization")) > maxAuthHeaderBytes {
				respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "authorization header too large"})
				return
			}
			if len(r.URL.Path) > maxPathBytes {
				respond.JSON(w, http.StatusRequestURITooLong, map[string]string{"error": "URI too long"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
