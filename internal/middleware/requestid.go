package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/calref/inboxcal/internal/extract/llm"
)

// RequestID assigns each request a UUID, echoes it in the X-Request-ID
// response header, and stores it in the context so LLM debug logs can
// correlate prompt and response entries.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := llm.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
