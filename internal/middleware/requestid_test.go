package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/calref/inboxcal/internal/extract/llm"
)

func TestRequestIDGeneratesAndPropagates(t *testing.T) {
	t.Parallel()
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = llm.ExtractRequestID(r.Context())
	})

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	RequestID(next).ServeHTTP(w, req)

	if seen == "" {
		t.Fatal("request ID missing from context")
	}
	if got := w.Header().Get("X-Request-ID"); got != seen {
		t.Errorf("X-Request-ID header = %q, context = %q", got, seen)
	}
}

func TestRequestIDHonorsIncomingHeader(t *testing.T) {
	t.Parallel()
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = llm.ExtractRequestID(r.Context())
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "upstream-id")
	w := httptest.NewRecorder()
	RequestID(next).ServeHTTP(w, req)

	if seen != "upstream-id" {
		t.Errorf("context request ID = %q, want upstream-id", seen)
	}
}
