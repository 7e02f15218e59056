package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/calref/inboxcal/internal/extract/rules"
)

func newExtractHandler() *ExtractHandler {
	return NewExtractHandler(rules.NewExtractor(time.UTC))
}

func TestExtractEndpoint(t *testing.T) {
	t.Parallel()
	h := newExtractHandler()

	body := `{"texts":["Submit report by 2025-09-02"],"nowISO":"2025-08-27T12:00"}`
	req := httptest.NewRequest("POST", "/api/extract", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Extract(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			Items []struct {
				Title    string `json:"title"`
				StartISO string `json:"startISO"`
				Source   string `json:"source"`
			} `json:"items"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if !envelope.Success {
		t.Error("success = false")
	}
	if len(envelope.Data.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(envelope.Data.Items))
	}
	if envelope.Data.Items[0].StartISO != "2025-09-02T09:00:00" {
		t.Errorf("StartISO = %q", envelope.Data.Items[0].StartISO)
	}
}

func TestExtractEndpointRejectsBadInput(t *testing.T) {
	t.Parallel()
	h := newExtractHandler()

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", "{not json"},
		{"missing texts", `{}`},
		{"empty texts", `{"texts":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest("POST", "/api/extract", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.Extract(w, req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			var envelope struct {
				Success bool `json:"success"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("invalid error JSON: %v", err)
			}
			if envelope.Success {
				t.Error("success = true on error response")
			}
		})
	}
}
