package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestContentType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		method      string
		contentType string
		wantStatus  int
	}{
		{"get passes without content type", "GET", "", http.StatusOK},
		{"post json", "POST", "application/json", http.StatusOK},
		{"post json with charset", "POST", "application/json; charset=utf-8", http.StatusOK},
		{"post multipart", "POST", "multipart/form-data; boundary=xyz", http.StatusOK},
		{"post missing content type", "POST", "", http.StatusBadRequest},
		{"post text plain", "POST", "text/plain", http.StatusUnsupportedMediaType},
		{"put xml", "PUT", "application/xml", http.StatusUnsupportedMediaType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(tt.method, "/", nil)
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()
			ContentType(okHandler()).ServeHTTP(w, req)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}
