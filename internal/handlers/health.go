package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// HealthChecker handles health check requests
type HealthChecker struct {
	timezone string
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(timezone string) *HealthChecker {
	return &HealthChecker{timezone: timezone}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthCheck handles the /healthz endpoint
func (h *HealthChecker) HealthCheck(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if mode == "extended" {
		checks := make(map[string]string)

		// The configured zone was validated at startup; report it so
		// operators can confirm which zone extraction is pinned to.
		if _, err := time.LoadLocation(h.timezone); err != nil {
			response.Status = "unhealthy"
			checks["timezone"] = "unhealthy: " + err.Error()
		} else {
			checks["timezone"] = "healthy: " + h.timezone
		}

		response.Checks = checks

		statusCode := http.StatusOK
		if response.Status == "unhealthy" {
			statusCode = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		json.NewEncoder(w).Encode(response)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// VersionResponse represents the version endpoint response
type VersionResponse struct {
	Version string `json:"version"`
}

// VersionInfo handles the /version endpoint
func (h *HealthChecker) VersionInfo(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, VersionResponse{Version: Version})
}
