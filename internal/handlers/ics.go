package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/calref/inboxcal/internal/ics"
	"github.com/calref/inboxcal/internal/models"
	"github.com/calref/inboxcal/internal/validation"
)

const (
	// MaxICSItems is the maximum number of items per calendar request
	MaxICSItems = 500
)

// ICSHandler renders extracted items as a downloadable calendar.
type ICSHandler struct{}

// NewICSHandler creates a new ICS handler
func NewICSHandler() *ICSHandler {
	return &ICSHandler{}
}

// ICSRequest represents a calendar generation request
type ICSRequest struct {
	Items []models.ExtractedItem `json:"items" validate:"required,min=1,max=500"`
}

// Generate handles POST /api/ics and responds with a text/calendar
// attachment rather than the JSON envelope.
func (h *ICSHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req ICSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}

	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "items must contain between 1 and 500 entries")
		return
	}

	calendar, err := ics.Build(req.Items)
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="deadlines.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(calendar)); err != nil {
		return
	}
}
