package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/calref/inboxcal/internal/extract"
	"github.com/calref/inboxcal/internal/extract/rules"
	"github.com/calref/inboxcal/internal/models"
	"github.com/calref/inboxcal/internal/validation"
)

const (
	// MaxExtractTexts is the maximum number of texts per request
	MaxExtractTexts = 100
	// MaxTextLength is the maximum length of a single text
	MaxTextLength = 100000
)

// ExtractHandler serves the deterministic rules pass.
type ExtractHandler struct {
	rules *rules.Extractor
}

// NewExtractHandler creates a new rules extraction handler
func NewExtractHandler(rulesEx *rules.Extractor) *ExtractHandler {
	return &ExtractHandler{rules: rulesEx}
}

// ExtractRequest represents a rules extraction request
type ExtractRequest struct {
	Texts  []string `json:"texts" validate:"required,min=1,max=100"`
	NowISO string   `json:"nowISO,omitempty"`
}

// ExtractResponse represents a rules extraction response
type ExtractResponse struct {
	Items []models.ExtractedItem `json:"items"`
}

// Extract handles POST /api/extract
func (h *ExtractHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}

	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "texts must contain between 1 and 100 entries")
		return
	}
	for _, text := range req.Texts {
		if len(text) > MaxTextLength {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", "text exceeds maximum length")
			return
		}
	}

	now := extract.ReferenceTime(h.rules.Location(), req.NowISO)
	items := h.rules.Extract(req.Texts, now)

	respondJSON(w, http.StatusOK, ExtractResponse{Items: items})
}
