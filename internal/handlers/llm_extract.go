package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/calref/inboxcal/internal/extract"
	"github.com/calref/inboxcal/internal/models"
	"github.com/calref/inboxcal/internal/validation"
)

const (
	// MaxBatchEmails is the maximum number of emails per batch request
	MaxBatchEmails = 50
)

// SmartExtractHandler serves the merge-strategy extraction over email
// batches.
type SmartExtractHandler struct {
	smart *extract.Smart
}

// NewSmartExtractHandler creates a new smart extraction handler
func NewSmartExtractHandler(smart *extract.Smart) *SmartExtractHandler {
	return &SmartExtractHandler{smart: smart}
}

// SmartExtractItem is one email in the batch request.
type SmartExtractItem struct {
	Subject string `json:"subject"`
	Text    string `json:"text" validate:"required,min=1"`
}

// SmartExtractRequest represents a batch extraction request
type SmartExtractRequest struct {
	Items  []SmartExtractItem `json:"items" validate:"required,min=1,max=50,dive"`
	NowISO string             `json:"nowISO,omitempty"`
	Mode   string             `json:"mode,omitempty"`
}

// SmartExtractResponse represents a batch extraction response
type SmartExtractResponse struct {
	Results []extract.EmailTasks `json:"results"`
}

// Extract handles POST /api/llm-extract
func (h *SmartExtractHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var req SmartExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}

	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "items must contain between 1 and 50 entries, each with text")
		return
	}
	if req.Mode != "" {
		if err := validation.ValidateSmartMode(req.Mode); err != nil {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", err.Error())
			return
		}
	}
	for _, item := range req.Items {
		if len(item.Text) > MaxTextLength {
			respondJSONError(w, http.StatusBadRequest, "Bad Request", "text exceeds maximum length")
			return
		}
	}

	emails := make([]extract.EmailInput, 0, len(req.Items))
	for _, item := range req.Items {
		emails = append(emails, extract.EmailInput{
			Subject: validation.SanitizeText(item.Subject),
			Text:    item.Text,
		})
	}

	results := h.smart.ExtractBatch(r.Context(), emails, req.NowISO, models.SmartMode(req.Mode))

	respondJSON(w, http.StatusOK, SmartExtractResponse{Results: results})
}
