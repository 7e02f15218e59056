package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/calref/inboxcal/internal/extract"
	"github.com/calref/inboxcal/internal/validation"
)

// EventsHandler serves the either/or event extraction strategy.
type EventsHandler struct {
	selector *extract.Selector
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(selector *extract.Selector) *EventsHandler {
	return &EventsHandler{selector: selector}
}

// EventsRequest represents an event extraction request
type EventsRequest struct {
	Text          string `json:"text" validate:"required,min=1"`
	Timezone      string `json:"timezone,omitempty"`
	ReferenceDate string `json:"referenceDate,omitempty"`
	LLMFirst      bool   `json:"llmFirst,omitempty"`
	BudgetMs      int    `json:"budgetMs,omitempty"`
}

// Extract handles POST /api/events/extract. The response data is the
// extraction envelope itself, so degraded results still come back 200
// with the degraded flag set.
func (h *EventsHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var req EventsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "Invalid JSON body")
		return
	}

	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "text is required")
		return
	}
	if len(req.Text) > MaxTextLength {
		respondJSONError(w, http.StatusBadRequest, "Bad Request", "text exceeds maximum length")
		return
	}

	result := h.selector.Extract(r.Context(), extract.SelectRequest{
		Text:          req.Text,
		Timezone:      req.Timezone,
		ReferenceDate: req.ReferenceDate,
		LLMFirst:      req.LLMFirst,
		BudgetMs:      req.BudgetMs,
	})

	respondJSON(w, http.StatusOK, result)
}
