package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/calref/inboxcal/internal/models"
)

// EventRequest is one envelope extraction call.
type EventRequest struct {
	Text          string
	Timezone      string
	ReferenceDate string
	BudgetMs      int
	Model         string
}

// EventExtractor asks the generative service for the events shape
// used by the either/or strategy and returns the ExtractionResult
// envelope. It never raises: every failure mode becomes
// {events: [], degraded: true, warnings: [reason]}.
type EventExtractor struct {
	client GenerateClient
}

// NewEventExtractor builds an event extractor over the given client.
func NewEventExtractor(client GenerateClient) *EventExtractor {
	return &EventExtractor{client: client}
}

// Extract runs one generation call bound to the request's clamped
// budget, then validates and sanitizes the response. Cancellation of
// the budget both aborts the in-flight call and produces the degraded
// shape within the budget, not budget plus network latency.
func (x *EventExtractor) Extract(ctx context.Context, req EventRequest) models.ExtractionResult {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return models.EmptyResult("empty text")
	}

	budgetMs := ClampBudgetMs(req.BudgetMs)
	ctx, cancel := context.WithTimeout(ctx, time.Duration(budgetMs)*time.Millisecond)
	defer cancel()

	prompt := buildEventPrompt(text, req.Timezone, req.ReferenceDate)

	raw, err := x.client.Generate(ctx, prompt, GenerateOptions{Model: req.Model, Temperature: 0})
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
			return models.DegradedResult(fmt.Sprintf("llm timeout after %dms", budgetMs))
		}
		return models.DegradedResult(err.Error())
	}

	parsed, err := parseEventResponse(raw)
	if err != nil {
		return models.DegradedResult(err.Error())
	}

	events := make([]models.EventLite, 0, len(parsed.Events))
	for _, e := range parsed.Events {
		if clean, ok := sanitizeEvent(e, req.Timezone); ok {
			events = append(events, clean)
		}
	}

	return models.ExtractionResult{Events: events, Warnings: parsed.Warnings}
}
