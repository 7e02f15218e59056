package extract

import (
	"context"

	"github.com/calref/inboxcal/internal/extract/llm"
	"github.com/calref/inboxcal/internal/extract/rules"
	"github.com/calref/inboxcal/internal/models"
)

// SelectRequest is one text run through the either/or strategy.
type SelectRequest struct {
	Text          string
	Timezone      string
	ReferenceDate string
	LLMFirst      bool
	BudgetMs      int
}

// Selector is the either/or arbiter: it returns one strategy's result
// verbatim and never merges. With LLMFirst set, a non-degraded,
// non-empty LLM result wins outright; otherwise the rules result is
// returned as-is. The default order tries rules first and falls back
// to the LLM only on an empty rules result.
type Selector struct {
	rules *rules.Extractor
	llm   *llm.EventExtractor
}

// NewSelector composes the two extractors into the either/or strategy.
func NewSelector(rulesEx *rules.Extractor, eventEx *llm.EventExtractor) *Selector {
	return &Selector{rules: rulesEx, llm: eventEx}
}

// Extract runs the failover policy and returns the envelope.
func (s *Selector) Extract(ctx context.Context, req SelectRequest) models.ExtractionResult {
	if req.LLMFirst {
		llmResult := s.llm.Extract(ctx, llm.EventRequest{
			Text:          req.Text,
			Timezone:      req.Timezone,
			ReferenceDate: req.ReferenceDate,
			BudgetMs:      req.BudgetMs,
		})
		if !llmResult.Degraded && len(llmResult.Events) > 0 {
			return llmResult
		}
		return s.rulesEnvelope(req)
	}

	rulesResult := s.rulesEnvelope(req)
	if len(rulesResult.Events) > 0 {
		return rulesResult
	}
	return s.llm.Extract(ctx, llm.EventRequest{
		Text:          req.Text,
		Timezone:      req.Timezone,
		ReferenceDate: req.ReferenceDate,
		BudgetMs:      req.BudgetMs,
	})
}

// rulesEnvelope runs the rules pass and wraps its items in the
// envelope shape used by this strategy.
func (s *Selector) rulesEnvelope(req SelectRequest) models.ExtractionResult {
	now := ReferenceTime(s.rules.Location(), req.ReferenceDate)
	items := s.rules.Extract([]string{req.Text}, now)

	events := make([]models.EventLite, 0, len(items))
	for _, it := range items {
		events = append(events, models.EventLite{
			Title:      it.Title,
			Start:      it.StartISO,
			End:        it.EndISO,
			AllDay:     it.AllDay,
			Timezone:   req.Timezone,
			Source:     models.SourceRules,
			Confidence: RulesConfidence,
		})
	}
	return models.ExtractionResult{Events: events}
}
