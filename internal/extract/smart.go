// Package extract arbitrates between the deterministic rules pass and
// the generative fallback. Two independent strategies are exposed:
// Smart (merge, selected by mode) and Selector (either/or failover,
// selected by an llmFirst toggle). Both must stay reachable; they are
// deliberately distinct policies.
package extract

import (
	"context"
	"time"

	"github.com/calref/inboxcal/internal/extract/llm"
	"github.com/calref/inboxcal/internal/extract/rules"
	"github.com/calref/inboxcal/internal/models"
)

// RulesConfidence is the flat trust score attached to rules items
// when they compete with LLM output during merging.
const RulesConfidence = 0.75

// SmartRequest is one email run through the merge strategy.
type SmartRequest struct {
	Subject string
	Body    string
	// NowISO is an optional deterministic reference instant
	// (local wall-clock, YYYY-MM-DDTHH:mm[:ss]). Empty means now.
	NowISO string
	Mode   models.SmartMode
}

// Smart is the merge-strategy arbiter.
type Smart struct {
	rules *rules.Extractor
	llm   *llm.TaskExtractor
}

// NewSmart composes the two extractors into the merge strategy.
func NewSmart(rulesEx *rules.Extractor, taskEx *llm.TaskExtractor) *Smart {
	return &Smart{rules: rulesEx, llm: taskEx}
}

// Extract arbitrates one email per the requested mode:
//
//   - "rules": the rules pass only.
//   - "llm": the LLM pass only; a failed call yields an empty list by
//     design, never a silent rules substitution.
//   - "auto": rules first; a non-empty rules result returns
//     immediately without invoking the LLM. Only an empty rules
//     result triggers the fallback, after which both sets merge with
//     the higher-confidence item winning key collisions.
//
// Titles are prefixed with the email subject for downstream grouping.
func (s *Smart) Extract(ctx context.Context, req SmartRequest) []models.ExtractedItem {
	mode := req.Mode
	if mode == "" {
		mode = models.SmartModeAuto
	}
	now := ReferenceTime(s.rules.Location(), req.NowISO)

	rulesItems := s.rules.Extract([]string{req.Body}, now)
	for i := range rulesItems {
		rulesItems[i].Title = prefixSubject(req.Subject, rulesItems[i].Title)
		if rulesItems[i].Source == "" {
			rulesItems[i].Source = models.SourceRules
		}
		rulesItems[i].Confidence = RulesConfidence
	}

	if mode == models.SmartModeRules {
		return rulesItems
	}
	if mode == models.SmartModeAuto && len(rulesItems) > 0 {
		// Cost avoidance: rules evidence is good enough.
		return rulesItems
	}

	result := s.llm.Extract(ctx, req.Subject, req.Body, req.NowISO)
	llmItems := result.Items
	for i := range llmItems {
		llmItems[i].Title = prefixSubject(req.Subject, llmItems[i].Title)
	}

	if mode == models.SmartModeLLM {
		return llmItems
	}
	return rules.MergePreferConfidence(rulesItems, llmItems)
}

// ReferenceTime parses an optional deterministic reference instant
// in the given zone, falling back to the current time.
func ReferenceTime(loc *time.Location, nowISO string) time.Time {
	if nowISO != "" {
		for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"} {
			if t, err := time.ParseInLocation(layout, nowISO, loc); err == nil {
				return t
			}
		}
	}
	return time.Now().In(loc)
}

func prefixSubject(subject, title string) string {
	if subject == "" {
		return title
	}
	return "[" + subject + "] " + title
}
