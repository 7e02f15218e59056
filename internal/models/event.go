package models

// EventLite is the minimal calendar event contract used by the
// envelope extraction path. Start and End are ISO 8601 strings;
// Timezone is the IANA zone the times are interpreted in.
type EventLite struct {
	Title      string  `json:"title"`
	Start      string  `json:"start"`
	End        string  `json:"end,omitempty"`
	AllDay     bool    `json:"allDay,omitempty"`
	Timezone   string  `json:"timezone,omitempty"`
	Source     string  `json:"source,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// ExtractionResult is the response envelope for event extraction.
// Events is never nil. Degraded is true iff the LLM fallback failed
// open; Warnings carries non-fatal notes such as the timeout reason.
type ExtractionResult struct {
	Events   []EventLite `json:"events"`
	Degraded bool        `json:"degraded"`
	Warnings []string    `json:"warnings,omitempty"`
}

// EmptyResult returns a non-degraded result with no events.
func EmptyResult(warnings ...string) ExtractionResult {
	return ExtractionResult{Events: []EventLite{}, Warnings: warnings}
}

// DegradedResult returns the canonical failed-open shape: no events,
// degraded flag set, and a human-readable reason.
func DegradedResult(reason string) ExtractionResult {
	return ExtractionResult{Events: []EventLite{}, Degraded: true, Warnings: []string{reason}}
}
