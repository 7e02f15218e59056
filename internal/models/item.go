package models

// ExtractedItem is a single calendar-ready item produced by an
// extraction pass. Timestamps are local wall-clock strings with no
// offset (e.g. "2025-08-29T17:00:00"); the assumed timezone is
// carried separately by the caller.
type ExtractedItem struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	StartISO    string   `json:"startISO"`
	EndISO      string   `json:"endISO,omitempty"`
	AllDay      bool     `json:"allDay,omitempty"`
	Location    string   `json:"location,omitempty"`
	URL         string   `json:"url,omitempty"`
	Attendees   []string `json:"attendees,omitempty"`
	Source      string   `json:"source,omitempty"`
	Confidence  float64  `json:"confidence,omitempty"`
}

// Key returns the identity key used for deduplication and merging.
// Two items with the same title and start instant are the same item.
func (it ExtractedItem) Key() string {
	return it.Title + "__" + it.StartISO
}

// Item sources emitted by the rules pass. The LLM pass always tags
// its items with SourceLLM.
const (
	SourceRules    = "rules"
	SourceAbsolute = "absolute"
	SourceRelative = "relative"
	SourceWeekday  = "weekday"
	SourceLLM      = "llm"
)
