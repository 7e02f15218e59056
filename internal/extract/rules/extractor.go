package rules

import (
	"time"

	"github.com/calref/inboxcal/internal/models"
)

// Extractor is the deterministic rules pass. It is a pure function of
// (texts, reference time); all extracted instants are wall-clock
// times in the configured location.
type Extractor struct {
	loc *time.Location
}

// NewExtractor returns a rules extractor producing times in loc.
// A nil loc falls back to time.Local.
func NewExtractor(loc *time.Location) *Extractor {
	if loc == nil {
		loc = time.Local
	}
	return &Extractor{loc: loc}
}

// Location returns the extractor's assumed local zone.
func (e *Extractor) Location() *time.Location { return e.loc }

// Extract runs one deterministic pass over a batch of texts and
// returns the deduplicated items. Absolute evidence wins outright:
// when any absolute date matches in a text, relative and weekday
// resolution are skipped entirely for that text.
func (e *Extractor) Extract(texts []string, now time.Time) []models.ExtractedItem {
	now = now.In(e.loc)
	var items []models.ExtractedItem

	for _, raw := range texts {
		text := normalizeText(raw)
		if text == "" {
			continue
		}

		if days := matchAbsoluteDates(text, now, e.loc); len(days) > 0 {
			for _, day := range days {
				start, end, _ := resolveTimes(day, text)
				items = append(items, makeItem(text, start, end, models.SourceAbsolute))
			}
			continue
		}

		if day, source, ok := matchRelativeDate(text, now); ok {
			start, end, _ := resolveTimes(day, text)
			items = append(items, makeItem(text, start, end, source))
		}
	}

	return Dedupe(items)
}
