package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/calref/inboxcal/internal/models"
)

// isoLikeRe accepts the ISO-ish variants small models actually emit:
// YYYY-MM-DDTHH:mm with optional :ss and optional trailing Z.
var isoLikeRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}(:\d{2})?Z?$`)

var fencedBlockRe = regexp.MustCompile("(?is)```(?:json)?\\s*(.*?)\\s*```")

// extractJSONBlock pulls a JSON object out of a response that may
// embed it in prose or fenced code blocks. Order: bare object, fenced
// block, first-{ to last-} slice, then give up and let JSON parsing
// fail on the raw text.
func extractJSONBlock(s string) string {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		return trimmed
	}
	if m := fencedBlockRe.FindStringSubmatch(trimmed); m != nil {
		return strings.TrimSpace(m[1])
	}
	first := strings.Index(trimmed, "{")
	last := strings.LastIndex(trimmed, "}")
	if first >= 0 && last > first {
		return strings.TrimSpace(trimmed[first : last+1])
	}
	return trimmed
}

// normalizeLocalISO strips a trailing Z and pads bare HH:mm
// timestamps with :00 seconds, so every timestamp leaving this
// package shares the local wall-clock shape used by the rules path.
func normalizeLocalISO(s string) string {
	s = strings.TrimSuffix(s, "Z")
	if len(s) == len("2006-01-02T15:04") {
		return s + ":00"
	}
	return s
}

type llmTask struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	StartISO    string   `json:"startISO"`
	EndISO      string   `json:"endISO"`
	AllDay      bool     `json:"allDay"`
	Location    string   `json:"location"`
	URL         string   `json:"url"`
	Attendees   []string `json:"attendees"`
	Confidence  *float64 `json:"confidence"`
}

type llmTaskResponse struct {
	Tasks []llmTask `json:"tasks"`
}

// parseTaskResponse validates the task-shape response against the
// strict schema and maps it into ExtractedItems. Any shape mismatch
// fails the whole response; the caller degrades.
func parseTaskResponse(raw string) ([]models.ExtractedItem, error) {
	var resp llmTaskResponse
	if err := json.Unmarshal([]byte(extractJSONBlock(raw)), &resp); err != nil {
		return nil, fmt.Errorf("invalid llm json: %w", err)
	}

	items := make([]models.ExtractedItem, 0, len(resp.Tasks))
	for i, t := range resp.Tasks {
		if len(t.Title) < 3 {
			return nil, fmt.Errorf("task %d: title too short", i)
		}
		if !isoLikeRe.MatchString(t.StartISO) {
			return nil, fmt.Errorf("task %d: startISO %q is not a local timestamp", i, t.StartISO)
		}
		if t.EndISO != "" && !isoLikeRe.MatchString(t.EndISO) {
			return nil, fmt.Errorf("task %d: endISO %q is not a local timestamp", i, t.EndISO)
		}
		confidence := 0.5
		if t.Confidence != nil {
			confidence = clampUnit(*t.Confidence)
		}
		item := models.ExtractedItem{
			Title:       t.Title,
			Description: t.Description,
			StartISO:    normalizeLocalISO(t.StartISO),
			AllDay:      t.AllDay,
			Location:    t.Location,
			URL:         t.URL,
			Attendees:   t.Attendees,
			Source:      models.SourceLLM,
			Confidence:  confidence,
		}
		if t.EndISO != "" {
			item.EndISO = normalizeLocalISO(t.EndISO)
		}
		items = append(items, item)
	}
	return items, nil
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

type llmEvent struct {
	Title      string   `json:"title"`
	Start      string   `json:"start"`
	End        string   `json:"end"`
	AllDay     bool     `json:"allDay"`
	Confidence *float64 `json:"confidence"`
}

type llmEventResponse struct {
	Events   []llmEvent `json:"events"`
	Warnings []string   `json:"warnings"`
}

// parseEventResponse validates the event-shape response. Unlike the
// task path, individually broken events are dropped during
// sanitization rather than failing the response.
func parseEventResponse(raw string) (*llmEventResponse, error) {
	var resp llmEventResponse
	if err := json.Unmarshal([]byte(extractJSONBlock(raw)), &resp); err != nil {
		return nil, fmt.Errorf("invalid llm json: %w", err)
	}
	for i, e := range resp.Events {
		if e.Title == "" {
			return nil, fmt.Errorf("event %d: missing title", i)
		}
		if e.Start == "" {
			return nil, fmt.Errorf("event %d: missing start", i)
		}
	}
	return &resp, nil
}

// sanitizeEvent enforces the event invariants: a start that fails to
// parse (or a present end that does) drops the event; end < start
// drops only the end and keeps a start-only event. Missing confidence
// defaults to 0.6 on this path.
func sanitizeEvent(e llmEvent, timezone string) (models.EventLite, bool) {
	start, ok := parseInstant(e.Start)
	if !ok {
		return models.EventLite{}, false
	}
	end := e.End
	if end != "" {
		endT, ok := parseInstant(end)
		if !ok {
			return models.EventLite{}, false
		}
		if endT.Before(start) {
			end = ""
		}
	}

	confidence := 0.6
	if e.Confidence != nil {
		confidence = *e.Confidence
	}
	title := strings.TrimSpace(e.Title)
	if title == "" {
		title = "Untitled"
	}

	return models.EventLite{
		Title:      title,
		Start:      e.Start,
		End:        end,
		AllDay:     e.AllDay,
		Timezone:   timezone,
		Source:     models.SourceLLM,
		Confidence: confidence,
	}, true
}

var instantLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseInstant(s string) (time.Time, bool) {
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
