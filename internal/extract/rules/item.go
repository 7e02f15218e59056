package rules

import (
	"regexp"
	"strings"
	"time"

	"github.com/calref/inboxcal/internal/models"
)

const (
	maxTitleLen   = 120
	maxSnippetLen = 280
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	deadlineRe   = regexp.MustCompile(`(?i)(deadline|due|submit|deliver|send|by|meeting|call|review|follow[- ]?up)`)
)

// normalizeText collapses runs of whitespace and trims the input.
func normalizeText(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// makeTitle derives a category-tagged title from normalized text.
func makeTitle(text string) string {
	category := "Task"
	if deadlineRe.MatchString(text) {
		category = "Deadline"
	}
	return category + ": " + truncateRunes(text, maxTitleLen)
}

// snippet returns the description: the first 280 characters with an
// ellipsis appended when truncated.
func snippet(text string) string {
	if len([]rune(text)) <= maxSnippetLen {
		return text
	}
	return truncateRunes(text, maxSnippetLen) + "…"
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func makeItem(text string, start, end time.Time, source string) models.ExtractedItem {
	return models.ExtractedItem{
		Title:       makeTitle(text),
		Description: snippet(text),
		StartISO:    formatLocalISO(start),
		EndISO:      formatLocalISO(end),
		Source:      source,
	}
}

// Dedupe collapses items sharing an identity key. Later items with an
// equal key overwrite the earlier entry's value; output order is the
// key's first appearance.
func Dedupe(items []models.ExtractedItem) []models.ExtractedItem {
	index := make(map[string]int, len(items))
	out := make([]models.ExtractedItem, 0, len(items))
	for _, it := range items {
		if i, seen := index[it.Key()]; seen {
			out[i] = it
			continue
		}
		index[it.Key()] = len(out)
		out = append(out, it)
	}
	return out
}

// MergePreferConfidence merges item sets produced by different
// strategies. On a key collision the higher-confidence item wins;
// ties keep the item already present.
func MergePreferConfidence(sets ...[]models.ExtractedItem) []models.ExtractedItem {
	index := make(map[string]int)
	var out []models.ExtractedItem
	for _, set := range sets {
		for _, it := range set {
			i, seen := index[it.Key()]
			if !seen {
				index[it.Key()] = len(out)
				out = append(out, it)
				continue
			}
			if it.Confidence > out[i].Confidence {
				out[i] = it
			}
		}
	}
	if out == nil {
		out = []models.ExtractedItem{}
	}
	return out
}
