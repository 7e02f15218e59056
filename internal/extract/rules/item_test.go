package rules

import (
	"strings"
	"testing"

	"github.com/calref/inboxcal/internal/models"
)

func TestNormalizeText(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses runs", "a  b\t\tc\n\nd", "a b c d"},
		{"trims", "  hello  ", "hello"},
		{"empty", "   \n\t ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := normalizeText(tt.in); got != tt.want {
				t.Errorf("normalizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMakeTitle(t *testing.T) {
	t.Parallel()
	if got := makeTitle("lunch with the team"); got != "Task: lunch with the team" {
		t.Errorf("makeTitle() = %q, want Task prefix", got)
	}
	if got := makeTitle("report due Friday"); got != "Deadline: report due Friday" {
		t.Errorf("makeTitle() = %q, want Deadline prefix", got)
	}

	long := strings.Repeat("x", 200)
	got := makeTitle(long)
	if want := "Task: " + strings.Repeat("x", 120); got != want {
		t.Errorf("makeTitle() long text = %d chars, want 120-rune body", len(got))
	}
}

func TestSnippet(t *testing.T) {
	t.Parallel()
	short := "short text"
	if got := snippet(short); got != short {
		t.Errorf("snippet() = %q, want unchanged", got)
	}

	long := strings.Repeat("y", 300)
	got := snippet(long)
	if want := strings.Repeat("y", 280) + "…"; got != want {
		t.Errorf("snippet() long = %d runes, want 280 plus ellipsis", len([]rune(got)))
	}
}

func TestDedupe(t *testing.T) {
	t.Parallel()
	a1 := models.ExtractedItem{Title: "A", StartISO: "2025-09-01T09:00:00", Description: "first"}
	a2 := models.ExtractedItem{Title: "A", StartISO: "2025-09-01T09:00:00", Description: "second"}
	b := models.ExtractedItem{Title: "B", StartISO: "2025-09-02T09:00:00"}

	got := Dedupe([]models.ExtractedItem{a1, b, a2})
	if len(got) != 2 {
		t.Fatalf("Dedupe() returned %d items, want 2", len(got))
	}
	// Later value wins but keeps the first-seen position.
	if got[0].Description != "second" {
		t.Errorf("got[0].Description = %q, want overwrite by later item", got[0].Description)
	}
	if got[1].Title != "B" {
		t.Errorf("got[1].Title = %q, want B", got[1].Title)
	}
}

func TestMergePreferConfidence(t *testing.T) {
	t.Parallel()
	rulesItem := models.ExtractedItem{Title: "A", StartISO: "2025-09-01T09:00:00", Source: models.SourceRules, Confidence: 0.75}
	strongLLM := models.ExtractedItem{Title: "A", StartISO: "2025-09-01T09:00:00", Source: models.SourceLLM, Confidence: 0.9}
	weakLLM := models.ExtractedItem{Title: "A", StartISO: "2025-09-01T09:00:00", Source: models.SourceLLM, Confidence: 0.5}
	tieLLM := models.ExtractedItem{Title: "A", StartISO: "2025-09-01T09:00:00", Source: models.SourceLLM, Confidence: 0.75}
	other := models.ExtractedItem{Title: "B", StartISO: "2025-09-02T09:00:00", Source: models.SourceLLM, Confidence: 0.5}

	t.Run("higher confidence wins", func(t *testing.T) {
		t.Parallel()
		got := MergePreferConfidence([]models.ExtractedItem{rulesItem}, []models.ExtractedItem{strongLLM, other})
		if len(got) != 2 {
			t.Fatalf("merged %d items, want 2", len(got))
		}
		if got[0].Source != models.SourceLLM || got[0].Confidence != 0.9 {
			t.Errorf("got[0] = %+v, want the 0.9 llm item", got[0])
		}
	})

	t.Run("lower confidence loses", func(t *testing.T) {
		t.Parallel()
		got := MergePreferConfidence([]models.ExtractedItem{rulesItem}, []models.ExtractedItem{weakLLM})
		if len(got) != 1 || got[0].Source != models.SourceRules {
			t.Errorf("got %+v, want the rules item kept", got)
		}
	})

	t.Run("tie keeps existing", func(t *testing.T) {
		t.Parallel()
		got := MergePreferConfidence([]models.ExtractedItem{rulesItem}, []models.ExtractedItem{tieLLM})
		if len(got) != 1 || got[0].Source != models.SourceRules {
			t.Errorf("got %+v, want the rules item kept on tie", got)
		}
	})

	t.Run("nil input yields empty slice", func(t *testing.T) {
		t.Parallel()
		got := MergePreferConfidence(nil, nil)
		if got == nil || len(got) != 0 {
			t.Errorf("got %#v, want empty non-nil slice", got)
		}
	})
}
