package extract

import (
	"context"
	"fmt"
	"testing"

	"github.com/calref/inboxcal/internal/models"
)

func TestExtractBatchKeepsSubmissionOrder(t *testing.T) {
	t.Parallel()
	client := &countingClient{}
	smart := newSmartUnderTest(client)

	emails := make([]EmailInput, 10)
	for i := range emails {
		emails[i] = EmailInput{
			Subject: fmt.Sprintf("Email %02d", i),
			Text:    fmt.Sprintf("Review due 2025-09-%02d", i+1),
		}
	}

	results := smart.ExtractBatch(context.Background(), emails, "2025-08-27T12:00", models.SmartModeRules)

	if len(results) != len(emails) {
		t.Fatalf("got %d results, want %d", len(results), len(emails))
	}
	for i, res := range results {
		if res.Subject != emails[i].Subject {
			t.Errorf("results[%d].Subject = %q, want %q", i, res.Subject, emails[i].Subject)
		}
		if len(res.Tasks) != 1 {
			t.Errorf("results[%d] has %d tasks, want 1", i, len(res.Tasks))
		}
	}
	if client.callCount() != 0 {
		t.Errorf("Generate called %d times, want 0 in rules mode", client.callCount())
	}
}

func TestExtractBatchEmpty(t *testing.T) {
	t.Parallel()
	smart := newSmartUnderTest(&countingClient{})

	results := smart.ExtractBatch(context.Background(), nil, "", "")
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}
