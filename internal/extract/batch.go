package extract

import (
	"context"
	"sync"

	"github.com/calref/inboxcal/internal/models"
)

// EmailInput is one email in a batch request.
type EmailInput struct {
	Subject string
	Text    string
}

// EmailTasks is the per-email batch result.
type EmailTasks struct {
	Subject string                 `json:"subject"`
	Tasks   []models.ExtractedItem `json:"tasks"`
}

// ExtractBatch processes every email independently and in parallel.
// Each goroutine writes to its own slot, so results come back in
// submission order regardless of completion order; there is no other
// shared state.
func (s *Smart) ExtractBatch(ctx context.Context, emails []EmailInput, nowISO string, mode models.SmartMode) []EmailTasks {
	results := make([]EmailTasks, len(emails))

	var wg sync.WaitGroup
	for i, email := range emails {
		wg.Add(1)
		go func(i int, email EmailInput) {
			defer wg.Done()
			tasks := s.Extract(ctx, SmartRequest{
				Subject: email.Subject,
				Body:    email.Text,
				NowISO:  nowISO,
				Mode:    mode,
			})
			results[i] = EmailTasks{Subject: email.Subject, Tasks: tasks}
		}(i, email)
	}
	wg.Wait()

	return results
}
