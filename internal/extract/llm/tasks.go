package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/calref/inboxcal/internal/models"
)

const (
	// DefaultBudgetMs is the generation timeout when none is requested.
	DefaultBudgetMs = 6000
	// MinBudgetMs and MaxBudgetMs bound the requestable timeout.
	MinBudgetMs = 1000
	MaxBudgetMs = 20000
)

// ClampBudgetMs clamps a requested timeout into the allowed range,
// substituting the default when unset or non-positive.
func ClampBudgetMs(ms int) int {
	if ms <= 0 {
		ms = DefaultBudgetMs
	}
	if ms < MinBudgetMs {
		return MinBudgetMs
	}
	if ms > MaxBudgetMs {
		return MaxBudgetMs
	}
	return ms
}

// TaskResult is the task-shape extraction outcome. A degraded result
// carries no items and a warning naming the failure; it is never an
// error the caller has to handle.
type TaskResult struct {
	Items    []models.ExtractedItem
	Degraded bool
	Warnings []string
}

// TaskExtractor asks the generative service for the tasks shape used
// by the merge strategy. All failure modes — connection errors,
// timeouts, malformed or invalid JSON — normalize into a degraded
// empty result.
type TaskExtractor struct {
	client   GenerateClient
	timezone string
	budgetMs int
}

// NewTaskExtractor builds a task extractor. timezone is the assumed
// local zone named in the prompt; budgetMs is clamped into
// [MinBudgetMs, MaxBudgetMs].
func NewTaskExtractor(client GenerateClient, timezone string, budgetMs int) *TaskExtractor {
	return &TaskExtractor{
		client:   client,
		timezone: timezone,
		budgetMs: ClampBudgetMs(budgetMs),
	}
}

// Extract runs one generation call for a single email under the
// configured timeout and returns validated, normalized items.
func (x *TaskExtractor) Extract(ctx context.Context, subject, body, nowISO string) TaskResult {
	prompt := buildTaskPrompt(subject, body, nowISO, x.timezone)

	ctx, cancel := context.WithTimeout(ctx, time.Duration(x.budgetMs)*time.Millisecond)
	defer cancel()

	raw, err := x.client.Generate(ctx, prompt, GenerateOptions{Temperature: 0.2})
	if err != nil {
		return TaskResult{Items: []models.ExtractedItem{}, Degraded: true, Warnings: []string{x.failureReason(ctx, err)}}
	}

	items, err := parseTaskResponse(raw)
	if err != nil {
		return TaskResult{Items: []models.ExtractedItem{}, Degraded: true, Warnings: []string{err.Error()}}
	}
	return TaskResult{Items: items}
}

func (x *TaskExtractor) failureReason(ctx context.Context, err error) string {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Sprintf("llm timeout after %dms", x.budgetMs)
	}
	return err.Error()
}
