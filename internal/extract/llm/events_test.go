package llm

import (
	"context"
	"errors"
	"testing"
)

func TestEventExtractorEmptyText(t *testing.T) {
	t.Parallel()
	client := &fakeClient{}
	x := NewEventExtractor(client)

	res := x.Extract(context.Background(), EventRequest{Text: "   "})
	if res.Degraded {
		t.Error("Degraded = true, want false for empty input")
	}
	if len(res.Events) != 0 || res.Events == nil {
		t.Errorf("Events = %#v, want empty non-nil slice", res.Events)
	}
	if len(res.Warnings) != 1 || res.Warnings[0] != "empty text" {
		t.Errorf("Warnings = %v, want [empty text]", res.Warnings)
	}
	if client.callCount() != 0 {
		t.Errorf("Generate called %d times, want 0", client.callCount())
	}
}

func TestEventExtractorSuccess(t *testing.T) {
	t.Parallel()
	client := &fakeClient{response: `{"events":[{"title":"Standup","start":"2025-09-01T09:00:00","end":"2025-09-01T09:15:00"}],"warnings":["guessed year"]}`}
	x := NewEventExtractor(client)

	res := x.Extract(context.Background(), EventRequest{Text: "standup monday", Timezone: "UTC"})
	if res.Degraded {
		t.Fatalf("Degraded = true, warnings %v", res.Warnings)
	}
	if len(res.Events) != 1 {
		t.Fatalf("Events = %+v, want 1", res.Events)
	}
	ev := res.Events[0]
	if ev.Title != "Standup" || ev.Timezone != "UTC" || ev.Source != "llm" {
		t.Errorf("event = %+v", ev)
	}
	if ev.Confidence != 0.6 {
		t.Errorf("Confidence = %v, want default 0.6", ev.Confidence)
	}
	if len(res.Warnings) != 1 || res.Warnings[0] != "guessed year" {
		t.Errorf("Warnings = %v, want model warnings passed through", res.Warnings)
	}
}

func TestEventExtractorDegradesOnClientError(t *testing.T) {
	t.Parallel()
	client := &fakeClient{err: errors.New("connection refused")}
	x := NewEventExtractor(client)

	res := x.Extract(context.Background(), EventRequest{Text: "standup monday"})
	if !res.Degraded {
		t.Fatal("Degraded = false, want true")
	}
	if len(res.Warnings) != 1 || res.Warnings[0] != "connection refused" {
		t.Errorf("Warnings = %v", res.Warnings)
	}
}

func TestEventExtractorTimeoutWarning(t *testing.T) {
	t.Parallel()
	client := &fakeClient{block: true}
	x := NewEventExtractor(client)

	res := x.Extract(context.Background(), EventRequest{Text: "standup monday", BudgetMs: 1000})
	if !res.Degraded {
		t.Fatal("Degraded = false, want true")
	}
	if len(res.Warnings) != 1 || res.Warnings[0] != "llm timeout after 1000ms" {
		t.Errorf("Warnings = %v, want [llm timeout after 1000ms]", res.Warnings)
	}
}

func TestEventExtractorDropsBrokenEvents(t *testing.T) {
	t.Parallel()
	client := &fakeClient{response: `{"events":[{"title":"Good","start":"2025-09-01"},{"title":"Bad","start":"whenever"}]}`}
	x := NewEventExtractor(client)

	res := x.Extract(context.Background(), EventRequest{Text: "two events"})
	if res.Degraded {
		t.Fatalf("Degraded = true, warnings %v", res.Warnings)
	}
	if len(res.Events) != 1 || res.Events[0].Title != "Good" {
		t.Errorf("Events = %+v, want only the parseable event", res.Events)
	}
}
