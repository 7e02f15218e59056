package extract

import (
	"context"
	"testing"
	"time"

	"github.com/calref/inboxcal/internal/extract/llm"
	"github.com/calref/inboxcal/internal/extract/rules"
	"github.com/calref/inboxcal/internal/models"
)

func newSelectorUnderTest(client llm.GenerateClient) *Selector {
	rulesEx := rules.NewExtractor(time.UTC)
	return NewSelector(rulesEx, llm.NewEventExtractor(client))
}

func TestSelectorDefaultPrefersRules(t *testing.T) {
	t.Parallel()
	client := &countingClient{}
	sel := newSelectorUnderTest(client)

	res := sel.Extract(context.Background(), SelectRequest{
		Text:          "Submit report by 2025-09-02",
		Timezone:      "UTC",
		ReferenceDate: "2025-08-27",
	})

	if client.callCount() != 0 {
		t.Errorf("Generate called %d times, want 0 when rules produce events", client.callCount())
	}
	if res.Degraded {
		t.Error("Degraded = true, want false")
	}
	if len(res.Events) != 1 {
		t.Fatalf("Events = %+v, want 1", res.Events)
	}
	ev := res.Events[0]
	if ev.Source != models.SourceRules || ev.Confidence != RulesConfidence || ev.Timezone != "UTC" {
		t.Errorf("event = %+v", ev)
	}
}

func TestSelectorDefaultFallsBackToLLM(t *testing.T) {
	t.Parallel()
	client := &countingClient{response: `{"events":[{"title":"Standup","start":"2025-09-01T09:00:00"}]}`}
	sel := newSelectorUnderTest(client)

	res := sel.Extract(context.Background(), SelectRequest{
		Text: "no rule evidence whatsoever",
	})

	if client.callCount() != 1 {
		t.Fatalf("Generate called %d times, want 1", client.callCount())
	}
	if len(res.Events) != 1 || res.Events[0].Source != models.SourceLLM {
		t.Errorf("Events = %+v, want the llm event", res.Events)
	}
}

func TestSelectorLLMFirstWinsWhenUsable(t *testing.T) {
	t.Parallel()
	client := &countingClient{response: `{"events":[{"title":"Standup","start":"2025-09-01T09:00:00"}]}`}
	sel := newSelectorUnderTest(client)

	// The text also has rules evidence; llmFirst must not merge it in.
	res := sel.Extract(context.Background(), SelectRequest{
		Text:          "Standup on 2025-09-01",
		ReferenceDate: "2025-08-27",
		LLMFirst:      true,
	})

	if len(res.Events) != 1 {
		t.Fatalf("Events = %+v, want 1", res.Events)
	}
	if res.Events[0].Source != models.SourceLLM {
		t.Errorf("Source = %q, want llm result verbatim", res.Events[0].Source)
	}
}

func TestSelectorLLMFirstFallsBackOnDegraded(t *testing.T) {
	t.Parallel()
	client := &countingClient{response: "garbage"}
	sel := newSelectorUnderTest(client)

	res := sel.Extract(context.Background(), SelectRequest{
		Text:          "Submit report by 2025-09-02",
		ReferenceDate: "2025-08-27",
		LLMFirst:      true,
	})

	if res.Degraded {
		t.Error("Degraded = true, want rules fallback instead")
	}
	if len(res.Events) != 1 || res.Events[0].Source != models.SourceRules {
		t.Errorf("Events = %+v, want the rules event", res.Events)
	}
}

func TestSelectorLLMFirstEmptyEverywhere(t *testing.T) {
	t.Parallel()
	client := &countingClient{response: `{"events":[]}`}
	sel := newSelectorUnderTest(client)

	res := sel.Extract(context.Background(), SelectRequest{
		Text:     "no evidence anywhere",
		LLMFirst: true,
	})

	if res.Degraded {
		t.Error("Degraded = true, want false")
	}
	if res.Events == nil || len(res.Events) != 0 {
		t.Errorf("Events = %#v, want empty non-nil slice", res.Events)
	}
}
