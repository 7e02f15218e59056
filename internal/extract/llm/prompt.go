package llm

import (
	"fmt"
	"strings"
)

// buildTaskPrompt assembles the fixed-structure prompt for the
// task-shape extraction path: system instructions, subject/body/now
// context, and an explicit output schema description.
func buildTaskPrompt(subject, body, nowISO, timezone string) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You convert emails into calendar-ready tasks/events.

Rules:
- Output ONLY JSON that matches the provided schema (no prose, no markdown).
- Use the user's local timezone: %s.
- Resolve relative dates like "tomorrow", "next Tuesday", "EOD Friday".
- Prefer clear date/time info in the SUBJECT over vague hints in the BODY.
- If uncertain, return an empty list (no guessing).
- Titles should be short and actionable.
- Default duration: 30 minutes if a start time exists and no end time is given.
- If "EOD", set start=17:00 and end=23:59 on the same day.
- Return local times like 2025-08-29T13:00 or 2025-08-29T13:00:00 (no timezone suffix).

EXAMPLE INPUT:
SUBJECT: Team sync Friday 1-2pm
BODY:
See you there. Room 204.

EXAMPLE OUTPUT:
{"tasks":[{"title":"Meeting","description":"Team sync Friday 1-2pm","startISO":"2025-08-29T13:00","endISO":"2025-08-29T14:00","location":"Room 204","source":"llm","confidence":0.8}]}
`, timezone)

	b.WriteString("\n\n")
	if nowISO != "" {
		fmt.Fprintf(&b, "NOW (local): %s\n\n", nowISO)
	}
	fmt.Fprintf(&b, `SUBJECT: %s

BODY:
%s

SCHEMA:
{
  "tasks": [
    {
      "title": "string",
      "description": "string (optional)",
      "startISO": "YYYY-MM-DDTHH:mm or YYYY-MM-DDTHH:mm:00 (local)",
      "endISO": "YYYY-MM-DDTHH:mm or YYYY-MM-DDTHH:mm:00 (local, optional)",
      "allDay": "boolean (optional)",
      "location": "string (optional)",
      "url": "string (optional)",
      "attendees": "string[] (optional)",
      "source": "llm",
      "confidence": 0.0-1.0
    }
  ]
}

Return ONLY JSON.`, subject, body)

	return b.String()
}

// buildEventPrompt assembles the prompt for the envelope extraction
// path, which asks for the events shape instead of tasks.
func buildEventPrompt(text, timezone, referenceDate string) string {
	if referenceDate == "" {
		referenceDate = "none"
	}
	return fmt.Sprintf(`You are an extraction engine. Extract calendar events from the given text.
- Resolve relative dates using the reference date if provided.
- Output ONLY valid, minified JSON with this exact schema:
{"events":[{"title":"string","start":"ISO","end":"ISO?","allDay":"boolean?"}], "warnings":["string"]}

Rules:
- "start" and "end" must be ISO 8601.
- If unsure about end time, omit "end".
- If the date is clearly all-day, set "allDay": true.
- Do NOT include any additional fields.
- Do NOT include any explanations or code fences.

Context:
- timezone: %s
- referenceDate: %s

TEXT:
%s`, timezone, referenceDate, text)
}
