package rules

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Diagnostic tags naming the TimeResolver branch that fired.
const (
	HintEOD          = "eod"
	HintExplicitTime = "explicit-time"
	HintDefaultTime  = "default-time"
)

var (
	// Times like "11:30", "3pm", "at 09", "@ 7:15 am".
	timeRe         = regexp.MustCompile(`(?i)\b(?:(?:at|@)\s*)?(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\b`)
	noonMidnightRe = regexp.MustCompile(`(?i)\b(noon|midnight)\b`)
	eodRe          = regexp.MustCompile(`(?i)EOD|end of day`)
	byWordRe       = regexp.MustCompile(`(?i)\bby\b`)
)

// parseClock extracts an hour/minute pair from the text. "noon" and
// "midnight" take precedence over numeric tokens. 12-hour times are
// converted (12am -> 00, 12pm stays 12, other pm adds 12). Hours or
// minutes out of range report no match.
func parseClock(text string) (hour, minute int, ok bool) {
	if m := noonMidnightRe.FindStringSubmatch(text); m != nil {
		if strings.EqualFold(m[1], "noon") {
			return 12, 0, true
		}
		return 0, 0, true
	}
	m := timeRe.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, false
	}
	hour, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	switch strings.ToLower(m[3]) {
	case "am":
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour != 12 {
			hour += 12
		}
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}

// resolveTimes decides the start/end instants for a resolved calendar
// day. "by" implies end-of-day only when no explicit time is present,
// so "submit by Friday 3pm" keeps 3pm. Known limitation: the "by"
// heuristic also fires on unrelated uses of the word ("sent by Jane");
// downstream consumers depend on this behavior.
func resolveTimes(day time.Time, text string) (start, end time.Time, hint string) {
	hasExplicitTime := timeRe.MatchString(text) || noonMidnightRe.MatchString(text)
	atEOD := eodRe.MatchString(text) || (!hasExplicitTime && byWordRe.MatchString(text))

	if atEOD {
		start = withClock(day, 17, 0, 0)
		end = withClock(day, 23, 59, 59)
		return start, end, HintEOD
	}

	if h, m, ok := parseClock(text); ok {
		start = withClock(day, h, m, 0)
		return start, start.Add(30 * time.Minute), HintExplicitTime
	}

	start = withClock(day, 9, 0, 0)
	return start, start.Add(30 * time.Minute), HintDefaultTime
}

func withClock(day time.Time, hour, minute, sec int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, sec, 0, day.Location())
}

// formatLocalISO renders a local wall-clock timestamp with no offset,
// the shape shared by the rules and LLM paths.
func formatLocalISO(t time.Time) string {
	return t.Format("2006-01-02T15:04:05")
}
