package rules

import (
	"regexp"
	"strings"
	"time"

	"github.com/calref/inboxcal/internal/models"
)

var (
	tomorrowRe = regexp.MustCompile(`(?i)\btomorrow\b`)
	weekdayRe  = regexp.MustCompile(`(?i)\b(next\s+)?(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
)

var weekdaysByName = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday,
	"friday": time.Friday, "saturday": time.Saturday,
}

// matchRelativeDate resolves "tomorrow" and weekday mentions into a
// calendar day. Only the first matching rule fires. "next Monday" and
// bare "Monday" resolve identically: the next occurrence strictly
// after the reference day.
func matchRelativeDate(text string, now time.Time) (day time.Time, source string, ok bool) {
	if tomorrowRe.MatchString(text) {
		return now.AddDate(0, 0, 1), models.SourceRelative, true
	}
	if m := weekdayRe.FindStringSubmatch(text); m != nil {
		target := weekdaysByName[strings.ToLower(m[2])]
		delta := (int(target) - int(now.Weekday()) + 7) % 7
		if delta == 0 {
			delta = 7
		}
		return now.AddDate(0, 0, delta), models.SourceWeekday, true
	}
	return time.Time{}, "", false
}
