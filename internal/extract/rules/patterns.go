package rules

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Absolute-date recognition is modeled as an ordered list of
// independent recognizers, each yielding zero or more candidate
// dates. Family priority is the slice order: ISO, slash, month-name.
// Within a family, candidates keep left-to-right text order.

// candidate is a raw date match before year resolution.
type candidate struct {
	year    int
	month   time.Month
	day     int
	hadYear bool
}

type recognizer func(text string) []candidate

var (
	isoDateRe   = regexp.MustCompile(`\b(20\d{2}-\d{2}-\d{2})\b`)
	slashDateRe = regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{2,4})\b`)
	monthNameRe = regexp.MustCompile(`(?i)\b((Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)[a-z]*\s+(\d{1,2})(,\s*(\d{4}))?)\b`)
)

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// absoluteRecognizers is applied in fixed priority order.
var absoluteRecognizers = []recognizer{matchISODates, matchSlashDates, matchMonthNameDates}

func matchISODates(text string) []candidate {
	var out []candidate
	for _, m := range isoDateRe.FindAllStringSubmatch(text, -1) {
		t, err := time.Parse("2006-01-02", m[1])
		if err != nil {
			continue
		}
		out = append(out, candidate{year: t.Year(), month: t.Month(), day: t.Day(), hadYear: true})
	}
	return out
}

func matchSlashDates(text string) []candidate {
	var out []candidate
	for _, m := range slashDateRe.FindAllStringSubmatch(text, -1) {
		parts := strings.Split(m[1], "/")
		month, _ := strconv.Atoi(parts[0])
		day, _ := strconv.Atoi(parts[1])
		if !validMonthDay(month, day) {
			continue
		}
		c := candidate{month: time.Month(month), day: day}
		// A 2- or 3-digit year is treated as missing and backfilled
		// from the reference year.
		if len(parts[2]) == 4 {
			c.year, _ = strconv.Atoi(parts[2])
			c.hadYear = true
		}
		out = append(out, c)
	}
	return out
}

func matchMonthNameDates(text string) []candidate {
	var out []candidate
	for _, m := range monthNameRe.FindAllStringSubmatch(text, -1) {
		prefix := strings.ToLower(m[2])
		if len(prefix) > 3 {
			prefix = prefix[:3]
		}
		month, ok := monthsByPrefix[prefix]
		if !ok {
			continue
		}
		day, _ := strconv.Atoi(m[3])
		if !validMonthDay(int(month), day) {
			continue
		}
		c := candidate{month: month, day: day}
		if m[5] != "" {
			c.year, _ = strconv.Atoi(m[5])
			c.hadYear = true
		}
		out = append(out, c)
	}
	return out
}

func validMonthDay(month, day int) bool {
	return month >= 1 && month <= 12 && day >= 1 && day <= 31
}

// matchAbsoluteDates runs every recognizer over the text and resolves
// each candidate against the reference instant. Dates stated without
// a year get the reference year, rolled forward one year when the
// resulting day is strictly before the reference instant. Years
// before 2015 are discarded as footer/copyright noise. Unparseable
// candidates (e.g. Feb 30) are dropped silently.
func matchAbsoluteDates(text string, now time.Time, loc *time.Location) []time.Time {
	var days []time.Time
	for _, recognize := range absoluteRecognizers {
		for _, c := range recognize(text) {
			year := c.year
			if !c.hadYear {
				year = now.Year()
			}
			day := time.Date(year, c.month, c.day, 0, 0, 0, 0, loc)
			if day.Month() != c.month || day.Day() != c.day {
				continue
			}
			if !c.hadYear && day.Before(now) {
				day = day.AddDate(1, 0, 0)
			}
			if day.Year() < 2015 {
				continue
			}
			days = append(days, day)
		}
	}
	return days
}
