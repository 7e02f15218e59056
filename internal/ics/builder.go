// Package ics serializes extracted items into an iCalendar document.
package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/calref/inboxcal/internal/models"
)

const (
	localStampLayout = "20060102T150405"
	dateStampLayout  = "20060102"
	defaultDuration  = 30 * time.Minute
)

// Build renders items as a VCALENDAR. Timestamps are emitted as
// floating local values, matching the wall-clock shape the extractors
// produce. An item without an end gets start plus 30 minutes; all-day
// items serialize date-only values.
func Build(items []models.ExtractedItem) (string, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//inboxcal//extraction//EN")

	for i, item := range items {
		start, err := parseLocal(item.StartISO)
		if err != nil {
			return "", fmt.Errorf("item %d: invalid start %q: %w", i, item.StartISO, err)
		}
		end := start.Add(defaultDuration)
		if item.EndISO != "" {
			end, err = parseLocal(item.EndISO)
			if err != nil {
				return "", fmt.Errorf("item %d: invalid end %q: %w", i, item.EndISO, err)
			}
		}

		ev := cal.AddEvent(uuid.NewString() + "@inboxcal")
		ev.SetDtStampTime(time.Now().UTC())
		ev.SetSummary(item.Title)
		if item.Description != "" {
			ev.SetDescription(item.Description)
		}
		if item.Location != "" {
			ev.SetLocation(item.Location)
		}
		if item.URL != "" {
			ev.SetURL(item.URL)
		}

		if item.AllDay {
			ev.SetProperty(ical.ComponentPropertyDtStart, start.Format(dateStampLayout))
			ev.SetProperty(ical.ComponentPropertyDtEnd, end.Format(dateStampLayout))
		} else {
			ev.SetProperty(ical.ComponentPropertyDtStart, start.Format(localStampLayout))
			ev.SetProperty(ical.ComponentPropertyDtEnd, end.Format(localStampLayout))
		}
	}

	return cal.Serialize(), nil
}

func parseLocal(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp")
}
