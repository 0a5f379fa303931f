// Package ics renders a month's merged calendar as an iCalendar document.
package ics

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/domain/calendar"
	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/domain/model"
)

const productID = "-//LeadsFlow180//Home Pro Promotional Calendar//EN"

// Exporter serializes month views into ICS. The year anchors day-of-month
// events onto concrete dates.
type Exporter struct {
	year int
	now  func() time.Time
}

// Option applies a configuration option to the Exporter.
type Option func(*Exporter)

// WithClock overrides the DTSTAMP time source, used by tests for stable
// output.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		if now != nil {
			e.now = now
		}
	}
}

// New creates an exporter anchored to the given calendar year.
func New(year int, opts ...Option) *Exporter {
	e := &Exporter{year: year, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MonthCalendar renders every date-bearing event of the month as an all-day
// VEVENT. Events whose date cannot be resolved to a day of month are left
// out; a calendar entry needs a date to live on.
func (e *Exporter) MonthCalendar(m calendar.MonthEvents) (string, error) {
	monthNum, err := monthNumber(m.Month)
	if err != nil {
		return "", err
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(fmt.Sprintf("%s %d Marketing Calendar", model.FormatMonthName(m.Month), e.year))

	stamp := e.now().UTC()
	for _, ev := range calendar.CombinedForMonth(m) {
		day, ok := calendar.ParseDayFromDate(ev.Date)
		if !ok {
			continue
		}
		start := time.Date(e.year, monthNum, day, 0, 0, 0, 0, time.UTC)

		vevent := cal.AddEvent(eventUID(m.Month, day, ev.Event))
		vevent.SetDtStampTime(stamp)
		vevent.SetAllDayStartAt(start)
		vevent.SetAllDayEndAt(start.AddDate(0, 0, 1))
		vevent.SetSummary(calendar.EventDisplayName(ev.CalendarEvent))
		vevent.SetDescription(eventDescription(ev))
	}

	return cal.Serialize(), nil
}

func monthNumber(month string) (time.Month, error) {
	for i, name := range model.MonthNames {
		if strings.EqualFold(name, month) {
			return time.Month(i + 1), nil
		}
	}
	return 0, fmt.Errorf("unknown month %q", month)
}

// eventUID produces a stable identifier so re-imports update rather than
// duplicate.
func eventUID(month string, day int, event string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, event)
	return fmt.Sprintf("%s-%d-%s@home-pro-calendar", strings.ToLower(month), day, slug)
}

func eventDescription(ev model.CombinedEvent) string {
	kinds := make([]string, 0, len(ev.Types))
	for _, t := range ev.Types {
		kinds = append(kinds, string(t))
	}
	return fmt.Sprintf("%s (%s)", ev.Event, strings.Join(kinds, ", "))
}
