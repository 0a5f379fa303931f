package calendar

import (
	"regexp"
	"strings"

	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/domain/model"
)

// Prompt payload caps. Ordering is as received; truncation happens before any
// re-sorting so callers control which entries survive.
const (
	MaxPromptDailyEvents       = 12
	MaxPromptHighlightedEvents = 8
)

// eventNamePattern captures the display text after a leading "<ordinal> - "
// date token.
var eventNamePattern = regexp.MustCompile(`\d+(st|nd|rd|th)\s*-\s*(.+)`)

// EventDisplayName strips the leading date token out of an event's display
// text so the generated prompt does not repeat the date. Falls back to the
// event text with the date substring removed, then to the raw event text.
func EventDisplayName(e model.CalendarEvent) string {
	if m := eventNamePattern.FindStringSubmatch(e.Date); m != nil {
		return m[2]
	}
	if stripped := strings.TrimSpace(strings.Replace(e.Event, e.Date, "", 1)); stripped != "" {
		return stripped
	}
	return e.Event
}

// BuildCampaignPromptPayload shapes the month's data into the request the
// campaign-generation collaborator expects. Daily events are truncated to the
// first MaxPromptDailyEvents and highlighted dates to the first
// MaxPromptHighlightedEvents, in received order. This is pure data shaping;
// collaborator failures are the caller's concern.
func BuildCampaignPromptPayload(month string, themes []string, daily, highlighted, selected []model.CalendarEvent, serviceID string) model.CampaignPromptPayload {
	if len(daily) > MaxPromptDailyEvents {
		daily = daily[:MaxPromptDailyEvents]
	}
	if len(highlighted) > MaxPromptHighlightedEvents {
		highlighted = highlighted[:MaxPromptHighlightedEvents]
	}

	payload := model.CampaignPromptPayload{
		Month:            month,
		Themes:           append([]string{}, themes...),
		Events:           toPromptEvents(daily),
		HighlightedDates: toPromptEvents(highlighted),
		ServiceID:        serviceID,
	}
	if len(selected) > 0 {
		payload.SelectedEvents = toPromptEvents(selected)
	}
	return payload
}

func toPromptEvents(events []model.CalendarEvent) []model.PromptEvent {
	out := make([]model.PromptEvent, 0, len(events))
	for _, e := range events {
		out = append(out, model.PromptEvent{Date: e.Date, Event: EventDisplayName(e)})
	}
	return out
}
