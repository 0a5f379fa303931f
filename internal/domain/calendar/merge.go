package calendar

import (
	"strings"

	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/domain/model"
)

// mergeKey builds the case-insensitive identity of an event across sources.
// Two records from different calendars describe the same entry when their
// trimmed, lowercased date label and event text both match.
func mergeKey(e model.CalendarEvent) string {
	return strings.ToLower(strings.TrimSpace(e.Date)) + "|" + strings.ToLower(strings.TrimSpace(e.Event))
}

// MergeAndDeduplicate flattens the given lists into one sequence, keeping the
// first record seen for each (date, event) key and dropping later duplicates
// whole. Insertion order follows the argument order; earlier lists win.
func MergeAndDeduplicate(lists ...[]model.CalendarEvent) []model.CalendarEvent {
	seen := make(map[string]struct{})
	out := []model.CalendarEvent{}
	for _, list := range lists {
		for _, e := range list {
			key := mergeKey(e)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, e)
		}
	}
	return out
}

// MergeTagged performs the same keyed merge but accumulates the distinct type
// tags of every duplicate instead of dropping them. The representative event
// is whichever record was encountered first; Types preserves first-seen order
// and is never empty.
func MergeTagged(lists ...[]model.CalendarEvent) []model.CombinedEvent {
	index := make(map[string]int)
	out := []model.CombinedEvent{}
	for _, list := range lists {
		for _, e := range list {
			key := mergeKey(e)
			if i, dup := index[key]; dup {
				if !out[i].HasType(e.Type) {
					out[i].Types = append(out[i].Types, e.Type)
				}
				continue
			}
			index[key] = len(out)
			out = append(out, model.CombinedEvent{
				CalendarEvent: e,
				Types:         []model.EventType{e.Type},
			})
		}
	}
	return out
}

// MergedHighlights merges a month's theme-calendar highlighted dates with the
// promotional events tagged highlighted, theme calendar first.
func MergedHighlights(m MonthEvents) []model.CalendarEvent {
	promo := []model.CalendarEvent{}
	for _, e := range m.PromotionalEvents {
		if e.Type == model.TypeHighlighted {
			promo = append(promo, e)
		}
	}
	return MergeAndDeduplicate(m.HighlightedDates, promo)
}

// MergedDaily merges a month's daily events with the promotional list, theme
// calendar first.
func MergedDaily(m MonthEvents) []model.CalendarEvent {
	return MergeAndDeduplicate(m.Events, m.PromotionalEvents)
}

// CombinedForMonth builds the tagged calendar-grid view for a month: every
// event from both sources, one CombinedEvent per (date, event) key with all
// type tags accumulated, sorted by day.
func CombinedForMonth(m MonthEvents) []model.CombinedEvent {
	combined := MergeTagged(m.HighlightedDates, m.Events, m.PromotionalEvents)
	SortCombinedByDay(combined)
	return combined
}
