package calendar

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/domain/model"
)

// ordinalDayPattern recognizes day labels like "2nd", "14th", "31st".
var ordinalDayPattern = regexp.MustCompile(`(\d+)(st|nd|rd|th)`)

// ParseDayFromDate extracts the day-of-month number from a raw date label.
// Returns (0, false) when the label carries no ordinal day marker; such
// events stay in flat lists but are excluded from day groupings.
func ParseDayFromDate(dateStr string) (int, bool) {
	m := ordinalDayPattern.FindStringSubmatch(dateStr)
	if m == nil {
		return 0, false
	}
	day, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return day, true
}

// GroupByDay maps day-of-month to the events on that day, preserving
// insertion order within a day. Events whose date does not parse are
// silently excluded.
func GroupByDay(events []model.CombinedEvent) map[int][]model.CombinedEvent {
	grouped := make(map[int][]model.CombinedEvent)
	for _, e := range events {
		day, ok := ParseDayFromDate(e.Date)
		if !ok {
			continue
		}
		grouped[day] = append(grouped[day], e)
	}
	return grouped
}

// SortByDay stably sorts events ascending by parsed day number. Events with
// unparsable dates sort as day 0, first.
func SortByDay(events []model.CalendarEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		di, _ := ParseDayFromDate(events[i].Date)
		dj, _ := ParseDayFromDate(events[j].Date)
		return di < dj
	})
}

// SortCombinedByDay is SortByDay over the tagged merge result.
func SortCombinedByDay(events []model.CombinedEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		di, _ := ParseDayFromDate(events[i].Date)
		dj, _ := ParseDayFromDate(events[j].Date)
		return di < dj
	})
}
