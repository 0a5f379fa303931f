package ingest

import (
	"regexp"
	"strings"

	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/domain/model"
)

// Classification patterns. These are purely textual heuristics: no cell
// styling or position metadata beyond the column index is trusted, because
// the source spreadsheets are hand-edited.
var (
	ordinalDayPattern = regexp.MustCompile(`\d+(st|nd|rd|th)`)
	slashDatePattern  = regexp.MustCompile(`\d{1,2}/\d{1,2}`)
)

// highlightedLiterals marks events as highlighted even when the month name is
// absent from the cell text. The list is reproduced from the source data
// as-is; it is known to be incomplete.
var highlightedLiterals = []string{"New Year", "Martin Luther King", "MLK"}

const minThemeLength = 5

// isTheme reports whether a first-column cell is a monthly theme: non-empty,
// longer than minThemeLength once trimmed, carrying no ordinal day marker, no
// HIGHLIGHTED section marker, and not beginning with a month name. The
// exclusion checks run before any event-pattern handling of the row.
func isTheme(cell CellValue) (string, bool) {
	if cell.Kind != CellText {
		return "", false
	}
	text := strings.TrimSpace(cell.Text)
	if text == "" || len(text) <= minThemeLength {
		return "", false
	}
	if ordinalDayPattern.MatchString(text) {
		return "", false
	}
	if strings.Contains(text, "HIGHLIGHTED") {
		return "", false
	}
	if model.StartsWithMonthName(text) {
		return "", false
	}
	return text, true
}

// classifyEvent recognizes an ordinal-dated cell and decides highlighted vs
// daily. Highlighted when the text contains the sheet's month name or one of
// the fixed literals; everything else is daily. Cells without an ordinal
// marker contribute nothing.
func classifyEvent(cell CellValue, month string) (model.CalendarEvent, bool) {
	if cell.Kind != CellText {
		return model.CalendarEvent{}, false
	}
	text := strings.TrimSpace(cell.Text)
	if !ordinalDayPattern.MatchString(text) {
		return model.CalendarEvent{}, false
	}

	eventType := model.TypeDaily
	if isHighlightedText(text, month) {
		eventType = model.TypeHighlighted
	}

	return model.CalendarEvent{
		Date:  text,
		Event: text,
		Type:  eventType,
		Month: month,
	}, true
}

func isHighlightedText(text, month string) bool {
	if strings.Contains(text, month) {
		return true
	}
	for _, literal := range highlightedLiterals {
		if strings.Contains(text, literal) {
			return true
		}
	}
	return false
}

// classifyPromotional recognizes cells in the flat promotional calendar:
// either an ordinal day marker or a slash-delimited numeric date. No
// highlighted/daily distinction is made for this source.
func classifyPromotional(cell CellValue, month string) (model.CalendarEvent, bool) {
	if cell.Kind != CellText {
		return model.CalendarEvent{}, false
	}
	text := strings.TrimSpace(cell.Text)
	if !ordinalDayPattern.MatchString(text) && !slashDatePattern.MatchString(text) {
		return model.CalendarEvent{}, false
	}
	return model.CalendarEvent{
		Date:  text,
		Event: text,
		Type:  model.TypePromotional,
		Month: month,
	}, true
}

// ProcessMonthSheet converts one 2024-style worksheet (sheet name = month)
// into a MonthlyData record. Rows with no matching cells contribute nothing;
// malformed cells fall through silently.
func ProcessMonthSheet(month string, rows [][]CellValue) model.MonthlyData {
	data := model.MonthlyData{
		Month:            month,
		Themes:           []string{},
		Events:           []model.CalendarEvent{},
		HighlightedDates: []model.CalendarEvent{},
	}

	for _, row := range rows {
		if len(row) == 0 {
			continue
		}

		if theme, ok := isTheme(row[0]); ok {
			data.Themes = append(data.Themes, theme)
		}

		for _, cell := range row {
			event, ok := classifyEvent(cell, month)
			if !ok {
				continue
			}
			if event.Type == model.TypeHighlighted {
				data.HighlightedDates = append(data.HighlightedDates, event)
			} else {
				data.Events = append(data.Events, event)
			}
		}
	}

	return data
}

// ProcessPromoSheet converts one 2026-style worksheet into its flat list of
// promotional events.
func ProcessPromoSheet(month string, rows [][]CellValue) []model.CalendarEvent {
	events := []model.CalendarEvent{}
	for _, row := range rows {
		for _, cell := range row {
			if event, ok := classifyPromotional(cell, month); ok {
				events = append(events, event)
			}
		}
	}
	return events
}
