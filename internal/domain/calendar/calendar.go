// Package calendar merges and normalizes the two promotional-event sources
// for month views, search, and campaign-prompt construction.
//
// All operations are pure functions over an immutable Snapshot loaded by the
// caller. Missing months yield empty collections, never errors.
package calendar

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/domain/model"
)

// Snapshot is an immutable view of the two JSON documents produced by
// ingestion. It is loaded once and passed into every operation; callers must
// not mutate it after Load.
type Snapshot struct {
	MonthlyData       []model.MonthlyData
	PromotionalEvents []model.CalendarEvent
}

// MonthEvents is the per-month read shape: the theme-calendar record plus the
// independent promotional list filtered to the same month. Slices are always
// non-nil.
type MonthEvents struct {
	Month             string                `json:"month"`
	Themes            []string              `json:"themes"`
	Events            []model.CalendarEvent `json:"events"`
	HighlightedDates  []model.CalendarEvent `json:"highlightedDates"`
	PromotionalEvents []model.CalendarEvent `json:"promotionalEvents"`
	ImagePath         string                `json:"imagePath,omitempty"`
}

// Load reads the two calendar JSON documents and the optional month-image
// mapping from disk and returns a Snapshot. A missing image mapping is not an
// error; a missing calendar document is.
func Load(monthlyPath, promotionalPath, imagesPath string) (*Snapshot, error) {
	var monthly []model.MonthlyData
	if err := readJSON(monthlyPath, &monthly); err != nil {
		return nil, fmt.Errorf("load monthly calendar: %w", err)
	}

	var promotional []model.CalendarEvent
	if err := readJSON(promotionalPath, &promotional); err != nil {
		return nil, fmt.Errorf("load promotional calendar: %w", err)
	}

	if imagesPath != "" {
		images := map[string]string{}
		if err := readJSON(imagesPath, &images); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("load image mapping: %w", err)
			}
			// No mapping file: month records simply omit their image path.
		}
		for i := range monthly {
			if p, ok := images[monthly[i].Month]; ok && monthly[i].ImagePath == "" {
				monthly[i].ImagePath = p
			}
		}
	}

	return &Snapshot{MonthlyData: monthly, PromotionalEvents: promotional}, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// AvailableMonths returns the month names present in the theme calendar, in
// document order.
func AvailableMonths(s *Snapshot) []string {
	months := make([]string, 0, len(s.MonthlyData))
	for _, m := range s.MonthlyData {
		months = append(months, m.Month)
	}
	return months
}

// EventsForMonth looks up the MonthlyData record and the promotional events
// for a month, both case-insensitively. The two sources are independent: a
// month absent from the theme calendar still surfaces its promotional events.
func EventsForMonth(s *Snapshot, month string) MonthEvents {
	out := MonthEvents{
		Month:             month,
		Themes:            []string{},
		Events:            []model.CalendarEvent{},
		HighlightedDates:  []model.CalendarEvent{},
		PromotionalEvents: []model.CalendarEvent{},
	}

	for _, m := range s.MonthlyData {
		if strings.EqualFold(m.Month, month) {
			out.Month = m.Month
			if m.Themes != nil {
				out.Themes = m.Themes
			}
			if m.Events != nil {
				out.Events = m.Events
			}
			if m.HighlightedDates != nil {
				out.HighlightedDates = m.HighlightedDates
			}
			out.ImagePath = m.ImagePath
			break
		}
	}

	for _, e := range s.PromotionalEvents {
		if strings.EqualFold(e.Month, month) {
			out.PromotionalEvents = append(out.PromotionalEvents, e)
		}
	}

	return out
}
