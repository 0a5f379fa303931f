package calendar_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/domain/calendar"
	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func writeJSONFile(t *testing.T, dir, name string, v any) string {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %s: %v", name, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func testSnapshot() *calendar.Snapshot {
	return &calendar.Snapshot{
		MonthlyData: []model.MonthlyData{
			{
				Month:  "January",
				Themes: []string{"New Year Organization"},
				Events: []model.CalendarEvent{
					{Date: "14th - Organize Your Home Day", Event: "14th - Organize Your Home Day", Type: model.TypeDaily, Month: "January"},
				},
				HighlightedDates: []model.CalendarEvent{
					{Date: "1st - New Year's Day", Event: "1st - New Year's Day", Type: model.TypeHighlighted, Month: "January"},
				},
			},
			{
				Month:  "February",
				Themes: []string{"Heart Health"},
				Events: []model.CalendarEvent{
					{Date: "14th - Valentine's", Event: "14th - Valentine's", Type: model.TypeDaily, Month: "February"},
				},
				HighlightedDates: []model.CalendarEvent{},
			},
		},
		PromotionalEvents: []model.CalendarEvent{
			{Date: "14th - Valentine's", Event: "14th - Valentine's", Type: model.TypePromotional, Month: "February"},
			{Date: "3/15", Event: "3/15 Spring Tune-Up", Type: model.TypePromotional, Month: "March"},
		},
	}
}

func TestLoad(t *testing.T) {
	Convey("Given calendar documents on disk", t, func() {
		dir := t.TempDir()
		monthly := []model.MonthlyData{
			{Month: "January", Themes: []string{"Fresh Starts"}, Events: []model.CalendarEvent{}, HighlightedDates: []model.CalendarEvent{}},
		}
		promos := []model.CalendarEvent{
			{Date: "1/2", Event: "1/2 Winter Sale", Type: model.TypePromotional, Month: "January"},
		}
		monthlyPath := writeJSONFile(t, dir, "2024-calendar.json", monthly)
		promoPath := writeJSONFile(t, dir, "2026-calendar.json", promos)

		Convey("When the image mapping exists", func() {
			imagesPath := writeJSONFile(t, dir, "month-images.json", map[string]string{"January": "/images/months/january.png"})
			snap, err := calendar.Load(monthlyPath, promoPath, imagesPath)

			Convey("Then month records pick up their image path", func() {
				So(err, ShouldBeNil)
				So(snap.MonthlyData[0].ImagePath, ShouldEqual, "/images/months/january.png")
				So(snap.PromotionalEvents, ShouldHaveLength, 1)
			})
		})

		Convey("When the image mapping file is absent", func() {
			snap, err := calendar.Load(monthlyPath, promoPath, filepath.Join(dir, "missing.json"))

			Convey("Then loading succeeds and records omit the image path", func() {
				So(err, ShouldBeNil)
				So(snap.MonthlyData[0].ImagePath, ShouldEqual, "")
			})
		})

		Convey("When a calendar document is absent", func() {
			_, err := calendar.Load(filepath.Join(dir, "nope.json"), promoPath, "")

			Convey("Then loading fails", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestEventsForMonth(t *testing.T) {
	Convey("Given a loaded snapshot", t, func() {
		snap := testSnapshot()

		Convey("Month lookup is case-insensitive", func() {
			lower := calendar.EventsForMonth(snap, "january")
			upper := calendar.EventsForMonth(snap, "January")
			So(lower.Themes, ShouldResemble, upper.Themes)
			So(lower.Events, ShouldResemble, upper.Events)
			So(lower.HighlightedDates, ShouldResemble, upper.HighlightedDates)
			So(lower.PromotionalEvents, ShouldResemble, upper.PromotionalEvents)
		})

		Convey("A month absent from the theme calendar still yields its promotions", func() {
			march := calendar.EventsForMonth(snap, "March")
			So(march.Themes, ShouldBeEmpty)
			So(march.Events, ShouldBeEmpty)
			So(march.HighlightedDates, ShouldBeEmpty)
			So(march.PromotionalEvents, ShouldHaveLength, 1)
		})

		Convey("A month absent from both sources yields empty, non-nil collections", func() {
			august := calendar.EventsForMonth(snap, "August")
			So(august.Themes, ShouldNotBeNil)
			So(august.Events, ShouldNotBeNil)
			So(august.HighlightedDates, ShouldNotBeNil)
			So(august.PromotionalEvents, ShouldNotBeNil)
			So(august.Events, ShouldBeEmpty)
		})

		Convey("AvailableMonths follows document order", func() {
			So(calendar.AvailableMonths(snap), ShouldResemble, []string{"January", "February"})
		})
	})
}

func TestParseDayFromDate(t *testing.T) {
	Convey("Given raw date labels", t, func() {
		Convey("Labels with an ordinal marker parse to their day number", func() {
			day, ok := calendar.ParseDayFromDate("2nd - Groundhog Day")
			So(ok, ShouldBeTrue)
			So(day, ShouldEqual, 2)

			day, ok = calendar.ParseDayFromDate("31st - New Year's Eve")
			So(ok, ShouldBeTrue)
			So(day, ShouldEqual, 31)
		})

		Convey("Malformed ordinals that still match the pattern parse as written", func() {
			day, ok := calendar.ParseDayFromDate("2th - Typo Day")
			So(ok, ShouldBeTrue)
			So(day, ShouldEqual, 2)
		})

		Convey("Labels without an ordinal do not parse", func() {
			_, ok := calendar.ParseDayFromDate("Groundhog Day")
			So(ok, ShouldBeFalse)

			_, ok = calendar.ParseDayFromDate("3/15 Spring Tune-Up")
			So(ok, ShouldBeFalse)
		})
	})
}

func TestGroupAndSortByDay(t *testing.T) {
	Convey("Given a mixed event list", t, func() {
		events := []model.CalendarEvent{
			{Date: "14th - Valentine's", Event: "14th - Valentine's", Type: model.TypeDaily, Month: "February"},
			{Date: "Heart Health Screening", Event: "Heart Health Screening", Type: model.TypePromotional, Month: "February"},
			{Date: "2nd - Groundhog Day", Event: "2nd - Groundhog Day", Type: model.TypeDaily, Month: "February"},
		}

		Convey("SortByDay orders ascending with unparsable dates first", func() {
			calendar.SortByDay(events)
			So(events[0].Date, ShouldEqual, "Heart Health Screening")
			So(events[1].Date, ShouldEqual, "2nd - Groundhog Day")
			So(events[2].Date, ShouldEqual, "14th - Valentine's")
		})

		Convey("GroupByDay excludes unparsable dates but the flat list keeps them", func() {
			combined := calendar.MergeTagged(events)
			grouped := calendar.GroupByDay(combined)

			So(combined, ShouldHaveLength, 3)
			So(grouped, ShouldHaveLength, 2)
			So(grouped[2], ShouldHaveLength, 1)
			So(grouped[14], ShouldHaveLength, 1)
			_, hasZero := grouped[0]
			So(hasZero, ShouldBeFalse)
		})

		Convey("GroupByDay preserves insertion order within a day", func() {
			sameDay := []model.CombinedEvent{
				{CalendarEvent: model.CalendarEvent{Date: "5th - First", Event: "5th - First", Type: model.TypeDaily}, Types: []model.EventType{model.TypeDaily}},
				{CalendarEvent: model.CalendarEvent{Date: "5th - Second", Event: "5th - Second", Type: model.TypePromotional}, Types: []model.EventType{model.TypePromotional}},
			}
			grouped := calendar.GroupByDay(sameDay)
			So(grouped[5][0].Event, ShouldEqual, "5th - First")
			So(grouped[5][1].Event, ShouldEqual, "5th - Second")
		})
	})
}
