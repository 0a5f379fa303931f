package model_test

import (
	"encoding/json"
	"testing"

	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMonthNameHelpers(t *testing.T) {
	Convey("Given the month name helpers", t, func() {
		Convey("IsMonthName matches regardless of case", func() {
			So(model.IsMonthName("January"), ShouldBeTrue)
			So(model.IsMonthName("january"), ShouldBeTrue)
			So(model.IsMonthName("DECEMBER"), ShouldBeTrue)
			So(model.IsMonthName("Januar"), ShouldBeFalse)
			So(model.IsMonthName(""), ShouldBeFalse)
		})

		Convey("StartsWithMonthName matches leading month names only", func() {
			So(model.StartsWithMonthName("February Specials"), ShouldBeTrue)
			So(model.StartsWithMonthName("may flowers"), ShouldBeTrue)
			So(model.StartsWithMonthName("Early May flowers"), ShouldBeFalse)
			So(model.StartsWithMonthName("Heart Health Month"), ShouldBeFalse)
		})

		Convey("FormatMonthName normalizes display casing", func() {
			So(model.FormatMonthName("january"), ShouldEqual, "January")
			So(model.FormatMonthName("FEBRUARY"), ShouldEqual, "February")
			So(model.FormatMonthName(""), ShouldEqual, "")
		})

		Convey("MonthImagePath uses the formatted month name", func() {
			So(model.MonthImagePath("march"), ShouldEqual, "/images/months/March.png")
		})
	})
}

func TestMonthlyDataRoundTrip(t *testing.T) {
	Convey("Given a MonthlyData record", t, func() {
		in := model.MonthlyData{
			Month:  "February",
			Themes: []string{"Heart Health", "Home Improvement Month"},
			Events: []model.CalendarEvent{
				{Date: "2nd - Groundhog Day", Event: "2nd - Groundhog Day", Type: model.TypeDaily, Month: "February"},
			},
			HighlightedDates: []model.CalendarEvent{
				{Date: "14th - Valentine's Day", Event: "14th - Valentine's Day", Type: model.TypeHighlighted, Month: "February"},
			},
			ImagePath: "/images/months/february.png",
		}

		Convey("When serialized to JSON and parsed back", func() {
			raw, err := json.Marshal(in)
			So(err, ShouldBeNil)

			var out model.MonthlyData
			So(json.Unmarshal(raw, &out), ShouldBeNil)

			Convey("Then every field survives unchanged", func() {
				So(out, ShouldResemble, in)
			})
		})
	})
}

func TestCombinedEventHasType(t *testing.T) {
	Convey("Given a combined event with two type tags", t, func() {
		c := model.CombinedEvent{
			CalendarEvent: model.CalendarEvent{Date: "14th - Valentine's", Event: "14th - Valentine's", Type: model.TypeDaily, Month: "February"},
			Types:         []model.EventType{model.TypeDaily, model.TypePromotional},
		}

		So(c.HasType(model.TypeDaily), ShouldBeTrue)
		So(c.HasType(model.TypePromotional), ShouldBeTrue)
		So(c.HasType(model.TypeHighlighted), ShouldBeFalse)
	})
}

func TestServiceCatalog(t *testing.T) {
	Convey("Given the service catalog", t, func() {
		Convey("Known ids resolve to their display names", func() {
			s, ok := model.ServiceByID("hvac")
			So(ok, ShouldBeTrue)
			So(s.Name, ShouldEqual, "HVAC")
		})

		Convey("Unknown ids are rejected", func() {
			_, ok := model.ServiceByID("time-travel-repair")
			So(ok, ShouldBeFalse)
		})
	})
}
