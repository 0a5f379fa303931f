package ingest

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/domain/model"
	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func writeWorkbook(t *testing.T, path string, sheets map[string][][]interface{}) {
	t.Helper()
	f := excelize.NewFile()
	first := true
	for name, rows := range sheets {
		if first {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
			first = false
		} else {
			if _, err := f.NewSheet(name); err != nil {
				t.Fatalf("new sheet: %v", err)
			}
		}
		for r, row := range rows {
			for c, cell := range row {
				axis, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					t.Fatalf("cell name: %v", err)
				}
				if err := f.SetCellValue(name, axis, cell); err != nil {
					t.Fatalf("set cell: %v", err)
				}
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
}

func TestIngestorRun(t *testing.T) {
	Convey("Given both source workbooks on disk", t, func() {
		So(logger.Init(), ShouldBeNil)
		dir := t.TempDir()

		monthlyPath := filepath.Join(dir, "2024-calendar.xlsx")
		writeWorkbook(t, monthlyPath, map[string][][]interface{}{
			"January": {
				{"Home Organization Month", "1st - New Year's Day"},
				{"", "14th - Organize Your Home Day"},
			},
		})

		promoPath := filepath.Join(dir, "2026-calendar.xlsx")
		writeWorkbook(t, promoPath, map[string][][]interface{}{
			"January": {
				{"1/2 Winter Sale", "9th - Static Electricity Day"},
			},
		})

		outDir := filepath.Join(dir, "out")
		ing := New(
			WithMonthlyWorkbook(monthlyPath),
			WithPromotionalWorkbook(promoPath),
			WithOutputDir(outDir),
			WithImagesDir(filepath.Join(dir, "images")),
		)

		Convey("When ingestion runs", func() {
			So(ing.Run(context.Background()), ShouldBeNil)

			Convey("Then the monthly document round-trips through JSON", func() {
				raw, err := os.ReadFile(filepath.Join(outDir, MonthlyCalendarFile))
				So(err, ShouldBeNil)

				var monthly []model.MonthlyData
				So(json.Unmarshal(raw, &monthly), ShouldBeNil)
				So(monthly, ShouldHaveLength, 1)
				So(monthly[0].Month, ShouldEqual, "January")
				So(monthly[0].Themes, ShouldResemble, []string{"Home Organization Month"})
				So(monthly[0].HighlightedDates, ShouldHaveLength, 1)
				So(monthly[0].Events, ShouldHaveLength, 1)
			})

			Convey("Then the promotional document holds both date shapes", func() {
				raw, err := os.ReadFile(filepath.Join(outDir, PromotionalCalendarFile))
				So(err, ShouldBeNil)

				var promos []model.CalendarEvent
				So(json.Unmarshal(raw, &promos), ShouldBeNil)
				So(promos, ShouldHaveLength, 2)
				So(promos[0].Type, ShouldEqual, model.TypePromotional)
			})

			Convey("Then the image mapping exists even with no embedded images", func() {
				raw, err := os.ReadFile(filepath.Join(outDir, ImageMappingFile))
				So(err, ShouldBeNil)

				images := map[string]string{}
				So(json.Unmarshal(raw, &images), ShouldBeNil)
				So(images, ShouldBeEmpty)
			})

			Convey("Then re-running overwrites cleanly", func() {
				So(ing.Run(context.Background()), ShouldBeNil)
			})
		})

		Convey("When a workbook is missing", func() {
			broken := New(
				WithMonthlyWorkbook(filepath.Join(dir, "missing.xlsx")),
				WithPromotionalWorkbook(promoPath),
				WithOutputDir(outDir),
			)

			Convey("Then ingestion fails up front", func() {
				So(broken.Run(context.Background()), ShouldNotBeNil)
			})
		})
	})
}
