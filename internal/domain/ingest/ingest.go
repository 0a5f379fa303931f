// Package ingest converts the two source spreadsheets into the JSON
// documents the service reads at run time. It runs as a standalone build
// step; re-running fully overwrites prior output and is idempotent for the
// same spreadsheet bytes.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/domain/model"
	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/pkg/logger"
	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/pkg/metrics"
)

// Output file names inside the output directory.
const (
	MonthlyCalendarFile     = "2024-calendar.json"
	PromotionalCalendarFile = "2026-calendar.json"
	ImageMappingFile        = "month-images.json"

	outputFilePermission = 0o644
	outputDirPermission  = 0o755
)

// Ingestor reads the source workbooks and writes the JSON documents.
type Ingestor struct {
	monthlyWorkbook     string
	promotionalWorkbook string
	outputDir           string
	imagesDir           string
	imageURLPrefix      string
	log                 logger.Logger
}

// Option applies a configuration option to the Ingestor.
type Option func(*Ingestor)

// WithMonthlyWorkbook sets the path of the 2024-style theme calendar.
func WithMonthlyWorkbook(path string) Option {
	return func(i *Ingestor) { i.monthlyWorkbook = path }
}

// WithPromotionalWorkbook sets the path of the 2026-style promotional
// calendar.
func WithPromotionalWorkbook(path string) Option {
	return func(i *Ingestor) { i.promotionalWorkbook = path }
}

// WithOutputDir sets the directory receiving the JSON documents.
func WithOutputDir(dir string) Option {
	return func(i *Ingestor) {
		if dir != "" {
			i.outputDir = dir
		}
	}
}

// WithImagesDir sets the directory receiving extracted month images.
func WithImagesDir(dir string) Option {
	return func(i *Ingestor) {
		if dir != "" {
			i.imagesDir = dir
		}
	}
}

// WithImageURLPrefix sets the root-relative prefix recorded in the image
// mapping.
func WithImageURLPrefix(prefix string) Option {
	return func(i *Ingestor) {
		if prefix != "" {
			i.imageURLPrefix = strings.TrimRight(prefix, "/")
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(i *Ingestor) {
		if log != nil {
			i.log = log
		}
	}
}

// New constructs an Ingestor with defaults.
func New(opts ...Option) *Ingestor {
	i := &Ingestor{
		outputDir:      "data",
		imagesDir:      filepath.Join("public", "images", "months"),
		imageURLPrefix: "/images/months",
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.log == nil {
		i.log = logger.Get()
	}
	return i
}

// Run processes both workbooks and writes every output document. A single
// unreadable cell or row never aborts the run; only missing workbooks or
// write failures do.
func (i *Ingestor) Run(ctx context.Context) error {
	monthly, images, err := i.processMonthlyWorkbook(ctx)
	if err != nil {
		return err
	}

	// Merge the image mapping into month records by exact month-name lookup.
	// Months without an extracted image simply omit the path.
	for idx := range monthly {
		if path, ok := images[monthly[idx].Month]; ok {
			monthly[idx].ImagePath = path
		}
	}

	promotional, err := i.processPromotionalWorkbook(ctx)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(i.outputDir, outputDirPermission); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := writeJSON(filepath.Join(i.outputDir, MonthlyCalendarFile), monthly); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(i.outputDir, PromotionalCalendarFile), promotional); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(i.outputDir, ImageMappingFile), images); err != nil {
		return err
	}

	i.log.Info(ctx, "ingestion complete",
		logger.Int("months", len(monthly)),
		logger.Int("promotionalEvents", len(promotional)),
		logger.Int("monthImages", len(images)))
	return nil
}

// processMonthlyWorkbook walks every worksheet of the 2024-style calendar,
// one MonthlyData per sheet in worksheet order, and extracts embedded month
// images alongside.
func (i *Ingestor) processMonthlyWorkbook(ctx context.Context) ([]model.MonthlyData, map[string]string, error) {
	f, err := excelize.OpenFile(i.monthlyWorkbook)
	if err != nil {
		return nil, nil, fmt.Errorf("open monthly workbook: %w", err)
	}
	defer f.Close()

	monthly := []model.MonthlyData{}
	images := map[string]string{}

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			i.log.Warn(ctx, "skipping unreadable worksheet", logger.String("sheet", sheet), logger.Error(err))
			continue
		}

		typed := typedRows(rows)
		data := ProcessMonthSheet(sheet, typed)
		monthly = append(monthly, data)
		metrics.RecordIngestRows(len(rows))
		metrics.RecordIngestDroppedCells(countTextCells(typed) - len(data.Themes) - len(data.Events) - len(data.HighlightedDates))

		if path, ok := i.extractSheetImage(ctx, f, sheet); ok {
			images[sheet] = path
		}

		i.log.Debug(ctx, "worksheet processed",
			logger.String("month", sheet),
			logger.Int("themes", len(data.Themes)),
			logger.Int("events", len(data.Events)),
			logger.Int("highlighted", len(data.HighlightedDates)))
	}

	return monthly, images, nil
}

// processPromotionalWorkbook flattens every worksheet of the 2026-style
// calendar into one promotional event list tagged by sheet name.
func (i *Ingestor) processPromotionalWorkbook(ctx context.Context) ([]model.CalendarEvent, error) {
	f, err := excelize.OpenFile(i.promotionalWorkbook)
	if err != nil {
		return nil, fmt.Errorf("open promotional workbook: %w", err)
	}
	defer f.Close()

	events := []model.CalendarEvent{}
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			i.log.Warn(ctx, "skipping unreadable worksheet", logger.String("sheet", sheet), logger.Error(err))
			continue
		}
		typed := typedRows(rows)
		sheetEvents := ProcessPromoSheet(sheet, typed)
		events = append(events, sheetEvents...)
		metrics.RecordIngestRows(len(rows))
		metrics.RecordIngestDroppedCells(countTextCells(typed) - len(sheetEvents))
	}
	return events, nil
}

// extractSheetImage saves the first embedded picture of a worksheet to the
// images directory, named after the lowercased month and the picture's
// format. Extraction failures degrade to "no image"; they never fail the
// ingestion run.
func (i *Ingestor) extractSheetImage(ctx context.Context, f *excelize.File, sheet string) (string, bool) {
	cells, err := f.GetPictureCells(sheet)
	if err != nil || len(cells) == 0 {
		return "", false
	}

	for _, cell := range cells {
		pictures, err := f.GetPictures(sheet, cell)
		if err != nil {
			continue
		}
		for _, pic := range pictures {
			cellValue := ImageCell(pic.File, strings.TrimPrefix(pic.Extension, "."))
			name := strings.ToLower(sheet) + "." + cellValue.Format
			if err := os.MkdirAll(i.imagesDir, outputDirPermission); err != nil {
				i.log.Warn(ctx, "cannot create images dir", logger.Error(err))
				return "", false
			}
			if err := os.WriteFile(filepath.Join(i.imagesDir, name), cellValue.Image, outputFilePermission); err != nil {
				i.log.Warn(ctx, "cannot save month image", logger.String("month", sheet), logger.Error(err))
				return "", false
			}
			return i.imageURLPrefix + "/" + name, true
		}
	}
	return "", false
}

func typedRows(raw [][]string) [][]CellValue {
	rows := make([][]CellValue, len(raw))
	for r, row := range raw {
		rows[r] = textRow(row)
	}
	return rows
}

// countTextCells reports how many cells carry text, the population
// classification draws from.
func countTextCells(rows [][]CellValue) int {
	n := 0
	for _, row := range rows {
		for _, cell := range row {
			if cell.Kind == CellText {
				n++
			}
		}
	}
	return n
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, outputFilePermission); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
