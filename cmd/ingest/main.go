// Command ingest converts the source calendar workbooks into the JSON
// documents the server reads at startup.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/domain/ingest"
	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/pkg/logger"
)

const defaultRunTimeout = 5 * time.Minute

func main() {
	var (
		monthlyWorkbook     = flag.String("monthly", "Marketing Calendar 2024.xlsx", "Path to the theme calendar workbook")
		promotionalWorkbook = flag.String("promotional", "2026 Promotional Calendar.xlsx", "Path to the promotional calendar workbook")
		outputDir           = flag.String("out", "data", "Directory for the generated JSON documents")
		imagesDir           = flag.String("images", "", "Directory for extracted month images (omit to skip image extraction)")
		imagePrefix         = flag.String("image-prefix", "/images/months", "URL prefix recorded for extracted images")
		logLevel            = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := logger.SetLevelString(*logLevel); err != nil {
		_ = logger.SetLevelString("info")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	ing := ingest.New(
		ingest.WithMonthlyWorkbook(*monthlyWorkbook),
		ingest.WithPromotionalWorkbook(*promotionalWorkbook),
		ingest.WithOutputDir(*outputDir),
		ingest.WithImagesDir(*imagesDir),
		ingest.WithImageURLPrefix(*imagePrefix),
		ingest.WithLogger(logger.Get().Named("ingest")),
	)

	if err := ing.Run(ctx); err != nil {
		logger.Get().Error(ctx, "ingestion failed", logger.Error(err))
		os.Exit(1)
	}
	logger.Get().Info(ctx, "ingestion complete", logger.String("out", *outputDir))
}
