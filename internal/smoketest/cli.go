package smoketest

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "smoke_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the smoke test tool.
func ShowHelp() {
	os.Stdout.WriteString(`Calendar API Smoke Test
=======================

Exercises every route of a running promotional-calendar server end to end.

Usage:
  go run cmd/smoke/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -email string
        Email for the throwaway account (default "smoke@example.com")
  -password string
        Password for the throwaway account (default "smoke-test-pass")
  -month string
        Month to exercise in detail (default: first listed month)
  -timeout duration
        HTTP request timeout (default 30s)
  -log string
        Log file for test output (default: smoke_log_TIMESTAMP.log)
  -generate
        Also exercise campaign generation (spends provider credits)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Smoke test a local server
  go run cmd/smoke/main.go

  # Exercise February against a remote server, including generation
  go run cmd/smoke/main.go -url https://calendar.example.com -month February -generate
`)
}
