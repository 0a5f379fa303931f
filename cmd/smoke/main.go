package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/internal/smoketest"
	"github.com/LeadsFlow180/Home-Pro-2026-Promotional-Calendar/pkg/logger"
)

// Default configuration constants.
const (
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:9080", "Base URL of the service")
		email    = flag.String("email", "smoke@example.com", "Email for the throwaway account")
		password = flag.String("password", "smoke-test-pass", "Password for the throwaway account")
		month    = flag.String("month", "", "Month to exercise in detail (default: first listed month)")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile  = flag.String("log", "", "Log file for test output (default: smoke_log_TIMESTAMP.log)")
		generate = flag.Bool("generate", false, "Also exercise campaign generation")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		smoketest.ShowHelp()
		return
	}

	if err := smoketest.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	config := &smoketest.Config{
		BaseURL:  *baseURL,
		Email:    *email,
		Password: *password,
		Month:    *month,
		Timeout:  *timeout,
		LogFile:  *logFile,
		Verbose:  *verbose,
		Generate: *generate,
	}

	if err := smoketest.Run(ctx, config); err != nil {
		logger.Get().Error(ctx, "smoke test failed", logger.Error(err))
		os.Exit(1)
	}
}
