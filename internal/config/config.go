// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Layer optional file and environment on top via Load.
// - External errors must be wrapped via this package's error helpers.
package config

import "path/filepath"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DataDir holds the JSON documents produced by ingestion.
	DataDir string `koanf:"data_dir"`

	// MonthlyCalendarFile, PromotionalCalendarFile and ImageMappingFile
	// override the document names inside DataDir.
	MonthlyCalendarFile     string `koanf:"monthly_calendar_file"`
	PromotionalCalendarFile string `koanf:"promotional_calendar_file"`
	ImageMappingFile        string `koanf:"image_mapping_file"`

	// DBPath locates the SQLite database for users, sessions and saved
	// campaigns.
	DBPath string `koanf:"db_path"`

	// SessionTTLHours bounds how long a sign-in token stays valid.
	SessionTTLHours int `koanf:"session_ttl_hours"`

	// OpenAI-compatible campaign-generation collaborator.
	OpenAIAPIKey  string `koanf:"openai_api_key"`
	OpenAIBaseURL string `koanf:"openai_base_url"`
	OpenAIModel   string `koanf:"openai_model"`

	// LLMTimeoutSeconds caps one generation round trip.
	LLMTimeoutSeconds int `koanf:"llm_timeout_seconds"`

	// CalendarYear supplies the year for ICS export dates, since source
	// labels only carry day-of-month.
	CalendarYear int `koanf:"calendar_year"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:                "info",
		Addr:                    ":9080",
		DataDir:                 "data",
		MonthlyCalendarFile:     "2024-calendar.json",
		PromotionalCalendarFile: "2026-calendar.json",
		ImageMappingFile:        "month-images.json",
		DBPath:                  filepath.Join("data", "promocal.db"),
		SessionTTLHours:         24 * 7,
		OpenAIBaseURL:           "https://api.openai.com/v1",
		OpenAIModel:             "gpt-4o-mini",
		LLMTimeoutSeconds:       30,
		CalendarYear:            2026,
	}
}

// MonthlyCalendarPath returns the resolved path of the monthly document.
func (c *Config) MonthlyCalendarPath() string {
	return filepath.Join(c.DataDir, c.MonthlyCalendarFile)
}

// PromotionalCalendarPath returns the resolved path of the promotional
// document.
func (c *Config) PromotionalCalendarPath() string {
	return filepath.Join(c.DataDir, c.PromotionalCalendarFile)
}

// ImageMappingPath returns the resolved path of the image mapping.
func (c *Config) ImageMappingPath() string {
	return filepath.Join(c.DataDir, c.ImageMappingFile)
}
