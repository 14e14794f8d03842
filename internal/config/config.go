package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"divindex/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	LogLevel string
	Input    InputConfig
	Output   OutputConfig
}

// InputConfig controls how the abundance table is read.
type InputConfig struct {
	Sheet      string // worksheet for .xlsx input
	SiteColumn string // header of the site label column; empty means auto-detect
	Delimiter  string // field separator for text input; empty follows the extension
}

// OutputConfig selects the report sinks.
type OutputConfig struct {
	WorkbookPath string // .xlsx chart workbook, optional
	ReportPath   string // .md or .html report, optional
	Charts       bool   // terminal charts after the summary
}

// Load reads configuration from environment variables and validates it.
// Call godotenv.Load beforehand to pick up a .env file.
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
		Input: InputConfig{
			Sheet:      getEnvOrDefault("DIVINDEX_SHEET", "Sheet1"),
			SiteColumn: getEnvOrDefault("DIVINDEX_SITE_COLUMN", ""),
			Delimiter:  getEnvOrDefault("DIVINDEX_DELIMITER", ""),
		},
		Output: OutputConfig{
			WorkbookPath: getEnvOrDefault("DIVINDEX_WORKBOOK", ""),
			ReportPath:   getEnvOrDefault("DIVINDEX_REPORT", ""),
			Charts:       getEnvBoolOrDefault("DIVINDEX_CHARTS", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

// Validate checks output paths and required fields.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Input.Sheet) == "" {
		return errors.ConfigInvalid("worksheet name must not be empty")
	}
	if c.Input.Delimiter != "" {
		if _, err := ParseDelimiter(c.Input.Delimiter); err != nil {
			return err
		}
	}
	if c.Output.WorkbookPath != "" && strings.ToLower(filepath.Ext(c.Output.WorkbookPath)) != ".xlsx" {
		return errors.ConfigInvalid("workbook path must end in .xlsx: " + c.Output.WorkbookPath)
	}
	if c.Output.ReportPath != "" {
		switch strings.ToLower(filepath.Ext(c.Output.ReportPath)) {
		case ".md", ".markdown", ".html", ".htm":
		default:
			return errors.ConfigInvalid("report path must end in .md or .html: " + c.Output.ReportPath)
		}
	}
	return nil
}

// ParseDelimiter turns a delimiter setting into the separator rune. It accepts
// a single character or one of the names "tab", "comma", "semicolon".
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "tab", `\t`:
		return '\t', nil
	case "comma":
		return ',', nil
	case "semicolon":
		return ';', nil
	}
	runes := []rune(s)
	if len(runes) != 1 || runes[0] == '"' || runes[0] == '\r' || runes[0] == '\n' || runes[0] == utf8.RuneError {
		return 0, errors.ConfigInvalid(fmt.Sprintf("delimiter must be a single character, got %q", s))
	}
	return runes[0], nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
