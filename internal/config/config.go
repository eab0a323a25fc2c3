// Package config provides centralized configuration management for provcodes.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import "unicode/utf8"

// Config holds all application configuration.
// All settings can be configured via environment variables; command-line
// flags override them per invocation.
type Config struct {
	Annotate AnnotateConfig
	Logging  LoggingConfig
}

// AnnotateConfig holds settings for annotating survey files.
type AnnotateConfig struct {
	// NameColumn is the column holding province names (default: Provincia)
	NameColumn string `env:"PROVCODES_NAME_COLUMN" default:"Provincia"`

	// CodeColumn is the column that receives codes (default: Codigo_Provincia)
	CodeColumn string `env:"PROVCODES_CODE_COLUMN" default:"Codigo_Provincia"`

	// Sheet is the XLSX worksheet to read (default: first sheet)
	Sheet string `env:"PROVCODES_SHEET"`

	// Comma is the CSV delimiter, a single character (default: ,)
	Comma string `env:"PROVCODES_CSV_COMMA" default:","`

	// Encoding is the CSV input encoding: utf-8, latin1 or windows-1252
	Encoding string `env:"PROVCODES_CSV_ENCODING" default:"utf-8"`

	// Strict makes annotation fail when any name is unresolved (default: false)
	Strict bool `env:"PROVCODES_STRICT" default:"false"`
}

// CommaRune returns the delimiter as a rune, or 0 if Comma is empty.
func (c *AnnotateConfig) CommaRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Comma)
	if r == utf8.RuneError {
		return 0
	}
	return r
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}
