package config

import (
	"errors"
	"strings"
	"testing"
)

// clearEnv blanks every variable Load reads; blank means unset to the loader.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"PROVCODES_NAME_COLUMN", "PROVCODES_CODE_COLUMN", "PROVCODES_SHEET",
		"PROVCODES_CSV_COMMA", "PROVCODES_CSV_ENCODING", "PROVCODES_STRICT",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(name, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Annotate.NameColumn != "Provincia" {
		t.Errorf("Annotate.NameColumn = %q, want %q", cfg.Annotate.NameColumn, "Provincia")
	}
	if cfg.Annotate.CodeColumn != "Codigo_Provincia" {
		t.Errorf("Annotate.CodeColumn = %q, want %q", cfg.Annotate.CodeColumn, "Codigo_Provincia")
	}
	if cfg.Annotate.Comma != "," {
		t.Errorf("Annotate.Comma = %q, want %q", cfg.Annotate.Comma, ",")
	}
	if cfg.Annotate.Encoding != "utf-8" {
		t.Errorf("Annotate.Encoding = %q, want %q", cfg.Annotate.Encoding, "utf-8")
	}
	if cfg.Annotate.Sheet != "" {
		t.Errorf("Annotate.Sheet = %q, want empty", cfg.Annotate.Sheet)
	}
	if cfg.Annotate.Strict {
		t.Error("Annotate.Strict = true, want false")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %+v, want info/text", cfg.Logging)
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROVCODES_NAME_COLUMN", "prov")
	t.Setenv("PROVCODES_CSV_COMMA", ";")
	t.Setenv("PROVCODES_CSV_ENCODING", "latin1")
	t.Setenv("PROVCODES_STRICT", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Annotate.NameColumn != "prov" {
		t.Errorf("Annotate.NameColumn = %q, want %q", cfg.Annotate.NameColumn, "prov")
	}
	if cfg.Annotate.CommaRune() != ';' {
		t.Errorf("Annotate.CommaRune() = %q, want ';'", cfg.Annotate.CommaRune())
	}
	if cfg.Annotate.Encoding != "latin1" {
		t.Errorf("Annotate.Encoding = %q, want %q", cfg.Annotate.Encoding, "latin1")
	}
	if !cfg.Annotate.Strict {
		t.Error("Annotate.Strict = false, want true")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_InvalidBool(t *testing.T) {
	t.Setenv("PROVCODES_STRICT", "maybe")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for invalid boolean")
	}
	if !strings.Contains(err.Error(), "PROVCODES_STRICT") {
		t.Errorf("error should mention PROVCODES_STRICT: %v", err)
	}
}

func TestLoad_InvalidEncoding(t *testing.T) {
	t.Setenv("PROVCODES_CSV_ENCODING", "utf-16")

	_, err := Load()
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("Load() error = %v, want ErrInvalid", err)
	}
}

func TestDefault_IgnoresEnvironment(t *testing.T) {
	t.Setenv("PROVCODES_NAME_COLUMN", "prov")

	cfg := Default()
	if cfg.Annotate.NameColumn != "Provincia" {
		t.Errorf("Default().Annotate.NameColumn = %q, want %q", cfg.Annotate.NameColumn, "Provincia")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default() does not validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		mention string
	}{
		{
			name:    "empty name column",
			modify:  func(c *Config) { c.Annotate.NameColumn = "  " },
			mention: "PROVCODES_NAME_COLUMN",
		},
		{
			name:    "empty code column",
			modify:  func(c *Config) { c.Annotate.CodeColumn = "" },
			mention: "PROVCODES_CODE_COLUMN",
		},
		{
			name:    "same columns",
			modify:  func(c *Config) { c.Annotate.CodeColumn = "provincia" },
			mention: "must differ",
		},
		{
			name:    "multi-character comma",
			modify:  func(c *Config) { c.Annotate.Comma = ";;" },
			mention: "PROVCODES_CSV_COMMA",
		},
		{
			name:    "quote comma",
			modify:  func(c *Config) { c.Annotate.Comma = `"` },
			mention: "PROVCODES_CSV_COMMA",
		},
		{
			name:    "unknown encoding",
			modify:  func(c *Config) { c.Annotate.Encoding = "ebcdic" },
			mention: "PROVCODES_CSV_ENCODING",
		},
		{
			name:    "invalid log level",
			modify:  func(c *Config) { c.Logging.Level = "verbose" },
			mention: "LOG_LEVEL",
		},
		{
			name:    "invalid log format",
			modify:  func(c *Config) { c.Logging.Format = "xml" },
			mention: "LOG_FORMAT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("Validate() error = %v, want ErrInvalid", err)
			}
			if !strings.Contains(err.Error(), tt.mention) {
				t.Errorf("error should mention %s: %v", tt.mention, err)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Annotate.Encoding = "ebcdic"
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	for _, want := range []string{"PROVCODES_CSV_ENCODING", "LOG_FORMAT"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %s: %v", want, err)
		}
	}
}

func TestCommaRune(t *testing.T) {
	tests := []struct {
		comma string
		want  rune
	}{
		{",", ','},
		{";", ';'},
		{"\t", '\t'},
		{"", 0},
	}

	for _, tt := range tests {
		c := &AnnotateConfig{Comma: tt.comma}
		if got := c.CommaRune(); got != tt.want {
			t.Errorf("CommaRune(%q) = %q, want %q", tt.comma, got, tt.want)
		}
	}
}

func TestConfigString(t *testing.T) {
	str := Default().String()
	for _, want := range []string{`NameColumn: "Provincia"`, `Encoding: "utf-8"`, `Level: "info"`} {
		if !strings.Contains(str, want) {
			t.Errorf("String() = %s, missing %s", str, want)
		}
	}
}
