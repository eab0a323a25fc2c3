package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/JonMunkholm/provcodes/internal/tabular"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Load reads configuration from environment variables.
// It applies defaults for unset values and validates the result.
// Returns an error if required values are missing or validation fails.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := loadStruct(reflect.ValueOf(cfg).Elem(), os.Getenv); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Default returns the configuration built from tag defaults alone, ignoring
// the environment.
func Default() *Config {
	cfg := &Config{}
	noEnv := func(string) string { return "" }
	if err := loadStruct(reflect.ValueOf(cfg).Elem(), noEnv); err != nil {
		panic(fmt.Sprintf("invalid config defaults: %v", err))
	}
	return cfg
}

// loadStruct recursively populates struct fields using getenv.
func loadStruct(v reflect.Value, getenv func(string) string) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldVal := v.Field(i)

		if !fieldVal.CanSet() {
			continue
		}

		if field.Type.Kind() == reflect.Struct {
			if err := loadStruct(fieldVal, getenv); err != nil {
				return err
			}
			continue
		}

		envName := field.Tag.Get("env")
		if envName == "" {
			continue
		}
		required := field.Tag.Get("required") == "true"

		value := getenv(envName)
		if value == "" {
			if required {
				return fmt.Errorf("required environment variable %s is not set", envName)
			}
			value = field.Tag.Get("default")
		}

		if value == "" {
			continue
		}

		if err := setField(fieldVal, value); err != nil {
			return fmt.Errorf("invalid value for %s=%q: %w", envName, value, err)
		}
	}

	return nil
}

// setField sets a reflect.Value from a string based on its type.
func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	// Annotation validation
	a := c.Annotate
	if strings.TrimSpace(a.NameColumn) == "" {
		errs = append(errs, "PROVCODES_NAME_COLUMN must not be empty")
	}
	if strings.TrimSpace(a.CodeColumn) == "" {
		errs = append(errs, "PROVCODES_CODE_COLUMN must not be empty")
	}
	if a.NameColumn != "" && strings.EqualFold(strings.TrimSpace(a.NameColumn), strings.TrimSpace(a.CodeColumn)) {
		errs = append(errs, fmt.Sprintf("PROVCODES_CODE_COLUMN (%q) must differ from PROVCODES_NAME_COLUMN", a.CodeColumn))
	}
	if !ValidComma(a.Comma) {
		errs = append(errs, fmt.Sprintf("PROVCODES_CSV_COMMA (%q) must be a single character other than a quote or line break", a.Comma))
	}
	if !tabular.ValidEncoding(a.Encoding) {
		errs = append(errs, fmt.Sprintf("PROVCODES_CSV_ENCODING (%q) must be one of: utf-8, latin1, windows-1252", a.Encoding))
	}

	// Logging validation
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  - %s", ErrInvalid, strings.Join(errs, "\n  - "))
	}

	return nil
}

// ValidComma reports whether s can serve as an encoding/csv delimiter.
func ValidComma(s string) bool {
	if utf8.RuneCountInString(s) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && r != '"' && r != '\r' && r != '\n'
}

// String returns a loggable representation of the config.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Annotate: {NameColumn: %q, CodeColumn: %q, Sheet: %q, Comma: %q, Encoding: %q, Strict: %v}, ",
		c.Annotate.NameColumn, c.Annotate.CodeColumn, c.Annotate.Sheet,
		c.Annotate.Comma, c.Annotate.Encoding, c.Annotate.Strict))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}",
		c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}
