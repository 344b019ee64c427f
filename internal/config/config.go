// =============================================================================
// Order Code Filter - Configuration Module
// =============================================================================
//
// This module loads the application configuration from a YAML file. The
// configuration only affects the command-line shell: logging, how files are
// read, and where exports are written. The column catalog is fixed and is not
// configurable.
//
// EXAMPLE (config.yaml):
//
//   log_level: info
//   log_format: text
//   log_file: ./logs/orderfilter.log
//   csv_delimiter: ","
//   missing_values: ["N/A", "#N/A"]
//   export_dir: ./exports
//   output_name_format: "{original}_filtered_{timestamp}"
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes the environment variables that override the file,
// e.g. ORDERFILTER_LOG_LEVEL.
const EnvPrefix = "ORDERFILTER"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL" validate:"oneof=debug info warn warning error"`

	// LogFormat selects the slog handler.
	// Valid values: "text", "json"
	// Default: "text"
	LogFormat string `yaml:"log_format" envconfig:"LOG_FORMAT" validate:"oneof=text json"`

	// LogFile, when set, receives a copy of every log line.
	LogFile string `yaml:"log_file" envconfig:"LOG_FILE"`

	// =========================================================================
	// INPUT SETTINGS
	// =========================================================================

	// CSVDelimiter is the field separator for .csv inputs.
	// Accepts a single character or one of "tab", "pipe", "semicolon".
	// Default: ","
	CSVDelimiter string `yaml:"csv_delimiter" envconfig:"CSV_DELIMITER" validate:"delimiter"`

	// MissingValues are cell texts read as absent values, in addition to
	// empty cells. From the environment, a comma separated list.
	MissingValues []string `yaml:"missing_values" envconfig:"MISSING_VALUES"`

	// =========================================================================
	// EXPORT SETTINGS
	// =========================================================================

	// ExportDir is where exports go when --out names a directory or is
	// omitted with --export.
	// Default: "./exports"
	ExportDir string `yaml:"export_dir" envconfig:"EXPORT_DIR" validate:"required"`

	// OutputNameFormat names generated export files.
	// Placeholders: {original} {timestamp} {date} {uuid}
	// Default: "{original}_filtered_{timestamp}"
	OutputNameFormat string `yaml:"output_name_format" envconfig:"OUTPUT_NAME_FORMAT" validate:"required"`
}

// =============================================================================
// LOADING
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the configuration from a YAML file, then applies
// ORDERFILTER_* environment overrides and defaults.
//
// PARAMETERS:
//   - path: The configuration file path.
//   - optional: When true, a missing file is not an error and only the
//     environment and defaults apply. Used for the implicit default path.
//
// PRECEDENCE (highest first):
//   1. Environment, e.g. ORDERFILTER_LOG_LEVEL=debug
//   2. The YAML file
//   3. Defaults
func Load(path string, optional bool) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case optional && errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.CSVDelimiter == "" {
		cfg.CSVDelimiter = ","
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = "./exports"
	}
	if cfg.OutputNameFormat == "" {
		cfg.OutputNameFormat = "{original}_filtered_{timestamp}"
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

var validate = newValidator()

// newValidator returns a validator that knows the "delimiter" tag and names
// fields by their YAML key in errors.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("delimiter", func(fl validator.FieldLevel) bool {
		_, err := parseDelimiter(fl.Field().String())
		return err == nil
	})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks option values.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	if fe.Tag() == "delimiter" {
		_, derr := parseDelimiter(c.CSVDelimiter)
		return derr
	}
	return fmt.Errorf("invalid %s %q (%s %s)", fe.Field(), fe.Value(), fe.Tag(), fe.Param())
}

// Delimiter returns the CSV delimiter as a rune.
func (c *Config) Delimiter() (rune, error) {
	return parseDelimiter(c.CSVDelimiter)
}

func parseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "", ",":
		return ',', nil
	case "\\t", "\t", "tab":
		return '\t', nil
	case "|", "pipe":
		return '|', nil
	case ";", "semicolon":
		return ';', nil
	}

	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("csv_delimiter must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("csv_delimiter %q is not allowed", s)
	}
	return r, nil
}
