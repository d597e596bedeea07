// Package config loads CLI settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	formskema "github.com/reoring/formskema"
	"github.com/reoring/formskema/registration"
)

// ErrParsingConfig wraps every environment parsing failure.
var ErrParsingConfig = errors.New("config: failed to parse environment")

// Config holds validator and logging settings. Command-line flags override
// these values.
type Config struct {
	Mode          string `env:"FORMSKEMA_MODE" envDefault:"strict"`
	FailFast      bool   `env:"FORMSKEMA_FAIL_FAST" envDefault:"false"`
	DuplicateKeys string `env:"FORMSKEMA_DUPLICATE_KEYS" envDefault:"warn"` // ignore, warn or error
	MaxDepth      int    `env:"FORMSKEMA_MAX_DEPTH" envDefault:"32"`
	MaxBytes      int64  `env:"FORMSKEMA_MAX_BYTES" envDefault:"1048576"`

	LogLevel  string `env:"FORMSKEMA_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"FORMSKEMA_LOG_FORMAT" envDefault:"console"`
	// LogFile switches logging to a size-rotated file.
	LogFile string `env:"FORMSKEMA_LOG_FILE"`
}

// Load reads dotenv files (".env" when none are given; a missing file is not
// an error) and then parses the process environment. Variables already set
// in the environment win over dotenv entries.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load dotenv: %w", err)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, cfg.validate()
}

// LoadFrom parses cfg from the given variables only, ignoring the process
// environment.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if _, err := c.RegistrationMode(); err != nil {
		return err
	}
	if _, err := DuplicateSeverity(c.DuplicateKeys); err != nil {
		return err
	}
	if c.MaxDepth < 0 || c.MaxBytes < 0 {
		return fmt.Errorf("config: negative limits (depth=%d bytes=%d)", c.MaxDepth, c.MaxBytes)
	}
	return nil
}

// RegistrationMode parses Mode.
func (c Config) RegistrationMode() (registration.Mode, error) {
	return registration.ParseMode(c.Mode)
}

// ParseOpt converts the document settings into formskema.ParseOpt.
func (c Config) ParseOpt() formskema.ParseOpt {
	sev, _ := DuplicateSeverity(c.DuplicateKeys)
	return formskema.ParseOpt{
		Strictness: formskema.Strictness{OnDuplicateKey: sev},
		MaxDepth:   c.MaxDepth,
		MaxBytes:   c.MaxBytes,
		FailFast:   c.FailFast,
	}
}

// DuplicateSeverity parses "ignore", "warn" or "error".
func DuplicateSeverity(s string) (formskema.Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ignore", "":
		return formskema.Ignore, nil
	case "warn":
		return formskema.Warn, nil
	case "error":
		return formskema.Error, nil
	default:
		return formskema.Ignore, fmt.Errorf("config: FORMSKEMA_DUPLICATE_KEYS=%q (want ignore, warn or error)", s)
	}
}
