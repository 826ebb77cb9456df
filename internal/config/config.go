package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Suggest backends.
const (
	BackendHTTP      = "http"
	BackendLLM       = "llm"
	BackendAnthropic = "anthropic"
)

// Config is the complete set of settings.
type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Editor  EditorConfig  `toml:"editor"`
	Suggest SuggestConfig `toml:"suggest"`
	Library LibraryConfig `toml:"library"`
	Study   StudyConfig   `toml:"study"`
}

// LoggingConfig configures the log sink.
type LoggingConfig struct {
	Level string `toml:"level"`
	// File receives log output. Empty discards logs in terminal sessions.
	File string `toml:"file"`
}

// EditorConfig tunes popup and idle behavior.
type EditorConfig struct {
	MinCharsForSuggest int `toml:"min_chars_for_suggest"`
	IdleDelayMS        int `toml:"idle_delay_ms"`
}

// SuggestConfig configures the remote suggestion service.
type SuggestConfig struct {
	Enabled       bool      `toml:"enabled"`
	Backend       string    `toml:"backend"`
	Endpoint      string    `toml:"endpoint"`
	TimeoutMS     int       `toml:"timeout_ms"`
	RatePerSecond float64   `toml:"rate_per_second"`
	Burst         int       `toml:"burst"`
	LLM           LLMConfig `toml:"llm"`
}

// LLMConfig configures the OpenAI-compatible backend.
type LLMConfig struct {
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
	APIKey  string `toml:"api_key"`
}

// LibraryConfig locates the completion library.
type LibraryConfig struct {
	Path      string `toml:"path"`
	Watch     bool   `toml:"watch"`
	LuaScript string `toml:"lua_script"`
}

// StudyConfig is the default study metadata sent with suggestion requests.
type StudyConfig struct {
	PatientSex  string `toml:"patient_sex"`
	PatientAge  int    `toml:"patient_age"`
	StudyHeader string `toml:"study_header"`
	StudyInfo   string `toml:"study_info"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "info"},
		Editor: EditorConfig{
			MinCharsForSuggest: 2,
			IdleDelayMS:        2000,
		},
		Suggest: SuggestConfig{
			Backend:   BackendHTTP,
			TimeoutMS: 5000,
			Burst:     1,
		},
		Library: LibraryConfig{Watch: true},
	}
}

// DefaultPath returns the per-user configuration file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "reportassist", "config.toml")
}

// Load builds the configuration from defaults, the file at path and the
// process environment. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		default:
			if err := cfg.decode(path, data); err != nil {
				return nil, err
			}
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.expandPaths()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults without consulting the
// environment. source names the data in errors.
func Parse(source string, data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(source, data); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(path string, data []byte) error {
	if err := toml.Unmarshal(data, c); err != nil {
		perr := &ParseError{Path: path, Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}
	return nil
}

// expandPaths resolves a leading "~/" in file settings.
func (c *Config) expandPaths() {
	c.Logging.File = expandHome(c.Logging.File)
	c.Library.Path = expandHome(c.Library.Path)
	c.Library.LuaScript = expandHome(c.Library.LuaScript)
}

func expandHome(p string) string {
	if !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	bad := func(field, format string, args ...any) {
		errs = append(errs, &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, &ValidationError{Field: "logging.level", Message: fmt.Sprintf("unknown level %q", c.Logging.Level), Err: ErrUnknownLevel})
	}
	if c.Editor.MinCharsForSuggest < 1 {
		bad("editor.min_chars_for_suggest", "must be at least 1, got %d", c.Editor.MinCharsForSuggest)
	}
	if c.Editor.IdleDelayMS <= 0 {
		bad("editor.idle_delay_ms", "must be positive, got %d", c.Editor.IdleDelayMS)
	}
	if c.Suggest.TimeoutMS <= 0 {
		bad("suggest.timeout_ms", "must be positive, got %d", c.Suggest.TimeoutMS)
	}
	if c.Suggest.RatePerSecond < 0 {
		bad("suggest.rate_per_second", "must not be negative")
	}
	if c.Suggest.Burst < 0 {
		bad("suggest.burst", "must not be negative")
	}
	switch c.Suggest.Backend {
	case BackendHTTP:
		if c.Suggest.Enabled && c.Suggest.Endpoint == "" {
			bad("suggest.endpoint", "required when the http backend is enabled")
		}
	case BackendLLM, BackendAnthropic:
	default:
		errs = append(errs, &ValidationError{Field: "suggest.backend", Message: fmt.Sprintf("%q is not http, llm or anthropic", c.Suggest.Backend), Err: ErrUnknownBackend})
	}
	if c.Study.PatientAge < 0 {
		bad("study.patient_age", "must not be negative")
	}
	return errors.Join(errs...)
}

// IdleDelay returns the editor idle period.
func (c *Config) IdleDelay() time.Duration {
	return time.Duration(c.Editor.IdleDelayMS) * time.Millisecond
}

// Timeout returns the suggestion request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Suggest.TimeoutMS) * time.Millisecond
}
