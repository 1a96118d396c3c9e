package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values
const (
	DefaultPageURL        = "about:blank"
	DefaultTimeoutSeconds = 30
	DefaultAccuracy       = 1.0
	DefaultLogLevel       = "info"
)

// ErrInvalidSettings indicates a settings value failed validation.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings configures how wdkit reaches a browser session.
type Settings struct {
	// ControlURL is the DevTools websocket of a running browser.
	// When empty a browser is launched.
	ControlURL string `yaml:"control_url" json:"control_url"`

	// BrowserBin is the browser executable to launch. Empty means auto-detect.
	BrowserBin string `yaml:"browser_bin" json:"browser_bin"`

	// Headless launches the browser without a window.
	Headless bool `yaml:"headless" json:"headless"`

	// PageURL is opened before geolocation calls are made.
	PageURL string `yaml:"page_url" json:"page_url"`

	// Accuracy is the accuracy in meters reported with overridden positions.
	Accuracy float64 `yaml:"accuracy" json:"accuracy"`

	// Timeout bounds each session command, in seconds.
	Timeout int `yaml:"timeout" json:"timeout"`

	LogLevel string `yaml:"log_level" json:"log_level"`
}

// DefaultSettings returns the settings used when no file is present.
func DefaultSettings() *Settings {
	return &Settings{
		Headless: true,
		PageURL:  DefaultPageURL,
		Accuracy: DefaultAccuracy,
		Timeout:  DefaultTimeoutSeconds,
		LogLevel: DefaultLogLevel,
	}
}

// LoadSettings reads settings from path, applies environment overrides and
// validates the result. A missing file yields the defaults.
func LoadSettings(path string) (*Settings, error) {
	s := DefaultSettings()

	// #nosec G304 -- path comes from the wdkit root, not from remote input
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	default:
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("failed to parse settings file: %w", err)
		}
	}

	if err := s.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if s.PageURL == "" {
		s.PageURL = DefaultPageURL
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) applyEnvOverrides() error {
	if v := os.Getenv("WDKIT_CONTROL_URL"); v != "" {
		s.ControlURL = v
	}
	if v := os.Getenv("WDKIT_BROWSER_BIN"); v != "" {
		s.BrowserBin = v
	}
	if v := os.Getenv("WDKIT_PAGE_URL"); v != "" {
		s.PageURL = v
	}
	if v := os.Getenv("WDKIT_LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}
	if v := os.Getenv("WDKIT_HEADLESS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: WDKIT_HEADLESS=%q: %v", ErrInvalidSettings, v, err)
		}
		s.Headless = b
	}
	if v := os.Getenv("WDKIT_TIMEOUT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: WDKIT_TIMEOUT=%q: %v", ErrInvalidSettings, v, err)
		}
		s.Timeout = n
	}
	return nil
}

// Validate checks the settings for values wdkit cannot use. It does not
// modify s.
func (s *Settings) Validate() error {
	if s.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %d", ErrInvalidSettings, s.Timeout)
	}
	if s.Accuracy < 0 {
		return fmt.Errorf("%w: accuracy must not be negative, got %g", ErrInvalidSettings, s.Accuracy)
	}
	switch strings.ToLower(s.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidSettings, s.LogLevel)
	}
	return nil
}

// CommandTimeout returns Timeout as a duration.
func (s *Settings) CommandTimeout() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}

// Save writes the settings to path as YAML.
func (s *Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := writeFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}
