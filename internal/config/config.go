// ABOUTME: Viewer configuration: target page, capture and encoder parameters, browser options
// ABOUTME: Default() mirrors the built-in constants; Validate() range-checks every field

package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Capture formats accepted by the page source.
const (
	FormatJPEG = "jpeg"
	FormatWebP = "webp"
)

// Encoder profiles.
const (
	ProfileHigh = "high"
	ProfileFast = "fast"
)

// DefaultTargetURL is the page opened when nothing else is configured.
const DefaultTargetURL = "https://ja.wikipedia.org/wiki/LISP"

// Config holds every tunable of a viewing session.
type Config struct {
	TargetURL         string        `mapstructure:"target_url" yaml:"target_url"`
	CaptureQuality    int           `mapstructure:"capture_quality" yaml:"capture_quality"`
	CaptureFormat     string        `mapstructure:"capture_format" yaml:"capture_format"`
	OutputWidth       int           `mapstructure:"output_width" yaml:"output_width"`
	OutputHeight      int           `mapstructure:"output_height" yaml:"output_height"`
	PaletteSize       int           `mapstructure:"palette_size" yaml:"palette_size"`
	ScrollStep        int           `mapstructure:"scroll_step" yaml:"scroll_step"`
	EncoderProfile    string        `mapstructure:"encoder_profile" yaml:"encoder_profile"`
	ViewportWidth     int           `mapstructure:"viewport_width" yaml:"viewport_width"`
	ViewportHeight    int           `mapstructure:"viewport_height" yaml:"viewport_height"`
	NavigationTimeout time.Duration `mapstructure:"navigation_timeout" yaml:"navigation_timeout"`
	CaptureTimeout    time.Duration `mapstructure:"capture_timeout" yaml:"capture_timeout"`
	StatusLine        bool          `mapstructure:"status_line" yaml:"status_line"`
	Browser           Browser       `mapstructure:"browser" yaml:"browser"`
}

// Browser configures the headless browser process.
type Browser struct {
	ExecPath  string `mapstructure:"exec_path" yaml:"exec_path"`
	Headless  bool   `mapstructure:"headless" yaml:"headless"`
	NoSandbox bool   `mapstructure:"no_sandbox" yaml:"no_sandbox"`
}

// Default returns the configuration used when no file, environment or flag
// overrides anything.
func Default() Config {
	return Config{
		TargetURL:      DefaultTargetURL,
		CaptureQuality: 75,
		CaptureFormat:  FormatJPEG,
		OutputWidth:    800,
		OutputHeight:   600,
		PaletteSize:    256,
		ScrollStep:     100,
		EncoderProfile: ProfileHigh,
		ViewportWidth:  800,
		ViewportHeight: 600,
		Browser: Browser{
			Headless: true,
		},
	}
}

// Validate reports every out-of-range field at once.
func (c Config) Validate() error {
	var errs []error

	if err := validateURL(c.TargetURL); err != nil {
		errs = append(errs, err)
	}
	if c.CaptureQuality < 1 || c.CaptureQuality > 100 {
		errs = append(errs, fmt.Errorf("capture_quality must be within 1..100, got %d", c.CaptureQuality))
	}
	switch c.CaptureFormat {
	case FormatJPEG, FormatWebP:
	default:
		errs = append(errs, fmt.Errorf("capture_format must be %q or %q, got %q", FormatJPEG, FormatWebP, c.CaptureFormat))
	}
	if c.OutputWidth <= 0 || c.OutputHeight <= 0 {
		errs = append(errs, fmt.Errorf("output size must be positive, got %dx%d", c.OutputWidth, c.OutputHeight))
	}
	if c.PaletteSize < 2 || c.PaletteSize > 256 {
		errs = append(errs, fmt.Errorf("palette_size must be within 2..256, got %d", c.PaletteSize))
	}
	if c.ScrollStep <= 0 {
		errs = append(errs, fmt.Errorf("scroll_step must be positive, got %d", c.ScrollStep))
	}
	switch c.EncoderProfile {
	case ProfileHigh, ProfileFast:
	default:
		errs = append(errs, fmt.Errorf("encoder_profile must be %q or %q, got %q", ProfileHigh, ProfileFast, c.EncoderProfile))
	}
	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		errs = append(errs, fmt.Errorf("viewport size must be positive, got %dx%d", c.ViewportWidth, c.ViewportHeight))
	}
	if c.NavigationTimeout < 0 {
		errs = append(errs, fmt.Errorf("navigation_timeout must not be negative, got %s", c.NavigationTimeout))
	}
	if c.CaptureTimeout < 0 {
		errs = append(errs, fmt.Errorf("capture_timeout must not be negative, got %s", c.CaptureTimeout))
	}

	return errors.Join(errs...)
}

func validateURL(raw string) error {
	if raw == "" {
		return errors.New("target_url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("target_url: %w", err)
	}
	switch u.Scheme {
	case "http", "https":
		if u.Host == "" {
			return fmt.Errorf("target_url %q has no host", raw)
		}
	case "file", "about", "data":
	default:
		return fmt.Errorf("target_url scheme %q is not supported", u.Scheme)
	}
	return nil
}
