// ABOUTME: Renders the effective configuration as YAML for `termweb config`
// ABOUTME: Durations are written in Go duration syntax so the output loads back unchanged

package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type dumpConfig struct {
	TargetURL         string  `yaml:"target_url"`
	CaptureQuality    int     `yaml:"capture_quality"`
	CaptureFormat     string  `yaml:"capture_format"`
	OutputWidth       int     `yaml:"output_width"`
	OutputHeight      int     `yaml:"output_height"`
	PaletteSize       int     `yaml:"palette_size"`
	ScrollStep        int     `yaml:"scroll_step"`
	EncoderProfile    string  `yaml:"encoder_profile"`
	ViewportWidth     int     `yaml:"viewport_width"`
	ViewportHeight    int     `yaml:"viewport_height"`
	NavigationTimeout string  `yaml:"navigation_timeout"`
	CaptureTimeout    string  `yaml:"capture_timeout"`
	StatusLine        bool    `yaml:"status_line"`
	Browser           Browser `yaml:"browser"`
}

// Dump returns cfg as a YAML document.
func Dump(cfg Config) ([]byte, error) {
	out, err := yaml.Marshal(dumpConfig{
		TargetURL:         cfg.TargetURL,
		CaptureQuality:    cfg.CaptureQuality,
		CaptureFormat:     cfg.CaptureFormat,
		OutputWidth:       cfg.OutputWidth,
		OutputHeight:      cfg.OutputHeight,
		PaletteSize:       cfg.PaletteSize,
		ScrollStep:        cfg.ScrollStep,
		EncoderProfile:    cfg.EncoderProfile,
		ViewportWidth:     cfg.ViewportWidth,
		ViewportHeight:    cfg.ViewportHeight,
		NavigationTimeout: cfg.NavigationTimeout.String(),
		CaptureTimeout:    cfg.CaptureTimeout.String(),
		StatusLine:        cfg.StatusLine,
		Browser:           cfg.Browser,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return out, nil
}
