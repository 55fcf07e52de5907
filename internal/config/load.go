// ABOUTME: Layered config loading with viper: defaults, optional YAML file, TERMWEB_* env, overrides
// ABOUTME: A missing default file is fine; a missing explicitly named file is an error

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. TERMWEB_SCROLL_STEP.
const EnvPrefix = "TERMWEB"

// Overrides holds values set on the command line, keyed by config key
// (e.g. "palette_size", "browser.exec_path"). They win over everything else.
type Overrides map[string]any

// Load builds the effective configuration. If path is empty the default
// config file is used when it exists.
func Load(path string, overrides Overrides) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = ConfigFile()
	}

	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
		if !missing || explicit {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	for key, value := range overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("target_url", cfg.TargetURL)
	v.SetDefault("capture_quality", cfg.CaptureQuality)
	v.SetDefault("capture_format", cfg.CaptureFormat)
	v.SetDefault("output_width", cfg.OutputWidth)
	v.SetDefault("output_height", cfg.OutputHeight)
	v.SetDefault("palette_size", cfg.PaletteSize)
	v.SetDefault("scroll_step", cfg.ScrollStep)
	v.SetDefault("encoder_profile", cfg.EncoderProfile)
	v.SetDefault("viewport_width", cfg.ViewportWidth)
	v.SetDefault("viewport_height", cfg.ViewportHeight)
	v.SetDefault("navigation_timeout", cfg.NavigationTimeout)
	v.SetDefault("capture_timeout", cfg.CaptureTimeout)
	v.SetDefault("status_line", cfg.StatusLine)
	v.SetDefault("browser.exec_path", cfg.Browser.ExecPath)
	v.SetDefault("browser.headless", cfg.Browser.Headless)
	v.SetDefault("browser.no_sandbox", cfg.Browser.NoSandbox)
}
