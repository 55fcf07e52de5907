// ABOUTME: Command-line flags for termweb and their mapping onto config keys
// ABOUTME: Only flags the user actually set become overrides, so files and env still apply otherwise

package main

import (
	"github.com/spf13/cobra"

	"github.com/mauromedda/termweb/internal/config"
)

type cliFlags struct {
	configPath string
	logFile    string
	verbose    bool
	quality    int
	palette    int
	width      int
	height     int
	step       int
	format     string
	profile    string
	status     bool
}

// flagKeys maps flag names to the config keys they override.
var flagKeys = map[string]string{
	"quality": "capture_quality",
	"palette": "palette_size",
	"width":   "output_width",
	"height":  "output_height",
	"step":    "scroll_step",
	"format":  "capture_format",
	"profile": "encoder_profile",
	"status":  "status_line",
}

func (f *cliFlags) register(cmd *cobra.Command) {
	def := config.Default()
	pf := cmd.PersistentFlags()

	pf.StringVar(&f.configPath, "config", "", "Config file (default "+config.ConfigFile()+")")
	pf.StringVar(&f.logFile, "log-file", "", "Write logs to this file (--verbose alone uses "+config.LogFile()+")")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "Enable debug logging")
	pf.IntVar(&f.quality, "quality", def.CaptureQuality, "Capture quality 1..100")
	pf.IntVar(&f.palette, "palette", def.PaletteSize, "Sixel palette size 2..256")
	pf.IntVar(&f.width, "width", def.OutputWidth, "Output width in pixels")
	pf.IntVar(&f.height, "height", def.OutputHeight, "Output height in pixels")
	pf.IntVar(&f.step, "step", def.ScrollStep, "Scroll step in pixels")
	pf.StringVar(&f.format, "format", def.CaptureFormat, "Capture format: jpeg or webp")
	pf.StringVar(&f.profile, "profile", def.EncoderProfile, "Encoder profile: high or fast")
	pf.BoolVar(&f.status, "status", def.StatusLine, "Show URL and scroll offset on the bottom row")
}

// overrides collects the flags set on cmd plus the optional URL argument.
func (f *cliFlags) overrides(cmd *cobra.Command, args []string) config.Overrides {
	values := map[string]any{
		"quality": f.quality,
		"palette": f.palette,
		"width":   f.width,
		"height":  f.height,
		"step":    f.step,
		"format":  f.format,
		"profile": f.profile,
		"status":  f.status,
	}

	out := config.Overrides{}
	for name, key := range flagKeys {
		if cmd.Flags().Changed(name) {
			out[key] = values[name]
		}
	}
	if len(args) > 0 {
		out["target_url"] = args[0]
	}
	return out
}
