// ABOUTME: Viewing session wiring: browser, terminal session, controller loop and signal watcher
// ABOUTME: The terminal is restored on every exit path before run returns

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/mauromedda/termweb/internal/config"
	"github.com/mauromedda/termweb/internal/log"
	"github.com/mauromedda/termweb/internal/page"
	"github.com/mauromedda/termweb/internal/viewer"
	"github.com/mauromedda/termweb/pkg/tui/image"
	"github.com/mauromedda/termweb/pkg/tui/terminal"
)

// setupLogging points the logger at a file. Logs are discarded unless
// --log-file or --verbose is given, since the screen belongs to the viewer.
func setupLogging(flags cliFlags) (func(), error) {
	if flags.verbose {
		log.SetLevel(log.LevelDebug)
	}
	path := flags.logFile
	if path == "" && flags.verbose {
		path = config.LogFile()
	}
	if path == "" {
		return func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(nil)
		_ = f.Close()
	}, nil
}

func pageOptions(cfg config.Config) page.Options {
	return page.Options{
		URL:               cfg.TargetURL,
		Format:            page.Format(cfg.CaptureFormat),
		Quality:           cfg.CaptureQuality,
		ViewportWidth:     cfg.ViewportWidth,
		ViewportHeight:    cfg.ViewportHeight,
		NavigationTimeout: cfg.NavigationTimeout,
		CaptureTimeout:    cfg.CaptureTimeout,
		ExecPath:          cfg.Browser.ExecPath,
		Headless:          cfg.Browser.Headless,
		NoSandbox:         cfg.Browser.NoSandbox,
	}
}

func viewerOptions(cfg config.Config, limits viewer.Limits) (viewer.Options, error) {
	profile, err := image.ParseProfile(cfg.EncoderProfile)
	if err != nil {
		return viewer.Options{}, err
	}
	return viewer.Options{
		Step: cfg.ScrollStep,
		Encode: image.EncodeOptions{
			Width:   cfg.OutputWidth,
			Height:  cfg.OutputHeight,
			Profile: profile,
			Colors:  cfg.PaletteSize,
		},
		StatusLine: cfg.StatusLine,
		URL:        cfg.TargetURL,
		Limits:     limits,
	}, nil
}

// outputFits reports whether the configured frame fits in the terminal's
// pixel area. Terminals that do not report one always fit.
func outputFits(cfg config.Config, pxWidth, pxHeight int) bool {
	if pxWidth <= 0 || pxHeight <= 0 {
		return true
	}
	return cfg.OutputWidth <= pxWidth && cfg.OutputHeight <= pxHeight
}

// run owns one viewing session from browser launch to terminal restore.
func run(ctx context.Context, cfg config.Config) (err error) {
	pt := terminal.NewProcessTerminal()
	if !pt.IsTerminal() {
		return errors.New("stdin and stdout must be a terminal")
	}
	if c := image.Detect(); !c.Sixel {
		log.Warn("terminal %q does not advertise sixel support; frames may not display", c.Terminal)
	}

	src, err := page.Open(ctx, pageOptions(cfg))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			log.Warn("%v", cerr)
		}
	}()

	session := terminal.NewSession(pt)
	if err := session.Enter(); err != nil {
		return err
	}
	defer func() {
		if lerr := session.Leave(); lerr != nil && err == nil {
			err = lerr
		}
	}()

	cols, rows, err := session.Size()
	if err != nil {
		return err
	}
	if pw, ph := session.PixelSize(); !outputFits(cfg, pw, ph) {
		log.Warn("output %dx%d exceeds the %dx%d pixel terminal; frames will be clipped",
			cfg.OutputWidth, cfg.OutputHeight, pw, ph)
	}
	opts, err := viewerOptions(cfg, viewer.Limits{Cols: cols, Rows: rows})
	if err != nil {
		return err
	}
	ctrl, err := viewer.New(src, session, opts)
	if err != nil {
		return err
	}
	log.Info("viewing %s in a %dx%d terminal", cfg.TargetURL, cols, rows)

	loopCtx, stopLoop := context.WithCancel(ctx)
	defer stopLoop()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigs)

	var g errgroup.Group
	g.Go(func() error {
		defer stopLoop()
		defer terminal.RestoreOnPanic(session)
		err := ctrl.Run(loopCtx)
		if errors.Is(err, context.Canceled) && ctx.Err() == nil {
			// Stopped by the signal watcher.
			return nil
		}
		return err
	})
	g.Go(func() error {
		defer terminal.RecoverGoroutine(session)
		select {
		case s := <-sigs:
			log.Info("received %s, shutting down", s)
			stopLoop()
		case <-loopCtx.Done():
		}
		return nil
	})
	return g.Wait()
}
