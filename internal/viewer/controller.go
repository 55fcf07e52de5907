// ABOUTME: Controller runs the viewing loop: key press -> scroll -> capture -> decode -> sixel -> paint
// ABOUTME: Owns the scroll position and the last rendered frame; everything runs on the caller's goroutine

package viewer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mauromedda/termweb/internal/log"
	"github.com/mauromedda/termweb/internal/page"
	"github.com/mauromedda/termweb/pkg/tui/image"
	"github.com/mauromedda/termweb/pkg/tui/key"
)

// Screen is the terminal side of the loop. *terminal.Session implements it.
type Screen interface {
	Paint(frame image.Frame, status string) error
	NextEvent(ctx context.Context) (key.Key, error)
}

// Options configures a Controller.
type Options struct {
	// Step is the scroll distance in content pixels per key press.
	Step int
	// Encode is passed to image.EncodeSixel for every frame.
	Encode image.EncodeOptions
	// StatusLine enables the bottom status row showing URL and offset.
	StatusLine bool
	// URL is shown on the status line.
	URL    string
	Limits Limits
}

// Controller is the single owner of the viewing session state.
type Controller struct {
	src    page.Source
	screen Screen
	opts   Options

	scroll  Scroll
	frame   image.Frame
	renders int
}

// New returns a controller positioned at the top-left of the page.
func New(src page.Source, screen Screen, opts Options) (*Controller, error) {
	if src == nil || screen == nil {
		return nil, errors.New("viewer: source and screen are required")
	}
	if opts.Step <= 0 {
		return nil, fmt.Errorf("viewer: scroll step must be positive, got %d", opts.Step)
	}
	return &Controller{src: src, screen: screen, opts: opts}, nil
}

// Run renders the first frame, then handles key presses until Escape (nil)
// or ctx is done (ctx.Err()). Any other failure is returned as is.
func (c *Controller) Run(ctx context.Context) error {
	if c.frame == "" {
		if err := c.render(ctx); err != nil {
			return err
		}
	}
	if err := c.paint(); err != nil {
		return err
	}

	for {
		k, err := c.screen.NextEvent(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return err
		}

		switch k.Type {
		case key.KeyEscape:
			log.Debug("escape pressed at %s after %d renders", c.scroll, c.renders)
			return nil
		case key.KeyUp:
			c.scroll = c.scroll.Up(c.opts.Step)
			if err := c.render(ctx); err != nil {
				return err
			}
		case key.KeyDown:
			c.scroll = c.scroll.Down(c.opts.Step)
			if err := c.render(ctx); err != nil {
				return err
			}
		default:
			log.Debug("ignoring key %s", k)
		}

		if err := c.paint(); err != nil {
			return err
		}
	}
}

// Scroll returns the current scroll position.
func (c *Controller) Scroll() Scroll {
	return c.scroll
}

// Renders returns how many frames were captured and encoded so far.
func (c *Controller) Renders() int {
	return c.renders
}

// render moves the page to the current position and replaces the cached
// frame with a fresh capture. On failure the old frame is kept.
func (c *Controller) render(ctx context.Context) error {
	start := time.Now()

	if err := c.src.SetScroll(ctx, c.scroll.X, c.scroll.Y); err != nil {
		return fmt.Errorf("rendering %s: %w", c.scroll, err)
	}
	data, err := c.src.Capture(ctx)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", c.scroll, err)
	}
	buf, err := image.Decode(data)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", c.scroll, err)
	}
	frame, err := image.EncodeSixel(buf, c.opts.Encode)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", c.scroll, err)
	}

	c.frame = frame
	c.renders++
	log.Debug("render %d at %s: %d bytes captured, %d bytes sixel, %s",
		c.renders, c.scroll, len(data), len(frame), time.Since(start).Round(time.Millisecond))
	return nil
}

func (c *Controller) paint() error {
	var status string
	if c.opts.StatusLine {
		status = statusText(c.opts.URL, c.scroll, c.opts.Limits.Cols)
	}
	if err := c.screen.Paint(c.frame, status); err != nil {
		return fmt.Errorf("painting %s: %w", c.scroll, err)
	}
	return nil
}
