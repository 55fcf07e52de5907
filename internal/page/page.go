// ABOUTME: Page source abstraction: scroll a rendered page and capture the visible viewport as compressed bytes.
// ABOUTME: Defines the Source interface, its options, and the navigation/capture error sentinels.

package page

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNavigation covers browser launch, page load and scroll failures.
	ErrNavigation = errors.New("navigation failed")
	// ErrCapture covers screenshot failures.
	ErrCapture = errors.New("capture failed")
)

// Format is the lossy still-image format requested from the browser.
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatWebP Format = "webp"
)

// Source is a live page that can be scrolled and photographed.
type Source interface {
	// SetScroll moves the page so (x, y) content pixels sit at the top-left
	// corner of the viewport. Both values must be non-negative.
	SetScroll(ctx context.Context, x, y int) error
	// Capture returns the currently visible viewport, compressed.
	Capture(ctx context.Context) ([]byte, error)
	// Close shuts the browser down.
	Close() error
}

// Options configures Open.
type Options struct {
	URL     string
	Format  Format
	Quality int

	ViewportWidth  int
	ViewportHeight int

	// Zero disables the bound.
	NavigationTimeout time.Duration
	CaptureTimeout    time.Duration

	ExecPath  string
	Headless  bool
	NoSandbox bool
}

// DefaultOptions returns the options used when only a URL is known.
func DefaultOptions(url string) Options {
	return Options{
		URL:            url,
		Format:         FormatJPEG,
		Quality:        75,
		ViewportWidth:  800,
		ViewportHeight: 600,
		Headless:       true,
	}
}

func (o Options) validate() error {
	var errs []error
	if o.URL == "" {
		errs = append(errs, errors.New("url is required"))
	}
	switch o.Format {
	case FormatJPEG, FormatWebP:
	default:
		errs = append(errs, fmt.Errorf("format %q is not supported", o.Format))
	}
	if o.Quality < 1 || o.Quality > 100 {
		errs = append(errs, fmt.Errorf("quality %d outside 1..100", o.Quality))
	}
	if o.ViewportWidth <= 0 || o.ViewportHeight <= 0 {
		errs = append(errs, fmt.Errorf("viewport %dx%d must be positive", o.ViewportWidth, o.ViewportHeight))
	}
	if o.NavigationTimeout < 0 || o.CaptureTimeout < 0 {
		errs = append(errs, errors.New("timeouts must not be negative"))
	}
	return errors.Join(errs...)
}

// scrollScript returns the page script that scrolls to (x, y).
func scrollScript(x, y int) string {
	return fmt.Sprintf("window.scrollTo(%d, %d)", x, y)
}
