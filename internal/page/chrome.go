// ABOUTME: Chrome is the chromedp-backed Source: one headless browser, one tab, one page.
// ABOUTME: Open blocks until the load event fired and the body is ready, so the first capture is never blank.

package page

import (
	"context"
	"fmt"
	"sync"
	"time"

	cdpage "github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/mauromedda/termweb/internal/log"
)

// maxTraceLen clips traced protocol messages; screenshots travel as base64.
const maxTraceLen = 512

// contextOptions forwards chromedp's logs to ours. Protocol traffic is
// traced only at debug level.
func contextOptions() []chromedp.ContextOption {
	opts := []chromedp.ContextOption{
		chromedp.WithLogf(func(format string, args ...any) { log.Debug("chromedp: "+format, args...) }),
		chromedp.WithErrorf(func(format string, args ...any) { log.Warn("chromedp: "+format, args...) }),
	}
	if log.GetLevel() <= log.LevelDebug {
		opts = append(opts, chromedp.WithDebugf(func(format string, args ...any) {
			log.Debug("cdp: %.*s", maxTraceLen, fmt.Sprintf(format, args...))
		}))
	}
	return opts
}

// Chrome drives a browser over the DevTools protocol.
type Chrome struct {
	opts Options

	tab         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc

	closeOnce sync.Once
	closeErr  error
}

var _ Source = (*Chrome)(nil)

// Open launches the browser, sizes the viewport and loads opts.URL.
// ctx bounds the launch and the page load only; the browser lives until Close.
func Open(ctx context.Context, opts Options) (*Chrome, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNavigation, err)
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.WindowSize(opts.ViewportWidth, opts.ViewportHeight),
	)
	if opts.NoSandbox {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	base := context.WithoutCancel(ctx)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(base, allocOpts...)
	tab, cancelTab := chromedp.NewContext(allocCtx, contextOptions()...)
	c := &Chrome{
		opts:        opts,
		tab:         tab,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
	}

	// The first Run allocates the browser; it must see the tab context itself
	// so a bounded wait below cannot tie the browser's lifetime to a timeout.
	if err := chromedp.Run(tab); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("%w: starting browser: %w", ErrNavigation, err)
	}

	log.Info("loading %s", opts.URL)
	start := time.Now()
	err := c.run(ctx, opts.NavigationTimeout,
		chromedp.EmulateViewport(int64(opts.ViewportWidth), int64(opts.ViewportHeight)),
		chromedp.Navigate(opts.URL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("%w: loading %s: %w", ErrNavigation, opts.URL, err)
	}
	log.Debug("page loaded in %s", time.Since(start).Round(time.Millisecond))
	return c, nil
}

// SetScroll scrolls the page to (x, y).
func (c *Chrome) SetScroll(ctx context.Context, x, y int) error {
	if x < 0 || y < 0 {
		return fmt.Errorf("%w: negative scroll position (%d, %d)", ErrNavigation, x, y)
	}
	if err := c.run(ctx, c.opts.NavigationTimeout, chromedp.Evaluate(scrollScript(x, y), nil)); err != nil {
		return fmt.Errorf("%w: scrolling to (%d, %d): %w", ErrNavigation, x, y, err)
	}
	return nil
}

// Capture screenshots the visible viewport in the configured format and quality.
func (c *Chrome) Capture(ctx context.Context) ([]byte, error) {
	var data []byte
	err := c.run(ctx, c.opts.CaptureTimeout, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		data, err = cdpage.CaptureScreenshot().
			WithFormat(screenshotFormat(c.opts.Format)).
			WithQuality(int64(c.opts.Quality)).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCapture, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty screenshot", ErrCapture)
	}
	log.Debug("captured %d bytes (%s q%d)", len(data), c.opts.Format, c.opts.Quality)
	return data, nil
}

// Close closes the tab and the browser. Safe to call more than once.
func (c *Chrome) Close() error {
	c.closeOnce.Do(func() {
		if err := chromedp.Cancel(c.tab); err != nil && c.tab.Err() == nil {
			c.closeErr = fmt.Errorf("closing browser: %w", err)
		}
		c.cancelTab()
		c.cancelAlloc()
	})
	return c.closeErr
}

// run executes actions on the tab, stopping early when ctx is done or the
// optional timeout elapses.
func (c *Chrome) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx, cancel := context.WithCancel(c.tab)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if timeout > 0 {
		var cancelTimeout context.CancelFunc
		runCtx, cancelTimeout = context.WithTimeout(runCtx, timeout)
		defer cancelTimeout()
	}
	if err := chromedp.Run(runCtx, actions...); err != nil {
		// Report the caller's cancellation rather than the derived one.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}

func screenshotFormat(f Format) cdpage.CaptureScreenshotFormat {
	if f == FormatWebP {
		return cdpage.CaptureScreenshotFormatWebp
	}
	return cdpage.CaptureScreenshotFormatJpeg
}
