// ABOUTME: Unix-specific pixel size query for ProcessTerminal via TIOCGWINSZ.
// ABOUTME: Terminals that do not fill ws_xpixel/ws_ypixel report zero.

//go:build unix

package terminal

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// PixelSize returns the drawable area of the terminal in pixels.
func (t *ProcessTerminal) PixelSize() (width, height int, err error) {
	ws, err := unix.IoctlGetWinsize(int(t.out.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, fmt.Errorf("getting terminal pixel size: %w", err)
	}
	return int(ws.Xpixel), int(ws.Ypixel), nil
}
