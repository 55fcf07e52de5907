// ABOUTME: Escape sequences the session writes: alternate screen, cursor visibility, position, colors.
// ABOUTME: Kept as constants so the session and its fakes agree on the exact bytes.

package terminal

import "fmt"

const (
	seqAltScreenOn  = "\x1b[?1049h"
	seqAltScreenOff = "\x1b[?1049l"
	seqHideCursor   = "\x1b[?25l"
	seqShowCursor   = "\x1b[?25h"
	seqResetColors  = "\x1b[0m"
	seqClearScreen  = "\x1b[2J"
	seqClearLine    = "\x1b[2K"
)

// moveTo returns the CUP sequence for a 1-based row and column.
func moveTo(row, col int) string {
	return fmt.Sprintf("\x1b[%d;%dH", row, col)
}
