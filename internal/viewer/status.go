// ABOUTME: Optional bottom-row status line: page URL and scroll offset in reverse video
// ABOUTME: Fitted to the terminal width before styling so lipgloss never wraps it

package viewer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mauromedda/termweb/pkg/tui/width"
)

var statusStyle = lipgloss.NewStyle().Reverse(true)

// statusText lays out the URL on the left and the scroll offset on the
// right of a cols-wide row. cols <= 0 means the width is unknown.
func statusText(url string, s Scroll, cols int) string {
	left := " " + url
	right := " " + s.String() + " "
	if cols <= 0 {
		return statusStyle.Render(left + right)
	}

	left = width.Truncate(left, max(0, cols-width.VisibleWidth(right)), "…")
	gap := max(0, cols-width.VisibleWidth(left)-width.VisibleWidth(right))
	line := width.Truncate(left+strings.Repeat(" ", gap)+right, cols, "")
	return statusStyle.Render(line)
}
