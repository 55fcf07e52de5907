// ABOUTME: Pre-sets the lipgloss background so styling never queries the terminal with OSC 10/11
// ABOUTME: Import with _ from main; a query reply would otherwise land in the raw-mode key stream

package termfix

import "github.com/charmbracelet/lipgloss"

func init() {
	// With an explicit background lipgloss skips the sync.Once that sends
	// the query. The status line only uses reverse video, so the value
	// itself does not matter.
	lipgloss.SetHasDarkBackground(true)
}
