// ABOUTME: Windows stub for ProcessTerminal pixel size.
// ABOUTME: The console API has no pixel size for the text area; zero means unknown.

//go:build windows

package terminal

// PixelSize is not reported on Windows.
func (t *ProcessTerminal) PixelSize() (width, height int, err error) {
	return 0, 0, nil
}
