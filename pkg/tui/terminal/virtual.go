// ABOUTME: VirtualTerminal implements Terminal for testing without a real TTY.
// ABOUTME: Captures output, queues typed input, tracks screen/cursor/raw state and can inject write failures.

package terminal

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
)

// VirtualTerminal is a fake Terminal for unit tests.
// It records written output, follows the alternate-screen and cursor
// sequences it sees, and feeds Read from data passed to Type.
type VirtualTerminal struct {
	mu         sync.Mutex
	buf        bytes.Buffer
	width      int
	height     int
	pxWidth    int
	pxHeight   int
	rawMode    bool
	altScreen  bool
	cursorOn   bool
	enterCount int
	exitCount  int
	writes     int

	failErr   error
	failCount int

	input     chan []byte
	closeOnce sync.Once
}

// NewVirtualTerminal returns a VirtualTerminal with the given dimensions.
func NewVirtualTerminal(width, height int) *VirtualTerminal {
	return &VirtualTerminal{
		width:    width,
		height:   height,
		cursorOn: true,
		input:    make(chan []byte, 64),
	}
}

// EnterRawMode records a raw-mode entry.
func (v *VirtualTerminal) EnterRawMode() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.rawMode = true
	v.enterCount++
	return nil
}

// ExitRawMode records a raw-mode exit.
func (v *VirtualTerminal) ExitRawMode() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.rawMode = false
	v.exitCount++
	return nil
}

// Size returns the configured terminal dimensions.
func (v *VirtualTerminal) Size() (width, height int, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.width, v.height, nil
}

// Read blocks until Type supplies data or CloseInput is called.
func (v *VirtualTerminal) Read(p []byte) (int, error) {
	data, ok := <-v.input
	if !ok {
		return 0, io.EOF
	}
	return copy(p, data), nil
}

// Write appends data to the internal buffer unless a failure is pending.
func (v *VirtualTerminal) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.writes++
	if v.failCount > 0 {
		v.failCount--
		return 0, v.failErr
	}

	n, err := v.buf.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to virtual buffer: %w", err)
	}
	v.track(string(p))
	return n, nil
}

// track updates screen and cursor state from the sequences in s, in order.
func (v *VirtualTerminal) track(s string) {
	for {
		i := strings.Index(s, "\x1b[?")
		if i < 0 {
			return
		}
		s = s[i:]
		switch {
		case strings.HasPrefix(s, seqAltScreenOn):
			v.altScreen = true
		case strings.HasPrefix(s, seqAltScreenOff):
			v.altScreen = false
		case strings.HasPrefix(s, seqShowCursor):
			v.cursorOn = true
		case strings.HasPrefix(s, seqHideCursor):
			v.cursorOn = false
		}
		s = s[3:]
	}
}

// --- Test helpers (not part of Terminal interface) ---

// Type queues data to be returned by a later Read.
func (v *VirtualTerminal) Type(data string) {
	v.input <- []byte(data)
}

// CloseInput makes pending and future Reads return io.EOF once queued data
// has been consumed.
func (v *VirtualTerminal) CloseInput() {
	v.closeOnce.Do(func() { close(v.input) })
}

// FailWrites makes the next n writes fail with err.
func (v *VirtualTerminal) FailWrites(err error, n int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.failErr = err
	v.failCount = n
}

// Output returns everything written so far.
func (v *VirtualTerminal) Output() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.buf.String()
}

// Reset clears the output buffer.
func (v *VirtualTerminal) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.buf.Reset()
}

// Writes returns how many Write calls were made, failed ones included.
func (v *VirtualTerminal) Writes() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.writes
}

// IsRawMode reports whether raw mode is currently active.
func (v *VirtualTerminal) IsRawMode() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.rawMode
}

// IsAltScreen reports whether the last screen switch selected the alternate screen.
func (v *VirtualTerminal) IsAltScreen() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.altScreen
}

// CursorVisible reports whether the cursor was last shown rather than hidden.
func (v *VirtualTerminal) CursorVisible() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.cursorOn
}

// EnterCount returns how many times EnterRawMode was called.
func (v *VirtualTerminal) EnterCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.enterCount
}

// ExitCount returns how many times ExitRawMode was called.
func (v *VirtualTerminal) ExitCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.exitCount
}

// SetSize updates the terminal dimensions.
func (v *VirtualTerminal) SetSize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.width = width
	v.height = height
}

// PixelSize returns the pixel area set with SetPixelSize, zeros by default.
func (v *VirtualTerminal) PixelSize() (width, height int, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.pxWidth, v.pxHeight, nil
}

// SetPixelSize sets the reported drawable area in pixels.
func (v *VirtualTerminal) SetPixelSize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.pxWidth = width
	v.pxHeight = height
}
