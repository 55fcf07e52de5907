// ABOUTME: Session scopes raw mode plus the alternate screen and paints whole frames.
// ABOUTME: Leave always attempts every restoration step, so deferred calls recover the shell on any exit path.

package terminal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mauromedda/termweb/pkg/tui/image"
	"github.com/mauromedda/termweb/pkg/tui/input"
	"github.com/mauromedda/termweb/pkg/tui/key"
)

// ErrTerminalIO wraps every write, flush, read and mode-switch failure.
var ErrTerminalIO = errors.New("terminal I/O error")

// Session owns the terminal between Enter and Leave.
type Session struct {
	term Terminal
	keys *input.Reader

	mu     sync.Mutex
	active bool
	rows   int
	buf    bytes.Buffer
}

// NewSession wraps t. Nothing is changed on the terminal until Enter.
func NewSession(t Terminal) *Session {
	return &Session{
		term: t,
		keys: input.NewReader(t),
	}
}

// Enter switches to raw mode and the alternate screen. On failure whatever
// was already switched is rolled back.
func (s *Session) Enter() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return nil
	}
	if err := s.term.EnterRawMode(); err != nil {
		return fmt.Errorf("%w: %v", ErrTerminalIO, err)
	}
	if _, err := s.term.Write([]byte(seqAltScreenOn + seqClearScreen + seqHideCursor)); err != nil {
		_ = s.term.ExitRawMode()
		return fmt.Errorf("%w: entering alternate screen: %v", ErrTerminalIO, err)
	}
	if _, rows, err := s.term.Size(); err == nil {
		s.rows = rows
	}
	s.active = true
	return nil
}

// Leave restores default colors, the cursor, the primary screen and the
// original input mode. It is safe to call more than once and on a session
// that never entered.
func (s *Session) Leave() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return nil
	}
	s.active = false
	s.keys.Close()

	var errs []error
	if _, err := s.term.Write([]byte(seqResetColors + seqShowCursor + seqAltScreenOff)); err != nil {
		errs = append(errs, fmt.Errorf("leaving alternate screen: %w", err))
	}
	if err := s.term.ExitRawMode(); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrTerminalIO, err)
	}
	return nil
}

// Active reports whether the session is between Enter and Leave.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.active
}

// Size returns the terminal size in cells.
func (s *Session) Size() (cols, rows int, err error) {
	cols, rows, err = s.term.Size()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrTerminalIO, err)
	}
	return cols, rows, nil
}

// PixelSize returns the terminal's drawable area in pixels, or zeros when
// the terminal does not report it.
func (s *Session) PixelSize() (width, height int) {
	ps, ok := s.term.(PixelSizer)
	if !ok {
		return 0, 0
	}
	w, h, err := ps.PixelSize()
	if err != nil {
		return 0, 0
	}
	return w, h
}

// Paint overwrites the screen from the top-left corner with frame and, when
// status is not empty, writes it on the last row. Everything goes out in a
// single write so the terminal never sees half a frame from us.
func (s *Session) Paint(frame image.Frame, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return fmt.Errorf("%w: paint on inactive session", ErrTerminalIO)
	}

	s.buf.Reset()
	s.buf.WriteString(seqResetColors)
	s.buf.WriteString(seqHideCursor)
	s.buf.WriteString(moveTo(1, 1))
	s.buf.WriteString(string(frame))
	if status != "" && s.rows > 0 {
		s.buf.WriteString(moveTo(s.rows, 1))
		s.buf.WriteString(seqClearLine)
		s.buf.WriteString(status)
		s.buf.WriteString(seqResetColors)
	}

	if _, err := s.term.Write(s.buf.Bytes()); err != nil {
		return fmt.Errorf("%w: painting frame: %v", ErrTerminalIO, err)
	}
	return nil
}

// NextEvent blocks until the next key press. Context errors are returned
// unwrapped; input failures are ErrTerminalIO.
func (s *Session) NextEvent(ctx context.Context) (key.Key, error) {
	k, err := s.keys.Next(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return key.Key{}, err
		}
		return key.Key{}, fmt.Errorf("%w: reading input: %v", ErrTerminalIO, err)
	}
	return k, nil
}
