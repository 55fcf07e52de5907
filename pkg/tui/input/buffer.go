// ABOUTME: Reader pulls raw bytes from an io.Reader and hands out one parsed key per Next call.
// ABOUTME: Handles escape sequence buffering, lone-ESC timeout (~50ms), unknown CSI skipping, and bracketed paste.

package input

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/mauromedda/termweb/pkg/tui/key"
)

const (
	readBufSize  = 256
	escTimeout   = 50 * time.Millisecond
	maxCSILen    = 32
	bracketStart = "\x1b[200~"
	bracketEnd   = "\x1b[201~"
)

// ErrClosed is returned by Next after Close.
var ErrClosed = errors.New("input reader closed")

// Reader turns a byte stream (normally a raw-mode stdin) into keys.
// Next must be called from a single goroutine; the background read loop only
// hands bytes over a channel.
type Reader struct {
	src io.Reader

	startOnce sync.Once
	closeOnce sync.Once
	ch        chan readResult
	done      chan struct{}

	buf []byte
	err error
}

// readResult holds the outcome of a single Read call.
type readResult struct {
	data []byte
	err  error
}

// NewReader creates a Reader over src. Reading starts on the first Next.
func NewReader(src io.Reader) *Reader {
	return &Reader{
		src:  src,
		ch:   make(chan readResult),
		done: make(chan struct{}),
		buf:  make([]byte, 0, readBufSize),
	}
}

// Next blocks until a complete key is available, ctx is done, or the source
// fails. Bytes still buffered when the source fails are delivered first.
func (r *Reader) Next(ctx context.Context) (key.Key, error) {
	r.startOnce.Do(func() { go r.readLoop() })

	for {
		consumed, k, needsWait := split(r.buf, r.err != nil)
		if consumed > 0 {
			r.buf = r.buf[consumed:]
			return k, nil
		}
		if r.err != nil {
			return key.Key{}, r.err
		}

		var timeout <-chan time.Time
		if needsWait && len(r.buf) == 1 && r.buf[0] == 0x1b {
			timeout = time.After(escTimeout)
		}

		select {
		case <-ctx.Done():
			return key.Key{}, ctx.Err()
		case <-r.done:
			return key.Key{}, ErrClosed
		case <-timeout:
			// No follow-up bytes: the ESC was a key press of its own.
			r.buf = r.buf[1:]
			return key.Key{Type: key.KeyEscape}, nil
		case res, ok := <-r.ch:
			if !ok {
				r.err = io.EOF
				continue
			}
			if res.err != nil {
				r.err = res.err
				continue
			}
			r.buf = append(r.buf, res.data...)
		}
	}
}

// Close stops the read loop. A Read already blocked in the source is left
// to return on its own.
func (r *Reader) Close() {
	r.closeOnce.Do(func() { close(r.done) })
}

// readLoop continuously reads from the source and sends data on ch.
// It stops when done is closed, preventing goroutine leaks after Close.
func (r *Reader) readLoop() {
	defer close(r.ch)
	tmp := make([]byte, readBufSize)
	for {
		n, err := r.src.Read(tmp)
		if n > 0 {
			data := make([]byte, n)
			copy(data, tmp[:n])
			select {
			case r.ch <- readResult{data: data}:
			case <-r.done:
				return
			}
		}
		if err != nil {
			select {
			case r.ch <- readResult{err: err}:
			case <-r.done:
			}
			return
		}
	}
}

// split parses one key from the front of buf.
// Returns (consumed bytes, parsed key, needs-more-data flag). When final is
// set no more data will arrive and partial input is resolved as best it can.
func split(buf []byte, final bool) (int, key.Key, bool) {
	if len(buf) == 0 {
		return 0, key.Key{}, true
	}

	if consumed, complete := skipBracketedPaste(buf); consumed > 0 {
		return consumed, key.Key{Type: key.KeyUnknown}, false
	} else if !complete && !final {
		return 0, key.Key{}, true
	}

	if buf[0] == 0x1b {
		if len(buf) == 1 {
			if final {
				return 1, key.Key{Type: key.KeyEscape}, false
			}
			return 0, key.Key{}, true
		}
		return splitEscape(buf, final)
	}

	if !utf8.FullRune(buf) {
		if len(buf) < utf8.UTFMax && !final {
			return 0, key.Key{}, true
		}
		return 1, key.Key{Type: key.KeyUnknown}, false
	}

	r, size := utf8.DecodeRune(buf)
	if r == utf8.RuneError {
		return 1, key.Key{Type: key.KeyUnknown}, false
	}
	return size, key.ParseKey(string(buf[:size])), false
}

// splitEscape parses an ESC-prefixed sequence; len(buf) >= 2.
func splitEscape(buf []byte, final bool) (int, key.Key, bool) {
	switch buf[1] {
	case '[':
		// CSI: parameters and intermediates, then one final byte in 0x40..0x7e.
		for i := 2; i < len(buf) && i < maxCSILen; i++ {
			if buf[i] >= 0x40 && buf[i] <= 0x7e {
				return i + 1, key.ParseKey(string(buf[:i+1])), false
			}
		}
		if len(buf) < maxCSILen && !final {
			return 0, key.Key{}, true
		}
		// Runaway or truncated sequence: drop it whole.
		return min(len(buf), maxCSILen), key.Key{Type: key.KeyUnknown}, false
	case 'O':
		if len(buf) < 3 {
			if !final {
				return 0, key.Key{}, true
			}
			return len(buf), key.Key{Type: key.KeyUnknown}, false
		}
		return 3, key.ParseKey(string(buf[:3])), false
	case 0x1b:
		// ESC ESC: the first one stands alone.
		return 1, key.Key{Type: key.KeyEscape}, false
	default:
		return 2, key.ParseKey(string(buf[:2])), false
	}
}

// skipBracketedPaste reports how many bytes a complete bracketed paste at the
// front of buf spans. complete is false while the end marker is still
// missing; a buf that does not start a paste reports (0, true).
func skipBracketedPaste(buf []byte) (consumed int, complete bool) {
	s := string(buf)
	if len(s) < len(bracketStart) {
		if len(s) > 2 && bracketStart[:len(s)] == s {
			return 0, false
		}
		return 0, true
	}
	if s[:len(bracketStart)] != bracketStart {
		return 0, true
	}
	for i := len(bracketStart); i <= len(s)-len(bracketEnd); i++ {
		if s[i:i+len(bracketEnd)] == bracketEnd {
			return i + len(bracketEnd), true
		}
	}
	return 0, false
}
