// ABOUTME: Defines the Key type and ParseKey for terminal keyboard input parsing.
// ABOUTME: Recognizes printable runes, Escape, Ctrl+C and arrows (plain or modified); the rest is unknown.

package key

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Key represents a parsed keyboard input event.
type Key struct {
	Type  KeyType
	Rune  rune // For printable characters
	Alt   bool
	Ctrl  bool
	Shift bool
}

// KeyType enumerates the kinds of key events the viewer can receive.
type KeyType int

const (
	KeyRune    KeyType = iota // Printable character
	KeyUp                     // Arrow up
	KeyDown                   // Arrow down
	KeyLeft                   // Arrow left
	KeyRight                  // Arrow right
	KeyEscape                 // Escape
	KeyCtrlC                  // Ctrl+C, delivered as a byte in raw mode
	KeyUnknown                // Anything else
)

// ParseKey parses one complete chunk of raw terminal input into a Key.
func ParseKey(data string) Key {
	if len(data) == 0 {
		return Key{Type: KeyUnknown}
	}

	if len(data) == 1 {
		return parseSingleByte(data[0])
	}

	if data[0] == 0x1b {
		return parseEscapeSequence(data)
	}

	r, _ := utf8.DecodeRuneInString(data)
	if r == utf8.RuneError {
		return Key{Type: KeyUnknown}
	}
	return Key{Type: KeyRune, Rune: r}
}

// parseSingleByte handles a single-byte input (ASCII or control character).
func parseSingleByte(b byte) Key {
	switch {
	case b == 0x1b:
		return Key{Type: KeyEscape}
	case b == 0x03:
		return Key{Type: KeyCtrlC, Ctrl: true}
	case b >= 0x20 && b <= 0x7e:
		return Key{Type: KeyRune, Rune: rune(b)}
	}
	return Key{Type: KeyUnknown}
}

// parseEscapeSequence resolves ESC-prefixed data.
func parseEscapeSequence(data string) Key {
	if k, ok := parseArrow(data); ok {
		return k
	}
	if k, ok := parseModifiedArrow(data); ok {
		return k
	}

	// Alt+letter: ESC followed by a single printable byte (0x20..0x7e)
	if len(data) == 2 && data[1] >= 0x20 && data[1] <= 0x7e {
		return Key{Type: KeyRune, Rune: rune(data[1]), Alt: true}
	}

	return Key{Type: KeyUnknown}
}

// parseModifiedArrow handles xterm's "CSI 1 ; <mod> <letter>" form sent for
// arrows held with Shift, Alt or Ctrl.
func parseModifiedArrow(data string) (Key, bool) {
	if len(data) != 6 || !strings.HasPrefix(data, "\x1b[1;") {
		return Key{}, false
	}
	mod := data[4]
	if mod < '2' || mod > '8' {
		return Key{}, false
	}
	base, ok := parseArrow("\x1b[" + data[5:])
	if !ok {
		return Key{}, false
	}

	bits := mod - '1'
	base.Shift = bits&1 != 0
	base.Alt = bits&2 != 0
	base.Ctrl = bits&4 != 0
	return base, true
}

// keyTypeNames provides human-readable labels for each KeyType.
var keyTypeNames = map[KeyType]string{
	KeyUp:      "Up",
	KeyDown:    "Down",
	KeyLeft:    "Left",
	KeyRight:   "Right",
	KeyEscape:  "Escape",
	KeyCtrlC:   "Ctrl+C",
	KeyUnknown: "Unknown",
}

// String returns a human-readable representation of the Key for logs.
func (k Key) String() string {
	if k.Type == KeyRune {
		s := string(k.Rune)
		if k.Alt {
			s = fmt.Sprintf("Alt+%s", s)
		}
		return s
	}
	name, ok := keyTypeNames[k.Type]
	if !ok {
		return "Unknown"
	}
	if k.Ctrl && k.Type != KeyCtrlC {
		name = "Ctrl+" + name
	}
	if k.Alt {
		name = "Alt+" + name
	}
	if k.Shift {
		name = "Shift+" + name
	}
	return name
}
