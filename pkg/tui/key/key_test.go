// ABOUTME: Table-driven tests for Key parsing covering ASCII, control chars, and escape sequences.
// ABOUTME: Validates ParseKey against runes, Ctrl+C, arrows, modified arrows, and keys the viewer does not distinguish.

package key

import "testing"

func TestParseKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want Key
	}{
		// Printable
		{name: "lowercase a", data: "a", want: Key{Type: KeyRune, Rune: 'a'}},
		{name: "uppercase Q", data: "Q", want: Key{Type: KeyRune, Rune: 'Q'}},
		{name: "space", data: " ", want: Key{Type: KeyRune, Rune: ' '}},
		{name: "multibyte rune", data: "é", want: Key{Type: KeyRune, Rune: 'é'}},

		// Control characters
		{name: "ctrl+c", data: "\x03", want: Key{Type: KeyCtrlC, Ctrl: true}},
		{name: "ctrl+d", data: "\x04", want: Key{Type: KeyUnknown}},
		{name: "unmapped control", data: "\x01", want: Key{Type: KeyUnknown}},
		{name: "enter", data: "\r", want: Key{Type: KeyUnknown}},
		{name: "tab", data: "\t", want: Key{Type: KeyUnknown}},
		{name: "backspace", data: "\x7f", want: Key{Type: KeyUnknown}},

		// Escape alone
		{name: "escape", data: "\x1b", want: Key{Type: KeyEscape}},

		// CSI arrows
		{name: "arrow up", data: "\x1b[A", want: Key{Type: KeyUp}},
		{name: "arrow down", data: "\x1b[B", want: Key{Type: KeyDown}},
		{name: "arrow right", data: "\x1b[C", want: Key{Type: KeyRight}},
		{name: "arrow left", data: "\x1b[D", want: Key{Type: KeyLeft}},

		// Navigation keys the viewer ignores
		{name: "home", data: "\x1b[H", want: Key{Type: KeyUnknown}},
		{name: "page up", data: "\x1b[5~", want: Key{Type: KeyUnknown}},
		{name: "page down", data: "\x1b[6~", want: Key{Type: KeyUnknown}},
		{name: "backtab", data: "\x1b[Z", want: Key{Type: KeyUnknown}},
		{name: "SS3 home", data: "\x1bOH", want: Key{Type: KeyUnknown}},

		// SS3 arrows
		{name: "SS3 up", data: "\x1bOA", want: Key{Type: KeyUp}},
		{name: "SS3 down", data: "\x1bOB", want: Key{Type: KeyDown}},
		{name: "SS3 left", data: "\x1bOD", want: Key{Type: KeyLeft}},

		// Modified keys
		{name: "shift up", data: "\x1b[1;2A", want: Key{Type: KeyUp, Shift: true}},
		{name: "ctrl down", data: "\x1b[1;5B", want: Key{Type: KeyDown, Ctrl: true}},
		{name: "alt+ctrl left", data: "\x1b[1;7D", want: Key{Type: KeyLeft, Alt: true, Ctrl: true}},
		{name: "ctrl page down", data: "\x1b[6;5~", want: Key{Type: KeyUnknown}},
		{name: "shift+alt+ctrl right", data: "\x1b[1;8C", want: Key{Type: KeyRight, Shift: true, Alt: true, Ctrl: true}},
		{name: "bad modifier", data: "\x1b[1;9A", want: Key{Type: KeyUnknown}},
		{name: "non-1 prefix letter", data: "\x1b[2;5A", want: Key{Type: KeyUnknown}},

		// Alt+letter
		{name: "alt+x", data: "\x1bx", want: Key{Type: KeyRune, Rune: 'x', Alt: true}},

		// Unknown escape sequence
		{name: "unknown escape", data: "\x1b[99Z", want: Key{Type: KeyUnknown}},
		{name: "empty", data: "", want: Key{Type: KeyUnknown}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ParseKey(tt.data)
			if got != tt.want {
				t.Errorf("ParseKey(%q) = %+v, want %+v", tt.data, got, tt.want)
			}
		})
	}
}

func TestKeyString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  Key
		want string
	}{
		{name: "rune a", key: Key{Type: KeyRune, Rune: 'a'}, want: "a"},
		{name: "alt rune", key: Key{Type: KeyRune, Rune: 'x', Alt: true}, want: "Alt+x"},
		{name: "left", key: Key{Type: KeyLeft}, want: "Left"},
		{name: "ctrl+c", key: Key{Type: KeyCtrlC, Ctrl: true}, want: "Ctrl+C"},
		{name: "arrow up", key: Key{Type: KeyUp}, want: "Up"},
		{name: "ctrl down", key: Key{Type: KeyDown, Ctrl: true}, want: "Ctrl+Down"},
		{name: "shift up", key: Key{Type: KeyUp, Shift: true}, want: "Shift+Up"},
		{name: "alt ctrl right", key: Key{Type: KeyRight, Alt: true, Ctrl: true}, want: "Alt+Ctrl+Right"},
		{name: "escape", key: Key{Type: KeyEscape}, want: "Escape"},
		{name: "unknown", key: Key{Type: KeyUnknown}, want: "Unknown"},
		{name: "out of range", key: Key{Type: KeyType(99)}, want: "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.key.String(); got != tt.want {
				t.Errorf("Key.String() = %q, want %q", got, tt.want)
			}
		})
	}
}
