// ABOUTME: Arrow key escape sequences in their CSI and SS3 forms.
// ABOUTME: Arrows are the only navigation keys the viewer tells apart; other sequences parse as unknown.

package key

// arrowFinals maps the final byte of an arrow sequence to its key.
var arrowFinals = map[byte]KeyType{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
}

// parseArrow resolves "ESC [ X" and, for application cursor mode, "ESC O X".
func parseArrow(data string) (Key, bool) {
	if len(data) != 3 || (data[1] != '[' && data[1] != 'O') {
		return Key{}, false
	}
	t, ok := arrowFinals[data[2]]
	if !ok {
		return Key{}, false
	}
	return Key{Type: t}, true
}
