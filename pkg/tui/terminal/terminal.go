// ABOUTME: Defines the Terminal interface for raw mode, size queries, input, and output.
// ABOUTME: Abstracts terminal operations so the session can target real or virtual terminals.

package terminal

// Terminal abstracts low-level terminal operations: raw mode, size queries,
// reading input bytes, and writing output bytes.
type Terminal interface {
	EnterRawMode() error
	ExitRawMode() error
	Size() (width, height int, err error)
	Read(p []byte) (n int, err error)
	Write(p []byte) (n int, err error)
}

// PixelSizer is implemented by terminals that know their drawable area in
// pixels. Zero values mean the platform does not report it.
type PixelSizer interface {
	PixelSize() (width, height int, err error)
}
