// ABOUTME: Decodes compressed captures (JPEG, PNG, WebP) into a PixelBuffer with a declared channel layout
// ABOUTME: Every pixel passes through an explicit channel map; decoders never dictate the byte order

package image

import (
	"bytes"
	"errors"
	"fmt"
	goimage "image"

	// Register decoders for the formats a capture can arrive in.
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ErrDecode is returned when compressed bytes are empty, malformed or of an
// unsupported format.
var ErrDecode = errors.New("decode error")

// Layout names the byte order of the four 8-bit channels of a pixel.
type Layout int

const (
	LayoutRGBA Layout = iota // Normalized layout expected by the encoder
	LayoutBGRA               // Blue-first order used by some capture backends
)

// String returns the layout name.
func (l Layout) String() string {
	switch l {
	case LayoutRGBA:
		return "RGBA"
	case LayoutBGRA:
		return "BGRA"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// offsets returns the byte offsets of R, G, B and A within one pixel.
func (l Layout) offsets() [4]int {
	if l == LayoutBGRA {
		return [4]int{2, 1, 0, 3}
	}
	return [4]int{0, 1, 2, 3}
}

// PixelBuffer is a row-major grid of 4-channel, 8-bit, non-premultiplied pixels.
type PixelBuffer struct {
	Width  int
	Height int
	Layout Layout
	Pix    []byte
}

// NewPixelBuffer allocates a zeroed buffer.
func NewPixelBuffer(width, height int, layout Layout) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Layout: layout,
		Pix:    make([]byte, width*height*4),
	}
}

// Empty reports whether the buffer holds no pixels.
func (p *PixelBuffer) Empty() bool {
	return p == nil || p.Width <= 0 || p.Height <= 0 || len(p.Pix) < p.Width*p.Height*4
}

// Set stores the channels of the pixel at (x, y) according to the layout.
func (p *PixelBuffer) Set(x, y int, r, g, b, a uint8) {
	off := (y*p.Width + x) * 4
	o := p.Layout.offsets()
	p.Pix[off+o[0]] = r
	p.Pix[off+o[1]] = g
	p.Pix[off+o[2]] = b
	p.Pix[off+o[3]] = a
}

// At returns the channels of the pixel at (x, y) in R, G, B, A order.
func (p *PixelBuffer) At(x, y int) (r, g, b, a uint8) {
	off := (y*p.Width + x) * 4
	o := p.Layout.offsets()
	return p.Pix[off+o[0]], p.Pix[off+o[1]], p.Pix[off+o[2]], p.Pix[off+o[3]]
}

// Remap returns a copy of the buffer in the target layout. The receiver is
// returned unchanged when it already uses that layout.
func (p *PixelBuffer) Remap(to Layout) *PixelBuffer {
	if p.Layout == to {
		return p
	}
	out := NewPixelBuffer(p.Width, p.Height, to)
	src := p.Layout.offsets()
	dst := to.offsets()
	for off := 0; off+3 < len(out.Pix); off += 4 {
		for c := range 4 {
			out.Pix[off+dst[c]] = p.Pix[off+src[c]]
		}
	}
	return out
}

// Image exposes the buffer as an *image.NRGBA, remapping to RGBA first.
func (p *PixelBuffer) Image() *goimage.NRGBA {
	rgba := p.Remap(LayoutRGBA)
	return &goimage.NRGBA{
		Pix:    rgba.Pix,
		Stride: rgba.Width * 4,
		Rect:   goimage.Rect(0, 0, rgba.Width, rgba.Height),
	}
}

// Decode decompresses a capture into an RGBA PixelBuffer.
func Decode(data []byte) (*PixelBuffer, error) {
	return DecodeLayout(data, LayoutRGBA)
}

// DecodeLayout decompresses a capture into a PixelBuffer with the given layout.
func DecodeLayout(data []byte, layout Layout) (*PixelBuffer, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image data", ErrDecode)
	}

	img, format, err := goimage.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: %s image has no pixels", ErrDecode, format)
	}

	// Flatten whatever the decoder produced (YCbCr for JPEG, VP8 for WebP,
	// paletted PNG...) into NRGBA, whose byte order is documented.
	flat := goimage.NewNRGBA(goimage.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(flat, flat.Bounds(), img, bounds.Min, draw.Src)

	buf := &PixelBuffer{Width: bounds.Dx(), Height: bounds.Dy(), Layout: LayoutRGBA, Pix: flat.Pix}
	return buf.Remap(layout), nil
}
