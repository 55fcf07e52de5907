// ABOUTME: DEC sixel encoder: scales a PixelBuffer to the output size and quantizes to a fixed palette
// ABOUTME: Produces an opaque Frame; nothing outside this package parses its structure

package image

import (
	"bytes"
	"errors"
	"fmt"
	goimage "image"
	"image/color"

	"github.com/mattn/go-sixel"
	"github.com/soniakeys/quant/median"
	"golang.org/x/image/draw"
)

// ErrEncode is returned when a buffer or the encoder parameters cannot
// produce a sixel stream.
var ErrEncode = errors.New("encode error")

// MaxColors is the largest palette a sixel stream can address.
const MaxColors = 256

// Frame is one fully formed sixel image, ready to be written to a terminal.
type Frame string

// Profile selects the fidelity/speed trade-off of the encoder.
type Profile int

const (
	ProfileHigh Profile = iota // Catmull-Rom scaling, Floyd-Steinberg dithering
	ProfileFast                // Approximate bilinear scaling, no dithering
)

// String returns the profile name as used in configuration.
func (p Profile) String() string {
	switch p {
	case ProfileHigh:
		return "high"
	case ProfileFast:
		return "fast"
	default:
		return fmt.Sprintf("Profile(%d)", int(p))
	}
}

// ParseProfile maps a configuration name to a Profile.
func ParseProfile(name string) (Profile, error) {
	switch name {
	case "high", "":
		return ProfileHigh, nil
	case "fast":
		return ProfileFast, nil
	default:
		return ProfileHigh, fmt.Errorf("unknown encoder profile %q", name)
	}
}

// EncodeOptions controls EncodeSixel.
type EncodeOptions struct {
	Width   int // Output width in pixels
	Height  int // Output height in pixels
	Profile Profile
	Colors  int // Palette size, 2..MaxColors
}

// EncodeSixel renders buf as a sixel stream of the requested pixel size.
// Buffers in any layout are accepted; they are remapped to RGBA first.
func EncodeSixel(buf *PixelBuffer, opts EncodeOptions) (Frame, error) {
	if buf.Empty() {
		return "", fmt.Errorf("%w: empty pixel buffer", ErrEncode)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return "", fmt.Errorf("%w: invalid output size %dx%d", ErrEncode, opts.Width, opts.Height)
	}
	if opts.Colors < 2 || opts.Colors > MaxColors {
		return "", fmt.Errorf("%w: palette size %d outside 2..%d", ErrEncode, opts.Colors, MaxColors)
	}

	scaled := scaleImage(buf.Image(), opts.Width, opts.Height, opts.Profile)
	// One register is reserved by the encoder for the transparent key.
	paletted := quantize(scaled, opts.Colors-1, opts.Profile == ProfileHigh)

	var out bytes.Buffer
	enc := sixel.NewEncoder(&out)
	enc.Width = opts.Width
	enc.Height = opts.Height
	// The encoder selects every register below Colors, so it must match the
	// palette exactly or the stream references undefined colors.
	enc.Colors = len(paletted.Palette) + 1
	if err := enc.Encode(paletted); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncode, err)
	}
	if out.Len() == 0 {
		return "", fmt.Errorf("%w: encoder produced no output", ErrEncode)
	}
	return Frame(out.String()), nil
}

// quantize maps img onto a median-cut palette of at most n colors.
func quantize(img goimage.Image, n int, dither bool) *goimage.Paletted {
	p := median.Quantizer(n).Paletted(img)
	// A single-color target skips clustering and leaves the entry unset.
	for i, c := range p.Palette {
		if c == nil {
			p.Palette[i] = meanColor(img)
		}
	}
	if dither {
		draw.FloydSteinberg.Draw(p, p.Bounds(), img, goimage.Point{})
	}
	return p
}

func meanColor(img goimage.Image) color.Color {
	b := img.Bounds()
	var r, g, bl uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			r += uint64(cr)
			g += uint64(cg)
			bl += uint64(cb)
		}
	}
	n := uint64(b.Dx() * b.Dy())
	if n == 0 {
		return color.RGBA64{A: 0xffff}
	}
	return color.RGBA64{R: uint16(r / n), G: uint16(g / n), B: uint16(bl / n), A: 0xffff}
}
