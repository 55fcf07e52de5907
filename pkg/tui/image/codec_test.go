// ABOUTME: Tests for capture decoding and channel layout remapping
// ABOUTME: Solid-color fixtures make red/blue swaps visible as exact channel mismatches

package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func makePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func makeJPEG(t *testing.T, img image.Image, quality int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func near(a, b uint8, tol int) bool {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d <= tol
}

func TestDecode_PNGExactChannels(t *testing.T) {
	t.Parallel()

	want := color.NRGBA{R: 200, G: 40, B: 10, A: 255}
	buf, err := Decode(makePNG(t, solid(8, 6, want)))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if buf.Width != 8 || buf.Height != 6 {
		t.Fatalf("got %dx%d, want 8x6", buf.Width, buf.Height)
	}
	if buf.Layout != LayoutRGBA {
		t.Errorf("Layout = %v, want RGBA", buf.Layout)
	}
	// Raw bytes must be in R, G, B, A order.
	if got := buf.Pix[:4]; got[0] != 200 || got[1] != 40 || got[2] != 10 || got[3] != 255 {
		t.Errorf("first pixel bytes = %v, want [200 40 10 255]", got)
	}
}

func TestDecode_JPEGWithinTolerance(t *testing.T) {
	t.Parallel()

	want := color.NRGBA{R: 230, G: 20, B: 30, A: 255}
	buf, err := Decode(makeJPEG(t, solid(32, 32, want), 75))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	r, g, b, a := buf.At(16, 16)
	if !near(r, want.R, 8) || !near(g, want.G, 8) || !near(b, want.B, 8) || a != 255 {
		t.Errorf("center pixel = (%d,%d,%d,%d), want about (230,20,30,255)", r, g, b, a)
	}
	if r < b {
		t.Error("red and blue appear swapped")
	}
}

func TestDecodeLayout_BGRA(t *testing.T) {
	t.Parallel()

	buf, err := DecodeLayout(makePNG(t, solid(2, 2, color.NRGBA{R: 1, G: 2, B: 3, A: 4})), LayoutBGRA)
	if err != nil {
		t.Fatalf("DecodeLayout() error: %v", err)
	}
	if got := buf.Pix[:4]; got[0] != 3 || got[1] != 2 || got[2] != 1 || got[3] != 4 {
		t.Errorf("BGRA bytes = %v, want [3 2 1 4]", got)
	}
	r, g, b, a := buf.At(1, 1)
	if r != 1 || g != 2 || b != 3 || a != 4 {
		t.Errorf("At() = (%d,%d,%d,%d), want (1,2,3,4)", r, g, b, a)
	}
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{name: "nil", data: nil},
		{name: "empty", data: []byte{}},
		{name: "garbage", data: []byte("not an image at all")},
		{name: "truncated jpeg", data: []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode(tt.data)
			if !errors.Is(err, ErrDecode) {
				t.Errorf("Decode() error = %v, want ErrDecode", err)
			}
		})
	}
}

func TestRemap_RoundTrip(t *testing.T) {
	t.Parallel()

	src := NewPixelBuffer(3, 1, LayoutRGBA)
	src.Set(0, 0, 255, 0, 0, 255)
	src.Set(1, 0, 0, 255, 0, 255)
	src.Set(2, 0, 0, 0, 255, 128)

	bgra := src.Remap(LayoutBGRA)
	if bgra == src {
		t.Fatal("Remap to a different layout must copy")
	}
	if bgra.Pix[0] != 0 || bgra.Pix[2] != 255 {
		t.Errorf("red pixel in BGRA = %v, want blue byte 0 and red byte 255", bgra.Pix[:4])
	}

	back := bgra.Remap(LayoutRGBA)
	if !bytes.Equal(back.Pix, src.Pix) {
		t.Errorf("round trip = %v, want %v", back.Pix, src.Pix)
	}
	if same := src.Remap(LayoutRGBA); same != src {
		t.Error("Remap to the same layout should return the receiver")
	}
}

func TestPixelBuffer_ImageNormalizes(t *testing.T) {
	t.Parallel()

	buf := NewPixelBuffer(1, 1, LayoutBGRA)
	buf.Set(0, 0, 10, 20, 30, 255)

	got := buf.Image().NRGBAAt(0, 0)
	if got != (color.NRGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("Image() pixel = %+v, want {10 20 30 255}", got)
	}
}

func TestPixelBuffer_Empty(t *testing.T) {
	t.Parallel()

	var nilBuf *PixelBuffer
	tests := []struct {
		name string
		buf  *PixelBuffer
		want bool
	}{
		{name: "nil", buf: nilBuf, want: true},
		{name: "zero width", buf: &PixelBuffer{Height: 2}, want: true},
		{name: "short pix", buf: &PixelBuffer{Width: 2, Height: 2, Pix: make([]byte, 4)}, want: true},
		{name: "ok", buf: NewPixelBuffer(2, 2, LayoutRGBA), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.buf.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLayoutString(t *testing.T) {
	t.Parallel()

	if LayoutRGBA.String() != "RGBA" || LayoutBGRA.String() != "BGRA" {
		t.Errorf("unexpected names %q %q", LayoutRGBA, LayoutBGRA)
	}
	if got := Layout(9).String(); got != "Layout(9)" {
		t.Errorf("Layout(9).String() = %q", got)
	}
}
