// ABOUTME: Hand-written fakes for the controller tests: a scripted page source and a scripted screen
// ABOUTME: The source serves a solid PNG and records every scroll request it receives

package viewer

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	tuiimage "github.com/mauromedda/termweb/pkg/tui/image"
	"github.com/mauromedda/termweb/pkg/tui/key"
)

// fakeSource serves the same PNG for every capture.
type fakeSource struct {
	png       []byte
	scrolls   []Scroll
	captures  int
	scrollErr error
	capErr    error
	// failAfter makes captures beyond this count fail with capErr; 0 fails every capture when capErr is set.
	failAfter int
}

func newFakeSource(t *testing.T, c color.NRGBA) *fakeSource {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 16, 12))
	for y := range 12 {
		for x := range 16 {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	return &fakeSource{png: buf.Bytes()}
}

func (f *fakeSource) SetScroll(_ context.Context, x, y int) error {
	f.scrolls = append(f.scrolls, Scroll{X: x, Y: y})
	return f.scrollErr
}

func (f *fakeSource) Capture(context.Context) ([]byte, error) {
	f.captures++
	if f.capErr != nil && f.captures > f.failAfter {
		return nil, f.capErr
	}
	return f.png, nil
}

func (f *fakeSource) Close() error { return nil }

type paint struct {
	frame  tuiimage.Frame
	status string
}

// fakeScreen replays keys and records paints. Once the keys run out
// NextEvent blocks until the context is done.
type fakeScreen struct {
	keys     []key.Key
	paints   []paint
	paintErr error
}

func (f *fakeScreen) Paint(frame tuiimage.Frame, status string) error {
	if f.paintErr != nil {
		return f.paintErr
	}
	f.paints = append(f.paints, paint{frame: frame, status: status})
	return nil
}

func (f *fakeScreen) NextEvent(ctx context.Context) (key.Key, error) {
	if len(f.keys) == 0 {
		<-ctx.Done()
		return key.Key{}, ctx.Err()
	}
	k := f.keys[0]
	f.keys = f.keys[1:]
	return k, nil
}

func keys(types ...key.KeyType) []key.Key {
	out := make([]key.Key, len(types))
	for i, t := range types {
		out[i] = key.Key{Type: t}
	}
	return out
}

func testOptions() Options {
	return Options{
		Step: 100,
		Encode: tuiimage.EncodeOptions{
			Width:   16,
			Height:  12,
			Profile: tuiimage.ProfileFast,
			Colors:  16,
		},
		URL:    "https://ja.wikipedia.org/wiki/LISP",
		Limits: Limits{Cols: 80, Rows: 24},
	}
}
