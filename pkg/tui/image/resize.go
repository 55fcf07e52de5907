// ABOUTME: Scales decoded frames to the sixel output size
// ABOUTME: Kernel follows the encoder profile: CatmullRom for high, ApproxBiLinear for fast

package image

import (
	goimage "image"

	"golang.org/x/image/draw"
)

// scaleImage stretches src to exactly w x h pixels. The source is returned
// untouched when it already has that size.
func scaleImage(src goimage.Image, w, h int, profile Profile) goimage.Image {
	b := src.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return src
	}
	dst := goimage.NewNRGBA(goimage.Rect(0, 0, w, h))
	kernel(profile).Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

func kernel(profile Profile) draw.Scaler {
	if profile == ProfileFast {
		return draw.ApproxBiLinear
	}
	return draw.CatmullRom
}
