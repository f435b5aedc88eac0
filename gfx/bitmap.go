package gfx

import (
	"periph.io/x/devices/v3/dmd/image1bit"
)

// Source is a packed 1-bit image that can be composited onto a surface.
//
// Both *image1bit.Surface and *image1bit.Bitmap implement it.
type Source interface {
	Width() int
	Height() int
	// Bit returns the raw stored bit at (x, y), true when set.
	Bit(x, y int) bool
}

// DrawBitmap draws src with its top-left corner at (x, y).
//
// Cleared source bits are drawn in c and set bits in the inverse of c, so with
// c == Lit the source appears as it would on the panel.
func DrawBitmap(dst *image1bit.Surface, x, y int, src Source, c image1bit.Color) {
	if c == image1bit.Transparent {
		return
	}
	inv := c.Inverse()
	w, h := src.Width(), src.Height()
	for by := 0; by < h; by++ {
		for bx := 0; bx < w; bx++ {
			if src.Bit(bx, by) {
				dst.SetPixel(x+bx, y+by, inv)
			} else {
				dst.SetPixel(x+bx, y+by, c)
			}
		}
	}
}

// DrawInvertedBitmap draws src with its polarity flipped.
func DrawInvertedBitmap(dst *image1bit.Surface, x, y int, src Source) {
	DrawBitmap(dst, x, y, src, image1bit.Dark)
}
