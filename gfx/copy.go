package gfx

import (
	"periph.io/x/devices/v3/dmd/image1bit"
)

// Copy copies the w x h rectangle at (x, y) of src to (dx, dy) on dst.
//
// When dst is src the copy behaves like a move of overlapping memory: the
// scan order is chosen so no source pixel is overwritten before it is read.
// Source pixels outside src read as dark.
func Copy(src *image1bit.Surface, x, y, w, h int, dst *image1bit.Surface, dx, dy int) {
	if w <= 0 || h <= 0 {
		return
	}
	if dst == src {
		blit(src, x, y, x+w-1, y+h-1, dx, dy)
		return
	}
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			dst.SetPixel(dx+col, dy+row, pixelColor(src, x+col, y+row))
		}
	}
}

// blit moves the rectangle (x1, y1)-(x2, y2) of s so its top-left corner
// lands on (x3, y3).
func blit(s *image1bit.Surface, x1, y1, x2, y2, x3, y3 int) {
	if x2 < x1 || y2 < y1 {
		return
	}
	ox := x3 - x1
	oy := y3 - y1
	if y3 < y1 || (y3 == y1 && x3 <= x1) {
		for y := y1; y <= y2; y++ {
			for x := x1; x <= x2; x++ {
				s.SetPixel(x+ox, y+oy, pixelColor(s, x, y))
			}
		}
		return
	}
	for y := y2; y >= y1; y-- {
		for x := x2; x >= x1; x-- {
			s.SetPixel(x+ox, y+oy, pixelColor(s, x, y))
		}
	}
}

// ScrollAll scrolls the whole surface by (dx, dy).
func ScrollAll(s *image1bit.Surface, dx, dy int, fill image1bit.Color) {
	Scroll(s, 0, 0, s.Width(), s.Height(), dx, dy, fill)
}

// Scroll shifts the contents of the w x h region at (x, y) by (dx, dy) and
// paints the uncovered strips with fill.
//
// The region is clamped to the surface first. Pixels shifted out of the region
// are lost; shifts larger than the region clear it entirely.
func Scroll(s *image1bit.Surface, x, y, w, h, dx, dy int, fill image1bit.Color) {
	if dx == 0 && dy == 0 {
		return
	}

	// Clamp the region to the surface.
	if x < 0 {
		w += x
		x = 0
	}
	if y < 0 {
		h += y
		y = 0
	}
	if x+w > s.Width() {
		w = s.Width() - x
	}
	if y+h > s.Height() {
		h = s.Height() - y
	}
	if w <= 0 || h <= 0 {
		return
	}
	dx = clamp(dx, -w, w)
	dy = clamp(dy, -h, h)

	if dy < 0 {
		if dx < 0 {
			blit(s, x-dx, y-dy, x+w-1, y+h-1, x, y)
		} else {
			blit(s, x, y-dy, x+w-1-dx, y+h-1, x+dx, y)
		}
	} else {
		if dx < 0 {
			blit(s, x-dx, y, x+w-1, y+h-1-dy, x, y+dy)
		} else {
			blit(s, x, y, x+w-1-dx, y+h-1-dy, x+dx, y+dy)
		}
	}

	// The vertical strip spans the full width; the horizontal one only the
	// rows the vertical strip left alone.
	switch {
	case dy < 0:
		Fill(s, x, y+h+dy, w, -dy, fill)
		if dx < 0 {
			Fill(s, x+w+dx, y, -dx, h+dy, fill)
		} else if dx > 0 {
			Fill(s, x, y, dx, h+dy, fill)
		}
	case dy > 0:
		Fill(s, x, y, w, dy, fill)
		if dx < 0 {
			Fill(s, x+w+dx, y+dy, -dx, h-dy, fill)
		} else if dx > 0 {
			Fill(s, x, y+dy, dx, h-dy, fill)
		}
	case dx < 0:
		Fill(s, x+w+dx, y, -dx, h, fill)
	default:
		Fill(s, x, y, dx, h, fill)
	}
}

func pixelColor(s *image1bit.Surface, x, y int) image1bit.Color {
	if s.Pixel(x, y) {
		return image1bit.Lit
	}
	return image1bit.Dark
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
