// Package gfx draws lines, rectangles, circles, fills, bitmaps and scrolls
// onto an image1bit.Surface.
//
// Every function goes through the surface's pixel accessors, so drawing
// partially or entirely outside the surface is safe: off-surface pixels are
// clipped. The Transparent color skips the element it is given for.
package gfx

import (
	"periph.io/x/devices/v3/dmd/image1bit"
)

// Line draws a line from (x1, y1) to (x2, y2), both endpoints included.
//
// It uses the integer midpoint algorithm. The endpoints are ordered along the
// major axis first so a segment and its reverse light the same pixels.
func Line(s *image1bit.Surface, x1, y1, x2, y2 int, c image1bit.Color) {
	if c == image1bit.Transparent {
		return
	}
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	if dx >= dy {
		if x1 > x2 {
			x1, y1, x2, y2 = x2, y2, x1, y1
		}
		ystep := 1
		if y2 < y1 {
			ystep = -1
		}
		d := 2*dy - dx
		incrE := 2 * dy
		incrNE := 2 * (dy - dx)
		s.SetPixel(x1, y1, c)
		for x1 != x2 {
			if d <= 0 {
				d += incrE
			} else {
				d += incrNE
				y1 += ystep
			}
			x1++
			s.SetPixel(x1, y1, c)
		}
		return
	}
	if y1 > y2 {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}
	xstep := 1
	if x2 < x1 {
		xstep = -1
	}
	d := 2*dx - dy
	incrE := 2 * dx
	incrNE := 2 * (dx - dy)
	s.SetPixel(x1, y1, c)
	for y1 != y2 {
		if d <= 0 {
			d += incrE
		} else {
			d += incrNE
			x1 += xstep
		}
		y1++
		s.SetPixel(x1, y1, c)
	}
}

// Rect draws the rectangle with corners (x1, y1) and (x2, y2), inclusive.
//
// When fill equals border the whole area is filled in one sweep. Otherwise the
// border is drawn without overlapping corners, then the interior is filled
// unless fill is Transparent.
func Rect(s *image1bit.Surface, x1, y1, x2, y2 int, border, fill image1bit.Color) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	if fill == border {
		Fill(s, x1, y1, x2-x1+1, y2-y1+1, fill)
		return
	}
	Line(s, x1, y1, x2, y1, border)
	if y1 < y2 {
		Line(s, x2, y1+1, x2, y2, border)
	}
	if x1 < x2 {
		Line(s, x2-1, y2, x1, y2, border)
	}
	if y1 < y2-1 {
		Line(s, x1, y2-1, x1, y1+1, border)
	}
	if fill != image1bit.Transparent {
		Fill(s, x1+1, y1+1, x2-x1-1, y2-y1-1, fill)
	}
}

// FilledRect fills the rectangle with corners (x1, y1) and (x2, y2).
func FilledRect(s *image1bit.Surface, x1, y1, x2, y2 int, c image1bit.Color) {
	Rect(s, x1, y1, x2, y2, c, c)
}

// Circle draws a circle of the given radius around (cx, cy).
//
// It uses the midpoint algorithm with second-order differences: one octant is
// computed and mirrored into the other seven. When fill is not Transparent
// every row is then joined by a horizontal span inset by one pixel from the
// innermost border pixel of that row, so the fill never overwrites the border.
func Circle(s *image1bit.Surface, cx, cy, radius int, border, fill image1bit.Color) {
	radius = abs(radius)
	// inner[row] is the smallest |x| of a border pixel on rows cy±row.
	var inner []int
	if fill != image1bit.Transparent {
		inner = make([]int, radius+1)
		for i := range inner {
			inner[i] = radius + 1
		}
	}
	x := 0
	y := radius
	d := 1 - radius
	deltaE := 3
	deltaSE := 5 - 2*radius
	circlePoints(s, cx, cy, x, y, border, inner)
	for y > x {
		if d < 0 {
			d += deltaE
			deltaE += 2
			deltaSE += 2
		} else {
			d += deltaSE
			deltaE += 2
			deltaSE += 4
			y--
		}
		x++
		circlePoints(s, cx, cy, x, y, border, inner)
	}
	for row, m := range inner {
		hline(s, cx-m+1, cx+m-1, cy+row, fill)
		if row != 0 {
			hline(s, cx-m+1, cx+m-1, cy-row, fill)
		}
	}
}

// FilledCircle draws a disc of the given radius around (cx, cy).
func FilledCircle(s *image1bit.Surface, cx, cy, radius int, c image1bit.Color) {
	Circle(s, cx, cy, radius, c, c)
}

// circlePoints plots the eight mirrored images of octant point (x, y), four
// when x == y, and records the innermost border pixel of the rows they touch.
func circlePoints(s *image1bit.Surface, cx, cy, x, y int, border image1bit.Color, inner []int) {
	if x != y {
		s.SetPixel(cx+x, cy+y, border)
		s.SetPixel(cx+y, cy+x, border)
		s.SetPixel(cx+y, cy-x, border)
		s.SetPixel(cx+x, cy-y, border)
		s.SetPixel(cx-x, cy-y, border)
		s.SetPixel(cx-y, cy-x, border)
		s.SetPixel(cx-y, cy+x, border)
		s.SetPixel(cx-x, cy+y, border)
	} else {
		s.SetPixel(cx+x, cy+y, border)
		s.SetPixel(cx+y, cy-x, border)
		s.SetPixel(cx-x, cy-y, border)
		s.SetPixel(cx-y, cy+x, border)
	}
	if inner == nil {
		return
	}
	if x < inner[y] {
		inner[y] = x
	}
	if y < inner[x] {
		inner[x] = y
	}
}

// hline draws the span [x1, x2] on row y. Empty spans draw nothing.
func hline(s *image1bit.Surface, x1, x2, y int, c image1bit.Color) {
	for x := x1; x <= x2; x++ {
		s.SetPixel(x, y, c)
	}
}

// Fill sets every pixel of the w x h rectangle at (x, y).
func Fill(s *image1bit.Surface, x, y, w, h int, c image1bit.Color) {
	if w <= 0 || h <= 0 || c == image1bit.Transparent {
		return
	}
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			s.SetPixel(col, row, c)
		}
	}
}

// FillPattern tiles pattern over the w x h rectangle at (x, y), wrapping on
// both axes. Set pattern bits are drawn in c and cleared bits in its inverse,
// so every pixel of the rectangle is written.
func FillPattern(s *image1bit.Surface, x, y, w, h int, pattern *image1bit.Bitmap, c image1bit.Color) {
	if pattern == nil || c == image1bit.Transparent {
		return
	}
	pw, ph := pattern.Width(), pattern.Height()
	if pw == 0 || ph == 0 {
		return
	}
	inv := c.Inverse()
	for row := 0; row < h; row++ {
		py := row % ph
		for col := 0; col < w; col++ {
			if pattern.Bit(col%pw, py) {
				s.SetPixel(x+col, y+row, c)
			} else {
				s.SetPixel(x+col, y+row, inv)
			}
		}
	}
}

// Invert toggles every pixel of the w x h rectangle at (x, y).
func Invert(s *image1bit.Surface, x, y, w, h int) {
	for row := y; row < y+h; row++ {
		for col := x + w - 1; col >= x; col-- {
			if s.Pixel(col, row) {
				s.SetPixel(col, row, image1bit.Dark)
			} else {
				s.SetPixel(col, row, image1bit.Lit)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
