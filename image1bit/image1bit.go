// Package image1bit provides a 1-bit image format for DMD LED panels.
//
// A cleared bit is a lit LED, a set bit is a dark one. Bit 7 is the leftmost
// pixel of each byte.
package image1bit

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// Color is the value of a pixel, or the Transparent sentinel accepted by
// drawing functions to skip an element (border or fill).
//
// Transparent is never stored in a Surface.
type Color uint8

const (
	Dark Color = iota
	Lit
	Transparent
)

// RGBA implements color.Color.
//
// Lit is white, Dark is black and Transparent has zero alpha.
func (c Color) RGBA() (r, g, b, a uint32) {
	switch c {
	case Lit:
		return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
	case Dark:
		return 0, 0, 0, 0xFFFF
	}
	return 0, 0, 0, 0
}

// Inverse returns Dark for Lit and Lit for Dark. Transparent is returned
// unchanged.
func (c Color) Inverse() Color {
	switch c {
	case Lit:
		return Dark
	case Dark:
		return Lit
	}
	return c
}

func (c Color) String() string {
	switch c {
	case Dark:
		return "Dark"
	case Lit:
		return "Lit"
	case Transparent:
		return "Transparent"
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

// toColor converts any color.Color to Dark or Lit.
func toColor(c color.Color) color.Color {
	if b, ok := c.(Color); ok {
		return b
	}
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Transparent
	}
	// Standard luminance conversion, then threshold at half intensity.
	y := (299*r + 587*g + 114*b + 500) / 1000
	if y >= 0x8000 {
		return Lit
	}
	return Dark
}

// ColorModel converts colors to Color.
var ColorModel = color.ModelFunc(toColor)

// Surface is a 1-bit image packed 8 pixels per byte, row-major.
//
// The origin is always at (0, 0). A Surface whose allocation failed has a nil
// Pix and an empty Rect; every operation on it is a no-op.
type Surface struct {
	Pix    []byte          // Pixel data (8 pixels per byte, set bit = dark)
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
}

// New creates a w x h surface with every pixel dark.
//
// Non-positive or overflowing dimensions return an invalid surface instead of
// panicking.
func New(w, h int) *Surface {
	if w <= 0 || h <= 0 {
		return &Surface{}
	}
	stride := (w + 7) / 8
	if stride > math.MaxInt32/h {
		return &Surface{}
	}
	s := &Surface{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Rect:   image.Rect(0, 0, w, h),
	}
	s.Clear()
	return s
}

// Size returns the number of bytes a w x h surface needs, or -1 if such a
// surface cannot be allocated.
func Size(w, h int) int {
	if w <= 0 || h <= 0 {
		return -1
	}
	stride := (w + 7) / 8
	if stride > math.MaxInt32/h {
		return -1
	}
	return stride * h
}

// Valid reports whether the surface owns a pixel buffer.
func (s *Surface) Valid() bool {
	return s != nil && len(s.Pix) != 0
}

// Width returns the width in pixels.
func (s *Surface) Width() int {
	return s.Rect.Dx()
}

// Height returns the height in pixels.
func (s *Surface) Height() int {
	return s.Rect.Dy()
}

// ColorModel returns the color model of the image.
func (s *Surface) ColorModel() color.Model {
	return ColorModel
}

// Bounds returns the image bounds.
func (s *Surface) Bounds() image.Rectangle {
	return s.Rect
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (s *Surface) At(x, y int) color.Color {
	if s.Pixel(x, y) {
		return Lit
	}
	return Dark
}

// Set sets the color of the pixel at (x, y). Colors converting to
// Transparent are ignored.
func (s *Surface) Set(x, y int, c color.Color) {
	s.SetPixel(x, y, ColorModel.Convert(c).(Color))
}

// Pixel reports whether the pixel at (x, y) is lit. Pixels outside the
// surface are dark.
func (s *Surface) Pixel(x, y int) bool {
	if !(image.Point{X: x, Y: y}.In(s.Rect)) {
		return false
	}
	offset, mask := s.pixOffset(x, y)
	return s.Pix[offset]&mask == 0
}

// Bit returns the raw stored bit at (x, y): true when set (dark). Pixels
// outside the surface report a set bit.
func (s *Surface) Bit(x, y int) bool {
	return !s.Pixel(x, y)
}

// SetPixel sets the pixel at (x, y). Lit clears the bit, Dark sets it.
// Transparent and out-of-range coordinates are ignored.
func (s *Surface) SetPixel(x, y int, c Color) {
	if !(image.Point{X: x, Y: y}.In(s.Rect)) {
		return
	}
	offset, mask := s.pixOffset(x, y)
	switch c {
	case Lit:
		s.Pix[offset] &^= mask
	case Dark:
		s.Pix[offset] |= mask
	}
}

// Clear turns every pixel dark.
func (s *Surface) Clear() {
	for i := range s.Pix {
		s.Pix[i] = 0xFF
	}
}

// Fill turns every pixel on.
func (s *Surface) Fill() {
	for i := range s.Pix {
		s.Pix[i] = 0x00
	}
}

// CopyFrom copies the pixel buffer of src. Both surfaces must have the same
// geometry; otherwise nothing is copied and false is returned.
func (s *Surface) CopyFrom(src *Surface) bool {
	if !s.Valid() || !src.Valid() || s.Rect != src.Rect || s.Stride != src.Stride {
		return false
	}
	copy(s.Pix, src.Pix)
	return true
}

func (s *Surface) String() string {
	if !s.Valid() {
		return "image1bit.Surface{invalid}"
	}
	return fmt.Sprintf("image1bit.Surface{%dx%d}", s.Rect.Dx(), s.Rect.Dy())
}

// pixOffset returns the byte offset and bit mask for the pixel at (x, y).
// Bit 7 (0x80) is the leftmost pixel of a byte.
func (s *Surface) pixOffset(x, y int) (offset int, mask byte) {
	offset = y*s.Stride + x>>3
	mask = 0x80 >> uint(x&7)
	return
}
