// Package image1bit provides the 1-bit packed image format used by DMD LED panels.
//
// Pixels are stored row-major, 8 pixels per byte. Bit 7 of each byte is the
// leftmost pixel of its 8-pixel group.
//
// The polarity is inverted compared to most monochrome formats: a cleared bit
// is an illuminated LED and a set bit is a dark one. This matches the
// active-low row drivers of the panel, whose unpowered state is dark, so a
// freshly allocated Surface is filled with 0xFF.
//
// Memory layout example for a 10-pixel row (stride 2):
//
//	Pixels: 0 1 2 3 4 5 6 7 | 8 9 - - - - - -
//	Lit:    x . . . . . . x | . x
//	Bytes:  0x7E              0xBF
//
// This package provides:
//
// - Color: Dark, Lit and the Transparent sentinel used by drawing functions
// - ColorModel: converts standard Go colors to Dark or Lit
// - Surface: a draw.Image over a packed 1-bit buffer
// - Blob and Bytes: read-only byte accessors for externally supplied assets
// - Bitmap: a decoded packed-bitmap asset (2-byte header + packed rows)
//
// Example usage:
//
//	s := image1bit.New(32, 16)
//	s.SetPixel(3, 4, image1bit.Lit)
//	println(s.Pixel(3, 4)) // Output: true
package image1bit
