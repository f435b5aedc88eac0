// Package font decodes bitmap font assets and renders text onto an
// image1bit.Surface.
//
// A font asset starts with a 6-byte header:
//
//	byte 0-1  both zero for a variable width font, anything else for fixed width
//	byte 2    glyph width (fixed width fonts)
//	byte 3    glyph height
//	byte 4    first character code
//	byte 5    number of characters
//
// Variable width fonts continue with one width byte per character. Glyph
// images follow back to back in character order. A glyph is stored as
// ceil(height/8) groups of width bytes; each byte holds 8 vertical pixels of
// one column, least significant bit on top. When the height is not a multiple
// of 8 the last group is anchored to the bottom of the glyph.
package font

import (
	"errors"
	"fmt"

	"periph.io/x/devices/v3/dmd/image1bit"
)

const headerSize = 6

// Font is a decoded font asset.
type Font struct {
	blob        image1bit.Blob
	fixed       bool
	width       int
	height      int
	heightBytes int
	first       int
	count       int
	// offsets[i] is the blob offset of glyph i. Only for variable width fonts.
	offsets []int
}

// Parse decodes the header of a font asset and checks the asset holds every
// glyph it declares.
func Parse(b image1bit.Blob) (*Font, error) {
	if b == nil || b.Len() < headerSize {
		return nil, errors.New("font: header truncated")
	}
	f := &Font{
		blob:   b,
		fixed:  b.ByteAt(0) != 0 || b.ByteAt(1) != 0,
		width:  int(b.ByteAt(2)),
		height: int(b.ByteAt(3)),
		first:  int(b.ByteAt(4)),
		count:  int(b.ByteAt(5)),
	}
	f.heightBytes = (f.height + 7) / 8
	end := headerSize + f.count*f.heightBytes*f.width
	if !f.fixed {
		f.offsets = make([]int, f.count)
		off := headerSize + f.count
		for i := range f.offsets {
			f.offsets[i] = off
			off += int(b.ByteAt(headerSize+i)) * f.heightBytes
		}
		end = off
	}
	if b.Len() < end {
		return nil, fmt.Errorf("font: %d glyphs need %d bytes, got %d", f.count, end, b.Len())
	}
	return f, nil
}

// MustParse is like Parse but panics on error. It is meant for fonts compiled
// into the program.
func MustParse(b image1bit.Blob) *Font {
	f, err := Parse(b)
	if err != nil {
		panic(err)
	}
	return f
}

// Fixed reports whether every glyph has the same width.
func (f *Font) Fixed() bool {
	return f.fixed
}

// Height returns the glyph height in pixels.
func (f *Font) Height() int {
	return f.height
}

// FirstChar returns the code of the first character with a glyph.
func (f *Font) FirstChar() byte {
	return byte(f.first)
}

// CharCount returns the number of characters with a glyph.
func (f *Font) CharCount() int {
	return f.count
}

// index returns the glyph index of ch, or -1 when the font has no glyph for
// it.
func (f *Font) index(ch byte) int {
	i := int(ch) - f.first
	if i < 0 || i >= f.count {
		return -1
	}
	return i
}

// glyphWidth returns the width of glyph i.
func (f *Font) glyphWidth(i int) int {
	if f.fixed {
		return f.width
	}
	return int(f.blob.ByteAt(headerSize + i))
}

// glyphOffset returns the blob offset of the image of glyph i.
func (f *Font) glyphOffset(i int) int {
	if f.fixed {
		return headerSize + i*f.heightBytes*f.width
	}
	return f.offsets[i]
}

func (f *Font) String() string {
	kind := "variable"
	if f.fixed {
		kind = "fixed"
	}
	return fmt.Sprintf("font.Font{%s, h=%d, %d chars from %d}", kind, f.height, f.count, f.first)
}
