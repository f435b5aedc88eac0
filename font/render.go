package font

import (
	"periph.io/x/devices/v3/dmd/gfx"
	"periph.io/x/devices/v3/dmd/image1bit"
)

// Renderer draws text with a font.
//
// Glyphs are drawn on a solid background: foreground pixels get Color and
// background pixels its inverse. A nil Font draws nothing and measures 0.
type Renderer struct {
	Font  *Font
	Color image1bit.Color
}

// NewRenderer returns a Renderer drawing f in Lit.
func NewRenderer(f *Font) *Renderer {
	return &Renderer{Font: f, Color: image1bit.Lit}
}

// CharWidth returns the width of ch in pixels, 0 when the font has no glyph
// for it.
//
// A space is as wide as 'n' so fonts without a space glyph still separate
// words.
func (r *Renderer) CharWidth(ch byte) int {
	if r.Font == nil {
		return 0
	}
	if ch == ' ' {
		ch = 'n'
	}
	i := r.Font.index(ch)
	if i < 0 {
		return 0
	}
	return r.Font.glyphWidth(i)
}

// DrawChar draws ch with its top-left corner at (x, y) and returns its width.
//
// A character entirely off the left or top edge is not drawn but its width is
// still returned.
func (r *Renderer) DrawChar(s *image1bit.Surface, x, y int, ch byte) int {
	f := r.Font
	if f == nil {
		return 0
	}
	inv := r.Color.Inverse()
	if ch == ' ' {
		w := r.CharWidth(' ')
		gfx.Fill(s, x, y, w, f.height, inv)
		return w
	}
	i := f.index(ch)
	if i < 0 {
		return 0
	}
	w := f.glyphWidth(i)
	if x+w <= 0 || y+f.height <= 0 {
		return w
	}
	img := f.glyphOffset(i)
	for cx := 0; cx < w; cx++ {
		for cy := 0; cy < f.heightBytes; cy++ {
			v := f.blob.ByteAt(img + cy*w + cx)
			top := cy * 8
			if f.heightBytes > 1 && cy == f.heightBytes-1 {
				top = f.height - 8
			}
			for bit := 0; bit < 8; bit, v = bit+1, v>>1 {
				row := top + bit
				if row < cy*8 || row >= f.height {
					continue
				}
				if v&1 != 0 {
					s.SetPixel(x+cx, y+row, r.Color)
				} else {
					s.SetPixel(x+cx, y+row, inv)
				}
			}
		}
	}
	return w
}

// DrawString draws str starting at (x, y).
//
// Characters are separated by a 1 pixel gap in the background color. Drawing
// stops once the pen passes the right edge of s.
func (r *Renderer) DrawString(s *image1bit.Surface, x, y int, str string) {
	if r.Font == nil {
		return
	}
	for i := 0; i < len(str); i++ {
		if x = r.advance(s, x, y, str[i], i < len(str)-1); x >= s.Width() {
			return
		}
	}
}

// DrawBytes is like DrawString for a byte slice.
func (r *Renderer) DrawBytes(s *image1bit.Surface, x, y int, b []byte) {
	if r.Font == nil {
		return
	}
	for i, ch := range b {
		if x = r.advance(s, x, y, ch, i < len(b)-1); x >= s.Width() {
			return
		}
	}
}

// advance draws ch and, when more characters follow, the gap after it. It
// returns the next pen position.
func (r *Renderer) advance(s *image1bit.Surface, x, y int, ch byte, gap bool) int {
	x += r.DrawChar(s, x, y, ch)
	if gap {
		gfx.Fill(s, x, y, 1, r.Font.height, r.Color.Inverse())
		x++
	}
	return x
}

// TextWidth returns the width of str as drawn by DrawString.
func (r *Renderer) TextWidth(str string) int {
	if r.Font == nil {
		return 0
	}
	w := 0
	for i := 0; i < len(str); i++ {
		w += r.CharWidth(str[i])
		if i < len(str)-1 {
			w++
		}
	}
	return w
}

// TextWidthBytes is like TextWidth for a byte slice.
func (r *Renderer) TextWidthBytes(b []byte) int {
	if r.Font == nil {
		return 0
	}
	w := 0
	for i, ch := range b {
		w += r.CharWidth(ch)
		if i < len(b)-1 {
			w++
		}
	}
	return w
}

// TextHeight returns the glyph height, 0 without a font.
func (r *Renderer) TextHeight() int {
	if r.Font == nil {
		return 0
	}
	return r.Font.height
}
