package image1bit

import (
	"errors"
	"fmt"
)

// Blob is a read-only asset, such as a font or a packed bitmap.
//
// It hides where the bytes live (RAM, flash, a memory-mapped file) so the
// same decoding logic works for all of them.
type Blob interface {
	// Len returns the number of bytes in the asset.
	Len() int
	// ByteAt returns the byte at offset i. Offsets out of range return 0.
	ByteAt(i int) byte
}

// Bytes is a Blob backed by a byte slice.
type Bytes []byte

// Len implements Blob.
func (b Bytes) Len() int {
	return len(b)
}

// ByteAt implements Blob.
func (b Bytes) ByteAt(i int) byte {
	if uint(i) >= uint(len(b)) {
		return 0
	}
	return b[i]
}

// Bitmap is a packed-bitmap asset: byte 0 is the width, byte 1 the height,
// followed by row-major packed rows of stride ceil(width/8).
//
// It uses the same bit convention as Surface.
type Bitmap struct {
	blob   Blob
	w, h   int
	stride int
}

// ParseBitmap decodes the header of a packed-bitmap asset.
func ParseBitmap(b Blob) (*Bitmap, error) {
	if b == nil || b.Len() < 2 {
		return nil, errors.New("image1bit: bitmap header truncated")
	}
	bm := &Bitmap{
		blob: b,
		w:    int(b.ByteAt(0)),
		h:    int(b.ByteAt(1)),
	}
	bm.stride = (bm.w + 7) / 8
	if want := 2 + bm.stride*bm.h; b.Len() < want {
		return nil, fmt.Errorf("image1bit: bitmap %dx%d needs %d bytes, got %d", bm.w, bm.h, want, b.Len())
	}
	return bm, nil
}

// MustParseBitmap is like ParseBitmap but panics on error. It is meant for
// assets compiled into the program.
func MustParseBitmap(b Blob) *Bitmap {
	bm, err := ParseBitmap(b)
	if err != nil {
		panic(err)
	}
	return bm
}

// Width returns the width in pixels.
func (b *Bitmap) Width() int {
	return b.w
}

// Height returns the height in pixels.
func (b *Bitmap) Height() int {
	return b.h
}

// Stride returns the number of bytes per row.
func (b *Bitmap) Stride() int {
	return b.stride
}

// Bit returns the raw bit at (x, y): true when set. Coordinates outside the
// bitmap report a cleared bit.
func (b *Bitmap) Bit(x, y int) bool {
	if uint(x) >= uint(b.w) || uint(y) >= uint(b.h) {
		return false
	}
	v := b.blob.ByteAt(2 + y*b.stride + x>>3)
	return v&(0x80>>uint(x&7)) != 0
}
