package image1bit

import "testing"

func TestBytesByteAt(t *testing.T) {
	b := Bytes{1, 2, 3}
	if b.Len() != 3 {
		t.Errorf("Len() = %d, want 3", b.Len())
	}
	if b.ByteAt(2) != 3 {
		t.Errorf("ByteAt(2) = %d, want 3", b.ByteAt(2))
	}
	if b.ByteAt(-1) != 0 || b.ByteAt(3) != 0 {
		t.Error("out of range ByteAt should return 0")
	}
}

func TestParseBitmap(t *testing.T) {
	tests := []struct {
		name    string
		data    Bytes
		wantErr bool
	}{
		{"nil header", nil, true},
		{"short header", Bytes{8}, true},
		{"truncated rows", Bytes{8, 2, 0xFF}, true},
		{"8x2", Bytes{8, 2, 0xFF, 0x00}, false},
		{"10x1", Bytes{10, 1, 0xFF, 0xC0}, false},
		{"empty bitmap", Bytes{0, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBitmap(tt.data)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseBitmap() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBitmapBit(t *testing.T) {
	// 10x2: row 0 = 1000000001, row 1 = 0100000000
	bm := MustParseBitmap(Bytes{10, 2, 0x80, 0x40, 0x40, 0x00})
	if bm.Width() != 10 || bm.Height() != 2 || bm.Stride() != 2 {
		t.Fatalf("geometry = %dx%d stride %d", bm.Width(), bm.Height(), bm.Stride())
	}

	want := map[[2]int]bool{{0, 0}: true, {9, 0}: true, {1, 1}: true}
	for y := 0; y < 2; y++ {
		for x := 0; x < 10; x++ {
			if got := bm.Bit(x, y); got != want[[2]int{x, y}] {
				t.Errorf("Bit(%d, %d) = %v, want %v", x, y, got, want[[2]int{x, y}])
			}
		}
	}
	if bm.Bit(-1, 0) || bm.Bit(10, 0) || bm.Bit(0, 2) {
		t.Error("out of range Bit should be false")
	}
}

func TestMustParseBitmapPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParseBitmap did not panic on a truncated asset")
		}
	}()
	MustParseBitmap(Bytes{16})
}
