package pixelart

import "testing"

func TestNewBuffer(t *testing.T) {
	b := NewBuffer(4, 3)
	if b.Empty() {
		t.Fatal("4x3 buffer should not be empty")
	}
	if len(b.Pix) != 4*3*3 {
		t.Errorf("len(Pix) = %d, want %d", len(b.Pix), 4*3*3)
	}

	if !NewBuffer(0, 3).Empty() {
		t.Error("zero width should yield the empty sentinel")
	}
	if !NewBuffer(4, -1).Empty() {
		t.Error("negative height should yield the empty sentinel")
	}
}

func TestBufferCloneIsDeep(t *testing.T) {
	b := NewBuffer(2, 2)
	b.SetRGB(0, 0, 1, 2, 3)

	c := b.Clone()
	c.SetRGB(0, 0, 9, 9, 9)

	r, g, bl := b.RGB(0, 0)
	if r != 1 || g != 2 || bl != 3 {
		t.Error("mutating the clone changed the original")
	}
}

func TestBufferRGBRoundTrip(t *testing.T) {
	b := NewBuffer(3, 2)
	b.SetRGB(2, 1, 10, 20, 30)
	r, g, bl := b.RGB(2, 1)
	if r != 10 || g != 20 || bl != 30 {
		t.Errorf("RGB = (%d,%d,%d), want (10,20,30)", r, g, bl)
	}
}

func TestBufferValid(t *testing.T) {
	if (Buffer{Width: 2, Height: 2, Pix: make([]uint8, 11)}).valid() {
		t.Error("mismatched storage should be invalid")
	}
	if !NewBuffer(2, 2).valid() {
		t.Error("freshly allocated buffer should be valid")
	}
}
