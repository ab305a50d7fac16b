package pixelart

// Buffer is an 8-bit RGB pixel buffer with contiguous row-major storage.
// Each pixel occupies three consecutive bytes (R, G, B). A Buffer with zero
// width or height is the empty sentinel used to signal failure throughout
// the pipeline; no stage ever panics on it.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewBuffer allocates a zeroed (black) buffer of the given dimensions.
// Non-positive dimensions yield the empty sentinel.
func NewBuffer(width, height int) Buffer {
	if width <= 0 || height <= 0 {
		return Buffer{}
	}
	return Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

// Empty reports whether b is the empty sentinel (or otherwise unusable).
func (b Buffer) Empty() bool {
	return b.Width <= 0 || b.Height <= 0 || len(b.Pix) == 0
}

// valid reports whether the pixel storage matches the declared dimensions.
// A buffer whose Pix length disagrees with Width*Height*3 is treated the
// same as a wrong-channel-count input: the pipeline rejects it.
func (b Buffer) valid() bool {
	return !b.Empty() && len(b.Pix) == b.Width*b.Height*3
}

// Clone returns a deep copy of b. Cloning the empty sentinel returns
// another empty sentinel.
func (b Buffer) Clone() Buffer {
	if b.Empty() {
		return Buffer{}
	}
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return Buffer{Width: b.Width, Height: b.Height, Pix: pix}
}

// offset returns the index of the first channel of pixel (x, y).
func (b Buffer) offset(x, y int) int {
	return (y*b.Width + x) * 3
}

// RGB returns the color of pixel (x, y). The caller must ensure the
// coordinates are in bounds.
func (b Buffer) RGB(x, y int) (r, g, bl uint8) {
	i := b.offset(x, y)
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2]
}

// SetRGB sets the color of pixel (x, y). The caller must ensure the
// coordinates are in bounds.
func (b Buffer) SetRGB(x, y int, r, g, bl uint8) {
	i := b.offset(x, y)
	b.Pix[i] = r
	b.Pix[i+1] = g
	b.Pix[i+2] = bl
}

// Fill sets every pixel to the given color.
func (b Buffer) Fill(c Color) {
	for i := 0; i < len(b.Pix); i += 3 {
		b.Pix[i] = c.R
		b.Pix[i+1] = c.G
		b.Pix[i+2] = c.B
	}
}

// Color is a single 8-bit RGB color.
type Color struct {
	R, G, B uint8
}
