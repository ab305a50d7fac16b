package pixelart

import "testing"

func TestFixedPaletteSizes(t *testing.T) {
	tests := []struct {
		name string
		want int
	}{
		{PaletteNES, 56},
		{PaletteGameBoy, 4},
		{PaletteGameBoyPocket, 4},
		{PalettePico8, 16},
		{PaletteCGA, 4},
		{PaletteEGA, 16},
		{PaletteC64, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pal, ok := PaletteColors(tt.name)
			if !ok {
				t.Fatalf("PaletteColors(%q) not found", tt.name)
			}
			if len(pal) != tt.want {
				t.Errorf("len = %d, want %d", len(pal), tt.want)
			}
		})
	}
}

func TestPaletteColorsUnknown(t *testing.T) {
	if _, ok := PaletteColors("adaptive"); ok {
		t.Error("adaptive is a mode, not a color table")
	}
	if _, ok := PaletteColors("atari"); ok {
		t.Error("unknown palette should not resolve")
	}
}

func TestValidPalette(t *testing.T) {
	for _, name := range append(PaletteNames(), PaletteAdaptive) {
		if !ValidPalette(name) {
			t.Errorf("ValidPalette(%q) = false", name)
		}
	}
	if ValidPalette("snes") {
		t.Error("ValidPalette should reject unknown names")
	}
}

func TestPaletteColorsReturnsCopy(t *testing.T) {
	pal, _ := PaletteColors(PaletteGameBoy)
	pal[0] = Color{1, 2, 3}

	again, _ := PaletteColors(PaletteGameBoy)
	if again[0] == (Color{1, 2, 3}) {
		t.Error("mutating the returned slice must not affect the table")
	}
}

func TestNearestPaletteIndexTieBreaksLow(t *testing.T) {
	// Gray 128 is equidistant from 127 and 129; the lowest index wins.
	pal := []Color{{127, 127, 127}, {129, 129, 129}}
	if got := nearestPaletteIndex(Color{128, 128, 128}, pal); got != 0 {
		t.Errorf("index = %d, want 0", got)
	}

	// Duplicate entries: first occurrence wins.
	dup := []Color{{0, 0, 0}, {0, 0, 0}}
	if got := nearestPaletteIndex(Color{10, 10, 10}, dup); got != 0 {
		t.Errorf("index = %d, want 0", got)
	}
}

func TestQuantizeFixedOutputInPalette(t *testing.T) {
	pal, _ := PaletteColors(PalettePico8)
	members := make(map[Color]bool, len(pal))
	for _, c := range pal {
		members[c] = true
	}

	src := NewBuffer(9, 7)
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 37)
	}

	out := quantizeFixed(src, pal)
	if out.Width != src.Width || out.Height != src.Height {
		t.Fatalf("out = %dx%d, want %dx%d", out.Width, out.Height, src.Width, src.Height)
	}
	for i := 0; i < len(out.Pix); i += 3 {
		c := Color{out.Pix[i], out.Pix[i+1], out.Pix[i+2]}
		if !members[c] {
			t.Fatalf("pixel %d = %v is not a palette entry", i/3, c)
		}
	}
}
