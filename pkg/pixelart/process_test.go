package pixelart

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestProcessPreservesDimensions(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		params Params
	}{
		{
			name: "AdaptiveDefaults",
			w:    33, h: 21,
			params: DefaultParams(),
		},
		{
			name: "FixedPaletteAllStages",
			w:    16, h: 16,
			params: Params{
				BlockSize:        4,
				PaletteSize:      8,
				PreBlur:          true,
				EdgeEnhance:      true,
				Dither:           true,
				Outline:          true,
				OutlineThickness: 2,
				Palette:          PaletteGameBoy,
			},
		},
		{
			name: "BlockLargerThanImage",
			w:    5, h: 5,
			params: Params{BlockSize: 64, Palette: PaletteCGA, OutlineThickness: 1, PaletteSize: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewBuffer(tt.w, tt.h)
			for i := range src.Pix {
				src.Pix[i] = uint8((i*31 + 7) % 256)
			}
			tt.params.Seed = 1

			out := Process(src, tt.params)
			if out.Empty() {
				t.Fatal("Process returned the empty sentinel")
			}
			if out.Width != tt.w || out.Height != tt.h {
				t.Errorf("out = %dx%d, want %dx%d", out.Width, out.Height, tt.w, tt.h)
			}
		})
	}
}

func TestProcessRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		input Buffer
	}{
		{"EmptySentinel", Buffer{}},
		{"ZeroWidth", Buffer{Width: 0, Height: 4, Pix: make([]uint8, 12)}},
		{"TruncatedStorage", Buffer{Width: 4, Height: 4, Pix: make([]uint8, 10)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if out := Process(tt.input, DefaultParams()); !out.Empty() {
				t.Error("want the empty sentinel")
			}
		})
	}
}

func TestProcessUnknownPaletteFails(t *testing.T) {
	src := NewBuffer(4, 4)
	params := DefaultParams()
	params.Palette = "vectrex"
	if out := Process(src, params); !out.Empty() {
		t.Error("unknown fixed palette should propagate the empty sentinel")
	}
}

func TestProcessDoesNotMutateInput(t *testing.T) {
	src := NewBuffer(8, 8)
	for i := range src.Pix {
		src.Pix[i] = uint8(i)
	}
	want := src.Clone()

	params := DefaultParams()
	params.Palette = PalettePico8
	params.Outline = true
	params.EdgeEnhance = true
	Process(src, params)

	if diff := cmp.Diff(want, src); diff != "" {
		t.Errorf("input mutated (-want +got):\n%s", diff)
	}
}

func TestProcessSolidRedAdaptive(t *testing.T) {
	// 16x16 solid red, blockSize 8, adaptive K=2, everything else off:
	// one block color, one effective cluster, so the output is uniform and
	// stays on the input red.
	src := NewBuffer(16, 16)
	src.Fill(Color{255, 0, 0})

	out := Process(src, Params{
		BlockSize:        8,
		PaletteSize:      2,
		Palette:          PaletteAdaptive,
		OutlineThickness: 1,
		Seed:             5,
	})
	if out.Width != 16 || out.Height != 16 {
		t.Fatalf("out = %dx%d, want 16x16", out.Width, out.Height)
	}

	first := Color{out.Pix[0], out.Pix[1], out.Pix[2]}
	for i := 3; i < len(out.Pix); i += 3 {
		if (Color{out.Pix[i], out.Pix[i+1], out.Pix[i+2]}) != first {
			t.Fatal("output is not uniform")
		}
	}
	if absDiff(first.R, 255) > 3 || absDiff(first.G, 0) > 3 || absDiff(first.B, 0) > 3 {
		t.Errorf("output color %v drifted from red", first)
	}
}

func TestProcessFixedModeIdempotent(t *testing.T) {
	src := NewBuffer(24, 18)
	for i := range src.Pix {
		src.Pix[i] = uint8((i * 97) % 256)
	}

	params := Params{
		BlockSize:        3,
		PreBlur:          true,
		Dither:           true,
		Outline:          true,
		OutlineThickness: 1,
		Palette:          PaletteEGA,
		PaletteSize:      16,
	}

	first := Process(src, params)
	second := Process(src, params)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("fixed-palette runs differ (-first +second):\n%s", diff)
	}
}

func TestProcessIdentityAtBlockSizeOne(t *testing.T) {
	// blockSize 1, no blur, fixed palette containing the exact input
	// colors: quantization is the identity, so the pipeline reproduces the
	// input byte for byte.
	src := NewBuffer(2, 2)
	src.SetRGB(0, 0, 255, 0, 0)
	src.SetRGB(1, 0, 0, 255, 0)
	src.SetRGB(0, 1, 0, 0, 255)
	src.SetRGB(1, 1, 255, 255, 0)

	out := Process(src, Params{
		BlockSize:        1,
		PaletteSize:      4,
		Palette:          "corner-colors",
		OutlineThickness: 1,
		PaletteColors: []Color{
			{255, 0, 0}, {0, 255, 0}, {0, 0, 255}, {255, 255, 0},
		},
	})
	if diff := cmp.Diff(src, out); diff != "" {
		t.Errorf("identity pipeline altered the image (-want +got):\n%s", diff)
	}
}

func TestParamsNormalization(t *testing.T) {
	p := Params{BlockSize: 0, PaletteSize: 1, OutlineThickness: 99}.normalized()
	if p.BlockSize != MinBlockSize {
		t.Errorf("BlockSize = %d, want %d", p.BlockSize, MinBlockSize)
	}
	if p.PaletteSize != MinPaletteSize {
		t.Errorf("PaletteSize = %d, want %d", p.PaletteSize, MinPaletteSize)
	}
	if p.OutlineThickness != MaxOutlineThickness {
		t.Errorf("OutlineThickness = %d, want %d", p.OutlineThickness, MaxOutlineThickness)
	}
	if p.Palette != PaletteAdaptive {
		t.Errorf("Palette = %q, want adaptive default", p.Palette)
	}

	q := Params{BlockSize: 1000, PaletteSize: 1000, OutlineThickness: 0}.normalized()
	if q.BlockSize != MaxBlockSize || q.PaletteSize != MaxPaletteSize || q.OutlineThickness != MinOutlineThickness {
		t.Errorf("upper clamps = (%d,%d,%d), want (%d,%d,%d)",
			q.BlockSize, q.PaletteSize, q.OutlineThickness,
			MaxBlockSize, MaxPaletteSize, MinOutlineThickness)
	}
}
