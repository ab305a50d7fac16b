package pixelart

// Palette mode names. PaletteAdaptive derives a palette per image via
// clustering; the rest are fixed retro display palettes.
const (
	PaletteAdaptive      = "adaptive"
	PaletteNES           = "nes"
	PaletteGameBoy       = "gameboy"
	PaletteGameBoyPocket = "gameboy-pocket"
	PalettePico8         = "pico8"
	PaletteCGA           = "cga"
	PaletteEGA           = "ega"
	PaletteC64           = "c64"
)

// fixedPaletteNames lists the built-in fixed palettes in display order.
var fixedPaletteNames = []string{
	PaletteNES,
	PaletteGameBoy,
	PaletteGameBoyPocket,
	PalettePico8,
	PaletteCGA,
	PaletteEGA,
	PaletteC64,
}

// PaletteNames returns the built-in fixed palette names in display order.
// PaletteAdaptive is not included; it is a mode, not a color table.
func PaletteNames() []string {
	names := make([]string, len(fixedPaletteNames))
	copy(names, fixedPaletteNames)
	return names
}

// PaletteColors returns a copy of the named built-in palette. The second
// return value is false for unknown names and for PaletteAdaptive.
func PaletteColors(name string) ([]Color, bool) {
	pal, ok := fixedPalettes[name]
	if !ok {
		return nil, false
	}
	out := make([]Color, len(pal))
	copy(out, pal)
	return out, true
}

// ValidPalette reports whether name is PaletteAdaptive or a built-in
// fixed palette.
func ValidPalette(name string) bool {
	if name == PaletteAdaptive {
		return true
	}
	_, ok := fixedPalettes[name]
	return ok
}

// fixedPalettes holds the built-in palette tables. The tables are constant
// data; callers must treat the slices as read-only (PaletteColors hands out
// copies for that reason).
var fixedPalettes = map[string][]Color{
	// NES palette, see https://lospec.com/palette-list/nes-palette
	PaletteNES: {
		{124, 124, 124}, {0, 0, 252}, {0, 0, 188}, {68, 40, 188},
		{148, 0, 132}, {168, 0, 32}, {168, 16, 0}, {136, 20, 0},
		{80, 48, 0}, {0, 120, 0}, {0, 104, 0}, {0, 88, 0},
		{0, 64, 88}, {0, 0, 0}, {0, 0, 0}, {188, 188, 188},
		{0, 120, 248}, {0, 88, 248}, {104, 68, 252}, {216, 0, 204},
		{228, 0, 88}, {248, 56, 0}, {228, 92, 16}, {172, 124, 0},
		{0, 184, 0}, {0, 168, 0}, {0, 168, 68}, {0, 136, 136},
		{248, 248, 248}, {60, 188, 252}, {104, 136, 252}, {152, 120, 248},
		{248, 120, 248}, {248, 88, 152}, {248, 120, 88}, {252, 160, 68},
		{248, 184, 0}, {184, 248, 24}, {88, 216, 84}, {88, 248, 152},
		{0, 232, 216}, {120, 120, 120}, {252, 252, 252}, {164, 228, 252},
		{184, 184, 248}, {216, 184, 248}, {248, 184, 248}, {248, 164, 192},
		{240, 208, 176}, {252, 224, 168}, {248, 216, 120}, {216, 248, 120},
		{184, 248, 184}, {184, 248, 216}, {0, 252, 252}, {248, 216, 248},
	},

	// Original Game Boy, darkest to lightest green.
	PaletteGameBoy: {
		{15, 56, 15},
		{48, 98, 48},
		{139, 172, 15},
		{155, 188, 15},
	},

	// Game Boy Pocket monochrome.
	PaletteGameBoyPocket: {
		{15, 15, 15},
		{79, 79, 79},
		{163, 163, 163},
		{255, 255, 255},
	},

	// Pico-8 fantasy console, see https://lospec.com/palette-list/pico-8
	PalettePico8: {
		{0, 0, 0},
		{29, 43, 83},
		{126, 37, 83},
		{0, 135, 81},
		{171, 82, 54},
		{95, 87, 79},
		{194, 195, 199},
		{255, 241, 232},
		{255, 0, 77},
		{255, 163, 0},
		{255, 236, 39},
		{0, 228, 54},
		{41, 173, 255},
		{131, 118, 156},
		{255, 119, 168},
		{255, 204, 170},
	},

	// CGA 4-color mode (cyan/magenta/white).
	PaletteCGA: {
		{0, 0, 0},
		{85, 255, 255},
		{255, 85, 255},
		{255, 255, 255},
	},

	// EGA 16-color palette.
	PaletteEGA: {
		{0, 0, 0},
		{0, 0, 170},
		{0, 170, 0},
		{0, 170, 170},
		{170, 0, 0},
		{170, 0, 170},
		{170, 85, 0},
		{170, 170, 170},
		{85, 85, 85},
		{85, 85, 255},
		{85, 255, 85},
		{85, 255, 255},
		{255, 85, 85},
		{255, 85, 255},
		{255, 255, 85},
		{255, 255, 255},
	},

	// Commodore 64 palette.
	PaletteC64: {
		{0, 0, 0},
		{255, 255, 255},
		{136, 0, 0},
		{170, 255, 238},
		{204, 68, 204},
		{0, 204, 85},
		{0, 0, 170},
		{238, 238, 119},
		{221, 136, 85},
		{102, 68, 0},
		{255, 119, 119},
		{51, 51, 51},
		{119, 119, 119},
		{170, 255, 102},
		{0, 136, 255},
		{187, 187, 187},
	},
}

// colorDistanceSquared returns the squared Euclidean RGB distance between
// two colors.
func colorDistanceSquared(a, b Color) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return dr*dr + dg*dg + db*db
}

// nearestPaletteIndex returns the index of the palette entry closest to c by
// squared RGB distance. Ties resolve to the lowest index because the strict
// comparison keeps the first entry encountered.
func nearestPaletteIndex(c Color, palette []Color) int {
	best := 0
	bestDist := colorDistanceSquared(c, palette[0])
	for i := 1; i < len(palette); i++ {
		if d := colorDistanceSquared(c, palette[i]); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}
