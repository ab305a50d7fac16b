package pixelart

// Parameter bounds. Out-of-range values are never rejected; Process clamps
// them silently before use.
const (
	MinBlockSize = 1
	MaxBlockSize = 256

	MinPaletteSize = 2
	MaxPaletteSize = 256

	MinOutlineThickness = 1
	MaxOutlineThickness = 5
)

// defaultSharpenStrength is the unsharp-mask strength applied when edge
// enhancement is enabled.
const defaultSharpenStrength = 0.7

// Params bundles every knob for one Process invocation. The zero value is
// not useful; start from DefaultParams.
type Params struct {
	// BlockSize is the side length N of the square pixel blocks.
	BlockSize int

	// PaletteSize is the number of colors K for the adaptive palette.
	// Ignored unless Palette is PaletteAdaptive.
	PaletteSize int

	// PreBlur smooths the input before block averaging so block colors are
	// not polluted by high-frequency noise.
	PreBlur bool

	// EdgeEnhance applies an unsharp mask to the full-resolution result.
	EdgeEnhance bool

	// Dither applies Floyd-Steinberg error diffusion during quantization.
	Dither bool

	// Outline detects color discontinuities and darkens them.
	Outline bool

	// OutlineThickness is the outline width in pixels.
	OutlineThickness int

	// Palette selects the quantization mode: PaletteAdaptive for k-means
	// clustering, or the name of a fixed palette.
	Palette string

	// PaletteColors optionally overrides the fixed palette lookup with an
	// explicit color set (e.g. a user-defined palette). Ignored in adaptive
	// mode. When empty, Palette is resolved against the built-in tables.
	PaletteColors []Color

	// Seed fixes the random source for adaptive clustering so results are
	// reproducible. Zero means a nondeterministic seed.
	Seed int64
}

// DefaultParams returns the default processing parameters.
func DefaultParams() Params {
	return Params{
		BlockSize:        8,
		PaletteSize:      16,
		PreBlur:          true,
		OutlineThickness: 1,
		Palette:          PaletteAdaptive,
	}
}

// normalized returns a copy of p with every numeric field clamped to its
// valid range and an empty palette mode defaulted to adaptive.
func (p Params) normalized() Params {
	p.BlockSize = clampInt(p.BlockSize, MinBlockSize, MaxBlockSize)
	p.PaletteSize = clampInt(p.PaletteSize, MinPaletteSize, MaxPaletteSize)
	p.OutlineThickness = clampInt(p.OutlineThickness, MinOutlineThickness, MaxOutlineThickness)
	if p.Palette == "" {
		p.Palette = PaletteAdaptive
	}
	return p
}

// clampInt limits v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
