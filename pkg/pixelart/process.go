// Package pixelart implements the image-to-pixel-art transformation
// pipeline.
//
// The pipeline is a single synchronous pass over an RGB pixel buffer:
//
//  1. Optional Gaussian pre-blur (stabilizes block colors against noise)
//  2. Block reduction (per-block mean color, explicit iteration)
//  3. Palette quantization (adaptive k-means in Lab space or a fixed retro
//     palette, each with an optional Floyd-Steinberg dithering variant)
//  4. Block expansion back to the source resolution
//  5. Optional unsharp-mask edge enhancement
//  6. Optional pixel-art outlines
//
// Process is a pure function: it never mutates its input, holds no state
// between invocations, and is safe to call concurrently as long as a given
// Buffer/Params pair is not mutated during the call. All failures are
// signaled with the empty Buffer sentinel; out-of-range parameters are
// clamped, never rejected.
package pixelart

// Process runs the full pipeline on input with the given parameters and
// returns a new buffer of identical dimensions. It returns the empty
// sentinel when the input is empty or its storage does not match a 3-channel
// 8-bit layout, or when any intermediate stage fails.
func Process(input Buffer, params Params) Buffer {
	if !input.valid() {
		return Buffer{}
	}
	p := params.normalized()

	work := input
	if p.PreBlur {
		work = gaussianBlur(work, preBlurKernel(p.BlockSize))
	}

	grid := reduceBlocks(work, p.BlockSize)
	if grid.Empty() {
		return Buffer{}
	}

	quantized := quantizeGrid(grid, p)
	if quantized.Empty() {
		return Buffer{}
	}

	out := expandBlocks(quantized, input.Width, input.Height, p.BlockSize)
	if out.Empty() {
		return Buffer{}
	}

	if p.EdgeEnhance {
		sharpenInPlace(out, defaultSharpenStrength)
	}
	if p.Outline {
		outlineInPlace(out, p.OutlineThickness)
	}
	return out
}

// quantizeGrid dispatches the block grid to one of the four quantization
// paths selected by the palette mode and the dither flag. Each path is a
// pure function from grid to quantized grid.
func quantizeGrid(grid Buffer, p Params) Buffer {
	if p.Palette == PaletteAdaptive {
		if p.Dither {
			return quantizeAdaptiveDither(grid, p.PaletteSize, p.Seed)
		}
		return quantizeAdaptive(grid, p.PaletteSize, p.Seed)
	}

	palette := p.PaletteColors
	if len(palette) == 0 {
		var ok bool
		palette, ok = PaletteColors(p.Palette)
		if !ok {
			return Buffer{}
		}
	}

	if p.Dither {
		return quantizeFixedDither(grid, palette)
	}
	return quantizeFixed(grid, palette)
}
