package pixelart

// quantizeFixed maps every grid pixel onto its nearest entry of a fixed
// palette by squared Euclidean RGB distance.
func quantizeFixed(grid Buffer, palette []Color) Buffer {
	if grid.Empty() || len(palette) == 0 {
		return Buffer{}
	}

	out := NewBuffer(grid.Width, grid.Height)
	for i := 0; i < len(grid.Pix); i += 3 {
		c := Color{grid.Pix[i], grid.Pix[i+1], grid.Pix[i+2]}
		repl := palette[nearestPaletteIndex(c, palette)]
		out.Pix[i] = repl.R
		out.Pix[i+1] = repl.G
		out.Pix[i+2] = repl.B
	}
	return out
}

// quantizeFixedDither maps the grid onto a fixed palette with
// Floyd-Steinberg error diffusion.
func quantizeFixedDither(grid Buffer, palette []Color) Buffer {
	if grid.Empty() || len(palette) == 0 {
		return Buffer{}
	}
	return ditherFloydSteinberg(grid, palette)
}
