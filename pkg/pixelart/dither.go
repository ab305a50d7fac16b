package pixelart

// Floyd-Steinberg error distribution weights:
//
//	      X    7/16
//	3/16 5/16  1/16
const (
	fsRight     = 7.0 / 16.0
	fsDownLeft  = 3.0 / 16.0
	fsDown      = 5.0 / 16.0
	fsDownRight = 1.0 / 16.0
)

// ditherFloydSteinberg quantizes src to the given palette with
// Floyd-Steinberg error diffusion. Pixels are processed in strict row-major
// order on an explicit working copy; diffusion mutates not-yet-visited
// neighbors and re-clamps them immediately, so later pixels observe the
// already-clamped intermediate state. Neighbors outside the grid are
// skipped.
func ditherFloydSteinberg(src Buffer, palette []Color) Buffer {
	if src.Empty() || len(palette) == 0 {
		return Buffer{}
	}

	work := src.Clone()
	w, h := work.Width, work.Height

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := work.offset(x, y)
			old := Color{work.Pix[i], work.Pix[i+1], work.Pix[i+2]}

			repl := palette[nearestPaletteIndex(old, palette)]

			errR := float64(old.R) - float64(repl.R)
			errG := float64(old.G) - float64(repl.G)
			errB := float64(old.B) - float64(repl.B)

			work.Pix[i] = repl.R
			work.Pix[i+1] = repl.G
			work.Pix[i+2] = repl.B

			if x+1 < w {
				diffuse(work, x+1, y, errR, errG, errB, fsRight)
			}
			if y+1 < h {
				if x-1 >= 0 {
					diffuse(work, x-1, y+1, errR, errG, errB, fsDownLeft)
				}
				diffuse(work, x, y+1, errR, errG, errB, fsDown)
				if x+1 < w {
					diffuse(work, x+1, y+1, errR, errG, errB, fsDownRight)
				}
			}
		}
	}
	return work
}

// diffuse adds weight*err to pixel (x, y) per channel, truncating to int and
// clamping to [0, 255] in the same step.
func diffuse(b Buffer, x, y int, errR, errG, errB, weight float64) {
	i := b.offset(x, y)
	b.Pix[i] = uint8(clampInt(int(float64(b.Pix[i])+errR*weight), 0, 255))
	b.Pix[i+1] = uint8(clampInt(int(float64(b.Pix[i+1])+errG*weight), 0, 255))
	b.Pix[i+2] = uint8(clampInt(int(float64(b.Pix[i+2])+errB*weight), 0, 255))
}
