package pixelart

// reduceBlocks partitions src into blockSize×blockSize cells and produces a
// miniature image with one pixel per cell, colored with the arithmetic mean
// of the cell's pixels. The grid is the ceiling division of the source
// dimensions; cells in the last row/column are clipped to image bounds, so
// their means use only in-bounds pixels.
//
// This is deliberately explicit block iteration, not a resampling filter:
// the result is bit-identical to manual per-block mean computation.
func reduceBlocks(src Buffer, blockSize int) Buffer {
	if src.Empty() {
		return Buffer{}
	}
	if blockSize < 1 {
		blockSize = 1
	}

	gridW := (src.Width + blockSize - 1) / blockSize
	gridH := (src.Height + blockSize - 1) / blockSize
	grid := NewBuffer(gridW, gridH)

	for by := 0; by < gridH; by++ {
		for bx := 0; bx < gridW; bx++ {
			x0 := bx * blockSize
			y0 := by * blockSize
			x1 := minInt(x0+blockSize, src.Width)
			y1 := minInt(y0+blockSize, src.Height)

			var sumR, sumG, sumB uint64
			for y := y0; y < y1; y++ {
				i := src.offset(x0, y)
				for x := x0; x < x1; x++ {
					sumR += uint64(src.Pix[i])
					sumG += uint64(src.Pix[i+1])
					sumB += uint64(src.Pix[i+2])
					i += 3
				}
			}

			n := uint64((x1 - x0) * (y1 - y0))
			grid.SetRGB(bx, by,
				uint8((sumR+n/2)/n),
				uint8((sumG+n/2)/n),
				uint8((sumB+n/2)/n))
		}
	}
	return grid
}

// expandBlocks upsamples a block grid back to outW×outH by filling each
// cell's source rectangle (same clipping rule as reduceBlocks) with the
// cell's color. Nearest-neighbor block fill; never interpolated.
func expandBlocks(grid Buffer, outW, outH, blockSize int) Buffer {
	if grid.Empty() || outW <= 0 || outH <= 0 {
		return Buffer{}
	}
	if blockSize < 1 {
		blockSize = 1
	}

	out := NewBuffer(outW, outH)
	for by := 0; by < grid.Height; by++ {
		for bx := 0; bx < grid.Width; bx++ {
			r, g, b := grid.RGB(bx, by)

			x0 := bx * blockSize
			y0 := by * blockSize
			x1 := minInt(x0+blockSize, outW)
			y1 := minInt(y0+blockSize, outH)
			if x0 >= x1 || y0 >= y1 {
				continue
			}

			for y := y0; y < y1; y++ {
				i := out.offset(x0, y)
				for x := x0; x < x1; x++ {
					out.Pix[i] = r
					out.Pix[i+1] = g
					out.Pix[i+2] = b
					i += 3
				}
			}
		}
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
