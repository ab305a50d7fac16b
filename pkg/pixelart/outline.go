package pixelart

import "math"

// Outline detection thresholds. A pixel is an edge when any 4-connected
// neighbor differs by at least outlineLumThreshold in perceptual luminance
// or outlineColorThreshold in Euclidean RGB distance.
const (
	outlineLumThreshold   = 35
	outlineColorThreshold = 40
)

// outlineInPlace draws pixel-art style outlines: detect inter-pixel
// discontinuities, clean or thicken the edge mask morphologically, then
// darken the flagged pixels. Thickness is clamped to [1, 5].
func outlineInPlace(b Buffer, thickness int) {
	if b.Empty() {
		return
	}
	thickness = clampInt(thickness, MinOutlineThickness, MaxOutlineThickness)

	mask := detectEdges(b)

	if thickness == 1 {
		// Opening removes isolated noise pixels while keeping thin edges.
		mask = erodeCross(mask, b.Width, b.Height)
		mask = dilateCross(mask, b.Width, b.Height)
	} else {
		mask = dilateSquare(mask, b.Width, b.Height, 2*thickness+1)
	}

	darkenEdges(b, mask)
}

// luminance computes perceptual luminance with the 0.299/0.587/0.114
// weights, truncated to int.
func luminance(r, g, bl uint8) int {
	return int(0.299*float64(r) + 0.587*float64(g) + 0.114*float64(bl))
}

// detectEdges marks every pixel whose right, bottom, left, or top neighbor
// differs beyond the thresholds. The first qualifying neighbor
// short-circuits the remaining checks for that pixel.
func detectEdges(b Buffer) []uint8 {
	w, h := b.Width, b.Height
	mask := make([]uint8, w*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl := b.RGB(x, y)
			cur := Color{r, g, bl}
			lum := luminance(r, g, bl)

			isEdge := false
			if x+1 < w {
				isEdge = edgeBetween(cur, lum, b, x+1, y)
			}
			if !isEdge && y+1 < h {
				isEdge = edgeBetween(cur, lum, b, x, y+1)
			}
			if !isEdge && x > 0 {
				isEdge = edgeBetween(cur, lum, b, x-1, y)
			}
			if !isEdge && y > 0 {
				isEdge = edgeBetween(cur, lum, b, x, y-1)
			}

			if isEdge {
				mask[y*w+x] = 255
			}
		}
	}
	return mask
}

// edgeBetween reports whether the pixel at (nx, ny) differs from cur enough
// to count as an edge.
func edgeBetween(cur Color, curLum int, b Buffer, nx, ny int) bool {
	r, g, bl := b.RGB(nx, ny)
	lumDiff := curLum - luminance(r, g, bl)
	if lumDiff < 0 {
		lumDiff = -lumDiff
	}
	if lumDiff >= outlineLumThreshold {
		return true
	}
	return math.Sqrt(colorDistanceSquared(cur, Color{r, g, bl})) >= outlineColorThreshold
}

// erodeCross erodes the mask with a 3×3 cross kernel. Out-of-bounds samples
// count as set, so the border does not erode by itself.
func erodeCross(mask []uint8, w, h int) []uint8 {
	out := make([]uint8, len(mask))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask[y*w+x] == 0 {
				continue
			}
			keep := true
			if x > 0 && mask[y*w+x-1] == 0 {
				keep = false
			}
			if keep && x+1 < w && mask[y*w+x+1] == 0 {
				keep = false
			}
			if keep && y > 0 && mask[(y-1)*w+x] == 0 {
				keep = false
			}
			if keep && y+1 < h && mask[(y+1)*w+x] == 0 {
				keep = false
			}
			if keep {
				out[y*w+x] = 255
			}
		}
	}
	return out
}

// dilateCross dilates the mask with a 3×3 cross kernel.
func dilateCross(mask []uint8, w, h int) []uint8 {
	out := make([]uint8, len(mask))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			set := mask[y*w+x] != 0
			if !set && x > 0 {
				set = mask[y*w+x-1] != 0
			}
			if !set && x+1 < w {
				set = mask[y*w+x+1] != 0
			}
			if !set && y > 0 {
				set = mask[(y-1)*w+x] != 0
			}
			if !set && y+1 < h {
				set = mask[(y+1)*w+x] != 0
			}
			if set {
				out[y*w+x] = 255
			}
		}
	}
	return out
}

// dilateSquare dilates the mask with a size×size square kernel (size odd).
func dilateSquare(mask []uint8, w, h, size int) []uint8 {
	radius := size / 2
	out := make([]uint8, len(mask))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			set := false
			for dy := -radius; dy <= radius && !set; dy++ {
				ny := y + dy
				if ny < 0 || ny >= h {
					continue
				}
				for dx := -radius; dx <= radius; dx++ {
					nx := x + dx
					if nx < 0 || nx >= w {
						continue
					}
					if mask[ny*w+nx] != 0 {
						set = true
						break
					}
				}
			}
			if set {
				out[y*w+x] = 255
			}
		}
	}
	return out
}

// darkenEdges subtracts an adaptive amount from every masked pixel. Already
// dark pixels get less darkening so outlines never crush to pure black,
// while bright regions get more so the outline stays visible.
func darkenEdges(b Buffer, mask []uint8) {
	w := b.Width
	for y := 0; y < b.Height; y++ {
		for x := 0; x < w; x++ {
			if mask[y*w+x] <= 128 {
				continue
			}
			i := b.offset(x, y)
			brightness := (int(b.Pix[i]) + int(b.Pix[i+1]) + int(b.Pix[i+2])) / 3

			darken := 70
			if brightness < 64 {
				darken = 40
			} else if brightness > 192 {
				darken = 90
			}

			b.Pix[i] = subFloor(b.Pix[i], darken)
			b.Pix[i+1] = subFloor(b.Pix[i+1], darken)
			b.Pix[i+2] = subFloor(b.Pix[i+2], darken)
		}
	}
}

// subFloor subtracts amount from v, flooring at zero.
func subFloor(v uint8, amount int) uint8 {
	n := int(v) - amount
	if n < 0 {
		return 0
	}
	return uint8(n)
}
