package pixelart

import "math"

// preBlurKernel derives the Gaussian kernel size from the block size: half
// the block, forced odd, never below 3. Blur strength scales with block
// granularity because block averaging discards that much detail anyway.
func preBlurKernel(blockSize int) int {
	k := (blockSize / 2) | 1
	if k < 3 {
		k = 3
	}
	return k
}

// gaussianKernel returns a normalized 1D Gaussian kernel of the given odd
// size. Sigma is derived from the size with the conventional
// 0.3*((size-1)*0.5 - 1) + 0.8 rule, which keeps small kernels gentle.
func gaussianKernel(size int) []float64 {
	sigma := 0.3*(float64(size-1)*0.5-1) + 0.8
	twoSigmaSq := 2 * sigma * sigma
	center := float64(size-1) / 2

	kernel := make([]float64, size)
	var sum float64
	for i := range kernel {
		d := float64(i) - center
		kernel[i] = math.Exp(-d * d / twoSigmaSq)
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// gaussianBlur applies a separable Gaussian filter of the given odd kernel
// size. Samples outside the image replicate the nearest edge pixel so
// borders are not darkened by zero padding.
func gaussianBlur(src Buffer, size int) Buffer {
	if src.Empty() {
		return Buffer{}
	}
	if size < 3 {
		return src.Clone()
	}
	kernel := gaussianKernel(size)
	radius := size / 2

	w, h := src.Width, src.Height

	// Horizontal pass into float storage, vertical pass back to bytes.
	tmp := make([]float64, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, b float64
			for k := -radius; k <= radius; k++ {
				sx := clampInt(x+k, 0, w-1)
				i := src.offset(sx, y)
				wk := kernel[k+radius]
				r += float64(src.Pix[i]) * wk
				g += float64(src.Pix[i+1]) * wk
				b += float64(src.Pix[i+2]) * wk
			}
			i := (y*w + x) * 3
			tmp[i] = r
			tmp[i+1] = g
			tmp[i+2] = b
		}
	}

	out := NewBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, b float64
			for k := -radius; k <= radius; k++ {
				sy := clampInt(y+k, 0, h-1)
				i := (sy*w + x) * 3
				wk := kernel[k+radius]
				r += tmp[i] * wk
				g += tmp[i+1] * wk
				b += tmp[i+2] * wk
			}
			out.SetRGB(x, y, roundToByte(r), roundToByte(g), roundToByte(b))
		}
	}
	return out
}

// roundToByte rounds v to the nearest integer and clamps it to [0, 255].
func roundToByte(v float64) uint8 {
	r := math.Round(v)
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}
