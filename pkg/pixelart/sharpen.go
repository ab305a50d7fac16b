package pixelart

// sharpenInPlace applies an unsharp mask: blur with a small 3×3 Gaussian,
// take the high-frequency residual, and add it back scaled by strength.
// Strength is clamped to [0, 2].
func sharpenInPlace(b Buffer, strength float64) {
	if b.Empty() {
		return
	}
	if strength < 0 {
		strength = 0
	} else if strength > 2 {
		strength = 2
	}

	blurred := gaussianBlur(b, 3)
	for i := range b.Pix {
		orig := float64(b.Pix[i])
		high := orig - float64(blurred.Pix[i])
		b.Pix[i] = roundToByte(orig + high*strength)
	}
}
