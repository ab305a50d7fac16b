package pixelart

import (
	"math"
	"math/rand"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Clustering parameters. Iteration stops when the largest center movement
// falls below kmeansEpsilon (in 8-bit Lab units) or after
// kmeansMaxIterations, whichever comes first. The whole run is repeated
// kmeansAttempts times with fresh seeding and the attempt with the lowest
// within-cluster variance wins.
const (
	kmeansAttempts      = 3
	kmeansMaxIterations = 30
	kmeansEpsilon       = 1.0
)

// labPoint is a color in 8-bit-scaled CIE Lab space: L in [0,255],
// a and b offset by 128. Clustering happens in this perceptually uniform
// space so palette entries track human color discrimination instead of raw
// channel distance.
type labPoint [3]float64

// rgbToLab converts an 8-bit RGB color to the scaled Lab space.
func rgbToLab(c Color) labPoint {
	col := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
	l, a, b := col.Lab()
	return labPoint{l * 255, a*100 + 128, b*100 + 128}
}

// labToRGB converts a scaled Lab point back to 8-bit RGB, clamping to the
// RGB gamut.
func labToRGB(p labPoint) Color {
	col := colorful.Lab(p[0]/255, (p[1]-128)/100, (p[2]-128)/100).Clamped()
	r, g, b := col.RGB255()
	return Color{r, g, b}
}

func labDistSq(a, b labPoint) float64 {
	d0 := a[0] - b[0]
	d1 := a[1] - b[1]
	d2 := a[2] - b[2]
	return d0*d0 + d1*d1 + d2*d2
}

// resolveSeed maps the zero seed to a nondeterministic one.
func resolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

// clusterLab runs k-means over the samples and returns the final centers
// and the per-sample cluster labels. k must be ≥1 and ≤ len(samples).
func clusterLab(samples []labPoint, k int, rng *rand.Rand) (centers []labPoint, labels []int) {
	var bestCenters []labPoint
	var bestLabels []int
	bestSSE := math.Inf(1)

	for attempt := 0; attempt < kmeansAttempts; attempt++ {
		c, l, sse := runKMeans(samples, k, rng)
		if sse < bestSSE {
			bestSSE = sse
			bestCenters = c
			bestLabels = l
		}
	}
	return bestCenters, bestLabels
}

// runKMeans performs one seeded clustering attempt and returns its centers,
// labels, and within-cluster sum of squares.
func runKMeans(samples []labPoint, k int, rng *rand.Rand) ([]labPoint, []int, float64) {
	centers := seedCenters(samples, k, rng)
	labels := make([]int, len(samples))
	counts := make([]int, k)
	sums := make([]labPoint, k)

	for iter := 0; iter < kmeansMaxIterations; iter++ {
		assign(samples, centers, labels)

		for i := range sums {
			sums[i] = labPoint{}
			counts[i] = 0
		}
		for i, s := range samples {
			c := labels[i]
			sums[c][0] += s[0]
			sums[c][1] += s[1]
			sums[c][2] += s[2]
			counts[c]++
		}

		maxMove := 0.0
		for i := range centers {
			var next labPoint
			if counts[i] == 0 {
				// Dead cluster: restart it at a random sample.
				next = samples[rng.Intn(len(samples))]
			} else {
				n := float64(counts[i])
				next = labPoint{sums[i][0] / n, sums[i][1] / n, sums[i][2] / n}
			}
			if move := math.Sqrt(labDistSq(centers[i], next)); move > maxMove {
				maxMove = move
			}
			centers[i] = next
		}

		if maxMove < kmeansEpsilon {
			break
		}
	}

	// Final assignment against the converged centers so labels and centers
	// agree.
	assign(samples, centers, labels)

	var sse float64
	for i, s := range samples {
		sse += labDistSq(s, centers[labels[i]])
	}
	return centers, labels, sse
}

// assign labels every sample with its nearest center.
func assign(samples []labPoint, centers []labPoint, labels []int) {
	for i, s := range samples {
		best := 0
		bestDist := labDistSq(s, centers[0])
		for c := 1; c < len(centers); c++ {
			if d := labDistSq(s, centers[c]); d < bestDist {
				bestDist = d
				best = c
			}
		}
		labels[i] = best
	}
}

// seedCenters picks k initial centers with kmeans++ seeding: the first
// uniformly at random, each subsequent one weighted by squared distance to
// the nearest already-chosen center.
func seedCenters(samples []labPoint, k int, rng *rand.Rand) []labPoint {
	centers := make([]labPoint, 0, k)
	centers = append(centers, samples[rng.Intn(len(samples))])

	minDist := make([]float64, len(samples))
	for i, s := range samples {
		minDist[i] = labDistSq(s, centers[0])
	}

	for len(centers) < k {
		var total float64
		for _, d := range minDist {
			total += d
		}
		var next labPoint
		if total == 0 {
			// All remaining samples coincide with a center.
			next = samples[rng.Intn(len(samples))]
		} else {
			target := rng.Float64() * total
			idx := len(samples) - 1
			acc := 0.0
			for i, d := range minDist {
				acc += d
				if acc >= target {
					idx = i
					break
				}
			}
			next = samples[idx]
		}
		centers = append(centers, next)
		for i, s := range samples {
			if d := labDistSq(s, next); d < minDist[i] {
				minDist[i] = d
			}
		}
	}
	return centers
}

// adaptiveK clamps the requested palette size to [MinPaletteSize, total],
// with the sample count taking precedence when the two bounds cross.
func adaptiveK(requested, total int) int {
	k := requested
	if k < MinPaletteSize {
		k = MinPaletteSize
	}
	if k > total {
		k = total
	}
	if k < 1 {
		k = 1
	}
	return k
}

// labSamples flattens a buffer into Lab samples in row-major order.
func labSamples(b Buffer) []labPoint {
	samples := make([]labPoint, 0, b.Width*b.Height)
	for i := 0; i < len(b.Pix); i += 3 {
		samples = append(samples, rgbToLab(Color{b.Pix[i], b.Pix[i+1], b.Pix[i+2]}))
	}
	return samples
}

// paletteFromCenters rounds each cluster center to 8-bit Lab and converts it
// to an RGB palette entry. Rounding happens in Lab space, before the color
// space round trip, to mirror how the centers are stored.
func paletteFromCenters(centers []labPoint) []Color {
	palette := make([]Color, len(centers))
	for i, c := range centers {
		rounded := labPoint{
			float64(clampInt(int(math.Round(c[0])), 0, 255)),
			float64(clampInt(int(math.Round(c[1])), 0, 255)),
			float64(clampInt(int(math.Round(c[2])), 0, 255)),
		}
		palette[i] = labToRGB(rounded)
	}
	return palette
}

// quantizeAdaptive clusters the block grid in Lab space and recolors every
// pixel with its own cluster's palette entry. Assignment reuses the
// clustering labels rather than a fresh nearest-center search: the two can
// diverge slightly after the Lab round trip, and the label is authoritative.
func quantizeAdaptive(grid Buffer, paletteSize int, seed int64) Buffer {
	samples := labSamples(grid)
	if len(samples) == 0 {
		return Buffer{}
	}
	k := adaptiveK(paletteSize, len(samples))

	rng := rand.New(rand.NewSource(resolveSeed(seed)))
	centers, labels := clusterLab(samples, k, rng)
	palette := paletteFromCenters(centers)

	out := NewBuffer(grid.Width, grid.Height)
	for i, label := range labels {
		c := palette[label]
		out.Pix[i*3] = c.R
		out.Pix[i*3+1] = c.G
		out.Pix[i*3+2] = c.B
	}
	return out
}

// quantizeAdaptiveDither builds the adaptive palette the same way as
// quantizeAdaptive but discards the label assignment and maps the grid onto
// the palette with Floyd-Steinberg diffusion instead.
func quantizeAdaptiveDither(grid Buffer, paletteSize int, seed int64) Buffer {
	samples := labSamples(grid)
	if len(samples) == 0 {
		return Buffer{}
	}
	k := adaptiveK(paletteSize, len(samples))

	rng := rand.New(rand.NewSource(resolveSeed(seed)))
	centers, _ := clusterLab(samples, k, rng)
	palette := paletteFromCenters(centers)

	return ditherFloydSteinberg(grid, palette)
}
