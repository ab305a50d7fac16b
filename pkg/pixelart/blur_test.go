package pixelart

import (
	"math"
	"testing"
)

func TestPreBlurKernel(t *testing.T) {
	tests := []struct {
		blockSize int
		want      int
	}{
		{1, 3},
		{2, 3},
		{4, 3},
		{8, 5},
		{10, 5},
		{16, 9},
		{32, 17},
	}
	for _, tt := range tests {
		if got := preBlurKernel(tt.blockSize); got != tt.want {
			t.Errorf("preBlurKernel(%d) = %d, want %d", tt.blockSize, got, tt.want)
		}
		if got := preBlurKernel(tt.blockSize); got%2 == 0 {
			t.Errorf("preBlurKernel(%d) = %d, want odd", tt.blockSize, got)
		}
	}
}

func TestGaussianKernelNormalizedAndSymmetric(t *testing.T) {
	for _, size := range []int{3, 5, 9} {
		kernel := gaussianKernel(size)
		if len(kernel) != size {
			t.Fatalf("len = %d, want %d", len(kernel), size)
		}

		var sum float64
		for _, v := range kernel {
			sum += v
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("size %d: sum = %v, want 1", size, sum)
		}

		for i := 0; i < size/2; i++ {
			if math.Abs(kernel[i]-kernel[size-1-i]) > 1e-12 {
				t.Errorf("size %d: kernel not symmetric at %d", size, i)
			}
		}
		if kernel[size/2] <= kernel[0] {
			t.Errorf("size %d: center weight should dominate", size)
		}
	}
}

func TestGaussianBlurFlatImageUnchanged(t *testing.T) {
	// Replicated borders keep a flat image exactly flat; zero padding
	// would darken the edges.
	src := NewBuffer(10, 6)
	src.Fill(Color{77, 150, 231})

	out := gaussianBlur(src, 5)
	for i := 0; i < len(out.Pix); i += 3 {
		if out.Pix[i] != 77 || out.Pix[i+1] != 150 || out.Pix[i+2] != 231 {
			t.Fatalf("pixel %d = (%d,%d,%d), want (77,150,231)",
				i/3, out.Pix[i], out.Pix[i+1], out.Pix[i+2])
		}
	}
}

func TestGaussianBlurSmoothsImpulse(t *testing.T) {
	src := NewBuffer(7, 7)
	src.SetRGB(3, 3, 255, 255, 255)

	out := gaussianBlur(src, 3)

	r, _, _ := out.RGB(3, 3)
	if r == 0 || r == 255 {
		t.Errorf("center = %d, want spread impulse", r)
	}
	nr, _, _ := out.RGB(2, 3)
	if nr == 0 {
		t.Error("neighbor received no energy")
	}
	fr, _, _ := out.RGB(0, 0)
	if fr != 0 {
		t.Errorf("far corner = %d, want 0", fr)
	}
}

func TestSharpenFlatImageUnchanged(t *testing.T) {
	b := NewBuffer(6, 6)
	b.Fill(Color{120, 45, 210})

	sharpenInPlace(b, 0.7)
	for i := 0; i < len(b.Pix); i += 3 {
		if b.Pix[i] != 120 || b.Pix[i+1] != 45 || b.Pix[i+2] != 210 {
			t.Fatal("flat image should have no high-frequency residual")
		}
	}
}

func TestSharpenIncreasesLocalContrast(t *testing.T) {
	b := NewBuffer(8, 1)
	for x := 0; x < 8; x++ {
		if x >= 4 {
			b.SetRGB(x, 0, 200, 200, 200)
		} else {
			b.SetRGB(x, 0, 50, 50, 50)
		}
	}

	sharpenInPlace(b, 1.0)

	dark, _, _ := b.RGB(3, 0)
	bright, _, _ := b.RGB(4, 0)
	if dark >= 50 {
		t.Errorf("dark side of edge = %d, want overshoot below 50", dark)
	}
	if bright <= 200 {
		t.Errorf("bright side of edge = %d, want overshoot above 200", bright)
	}
}
