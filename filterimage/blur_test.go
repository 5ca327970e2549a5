package filterimage

import (
	"math"
	"testing"
)

func TestBlurRadius(t *testing.T) {
	tests := []struct {
		stdDeviation float32
		radius       int
	}{
		{0, 0},
		{0.2, 0},
		{1, 1},
		{2, 2},
		{3, 3},
		{10, 9},
	}
	for _, test := range tests {
		if got := BlurRadius(test.stdDeviation); got != test.radius {
			t.Errorf("BlurRadius(%g): got %d, want %d", test.stdDeviation, got, test.radius)
		}
	}
}

func TestBoxBlurImpulse(t *testing.T) {
	// a single lit pixel spreads to a uniform window
	src := make([]Pixel, 5)
	dst := make([]Pixel, 5)
	src[2] = Pixel{R: 1, G: 1, B: 1, A: 1}
	boxBlur(src, dst, 5, 1, 1, true)

	want := []float32{0, 1.0 / 3, 1.0 / 3, 1.0 / 3, 0}
	for i, w := range want {
		if math.Abs(float64(dst[i].A-w)) > 1e-6 {
			t.Errorf("pixel %d: got %g, want %g", i, dst[i].A, w)
		}
	}
}

func TestBoxBlurEdgeClamp(t *testing.T) {
	// the window clamps at the borders: an impulse on the edge keeps
	// its full weight over the clamped samples
	src := make([]Pixel, 4)
	dst := make([]Pixel, 4)
	src[0] = Pixel{A: 1}
	boxBlur(src, dst, 4, 1, 1, true)

	// window at x=0 is {-1,0,1} with -1 clamped to 0: two samples lit
	if got := dst[0].A; math.Abs(float64(got-2.0/3)) > 1e-6 {
		t.Errorf("edge pixel: got %g, want 2/3", got)
	}
	if got := dst[1].A; math.Abs(float64(got-1.0/3)) > 1e-6 {
		t.Errorf("next pixel: got %g, want 1/3", got)
	}
	if got := dst[2].A; got != 0 {
		t.Errorf("pixel outside window: got %g, want 0", got)
	}
}

func TestBoxBlurVertical(t *testing.T) {
	src := make([]Pixel, 3*3)
	dst := make([]Pixel, 3*3)
	src[4] = Pixel{A: 1} // center of a 3x3 image
	boxBlur(src, dst, 3, 3, 1, false)

	for y := 0; y < 3; y++ {
		if got := dst[y*3+1].A; math.Abs(float64(got-1.0/3)) > 1e-6 {
			t.Errorf("column pixel (1,%d): got %g, want 1/3", y, got)
		}
		if dst[y*3].A != 0 || dst[y*3+2].A != 0 {
			t.Errorf("row %d: blur leaked to other columns", y)
		}
	}
}

func TestGaussianBlurPreservesConstant(t *testing.T) {
	// with clamped borders a constant image is a fixed point
	img := NewFilterImage(4, 4)
	for i := range img.Pix {
		img.Pix[i] = Pixel{R: 0.8, A: 1}
	}
	img.GaussianBlur(1, 1)
	for i, p := range img.Pix {
		if math.Abs(float64(p.R-0.8)) > 1e-5 || math.Abs(float64(p.A-1)) > 1e-5 {
			t.Errorf("pixel %d drifted to %+v", i, p)
		}
	}
}

func TestGaussianBlurZeroSigma(t *testing.T) {
	img := NewFilterImage(3, 3)
	img.Pix[4] = Pixel{R: 0.5, A: 0.5}
	want := img.Clone()
	img.GaussianBlur(0, 0)
	for i := range img.Pix {
		if img.Pix[i] != want.Pix[i] {
			t.Fatalf("zero sigma modified pixel %d", i)
		}
	}
}

func TestGaussianBlurSingleAxis(t *testing.T) {
	img := NewFilterImage(5, 5)
	img.Pix[2*5+2] = Pixel{A: 1}
	img.GaussianBlur(1, 0)

	// mass must stay inside the center row
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			p := img.Pix[y*5+x]
			if y != 2 && p.A != 0 {
				t.Errorf("pixel (%d,%d) lit by horizontal-only blur", x, y)
			}
		}
	}
	if img.Pix[2*5+2].A <= 0 {
		t.Error("center lost all mass")
	}
}

func TestGaussianBlurConservesMass(t *testing.T) {
	img := NewFilterImage(9, 9)
	img.Pix[4*9+4] = Pixel{A: 1}
	img.GaussianBlur(1, 1)

	var sum float64
	for _, p := range img.Pix {
		if p.A < 0 {
			t.Fatalf("negative alpha %g", p.A)
		}
		sum += float64(p.A)
	}
	// far from the borders the window never clamps, so the total
	// alpha is preserved
	if math.Abs(sum-1) > 1e-4 {
		t.Errorf("total alpha after blur: %g", sum)
	}
}
