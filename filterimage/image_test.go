package filterimage

import (
	"math"
	"testing"
)

// fills one canvas pixel from r,g,b,a bytes, honoring the BGRA layout
func setPixel(c *Canvas, x, y int, r, g, b, a uint8) {
	i := y*c.Stride + x*4
	c.Pix[i+0] = b
	c.Pix[i+1] = g
	c.Pix[i+2] = r
	c.Pix[i+3] = a
}

func pixelBytes(c *Canvas, x, y int) (r, g, b, a uint8) {
	i := y*c.Stride + x*4
	return c.Pix[i+2], c.Pix[i+1], c.Pix[i+0], c.Pix[i+3]
}

func TestLinearTable(t *testing.T) {
	if linearTable[0] != 0 {
		t.Errorf("expected 0 for black, got %g", linearTable[0])
	}
	if linearTable[255] != 1 {
		t.Errorf("expected 1 for white, got %g", linearTable[255])
	}
	for i := 1; i < 256; i++ {
		if linearTable[i] <= linearTable[i-1] {
			t.Errorf("table not increasing at %d", i)
		}
	}
}

func TestSRGBRoundTrip(t *testing.T) {
	for i := 0; i <= 100; i++ {
		c := float32(i) / 100
		got := ToSRGB(ToLinear(c))
		if math.Abs(float64(got-c)) > 1e-5 {
			t.Errorf("round trip of %g gives %g", c, got)
		}
	}
}

func TestCanvasRoundTrip(t *testing.T) {
	canvas := NewCanvas(2, 2, Rect{})
	setPixel(canvas, 0, 0, 255, 0, 0, 255)  // opaque red
	setPixel(canvas, 1, 0, 0, 0, 0, 0)      // transparent
	setPixel(canvas, 0, 1, 64, 128, 32, 128) // translucent
	setPixel(canvas, 1, 1, 255, 255, 255, 255)

	img := FromCanvas(canvas)
	if img.Width != 2 || img.Height != 2 {
		t.Fatalf("unexpected dimensions %dx%d", img.Width, img.Height)
	}
	if p := img.Pix[0]; p.R != 1 || p.G != 0 || p.B != 0 || p.A != 1 {
		t.Errorf("opaque red converts to %+v", p)
	}
	if p := img.Pix[1]; p != (Pixel{}) {
		t.Errorf("transparent pixel converts to %+v", p)
	}

	back := img.ToCanvas(Rect{})
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			ri, gi, bi, ai := pixelBytes(canvas, x, y)
			ro, gOut, bo, ao := pixelBytes(back, x, y)
			if absDiff(ri, ro) > 1 || absDiff(gi, gOut) > 1 || absDiff(bi, bo) > 1 || absDiff(ai, ao) > 1 {
				t.Errorf("pixel (%d,%d): got (%d,%d,%d,%d), want (%d,%d,%d,%d)",
					x, y, ro, gOut, bo, ao, ri, gi, bi, ai)
			}
		}
	}
}

func absDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d
}

func TestNearZeroAlphaDropped(t *testing.T) {
	img := NewFilterImage(1, 1)
	img.Pix[0] = Pixel{R: 0.5, G: 0.5, B: 0.5, A: 5e-5}
	c := img.ToCanvas(Rect{})
	r, g, b, a := pixelBytes(c, 0, 0)
	if r != 0 || g != 0 || b != 0 || a != 0 {
		t.Errorf("near zero alpha pixel kept: (%d,%d,%d,%d)", r, g, b, a)
	}
}

func TestColorChannelsClampedToAlpha(t *testing.T) {
	// out of range channels must not survive the sRGB conversion
	img := NewFilterImage(1, 1)
	img.Pix[0] = Pixel{R: 2, G: -1, B: 0.25, A: 0.5}
	c := img.ToCanvas(Rect{})
	r, g, b, a := pixelBytes(c, 0, 0)
	if a != 128 {
		t.Errorf("alpha byte: got %d, want 128", a)
	}
	if r != a {
		t.Errorf("overflowing channel should saturate at alpha, got %d", r)
	}
	if g != 0 {
		t.Errorf("negative channel should clamp to zero, got %d", g)
	}
	if b > a {
		t.Errorf("premultiplied byte %d exceeds alpha %d", b, a)
	}
}

func TestImageConversion(t *testing.T) {
	canvas := NewCanvas(2, 1, Rect{X: 1, Y: 2, W: 3, H: 4})
	setPixel(canvas, 0, 0, 10, 20, 30, 255)
	setPixel(canvas, 1, 0, 40, 50, 60, 255)

	img := canvas.Image()
	if got := img.Pix[0:4]; got[0] != 10 || got[1] != 20 || got[2] != 30 || got[3] != 255 {
		t.Errorf("RGBA order mismatch: %v", got)
	}

	back := FromImage(img, canvas.Extents)
	if back.Extents != canvas.Extents {
		t.Errorf("extents not preserved: %+v", back.Extents)
	}
	for i := range canvas.Pix {
		if canvas.Pix[i] != back.Pix[i] {
			t.Fatalf("byte %d differs after round trip", i)
		}
	}
}

func TestEmptyCanvas(t *testing.T) {
	c := NewCanvas(0, 10, Rect{})
	if !c.IsEmpty() {
		t.Error("zero width canvas should be empty")
	}
	if c := NewCanvas(-3, -1, Rect{}); len(c.Pix) != 0 {
		t.Error("negative dimensions should yield no pixels")
	}
}
