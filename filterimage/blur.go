package filterimage

import "math"

// Three-box approximation of a Gaussian blur, operating in place on
// linear premultiplied pixels. Since the input is premultiplied, all
// four channels are averaged identically.

// BlurRadius maps a standard deviation to the integer box radius of
// the standard three-box Gaussian approximation.
func BlurRadius(stdDeviation float32) int {
	return int(math.Floor(float64(stdDeviation)*3*math.Sqrt(2*math.Pi)/4+0.5)) / 2
}

// boxBlur runs one box blur pass of the given radius from src to dst.
// When horizontal is true rows are blurred, otherwise columns.
// The window is clamped at the edges: the first and last samples
// extend past the image bounds.
func boxBlur(src, dst []Pixel, width, height, radius int, horizontal bool) {
	if radius <= 0 {
		return
	}
	lines, length, step := height, width, 1
	if !horizontal {
		lines, length, step = width, height, width
	}
	iarr := 1 / float32(radius+radius+1)
	for i := 0; i < lines; i++ {
		head := i * width
		if !horizontal {
			head = i
		}
		ti := head
		fv := src[head]
		val := Pixel{
			R: float32(radius+1) * fv.R,
			G: float32(radius+1) * fv.G,
			B: float32(radius+1) * fv.B,
			A: float32(radius+1) * fv.A,
		}
		for j := 1; j <= radius; j++ {
			p := src[head+min(j, length-1)*step]
			val.R += p.R
			val.G += p.G
			val.B += p.B
			val.A += p.A
		}
		for j := 0; j < length; j++ {
			if j > 0 {
				in := src[head+min(j+radius, length-1)*step]
				out := src[head+max(j-radius-1, 0)*step]
				val.R += in.R - out.R
				val.G += in.G - out.G
				val.B += in.B - out.B
				val.A += in.A - out.A
			}
			px := Pixel{R: val.R * iarr, G: val.G * iarr, B: val.B * iarr, A: val.A * iarr}
			// the running sum leaves rounding residue once the window
			// has emptied; alpha is kept non-negative
			if px.A < 0 {
				px.A = 0
			}
			dst[ti] = px
			ti += step
		}
	}
}

// GaussianBlur blurs the image in place with the given standard
// deviations, running three box blur iterations per axis.
// A zero deviation skips the corresponding axis.
func (f *FilterImage) GaussianBlur(stdDevX, stdDevY float32) {
	if stdDevX <= 0 && stdDevY <= 0 {
		return
	}
	rx := BlurRadius(stdDevX)
	ry := BlurRadius(stdDevY)
	if rx <= 0 && ry <= 0 {
		return
	}
	tmp := make([]Pixel, len(f.Pix))
	for i := 0; i < 3; i++ {
		if rx > 0 {
			boxBlur(f.Pix, tmp, f.Width, f.Height, rx, true)
			copy(f.Pix, tmp)
		}
		if ry > 0 {
			boxBlur(f.Pix, tmp, f.Width, f.Height, ry, false)
			copy(f.Pix, tmp)
		}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
