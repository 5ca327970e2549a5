package filterimage

// Pixel is one linear premultiplied RGBA sample.
// The invariant 0 <= A <= 1 and 0 <= R,G,B <= A holds for published
// images; values may leave those bounds inside arithmetic blocks.
type Pixel struct {
	R, G, B, A float32
}

// FilterImage is an owned rectangular buffer of linear premultiplied
// pixels, in row-major order. Filter primitives consume and produce
// FilterImages of the source canvas dimensions.
type FilterImage struct {
	Width, Height int
	Pix           []Pixel
}

// NewFilterImage returns a fully transparent image.
func NewFilterImage(width, height int) *FilterImage {
	return &FilterImage{Width: width, Height: height, Pix: make([]Pixel, width*height)}
}

// Clone returns an independent copy of the image.
func (f *FilterImage) Clone() *FilterImage {
	out := NewFilterImage(f.Width, f.Height)
	copy(out.Pix, f.Pix)
	return out
}

// FromCanvas converts an 8-bit premultiplied sRGB canvas to a linear
// premultiplied float image.
// Opaque pixels go through the precomputed linear table; translucent
// pixels are unpremultiplied, linearized and premultiplied again.
func FromCanvas(c *Canvas) *FilterImage {
	img := NewFilterImage(c.Width, c.Height)
	for y := 0; y < c.Height; y++ {
		row := c.Pix[y*c.Stride:]
		out := img.Pix[y*c.Width:]
		for x := 0; x < c.Width; x++ {
			i := x * 4
			switch alpha := row[i+3]; alpha {
			case 0:
				// stays (0,0,0,0)
			case 255:
				out[x] = Pixel{
					R: linearTable[row[i+2]],
					G: linearTable[row[i+1]],
					B: linearTable[row[i+0]],
					A: 1,
				}
			default:
				a := float32(alpha) / 255
				out[x] = Pixel{
					R: ToLinear(float32(row[i+2])/255/a) * a,
					G: ToLinear(float32(row[i+1])/255/a) * a,
					B: ToLinear(float32(row[i+0])/255/a) * a,
					A: a,
				}
			}
		}
	}
	return img
}

// ToCanvas converts the image back to an 8-bit premultiplied sRGB
// canvas placed at the given extents. Color channels are clamped to
// the alpha value; pixels with near zero alpha are dropped.
func (f *FilterImage) ToCanvas(extents Rect) *Canvas {
	c := NewCanvas(f.Width, f.Height, extents)
	for y := 0; y < f.Height; y++ {
		in := f.Pix[y*f.Width:]
		row := c.Pix[y*c.Stride:]
		for x := 0; x < f.Width; x++ {
			i := x * 4
			p := in[x]
			switch a := p.A; {
			case a >= 1:
				row[i+3] = 255
				row[i+2] = toByte(ToSRGB(clamp01(p.R)))
				row[i+1] = toByte(ToSRGB(clamp01(p.G)))
				row[i+0] = toByte(ToSRGB(clamp01(p.B)))
			case a > 1e-4:
				row[i+3] = toByte(a)
				row[i+2] = toByte(ToSRGB(clamp01(p.R/a)) * a)
				row[i+1] = toByte(ToSRGB(clamp01(p.G/a)) * a)
				row[i+0] = toByte(ToSRGB(clamp01(p.B/a)) * a)
			default:
				// stays zeroed
			}
		}
	}
	return c
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
