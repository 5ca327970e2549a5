package svgfilter

import (
	"math"

	"github.com/benoitkugler/okfilter/filterimage"
)

// One descriptor type per filter primitive. Each knows how to consume
// its inputs from the context and publish a new image; a primitive
// whose input reference cannot be resolved is a no-op.

// Primitive is one operation of a filter graph.
type Primitive interface {
	// Render reads the primitive inputs from the context and
	// publishes the resulting image.
	Render(c *FilterContext)
}

// BlendMode is the type for feBlend modes.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota
	BlendMultiply
	BlendScreen
	BlendDarken
	BlendLighten
)

func (m BlendMode) String() string {
	switch m {
	case BlendNormal:
		return "normal"
	case BlendMultiply:
		return "multiply"
	case BlendScreen:
		return "screen"
	case BlendDarken:
		return "darken"
	case BlendLighten:
		return "lighten"
	default:
		return "<unknown BlendMode>"
	}
}

// CompositeOperator is the type for feComposite operators.
type CompositeOperator uint8

const (
	CompositeOver CompositeOperator = iota
	CompositeIn
	CompositeOut
	CompositeAtop
	CompositeXor
	CompositeArithmetic
)

func (op CompositeOperator) String() string {
	switch op {
	case CompositeOver:
		return "over"
	case CompositeIn:
		return "in"
	case CompositeOut:
		return "out"
	case CompositeAtop:
		return "atop"
	case CompositeXor:
		return "xor"
	case CompositeArithmetic:
		return "arithmetic"
	default:
		return "<unknown CompositeOperator>"
	}
}

// ColorMatrixType is the type for feColorMatrix variants.
type ColorMatrixType uint8

const (
	MatrixValues ColorMatrixType = iota
	MatrixSaturate
	MatrixHueRotate
	MatrixLuminanceToAlpha
)

func (t ColorMatrixType) String() string {
	switch t {
	case MatrixValues:
		return "matrix"
	case MatrixSaturate:
		return "saturate"
	case MatrixHueRotate:
		return "hueRotate"
	case MatrixLuminanceToAlpha:
		return "luminanceToAlpha"
	default:
		return "<unknown ColorMatrixType>"
	}
}

// FeGaussianBlur approximates a Gaussian blur of its input.
type FeGaussianBlur struct {
	In, Result   string
	StdDeviation []float32 // one or two values; empty means identity
}

func stdDeviations(values []float32) (x, y float32) {
	if len(values) == 0 {
		return 0, 0
	}
	x = values[0]
	y = x
	if len(values) > 1 {
		y = values[1]
	}
	// negative deviations are malformed, fall back to identity
	if x < 0 || y < 0 {
		return 0, 0
	}
	return x, y
}

func (fe *FeGaussianBlur) Render(c *FilterContext) {
	input := c.Input(fe.In)
	if input == nil {
		return
	}
	result := input.Clone()
	stdDevX, stdDevY := stdDeviations(fe.StdDeviation)
	result.GaussianBlur(stdDevX, stdDevY)
	c.AddResult(fe.Result, result)
}

// FeOffset translates its input by an integer-rounded vector,
// filling uncovered pixels with transparent black.
type FeOffset struct {
	In, Result string
	Dx, Dy     float32
}

func offsetImage(input *filterimage.FilterImage, dx, dy float32) *filterimage.FilterImage {
	w, h := input.Width, input.Height
	result := filterimage.NewFilterImage(w, h)
	ox := int(math.Round(float64(dx)))
	oy := int(math.Round(float64(dy)))
	for y := 0; y < h; y++ {
		sy := y - oy
		if sy < 0 || sy >= h {
			continue
		}
		for x := 0; x < w; x++ {
			sx := x - ox
			if sx >= 0 && sx < w {
				result.Pix[y*w+x] = input.Pix[sy*w+sx]
			}
		}
	}
	return result
}

func (fe *FeOffset) Render(c *FilterContext) {
	input := c.Input(fe.In)
	if input == nil {
		return
	}
	c.AddResult(fe.Result, offsetImage(input, fe.Dx, fe.Dy))
}

// FeDropShadow composites its input over a blurred, offset,
// flood-colored copy of its own alpha.
type FeDropShadow struct {
	In, Result   string
	StdDeviation []float32
	Dx, Dy       float32
	FloodColor   Color
	FloodOpacity float32
}

func (fe *FeDropShadow) Render(c *FilterContext) {
	input := c.Input(fe.In)
	if input == nil {
		return
	}
	w, h := input.Width, input.Height

	// shadow plate: flood color carried by the input alpha
	shadow := filterimage.NewFilterImage(w, h)
	flood := floodPixel(fe.FloodColor, fe.FloodOpacity)
	for i, p := range input.Pix {
		shadow.Pix[i] = filterimage.Pixel{R: flood.R, G: flood.G, B: flood.B, A: p.A * flood.A}
	}

	stdDevX, stdDevY := stdDeviations(fe.StdDeviation)
	shadow.GaussianBlur(stdDevX, stdDevY)
	shadow = offsetImage(shadow, fe.Dx, fe.Dy)

	// source over shadow, in linear premultiplied space
	result := filterimage.NewFilterImage(w, h)
	for i, g := range input.Pix {
		s := shadow.Pix[i]
		result.Pix[i] = filterimage.Pixel{
			R: g.R + s.R*(1-g.A),
			G: g.G + s.G*(1-g.A),
			B: g.B + s.B*(1-g.A),
			A: g.A + s.A*(1-g.A),
		}
	}
	c.AddResult(fe.Result, result)
}

// FeMergeNode is one input of an FeMerge stack.
type FeMergeNode struct {
	In string
}

// FeMerge composites its children in order, each over the previous
// ones, onto a transparent accumulator of the source dimensions.
type FeMerge struct {
	Result string
	Nodes  []FeMergeNode
}

func (fe *FeMerge) Render(c *FilterContext) {
	w, h := c.sourceGraphic.Width, c.sourceGraphic.Height
	result := filterimage.NewFilterImage(w, h)
	for _, node := range fe.Nodes {
		input := c.Input(node.In)
		if input == nil {
			continue
		}
		for i, s := range input.Pix {
			d := result.Pix[i]
			result.Pix[i] = filterimage.Pixel{
				R: s.R + d.R*(1-s.A),
				G: s.G + d.G*(1-s.A),
				B: s.B + d.B*(1-s.A),
				A: s.A + d.A*(1-s.A),
			}
		}
	}
	c.AddResult(fe.Result, result)
}

// FeFlood fills the filter region with a single color.
type FeFlood struct {
	Result       string
	FloodColor   Color
	FloodOpacity float32
}

// floodPixel converts an sRGB flood color and opacity to a linear
// premultiplied pixel.
func floodPixel(color Color, opacity float32) filterimage.Pixel {
	return filterimage.Pixel{
		R: filterimage.ToLinear(color.RedF()) * opacity,
		G: filterimage.ToLinear(color.GreenF()) * opacity,
		B: filterimage.ToLinear(color.BlueF()) * opacity,
		A: opacity,
	}
}

func (fe *FeFlood) Render(c *FilterContext) {
	w, h := c.sourceGraphic.Width, c.sourceGraphic.Height
	result := filterimage.NewFilterImage(w, h)
	flood := floodPixel(fe.FloodColor, fe.FloodOpacity)
	for i := range result.Pix {
		result.Pix[i] = flood
	}
	c.AddResult(fe.Result, result)
}

// FeBlend mixes two inputs with one of the CSS blend modes.
type FeBlend struct {
	In, In2, Result string
	Mode            BlendMode
}

func (fe *FeBlend) Render(c *FilterContext) {
	source := c.Input(fe.In)
	dest := c.Input(fe.In2)
	if source == nil || dest == nil {
		return
	}
	w, h := source.Width, source.Height
	result := filterimage.NewFilterImage(w, h)
	for i, s := range source.Pix {
		d := dest.Pix[i]
		if fe.Mode == BlendNormal {
			result.Pix[i] = filterimage.Pixel{
				R: s.R + d.R*(1-s.A),
				G: s.G + d.G*(1-s.A),
				B: s.B + d.B*(1-s.A),
				A: s.A + d.A*(1-s.A),
			}
			continue
		}
		// separable modes work on unpremultiplied channels
		var sr, sg, sb float32
		if s.A > 0 {
			sr, sg, sb = s.R/s.A, s.G/s.A, s.B/s.A
		}
		var dr, dg, db float32
		if d.A > 0 {
			dr, dg, db = d.R/d.A, d.G/d.A, d.B/d.A
		}
		var fr, fg, fb float32
		switch fe.Mode {
		case BlendMultiply:
			fr, fg, fb = sr*dr, sg*dg, sb*db
		case BlendScreen:
			fr, fg, fb = sr+dr-sr*dr, sg+dg-sg*dg, sb+db-sb*db
		case BlendDarken:
			fr, fg, fb = minf(sr, dr), minf(sg, dg), minf(sb, db)
		case BlendLighten:
			fr, fg, fb = maxf(sr, dr), maxf(sg, dg), maxf(sb, db)
		}
		sada := s.A * d.A
		result.Pix[i] = filterimage.Pixel{
			R: fr*sada + s.R*(1-d.A) + d.R*(1-s.A),
			G: fg*sada + s.G*(1-d.A) + d.G*(1-s.A),
			B: fb*sada + s.B*(1-d.A) + d.B*(1-s.A),
			A: s.A + d.A - sada,
		}
	}
	c.AddResult(fe.Result, result)
}

// FeComposite combines two inputs with a Porter-Duff operator or the
// arithmetic mode.
type FeComposite struct {
	In, In2, Result string
	Operator        CompositeOperator
	K1, K2, K3, K4  float32
}

func (fe *FeComposite) Render(c *FilterContext) {
	source := c.Input(fe.In)
	dest := c.Input(fe.In2)
	if source == nil || dest == nil {
		return
	}
	w, h := source.Width, source.Height
	result := filterimage.NewFilterImage(w, h)
	k1, k2, k3, k4 := fe.K1, fe.K2, fe.K3, fe.K4
	for i, s := range source.Pix {
		d := dest.Pix[i]
		if fe.Operator == CompositeArithmetic {
			na := clampf(k1*s.A*d.A+k2*s.A+k3*d.A+k4, 0, 1)
			if na <= 0 {
				continue
			}
			var sr, sg, sb float32
			if s.A > 0 {
				sr, sg, sb = s.R/s.A, s.G/s.A, s.B/s.A
			}
			var dr, dg, db float32
			if d.A > 0 {
				dr, dg, db = d.R/d.A, d.G/d.A, d.B/d.A
			}
			result.Pix[i] = filterimage.Pixel{
				R: clampf(k1*sr*dr+k2*sr+k3*dr+k4, 0, 1) * na,
				G: clampf(k1*sg*dg+k2*sg+k3*dg+k4, 0, 1) * na,
				B: clampf(k1*sb*db+k2*sb+k3*db+k4, 0, 1) * na,
				A: na,
			}
			continue
		}
		var fa, fb float32
		switch fe.Operator {
		case CompositeOver:
			fa, fb = 1, 1-s.A
		case CompositeIn:
			fa, fb = d.A, 0
		case CompositeOut:
			fa, fb = 1-d.A, 0
		case CompositeAtop:
			fa, fb = d.A, 1-s.A
		case CompositeXor:
			fa, fb = 1-d.A, 1-s.A
		}
		result.Pix[i] = filterimage.Pixel{
			R: s.R*fa + d.R*fb,
			G: s.G*fa + d.G*fb,
			B: s.B*fa + d.B*fb,
			A: s.A*fa + d.A*fb,
		}
	}
	c.AddResult(fe.Result, result)
}

// FeColorMatrix applies a 4x5 matrix to unpremultiplied channels.
type FeColorMatrix struct {
	In, Result string
	Type       ColorMatrixType
	Values     []float32
}

// colorMatrix builds the 20-entry row-major matrix, or nil for the
// identity.
func (fe *FeColorMatrix) colorMatrix() []float32 {
	switch fe.Type {
	case MatrixValues:
		if len(fe.Values) == 0 {
			return nil
		}
		m := make([]float32, 20)
		copy(m, fe.Values)
		return m
	case MatrixSaturate:
		s := float32(1)
		if len(fe.Values) > 0 {
			s = fe.Values[0]
		}
		return []float32{
			0.213 + 0.787*s, 0.715 - 0.715*s, 0.072 - 0.072*s, 0, 0,
			0.213 - 0.213*s, 0.715 + 0.285*s, 0.072 - 0.072*s, 0, 0,
			0.213 - 0.213*s, 0.715 - 0.715*s, 0.072 + 0.928*s, 0, 0,
			0, 0, 0, 1, 0,
		}
	case MatrixHueRotate:
		var degrees float32
		if len(fe.Values) > 0 {
			degrees = fe.Values[0]
		}
		theta := float64(degrees) * math.Pi / 180
		cos, sin := float32(math.Cos(theta)), float32(math.Sin(theta))
		return []float32{
			0.213 + cos*0.787 - sin*0.213, 0.715 - cos*0.715 - sin*0.715, 0.072 - cos*0.072 + sin*0.928, 0, 0,
			0.213 - cos*0.213 + sin*0.143, 0.715 + cos*0.285 + sin*0.140, 0.072 - cos*0.072 - sin*0.283, 0, 0,
			0.213 - cos*0.213 - sin*0.787, 0.715 - cos*0.715 + sin*0.715, 0.072 + cos*0.928 + sin*0.072, 0, 0,
			0, 0, 0, 1, 0,
		}
	case MatrixLuminanceToAlpha:
		return []float32{
			0, 0, 0, 0, 0,
			0, 0, 0, 0, 0,
			0, 0, 0, 0, 0,
			0.2125, 0.7154, 0.0721, 0, 0,
		}
	}
	return nil
}

func (fe *FeColorMatrix) Render(c *FilterContext) {
	input := c.Input(fe.In)
	if input == nil {
		return
	}
	m := fe.colorMatrix()
	if m == nil {
		c.AddResult(fe.Result, input.Clone())
		return
	}
	w, h := input.Width, input.Height
	result := filterimage.NewFilterImage(w, h)
	for i, s := range input.Pix {
		if s.A <= 0 {
			continue
		}
		r, g, b := s.R/s.A, s.G/s.A, s.B/s.A
		nr := m[0]*r + m[1]*g + m[2]*b + m[3]*s.A + m[4]
		ng := m[5]*r + m[6]*g + m[7]*b + m[8]*s.A + m[9]
		nb := m[10]*r + m[11]*g + m[12]*b + m[13]*s.A + m[14]
		na := clampf(m[15]*r+m[16]*g+m[17]*b+m[18]*s.A+m[19], 0, 1)
		// color channels are deliberately not clamped here; the
		// sRGB conversion clamps at the canvas boundary
		result.Pix[i] = filterimage.Pixel{R: nr * na, G: ng * na, B: nb * na, A: na}
	}
	c.AddResult(fe.Result, result)
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
