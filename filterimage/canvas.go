// Provides the pixel buffers used by the filter pipeline:
// an 8-bit premultiplied sRGB canvas, as painted by a rasterizer,
// and a float image in linear premultiplied space, where the
// filter primitives do their arithmetic.
package filterimage

import "image"

// Rect is a floating-point rectangle, giving the placement
// of a canvas in user space.
type Rect struct{ X, Y, W, H float64 }

// Canvas is a rasterized pixel region: 8-bit premultiplied sRGB,
// in memory order B,G,R,A (little-endian ARGB), the layout
// produced by most 2D rasterizers.
type Canvas struct {
	Width, Height int
	Stride        int // bytes per row, at least 4*Width
	Pix           []uint8
	Extents       Rect // placement in user space
}

// NewCanvas returns a transparent canvas of the given dimensions.
// Zero or negative dimensions yield an empty canvas.
func NewCanvas(width, height int, extents Rect) *Canvas {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Canvas{
		Width:   width,
		Height:  height,
		Stride:  4 * width,
		Pix:     make([]uint8, 4*width*height),
		Extents: extents,
	}
}

// IsEmpty reports whether the canvas has no pixels.
func (c *Canvas) IsEmpty() bool { return c.Width <= 0 || c.Height <= 0 }

// Image copies the canvas into a stdlib RGBA image (premultiplied),
// swapping the byte order, so that callers may encode it to PNG.
func (c *Canvas) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		src := c.Pix[y*c.Stride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < c.Width; x++ {
			i := x * 4
			dst[i+0] = src[i+2]
			dst[i+1] = src[i+1]
			dst[i+2] = src[i+0]
			dst[i+3] = src[i+3]
		}
	}
	return img
}

// FromImage copies a stdlib RGBA image (premultiplied) into a canvas,
// swapping the byte order.
func FromImage(img *image.RGBA, extents Rect) *Canvas {
	b := img.Bounds()
	c := NewCanvas(b.Dx(), b.Dy(), extents)
	for y := 0; y < c.Height; y++ {
		src := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		dst := c.Pix[y*c.Stride:]
		for x := 0; x < c.Width; x++ {
			i := x * 4
			dst[i+0] = src[i+2]
			dst[i+1] = src[i+1]
			dst[i+2] = src[i+0]
			dst[i+3] = src[i+3]
		}
	}
	return c
}
