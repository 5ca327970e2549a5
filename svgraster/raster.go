// Implements a raster source for the filter pipeline,
// by wrapping rasterx: filled paths are scanned into a premultiplied
// canvas, which seeds the SourceGraphic input of a filter graph.
package svgraster

import (
	"image"
	"image/color"

	"github.com/benoitkugler/okfilter/filterimage"
	"github.com/benoitkugler/okfilter/svgfilter"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// Renderer rasterizes filled paths into a canvas.
type Renderer struct {
	filler *rasterx.Filler
	img    *image.RGBA

	extents filterimage.Rect
}

// NewRenderer returns a renderer targeting a transparent canvas of
// the given dimensions, using a ScannerGV instance.
func NewRenderer(width, height int, extents filterimage.Rect) *Renderer {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	return &Renderer{
		filler:  rasterx.NewFiller(width, height, scanner),
		img:     img,
		extents: extents,
	}
}

// SetColor sets the fill color for the subsequent Draw call.
func (rd *Renderer) SetColor(c color.Color) {
	rd.filler.Scanner.SetColor(c)
}

// SetWinding selects the fill rule for the current path.
func (rd *Renderer) SetWinding(useNonZeroWinding bool) {
	rd.filler.SetWinding(useNonZeroWinding)
}

// Start starts a new path at the given point.
func (rd *Renderer) Start(a fixed.Point26_6) {
	rd.filler.Start(a)
}

// Line adds a line from the current point to b.
func (rd *Renderer) Line(b fixed.Point26_6) {
	rd.filler.Line(b)
}

// QuadBezier adds a quadratic bezier curve to the path.
func (rd *Renderer) QuadBezier(b, c fixed.Point26_6) {
	rd.filler.QuadBezier(b, c)
}

// CubeBezier adds a cubic bezier curve to the path.
func (rd *Renderer) CubeBezier(b, c, d fixed.Point26_6) {
	rd.filler.CubeBezier(b, c, d)
}

// Stop closes the path to the start point if closeLoop is true.
func (rd *Renderer) Stop(closeLoop bool) {
	rd.filler.Stop(closeLoop)
}

// DrawRect adds an axis aligned rectangle to the current path.
func (rd *Renderer) DrawRect(minX, minY, maxX, maxY float64) {
	rasterx.AddRect(minX, minY, maxX, maxY, 0, rd.filler)
}

// DrawCircle adds a circle to the current path.
func (rd *Renderer) DrawCircle(cx, cy, r float64) {
	rasterx.AddCircle(cx, cy, r, rd.filler)
}

// Draw fills the accumulated path with the current color and resets
// the path state.
func (rd *Renderer) Draw() {
	rd.filler.Draw()
	rd.filler.Clear()
}

// Canvas returns the rendered pixels as a premultiplied BGRA canvas.
func (rd *Renderer) Canvas() *filterimage.Canvas {
	return filterimage.FromImage(rd.img, rd.extents)
}

// RasterFiltered paints the source graphic through the given draw
// callback, then evaluates the filter graph over it and returns the
// filtered canvas.
func RasterFiltered(filter *svgfilter.Filter, width, height int, extents filterimage.Rect, draw func(*Renderer)) *filterimage.Canvas {
	rd := NewRenderer(width, height, extents)
	draw(rd)
	return svgfilter.ApplyFilter(filter, rd.Canvas())
}
