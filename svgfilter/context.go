package svgfilter

import "github.com/benoitkugler/okfilter/filterimage"

// FilterContext holds the intermediate images of one filter graph
// evaluation: a registry of named results and the "last result" slot.
// It lives for exactly one ApplyFilter call.
type FilterContext struct {
	sourceGraphic *filterimage.FilterImage
	sourceAlpha   *filterimage.FilterImage
	results       map[string]*filterimage.FilterImage
	lastResult    *filterimage.FilterImage
}

// NewFilterContext converts the source canvas and seeds the two
// built-in inputs "SourceGraphic" and "SourceAlpha"; the last result
// starts as the source graphic.
func NewFilterContext(source *filterimage.Canvas) *FilterContext {
	sourceGraphic := filterimage.FromCanvas(source)
	sourceAlpha := filterimage.NewFilterImage(sourceGraphic.Width, sourceGraphic.Height)
	for i, p := range sourceGraphic.Pix {
		sourceAlpha.Pix[i] = filterimage.Pixel{A: p.A}
	}
	ctx := &FilterContext{
		sourceGraphic: sourceGraphic,
		sourceAlpha:   sourceAlpha,
		results: map[string]*filterimage.FilterImage{
			"SourceGraphic": sourceGraphic,
			"SourceAlpha":   sourceAlpha,
		},
		lastResult: sourceGraphic,
	}
	return ctx
}

// Input resolves a primitive input reference. The empty name means
// "previous result"; other names are looked up case-sensitively.
// Unknown names return nil and the caller is expected to skip the
// primitive without touching the context.
func (c *FilterContext) Input(in string) *filterimage.FilterImage {
	if in == "" {
		return c.lastResult
	}
	return c.results[in]
}

// AddResult publishes an image: it always becomes the last result,
// and is additionally registered (insert or replace) when the result
// name is non-empty. Published images must not be mutated afterwards.
func (c *FilterContext) AddResult(result string, image *filterimage.FilterImage) {
	c.lastResult = image
	if result != "" {
		c.results[result] = image
	}
}
