// Implements the raster filter-effect pipeline of SVG:
// parsing of <filter> elements into primitive descriptors, and their
// evaluation over a rasterized source graphic, in linear
// premultiplied color space.
// The rasterizer producing the source is a separate concern;
// see okfilter/svgraster for a rasterx backed implementation.
package svgfilter

import "github.com/benoitkugler/okfilter/filterimage"

// Units selects the coordinate system of the filter region or of the
// primitive parameters.
type Units uint8

const (
	ObjectBoundingBox Units = iota
	UserSpaceOnUse
)

func (u Units) String() string {
	switch u {
	case ObjectBoundingBox:
		return "objectBoundingBox"
	case UserSpaceOnUse:
		return "userSpaceOnUse"
	default:
		return "<unknown Units>"
	}
}

// LengthUnit is the unit tag of a Length.
type LengthUnit uint8

const (
	NoUnit LengthUnit = iota
	Percent
	Px
)

// Length is a number with an optional unit, as found in the filter
// geometry attributes.
type Length struct {
	Value float32
	Unit  LengthUnit
}

// Filter is the parsed description of one <filter> element: the
// filter region, its units, and the primitives in document order.
type Filter struct {
	// region, relative to the object bounding box by default
	X, Y, Width, Height Length

	FilterUnits    Units
	PrimitiveUnits Units

	Primitives []Primitive
}

// NewFilter returns a filter with the SVG default region
// (-10%, -10%, 120%, 120%) and units, and no primitives.
func NewFilter() *Filter {
	return &Filter{
		X:              Length{-10, Percent},
		Y:              Length{-10, Percent},
		Width:          Length{120, Percent},
		Height:         Length{120, Percent},
		FilterUnits:    ObjectBoundingBox,
		PrimitiveUnits: UserSpaceOnUse,
	}
}

// ApplyFilter evaluates the filter graph over the source canvas and
// returns the filtered result, a new canvas of the source dimensions
// and extents. Primitives run in document order; a primitive with an
// unresolved input leaves the context untouched. A degenerate source
// yields an empty canvas.
func ApplyFilter(filter *Filter, source *filterimage.Canvas) *filterimage.Canvas {
	if source.IsEmpty() {
		return filterimage.NewCanvas(0, 0, source.Extents)
	}
	ctx := NewFilterContext(source)
	for _, primitive := range filter.Primitives {
		primitive.Render(ctx)
	}
	return ctx.lastResult.ToCanvas(source.Extents)
}
