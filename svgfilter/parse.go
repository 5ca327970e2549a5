package svgfilter

import (
	"encoding/xml"
	"errors"
	"io"
	"log"
	"os"

	"golang.org/x/net/html/charset"
)

// ErrorMode determines how the parser reacts to unsupported elements
// and malformed attributes.
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unsupported content silently.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode logs unsupported content and continues.
	WarnErrorMode
	// StrictErrorMode aborts parsing on unsupported content.
	StrictErrorMode
)

var errNoFilter = errors.New("no filter element found")

// filterCursor is used while parsing filter elements
type filterCursor struct {
	filter    *Filter
	merge     *FeMerge // non-nil while inside an feMerge element
	errorMode ErrorMode
}

func (c *filterCursor) handleError(s string) error {
	switch c.errorMode {
	case StrictErrorMode:
		return errors.New(s)
	case WarnErrorMode:
		log.Println(s)
	}
	return nil
}

type feFunc func(c *filterCursor, attrs []xml.Attr) error

var feFuncs = map[string]feFunc{
	"filter":         filterF,
	"feGaussianBlur": feGaussianBlurF,
	"feOffset":       feOffsetF,
	"feDropShadow":   feDropShadowF,
	"feMerge":        feMergeF,
	"feMergeNode":    feMergeNodeF,
	"feFlood":        feFloodF,
	"feBlend":        feBlendF,
	"feComposite":    feCompositeF,
	"feColorMatrix":  feColorMatrixF,
}

// ReadFilterStream reads the first <filter> element from the given
// stream, which may be a whole SVG document. Unsupported elements and
// malformed attribute values are handled according to errMode;
// attributes outside the supported subset are ignored in every mode.
func ReadFilterStream(stream io.Reader, errMode ErrorMode) (*Filter, error) {
	cursor := &filterCursor{errorMode: errMode}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				return nil, errNoFilter
			}
			return nil, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			name := se.Name.Local
			if cursor.filter == nil {
				if name == "filter" {
					if err := filterF(cursor, se.Attr); err != nil {
						return nil, err
					}
				}
				continue
			}
			df, ok := feFuncs[name]
			if !ok {
				if err := cursor.handleError("cannot process filter element " + name); err != nil {
					return nil, err
				}
				continue
			}
			if err := df(cursor, se.Attr); err != nil {
				return nil, err
			}
		case xml.EndElement:
			switch se.Name.Local {
			case "feMerge":
				if cursor.merge != nil {
					cursor.filter.Primitives = append(cursor.filter.Primitives, cursor.merge)
					cursor.merge = nil
				}
			case "filter":
				if cursor.filter != nil {
					return cursor.filter, nil
				}
			}
		}
	}
}

// ReadFilter reads the first <filter> element from the named file.
func ReadFilter(path string, errMode ErrorMode) (*Filter, error) {
	fin, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return ReadFilterStream(fin, errMode)
}

// addPrimitive appends outside of an feMerge block; an feMergeNode
// is only legal inside one.
func (c *filterCursor) addPrimitive(p Primitive) {
	c.filter.Primitives = append(c.filter.Primitives, p)
}

func filterF(c *filterCursor, attrs []xml.Attr) error {
	c.filter = NewFilter()
	for _, attr := range attrs {
		var err error
		var length Length
		switch attr.Name.Local {
		case "x":
			if length, err = parseLength(attr.Value, true); err == nil {
				c.filter.X = length
			}
		case "y":
			if length, err = parseLength(attr.Value, true); err == nil {
				c.filter.Y = length
			}
		case "width":
			if length, err = parseLength(attr.Value, false); err == nil {
				c.filter.Width = length
			}
		case "height":
			if length, err = parseLength(attr.Value, false); err == nil {
				c.filter.Height = length
			}
		case "filterUnits":
			units, ok := unitsValues[attr.Value]
			if !ok {
				err = errParamMismatch
				break
			}
			c.filter.FilterUnits = units
		case "primitiveUnits":
			units, ok := unitsValues[attr.Value]
			if !ok {
				err = errParamMismatch
				break
			}
			c.filter.PrimitiveUnits = units
		}
		if err != nil {
			if errh := c.handleError("invalid filter attribute " + attr.Name.Local + ": " + attr.Value); errh != nil {
				return errh
			}
		}
	}
	return nil
}

func feGaussianBlurF(c *filterCursor, attrs []xml.Attr) error {
	fe := &FeGaussianBlur{}
	for _, attr := range attrs {
		var err error
		switch attr.Name.Local {
		case "in":
			fe.In = attr.Value
		case "result":
			fe.Result = attr.Value
		case "stdDeviation":
			fe.StdDeviation, err = parseNumberList(attr.Value)
		}
		if err != nil {
			if errh := c.handleError("invalid feGaussianBlur attribute " + attr.Name.Local + ": " + attr.Value); errh != nil {
				return errh
			}
		}
	}
	c.addPrimitive(fe)
	return nil
}

func feOffsetF(c *filterCursor, attrs []xml.Attr) error {
	fe := &FeOffset{}
	for _, attr := range attrs {
		var err error
		switch attr.Name.Local {
		case "in":
			fe.In = attr.Value
		case "result":
			fe.Result = attr.Value
		case "dx":
			fe.Dx, err = parseBasicFloat(attr.Value)
		case "dy":
			fe.Dy, err = parseBasicFloat(attr.Value)
		}
		if err != nil {
			if errh := c.handleError("invalid feOffset attribute " + attr.Name.Local + ": " + attr.Value); errh != nil {
				return errh
			}
		}
	}
	c.addPrimitive(fe)
	return nil
}

func feDropShadowF(c *filterCursor, attrs []xml.Attr) error {
	fe := &FeDropShadow{Dx: 2, Dy: 2, FloodColor: Color{A: 0xff}, FloodOpacity: 1}
	for _, attr := range attrs {
		var err error
		switch attr.Name.Local {
		case "in":
			fe.In = attr.Value
		case "result":
			fe.Result = attr.Value
		case "stdDeviation":
			fe.StdDeviation, err = parseNumberList(attr.Value)
		case "dx":
			fe.Dx, err = parseBasicFloat(attr.Value)
		case "dy":
			fe.Dy, err = parseBasicFloat(attr.Value)
		case "flood-color":
			fe.FloodColor, err = parseSVGColor(attr.Value)
		case "flood-opacity":
			fe.FloodOpacity, err = parseOpacity(attr.Value)
		}
		if err != nil {
			if errh := c.handleError("invalid feDropShadow attribute " + attr.Name.Local + ": " + attr.Value); errh != nil {
				return errh
			}
		}
	}
	c.addPrimitive(fe)
	return nil
}

func feMergeF(c *filterCursor, attrs []xml.Attr) error {
	fe := &FeMerge{}
	for _, attr := range attrs {
		if attr.Name.Local == "result" {
			fe.Result = attr.Value
		}
	}
	// nodes are attached by feMergeNodeF, the primitive is appended
	// on the closing tag
	c.merge = fe
	return nil
}

func feMergeNodeF(c *filterCursor, attrs []xml.Attr) error {
	if c.merge == nil {
		return c.handleError("feMergeNode outside feMerge")
	}
	node := FeMergeNode{}
	for _, attr := range attrs {
		if attr.Name.Local == "in" {
			node.In = attr.Value
		}
	}
	c.merge.Nodes = append(c.merge.Nodes, node)
	return nil
}

func feFloodF(c *filterCursor, attrs []xml.Attr) error {
	fe := &FeFlood{FloodColor: Color{A: 0xff}, FloodOpacity: 1}
	for _, attr := range attrs {
		var err error
		switch attr.Name.Local {
		case "result":
			fe.Result = attr.Value
		case "flood-color":
			fe.FloodColor, err = parseSVGColor(attr.Value)
		case "flood-opacity":
			fe.FloodOpacity, err = parseOpacity(attr.Value)
		}
		if err != nil {
			if errh := c.handleError("invalid feFlood attribute " + attr.Name.Local + ": " + attr.Value); errh != nil {
				return errh
			}
		}
	}
	c.addPrimitive(fe)
	return nil
}

func feBlendF(c *filterCursor, attrs []xml.Attr) error {
	fe := &FeBlend{}
	for _, attr := range attrs {
		var err error
		switch attr.Name.Local {
		case "in":
			fe.In = attr.Value
		case "in2":
			fe.In2 = attr.Value
		case "result":
			fe.Result = attr.Value
		case "mode":
			mode, ok := blendModes[attr.Value]
			if !ok {
				err = errParamMismatch
				break
			}
			fe.Mode = mode
		}
		if err != nil {
			if errh := c.handleError("invalid feBlend attribute " + attr.Name.Local + ": " + attr.Value); errh != nil {
				return errh
			}
		}
	}
	c.addPrimitive(fe)
	return nil
}

func feCompositeF(c *filterCursor, attrs []xml.Attr) error {
	fe := &FeComposite{}
	for _, attr := range attrs {
		var err error
		switch attr.Name.Local {
		case "in":
			fe.In = attr.Value
		case "in2":
			fe.In2 = attr.Value
		case "result":
			fe.Result = attr.Value
		case "operator":
			op, ok := compositeOperators[attr.Value]
			if !ok {
				err = errParamMismatch
				break
			}
			fe.Operator = op
		case "k1":
			fe.K1, err = parseBasicFloat(attr.Value)
		case "k2":
			fe.K2, err = parseBasicFloat(attr.Value)
		case "k3":
			fe.K3, err = parseBasicFloat(attr.Value)
		case "k4":
			fe.K4, err = parseBasicFloat(attr.Value)
		}
		if err != nil {
			if errh := c.handleError("invalid feComposite attribute " + attr.Name.Local + ": " + attr.Value); errh != nil {
				return errh
			}
		}
	}
	c.addPrimitive(fe)
	return nil
}

func feColorMatrixF(c *filterCursor, attrs []xml.Attr) error {
	fe := &FeColorMatrix{}
	for _, attr := range attrs {
		var err error
		switch attr.Name.Local {
		case "in":
			fe.In = attr.Value
		case "result":
			fe.Result = attr.Value
		case "type":
			matrixType, ok := colorMatrixTypes[attr.Value]
			if !ok {
				err = errParamMismatch
				break
			}
			fe.Type = matrixType
		case "values":
			fe.Values, err = parseNumberList(attr.Value)
		}
		if err != nil {
			if errh := c.handleError("invalid feColorMatrix attribute " + attr.Name.Local + ": " + attr.Value); errh != nil {
				return errh
			}
		}
	}
	c.addPrimitive(fe)
	return nil
}
