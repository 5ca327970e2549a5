package svgfilter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Color is an 8-bit sRGB color, as written in presentation
// attributes such as flood-color.
type Color struct {
	R, G, B, A uint8
}

// RedF returns the red channel as a float in [0,1].
func (c Color) RedF() float32 { return float32(c.R) / 255 }

// GreenF returns the green channel as a float in [0,1].
func (c Color) GreenF() float32 { return float32(c.G) / 255 }

// BlueF returns the blue channel as a float in [0,1].
func (c Color) BlueF() float32 { return float32(c.B) / 255 }

var errInvalidColor = errors.New("invalid color specification")

// the CSS2 keyword set, plus common aliases; "none" and
// "transparent" map to fully transparent black
var namedColors = map[string]Color{
	"none":        {},
	"transparent": {},

	"aqua":    {0x00, 0xff, 0xff, 0xff},
	"black":   {0x00, 0x00, 0x00, 0xff},
	"blue":    {0x00, 0x00, 0xff, 0xff},
	"fuchsia": {0xff, 0x00, 0xff, 0xff},
	"gray":    {0x80, 0x80, 0x80, 0xff},
	"green":   {0x00, 0x80, 0x00, 0xff},
	"grey":    {0x80, 0x80, 0x80, 0xff},
	"lime":    {0x00, 0xff, 0x00, 0xff},
	"magenta": {0xff, 0x00, 0xff, 0xff},
	"maroon":  {0x80, 0x00, 0x00, 0xff},
	"navy":    {0x00, 0x00, 0x80, 0xff},
	"olive":   {0x80, 0x80, 0x00, 0xff},
	"orange":  {0xff, 0xa5, 0x00, 0xff},
	"purple":  {0x80, 0x00, 0x80, 0xff},
	"red":     {0xff, 0x00, 0x00, 0xff},
	"silver":  {0xc0, 0xc0, 0xc0, 0xff},
	"teal":    {0x00, 0x80, 0x80, 0xff},
	"white":   {0xff, 0xff, 0xff, 0xff},
	"yellow":  {0xff, 0xff, 0x00, 0xff},
}

func parseColorComponent(s string) (uint8, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, err
		}
		if f < 0 {
			f = 0
		} else if f > 100 {
			f = 100
		}
		return uint8(f/100*255 + 0.5), nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		v = 0
	} else if v > 255 {
		v = 255
	}
	return uint8(v), nil
}

func hexNibble(b byte) (uint8, bool) {
	switch {
	case '0' <= b && b <= '9':
		return b - '0', true
	case 'a' <= b && b <= 'f':
		return b - 'a' + 10, true
	case 'A' <= b && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

// parseSVGColor reads the color formats allowed by SVG presentation
// attributes: #rgb, #rrggbb, rgb()/rgba() with integer or percentage
// components, and color keywords.
func parseSVGColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if named, ok := namedColors[strings.ToLower(s)]; ok {
		return named, nil
	}
	switch {
	case strings.HasPrefix(s, "#"):
		hex := s[1:]
		switch len(hex) {
		case 3:
			var nibbles [3]uint8
			for i := 0; i < 3; i++ {
				n, ok := hexNibble(hex[i])
				if !ok {
					return Color{}, errInvalidColor
				}
				nibbles[i] = n<<4 | n
			}
			return Color{nibbles[0], nibbles[1], nibbles[2], 0xff}, nil
		case 6:
			var bytes [3]uint8
			for i := 0; i < 3; i++ {
				hi, ok1 := hexNibble(hex[2*i])
				lo, ok2 := hexNibble(hex[2*i+1])
				if !ok1 || !ok2 {
					return Color{}, errInvalidColor
				}
				bytes[i] = hi<<4 | lo
			}
			return Color{bytes[0], bytes[1], bytes[2], 0xff}, nil
		}
		return Color{}, errInvalidColor
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		parts := strings.Split(s[len("rgb("):len(s)-1], ",")
		if len(parts) != 3 {
			return Color{}, errInvalidColor
		}
		var c Color
		c.A = 0xff
		var err error
		if c.R, err = parseColorComponent(parts[0]); err != nil {
			return Color{}, err
		}
		if c.G, err = parseColorComponent(parts[1]); err != nil {
			return Color{}, err
		}
		if c.B, err = parseColorComponent(parts[2]); err != nil {
			return Color{}, err
		}
		return c, nil
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		parts := strings.Split(s[len("rgba("):len(s)-1], ",")
		if len(parts) != 4 {
			return Color{}, errInvalidColor
		}
		var c Color
		var err error
		if c.R, err = parseColorComponent(parts[0]); err != nil {
			return Color{}, err
		}
		if c.G, err = parseColorComponent(parts[1]); err != nil {
			return Color{}, err
		}
		if c.B, err = parseColorComponent(parts[2]); err != nil {
			return Color{}, err
		}
		alpha, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return Color{}, err
		}
		if alpha < 0 {
			alpha = 0
		} else if alpha > 1 {
			alpha = 1
		}
		c.A = uint8(alpha*255 + 0.5)
		return c, nil
	}
	return Color{}, fmt.Errorf("unsupported color: %s", s)
}
