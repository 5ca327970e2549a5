package svgfilter

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// attribute value parsing helpers, shared by the fe* element readers

var (
	errParamMismatch  = errors.New("param mismatch")
	errNegativeLength = errors.New("negative length not allowed")
)

func parseBasicFloat(s string) (float32, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	return float32(f), err
}

// splitOnCommaOrSpace returns a list of strings after splitting the input on comma and whitespace delimiters
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})
}

// parseNumberList reads a whitespace or comma separated list of
// numbers, such as the stdDeviation or values attributes.
func parseNumberList(s string) ([]float32, error) {
	fields := splitOnCommaOrSpace(s)
	if len(fields) == 0 {
		return nil, nil
	}
	values := make([]float32, len(fields))
	for i, field := range fields {
		f, err := parseBasicFloat(field)
		if err != nil {
			return nil, err
		}
		values[i] = f
	}
	return values, nil
}

// parseLength reads a number with an optional % or px suffix.
// Negative values are rejected when allowNegative is false.
func parseLength(s string, allowNegative bool) (Length, error) {
	s = strings.TrimSpace(s)
	unit := NoUnit
	switch {
	case strings.HasSuffix(s, "%"):
		unit = Percent
		s = strings.TrimSuffix(s, "%")
	case strings.HasSuffix(s, "px"):
		unit = Px
		s = strings.TrimSuffix(s, "px")
	}
	value, err := parseBasicFloat(s)
	if err != nil {
		return Length{}, err
	}
	if value < 0 && !allowNegative {
		return Length{}, errNegativeLength
	}
	return Length{Value: value, Unit: unit}, nil
}

// parseOpacity reads a number or percentage, clamped to [0,1].
func parseOpacity(s string) (float32, error) {
	s = strings.TrimSpace(s)
	divisor := float32(1)
	if strings.HasSuffix(s, "%") {
		divisor = 100
		s = strings.TrimSuffix(s, "%")
	}
	value, err := parseBasicFloat(s)
	if err != nil {
		return 0, err
	}
	value /= divisor
	if value < 0 {
		value = 0
	} else if value > 1 {
		value = 1
	}
	return value, nil
}

var blendModes = map[string]BlendMode{
	"normal":   BlendNormal,
	"multiply": BlendMultiply,
	"screen":   BlendScreen,
	"darken":   BlendDarken,
	"lighten":  BlendLighten,
}

var compositeOperators = map[string]CompositeOperator{
	"over":       CompositeOver,
	"in":         CompositeIn,
	"out":        CompositeOut,
	"atop":       CompositeAtop,
	"xor":        CompositeXor,
	"arithmetic": CompositeArithmetic,
}

var colorMatrixTypes = map[string]ColorMatrixType{
	"matrix":           MatrixValues,
	"saturate":         MatrixSaturate,
	"hueRotate":        MatrixHueRotate,
	"luminanceToAlpha": MatrixLuminanceToAlpha,
}

var unitsValues = map[string]Units{
	"objectBoundingBox": ObjectBoundingBox,
	"userSpaceOnUse":    UserSpaceOnUse,
}
