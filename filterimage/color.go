package filterimage

import "math"

// sRGB <-> linear light conversion.
// Filter arithmetic happens on linear premultiplied values;
// the gamma curve is only applied at the canvas boundaries.

// ToLinear removes the sRGB gamma from a color value in [0,1].
func ToLinear(c float32) float32 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return float32(math.Pow((float64(c)+0.055)/1.055, 2.4))
}

// ToSRGB applies the sRGB gamma to a linear color value in [0,1].
func ToSRGB(c float32) float32 {
	if c <= 0.0031308 {
		return c * 12.92
	}
	return float32(1.055*math.Pow(float64(c), 1/2.4) - 0.055)
}

func toByte(v float32) uint8 {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	return uint8(math.Round(float64(v) * 255))
}

// linearTable[b] = ToLinear(b/255), used on the byte to float path
// where the per pixel pow call would dominate.
var linearTable [256]float32

func init() {
	for i := range linearTable {
		linearTable[i] = ToLinear(float32(i) / 255)
	}
}
