package edid

import "github.com/tuomas56/edidblock/internal/cursor"

// ColorCharacteristics holds the CIE 1931 chromaticity coordinates of
// the display primaries and white point, plus any additional white
// points contributed by monitor descriptors (in encounter order).
type ColorCharacteristics struct {
	Red         Chromaticity
	Green       Chromaticity
	Blue        Chromaticity
	White       Chromaticity
	WhitePoints []WhitePoint
}

// Chromaticity is a CIE 1931 (x, y) coordinate pair in [0, 1).
type Chromaticity struct {
	X float64
	Y float64
}

// WhitePoint is one extra white point from a 0xFB descriptor.
type WhitePoint struct {
	Index byte
	Point Chromaticity
	Gamma float64
}

// chroma reassembles one 10-bit fixed-point coordinate from its high
// byte and a 2-bit fragment.
func chroma(high byte, lowBits byte) float64 {
	return float64(uint16(high)<<2|uint16(lowBits&0x03)) / 1024
}

// The base color block packs the low 2 bits of eight coordinates into
// two lead bytes: rgLow carries red x/y and green x/y (MSB first),
// bwLow carries blue x/y and white x/y.
func parseColorCharacteristics(c *cursor.Cursor) (ColorCharacteristics, error) {
	var raw [10]byte
	for i := range raw {
		b, err := c.Next()
		if err != nil {
			return ColorCharacteristics{}, err
		}
		raw[i] = b
	}
	rgLow, bwLow := raw[0], raw[1]
	return ColorCharacteristics{
		Red:   Chromaticity{X: chroma(raw[2], rgLow>>6), Y: chroma(raw[3], rgLow>>4)},
		Green: Chromaticity{X: chroma(raw[4], rgLow>>2), Y: chroma(raw[5], rgLow)},
		Blue:  Chromaticity{X: chroma(raw[6], bwLow>>6), Y: chroma(raw[7], bwLow>>4)},
		White: Chromaticity{X: chroma(raw[8], bwLow>>2), Y: chroma(raw[9], bwLow)},
	}, nil
}
