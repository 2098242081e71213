package stops

import (
	"github.com/spectriclabs/glmapviz/internal/colors"
)

// ColorMap resolves lookup against color stops, interpolating between
// numeric stops in RGB. Misses return defaultColor; an error is only
// returned when a bounding stop color cannot be parsed.
func ColorMap(lookup Key, colorStops []Stop[string], defaultColor string) (string, error) {
	return NewTable(colorStops).Lookup(lookup, defaultColor, colors.Interpolate)
}

// NumericMap resolves lookup against numeric stops.
func NumericMap(lookup Key, numericStops []Stop[float64], defaultValue float64) float64 {
	v, _ := NewTable(numericStops).Lookup(lookup, defaultValue, Scalar)
	return v
}

// HeightMap resolves lookup against height stops (meters).
func HeightMap(lookup Key, heightStops []Stop[float64], defaultHeight float64) float64 {
	return NumericMap(lookup, heightStops, defaultHeight)
}
