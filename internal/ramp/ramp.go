// Package ramp turns data breaks into stop lists for color, radius, weight
// and other numeric ramps.
//
// Builders pair breaks with generated values by position. They never sort
// the breaks, so callers pass them in the order they want them mapped.
package ramp

import (
	"fmt"
	"strconv"

	"github.com/spectriclabs/glmapviz/internal/colors"
	"github.com/spectriclabs/glmapviz/internal/palette"
	"github.com/spectriclabs/glmapviz/internal/stops"
)

// DefaultPalette is used by CreateColorStops when Colors is the zero value.
const DefaultPalette = "RdYlGn"

// RangeError is returned by ScaleBetween when the range is inverted.
type RangeError struct {
	Min float64
	Max float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("max value %g is less than min value %g", e.Max, e.Min)
}

// CustomColorListError reports a custom color list that cannot be paired
// with the breaks. Index is -1 for length problems.
type CustomColorListError struct {
	Index  int
	Color  string
	Reason string
}

func (e *CustomColorListError) Error() string {
	if e.Index < 0 {
		return e.Reason
	}
	return fmt.Sprintf("color %d (%q): %s", e.Index, e.Color, e.Reason)
}

// round2 rounds through the decimal form, so exact binary halves such as
// 0.125 go to the even digit.
func round2(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return r
}

// ScaleBetween splits [minval, maxval] into numStops equal intervals and
// returns the start of each, rounded to two decimals. The last point is one
// interval short of maxval. Fewer than two stops yields [minval, maxval].
func ScaleBetween(minval, maxval float64, numStops int) ([]float64, error) {
	if numStops < 2 {
		return []float64{minval, maxval}, nil
	}
	if maxval < minval {
		return nil, &RangeError{Min: minval, Max: maxval}
	}

	interval := (maxval - minval) / float64(numStops)
	scale := make([]float64, numStops)
	for i := range scale {
		scale[i] = round2(minval + interval*float64(i))
	}
	return scale, nil
}

// CreateNumericStops pairs each break with an equal-interval value between
// minValue and maxValue.
func CreateNumericStops(breaks []float64, minValue, maxValue float64) ([]stops.Stop[float64], error) {
	scale, err := ScaleBetween(minValue, maxValue, len(breaks))
	if err != nil {
		return nil, err
	}
	out := make([]stops.Stop[float64], len(breaks))
	for i, b := range breaks {
		out[i] = stops.NewStop(stops.Num(b), scale[i])
	}
	return out, nil
}

// CreateRadiusStops converts data breaks into a circle radius ramp.
func CreateRadiusStops(breaks []float64, minRadius, maxRadius float64) ([]stops.Stop[float64], error) {
	return CreateNumericStops(breaks, minRadius, maxRadius)
}

// CreateWeightStops converts data breaks into a heatmap weight ramp on [0, 1].
func CreateWeightStops(breaks []float64) []stops.Stop[float64] {
	out, _ := CreateNumericStops(breaks, 0, 1)
	return out
}

// Colors selects the colors of a color ramp: a palette name or a custom
// list with one color per break.
type Colors struct {
	Palette string
	Custom  []string
}

func Palette(name string) Colors {
	return Colors{Palette: name}
}

func Custom(list ...string) Colors {
	if list == nil {
		list = []string{}
	}
	return Colors{Custom: list}
}

func (c Colors) isCustom() bool {
	return c.Custom != nil
}

// CreateColorStops pairs breaks with colors. Palette names are resolved
// through the ColorBrewer catalog for len(breaks) classes; custom colors are
// validated and used as given.
func CreateColorStops(breaks []float64, c Colors) ([]stops.Stop[string], error) {
	var ramp []string
	if c.isCustom() {
		if len(c.Custom) == 0 || len(c.Custom) != len(breaks) {
			return nil, &CustomColorListError{
				Index:  -1,
				Reason: fmt.Sprintf("custom color list has %d colors for %d breaks", len(c.Custom), len(breaks)),
			}
		}
		for i, color := range c.Custom {
			if err := colors.Validate(color); err != nil {
				return nil, &CustomColorListError{Index: i, Color: color, Reason: "the color code is in the wrong format"}
			}
		}
		ramp = c.Custom
	} else {
		name := c.Palette
		if name == "" {
			name = DefaultPalette
		}
		var err error
		ramp, err = palette.Lookup(name, len(breaks))
		if err != nil {
			return nil, err
		}
	}

	out := make([]stops.Stop[string], len(breaks))
	for i, b := range breaks {
		out[i] = stops.NewStop(stops.Num(b), ramp[i])
	}
	return out, nil
}
