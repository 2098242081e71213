// Package legend samples color ramps into the evenly spaced color lists a
// map legend is drawn from.
package legend

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/spectriclabs/glmapviz/internal/colors"
	"github.com/spectriclabs/glmapviz/internal/stops"
)

const (
	DefaultColors = 16
	maxColors     = 1024
)

// MakeColorPalette samples numColors colors evenly from the first to the
// last stop of a numeric color ramp. Match-only ramps give one color per
// stop instead, in the order given, and an empty ramp gives defaultColor.
// Colors are returned in the canonical rgb()/rgba() form.
func MakeColorPalette(colorStops []stops.Stop[string], numColors int, defaultColor string) ([]string, error) {
	if numColors < 1 || numColors > maxColors {
		return nil, errors.Errorf("legend color count %d must be within 1 and %d", numColors, maxColors)
	}

	table := stops.NewTable(colorStops)
	if table.Len() == 0 {
		c, err := colors.Canonical(defaultColor)
		if err != nil {
			return nil, err
		}
		return []string{c}, nil
	}

	if table.Kind() != stops.Interpolatable {
		out := make([]string, len(colorStops))
		for i, s := range colorStops {
			c, err := colors.Canonical(s.Value)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}
		return out, nil
	}

	lo, _ := colorStops[0].Key.Float()
	hi := lo
	for _, s := range colorStops {
		k, _ := s.Key.Float()
		lo = math.Min(lo, k)
		hi = math.Max(hi, k)
	}

	out := make([]string, numColors)
	for i := range out {
		position := lo
		if numColors > 1 {
			position = lo + (hi-lo)*float64(i)/float64(numColors-1)
		}
		value, err := stops.ColorMap(stops.Num(position), colorStops, defaultColor)
		if err != nil {
			return nil, err
		}
		if out[i], err = colors.Canonical(value); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// CSSGradient lays palette out as a left to right CSS linear-gradient with
// evenly spaced color stops.
func CSSGradient(palette []string) string {
	if len(palette) == 1 {
		return fmt.Sprintf("linear-gradient(to right,%s,%s)", palette[0], palette[0])
	}
	parts := make([]string, len(palette))
	for i, c := range palette {
		pct := 100 * float64(i) / float64(len(palette)-1)
		parts[i] = c + " " + strconv.FormatFloat(math.Round(pct*100)/100, 'f', -1, 64) + "%"
	}
	return "linear-gradient(to right," + strings.Join(parts, ",") + ")"
}
