// Package layer builds the per-feature match stops that vector tile layers
// need: every data row is resolved through a color, height or width ramp
// and paired with the value it joins to a vector feature on.
package layer

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pkg/errors"

	"github.com/spectriclabs/glmapviz/internal/stops"
)

// Row is one record of join data, as decoded from a JSON array of objects.
type Row map[string]any

// KeyOf converts a decoded JSON value into a stop key.
func KeyOf(v any) (stops.Key, error) {
	switch x := v.(type) {
	case float64:
		return stops.Num(x), nil
	case float32:
		return stops.Num(float64(x)), nil
	case int:
		return stops.Num(float64(x)), nil
	case int64:
		return stops.Num(float64(x)), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return stops.Cat(x.String()), nil
		}
		return stops.Num(f), nil
	case string:
		return stops.Cat(x), nil
	case bool:
		return stops.Cat(strconv.FormatBool(x)), nil
	case nil:
		return stops.Cat(""), nil
	default:
		return stops.Key{}, fmt.Errorf("unsupported property value %v (%T)", v, v)
	}
}

func rowKeys(row Row, property, joinProperty string) (stops.Key, stops.Key, error) {
	v, ok := row[property]
	if !ok {
		return stops.Key{}, stops.Key{}, errors.Errorf("row is missing property %q", property)
	}
	j, ok := row[joinProperty]
	if !ok {
		return stops.Key{}, stops.Key{}, errors.Errorf("row is missing join property %q", joinProperty)
	}
	lookup, err := KeyOf(v)
	if err != nil {
		return stops.Key{}, stops.Key{}, errors.Wrapf(err, "property %q", property)
	}
	join, err := KeyOf(j)
	if err != nil {
		return stops.Key{}, stops.Key{}, errors.Wrapf(err, "join property %q", joinProperty)
	}
	return lookup, join, nil
}

// VectorColorStops maps each row's colorProperty through colorStops and
// pairs the color with the row's joinProperty.
func VectorColorStops(rows []Row, colorProperty, joinProperty string, colorStops []stops.Stop[string], defaultColor string) ([]stops.Stop[string], error) {
	out := make([]stops.Stop[string], 0, len(rows))
	for i, row := range rows {
		lookup, join, err := rowKeys(row, colorProperty, joinProperty)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
		color, err := stops.ColorMap(lookup, colorStops, defaultColor)
		if err != nil {
			return nil, err
		}
		out = append(out, stops.NewStop(join, color))
	}
	return out, nil
}

func vectorNumericStops(rows []Row, property, joinProperty string, numericStops []stops.Stop[float64], def float64) ([]stops.Stop[float64], error) {
	out := make([]stops.Stop[float64], 0, len(rows))
	for i, row := range rows {
		lookup, join, err := rowKeys(row, property, joinProperty)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
		out = append(out, stops.NewStop(join, stops.NumericMap(lookup, numericStops, def)))
	}
	return out, nil
}

// VectorHeightStops maps each row's heightProperty through heightStops, for
// extruded polygons.
func VectorHeightStops(rows []Row, heightProperty, joinProperty string, heightStops []stops.Stop[float64], defaultHeight float64) ([]stops.Stop[float64], error) {
	return vectorNumericStops(rows, heightProperty, joinProperty, heightStops, defaultHeight)
}

// VectorWidthStops maps each row's widthProperty through widthStops, for
// line widths.
func VectorWidthStops(rows []Row, widthProperty, joinProperty string, widthStops []stops.Stop[float64], defaultWidth float64) ([]stops.Stop[float64], error) {
	return vectorNumericStops(rows, widthProperty, joinProperty, widthStops, defaultWidth)
}

// Values collects the numeric values of property across rows, skipping rows
// where it is missing or not a number.
func Values(rows []Row, property string) []float64 {
	var out []float64
	for _, row := range rows {
		k, err := KeyOf(row[property])
		if err != nil {
			continue
		}
		if f, ok := k.Float(); ok {
			out = append(out, f)
		}
	}
	return out
}

// LineDashArray maps a line stroke name to its dash array. Unknown strokes
// are drawn solid.
func LineDashArray(stroke string) []float64 {
	switch stroke {
	case "dashed", "--":
		return []float64{6, 4}
	case "dotted", ":":
		return []float64{0.5, 4}
	case "dash dot", "-.":
		return []float64{6, 4, 0.5, 4}
	default:
		return []float64{1, 0}
	}
}
