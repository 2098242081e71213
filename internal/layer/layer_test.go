package layer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectriclabs/glmapviz/internal/stops"
)

const joinData = `[
	{"name": "California", "abbr": "CA", "density": 17, "region": "west"},
	{"name": "New York", "abbr": "NY", "density": 525, "region": "east"},
	{"name": "Alaska", "abbr": "AK", "density": -1, "region": "north"},
	{"name": "Nowhere", "abbr": "NW", "density": null, "region": "west"}
]`

func loadRows(t *testing.T) []Row {
	var rows []Row
	require.NoError(t, json.Unmarshal([]byte(joinData), &rows))
	return rows
}

func TestVectorColorStops(t *testing.T) {
	colorStops := []stops.Stop[string]{
		stops.NewStop(stops.Num(0), "rgb(255,0,0)"),
		stops.NewStop(stops.Num(50), "rgb(255,255,0)"),
		stops.NewStop(stops.Num(1000), "rgb(0,0,255)"),
	}

	result, err := VectorColorStops(loadRows(t), "density", "abbr", colorStops, "grey")
	require.NoError(t, err)
	expected := []stops.Stop[string]{
		stops.NewStop(stops.Cat("CA"), "rgb(255,87,0)"),
		stops.NewStop(stops.Cat("NY"), "rgb(128,128,128)"),
		stops.NewStop(stops.Cat("AK"), "rgb(255,0,0)"),
		stops.NewStop(stops.Cat("NW"), "grey"),
	}
	assert.Equal(t, expected, result)
}

func TestVectorColorStopsCategorical(t *testing.T) {
	colorStops := []stops.Stop[string]{
		stops.NewStop(stops.Cat("west"), "red"),
		stops.NewStop(stops.Cat("east"), "blue"),
	}
	result, err := VectorColorStops(loadRows(t), "region", "name", colorStops, "grey")
	require.NoError(t, err)
	values := make([]string, len(result))
	for i, s := range result {
		values[i] = s.Value
	}
	assert.Equal(t, []string{"red", "blue", "grey", "red"}, values)
	assert.Equal(t, stops.Cat("California"), result[0].Key)
}

func TestVectorHeightAndWidthStops(t *testing.T) {
	numericStops := []stops.Stop[float64]{
		stops.NewStop[float64](stops.Num(0), 0),
		stops.NewStop[float64](stops.Num(50), 5000),
		stops.NewStop[float64](stops.Num(1000), 100000),
	}
	heights, err := VectorHeightStops(loadRows(t), "density", "abbr", numericStops, 10)
	require.NoError(t, err)
	assert.InDelta(t, 1700.0, heights[0].Value, 1e-9)
	assert.Equal(t, 0.0, heights[2].Value)
	assert.Equal(t, 10.0, heights[3].Value)

	widths, err := VectorWidthStops(loadRows(t), "density", "abbr", numericStops, 1)
	require.NoError(t, err)
	assert.Equal(t, heights[1].Value, widths[1].Value)
}

func TestVectorStopsMissingProperty(t *testing.T) {
	_, err := VectorColorStops(loadRows(t), "population", "abbr", nil, "grey")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "population")

	_, err = VectorHeightStops(loadRows(t), "density", "fips", nil, 0)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "fips")
}

func TestValues(t *testing.T) {
	assert.Equal(t, []float64{17, 525, -1}, Values(loadRows(t), "density"))
	assert.Empty(t, Values(loadRows(t), "name"))
}

func TestLineDashArray(t *testing.T) {
	expected := []struct {
		Stroke string
		Output []float64
	}{
		{"solid", []float64{1, 0}},
		{"-", []float64{1, 0}},
		{"dashed", []float64{6, 4}},
		{"--", []float64{6, 4}},
		{":", []float64{0.5, 4}},
		{"dash dot", []float64{6, 4, 0.5, 4}},
		{"wiggly", []float64{1, 0}},
	}
	for _, exp := range expected {
		result := LineDashArray(exp.Stroke)
		if !assert.Equal(t, exp.Output, result) {
			t.Errorf("LineDashArray(%s) returned %v instead of %v", exp.Stroke, result, exp.Output)
		}
	}
}
