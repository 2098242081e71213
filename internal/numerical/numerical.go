package numerical

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func SuppressNaN(num float64) float64 {
	if math.IsNaN(num) {
		return 0
	}
	return num
}

// Finite returns the values of dataIn that are neither NaN nor infinite.
func Finite(dataIn []float64) []float64 {
	out := make([]float64, 0, len(dataIn))
	for _, v := range dataIn {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// Extent returns the min and max of the finite values of dataIn, (0, 0) when
// there are none.
func Extent(dataIn []float64) (float64, float64) {
	data := Finite(dataIn)
	if len(data) == 0 {
		return 0, 0
	}
	return floats.Min(data), floats.Max(data)
}

// Breaks returns numBreaks empirical quantiles of dataIn, evenly spaced from
// the minimum (p=0) to the maximum (p=1), ascending. They are meant to be
// fed to the ramp builders.
func Breaks(dataIn []float64, numBreaks int) []float64 {
	data := Finite(dataIn)
	if len(data) == 0 || numBreaks < 1 {
		return nil
	}
	sort.Float64s(data)
	if numBreaks == 1 {
		return []float64{data[0]}
	}

	breaks := make([]float64, numBreaks)
	for i := range breaks {
		p := float64(i) / float64(numBreaks-1)
		breaks[i] = SuppressNaN(stat.Quantile(p, stat.Empirical, data, nil))
	}
	return breaks
}

// Mean of the finite values of dataIn, 0 for none.
func Mean(dataIn []float64) float64 {
	data := Finite(dataIn)
	if len(data) == 0 {
		return 0
	}
	return SuppressNaN(stat.Mean(data, nil))
}
