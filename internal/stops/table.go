package stops

import (
	"sort"
)

// Kind is decided once, when a Table is built.
type Kind int

const (
	// MatchOnly tables resolve lookups by exact key match only.
	MatchOnly Kind = iota
	// Interpolatable tables have only numeric keys.
	Interpolatable
)

func (k Kind) String() string {
	if k == Interpolatable {
		return "interpolatable"
	}
	return "match-only"
}

// Interpolator blends two bounding stop values at distance (0 at lower, 1 at
// upper).
type Interpolator[V any] func(lower, upper V, distance float64) (V, error)

// Scalar is the linear Interpolator for plain numbers.
func Scalar(lower, upper, distance float64) (float64, error) {
	return lower + distance*(upper-lower), nil
}

// Table is an ordered list of stops. The stops are kept in the order given;
// sorting only happens inside Lookup.
type Table[V any] struct {
	stops []Stop[V]
	kind  Kind
}

func NewTable[V any](stops []Stop[V]) Table[V] {
	t := Table[V]{stops: stops, kind: MatchOnly}
	if len(stops) == 0 {
		return t
	}
	for _, s := range stops {
		if !s.Key.IsNumeric() {
			return t
		}
	}
	t.kind = Interpolatable
	return t
}

func (t Table[V]) Kind() Kind {
	return t.kind
}

func (t Table[V]) Len() int {
	return len(t.stops)
}

func (t Table[V]) match(key Key) (V, bool) {
	for _, s := range t.stops {
		if s.Key.Equal(key) {
			return s.Value, true
		}
	}
	var zero V
	return zero, false
}

// Lookup resolves key against the table. An exact key match always wins
// (the first stop with that key). Numeric keys on an Interpolatable table
// are clamped to the end stops, or interpolated between the nearest stops
// below and above. Everything else falls back to def.
func (t Table[V]) Lookup(key Key, def V, interp Interpolator[V]) (V, error) {
	if len(t.stops) == 0 {
		return def, nil
	}
	if v, ok := t.match(key); ok {
		return v, nil
	}
	k, numeric := key.Float()
	if !numeric || t.kind != Interpolatable {
		return def, nil
	}

	sorted := make([]Stop[V], len(t.stops))
	copy(sorted, t.stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Key.num < sorted[j].Key.num
	})

	first, last := sorted[0], sorted[len(sorted)-1]
	if k <= first.Key.num {
		return first.Value, nil
	}
	if k >= last.Key.num {
		return last.Value, nil
	}

	// ties resolve to the first stop in sorted order
	lower, upper := first, last
	for _, s := range sorted {
		if s.Key.num == last.Key.num {
			upper = s
			break
		}
	}
	for _, s := range sorted {
		if s.Key.num == k {
			return s.Value, nil
		}
		if s.Key.num < k && s.Key.num > lower.Key.num {
			lower = s
		}
		if s.Key.num > k && s.Key.num < upper.Key.num {
			upper = s
		}
	}

	distance := (k - lower.Key.num) / (upper.Key.num - lower.Key.num)
	return interp(lower.Value, upper.Value, distance)
}
