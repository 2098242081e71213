package stops

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Key is a stop key: either a number, usable for interpolation, or a
// categorical token that only ever matches exactly.
type Key struct {
	num     float64
	cat     string
	numeric bool
}

func Num(v float64) Key {
	return Key{num: v, numeric: true}
}

func Cat(s string) Key {
	return Key{cat: s}
}

func (k Key) IsNumeric() bool {
	return k.numeric
}

// Float returns the numeric value of k and false for categorical keys.
func (k Key) Float() (float64, bool) {
	return k.num, k.numeric
}

func (k Key) String() string {
	if k.numeric {
		return strconv.FormatFloat(k.num, 'g', -1, 64)
	}
	return k.cat
}

// Equal compares numeric keys by value and categorical keys by token.
func (k Key) Equal(o Key) bool {
	if k.numeric != o.numeric {
		return false
	}
	if k.numeric {
		return k.num == o.num
	}
	return k.cat == o.cat
}

func (k Key) MarshalJSON() ([]byte, error) {
	if k.numeric {
		return json.Marshal(k.num)
	}
	return json.Marshal(k.cat)
}

func (k *Key) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("stop key must be a number or a string, got null")
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*k = Cat(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("stop key must be a number or a string, got %s", data)
	}
	*k = Num(f)
	return nil
}

// Stop is one (key, value) point of a ramp. It encodes to JSON as the
// two-element array [key, value].
type Stop[V any] struct {
	Key   Key
	Value V
}

func NewStop[V any](key Key, value V) Stop[V] {
	return Stop[V]{Key: key, Value: value}
}

func (s Stop[V]) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{s.Key, s.Value})
}

func (s *Stop[V]) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("stop must be a [key, value] pair, got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &s.Key); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &s.Value)
}
