package colors

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Scale tells how a channel value should be read.
type Scale int

const (
	// ByteScale channels range over 0-255.
	ByteScale Scale = iota
	// UnitScale channels range over 0-1.
	UnitScale
)

func (s Scale) String() string {
	if s == UnitScale {
		return "unit"
	}
	return "byte"
}

type Channel struct {
	Value float64
	Scale Scale
}

// Unit returns the channel value on the 0-1 scale.
func (c Channel) Unit() float64 {
	if c.Scale == ByteScale {
		return c.Value / 255.0
	}
	return c.Value
}

// Tuple holds the R, G, B and optional A channels of a parsed color.
type Tuple []Channel

func (t Tuple) HasAlpha() bool {
	return len(t) == 4
}

// Alpha returns the alpha channel on the 0-1 scale, 1 when absent.
func (t Tuple) Alpha() float64 {
	if !t.HasAlpha() {
		return 1
	}
	return t[3].Unit()
}

// Color converts the RGB channels to a colorful.Color.
func (t Tuple) Color() colorful.Color {
	return colorful.Color{R: t[0].Unit(), G: t[1].Unit(), B: t[2].Unit()}
}

// ParseError is returned when a string is not a name, hex or rgb()/rgba() color.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to parse color %q", e.Input)
}

var numberToken = regexp.MustCompile(`[-+]?\d*\.\d+|[-+]?\d+`)

// ParseRGBTuple parses a named, hex or functional rgb color string into its
// channels. Functional channels above 1 are byte valued, all others
// (including exactly 1) are unit valued.
func ParseRGBTuple(s string) (Tuple, error) {
	if rgb, ok := colornames.Map[strings.ToLower(strings.TrimSpace(s))]; ok {
		tokens := numberToken.FindAllString(fmt.Sprintf("rgb(%d,%d,%d)", rgb.R, rgb.G, rgb.B), -1)
		t := make(Tuple, len(tokens))
		for i, tok := range tokens {
			v, _ := strconv.ParseFloat(tok, 64)
			t[i] = Channel{Value: v, Scale: ByteScale}
		}
		return t, nil
	}

	if t, ok := parseHex(s); ok {
		return t, nil
	}

	return parseFunctional(s)
}

func parseHex(s string) (Tuple, bool) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return nil, false
	}
	c, err := colorful.Hex("#" + h)
	if err != nil {
		return nil, false
	}
	return Tuple{
		{Value: math.Round(c.R * 255), Scale: ByteScale},
		{Value: math.Round(c.G * 255), Scale: ByteScale},
		{Value: math.Round(c.B * 255), Scale: ByteScale},
	}, true
}

func parseFunctional(s string) (Tuple, error) {
	f := strings.ToLower(strings.TrimSpace(s))
	if !(strings.HasPrefix(f, "rgb(") || strings.HasPrefix(f, "rgba(")) || !strings.HasSuffix(f, ")") {
		return nil, &ParseError{Input: s}
	}

	tokens := numberToken.FindAllString(f, -1)
	if len(tokens) != 3 && len(tokens) != 4 {
		return nil, &ParseError{Input: s}
	}

	t := make(Tuple, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, &ParseError{Input: s}
		}
		if v > 1 {
			t[i] = Channel{Value: math.Trunc(v), Scale: ByteScale}
		} else {
			t[i] = Channel{Value: v, Scale: UnitScale}
		}
	}
	return t, nil
}
