package colors

import (
	"fmt"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

func toByte(v float64) int {
	return int(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// FormatRGB renders c as rgb(r,g,b) with no whitespace.
func FormatRGB(c colorful.Color) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", toByte(c.R), toByte(c.G), toByte(c.B))
}

// FormatRGBA renders c as rgba(r,g,b,a) with no whitespace. Alpha is kept to
// three decimals.
func FormatRGBA(c colorful.Color, alpha float64) string {
	a := math.Round(math.Max(0, math.Min(1, alpha))*1000) / 1000
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", toByte(c.R), toByte(c.G), toByte(c.B), strconv.FormatFloat(a, 'f', -1, 64))
}

// Interpolate blends the colors lower and upper by distance (0 at lower, 1 at
// upper) channel by channel in sRGB and returns the canonical string form.
// The result carries an alpha channel when either bound does.
func Interpolate(lower, upper string, distance float64) (string, error) {
	lo, err := ParseRGBTuple(lower)
	if err != nil {
		return "", err
	}
	hi, err := ParseRGBTuple(upper)
	if err != nil {
		return "", err
	}

	blended := lo.Color().BlendRgb(hi.Color(), distance)
	if lo.HasAlpha() || hi.HasAlpha() {
		alpha := lo.Alpha() + distance*(hi.Alpha()-lo.Alpha())
		return FormatRGBA(blended, alpha), nil
	}
	return FormatRGB(blended), nil
}

// Canonical parses s and renders it back in the rgb()/rgba() form.
func Canonical(s string) (string, error) {
	t, err := ParseRGBTuple(s)
	if err != nil {
		return "", err
	}
	if t.HasAlpha() {
		return FormatRGBA(t.Color(), t.Alpha()), nil
	}
	return FormatRGB(t.Color()), nil
}
