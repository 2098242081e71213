package colors

import (
	"regexp"
	"strings"

	"golang.org/x/image/colornames"
)

var (
	hexColor  = regexp.MustCompile(`^#([0-9a-f]{3}|[0-9a-f]{4}|[0-9a-f]{6}|[0-9a-f]{8})$`)
	funcColor = regexp.MustCompile(`^(rgba?|hsla?)\(\s*[-+]?(\d*\.)?\d+%?(\s*,\s*[-+]?(\d*\.)?\d+%?){2,3}\s*\)$`)
)

// Validate reports whether s is a color string a browser would accept: a
// named color, #rgb, #rgba, #rrggbb, #rrggbbaa or an rgb/rgba/hsl/hsla
// function. It is more permissive than ParseRGBTuple.
func Validate(s string) error {
	c := strings.ToLower(strings.TrimSpace(s))
	if _, ok := colornames.Map[c]; ok {
		return nil
	}
	if hexColor.MatchString(c) || funcColor.MatchString(c) {
		return nil
	}
	return &ParseError{Input: s}
}
