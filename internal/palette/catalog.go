// Package palette holds the ColorBrewer ramps used for color stops. The
// catalog is decoded once when the package is initialized and never changes
// afterwards.
package palette

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/spectriclabs/glmapviz/internal/colors"
	"github.com/spectriclabs/glmapviz/internal/util"
)

//go:embed colorbrewer.yaml
var colorbrewerYAML []byte

const minQualitativeCount = 3

type scheme struct {
	Kind   string         `yaml:"kind"`
	Ramps  map[int]string `yaml:"ramps"`
	Colors string         `yaml:"colors"`
}

var (
	catalog = map[string]map[int][]string{}
	kinds   = map[string]string{}
)

func init() {
	var schemes map[string]scheme
	util.CheckError(yaml.Unmarshal(colorbrewerYAML, &schemes))

	for name, s := range schemes {
		kinds[name] = s.Kind
		ramps := map[int][]string{}
		if s.Kind == "qualitative" {
			all := util.Must(unpack(s.Colors))
			for n := minQualitativeCount; n <= len(all); n++ {
				ramps[n] = all[:n:n]
			}
		} else {
			for n, packed := range s.Ramps {
				ramp := util.Must(unpack(packed))
				if len(ramp) != n {
					panic(fmt.Sprintf("palette %s: ramp %d has %d colors", name, n, len(ramp)))
				}
				ramps[n] = ramp
			}
		}
		catalog[name] = ramps
	}
}

// unpack splits a run of six digit hex colors into rgb(r,g,b) strings.
func unpack(packed string) ([]string, error) {
	if len(packed)%6 != 0 {
		return nil, fmt.Errorf("packed ramp %q is not a multiple of six digits", packed)
	}
	out := make([]string, 0, len(packed)/6)
	for i := 0; i < len(packed); i += 6 {
		c, err := colorful.Hex("#" + packed[i:i+6])
		if err != nil {
			return nil, err
		}
		out = append(out, colors.FormatRGB(c))
	}
	return out, nil
}

// LookupError is returned for an unknown palette or a palette that has no
// ramp with the requested number of stops.
type LookupError struct {
	Palette        string
	Count          int
	UnknownPalette bool
}

func (e *LookupError) Error() string {
	if e.UnknownPalette {
		return fmt.Sprintf("color ramp %s does not exist (requested %d breaks)", e.Palette, e.Count)
	}
	return fmt.Sprintf("color ramp %s does not have %d breaks", e.Palette, e.Count)
}

// Lookup returns a copy of the ramp of count colors for the named palette.
func Lookup(name string, count int) ([]string, error) {
	ramps, ok := catalog[name]
	if !ok {
		return nil, &LookupError{Palette: name, Count: count, UnknownPalette: true}
	}
	ramp, ok := ramps[count]
	if !ok {
		return nil, &LookupError{Palette: name, Count: count}
	}
	return append([]string(nil), ramp...), nil
}

// Names lists every palette, sorted.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Counts lists the stop counts available for a palette, ascending.
func Counts(name string) []int {
	var counts []int
	for n := range catalog[name] {
		counts = append(counts, n)
	}
	sort.Ints(counts)
	return counts
}

// Kind is one of sequential, diverging or qualitative; empty for unknown
// palettes.
func Kind(name string) string {
	return kinds[name]
}
