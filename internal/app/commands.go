package app

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/spectriclabs/glmapviz/internal/palette"
	"github.com/spectriclabs/glmapviz/internal/ramp"
	"github.com/spectriclabs/glmapviz/internal/stops"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	return table
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func newPalettesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "palettes",
		Short: "List the ColorBrewer palettes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table := newTable(cmd.OutOrStdout(), "Palette", "Kind", "Stops")
			for _, name := range palette.Names() {
				counts := palette.Counts(name)
				table.Append([]string{
					name,
					palette.Kind(name),
					fmt.Sprintf("%d-%d", counts[0], counts[len(counts)-1]),
				})
			}
			table.Render()
			return nil
		},
	}
}

func newScaleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scale MIN MAX STOPS",
		Short: "Print evenly spaced values from MIN towards MAX",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			minval, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return errors.Wrap(err, "bad MIN")
			}
			maxval, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return errors.Wrap(err, "bad MAX")
			}
			numStops, err := strconv.Atoi(args[2])
			if err != nil {
				return errors.Wrap(err, "bad STOPS")
			}
			scale, err := ramp.ScaleBetween(minval, maxval, numStops)
			if err != nil {
				return err
			}
			table := newTable(cmd.OutOrStdout(), "#", "Value")
			for i, v := range scale {
				table.Append([]string{strconv.Itoa(i), formatFloat(v)})
			}
			table.Render()
			return nil
		},
	}
}

// colorsFromFlag reads a single palette name, or a list of custom colors.
func colorsFromFlag(list []string) ramp.Colors {
	switch {
	case len(list) == 0:
		return ramp.Palette(ramp.DefaultPalette)
	case len(list) == 1 && palette.Kind(list[0]) != "":
		return ramp.Palette(list[0])
	default:
		return ramp.Custom(list...)
	}
}

func printStops[V any](cmd *cobra.Command, asJSON bool, list []stops.Stop[V]) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		return enc.Encode(list)
	}
	table := newTable(cmd.OutOrStdout(), "Stop", "Value")
	for _, s := range list {
		table.Append([]string{s.Key.String(), fmt.Sprint(s.Value)})
	}
	table.Render()
	return nil
}

func newStopsCmd() *cobra.Command {
	var (
		breaks    []float64
		colorList []string
		minValue  float64
		maxValue  float64
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:       "stops color|radius|weight|numeric",
		Short:     "Build a ramp of stops from breaks",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"color", "radius", "weight", "numeric"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "color":
				list, err := ramp.CreateColorStops(breaks, colorsFromFlag(colorList))
				if err != nil {
					return err
				}
				return printStops(cmd, asJSON, list)
			case "radius":
				list, err := ramp.CreateRadiusStops(breaks, minValue, maxValue)
				if err != nil {
					return err
				}
				return printStops(cmd, asJSON, list)
			case "weight":
				return printStops(cmd, asJSON, ramp.CreateWeightStops(breaks))
			default:
				list, err := ramp.CreateNumericStops(breaks, minValue, maxValue)
				if err != nil {
					return err
				}
				return printStops(cmd, asJSON, list)
			}
		},
	}
	cmd.Flags().Float64SliceVarP(&breaks, "breaks", "b", nil, "break values, comma separated")
	cmd.Flags().StringArrayVarP(&colorList, "colors", "c", nil, "palette name, or one custom color per flag")
	cmd.Flags().Float64Var(&minValue, "min", 1, "smallest output value (radius, numeric)")
	cmd.Flags().Float64Var(&maxValue, "max", 10, "upper bound of output values (radius, numeric)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print stops as a JSON array of [stop, value] pairs")
	_ = cmd.MarkFlagRequired("breaks")
	return cmd
}

// keyFromArg reads finite numbers as numeric keys and anything else
// (including nan and inf) as a category.
func keyFromArg(s string) stops.Key {
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return stops.Num(f)
	}
	return stops.Cat(s)
}

func newLookupCmd() *cobra.Command {
	var (
		value     string
		stopsJSON string
		def       string
	)
	cmd := &cobra.Command{
		Use:       "lookup color|numeric|height",
		Short:     "Resolve a value against a list of stops",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"color", "numeric", "height"},
		RunE: func(cmd *cobra.Command, args []string) error {
			key := keyFromArg(value)
			if args[0] == "color" {
				var colorStops []stops.Stop[string]
				if err := json.Unmarshal([]byte(stopsJSON), &colorStops); err != nil {
					return errors.Wrap(err, "bad --stops")
				}
				if def == "" {
					def = "grey"
				}
				color, err := stops.ColorMap(key, colorStops, def)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), color)
				return nil
			}

			var numericStops []stops.Stop[float64]
			if err := json.Unmarshal([]byte(stopsJSON), &numericStops); err != nil {
				return errors.Wrap(err, "bad --stops")
			}
			defaultValue := 0.0
			if def != "" {
				f, err := strconv.ParseFloat(def, 64)
				if err != nil {
					return errors.Wrap(err, "bad --default")
				}
				defaultValue = f
			}
			lookup := stops.NumericMap
			if args[0] == "height" {
				lookup = stops.HeightMap
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatFloat(lookup(key, numericStops, defaultValue)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&value, "value", "v", "", "value to look up")
	cmd.Flags().StringVarP(&stopsJSON, "stops", "s", "[]", "stops as a JSON array of [stop, value] pairs")
	cmd.Flags().StringVarP(&def, "default", "d", "", "value when nothing matches")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}
