package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/spectriclabs/glmapviz/internal/layer"
	"github.com/spectriclabs/glmapviz/internal/legend"
	"github.com/spectriclabs/glmapviz/internal/palette"
	"github.com/spectriclabs/glmapviz/internal/ramp"
	"github.com/spectriclabs/glmapviz/internal/stops"
)

// colorsParam accepts either a palette name or a list of colors.
type colorsParam ramp.Colors

func (p *colorsParam) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*p = colorsParam(ramp.Palette(name))
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("colors must be a palette name or a list of colors")
	}
	*p = colorsParam(ramp.Custom(list...))
	return nil
}

type colorStopsRequest struct {
	Breaks []float64   `json:"breaks"`
	Colors colorsParam `json:"colors"`
}

type numericStopsRequest struct {
	Breaks []float64 `json:"breaks"`
	Min    float64   `json:"min"`
	Max    float64   `json:"max"`
}

type paletteInfo struct {
	Kind   string `json:"kind"`
	Counts []int  `json:"counts"`
}

func (a *API) GetPalettes(c echo.Context) error {
	out := make(map[string]paletteInfo)
	for _, name := range palette.Names() {
		out[name] = paletteInfo{Kind: palette.Kind(name), Counts: palette.Counts(name)}
	}
	return c.JSON(http.StatusOK, out)
}

func (a *API) GetScale(c echo.Context) error {
	minval, err := strconv.ParseFloat(c.QueryParam("min"), 64)
	if err != nil {
		return c.String(http.StatusBadRequest, fmt.Sprintf("bad min: %s", c.QueryParam("min")))
	}
	maxval, err := strconv.ParseFloat(c.QueryParam("max"), 64)
	if err != nil {
		return c.String(http.StatusBadRequest, fmt.Sprintf("bad max: %s", c.QueryParam("max")))
	}
	numStops, err := strconv.Atoi(c.QueryParam("stops"))
	if err != nil {
		return c.String(http.StatusBadRequest, fmt.Sprintf("bad stops: %s", c.QueryParam("stops")))
	}

	scale, err := ramp.ScaleBetween(minval, maxval, numStops)
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(http.StatusOK, scale)
}

func (a *API) GetDashArray(c echo.Context) error {
	return c.JSON(http.StatusOK, layer.LineDashArray(c.QueryParam("stroke")))
}

func (a *API) PostColorStops(c echo.Context) error {
	var req colorStopsRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	colorStops, err := ramp.CreateColorStops(req.Breaks, ramp.Colors(req.Colors))
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(http.StatusOK, colorStops)
}

func (a *API) PostRadiusStops(c echo.Context) error {
	var req numericStopsRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	radiusStops, err := ramp.CreateRadiusStops(req.Breaks, req.Min, req.Max)
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(http.StatusOK, radiusStops)
}

func (a *API) PostWeightStops(c echo.Context) error {
	var req numericStopsRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, ramp.CreateWeightStops(req.Breaks))
}

func (a *API) PostNumericStops(c echo.Context) error {
	var req numericStopsRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	numericStops, err := ramp.CreateNumericStops(req.Breaks, req.Min, req.Max)
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(http.StatusOK, numericStops)
}

type legendRequest struct {
	Stops   []stops.Stop[string] `json:"stops"`
	Colors  int                  `json:"colors"`
	Default string               `json:"default"`
}

type legendResponse struct {
	Colors   []string `json:"colors"`
	Gradient string   `json:"gradient"`
}

// PostLegend samples the posted color stops for a legend.
func (a *API) PostLegend(c echo.Context) error {
	req := legendRequest{Colors: legend.DefaultColors, Default: "grey"}
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}

	palette, err := legend.MakeColorPalette(req.Stops, req.Colors, req.Default)
	if err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, legendResponse{Colors: palette, Gradient: legend.CSSGradient(palette)})
}
