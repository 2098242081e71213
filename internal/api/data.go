package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/spectriclabs/glmapviz/internal/cache"
	"github.com/spectriclabs/glmapviz/internal/datasource"
	"github.com/spectriclabs/glmapviz/internal/layer"
	"github.com/spectriclabs/glmapviz/internal/numerical"
	"github.com/spectriclabs/glmapviz/internal/stops"
)

type breaksResponse struct {
	Breaks []float64  `json:"breaks"`
	Extent [2]float64 `json:"extent"`
}

type vectorRequest struct {
	Property     string          `json:"property"`
	JoinProperty string          `json:"join_property"`
	Stops        json.RawMessage `json:"stops"`
	Default      json.RawMessage `json:"default"`
}

func (a *API) rows(c echo.Context) ([]layer.Row, error) {
	return datasource.OpenRows(
		c.Request().Context(),
		a.Cfg,
		a.Cache,
		a.Logger,
		c.Param("location"),
		c.Param("*"),
	)
}

// GetBreaks computes quantile breaks of a numeric property of a data file.
// Results are cached by location, file, property and break count.
func (a *API) GetBreaks(c echo.Context) error {
	property := c.QueryParam("property")
	if property == "" {
		return c.String(http.StatusBadRequest, "property must be set")
	}
	numBreaks := 5
	if s := c.QueryParam("stops"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return c.String(http.StatusBadRequest, fmt.Sprintf("stops must be a positive integer: %s", s))
		}
		numBreaks = n
	}

	cacheFileName := cache.KeyFor("breaks", c.Param("location"), c.Param("*"), property, strconv.Itoa(numBreaks))
	if a.Cfg.UseCache {
		if data, err := a.Cache.Get(cacheFileName, cache.OutputDir); err == nil {
			a.Logger.Debug("Breaks found in cache", zap.String("file", cacheFileName))
			return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
		}
	}

	rows, err := a.rows(c)
	if err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	values := layer.Values(rows, property)
	if len(values) == 0 {
		return c.String(http.StatusBadRequest, fmt.Sprintf("property %s has no numeric values", property))
	}

	var resp breaksResponse
	resp.Breaks = numerical.Breaks(values, numBreaks)
	resp.Extent[0], resp.Extent[1] = numerical.Extent(values)
	data, err := json.Marshal(resp)
	if err != nil {
		return a.fail(c, err)
	}
	if a.Cfg.UseCache {
		if err := a.Cache.Put(cacheFileName, cache.OutputDir, data); err != nil {
			a.Logger.Warn("Error caching breaks", zap.Error(err))
		}
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

// PostVectorStops resolves every row of a data file through the posted
// stops and returns [join, value] pairs for a vector layer match
// expression.
func (a *API) PostVectorStops(c echo.Context) error {
	var req vectorRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	if req.Property == "" || req.JoinProperty == "" {
		return c.String(http.StatusBadRequest, "property and join_property must be set")
	}

	kind := c.Param("kind")
	if kind != "color" && kind != "height" && kind != "width" {
		return c.String(http.StatusBadRequest, fmt.Sprintf("unknown vector stop kind %s", kind))
	}

	rows, err := a.rows(c)
	if err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}

	switch kind {
	case "color":
		var colorStops []stops.Stop[string]
		defaultColor := "grey"
		if err := decodeStops(req, &colorStops, &defaultColor); err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
		out, err := layer.VectorColorStops(rows, req.Property, req.JoinProperty, colorStops, defaultColor)
		if err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
		return c.JSON(http.StatusOK, out)
	default:
		var numericStops []stops.Stop[float64]
		var def float64
		if err := decodeStops(req, &numericStops, &def); err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
		build := layer.VectorHeightStops
		if kind == "width" {
			build = layer.VectorWidthStops
		}
		out, err := build(rows, req.Property, req.JoinProperty, numericStops, def)
		if err != nil {
			return c.String(http.StatusBadRequest, err.Error())
		}
		return c.JSON(http.StatusOK, out)
	}
}

// decodeStops leaves def untouched when the request has no default.
func decodeStops[V any](req vectorRequest, stopsOut *[]stops.Stop[V], def *V) error {
	if err := json.Unmarshal(req.Stops, stopsOut); err != nil {
		return fmt.Errorf("bad stops: %w", err)
	}
	if len(req.Default) > 0 && string(req.Default) != "null" {
		if err := json.Unmarshal(req.Default, def); err != nil {
			return fmt.Errorf("bad default: %w", err)
		}
	}
	return nil
}
