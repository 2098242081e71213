package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spectriclabs/glmapviz/internal/stops"
)

type mapRequest[V any] struct {
	Lookup  stops.Key       `json:"lookup"`
	Stops   []stops.Stop[V] `json:"stops"`
	Default V               `json:"default"`
}

type mapResponse[V any] struct {
	Value V `json:"value"`
}

func (a *API) PostColorMap(c echo.Context) error {
	var req mapRequest[string]
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	color, err := stops.ColorMap(req.Lookup, req.Stops, req.Default)
	if err != nil {
		return a.fail(c, err)
	}
	return c.JSON(http.StatusOK, mapResponse[string]{color})
}

func (a *API) PostNumericMap(c echo.Context) error {
	var req mapRequest[float64]
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, mapResponse[float64]{stops.NumericMap(req.Lookup, req.Stops, req.Default)})
}

func (a *API) PostHeightMap(c echo.Context) error {
	var req mapRequest[float64]
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, mapResponse[float64]{stops.HeightMap(req.Lookup, req.Stops, req.Default)})
}
