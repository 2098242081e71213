package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/spectriclabs/glmapviz/internal/datasource"
)

func (a *API) GetLocations(c echo.Context) error {
	return c.JSON(http.StatusOK, a.Cfg.LocationDetails)
}

func (a *API) GetDirectory(c echo.Context) error {
	locationName := c.Param("location")
	dir := c.Param("*")

	files, err := datasource.List(a.Cfg, locationName, dir)
	if err != nil {
		c.Logger().Error(err)
		return c.String(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, files)
}
