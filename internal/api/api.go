package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/spectriclabs/glmapviz/internal/cache"
	"github.com/spectriclabs/glmapviz/internal/colors"
	"github.com/spectriclabs/glmapviz/internal/config"
	"github.com/spectriclabs/glmapviz/internal/palette"
	"github.com/spectriclabs/glmapviz/internal/ramp"
)

type API struct {
	Cfg    *config.Config
	Cache  *cache.Cache
	Logger *zap.Logger
}

func NewAPI(cfg *config.Config, logger *zap.Logger) *API {
	return &API{
		Cfg:    cfg,
		Cache:  &cache.Cache{Location: cfg.CacheLocation, Logger: logger},
		Logger: logger,
	}
}

// Routes registers every handler on e.
func (a *API) Routes(e *echo.Echo) {
	r := e.Group("/ramp")
	r.GET("/palettes", a.GetPalettes)
	r.GET("/scale", a.GetScale)
	r.GET("/dasharray", a.GetDashArray)
	r.POST("/color", a.PostColorStops)
	r.POST("/radius", a.PostRadiusStops)
	r.POST("/weight", a.PostWeightStops)
	r.POST("/numeric", a.PostNumericStops)
	r.POST("/legend", a.PostLegend)

	m := e.Group("/map")
	m.POST("/color", a.PostColorMap)
	m.POST("/numeric", a.PostNumericMap)
	m.POST("/height", a.PostHeightMap)

	d := e.Group("/data")
	d.GET("/locations", a.GetLocations)
	d.GET("/fs/:location/*", a.GetDirectory)
	d.GET("/breaks/:location/*", a.GetBreaks)
	d.POST("/vector/:kind/:location/*", a.PostVectorStops)
}

// isBadRequest reports whether err was caused by the request rather than
// by the server.
func isBadRequest(err error) bool {
	var (
		rangeErr  *ramp.RangeError
		customErr *ramp.CustomColorListError
		lookupErr *palette.LookupError
		parseErr  *colors.ParseError
	)
	return errors.As(err, &rangeErr) ||
		errors.As(err, &customErr) ||
		errors.As(err, &lookupErr) ||
		errors.As(err, &parseErr)
}

func (a *API) fail(c echo.Context, err error) error {
	if isBadRequest(err) {
		return c.String(http.StatusBadRequest, err.Error())
	}
	a.Logger.Error("Request failed", zap.String("path", c.Path()), zap.Error(err))
	return c.String(http.StatusInternalServerError, err.Error())
}
