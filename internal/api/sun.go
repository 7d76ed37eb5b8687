package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/luxclock/luxclock/internal/sun"
)

func registerSunEndpoints(rest *echo.Echo) {
	rest.GET("/sun/", getSun)
}

func getSun(c echo.Context) error {
	return c.JSONPretty(http.StatusOK, sun.Today(time.Now()), indentationChar)
}
