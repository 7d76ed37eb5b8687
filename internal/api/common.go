package api

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CreateWebserver returns a minimal server exposing the prometheus
// metrics at /metrics.
func CreateWebserver() *echo.Echo {
	webserver := echo.New()
	webserver.HideBanner = true
	webserver.HidePort = true

	webserver.Use(middleware.Secure())
	webserver.Use(middleware.Recover())

	webserver.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return webserver
}
