package api

import (
	"errors"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/luxclock/luxclock/internal/persistence"
	"github.com/luxclock/luxclock/internal/status"
	"github.com/qdm12/reprint"
)

func registerStatusEndpoints(rest *echo.Echo, p persistence.Persistence) {
	group := rest.Group("/status")

	group.GET("/", getStatuses)
	group.GET("/:"+urlParamId+"/", getStatus)

	rest.GET("/restarts/", func(c echo.Context) error {
		return getRestarts(c, p)
	})
}

func getStatuses(c echo.Context) error {
	data := reprint.This(status.SnapshotMap.Items())
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

func getStatus(c echo.Context) error {
	id := c.Param(urlParamId)

	data, exists := status.Get(id)
	if !exists {
		return returnNotFound(c, id)
	} else {
		return c.JSONPretty(http.StatusOK, data, indentationChar)
	}
}

func getRestarts(c echo.Context, p persistence.Persistence) error {
	records, err := p.LoadRestarts()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return returnError(c, err)
	}
	if records == nil {
		records = []persistence.RestartRecord{}
	}
	return c.JSONPretty(http.StatusOK, records, indentationChar)
}
