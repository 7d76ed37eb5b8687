package api

import (
	"errors"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/luxclock/luxclock/internal/luxtable"
)

func registerLuxTableEndpoints(rest *echo.Echo, path string) {
	rest.GET("/luxtable/", func(c echo.Context) error {
		return getLuxTable(c, path)
	})
}

// returns the set entries of the table file, level -> lux threshold
func getLuxTable(c echo.Context, path string) error {
	table, err := luxtable.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return returnNotFound(c, path)
	} else if err != nil {
		return returnError(c, err)
	}
	return c.JSONPretty(http.StatusOK, table.Entries(), indentationChar)
}
