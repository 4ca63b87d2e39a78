package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/fan2ipmi/internal/controller"
	"github.com/qdm12/reprint"
)

func registerFanEndpoints(rest *echo.Echo, loop controller.ControlLoop) {
	group := rest.Group("/fan")

	group.GET("/", getFans(loop))
	group.GET("/:"+urlParamId+"/", getFan(loop))
}

// returns the last known state of all configured fans
func getFans(loop controller.ControlLoop) echo.HandlerFunc {
	return func(c echo.Context) error {
		data := reprint.This(loop.GetFanStates())
		return c.JSONPretty(http.StatusOK, data, indentationChar)
	}
}

func getFan(loop controller.ControlLoop) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param(urlParamId)
		fanId, err := strconv.Atoi(id)
		if err != nil {
			return returnNotFound(c, id)
		}

		data, exists := loop.GetFanStates()[fanId]
		if !exists {
			return returnNotFound(c, id)
		}
		return c.JSONPretty(http.StatusOK, data, indentationChar)
	}
}
