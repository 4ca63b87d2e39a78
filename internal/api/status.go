package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/fan2ipmi/internal/controller"
)

type Status struct {
	State      string                `json:"state"`
	Statistics controller.Statistics `json:"statistics"`
}

func registerStatusEndpoints(rest *echo.Echo, loop controller.ControlLoop) {
	rest.GET("/status/", getStatus(loop))
}

func getStatus(loop controller.ControlLoop) echo.HandlerFunc {
	return func(c echo.Context) error {
		data := Status{
			State:      loop.GetState().String(),
			Statistics: loop.GetStatistics(),
		}
		return c.JSONPretty(http.StatusOK, data, indentationChar)
	}
}
