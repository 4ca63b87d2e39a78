package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/fan2ipmi/internal/controller"
)

func registerCurveEndpoints(rest *echo.Echo, loop controller.ControlLoop) {
	rest.GET("/curve/", getCurve(loop))
}

// returns the control points of the speed curve, sorted by temperature
func getCurve(loop controller.ControlLoop) echo.HandlerFunc {
	return func(c echo.Context) error {
		data := loop.GetCurve().Points()
		return c.JSONPretty(http.StatusOK, data, indentationChar)
	}
}
