package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/fan2ipmi/internal/controller"
	"github.com/qdm12/reprint"
)

type SensorValue struct {
	ID    string  `json:"id"`
	Value float64 `json:"value"`
}

func registerSensorEndpoints(rest *echo.Echo, loop controller.ControlLoop) {
	group := rest.Group("/sensor")

	group.GET("/", getSensors(loop))
	group.GET("/:"+urlParamId+"/", getSensor(loop))
}

func getSensors(loop controller.ControlLoop) echo.HandlerFunc {
	return func(c echo.Context) error {
		data := reprint.This(loop.GetSample())
		return c.JSONPretty(http.StatusOK, data, indentationChar)
	}
}

func getSensor(loop controller.ControlLoop) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param(urlParamId)

		value, exists := loop.GetSample()[id]
		if !exists {
			return returnNotFound(c, id)
		}
		return c.JSONPretty(http.StatusOK, SensorValue{ID: id, Value: value}, indentationChar)
	}
}
