package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/markusressel/fan2ipmi/internal/controller"
)

const (
	urlParamId      = "id"
	indentationChar = "  "
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
)

// CreateRestService creates a read only REST api for the state of the given control loop
func CreateRestService(loop controller.ControlLoop) *echo.Echo {
	echoRest := CreateWebserver()
	echoRest.Use(middleware.Logger())

	echoRest.GET("/alive/", isAlive)

	registerStatusEndpoints(echoRest, loop)
	registerFanEndpoints(echoRest, loop)
	registerSensorEndpoints(echoRest, loop)
	registerCurveEndpoints(echoRest, loop)

	return echoRest
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// return a "not found" message
func returnNotFound(c echo.Context, id string) (err error) {
	return c.JSONPretty(http.StatusNotFound, &Result{
		Name:    "Not found",
		Message: "No item with id '" + id + "' found",
	}, indentationChar)
}
