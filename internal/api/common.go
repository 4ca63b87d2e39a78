package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	MetricsEndpoint = "/metrics/"
)

func CreateWebserver() *echo.Echo {
	webserver := echo.New()
	webserver.HideBanner = true
	webserver.HidePort = true

	// Root level middleware
	webserver.Pre(middleware.AddTrailingSlash())

	webserver.Use(middleware.Secure())
	webserver.Use(middleware.Recover())

	return webserver
}

// CreateMetricsService creates a webserver that exposes all registered prometheus collectors
func CreateMetricsService() *echo.Echo {
	webserver := CreateWebserver()
	webserver.GET(MetricsEndpoint, echoprometheus.NewHandler())
	return webserver
}
