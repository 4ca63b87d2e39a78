package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/markusressel/fan2ipmi/internal/api"
	"github.com/markusressel/fan2ipmi/internal/configuration"
	"github.com/markusressel/fan2ipmi/internal/controller"
	"github.com/markusressel/fan2ipmi/internal/fans"
	"github.com/markusressel/fan2ipmi/internal/sensors"
	"github.com/markusressel/fan2ipmi/internal/statistics"
	"github.com/markusressel/fan2ipmi/internal/ui"
	"github.com/oklog/run"
)

const shutdownTimeout = 5 * time.Second

// RunDaemon controls all configured fans until ctx is cancelled or
// an interrupt signal is received. A configuration that does not match
// the live sensor readings is returned as an error before any fan is touched.
func RunDaemon(ctx context.Context, config *configuration.Configuration) error {
	if os.Geteuid() != 0 {
		ui.Warning("Not running as root, sending commands to the fan controller will most likely fail")
	}

	loop, err := createControlLoop(config)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g run.Group
	if config.Statistics.Enabled {
		// === Prometheus Exporter
		statistics.Register(statistics.NewSensorCollector(loop))
		statistics.Register(statistics.NewFanCollector(loop))
		statistics.Register(statistics.NewControllerCollector(loop))

		addr := fmt.Sprintf(":%d", config.Statistics.Port)
		addWebserver(ctx, cancel, &g, "statistics", addr, api.CreateMetricsService())
	}
	if config.Api.Enabled {
		// === REST Api
		rest := api.CreateRestService(loop)
		rest.Use(echoprometheus.NewMiddleware("api"))

		addr := net.JoinHostPort(config.Api.Host, strconv.Itoa(config.Api.Port))
		addWebserver(ctx, cancel, &g, "api", addr, rest)
	}
	if config.Profiling.Enabled {
		// === pprof
		addr := net.JoinHostPort(config.Profiling.Host, strconv.Itoa(config.Profiling.Port))
		server := &http.Server{Addr: addr, Handler: createProfilingHandler()}

		g.Add(func() error {
			ui.Info("Starting profiling webserver on %s...", addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				ui.Error("Cannot start profiling webserver: %v", err)
			}
			<-ctx.Done()
			return nil
		}, func(err error) {
			cancel()
			timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer timeoutCancel()
			_ = server.Shutdown(timeoutCtx)
		})
	}
	{
		// === fan control loop
		g.Add(func() error {
			err := loop.Run(ctx)
			if err == nil {
				ui.Info("Fan control loop stopped.")
			}
			return err
		}, func(err error) {
			cancel()
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case s := <-sig:
				ui.Info("Received %s signal, stopping after the current cycle...", s)
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	err = g.Run()
	if err != nil {
		return err
	}

	ui.Success("Fan control stopped safely.")
	return nil
}

func createControlLoop(config *configuration.Configuration) (*controller.DefaultControlLoop, error) {
	reader, err := sensors.NewReader(config.Reader)
	if err != nil {
		return nil, err
	}
	actuator, err := fans.NewActuator(config.Actuator)
	if err != nil {
		return nil, err
	}
	return controller.NewFanControlLoop(config, reader, actuator)
}

// addWebserver adds an actor to the group which serves the given webserver until the group is interrupted.
// A webserver that cannot be started is reported but does not stop fan control.
func addWebserver(ctx context.Context, cancel context.CancelFunc, g *run.Group, name string, addr string, server *echo.Echo) {
	g.Add(func() error {
		ui.Info("Starting %s webserver on %s...", name, addr)
		if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ui.Error("Cannot start %s webserver: %v", name, err)
		}
		<-ctx.Done()
		return nil
	}, func(err error) {
		cancel()
		timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer timeoutCancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			ui.Warning("Error stopping %s webserver: %v", name, err)
		} else {
			ui.Debug("%s webserver stopped.", name)
		}
	})
}

func createProfilingHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}
