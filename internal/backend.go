package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/luxclock/luxclock/internal/api"
	"github.com/luxclock/luxclock/internal/bus"
	"github.com/luxclock/luxclock/internal/configuration"
	"github.com/luxclock/luxclock/internal/controller"
	"github.com/luxclock/luxclock/internal/display"
	"github.com/luxclock/luxclock/internal/luxtable"
	"github.com/luxclock/luxclock/internal/persistence"
	"github.com/luxclock/luxclock/internal/sensors"
	"github.com/luxclock/luxclock/internal/statistics"
	"github.com/luxclock/luxclock/internal/telemetry"
	"github.com/luxclock/luxclock/internal/ui"
	"github.com/oklog/run"
)

const serverShutdownTimeout = 5 * time.Second

func RunDaemon() {
	config := configuration.CurrentConfig

	adapter, err := bus.Open(config.Bus.Adapter)
	if err != nil {
		ui.Fatal("Unable to open I2C bus: %v", err)
	}

	pers := persistence.NewPersistence(config.DbPath)
	if err := pers.Init(); err != nil {
		ui.Warning("Unable to prepare status database at %s: %v", config.DbPath, err)
	}

	clockController := NewClockController(config, adapter, pers)

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		if config.Statistics.Enabled {
			// === Prometheus Exporter
			statistics.Register(statistics.NewDimmingCollector())
			statistics.Register(statistics.NewSensorCollector())
			statistics.Register(statistics.NewClockCollector())

			server := api.CreateWebserver()
			addr := fmt.Sprintf(":%d", config.Statistics.Port)
			addServer(ctx, &g, "statistics", server, addr)
		}
	}
	{
		if config.Api.Enabled {
			// === REST Api
			server := api.CreateRestService(pers, luxtable.ResolvePath(config.LuxTable.Path))
			addr := fmt.Sprintf("%s:%d", config.Api.Host, config.Api.Port)
			addServer(ctx, &g, "api", server, addr)
		}
	}
	{
		// === minute tick loop
		g.Add(func() error {
			err := clockController.Run(ctx)
			ui.Info("Clock %s stopped.", clockController.Id())
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Something went wrong: %v", err)
			}
			cancel()
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case s := <-sig:
				ui.Info("Received %s signal, exiting...", s)
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	err = g.Run()
	if closeErr := adapter.Close(); closeErr != nil {
		ui.Warning("%v", closeErr)
	}
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	ui.Info("Done.")
	os.Exit(0)
}

// NewClockController wires the hardware found on the bus to a controller.
func NewClockController(config configuration.Configuration, adapter *bus.Adapter, pers persistence.Persistence) *controller.Controller {
	disp := display.NewHT16K33(adapter.Device(uint16(config.Display.Address)))

	var sensor sensors.LightSensor
	if config.Sensor.Enabled() {
		s, err := sensors.NewSensor(config.Sensor, adapter.Device(uint16(config.Sensor.Address)))
		if err != nil {
			ui.Fatal("Unable to process sensor configuration: %v", err)
		}
		ui.Info("Using %s light sensor at %s", s.GetType(), config.Sensor.Address)
		sensor = s
	}

	return controller.NewController(config, controller.Dependencies{
		Display:     disp,
		Sensor:      sensor,
		Sink:        NewTelemetrySink(config.Telemetry),
		Persistence: pers,
	})
}

func NewTelemetrySink(config configuration.TelemetryConfig) telemetry.Sink {
	if !config.Enabled {
		ui.Info("Telemetry is disabled")
		return telemetry.NewNoopSink()
	}
	ui.Info("Publishing telemetry to %s on %s", config.Broker, config.Topic)
	return telemetry.NewMQTTSink(config)
}

// addServer runs server in g until ctx is done. A server that cannot be
// started is logged and does not stop the clock.
func addServer(ctx context.Context, g *run.Group, name string, server *echo.Echo, addr string) {
	g.Add(func() error {
		ui.Info("Starting %s server on %s", name, addr)
		if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ui.Error("Cannot start %s server (%s)", name, err.Error())
			<-ctx.Done()
		}
		return nil
	}, func(err error) {
		timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
		defer timeoutCancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			ui.Warning("Error stopping %s server: %v", name, err)
		} else {
			ui.Info("Stopped %s server.", name)
		}
	})
}
