// Command dashboard runs the monitoring client: it follows the backend
// telemetry, keeps the actuator configuration in sync and serves the control
// panel API.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cooling_dashboard/internal/actuator"
	"cooling_dashboard/internal/automation"
	"cooling_dashboard/internal/config"
	"cooling_dashboard/internal/dashboard"
	"cooling_dashboard/internal/ingest"
	"cooling_dashboard/internal/logger"
	"cooling_dashboard/internal/models"
	"cooling_dashboard/internal/panel"
	"cooling_dashboard/internal/remote"
	"cooling_dashboard/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configDir := flag.String("config", "configs", "directory holding dashboard.yml")
	flag.Parse()

	// init logger
	log := logger.Get(logger.InfoLevel)

	// load dashboard.yml
	cfg, err := config.LoadDashboard(*configDir, "dashboard")
	if err != nil {
		log.Fatalw("error reading config", "err", err)
	}
	log = logger.Init(cfg.Log.Level, cfg.Log.Format)

	// wire dependencies
	api := remote.New(cfg.BackendURL, &http.Client{Timeout: cfg.HTTPTimeout})

	initial := models.DefaultActuatorState()
	initial.Source = cfg.Source
	store := actuator.NewStore(initial)
	syncer := actuator.NewSync(actuator.NewClient(api, cfg.ActuatorPath), store, log.Named("actuator"))

	engine := dashboard.New(dashboard.Deps{
		Sources:  feedSources(cfg, api, log),
		Sync:     syncer,
		Settings: automation.NewClient(api),
		Display:  dashboard.NewDisplayClient(api),
		Log:      log.Named("engine"),
	}, dashboard.Options{
		Capacity:       cfg.Capacity,
		Source:         cfg.Source,
		ReconcileEvery: cfg.Intervals.Reconcile,
		WeatherEvery:   cfg.Intervals.Weather,
		ClockEvery:     cfg.Intervals.Clock,
	})

	// context for the engine loop
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engineDone := make(chan struct{})
	go func() {
		defer close(engineDone)
		if err := engine.Run(ctx); err != nil {
			log.Errorw("engine stopped", "err", err)
		}
	}()

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, panel.NewHandler(engine, log.Named("panel")), log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
	<-engineDone
}

// feedSources always polls the backend window; the configured push feed is
// added on top.
func feedSources(cfg config.Dashboard, api *remote.Client, log *logger.Logger) []ingest.Source {
	sources := []ingest.Source{ingest.NewPollSource(api, ingest.DataPath, cfg.Intervals.Poll)}
	switch cfg.Feed {
	case config.FeedWebSocket:
		sources = append(sources, ingest.NewWSSource(cfg.FeedURL))
	case config.FeedMQTT:
		sources = append(sources, ingest.NewMQTTSource(cfg.MQTT.Broker, cfg.MQTT.ClientID, cfg.MQTT.SensorTopic))
	}
	names := make([]string, 0, len(sources))
	for _, s := range sources {
		names = append(names, s.Name())
	}
	log.Infow("telemetry sources", "sources", names)
	return sources
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *panel.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8090"
		}
		log.Infow("panel listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil && err != http.ErrServerClosed {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down dashboard...")

	// stop the engine and its feeds
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
