// Command server is the backend of the cooling dashboard: it stores sensor
// telemetry in sqlite, owns the actuator state and AC settings, and serves
// them over HTTP.
//
// @title       Cooling backend API
// @version     1.0
// @BasePath    /
package main

import (
	"context"
	"database/sql"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cooling_dashboard/internal/config"
	"cooling_dashboard/internal/handlers"
	"cooling_dashboard/internal/logger"
	"cooling_dashboard/internal/publish"
	"cooling_dashboard/internal/repository"
	"cooling_dashboard/internal/repository/db"
	"cooling_dashboard/internal/server"
	"cooling_dashboard/internal/service"
	"cooling_dashboard/internal/weather"
)

const (
	defaultSimTick  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	configDir := flag.String("config", "configs", "directory holding server.yml")
	seed := flag.Int("seed", 0, "insert N historical readings spaced 5s and exit")
	simulate := flag.Bool("simulate", false, "record a simulated reading every 5s")
	flag.Parse()

	// init logger
	log := logger.Get(logger.InfoLevel)

	// load server.yml
	cfg, err := config.LoadServer(*configDir, "server")
	if err != nil {
		log.Fatalw("error reading config", "err", err)
	}
	log = logger.Init(cfg.Log.Level, cfg.Log.Format)

	// open DB
	conn, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	pub := openPublisher(cfg, log)
	defer func() { _ = pub.Close() }()

	repos := repository.NewRepository(conn)
	services := service.NewService(repos, pub, newWeather(cfg, log), cfg.HistoryLimit, log)

	if *seed > 0 {
		if err := services.Simulator.Seed(context.Background(), *seed); err != nil {
			log.Fatalw("seeding failed", "err", err)
		}
		return
	}

	apiHandler := handlers.NewHandler(services, log).WithStreamInterval(cfg.StreamInterval)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *simulate {
		go services.Simulator.Run(ctx, defaultSimTick)
	}

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

// openDB initializes the SQLite database using configuration.
func openDB(cfg config.Server, log *logger.Logger) (*sql.DB, error) {
	path := cfg.DBPath
	if path == "" {
		log.Infow("db_path not set in config; using default file", "default", "iot.db")
		path = "iot.db"
	}
	return db.InitDB(path)
}

// openPublisher connects the realtime channel, or returns a no-op publisher
// when no broker is configured or it cannot be reached.
func openPublisher(cfg config.Server, log *logger.Logger) publish.Publisher {
	if !cfg.MQTT.Enabled() {
		log.Infow("mqtt broker not configured; realtime publishing disabled")
		return publish.Nop{}
	}
	p, err := publish.NewMQTTPublisher(cfg.MQTT.Broker, cfg.MQTT.ClientID, cfg.MQTT.SensorTopic, cfg.MQTT.CmdTopic)
	if err != nil {
		log.Warnw("mqtt connect failed; realtime publishing disabled", "broker", cfg.MQTT.Broker, "err", err)
		return publish.Nop{}
	}
	log.Infow("mqtt publisher connected", "broker", cfg.MQTT.Broker)
	return p
}

// newWeather builds the weather service; without an API key it serves sample data.
func newWeather(cfg config.Server, log *logger.Logger) *weather.Service {
	if cfg.Weather.APIKey == "" {
		return weather.NewService(nil, log)
	}
	client := weather.NewClient(weather.Config{
		APIKey:  cfg.Weather.APIKey,
		BaseURL: cfg.Weather.BaseURL,
		Lat:     cfg.Weather.Lat,
		Lon:     cfg.Weather.Lon,
		Lang:    cfg.Weather.Lang,
	}, nil)
	return weather.NewService(client, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		log.Infow("http server listening", "port", port)
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

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
