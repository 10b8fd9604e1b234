package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "green_index/docs"
	"green_index/internal/broadcast"
	"green_index/internal/config"
	"green_index/internal/handlers"
	"green_index/internal/logger"
	"green_index/internal/mqttbridge"
	"green_index/internal/observability"
	"green_index/internal/repository"
	"green_index/internal/repository/db"
	"green_index/internal/server"
	"green_index/internal/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	shutdownTimeout   = 10 * time.Second
	alertRecordBuffer = 32
	broadcastBuffer   = 256
	redisDialTimeout  = 5 * time.Second
	configPathEnvVar  = "GREENINDEX_CONFIG"
)

// @title        Green Index API
// @version      1.0
// @description  Campus sustainability monitoring: live sensor engine and batch dataset pipeline.
// @BasePath     /
//
// @tag.name         iot
// @tag.description  Device ingestion
// @tag.name         sensors
// @tag.description  Live sensor engine
// @tag.name         analytics
// @tag.description  Category aggregates, campus totals and wastage alerts
// @tag.name         simulation
// @tag.description  Synthetic reading loop
// @tag.name         datasets
// @tag.description  Batch CSV pipeline and leaderboard
// @tag.name         logs
// @tag.description  System event log
// @tag.name         system
// @tag.description  Health, metrics and live stream
func main() {
	cfg, err := config.Load(os.Getenv(configPathEnvVar))
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.Log.Level)

	// open DB
	conn, err := openDB(cfg.DB, log)
	if err != nil {
		log.Fatalw("failed to init database", "driver", cfg.DB.Driver, "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close database", "err", cerr)
		}
	}()
	dialect, err := repository.ParseDialect(cfg.DB.Driver)
	if err != nil {
		log.Fatalw("unsupported db driver", "err", err)
	}

	// metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)

	// wire dependencies
	repos := repository.NewRepository(conn, dialect)
	engine := service.NewSensorEngine(
		service.WithWastagePolicy(service.WastagePolicy{Mode: cfg.Wastage.Mode, FixedMinutes: cfg.Wastage.FixedMinutes}),
		service.WithMetrics(metrics),
		service.WithLogger(log),
	)
	if cfg.Simulation.SeedDefaults {
		engine.SeedDefaults()
	}
	eventLog := service.NewEventLogService(repos.EventRepo, log)
	telemetry := service.NewTelemetryService(engine, repos.ReadingRepo, metrics, log)
	simulator := service.NewSimulatorService(engine, repos.EventRepo, nil, metrics, log)
	dataset := service.NewDatasetService(engine, repos.EventRepo, nil, metrics, log)
	services := service.NewService(telemetry, engine, simulator, dataset, eventLog)

	apiHandler := handlers.NewHandler(services, log,
		handlers.WithMetrics(metrics),
		handlers.WithStream(cfg.WebSocket.Buffer, cfg.WebSocket.TotalsEvery),
		handlers.WithAllowedOrigins(cfg.WebSocket.AllowedOrigins),
	)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var workers sync.WaitGroup

	// persist wastage alerts to the event log
	alerts, stopAlerts := engine.StreamAlerts(alertRecordBuffer, metrics.StreamDropped("event_log_alerts"))
	defer stopAlerts()
	runWorker(&workers, func() { eventLog.RecordAlerts(ctx, alerts) })

	if cfg.MQTT.Enabled {
		bridge := mqttbridge.New(mqttbridge.Config{
			Broker:   cfg.MQTT.Broker,
			Topic:    cfg.MQTT.Topic,
			ClientID: cfg.MQTT.ClientID,
			Username: cfg.MQTT.Username,
			Password: cfg.MQTT.Password,
		}, telemetry, log)
		runWorker(&workers, func() {
			if err := bridge.Run(ctx); err != nil {
				log.Errorw("mqtt_bridge_stopped", "err", err)
			}
		})
	}

	if cfg.Redis.Enabled {
		if stop := startBroadcast(ctx, &workers, cfg.Redis, engine, dataset, metrics, log); stop != nil {
			defer stop()
		}
	}

	if cfg.Simulation.Enabled {
		if err := simulator.Start(ctx, cfg.Simulation.Interval); err != nil {
			log.Fatalw("failed to start simulation", "err", err)
		}
	}

	// start HTTP server
	srv := server.New(cfg.Port, apiHandler.InitRoutes())
	runHTTPServer(srv, log)

	// graceful shutdown
	waitForShutdown(srv, log)
	if err := simulator.Stop(context.Background()); err != nil {
		log.Errorw("failed to stop simulation", "err", err)
	}
	cancel()
	workers.Wait()
}

func runWorker(wg *sync.WaitGroup, fn func()) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		fn()
	}()
}

// openDB initializes the configured database.
func openDB(cfg config.DBConfig, log *logger.Logger) (*sql.DB, error) {
	log.Infow("opening database", "driver", cfg.Driver)
	return db.InitDB(cfg.Driver, cfg.DSN)
}

// startBroadcast mirrors live updates into Redis. A Redis outage at startup
// is logged and the service runs without the mirror.
func startBroadcast(
	ctx context.Context,
	wg *sync.WaitGroup,
	cfg config.RedisConfig,
	engine *service.SensorEngine,
	dataset *service.DatasetService,
	metrics *observability.Metrics,
	log *logger.Logger,
) (stop func()) {
	dialCtx, cancel := context.WithTimeout(ctx, redisDialTimeout)
	defer cancel()
	sink, err := broadcast.NewRedisSink(dialCtx, broadcast.RedisConfig{
		Addr:          cfg.Addr,
		Password:      cfg.Password,
		DB:            cfg.DB,
		ChannelPrefix: cfg.ChannelPrefix,
	})
	if err != nil {
		log.Errorw("redis_unavailable", "addr", cfg.Addr, "err", err)
		return nil
	}

	readings, stopReadings := engine.StreamReadings(broadcastBuffer, metrics.StreamDropped("redis_readings"))
	alerts, stopAlerts := engine.StreamAlerts(broadcastBuffer, metrics.StreamDropped("redis_alerts"))
	datasets, stopDatasets := dataset.StreamDataset(1, metrics.StreamDropped("redis_dataset"))
	fwd := broadcast.NewForwarder(sink, log)
	runWorker(wg, func() {
		fwd.Run(ctx, broadcast.Streams{Readings: readings, Alerts: alerts, Dataset: datasets})
	})
	log.Infow("redis broadcast enabled", "addr", cfg.Addr)

	return func() {
		stopReadings()
		stopAlerts()
		stopDatasets()
		if err := sink.Close(); err != nil {
			log.Warnw("redis_close_failed", "err", err)
		}
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, log *logger.Logger) {
	go func() {
		log.Infow("http server listening", "addr", srv.Addr())
		if err := srv.Run(); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown blocks until SIGINT/SIGTERM and drains in-flight requests.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
