package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fieldservice-service/internal/clock"
	"fieldservice-service/internal/config"
	"fieldservice-service/internal/db"
	httphandler "fieldservice-service/internal/http"
	"fieldservice-service/internal/http/middleware"
	"fieldservice-service/internal/logger"
	"fieldservice-service/internal/metrics"
	"fieldservice-service/internal/repository"
	"fieldservice-service/internal/seed"
	"fieldservice-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)
	ctx := context.Background()

	clk := clock.System{}
	appMetrics := metrics.New("fieldservice", prometheus.DefaultRegisterer)

	appointmentRepo := repository.NewAppointmentRepository()
	workItemRepo := repository.NewWorkItemRepository()

	var source seed.Source
	switch cfg.Seed.Source {
	case config.SeedSourceDatabase:
		database, err := db.New(cfg, appLogger)
		if err != nil {
			appLogger.Fatal().Err(err).Msg("failed to connect database")
		}
		source = seed.NewDatabase(repository.NewSeedRepository(database))
	default:
		source = seed.NewBuiltin(clk, cfg.Location())
	}

	if err := seed.Populate(ctx, source, appointmentRepo, workItemRepo, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to seed appointments")
	}

	appointmentService := service.NewAppointmentService(
		appointmentRepo,
		clk,
		service.NewCalendar(cfg.Location()),
		appMetrics,
		appLogger,
	)
	workItemService := service.NewWorkItemService(workItemRepo, clk, appMetrics, appLogger)

	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		metricsHandler = promhttp.Handler()
	}

	handler := httphandler.NewHandler(appointmentService, workItemService, appLogger)
	router := httphandler.NewRouter(handler, cfg.Environment, metricsHandler,
		middleware.RequestLog(appLogger, appMetrics),
		middleware.Latency(cfg.HTTP.SimulatedLatency),
	)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	appLogger.Info().
		Str("addr", addr).
		Str("seed", source.Name()).
		Str("timezone", cfg.Location().String()).
		Msg("starting field service")

	if err := router.Run(addr); err != nil {
		appLogger.Error().Err(err).Msg("failed to start server")
		os.Exit(1)
	}
}
