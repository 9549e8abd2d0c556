package main

import (
	"context"
	"fmt"
	"os"

	"fieldservice-service/internal/clock"
	"fieldservice-service/internal/config"
	"fieldservice-service/internal/db"
	"fieldservice-service/internal/logger"
	"fieldservice-service/internal/repository"
	"fieldservice-service/internal/seed"
)

// seed-import записывает демонстрационные данные в таблицы appointments и
// work_items, чтобы сервис мог стартовать с SEED_SOURCE=database.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.DB.DSN == "" {
		fmt.Fprintln(os.Stderr, "DB_DSN is required")
		os.Exit(1)
	}

	appLogger := logger.New(cfg.Environment)
	ctx := context.Background()

	database, err := db.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect database")
	}

	data, err := seed.NewBuiltin(clock.System{}, cfg.Location()).Load(ctx)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to build dataset")
	}

	appointments := make([]repository.AppointmentRow, 0, len(data.Appointments))
	for i, a := range data.Appointments {
		appointments = append(appointments, repository.AppointmentRowFromModel(a, i))
	}
	workItems := make([]repository.WorkItemRow, 0, len(data.WorkItems))
	for i, w := range data.WorkItems {
		workItems = append(workItems, repository.WorkItemRowFromModel(w, i))
	}

	if err := repository.NewSeedRepository(database).Create(ctx, appointments, workItems); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to import seed")
	}

	appLogger.Info().
		Int("appointments", len(appointments)).
		Int("work_items", len(workItems)).
		Msg("seed imported")
}
