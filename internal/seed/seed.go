package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"fieldservice-service/internal/model"
	"fieldservice-service/internal/repository"
)

// Source поставляет начальные коллекции один раз при старте.
type Source interface {
	Name() string
	Load(ctx context.Context) (Dataset, error)
}

type Dataset struct {
	Appointments []model.Appointment
	WorkItems    []model.WorkItem
}

// Populate загружает данные источника в репозитории.
func Populate(
	ctx context.Context,
	src Source,
	appointmentRepo *repository.AppointmentRepository,
	workItemRepo *repository.WorkItemRepository,
	log zerolog.Logger,
) error {
	data, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("load seed %s: %w", src.Name(), err)
	}
	if err := appointmentRepo.Load(ctx, data.Appointments); err != nil {
		return fmt.Errorf("seed appointments: %w", err)
	}
	if err := workItemRepo.Load(ctx, data.WorkItems); err != nil {
		return fmt.Errorf("seed work items: %w", err)
	}

	log.Info().
		Str("source", src.Name()).
		Int("appointments", len(data.Appointments)).
		Int("work_items", len(data.WorkItems)).
		Msg("seed loaded")
	return nil
}
