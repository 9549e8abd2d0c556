package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"fieldservice-service/internal/clock"
	"fieldservice-service/internal/metrics"
	"fieldservice-service/internal/model"
	"fieldservice-service/internal/repository"
)

// T - "сейчас" во всех тестах пакета.
var T = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

type fixture struct {
	clock        *clock.Manual
	appointments *AppointmentService
	workItems    *WorkItemService
	apptRepo     *repository.AppointmentRepository
	itemRepo     *repository.WorkItemRepository
	metrics      *metrics.Metrics
}

func appointmentAt(id string, start time.Time) model.Appointment {
	return model.NewAppointment(id, start, start.Add(2*time.Hour))
}

func newFixture(t *testing.T, appointments []model.Appointment, items []model.WorkItem) *fixture {
	t.Helper()
	ctx := context.Background()

	apptRepo := repository.NewAppointmentRepository()
	require.NoError(t, apptRepo.Load(ctx, appointments))
	itemRepo := repository.NewWorkItemRepository()
	require.NoError(t, itemRepo.Load(ctx, items))

	clk := clock.NewManual(T)
	m := metrics.Nop()
	return &fixture{
		clock:        clk,
		appointments: NewAppointmentService(apptRepo, clk, NewCalendar(time.UTC), m, zerolog.Nop()),
		workItems:    NewWorkItemService(itemRepo, clk, m, zerolog.Nop()),
		apptRepo:     apptRepo,
		itemRepo:     itemRepo,
		metrics:      m,
	}
}

func ids(list []model.Appointment) []string {
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = a.ID
	}
	return out
}
