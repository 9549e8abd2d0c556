package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"fieldservice-service/internal/clock"
	"fieldservice-service/internal/metrics"
	"fieldservice-service/internal/model"
	"fieldservice-service/internal/repository"
)

type AppointmentService struct {
	appointmentRepo *repository.AppointmentRepository
	clock           clock.Clock
	calendar        Calendar
	metrics         *metrics.Metrics
	log             zerolog.Logger
}

func NewAppointmentService(
	appointmentRepo *repository.AppointmentRepository,
	clk clock.Clock,
	calendar Calendar,
	m *metrics.Metrics,
	log zerolog.Logger,
) *AppointmentService {
	if m == nil {
		m = metrics.Nop()
	}
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		clock:           clk,
		calendar:        calendar,
		metrics:         m,
		log:             log.With().Str("component", "appointment_service").Logger(),
	}
}

func (s *AppointmentService) Get(ctx context.Context, id string) (*model.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return appt, nil
}

// Today возвращает визиты текущего дня по возрастанию начала.
func (s *AppointmentService) Today(ctx context.Context) []model.Appointment {
	return s.list(ctx, CategoryToday, false)
}

// Future возвращает визиты последующих дней по возрастанию начала.
func (s *AppointmentService) Future(ctx context.Context) []model.Appointment {
	return s.list(ctx, CategoryFuture, false)
}

// Past возвращает визиты прошлых дней и завершенные сегодня, по убыванию начала.
func (s *AppointmentService) Past(ctx context.Context) []model.Appointment {
	return s.list(ctx, CategoryPast, true)
}

func (s *AppointmentService) list(ctx context.Context, category Category, descending bool) []model.Appointment {
	now := s.clock.Now()
	result := s.appointmentRepo.List(ctx, func(a model.Appointment) bool {
		return s.calendar.Matches(category, a, now)
	})
	sortByStart(result, descending)
	return result
}

// AdvanceStatus выставляет статус и применяет его эффекты (временная метка и
// шаги punch list) одной операцией. Неизвестный id молча игнорируется;
// ошибка возвращается только для значения вне перечисления.
func (s *AppointmentService) AdvanceStatus(ctx context.Context, id string, status model.AppointmentStatus) error {
	if !status.Valid() {
		return ErrInvalidInput
	}

	var previous model.AppointmentStatus
	now := s.clock.Now()
	_, ok := s.appointmentRepo.Update(ctx, id, func(a *model.Appointment) {
		previous = a.Status
		applyAppointmentTransition(a, status, now)
	})
	if !ok {
		s.metrics.IgnoredMutations.WithLabelValues("appointment").Inc()
		s.log.Debug().Str("appointment_id", id).Str("status", string(status)).Msg("status update for unknown appointment ignored")
		return nil
	}

	s.metrics.AppointmentTransitions.WithLabelValues(string(status)).Inc()
	s.log.Info().
		Str("appointment_id", id).
		Str("from", string(previous)).
		Str("to", string(status)).
		Time("at", now).
		Msg("appointment status changed")
	return nil
}

// Begin запускает визит: с учетом времени в пути переводит в EnRoute, иначе
// сразу в OnSite.
func (s *AppointmentService) Begin(ctx context.Context, id string, trackTravel bool) error {
	if trackTravel {
		return s.AdvanceStatus(ctx, id, model.AppointmentStatusEnRoute)
	}
	return s.AdvanceStatus(ctx, id, model.AppointmentStatusOnSite)
}

// CompleteDay переносит все незавершенные сегодняшние визиты в Rescheduled и
// возвращает их id.
func (s *AppointmentService) CompleteDay(ctx context.Context) ([]string, error) {
	rescheduled := make([]string, 0)
	for _, appt := range s.Today(ctx) {
		if appt.Status == model.AppointmentStatusCompleted {
			continue
		}
		if err := s.AdvanceStatus(ctx, appt.ID, model.AppointmentStatusRescheduled); err != nil {
			return rescheduled, err
		}
		rescheduled = append(rescheduled, appt.ID)
	}

	s.log.Info().Int("rescheduled", len(rescheduled)).Msg("day completed")
	return rescheduled, nil
}
