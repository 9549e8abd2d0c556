package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"fieldservice-service/internal/clock"
	"fieldservice-service/internal/metrics"
	"fieldservice-service/internal/model"
	"fieldservice-service/internal/repository"
)

type WorkItemService struct {
	workItemRepo *repository.WorkItemRepository
	clock        clock.Clock
	metrics      *metrics.Metrics
	log          zerolog.Logger
}

func NewWorkItemService(
	workItemRepo *repository.WorkItemRepository,
	clk clock.Clock,
	m *metrics.Metrics,
	log zerolog.Logger,
) *WorkItemService {
	if m == nil {
		m = metrics.Nop()
	}
	return &WorkItemService{
		workItemRepo: workItemRepo,
		clock:        clk,
		metrics:      m,
		log:          log.With().Str("component", "work_item_service").Logger(),
	}
}

func (s *WorkItemService) Get(ctx context.Context, id string) (*model.WorkItem, error) {
	item, err := s.workItemRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

// ListForAppointment никогда не возвращает ошибку: для неизвестного визита
// результат пустой.
func (s *WorkItemService) ListForAppointment(ctx context.Context, appointmentID string) []model.WorkItem {
	return s.workItemRepo.ListByAppointmentID(ctx, appointmentID)
}

// SetStatus выставляет статус работы. Completed фиксирует completedAt;
// другие статусы его не трогают. Связь со статусом визита не проверяется.
func (s *WorkItemService) SetStatus(ctx context.Context, id string, status model.WorkItemStatus) error {
	if !status.Valid() {
		return ErrInvalidInput
	}
	return s.update(ctx, id, status, func(w *model.WorkItem) {})
}

// MarkNeedToReturn переводит работу в NeedToReturn с указанием причины.
func (s *WorkItemService) MarkNeedToReturn(ctx context.Context, id, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrInvalidInput
	}
	return s.update(ctx, id, model.WorkItemStatusNeedToReturn, func(w *model.WorkItem) {
		w.NeedToReturnReason = &reason
	})
}

func (s *WorkItemService) update(ctx context.Context, id string, status model.WorkItemStatus, extra func(*model.WorkItem)) error {
	var previous model.WorkItemStatus
	now := s.clock.Now()
	_, ok := s.workItemRepo.Update(ctx, id, func(w *model.WorkItem) {
		previous = w.Status
		applyWorkItemStatus(w, status, now)
		extra(w)
	})
	if !ok {
		s.metrics.IgnoredMutations.WithLabelValues("work_item").Inc()
		s.log.Debug().Str("work_item_id", id).Str("status", string(status)).Msg("status update for unknown work item ignored")
		return nil
	}

	s.metrics.WorkItemTransitions.WithLabelValues(string(status)).Inc()
	s.log.Info().
		Str("work_item_id", id).
		Str("from", string(previous)).
		Str("to", string(status)).
		Msg("work item status changed")
	return nil
}
