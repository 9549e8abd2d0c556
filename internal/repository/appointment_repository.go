package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"fieldservice-service/internal/model"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrAlreadyLoaded  = errors.New("repository already loaded")
)

// AppointmentRepository хранит визиты в памяти. Чтение отдает копии, Update
// выполняет изменение под блокировкой записи: статус, метка времени и шаги
// punch list видны читателю только вместе.
type AppointmentRepository struct {
	mu           sync.RWMutex
	appointments []*model.Appointment
	byID         map[string]*model.Appointment
	loaded       bool
}

func NewAppointmentRepository() *AppointmentRepository {
	return &AppointmentRepository{
		byID: make(map[string]*model.Appointment),
	}
}

// Load выполняется один раз. Порядок загрузки сохраняется.
func (r *AppointmentRepository) Load(ctx context.Context, appointments []model.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loaded {
		return ErrAlreadyLoaded
	}

	list := make([]*model.Appointment, 0, len(appointments))
	byID := make(map[string]*model.Appointment, len(appointments))
	for i := range appointments {
		appt := appointments[i].Clone()
		if appt.ID == "" {
			return fmt.Errorf("appointment at position %d has empty id", i)
		}
		if _, exists := byID[appt.ID]; exists {
			return fmt.Errorf("duplicate appointment id %q", appt.ID)
		}
		if !appt.Status.Valid() {
			return fmt.Errorf("appointment %q has invalid status %q", appt.ID, appt.Status)
		}
		appt.EnsureContainers()
		list = append(list, &appt)
		byID[appt.ID] = &appt
	}

	r.appointments = list
	r.byID = byID
	r.loaded = true
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appt, ok := r.byID[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	clone := appt.Clone()
	return &clone, nil
}

// List возвращает копии в порядке загрузки; match равный nil пропускает все.
func (r *AppointmentRepository) List(ctx context.Context, match func(model.Appointment) bool) []model.Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]model.Appointment, 0, len(r.appointments))
	for _, appt := range r.appointments {
		if match != nil && !match(*appt) {
			continue
		}
		result = append(result, appt.Clone())
	}
	return result
}

// Update для неизвестного id возвращает false и ничего не меняет.
func (r *AppointmentRepository) Update(ctx context.Context, id string, mutate func(*model.Appointment)) (model.Appointment, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appt, ok := r.byID[id]
	if !ok {
		return model.Appointment{}, false
	}
	mutate(appt)
	appt.ID = id
	return appt.Clone(), true
}

func (r *AppointmentRepository) Count(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.appointments)
}
