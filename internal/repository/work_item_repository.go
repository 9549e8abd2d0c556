package repository

import (
	"context"
	"fmt"
	"sync"

	"fieldservice-service/internal/model"
)

type WorkItemRepository struct {
	mu            sync.RWMutex
	items         []*model.WorkItem
	byID          map[string]*model.WorkItem
	byAppointment map[string][]*model.WorkItem
	loaded        bool
}

func NewWorkItemRepository() *WorkItemRepository {
	return &WorkItemRepository{
		byID:          make(map[string]*model.WorkItem),
		byAppointment: make(map[string][]*model.WorkItem),
	}
}

func (r *WorkItemRepository) Load(ctx context.Context, items []model.WorkItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loaded {
		return ErrAlreadyLoaded
	}

	list := make([]*model.WorkItem, 0, len(items))
	byID := make(map[string]*model.WorkItem, len(items))
	byAppointment := make(map[string][]*model.WorkItem)
	for i := range items {
		item := items[i].Clone()
		if item.ID == "" {
			return fmt.Errorf("work item at position %d has empty id", i)
		}
		if item.AppointmentID == "" {
			return fmt.Errorf("work item %q has no appointment id", item.ID)
		}
		if _, exists := byID[item.ID]; exists {
			return fmt.Errorf("duplicate work item id %q", item.ID)
		}
		if !item.Type.Valid() {
			return fmt.Errorf("work item %q has invalid type %q", item.ID, item.Type)
		}
		if !item.Status.Valid() {
			return fmt.Errorf("work item %q has invalid status %q", item.ID, item.Status)
		}
		item.EnsureContainers()
		list = append(list, &item)
		byID[item.ID] = &item
		byAppointment[item.AppointmentID] = append(byAppointment[item.AppointmentID], &item)
	}

	r.items = list
	r.byID = byID
	r.byAppointment = byAppointment
	r.loaded = true
	return nil
}

func (r *WorkItemRepository) GetByID(ctx context.Context, id string) (*model.WorkItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	clone := item.Clone()
	return &clone, nil
}

// ListByAppointmentID для неизвестного визита возвращает пустой срез.
func (r *WorkItemRepository) ListByAppointmentID(ctx context.Context, appointmentID string) []model.WorkItem {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.byAppointment[appointmentID]
	result := make([]model.WorkItem, 0, len(items))
	for _, item := range items {
		result = append(result, item.Clone())
	}
	return result
}

func (r *WorkItemRepository) Update(ctx context.Context, id string, mutate func(*model.WorkItem)) (model.WorkItem, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.byID[id]
	if !ok {
		return model.WorkItem{}, false
	}
	// id, визит и тип не меняются
	appointmentID, itemType := item.AppointmentID, item.Type
	mutate(item)
	item.ID, item.AppointmentID, item.Type = id, appointmentID, itemType
	return item.Clone(), true
}

func (r *WorkItemRepository) Count(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
