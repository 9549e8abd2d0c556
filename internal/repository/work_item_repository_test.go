package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldservice-service/internal/model"
)

func TestWorkItemRepositoryListByAppointment(t *testing.T) {
	ctx := context.Background()
	repo := NewWorkItemRepository()
	require.NoError(t, repo.Load(ctx, []model.WorkItem{
		model.NewWorkItem("wi-002", "apt-001", model.WorkItemTypeLineItemRepair),
		model.NewWorkItem("wi-004", "apt-002", model.WorkItemTypeAdhocRepair),
		model.NewWorkItem("wi-001", "apt-001", model.WorkItemTypeInspection),
	}))

	items := repo.ListByAppointmentID(ctx, "apt-001")
	require.Len(t, items, 2)
	assert.Equal(t, "wi-002", items[0].ID)
	assert.Equal(t, "wi-001", items[1].ID)

	empty := repo.ListByAppointmentID(ctx, "does-not-exist")
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestWorkItemRepositoryLoadRejectsBadInput(t *testing.T) {
	ctx := context.Background()

	cases := map[string][]model.WorkItem{
		"empty id":          {model.NewWorkItem("", "apt-001", model.WorkItemTypeSurvey)},
		"no appointment id": {model.NewWorkItem("wi-001", "", model.WorkItemTypeSurvey)},
		"duplicate": {
			model.NewWorkItem("wi-001", "apt-001", model.WorkItemTypeSurvey),
			model.NewWorkItem("wi-001", "apt-002", model.WorkItemTypeSurvey),
		},
		"type": {model.NewWorkItem("wi-001", "apt-001", "REPAIR")},
		"status": {func() model.WorkItem {
			w := model.NewWorkItem("wi-001", "apt-001", model.WorkItemTypeSurvey)
			w.Status = "DONE"
			return w
		}()},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			repo := NewWorkItemRepository()
			assert.Error(t, repo.Load(ctx, input))
			assert.Equal(t, 0, repo.Count(ctx))
		})
	}
}

func TestWorkItemRepositoryUpdateKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	repo := NewWorkItemRepository()
	require.NoError(t, repo.Load(ctx, []model.WorkItem{
		model.NewWorkItem("wi-001", "apt-001", model.WorkItemTypeInspection),
	}))

	updated, ok := repo.Update(ctx, "wi-001", func(w *model.WorkItem) {
		w.AppointmentID = "apt-999"
		w.Type = model.WorkItemTypeEstimate
		w.Status = model.WorkItemStatusInProgress
	})
	require.True(t, ok)
	assert.Equal(t, "apt-001", updated.AppointmentID)
	assert.Equal(t, model.WorkItemTypeInspection, updated.Type)
	assert.Equal(t, model.WorkItemStatusInProgress, updated.Status)
	assert.Len(t, repo.ListByAppointmentID(ctx, "apt-001"), 1)

	_, ok = repo.Update(ctx, "does-not-exist", func(*model.WorkItem) {})
	assert.False(t, ok)

	_, err := repo.GetByID(ctx, "does-not-exist")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
