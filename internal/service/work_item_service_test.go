package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldservice-service/internal/model"
)

func workItemFixture(t *testing.T) *fixture {
	return newFixture(t,
		[]model.Appointment{appointmentAt("apt-001", day(0, 8))},
		[]model.WorkItem{
			model.NewWorkItem("wi-001", "apt-001", model.WorkItemTypeInspection),
			model.NewWorkItem("wi-002", "apt-001", model.WorkItemTypeLineItemRepair),
			model.NewWorkItem("wi-003", "apt-002", model.WorkItemTypeSurvey),
		},
	)
}

func TestWorkItemCompletedAtIsSticky(t *testing.T) {
	f := workItemFixture(t)
	ctx := context.Background()

	require.NoError(t, f.workItems.SetStatus(ctx, "wi-001", model.WorkItemStatusInProgress))
	item, err := f.workItems.Get(ctx, "wi-001")
	require.NoError(t, err)
	assert.Equal(t, model.WorkItemStatusInProgress, item.Status)
	assert.Nil(t, item.CompletedAt)

	completed := f.clock.Advance(30 * time.Minute)
	require.NoError(t, f.workItems.SetStatus(ctx, "wi-001", model.WorkItemStatusCompleted))
	item, err = f.workItems.Get(ctx, "wi-001")
	require.NoError(t, err)
	require.NotNil(t, item.CompletedAt)
	assert.Equal(t, completed, *item.CompletedAt)

	f.clock.Advance(time.Hour)
	require.NoError(t, f.workItems.SetStatus(ctx, "wi-001", model.WorkItemStatusReady))
	item, err = f.workItems.Get(ctx, "wi-001")
	require.NoError(t, err)
	assert.Equal(t, model.WorkItemStatusReady, item.Status)
	require.NotNil(t, item.CompletedAt)
	assert.Equal(t, completed, *item.CompletedAt)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.WorkItemTransitions.WithLabelValues("COMPLETED")))
}

func TestWorkItemStatusIsIndependentOfAppointment(t *testing.T) {
	f := workItemFixture(t)
	ctx := context.Background()

	require.NoError(t, f.workItems.SetStatus(ctx, "wi-002", model.WorkItemStatusCompleted))

	appt, err := f.appointments.Get(ctx, "apt-001")
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusScheduled, appt.Status)

	items := f.workItems.ListForAppointment(ctx, "apt-001")
	require.Len(t, items, 2)
	assert.Equal(t, "wi-001", items[0].ID)
	assert.Equal(t, model.WorkItemStatusCreated, items[0].Status)
	assert.Equal(t, model.WorkItemStatusCompleted, items[1].Status)
}

func TestWorkItemUnknownIDIsNoop(t *testing.T) {
	f := workItemFixture(t)
	ctx := context.Background()

	assert.NoError(t, f.workItems.SetStatus(ctx, "wi-404", model.WorkItemStatusCompleted))
	assert.NoError(t, f.workItems.MarkNeedToReturn(ctx, "wi-404", "parts"))

	for _, id := range []string{"wi-001", "wi-002", "wi-003"} {
		item, err := f.workItems.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, model.WorkItemStatusCreated, item.Status)
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.IgnoredMutations.WithLabelValues("work_item")))

	_, err := f.workItems.Get(ctx, "wi-404")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWorkItemRejectsUnknownStatus(t *testing.T) {
	f := workItemFixture(t)
	err := f.workItems.SetStatus(context.Background(), "wi-001", "ARCHIVED")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMarkNeedToReturn(t *testing.T) {
	f := workItemFixture(t)
	ctx := context.Background()

	require.NoError(t, f.workItems.MarkNeedToReturn(ctx, "wi-001", "  Waiting for parts  "))
	item, err := f.workItems.Get(ctx, "wi-001")
	require.NoError(t, err)
	assert.Equal(t, model.WorkItemStatusNeedToReturn, item.Status)
	require.NotNil(t, item.NeedToReturnReason)
	assert.Equal(t, "Waiting for parts", *item.NeedToReturnReason)
	assert.Nil(t, item.CompletedAt)

	err = f.workItems.MarkNeedToReturn(ctx, "wi-002", "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
	item, err = f.workItems.Get(ctx, "wi-002")
	require.NoError(t, err)
	assert.Equal(t, model.WorkItemStatusCreated, item.Status)
}

func TestListForUnknownAppointment(t *testing.T) {
	f := workItemFixture(t)
	items := f.workItems.ListForAppointment(context.Background(), "apt-404")
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
