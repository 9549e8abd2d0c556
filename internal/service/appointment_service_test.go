package service

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldservice-service/internal/model"
)

func day(offset, hour int) time.Time {
	return time.Date(2026, 3, 2+offset, hour, 0, 0, 0, time.UTC)
}

func categoryFixture(t *testing.T) *fixture {
	completedToday := appointmentAt("today-done", day(0, 7))
	completedToday.Status = model.AppointmentStatusCompleted

	return newFixture(t, []model.Appointment{
		appointmentAt("today-13", day(0, 13)),
		appointmentAt("future-2", day(2, 9)),
		appointmentAt("past-1", day(-1, 10)),
		appointmentAt("today-08", day(0, 8)),
		completedToday,
		appointmentAt("future-1", day(1, 9)),
		appointmentAt("past-3", day(-3, 10)),
		appointmentAt("today-00", day(0, 0)),
		appointmentAt("today-23", time.Date(2026, 3, 2, 23, 59, 59, 0, time.UTC)),
	}, nil)
}

func TestTodayFutureOrdering(t *testing.T) {
	f := categoryFixture(t)
	ctx := context.Background()

	assert.Equal(t, []string{"today-00", "today-done", "today-08", "today-13", "today-23"}, ids(f.appointments.Today(ctx)))
	assert.Equal(t, []string{"future-1", "future-2"}, ids(f.appointments.Future(ctx)))
}

func TestPastIncludesCompletedToday(t *testing.T) {
	f := categoryFixture(t)
	ctx := context.Background()

	past := f.appointments.Past(ctx)
	assert.Equal(t, []string{"today-done", "past-1", "past-3"}, ids(past))
	assert.Equal(t, []string{"past-1", "past-3"}, ids(Unresolved(past)))
}

func TestCategoryProperties(t *testing.T) {
	f := categoryFixture(t)
	ctx := context.Background()

	today := f.appointments.Today(ctx)
	future := f.appointments.Future(ctx)
	past := f.appointments.Past(ctx)

	todayIDs := make(map[string]bool)
	for _, a := range today {
		todayIDs[a.ID] = true
	}
	for _, a := range future {
		assert.False(t, todayIDs[a.ID], "%s in both today and future", a.ID)
	}
	for _, a := range past {
		if todayIDs[a.ID] {
			assert.Equal(t, model.AppointmentStatusCompleted, a.Status, "%s overlaps today without being completed", a.ID)
		}
	}
	for _, a := range today {
		inPast := false
		for _, p := range past {
			if p.ID == a.ID {
				inPast = true
			}
		}
		assert.Equal(t, a.Status == model.AppointmentStatusCompleted, inPast, a.ID)
	}

	for i := 1; i < len(today); i++ {
		assert.False(t, today[i].ScheduledStart.Before(today[i-1].ScheduledStart))
	}
	for i := 1; i < len(future); i++ {
		assert.False(t, future[i].ScheduledStart.Before(future[i-1].ScheduledStart))
	}
	for i := 1; i < len(past); i++ {
		assert.False(t, past[i].ScheduledStart.After(past[i-1].ScheduledStart))
	}
}

func TestCategoriesFollowClock(t *testing.T) {
	f := categoryFixture(t)
	ctx := context.Background()

	f.clock.Set(day(1, 6))
	assert.Equal(t, []string{"future-1"}, ids(f.appointments.Today(ctx)))
	assert.Equal(t, []string{"future-2"}, ids(f.appointments.Future(ctx)))
	assert.Contains(t, ids(f.appointments.Past(ctx)), "today-13")
}

func TestCategoriesUseCalendarZone(t *testing.T) {
	ctx := context.Background()
	// 2026-03-02 20:00 UTC - уже 3 марта в UTC+5
	appt := appointmentAt("late", time.Date(2026, 3, 2, 20, 0, 0, 0, time.UTC))
	f := newFixture(t, []model.Appointment{appt}, nil)

	plus5 := NewAppointmentService(f.apptRepo, f.clock, NewCalendar(time.FixedZone("UTC+5", 5*60*60)), nil, zerolog.Nop())
	assert.Equal(t, []string{"late"}, ids(f.appointments.Today(ctx)))
	assert.Empty(t, plus5.Today(ctx))
	assert.Equal(t, []string{"late"}, ids(plus5.Future(ctx)))
}

func TestEqualStartKeepsSeedOrder(t *testing.T) {
	f := newFixture(t, []model.Appointment{
		appointmentAt("b", day(0, 9)),
		appointmentAt("a", day(0, 9)),
		appointmentAt("y", day(-1, 9)),
		appointmentAt("x", day(-1, 9)),
	}, nil)
	ctx := context.Background()

	assert.Equal(t, []string{"b", "a"}, ids(f.appointments.Today(ctx)))
	assert.Equal(t, []string{"y", "x"}, ids(f.appointments.Past(ctx)))
}

func TestAdvanceStatusWorkflow(t *testing.T) {
	f := newFixture(t, []model.Appointment{appointmentAt("apt-001", day(0, 8))}, nil)
	ctx := context.Background()

	require.NoError(t, f.appointments.AdvanceStatus(ctx, "apt-001", model.AppointmentStatusEnRoute))
	appt, err := f.appointments.Get(ctx, "apt-001")
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusEnRoute, appt.Status)
	require.NotNil(t, appt.EnRouteStartTime)
	assert.Equal(t, T, *appt.EnRouteStartTime)
	assert.Equal(t, model.PunchListProgress{
		DriveToAppointment:     model.PunchListStepInProgress,
		AppointmentArrival:     model.PunchListStepLocked,
		SurveyBuildingsSystems: model.PunchListStepLocked,
		CompleteAppointment:    model.PunchListStepLocked,
	}, appt.PunchListProgress)

	arrival := f.clock.Advance(5 * time.Minute)
	require.NoError(t, f.appointments.AdvanceStatus(ctx, "apt-001", model.AppointmentStatusOnSite))
	appt, err = f.appointments.Get(ctx, "apt-001")
	require.NoError(t, err)
	require.NotNil(t, appt.ArrivalTime)
	assert.Equal(t, arrival, *appt.ArrivalTime)
	assert.Equal(t, T, *appt.EnRouteStartTime)
	assert.Equal(t, model.PunchListStepCompleted, appt.PunchListProgress.DriveToAppointment)
	assert.Equal(t, model.PunchListStepInProgress, appt.PunchListProgress.AppointmentArrival)
	assert.Equal(t, model.PunchListStepLocked, appt.PunchListProgress.SurveyBuildingsSystems)

	f.clock.Advance(10 * time.Minute)
	require.NoError(t, f.appointments.AdvanceStatus(ctx, "apt-001", model.AppointmentStatusInProgress))
	appt, err = f.appointments.Get(ctx, "apt-001")
	require.NoError(t, err)
	assert.Equal(t, model.PunchListStepCompleted, appt.PunchListProgress.AppointmentArrival)
	assert.Equal(t, model.PunchListStepInProgress, appt.PunchListProgress.SurveyBuildingsSystems)
	assert.Equal(t, model.PunchListStepLocked, appt.PunchListProgress.CompleteAppointment)
	assert.Nil(t, appt.CompletedTime)

	done := f.clock.Advance(time.Hour)
	require.NoError(t, f.appointments.AdvanceStatus(ctx, "apt-001", model.AppointmentStatusCompleted))
	appt, err = f.appointments.Get(ctx, "apt-001")
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, appt.Status)
	require.NotNil(t, appt.CompletedTime)
	assert.Equal(t, done, *appt.CompletedTime)
	for _, step := range model.PunchListSteps {
		assert.Equal(t, model.PunchListStepCompleted, appt.PunchListProgress.Step(step), step.String())
	}

	assert.False(t, appt.EnRouteStartTime.After(*appt.ArrivalTime))
	assert.False(t, appt.ArrivalTime.After(*appt.CompletedTime))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.AppointmentTransitions.WithLabelValues("COMPLETED")))
}

func TestAdvanceStatusAllowsAnyJump(t *testing.T) {
	f := newFixture(t, []model.Appointment{appointmentAt("apt-001", day(0, 8))}, nil)
	ctx := context.Background()

	require.NoError(t, f.appointments.AdvanceStatus(ctx, "apt-001", model.AppointmentStatusCompleted))
	appt, err := f.appointments.Get(ctx, "apt-001")
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, appt.Status)
	assert.NotNil(t, appt.CompletedTime)
	assert.Nil(t, appt.EnRouteStartTime)
	assert.Nil(t, appt.ArrivalTime)
	// шаг 1 и 2 остаются как были: эффекты зависят только от целевого статуса
	assert.Equal(t, model.PunchListStepAvailable, appt.PunchListProgress.DriveToAppointment)
	assert.Equal(t, model.PunchListStepLocked, appt.PunchListProgress.AppointmentArrival)
	assert.Equal(t, model.PunchListStepCompleted, appt.PunchListProgress.SurveyBuildingsSystems)
	assert.Equal(t, model.PunchListStepCompleted, appt.PunchListProgress.CompleteAppointment)

	require.NoError(t, f.appointments.AdvanceStatus(ctx, "apt-001", model.AppointmentStatusScheduled))
	appt, err = f.appointments.Get(ctx, "apt-001")
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusScheduled, appt.Status)
	assert.NotNil(t, appt.CompletedTime)
}

func TestAdvanceStatusWithoutPunchListEffect(t *testing.T) {
	for _, status := range []model.AppointmentStatus{
		model.AppointmentStatusCancelled,
		model.AppointmentStatusRescheduled,
		model.AppointmentStatusScheduled,
	} {
		t.Run(string(status), func(t *testing.T) {
			f := newFixture(t, []model.Appointment{appointmentAt("apt-001", day(0, 8))}, nil)
			ctx := context.Background()
			before, err := f.appointments.Get(ctx, "apt-001")
			require.NoError(t, err)

			require.NoError(t, f.appointments.AdvanceStatus(ctx, "apt-001", status))
			after, err := f.appointments.Get(ctx, "apt-001")
			require.NoError(t, err)

			assert.Equal(t, status, after.Status)
			assert.Equal(t, before.PunchListProgress, after.PunchListProgress)
			assert.Nil(t, after.EnRouteStartTime)
			assert.Nil(t, after.ArrivalTime)
			assert.Nil(t, after.CompletedTime)
		})
	}
}

func TestAdvanceStatusUnknownIDIsNoop(t *testing.T) {
	f := categoryFixture(t)
	ctx := context.Background()
	before := f.apptRepo.List(ctx, nil)

	assert.NoError(t, f.appointments.AdvanceStatus(ctx, "does-not-exist", model.AppointmentStatusCompleted))

	assert.Equal(t, before, f.apptRepo.List(ctx, nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.IgnoredMutations.WithLabelValues("appointment")))
}

func TestAdvanceStatusRejectsUnknownStatus(t *testing.T) {
	f := newFixture(t, []model.Appointment{appointmentAt("apt-001", day(0, 8))}, nil)
	ctx := context.Background()

	err := f.appointments.AdvanceStatus(ctx, "apt-001", "TELEPORTED")
	assert.ErrorIs(t, err, ErrInvalidInput)

	appt, err := f.appointments.Get(ctx, "apt-001")
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusScheduled, appt.Status)
}

func TestGetUnknownAppointment(t *testing.T) {
	f := newFixture(t, nil, nil)
	_, err := f.appointments.Get(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBegin(t *testing.T) {
	f := newFixture(t, []model.Appointment{
		appointmentAt("drive", day(0, 8)),
		appointmentAt("skip", day(0, 9)),
	}, nil)
	ctx := context.Background()

	require.NoError(t, f.appointments.Begin(ctx, "drive", true))
	require.NoError(t, f.appointments.Begin(ctx, "skip", false))

	drive, err := f.appointments.Get(ctx, "drive")
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusEnRoute, drive.Status)
	assert.NotNil(t, drive.EnRouteStartTime)

	skip, err := f.appointments.Get(ctx, "skip")
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusOnSite, skip.Status)
	assert.Nil(t, skip.EnRouteStartTime)
	assert.NotNil(t, skip.ArrivalTime)
	assert.Equal(t, model.PunchListStepCompleted, skip.PunchListProgress.DriveToAppointment)
}

func TestCompleteDay(t *testing.T) {
	f := categoryFixture(t)
	ctx := context.Background()

	rescheduled, err := f.appointments.CompleteDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"today-00", "today-08", "today-13", "today-23"}, rescheduled)

	for _, a := range f.appointments.Today(ctx) {
		if a.ID == "today-done" {
			assert.Equal(t, model.AppointmentStatusCompleted, a.Status)
			continue
		}
		assert.Equal(t, model.AppointmentStatusRescheduled, a.Status, a.ID)
	}

	future, err := f.appointments.Get(ctx, "future-1")
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusScheduled, future.Status)
}
