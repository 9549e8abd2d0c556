package service

import (
	"time"

	"fieldservice-service/internal/model"
)

type stepChange struct {
	step   model.PunchListStep
	status model.PunchListStepStatus
}

type transitionEffect struct {
	stamp     func(a *model.Appointment, now time.Time)
	punchList []stepChange
}

// Эффекты определяются только целевым статусом; предыдущий статус не
// проверяется. Scheduled, Cancelled и Rescheduled эффектов не имеют.
var appointmentTransitions = map[model.AppointmentStatus]transitionEffect{
	model.AppointmentStatusEnRoute: {
		stamp: func(a *model.Appointment, now time.Time) { a.EnRouteStartTime = &now },
		punchList: []stepChange{
			{model.StepDriveToAppointment, model.PunchListStepInProgress},
		},
	},
	model.AppointmentStatusOnSite: {
		stamp: func(a *model.Appointment, now time.Time) { a.ArrivalTime = &now },
		punchList: []stepChange{
			{model.StepDriveToAppointment, model.PunchListStepCompleted},
			{model.StepAppointmentArrival, model.PunchListStepInProgress},
		},
	},
	model.AppointmentStatusInProgress: {
		punchList: []stepChange{
			{model.StepAppointmentArrival, model.PunchListStepCompleted},
			{model.StepSurveyBuildingsSystems, model.PunchListStepInProgress},
		},
	},
	model.AppointmentStatusCompleted: {
		stamp: func(a *model.Appointment, now time.Time) { a.CompletedTime = &now },
		punchList: []stepChange{
			{model.StepSurveyBuildingsSystems, model.PunchListStepCompleted},
			{model.StepCompleteAppointment, model.PunchListStepCompleted},
		},
	},
}

func applyAppointmentTransition(a *model.Appointment, status model.AppointmentStatus, now time.Time) {
	a.Status = status

	effect, ok := appointmentTransitions[status]
	if !ok {
		return
	}
	if effect.stamp != nil {
		effect.stamp(a, now)
	}
	for _, change := range effect.punchList {
		a.PunchListProgress.SetStep(change.step, change.status)
	}
}

func applyWorkItemStatus(w *model.WorkItem, status model.WorkItemStatus, now time.Time) {
	w.Status = status
	// completedAt не сбрасывается при уходе из Completed
	if status == model.WorkItemStatusCompleted {
		w.CompletedAt = &now
	}
}
