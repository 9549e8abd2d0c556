package model

type PunchListStepStatus string

const (
	PunchListStepLocked     PunchListStepStatus = "LOCKED"
	PunchListStepAvailable  PunchListStepStatus = "AVAILABLE"
	PunchListStepInProgress PunchListStepStatus = "IN_PROGRESS"
	PunchListStepCompleted  PunchListStepStatus = "COMPLETED"
)

func (s PunchListStepStatus) Valid() bool {
	switch s {
	case PunchListStepLocked, PunchListStepAvailable, PunchListStepInProgress, PunchListStepCompleted:
		return true
	default:
		return false
	}
}

// PunchListStep - один из четырех шагов визита, по порядку.
type PunchListStep int

const (
	StepDriveToAppointment PunchListStep = iota + 1
	StepAppointmentArrival
	StepSurveyBuildingsSystems
	StepCompleteAppointment
)

var PunchListSteps = []PunchListStep{
	StepDriveToAppointment,
	StepAppointmentArrival,
	StepSurveyBuildingsSystems,
	StepCompleteAppointment,
}

func (s PunchListStep) String() string {
	switch s {
	case StepDriveToAppointment:
		return "drive_to_appointment"
	case StepAppointmentArrival:
		return "appointment_arrival"
	case StepSurveyBuildingsSystems:
		return "survey_buildings_systems"
	case StepCompleteAppointment:
		return "complete_appointment"
	default:
		return "unknown"
	}
}

type PunchListProgress struct {
	DriveToAppointment     PunchListStepStatus `json:"drive_to_appointment"`
	AppointmentArrival     PunchListStepStatus `json:"appointment_arrival"`
	SurveyBuildingsSystems PunchListStepStatus `json:"survey_buildings_systems"`
	CompleteAppointment    PunchListStepStatus `json:"complete_appointment"`
}

// DefaultPunchListProgress: доступен только шаг поездки.
func DefaultPunchListProgress() PunchListProgress {
	return PunchListProgress{
		DriveToAppointment:     PunchListStepAvailable,
		AppointmentArrival:     PunchListStepLocked,
		SurveyBuildingsSystems: PunchListStepLocked,
		CompleteAppointment:    PunchListStepLocked,
	}
}

func (p PunchListProgress) Step(step PunchListStep) PunchListStepStatus {
	switch step {
	case StepDriveToAppointment:
		return p.DriveToAppointment
	case StepAppointmentArrival:
		return p.AppointmentArrival
	case StepSurveyBuildingsSystems:
		return p.SurveyBuildingsSystems
	case StepCompleteAppointment:
		return p.CompleteAppointment
	default:
		return ""
	}
}

func (p *PunchListProgress) SetStep(step PunchListStep, status PunchListStepStatus) {
	switch step {
	case StepDriveToAppointment:
		p.DriveToAppointment = status
	case StepAppointmentArrival:
		p.AppointmentArrival = status
	case StepSurveyBuildingsSystems:
		p.SurveyBuildingsSystems = status
	case StepCompleteAppointment:
		p.CompleteAppointment = status
	}
}
