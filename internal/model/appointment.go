package model

import "time"

type AppointmentStatus string

const (
	AppointmentStatusScheduled   AppointmentStatus = "SCHEDULED"
	AppointmentStatusEnRoute     AppointmentStatus = "EN_ROUTE"
	AppointmentStatusOnSite      AppointmentStatus = "ON_SITE"
	AppointmentStatusInProgress  AppointmentStatus = "IN_PROGRESS"
	AppointmentStatusCompleted   AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled   AppointmentStatus = "CANCELLED"
	AppointmentStatusRescheduled AppointmentStatus = "RESCHEDULED"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusScheduled,
		AppointmentStatusEnRoute,
		AppointmentStatusOnSite,
		AppointmentStatusInProgress,
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
		AppointmentStatusRescheduled:
		return true
	default:
		return false
	}
}

// Terminal: после этого статуса шагов жизненного цикла нет.
func (s AppointmentStatus) Terminal() bool {
	switch s {
	case AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusRescheduled:
		return true
	default:
		return false
	}
}

type Appointment struct {
	ID             string            `json:"id"`
	JobID          string            `json:"job_id"`
	JobNumber      string            `json:"job_number"`
	CustomerName   string            `json:"customer_name"`
	SiteName       string            `json:"site_name"`
	ServiceJobType string            `json:"service_job_type"`
	Location       Location          `json:"location"`
	ScopeOfWork    string            `json:"scope_of_work"`
	ScheduledStart time.Time         `json:"scheduled_start"`
	ScheduledEnd   time.Time         `json:"scheduled_end"`
	Status         AppointmentStatus `json:"status"`

	PunchListProgress PunchListProgress `json:"punch_list_progress"`

	AssignedUsers []AssignedUser `json:"assigned_users"`
	Buildings     []Building     `json:"buildings"`
	Customer      CustomerInfo   `json:"customer"`

	EnRouteStartTime *time.Time `json:"en_route_start_time"`
	ArrivalTime      *time.Time `json:"arrival_time"`
	CompletedTime    *time.Time `json:"completed_time"`

	ArrivalPhotos []Media `json:"arrival_photos"`
}

// NewAppointment создает визит в статусе Scheduled с punch list по умолчанию.
func NewAppointment(id string, scheduledStart, scheduledEnd time.Time) Appointment {
	return Appointment{
		ID:                id,
		ScheduledStart:    scheduledStart,
		ScheduledEnd:      scheduledEnd,
		Status:            AppointmentStatusScheduled,
		PunchListProgress: DefaultPunchListProgress(),
		AssignedUsers:     []AssignedUser{},
		Buildings:         []Building{},
		ArrivalPhotos:     []Media{},
	}
}

// Clone - глубокая копия: срезы и указатели на время не разделяются с оригиналом.
func (a Appointment) Clone() Appointment {
	out := a
	out.Location = a.Location.clone()
	out.EnRouteStartTime = cloneTime(a.EnRouteStartTime)
	out.ArrivalTime = cloneTime(a.ArrivalTime)
	out.CompletedTime = cloneTime(a.CompletedTime)

	out.AssignedUsers = append([]AssignedUser{}, a.AssignedUsers...)

	out.Buildings = make([]Building, len(a.Buildings))
	for i, b := range a.Buildings {
		out.Buildings[i] = b.clone()
	}

	out.ArrivalPhotos = append([]Media{}, a.ArrivalPhotos...)
	return out
}

func (a *Appointment) EnsureContainers() {
	if a.AssignedUsers == nil {
		a.AssignedUsers = []AssignedUser{}
	}
	if a.Buildings == nil {
		a.Buildings = []Building{}
	}
	for i := range a.Buildings {
		if a.Buildings[i].Systems == nil {
			a.Buildings[i].Systems = []SystemInfo{}
		}
	}
	if a.ArrivalPhotos == nil {
		a.ArrivalPhotos = []Media{}
	}
}

type AssignedUser struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

type CustomerInfo struct {
	Name           string  `json:"name"`
	ApprovedBy     string  `json:"approved_by"`
	OnSiteContact  Contact `json:"on_site_contact"`
	BillingContact Contact `json:"billing_contact"`
}

type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
