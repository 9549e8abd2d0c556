package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"fieldservice-service/internal/model"
)

// AppointmentRow - строка таблицы appointments, из которой один раз при
// старте читаются визиты. Вложенные описательные данные лежат в jsonb.
type AppointmentRow struct {
	ID             string    `gorm:"type:varchar(64);primaryKey"`
	Position       int       `gorm:"not null;default:0;index"`
	JobID          string    `gorm:"type:varchar(64)"`
	JobNumber      string    `gorm:"type:varchar(64)"`
	CustomerName   string    `gorm:"type:text"`
	SiteName       string    `gorm:"type:text"`
	ServiceJobType string    `gorm:"type:varchar(64)"`
	Address        string    `gorm:"type:text"`
	City           string    `gorm:"type:varchar(128)"`
	State          string    `gorm:"type:varchar(32)"`
	Zip            string    `gorm:"type:varchar(16)"`
	Latitude       *float64
	Longitude      *float64
	ScopeOfWork    string    `gorm:"type:text"`
	ScheduledStart time.Time `gorm:"not null"`
	ScheduledEnd   time.Time `gorm:"not null"`
	Status         string    `gorm:"type:varchar(32);not null;default:SCHEDULED"`

	DriveStep    string `gorm:"type:varchar(32);not null;default:AVAILABLE"`
	ArrivalStep  string `gorm:"type:varchar(32);not null;default:LOCKED"`
	SurveyStep   string `gorm:"type:varchar(32);not null;default:LOCKED"`
	CompleteStep string `gorm:"type:varchar(32);not null;default:LOCKED"`

	EnRouteStartTime *time.Time
	ArrivalTime      *time.Time
	CompletedTime    *time.Time

	AssignedUsers datatypes.JSONSlice[model.AssignedUser] `gorm:"type:jsonb"`
	Buildings     datatypes.JSONSlice[model.Building]     `gorm:"type:jsonb"`
	Customer      datatypes.JSONType[model.CustomerInfo]  `gorm:"type:jsonb"`
	ArrivalPhotos datatypes.JSONSlice[model.Media]        `gorm:"type:jsonb"`
}

func (AppointmentRow) TableName() string {
	return "appointments"
}

type WorkItemRow struct {
	ID                 string  `gorm:"type:varchar(64);primaryKey"`
	Position           int     `gorm:"not null;default:0;index"`
	AppointmentID      string  `gorm:"type:varchar(64);not null;index"`
	BuildingID         string  `gorm:"type:varchar(64)"`
	SystemID           string  `gorm:"type:varchar(64)"`
	Type               string  `gorm:"type:varchar(32);not null"`
	Status             string  `gorm:"type:varchar(32);not null;default:CREATED"`
	Title              string  `gorm:"type:text"`
	Description        string  `gorm:"type:text"`
	BuildingName       string  `gorm:"type:text"`
	SystemName         string  `gorm:"type:text"`
	NeedToReturnReason *string `gorm:"type:text"`
	CreatedAt          time.Time
	CreatedBy          string `gorm:"type:varchar(128)"`
	CompletedAt        *time.Time

	Milestones datatypes.JSONSlice[model.Milestone] `gorm:"type:jsonb"`
}

func (WorkItemRow) TableName() string {
	return "work_items"
}

// SeedRepository читает начальные данные из базы. Состояние жизненного
// цикла обратно не записывается.
type SeedRepository struct {
	db *gorm.DB
}

func NewSeedRepository(db *gorm.DB) *SeedRepository {
	return &SeedRepository{db: db}
}

func (r *SeedRepository) ListAppointments(ctx context.Context) ([]model.Appointment, error) {
	var rows []AppointmentRow
	if err := r.db.WithContext(ctx).Order("position ASC, scheduled_start ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]model.Appointment, 0, len(rows))
	for _, row := range rows {
		appt, err := row.ToModel()
		if err != nil {
			return nil, err
		}
		result = append(result, appt)
	}
	return result, nil
}

func (r *SeedRepository) ListWorkItems(ctx context.Context) ([]model.WorkItem, error) {
	var rows []WorkItemRow
	if err := r.db.WithContext(ctx).Order("position ASC, created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]model.WorkItem, 0, len(rows))
	for _, row := range rows {
		item, err := row.ToModel()
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, nil
}

// Create сохраняет seed-строки; используется утилитами наполнения базы.
func (r *SeedRepository) Create(ctx context.Context, appointments []AppointmentRow, workItems []WorkItemRow) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(appointments) > 0 {
			if err := tx.Create(&appointments).Error; err != nil {
				return err
			}
		}
		if len(workItems) > 0 {
			if err := tx.Create(&workItems).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (row AppointmentRow) ToModel() (model.Appointment, error) {
	status := model.AppointmentStatus(row.Status)
	if !status.Valid() {
		return model.Appointment{}, fmt.Errorf("appointment %q: invalid status %q", row.ID, row.Status)
	}

	progress := model.PunchListProgress{
		DriveToAppointment:     model.PunchListStepStatus(row.DriveStep),
		AppointmentArrival:     model.PunchListStepStatus(row.ArrivalStep),
		SurveyBuildingsSystems: model.PunchListStepStatus(row.SurveyStep),
		CompleteAppointment:    model.PunchListStepStatus(row.CompleteStep),
	}
	for _, step := range model.PunchListSteps {
		if !progress.Step(step).Valid() {
			return model.Appointment{}, fmt.Errorf("appointment %q: invalid %s step status %q", row.ID, step, progress.Step(step))
		}
	}

	appt := model.Appointment{
		ID:             row.ID,
		JobID:          row.JobID,
		JobNumber:      row.JobNumber,
		CustomerName:   row.CustomerName,
		SiteName:       row.SiteName,
		ServiceJobType: row.ServiceJobType,
		Location: model.Location{
			Address:   row.Address,
			City:      row.City,
			State:     row.State,
			Zip:       row.Zip,
			Latitude:  row.Latitude,
			Longitude: row.Longitude,
		},
		ScopeOfWork:       row.ScopeOfWork,
		ScheduledStart:    row.ScheduledStart,
		ScheduledEnd:      row.ScheduledEnd,
		Status:            status,
		PunchListProgress: progress,
		AssignedUsers:     []model.AssignedUser(row.AssignedUsers),
		Buildings:         []model.Building(row.Buildings),
		Customer:          row.Customer.Data(),
		EnRouteStartTime:  row.EnRouteStartTime,
		ArrivalTime:       row.ArrivalTime,
		CompletedTime:     row.CompletedTime,
		ArrivalPhotos:     []model.Media(row.ArrivalPhotos),
	}
	appt.EnsureContainers()
	return appt, nil
}

func (row WorkItemRow) ToModel() (model.WorkItem, error) {
	itemType := model.WorkItemType(row.Type)
	if !itemType.Valid() {
		return model.WorkItem{}, fmt.Errorf("work item %q: invalid type %q", row.ID, row.Type)
	}
	status := model.WorkItemStatus(row.Status)
	if !status.Valid() {
		return model.WorkItem{}, fmt.Errorf("work item %q: invalid status %q", row.ID, row.Status)
	}

	item := model.WorkItem{
		ID:                 row.ID,
		AppointmentID:      row.AppointmentID,
		BuildingID:         row.BuildingID,
		SystemID:           row.SystemID,
		Type:               itemType,
		Status:             status,
		Title:              row.Title,
		Description:        row.Description,
		BuildingName:       row.BuildingName,
		SystemName:         row.SystemName,
		Milestones:         []model.Milestone(row.Milestones),
		NeedToReturnReason: row.NeedToReturnReason,
		CreatedAt:          row.CreatedAt,
		CreatedBy:          row.CreatedBy,
		CompletedAt:        row.CompletedAt,
	}
	item.EnsureContainers()
	return item, nil
}

// AppointmentRowFromModel - обратное преобразование для наполнения базы.
func AppointmentRowFromModel(a model.Appointment, position int) AppointmentRow {
	return AppointmentRow{
		ID:               a.ID,
		Position:         position,
		JobID:            a.JobID,
		JobNumber:        a.JobNumber,
		CustomerName:     a.CustomerName,
		SiteName:         a.SiteName,
		ServiceJobType:   a.ServiceJobType,
		Address:          a.Location.Address,
		City:             a.Location.City,
		State:            a.Location.State,
		Zip:              a.Location.Zip,
		Latitude:         a.Location.Latitude,
		Longitude:        a.Location.Longitude,
		ScopeOfWork:      a.ScopeOfWork,
		ScheduledStart:   a.ScheduledStart,
		ScheduledEnd:     a.ScheduledEnd,
		Status:           string(a.Status),
		DriveStep:        string(a.PunchListProgress.DriveToAppointment),
		ArrivalStep:      string(a.PunchListProgress.AppointmentArrival),
		SurveyStep:       string(a.PunchListProgress.SurveyBuildingsSystems),
		CompleteStep:     string(a.PunchListProgress.CompleteAppointment),
		EnRouteStartTime: a.EnRouteStartTime,
		ArrivalTime:      a.ArrivalTime,
		CompletedTime:    a.CompletedTime,
		AssignedUsers:    datatypes.NewJSONSlice(a.AssignedUsers),
		Buildings:        datatypes.NewJSONSlice(a.Buildings),
		Customer:         datatypes.NewJSONType(a.Customer),
		ArrivalPhotos:    datatypes.NewJSONSlice(a.ArrivalPhotos),
	}
}

func WorkItemRowFromModel(w model.WorkItem, position int) WorkItemRow {
	return WorkItemRow{
		ID:                 w.ID,
		Position:           position,
		AppointmentID:      w.AppointmentID,
		BuildingID:         w.BuildingID,
		SystemID:           w.SystemID,
		Type:               string(w.Type),
		Status:             string(w.Status),
		Title:              w.Title,
		Description:        w.Description,
		BuildingName:       w.BuildingName,
		SystemName:         w.SystemName,
		NeedToReturnReason: w.NeedToReturnReason,
		CreatedAt:          w.CreatedAt,
		CreatedBy:          w.CreatedBy,
		CompletedAt:        w.CompletedAt,
		Milestones:         datatypes.NewJSONSlice(w.Milestones),
	}
}
