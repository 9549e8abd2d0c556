package model

import "time"

type WorkItemType string

const (
	WorkItemTypeInspection     WorkItemType = "INSPECTION"
	WorkItemTypeSurvey         WorkItemType = "SURVEY"
	WorkItemTypeEstimate       WorkItemType = "ESTIMATE"
	WorkItemTypeAdhocRepair    WorkItemType = "ADHOC_REPAIR"
	WorkItemTypeLineItemRepair WorkItemType = "LINE_ITEM_REPAIR"
)

func (t WorkItemType) Valid() bool {
	switch t {
	case WorkItemTypeInspection,
		WorkItemTypeSurvey,
		WorkItemTypeEstimate,
		WorkItemTypeAdhocRepair,
		WorkItemTypeLineItemRepair:
		return true
	default:
		return false
	}
}

type WorkItemStatus string

const (
	WorkItemStatusCreated      WorkItemStatus = "CREATED"
	WorkItemStatusReady        WorkItemStatus = "READY"
	WorkItemStatusInProgress   WorkItemStatus = "IN_PROGRESS"
	WorkItemStatusCompleted    WorkItemStatus = "COMPLETED"
	WorkItemStatusNeedToReturn WorkItemStatus = "NEED_TO_RETURN"
)

func (s WorkItemStatus) Valid() bool {
	switch s {
	case WorkItemStatusCreated,
		WorkItemStatusReady,
		WorkItemStatusInProgress,
		WorkItemStatusCompleted,
		WorkItemStatusNeedToReturn:
		return true
	default:
		return false
	}
}

type WorkItem struct {
	ID            string `json:"id"`
	AppointmentID string `json:"appointment_id"`
	BuildingID    string `json:"building_id"`
	SystemID      string `json:"system_id"`

	Type   WorkItemType   `json:"type"`
	Status WorkItemStatus `json:"status"`

	Title       string `json:"title"`
	Description string `json:"description"`

	BuildingName string `json:"building_name"`
	SystemName   string `json:"system_name"`

	Milestones []Milestone `json:"milestones"`

	// заполняется при переводе в NeedToReturn
	NeedToReturnReason *string `json:"need_to_return_reason"`

	CreatedAt   time.Time  `json:"created_at"`
	CreatedBy   string     `json:"created_by"`
	CompletedAt *time.Time `json:"completed_at"`
}

func NewWorkItem(id, appointmentID string, itemType WorkItemType) WorkItem {
	return WorkItem{
		ID:            id,
		AppointmentID: appointmentID,
		Type:          itemType,
		Status:        WorkItemStatusCreated,
		Milestones:    []Milestone{},
	}
}

func (w WorkItem) Clone() WorkItem {
	out := w
	out.CompletedAt = cloneTime(w.CompletedAt)
	if w.NeedToReturnReason != nil {
		reason := *w.NeedToReturnReason
		out.NeedToReturnReason = &reason
	}
	out.Milestones = make([]Milestone, len(w.Milestones))
	for i, m := range w.Milestones {
		out.Milestones[i] = m.clone()
	}
	return out
}

func (w *WorkItem) EnsureContainers() {
	if w.Milestones == nil {
		w.Milestones = []Milestone{}
	}
	for i := range w.Milestones {
		if w.Milestones[i].Media == nil {
			w.Milestones[i].Media = []Media{}
		}
	}
}

type MilestoneType string

const (
	MilestoneTypeBefore     MilestoneType = "BEFORE"
	MilestoneTypeInProgress MilestoneType = "IN_PROGRESS"
	MilestoneTypeCompleted  MilestoneType = "COMPLETED"
	MilestoneTypeCustom     MilestoneType = "CUSTOM"
)

// Milestone - фото-отметка по работе.
type Milestone struct {
	ID          string        `json:"id"`
	WorkItemID  string        `json:"work_item_id"`
	Type        MilestoneType `json:"type"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Media       []Media       `json:"media"`
	CreatedAt   time.Time     `json:"created_at"`
	CreatedBy   string        `json:"created_by"`
}

func (m Milestone) clone() Milestone {
	out := m
	out.Media = append([]Media{}, m.Media...)
	return out
}
