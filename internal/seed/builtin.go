package seed

import (
	"context"
	"time"

	"fieldservice-service/internal/clock"
	"fieldservice-service/internal/model"
)

// Builtin - демонстрационные данные прототипа, построенные относительно
// текущего дня часов.
type Builtin struct {
	clock clock.Clock
	loc   *time.Location
}

func NewBuiltin(clk clock.Clock, loc *time.Location) *Builtin {
	if loc == nil {
		loc = time.Local
	}
	return &Builtin{clock: clk, loc: loc}
}

func (b *Builtin) Name() string {
	return "builtin"
}

func (b *Builtin) Load(ctx context.Context) (Dataset, error) {
	now := b.clock.Now().In(b.loc)
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, b.loc)

	return Dataset{
		Appointments: builtinAppointments(today),
		WorkItems:    builtinWorkItems(now),
	}, nil
}

func at(day time.Time, days, hours int) time.Time {
	return day.AddDate(0, 0, days).Add(time.Duration(hours) * time.Hour)
}

func ptr[T any](v T) *T {
	return &v
}

func builtinAppointments(today time.Time) []model.Appointment {
	sunset := model.NewAppointment("apt-001", at(today, 0, 8), at(today, 0, 12))
	sunset.JobID = "job-001"
	sunset.JobNumber = "J-2024-0892"
	sunset.CustomerName = "Sunset Plaza HOA"
	sunset.SiteName = "Sunset Plaza Condominiums"
	sunset.ServiceJobType = "Operations Job"
	sunset.Location = model.Location{
		Address:   "1234 Sunset Boulevard",
		City:      "Los Angeles",
		State:     "CA",
		Zip:       "90028",
		Latitude:  ptr(34.0982),
		Longitude: ptr(-118.3267),
	}
	sunset.ScopeOfWork = "Annual HVAC maintenance and inspection for all units in Building A. Replace filters, check refrigerant levels, and document any issues found."
	sunset.AssignedUsers = []model.AssignedUser{
		{UserID: "1", Name: "John Smith", Role: "Service Tech"},
		{UserID: "2", Name: "Maria Johnson", Role: "Surveyor"},
	}
	sunset.Buildings = []model.Building{
		{
			ID:          "bld-001",
			Name:        "Building A",
			Description: "Main residential building - 24 units",
			Systems: []model.SystemInfo{
				{ID: "sys-001", Name: "HVAC Unit 1", Type: "HVAC", Manufacturer: "Carrier", Model: "24ACC636A003", BuildingID: "bld-001"},
				{ID: "sys-002", Name: "HVAC Unit 2", Type: "HVAC", Manufacturer: "Carrier", Model: "24ACC636A003", BuildingID: "bld-001"},
				{ID: "sys-003", Name: "Main Electrical Panel", Type: "Electrical", Manufacturer: "Square D", Model: "QO130L200PG", BuildingID: "bld-001"},
			},
		},
		{
			ID:          "bld-002",
			Name:        "Building B",
			Description: "Secondary residential building - 18 units",
			Systems: []model.SystemInfo{
				{ID: "sys-004", Name: "HVAC Unit 3", Type: "HVAC", Manufacturer: "Trane", Model: "XR15", BuildingID: "bld-002"},
			},
		},
	}
	sunset.Customer = model.CustomerInfo{
		Name:           "Sunset Plaza HOA",
		ApprovedBy:     "Margaret Chen",
		OnSiteContact:  model.Contact{Name: "Robert Davis", Phone: "(555) 987-6543", Email: "rdavis@sunsetplaza.com"},
		BillingContact: model.Contact{Name: "Lisa Wong", Phone: "(555) 876-5432", Email: "billing@sunsetplaza.com"},
	}

	medical := model.NewAppointment("apt-002", at(today, 0, 13), at(today, 0, 15))
	medical.JobID = "job-002"
	medical.JobNumber = "J-2024-0915"
	medical.CustomerName = "Downtown Medical Center"
	medical.SiteName = "Downtown Medical Center - West Wing"
	medical.ServiceJobType = "Service Call"
	medical.Location = model.Location{Address: "500 Medical Center Drive", City: "Los Angeles", State: "CA", Zip: "90033"}
	medical.ScopeOfWork = "Emergency repair - AC unit not cooling properly in patient rooms. High priority."
	medical.AssignedUsers = []model.AssignedUser{
		{UserID: "1", Name: "John Smith", Role: "Service Tech"},
	}
	medical.Buildings = []model.Building{
		{
			ID:   "bld-003",
			Name: "West Wing",
			Systems: []model.SystemInfo{
				{ID: "sys-005", Name: "Rooftop AC Unit", Type: "HVAC", Manufacturer: "Lennox", Model: "XC21", BuildingID: "bld-003"},
			},
		},
	}
	medical.Customer = model.CustomerInfo{
		Name:          "Downtown Medical Center",
		OnSiteContact: model.Contact{Name: "Facilities Dept", Phone: "(555) 111-2222"},
	}

	school := model.NewAppointment("apt-003", at(today, 2, 9), at(today, 2, 14))
	school.JobID = "job-003"
	school.JobNumber = "J-2024-0920"
	school.CustomerName = "Pacific Heights School District"
	school.SiteName = "Jefferson Elementary"
	school.ServiceJobType = "Survey"
	school.Location = model.Location{Address: "789 Education Way", City: "San Francisco", State: "CA", Zip: "94115"}
	school.ScopeOfWork = "Complete HVAC system survey for summer replacement project planning."
	school.AssignedUsers = []model.AssignedUser{
		{UserID: "2", Name: "Maria Johnson", Role: "Surveyor"},
	}
	school.Customer = model.CustomerInfo{Name: "Pacific Heights School District"}

	// вчерашний визит, брошенный на этапе обследования
	harbor := model.NewAppointment("apt-004", at(today, -1, 10), at(today, -1, 14))
	harbor.JobID = "job-004"
	harbor.JobNumber = "J-2024-0880"
	harbor.CustomerName = "Harbor View Apartments"
	harbor.SiteName = "Harbor View - Tower 1"
	harbor.ServiceJobType = "Operations Job"
	harbor.Location = model.Location{Address: "100 Harbor Boulevard", City: "Long Beach", State: "CA", Zip: "90802"}
	harbor.ScopeOfWork = "Fire suppression system inspection - Requires return visit for panel replacement."
	harbor.Status = model.AppointmentStatusInProgress
	harbor.PunchListProgress = model.PunchListProgress{
		DriveToAppointment:     model.PunchListStepCompleted,
		AppointmentArrival:     model.PunchListStepCompleted,
		SurveyBuildingsSystems: model.PunchListStepInProgress,
		CompleteAppointment:    model.PunchListStepLocked,
	}
	harbor.AssignedUsers = []model.AssignedUser{
		{UserID: "1", Name: "John Smith", Role: "Service Tech"},
	}
	harbor.Customer = model.CustomerInfo{Name: "Harbor View Apartments"}

	return []model.Appointment{sunset, medical, school, harbor}
}

func builtinWorkItems(now time.Time) []model.WorkItem {
	item := func(id, appointmentID, buildingID, systemID, buildingName, systemName string, itemType model.WorkItemType, title, description, createdBy string, createdAt time.Time) model.WorkItem {
		w := model.NewWorkItem(id, appointmentID, itemType)
		w.BuildingID = buildingID
		w.SystemID = systemID
		w.BuildingName = buildingName
		w.SystemName = systemName
		w.Status = model.WorkItemStatusReady
		w.Title = title
		w.Description = description
		w.CreatedBy = createdBy
		w.CreatedAt = createdAt
		return w
	}

	weekAgo := now.AddDate(0, 0, -7)
	fire := item("wi-005", "apt-004", "bld-003", "sys-005", "Tower 1", "Fire Panel",
		model.WorkItemTypeLineItemRepair, "Replace Fire Panel Controller",
		"Controller board failed - replacement part ordered", "John Smith", now.AddDate(0, 0, -3))
	fire.Status = model.WorkItemStatusNeedToReturn
	fire.NeedToReturnReason = ptr("Waiting for replacement part to arrive")

	return []model.WorkItem{
		item("wi-001", "apt-001", "bld-001", "sys-001", "Building A", "HVAC Unit 1",
			model.WorkItemTypeInspection, "Annual HVAC Inspection",
			"Complete annual inspection checklist for HVAC Unit 1", "System", weekAgo),
		item("wi-002", "apt-001", "bld-001", "sys-001", "Building A", "HVAC Unit 1",
			model.WorkItemTypeLineItemRepair, "Replace Air Filters",
			"Replace all air filters with MERV-13 rated filters", "System", weekAgo),
		item("wi-003", "apt-001", "bld-001", "sys-002", "Building A", "HVAC Unit 2",
			model.WorkItemTypeInspection, "Annual HVAC Inspection",
			"Complete annual inspection checklist for HVAC Unit 2", "System", weekAgo),
		item("wi-004", "apt-002", "bld-003", "sys-005", "West Wing", "Rooftop AC Unit",
			model.WorkItemTypeAdhocRepair, "AC Not Cooling",
			"Diagnose and repair cooling issue - unit running but not cooling", "Dispatch", now.Add(-2*time.Hour)),
		fire,
	}
}
