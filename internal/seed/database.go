package seed

import (
	"context"
	"fmt"

	"fieldservice-service/internal/model"
)

type seedReader interface {
	ListAppointments(ctx context.Context) ([]model.Appointment, error)
	ListWorkItems(ctx context.Context) ([]model.WorkItem, error)
}

// Database читает начальные данные из таблиц appointments и work_items.
type Database struct {
	reader seedReader
}

func NewDatabase(reader seedReader) *Database {
	return &Database{reader: reader}
}

func (d *Database) Name() string {
	return "database"
}

func (d *Database) Load(ctx context.Context) (Dataset, error) {
	appointments, err := d.reader.ListAppointments(ctx)
	if err != nil {
		return Dataset{}, fmt.Errorf("list appointments: %w", err)
	}
	workItems, err := d.reader.ListWorkItems(ctx)
	if err != nil {
		return Dataset{}, fmt.Errorf("list work items: %w", err)
	}
	return Dataset{Appointments: appointments, WorkItems: workItems}, nil
}
