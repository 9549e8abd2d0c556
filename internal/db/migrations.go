package db

import (
	"fmt"

	"gorm.io/gorm"
)

// Таблицы только для начальной загрузки; состояние жизненного цикла
// живет в памяти и обратно не пишется.
var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS appointments (
		id VARCHAR(64) PRIMARY KEY,
		position INTEGER NOT NULL DEFAULT 0,
		job_id VARCHAR(64),
		job_number VARCHAR(64),
		customer_name TEXT,
		site_name TEXT,
		service_job_type VARCHAR(64),
		address TEXT,
		city VARCHAR(128),
		state VARCHAR(32),
		zip VARCHAR(16),
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		scope_of_work TEXT,
		scheduled_start TIMESTAMPTZ NOT NULL,
		scheduled_end TIMESTAMPTZ NOT NULL,
		status VARCHAR(32) NOT NULL DEFAULT 'SCHEDULED',
		drive_step VARCHAR(32) NOT NULL DEFAULT 'AVAILABLE',
		arrival_step VARCHAR(32) NOT NULL DEFAULT 'LOCKED',
		survey_step VARCHAR(32) NOT NULL DEFAULT 'LOCKED',
		complete_step VARCHAR(32) NOT NULL DEFAULT 'LOCKED',
		en_route_start_time TIMESTAMPTZ,
		arrival_time TIMESTAMPTZ,
		completed_time TIMESTAMPTZ,
		assigned_users JSONB NOT NULL DEFAULT '[]'::jsonb,
		buildings JSONB NOT NULL DEFAULT '[]'::jsonb,
		customer JSONB NOT NULL DEFAULT '{}'::jsonb,
		arrival_photos JSONB NOT NULL DEFAULT '[]'::jsonb,
		CONSTRAINT appointments_status_check CHECK (status IN ('SCHEDULED', 'EN_ROUTE', 'ON_SITE', 'IN_PROGRESS', 'COMPLETED', 'CANCELLED', 'RESCHEDULED'))
	);`,
	`CREATE INDEX IF NOT EXISTS idx_appointments_position ON appointments (position, scheduled_start);`,
	`CREATE TABLE IF NOT EXISTS work_items (
		id VARCHAR(64) PRIMARY KEY,
		position INTEGER NOT NULL DEFAULT 0,
		appointment_id VARCHAR(64) NOT NULL REFERENCES appointments (id) ON DELETE CASCADE,
		building_id VARCHAR(64),
		system_id VARCHAR(64),
		type VARCHAR(32) NOT NULL,
		status VARCHAR(32) NOT NULL DEFAULT 'CREATED',
		title TEXT,
		description TEXT,
		building_name TEXT,
		system_name TEXT,
		need_to_return_reason TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_by VARCHAR(128),
		completed_at TIMESTAMPTZ,
		milestones JSONB NOT NULL DEFAULT '[]'::jsonb,
		CONSTRAINT work_items_type_check CHECK (type IN ('INSPECTION', 'SURVEY', 'ESTIMATE', 'ADHOC_REPAIR', 'LINE_ITEM_REPAIR')),
		CONSTRAINT work_items_status_check CHECK (status IN ('CREATED', 'READY', 'IN_PROGRESS', 'COMPLETED', 'NEED_TO_RETURN'))
	);`,
	`CREATE INDEX IF NOT EXISTS idx_work_items_appointment_id ON work_items (appointment_id);`,
	`CREATE INDEX IF NOT EXISTS idx_work_items_position ON work_items (position, created_at);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
