package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/harsh16kumar/apex-Caterpillar-Hackathon/internal/logger"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS vendor (
		equipment_id      TEXT PRIMARY KEY,
		type              TEXT NOT NULL,
		site_id           INTEGER,
		check_out_date    DATE,
		check_in_date     DATE,
		engine_hour_day   DOUBLE PRECISION,
		idle_hour_day     DOUBLE PRECISION,
		operating_days    INTEGER,
		days_left         INTEGER,
		fuel              DOUBLE PRECISION,
		location          TEXT,
		availability      TEXT NOT NULL DEFAULT 'Available' CHECK (availability IN ('Available', 'Rented')),
		rental_type       TEXT CHECK (rental_type IS NULL OR rental_type IN ('Rigid', 'Flexible')),
		ready_to_share    BOOLEAN NOT NULL DEFAULT FALSE,
		shared_by_site_id INTEGER,
		created_on        TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS vendor_type_availability_idx ON vendor (type, availability)`,
	`CREATE TABLE IF NOT EXISTS site_info (
		id              BIGSERIAL PRIMARY KEY,
		site_id         INTEGER NOT NULL,
		equipment_id    TEXT REFERENCES vendor (equipment_id),
		location        TEXT NOT NULL DEFAULT '',
		contact_details TEXT NOT NULL DEFAULT '',
		created_on      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS site_info_site_id_idx ON site_info (site_id)`,
	`CREATE TABLE IF NOT EXISTS rental_requests (
		request_id        SERIAL PRIMARY KEY,
		equipment_id      TEXT NOT NULL REFERENCES vendor (equipment_id),
		requester_site_id INTEGER NOT NULL,
		owner_site_id     INTEGER NOT NULL,
		location          TEXT NOT NULL DEFAULT '',
		time_from         TEXT NOT NULL DEFAULT '',
		time_to           TEXT NOT NULL DEFAULT '',
		status            TEXT NOT NULL DEFAULT 'Pending' CHECK (status IN ('Pending', 'Approved', 'Rejected')),
		created_on        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		decided_on        TIMESTAMPTZ,
		CHECK (requester_site_id <> owner_site_id)
	)`,
	`CREATE INDEX IF NOT EXISTS rental_requests_owner_status_idx ON rental_requests (owner_site_id, status)`,
}

// EnsureSchema creates the vendor, site_info and rental_requests tables if they are missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	logger.Info("Database schema ensured", "statements", len(schemaStatements))
	return nil
}
