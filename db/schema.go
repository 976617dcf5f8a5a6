// ABOUTME: Database schema definitions and migrations
// ABOUTME: Handles SQLite table creation and initialization
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	code TEXT NOT NULL,
	name TEXT NOT NULL,
	tenant TEXT,
	owner TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	deleted_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_projects_code ON projects(code);

CREATE TABLE IF NOT EXISTS protocols (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	series_id TEXT,
	series_name TEXT,
	title TEXT,
	type TEXT NOT NULL,
	number INTEGER NOT NULL DEFAULT 0,
	date TEXT,
	time TEXT,
	location TEXT,
	tenant TEXT,
	landlord TEXT,
	author TEXT,
	participants TEXT,
	structure TEXT,
	points TEXT,
	attachments TEXT,
	custom_abbreviations TEXT,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	deleted_at DATETIME,
	FOREIGN KEY (project_id) REFERENCES projects(id)
);

CREATE INDEX IF NOT EXISTS idx_protocols_project_id ON protocols(project_id);
CREATE INDEX IF NOT EXISTS idx_protocols_series_id ON protocols(series_id);
CREATE INDEX IF NOT EXISTS idx_protocols_type ON protocols(type);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
