// ABOUTME: Project database operations
// ABOUTME: Handles save, lookup, trash with protocol cascade, restore and purge
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oscarlimaalphafox/KADRA/models"
)

// SaveProject inserts or updates a project. New projects get an id and
// created timestamp; the project code must be unique among active projects.
func SaveProject(db *sql.DB, project *models.Project) error {
	if err := models.ValidateProject(project); err != nil {
		return &models.ValidationError{Message: err.Error()}
	}

	isNew := project.ID == uuid.Nil
	now := time.Now()
	if isNew {
		project.ID = uuid.New()
		project.CreatedAt = now
	}
	project.UpdatedAt = now

	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM projects
		WHERE code = ? AND deleted_at IS NULL AND id != ?
	`, project.Code, project.ID.String()).Scan(&count)
	if err != nil {
		return &models.StorageError{Op: "save project", Err: err}
	}
	if count > 0 {
		return &models.ValidationError{Field: "code", Message: fmt.Sprintf("Kürzel %q ist bereits vergeben", project.Code)}
	}

	_, err = db.Exec(`
		INSERT INTO projects (id, code, name, tenant, owner, created_at, updated_at, deleted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			code = excluded.code,
			name = excluded.name,
			tenant = excluded.tenant,
			owner = excluded.owner,
			updated_at = excluded.updated_at,
			deleted_at = excluded.deleted_at
	`, project.ID.String(), project.Code, project.Name, project.Tenant, project.Owner,
		project.CreatedAt, project.UpdatedAt, project.DeletedAt)
	if err != nil {
		return &models.StorageError{Op: "save project", Err: err}
	}
	return nil
}

// GetProject loads a project by id, trashed or not.
func GetProject(db *sql.DB, id uuid.UUID) (*models.Project, error) {
	project := &models.Project{}
	var deletedAt sql.NullTime

	var tenant, owner sql.NullString
	err := db.QueryRow(`
		SELECT id, code, name, tenant, owner, created_at, updated_at, deleted_at
		FROM projects WHERE id = ?
	`, id.String()).Scan(&project.ID, &project.Code, &project.Name, &tenant, &owner,
		&project.CreatedAt, &project.UpdatedAt, &deletedAt)

	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "project", ID: id.String()}
	}
	if err != nil {
		return nil, &models.StorageError{Op: "get project", Err: err}
	}
	project.Tenant = tenant.String
	project.Owner = owner.String
	if deletedAt.Valid {
		t := deletedAt.Time
		project.DeletedAt = &t
	}
	return project, nil
}

// GetProjectByCode loads an active project by its code.
func GetProjectByCode(db *sql.DB, code string) (*models.Project, error) {
	var id string
	err := db.QueryRow(`
		SELECT id FROM projects WHERE code = ? AND deleted_at IS NULL
	`, code).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "project", ID: code}
	}
	if err != nil {
		return nil, &models.StorageError{Op: "get project by code", Err: err}
	}
	return GetProject(db, uuid.MustParse(id))
}

// ListProjects returns all active projects ordered by code.
func ListProjects(db *sql.DB) ([]models.Project, error) {
	return scanProjects(db, `
		SELECT id, code, name, tenant, owner, created_at, updated_at, deleted_at
		FROM projects WHERE deleted_at IS NULL ORDER BY code
	`)
}

// ListAllProjects returns every project, trashed included.
func ListAllProjects(db *sql.DB) ([]models.Project, error) {
	return scanProjects(db, `
		SELECT id, code, name, tenant, owner, created_at, updated_at, deleted_at
		FROM projects ORDER BY code
	`)
}

// ListTrashedProjects returns projects in the trash, most recently deleted
// first.
func ListTrashedProjects(db *sql.DB) ([]models.Project, error) {
	return scanProjects(db, `
		SELECT id, code, name, tenant, owner, created_at, updated_at, deleted_at
		FROM projects WHERE deleted_at IS NOT NULL ORDER BY deleted_at DESC
	`)
}

func scanProjects(db *sql.DB, query string) ([]models.Project, error) {
	rows, err := db.Query(query)
	if err != nil {
		return nil, &models.StorageError{Op: "list projects", Err: err}
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		var tenant, owner sql.NullString
		var deletedAt sql.NullTime
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &tenant, &owner, &p.CreatedAt, &p.UpdatedAt, &deletedAt); err != nil {
			return nil, &models.StorageError{Op: "list projects", Err: err}
		}
		p.Tenant = tenant.String
		p.Owner = owner.String
		if deletedAt.Valid {
			t := deletedAt.Time
			p.DeletedAt = &t
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// TrashProject soft-deletes a project and cascades to its active protocols.
// Both sides carry the same deletion timestamp so a restore can tell
// cascaded protocols from ones trashed individually.
func TrashProject(db *sql.DB, id uuid.UUID) error {
	tx, err := db.Begin()
	if err != nil {
		return &models.StorageError{Op: "trash project", Err: err}
	}
	defer tx.Rollback()

	now := time.Now()
	res, err := tx.Exec(`UPDATE projects SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		now, now, id.String())
	if err != nil {
		return &models.StorageError{Op: "trash project", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &models.NotFoundError{Entity: "project", ID: id.String()}
	}

	_, err = tx.Exec(`UPDATE protocols SET deleted_at = ?, updated_at = ? WHERE project_id = ? AND deleted_at IS NULL`,
		now, now, id.String())
	if err != nil {
		return &models.StorageError{Op: "trash project", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &models.StorageError{Op: "trash project", Err: err}
	}
	return nil
}

// RestoreProject brings a project and its cascaded protocols back from the
// trash.
func RestoreProject(db *sql.DB, id uuid.UUID) error {
	tx, err := db.Begin()
	if err != nil {
		return &models.StorageError{Op: "restore project", Err: err}
	}
	defer tx.Rollback()

	var deletedAt sql.NullTime
	err = tx.QueryRow(`SELECT deleted_at FROM projects WHERE id = ?`, id.String()).Scan(&deletedAt)
	if err == sql.ErrNoRows {
		return &models.NotFoundError{Entity: "project", ID: id.String()}
	}
	if err != nil {
		return &models.StorageError{Op: "restore project", Err: err}
	}

	now := time.Now()
	_, err = tx.Exec(`UPDATE projects SET deleted_at = NULL, updated_at = ? WHERE id = ?`, now, id.String())
	if err != nil {
		return &models.StorageError{Op: "restore project", Err: err}
	}

	if deletedAt.Valid {
		_, err = tx.Exec(`UPDATE protocols SET deleted_at = NULL, updated_at = ? WHERE project_id = ? AND deleted_at = ?`,
			now, id.String(), deletedAt.Time)
		if err != nil {
			return &models.StorageError{Op: "restore project", Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &models.StorageError{Op: "restore project", Err: err}
	}
	return nil
}

// PurgeProject permanently deletes a project and all of its protocols.
func PurgeProject(db *sql.DB, id uuid.UUID) error {
	tx, err := db.Begin()
	if err != nil {
		return &models.StorageError{Op: "purge project", Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM protocols WHERE project_id = ?`, id.String()); err != nil {
		return &models.StorageError{Op: "purge project", Err: err}
	}
	res, err := tx.Exec(`DELETE FROM projects WHERE id = ?`, id.String())
	if err != nil {
		return &models.StorageError{Op: "purge project", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &models.NotFoundError{Entity: "project", ID: id.String()}
	}

	if err := tx.Commit(); err != nil {
		return &models.StorageError{Op: "purge project", Err: err}
	}
	return nil
}
