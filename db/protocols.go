// ABOUTME: Protocol database operations with JSON document columns
// ABOUTME: Handles save, per-project listing, trash, restore and numbering
package db

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/oscarlimaalphafox/KADRA/models"
)

// SaveProtocol inserts or updates a protocol. The nested document data
// (structure, points, attachments, roster) is stored as JSON.
func SaveProtocol(db *sql.DB, protocol *models.Protocol) error {
	isNew := protocol.ID == uuid.Nil
	now := time.Now()
	if isNew {
		protocol.ID = uuid.New()
		protocol.CreatedAt = now
	}
	protocol.UpdatedAt = now

	cols, err := marshalDocumentColumns(protocol)
	if err != nil {
		return &models.StorageError{Op: "save protocol", Err: err}
	}

	_, err = db.Exec(`
		INSERT INTO protocols (
			id, project_id, series_id, series_name, title, type, number,
			date, time, location, tenant, landlord,
			author, participants, structure, points, attachments, custom_abbreviations,
			created_at, updated_at, deleted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			project_id = excluded.project_id,
			series_id = excluded.series_id,
			series_name = excluded.series_name,
			title = excluded.title,
			type = excluded.type,
			number = excluded.number,
			date = excluded.date,
			time = excluded.time,
			location = excluded.location,
			tenant = excluded.tenant,
			landlord = excluded.landlord,
			author = excluded.author,
			participants = excluded.participants,
			structure = excluded.structure,
			points = excluded.points,
			attachments = excluded.attachments,
			custom_abbreviations = excluded.custom_abbreviations,
			updated_at = excluded.updated_at,
			deleted_at = excluded.deleted_at
	`, protocol.ID.String(), protocol.ProjectID.String(), protocol.SeriesID, protocol.SeriesName,
		protocol.Title, protocol.Type, protocol.Number,
		protocol.Date, protocol.Time, protocol.Location, protocol.Tenant, protocol.Landlord,
		cols.author, cols.participants, cols.structure, cols.points, cols.attachments, cols.abbreviations,
		protocol.CreatedAt, protocol.UpdatedAt, protocol.DeletedAt)
	if err != nil {
		return &models.StorageError{Op: "save protocol", Err: err}
	}
	return nil
}

type documentColumns struct {
	author        []byte
	participants  []byte
	structure     []byte
	points        []byte
	attachments   []byte
	abbreviations []byte
}

func marshalDocumentColumns(p *models.Protocol) (*documentColumns, error) {
	var cols documentColumns
	var err error
	if cols.author, err = json.Marshal(p.Author); err != nil {
		return nil, err
	}
	if cols.participants, err = json.Marshal(p.Participants); err != nil {
		return nil, err
	}
	if cols.structure, err = json.Marshal(p.Structure); err != nil {
		return nil, err
	}
	if cols.points, err = json.Marshal(p.Points); err != nil {
		return nil, err
	}
	if cols.attachments, err = json.Marshal(p.Attachments); err != nil {
		return nil, err
	}
	if cols.abbreviations, err = json.Marshal(p.CustomAbbreviations); err != nil {
		return nil, err
	}
	return &cols, nil
}

const protocolColumns = `
	id, project_id, series_id, series_name, title, type, number,
	date, time, location, tenant, landlord,
	author, participants, structure, points, attachments, custom_abbreviations,
	created_at, updated_at, deleted_at`

func scanProtocol(scan func(...interface{}) error) (*models.Protocol, error) {
	p := &models.Protocol{}
	var idStr, projectIDStr string
	var seriesID, seriesName, title, date, timeStr, location, tenant, landlord sql.NullString
	var author, participants, structure, points, attachments, abbreviations []byte
	var deletedAt sql.NullTime

	err := scan(&idStr, &projectIDStr, &seriesID, &seriesName, &title, &p.Type, &p.Number,
		&date, &timeStr, &location, &tenant, &landlord,
		&author, &participants, &structure, &points, &attachments, &abbreviations,
		&p.CreatedAt, &p.UpdatedAt, &deletedAt)
	if err != nil {
		return nil, err
	}

	p.ID = uuid.MustParse(idStr)
	p.ProjectID = uuid.MustParse(projectIDStr)
	p.SeriesID = seriesID.String
	p.SeriesName = seriesName.String
	p.Title = title.String
	p.Date = date.String
	p.Time = timeStr.String
	p.Location = location.String
	p.Tenant = tenant.String
	p.Landlord = landlord.String
	if deletedAt.Valid {
		t := deletedAt.Time
		p.DeletedAt = &t
	}

	for _, col := range []struct {
		data []byte
		dst  interface{}
	}{
		{author, &p.Author},
		{participants, &p.Participants},
		{structure, &p.Structure},
		{points, &p.Points},
		{attachments, &p.Attachments},
		{abbreviations, &p.CustomAbbreviations},
	} {
		if len(col.data) > 0 && string(col.data) != "null" {
			if err := json.Unmarshal(col.data, col.dst); err != nil {
				return nil, err
			}
		}
	}

	normalizeProtocol(p)
	return p, nil
}

// normalizeProtocol repairs documents written by older versions: the legacy
// approval category label and missing collection fields.
func normalizeProtocol(p *models.Protocol) {
	for i := range p.Points {
		if p.Points[i].Category == models.CategoryApprovalLegacy {
			p.Points[i].Category = models.CategoryApproval
		}
	}
	if p.Participants == nil {
		p.Participants = []models.Participant{}
	}
	if p.Points == nil {
		p.Points = []models.Point{}
	}
	if p.Attachments == nil {
		p.Attachments = []models.Attachment{}
	}
	if p.CustomAbbreviations == nil {
		p.CustomAbbreviations = []models.Abbreviation{}
	}
}

// GetProtocol loads a protocol by id, trashed or not.
func GetProtocol(db *sql.DB, id uuid.UUID) (*models.Protocol, error) {
	row := db.QueryRow(`SELECT `+protocolColumns+` FROM protocols WHERE id = ?`, id.String())
	p, err := scanProtocol(row.Scan)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "protocol", ID: id.String()}
	}
	if err != nil {
		return nil, &models.StorageError{Op: "get protocol", Err: err}
	}
	return p, nil
}

// GetProtocolsByProject returns the active protocols of a project, oldest
// first.
func GetProtocolsByProject(db *sql.DB, projectID uuid.UUID) ([]*models.Protocol, error) {
	return queryProtocols(db, `
		SELECT `+protocolColumns+` FROM protocols
		WHERE project_id = ? AND deleted_at IS NULL
		ORDER BY created_at
	`, projectID.String())
}

// GetAllProtocolsByProject returns every protocol of a project including
// trashed ones. Numbering looks at these so numbers are never reused.
func GetAllProtocolsByProject(db *sql.DB, projectID uuid.UUID) ([]*models.Protocol, error) {
	return queryProtocols(db, `
		SELECT `+protocolColumns+` FROM protocols
		WHERE project_id = ?
		ORDER BY created_at
	`, projectID.String())
}

// ListAllProtocols returns every protocol in the store, trashed included.
func ListAllProtocols(db *sql.DB) ([]*models.Protocol, error) {
	return queryProtocols(db, `
		SELECT `+protocolColumns+` FROM protocols
		ORDER BY created_at
	`)
}

// ListTrashedProtocols returns all trashed protocols, most recently deleted
// first.
func ListTrashedProtocols(db *sql.DB) ([]*models.Protocol, error) {
	return queryProtocols(db, `
		SELECT `+protocolColumns+` FROM protocols
		WHERE deleted_at IS NOT NULL
		ORDER BY deleted_at DESC
	`)
}

func queryProtocols(db *sql.DB, query string, args ...interface{}) ([]*models.Protocol, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, &models.StorageError{Op: "list protocols", Err: err}
	}
	defer rows.Close()

	var protocols []*models.Protocol
	for rows.Next() {
		p, err := scanProtocol(rows.Scan)
		if err != nil {
			return nil, &models.StorageError{Op: "list protocols", Err: err}
		}
		protocols = append(protocols, p)
	}
	return protocols, rows.Err()
}

// TrashProtocol soft-deletes a single protocol.
func TrashProtocol(db *sql.DB, id uuid.UUID) error {
	now := time.Now()
	res, err := db.Exec(`UPDATE protocols SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		now, now, id.String())
	if err != nil {
		return &models.StorageError{Op: "trash protocol", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &models.NotFoundError{Entity: "protocol", ID: id.String()}
	}
	return nil
}

// RestoreProtocol brings a protocol back from the trash.
func RestoreProtocol(db *sql.DB, id uuid.UUID) error {
	now := time.Now()
	res, err := db.Exec(`UPDATE protocols SET deleted_at = NULL, updated_at = ? WHERE id = ? AND deleted_at IS NOT NULL`,
		now, id.String())
	if err != nil {
		return &models.StorageError{Op: "restore protocol", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &models.NotFoundError{Entity: "protocol", ID: id.String()}
	}
	return nil
}

// PurgeProtocol permanently deletes a protocol.
func PurgeProtocol(db *sql.DB, id uuid.UUID) error {
	res, err := db.Exec(`DELETE FROM protocols WHERE id = ?`, id.String())
	if err != nil {
		return &models.StorageError{Op: "purge protocol", Err: err}
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &models.NotFoundError{Entity: "protocol", ID: id.String()}
	}
	return nil
}

// NextNumber returns the next free protocol number for a type within a
// project. Trashed protocols still count; numbers are never reissued.
func NextNumber(db *sql.DB, projectID uuid.UUID, protocolType string) (int, error) {
	var max sql.NullInt64
	err := db.QueryRow(`
		SELECT MAX(number) FROM protocols WHERE project_id = ? AND type = ?
	`, projectID.String(), protocolType).Scan(&max)
	if err != nil {
		return 0, &models.StorageError{Op: "next number", Err: err}
	}
	if !max.Valid {
		return 1, nil
	}
	return int(max.Int64) + 1, nil
}

// MaxSeriesNumber returns the highest number in a series, or 0 when the
// series is unknown.
func MaxSeriesNumber(db *sql.DB, seriesID string) (int, error) {
	var max sql.NullInt64
	err := db.QueryRow(`SELECT MAX(number) FROM protocols WHERE series_id = ?`, seriesID).Scan(&max)
	if err != nil {
		return 0, &models.StorageError{Op: "max series number", Err: err}
	}
	return int(max.Int64), nil
}

// LatestInSeries returns the protocol with the highest number in a series.
func LatestInSeries(db *sql.DB, seriesID string) (*models.Protocol, error) {
	row := db.QueryRow(`
		SELECT `+protocolColumns+` FROM protocols
		WHERE series_id = ? AND deleted_at IS NULL
		ORDER BY number DESC LIMIT 1
	`, seriesID)
	p, err := scanProtocol(row.Scan)
	if err == sql.ErrNoRows {
		return nil, &models.NotFoundError{Entity: "series", ID: seriesID}
	}
	if err != nil {
		return nil, &models.StorageError{Op: "latest in series", Err: err}
	}
	return p, nil
}
