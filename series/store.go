// ABOUTME: Store-aware series operations shared by CLI, TUI and MCP surfaces
// ABOUTME: Wires the continuation engine to protocol numbering and persistence
package series

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/oscarlimaalphafox/KADRA/db"
	"github.com/oscarlimaalphafox/KADRA/models"
)

// Start creates and saves the first protocol of a new series. Memos get no
// number; everything else takes the next free number for its type within the
// project.
func Start(sqlDB *sql.DB, projectID uuid.UUID, protocolType, seriesName string, author models.Author) (*models.Protocol, error) {
	project, err := db.GetProject(sqlDB, projectID)
	if err != nil {
		return nil, err
	}

	number := 0
	if protocolType != models.TypeAktennotiz {
		number, err = db.NextNumber(sqlDB, project.ID, protocolType)
		if err != nil {
			return nil, err
		}
	}

	protocol := Seed(project, protocolType, seriesName, number, author, time.Now())
	if err := models.ValidateProtocol(protocol); err != nil {
		return nil, &models.ValidationError{Message: err.Error()}
	}
	if err := db.SaveProtocol(sqlDB, protocol); err != nil {
		return nil, err
	}
	return protocol, nil
}

// ContinueLatest creates and saves the successor of a series' latest
// protocol. The new number is one past the series maximum, counting trashed
// revisions too.
func ContinueLatest(sqlDB *sql.DB, seriesID string) (*models.Protocol, error) {
	prior, err := db.LatestInSeries(sqlDB, seriesID)
	if err != nil {
		return nil, err
	}
	if prior.IsMemo() {
		return nil, &models.ValidationError{Field: "type", Message: "Aktennotizen werden nicht fortgeschrieben"}
	}

	max, err := db.MaxSeriesNumber(sqlDB, seriesID)
	if err != nil {
		return nil, err
	}
	number := max + 1
	if max == 0 {
		number, err = db.NextNumber(sqlDB, prior.ProjectID, prior.Type)
		if err != nil {
			return nil, err
		}
	}

	next := Continue(prior, number, time.Now())
	if err := db.SaveProtocol(sqlDB, next); err != nil {
		return nil, err
	}
	return next, nil
}

// DuplicateProtocol saves an independent copy of a protocol under a new
// name.
func DuplicateProtocol(sqlDB *sql.DB, protocolID uuid.UUID, newName string) (*models.Protocol, error) {
	if newName == "" {
		return nil, &models.ValidationError{Field: "name", Message: "Name darf nicht leer sein"}
	}
	source, err := db.GetProtocol(sqlDB, protocolID)
	if err != nil {
		return nil, err
	}

	dup := Duplicate(source, newName, time.Now())
	if err := db.SaveProtocol(sqlDB, dup); err != nil {
		return nil, err
	}
	return dup, nil
}
