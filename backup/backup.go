// ABOUTME: JSON backup export and import for projects and the whole store
// ABOUTME: Implements the ProtokollApp-Backup and KADRA-FullBackup formats
package backup

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/oscarlimaalphafox/KADRA/db"
	"github.com/oscarlimaalphafox/KADRA/models"
)

const (
	// FormatProject is the per-project backup envelope.
	FormatProject = "ProtokollApp-Backup"
	// FormatFull is the whole-database backup envelope.
	FormatFull = "KADRA-FullBackup"
	// Version is the current backup schema version.
	Version = 2
)

// ProjectBackup is the envelope of a single-project export: the project
// record plus all of its protocols, trash included.
type ProjectBackup struct {
	Format     string             `json:"_format"`
	Version    int                `json:"_version"`
	ExportedAt string             `json:"exportedAt"`
	Project    *models.Project    `json:"project"`
	Protocols  []*models.Protocol `json:"protocols"`
}

// FullBackup is the envelope of a whole-database export.
type FullBackup struct {
	Format     string             `json:"_format"`
	Version    int                `json:"_version"`
	ExportedAt string             `json:"_exportedAt"`
	Projects   []models.Project   `json:"projects"`
	Protocols  []*models.Protocol `json:"protocols"`
}

// ImportResult counts what an import wrote.
type ImportResult struct {
	Projects  int
	Protocols int
}

// ExportProject serializes a project and all of its protocols.
func ExportProject(sqlDB *sql.DB, projectID uuid.UUID) ([]byte, error) {
	project, err := db.GetProject(sqlDB, projectID)
	if err != nil {
		return nil, err
	}
	protocols, err := db.GetAllProtocolsByProject(sqlDB, projectID)
	if err != nil {
		return nil, err
	}
	markExportedFiles(protocols)

	envelope := ProjectBackup{
		Format:     FormatProject,
		Version:    Version,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Project:    project,
		Protocols:  protocols,
	}
	return json.MarshalIndent(envelope, "", "  ")
}

// ExportFull serializes every project and protocol in the store.
func ExportFull(sqlDB *sql.DB) ([]byte, error) {
	projects, err := db.ListAllProjects(sqlDB)
	if err != nil {
		return nil, err
	}
	protocols, err := db.ListAllProtocols(sqlDB)
	if err != nil {
		return nil, err
	}
	markExportedFiles(protocols)

	envelope := FullBackup{
		Format:     FormatFull,
		Version:    Version,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Projects:   projects,
		Protocols:  protocols,
	}
	return json.MarshalIndent(envelope, "", "  ")
}

// ImportProject restores a single-project backup. Records keep their ids;
// existing records with the same id are overwritten, which the caller
// confirms through force. Protocols belonging to other projects are skipped.
func ImportProject(sqlDB *sql.DB, data []byte, force bool) (*ImportResult, error) {
	var envelope ProjectBackup
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, &models.ValidationError{Field: "file", Message: "Datei ist kein gültiges JSON"}
	}
	if envelope.Format != FormatProject || envelope.Project == nil || envelope.Protocols == nil {
		return nil, &models.ValidationError{Field: "file", Message: fmt.Sprintf("kein %s-Backup", FormatProject)}
	}
	project := envelope.Project
	if project.ID == uuid.Nil || project.Code == "" {
		return nil, &models.ValidationError{Field: "project", Message: "Projekt-Daten unvollständig"}
	}

	if existing, err := db.GetProject(sqlDB, project.ID); err == nil && existing != nil && !force {
		return nil, &models.ValidationError{
			Field:   "project",
			Message: fmt.Sprintf("Projekt %q existiert bereits, Import überschreibt es", existing.Code),
		}
	}

	if err := db.SaveProject(sqlDB, project); err != nil {
		return nil, err
	}

	result := &ImportResult{Projects: 1}
	for _, protocol := range envelope.Protocols {
		if protocol.ProjectID != project.ID {
			continue
		}
		restoreImportedFiles(protocol)
		if err := db.SaveProtocol(sqlDB, protocol); err != nil {
			return result, err
		}
		result.Protocols++
	}
	return result, nil
}

// ImportFull restores a whole-database backup, upserting by id.
func ImportFull(sqlDB *sql.DB, data []byte) (*ImportResult, error) {
	var envelope FullBackup
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, &models.ValidationError{Field: "file", Message: "Datei ist kein gültiges JSON"}
	}
	if envelope.Format != FormatFull {
		return nil, &models.ValidationError{Field: "file", Message: fmt.Sprintf("kein %s-Backup", FormatFull)}
	}
	if envelope.Projects == nil || envelope.Protocols == nil {
		return nil, &models.ValidationError{Field: "file", Message: "Backup-Daten unvollständig"}
	}

	result := &ImportResult{}
	for i := range envelope.Projects {
		project := envelope.Projects[i]
		if project.ID == uuid.Nil {
			continue
		}
		if err := db.SaveProject(sqlDB, &project); err != nil {
			return result, err
		}
		result.Projects++
	}
	for _, protocol := range envelope.Protocols {
		if protocol.ID == uuid.Nil {
			continue
		}
		restoreImportedFiles(protocol)
		if err := db.SaveProtocol(sqlDB, protocol); err != nil {
			return result, err
		}
		result.Protocols++
	}
	return result, nil
}

// markExportedFiles flags attachment payloads so readers of the JSON know
// the fileData field carries base64. Attachments without a payload pass
// through untouched.
func markExportedFiles(protocols []*models.Protocol) {
	for _, protocol := range protocols {
		for i := range protocol.Attachments {
			if len(protocol.Attachments[i].FileData) > 0 {
				protocol.Attachments[i].FileDataBase64 = true
			}
		}
	}
}

func restoreImportedFiles(protocol *models.Protocol) {
	for i := range protocol.Attachments {
		protocol.Attachments[i].FileDataBase64 = false
	}
}

// ProjectFilename names a project export: "260315 NB_backup Protokolle.json".
func ProjectFilename(code string, now time.Time) string {
	return fmt.Sprintf("%s %s_backup Protokolle.json", now.Format("060102"), code)
}

// FullFilename names a full export: "260315_0930_KADRA-Backup.json".
func FullFilename(now time.Time) string {
	return fmt.Sprintf("%s_%s_KADRA-Backup.json", now.Format("060102"), now.Format("1504"))
}
