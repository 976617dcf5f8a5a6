// ABOUTME: Tests for project database operations
// ABOUTME: Covers save, code uniqueness, trash cascade and restore
package db

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/oscarlimaalphafox/KADRA/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory db: %v", err)
	}
	if err := InitSchema(db); err != nil {
		t.Fatalf("InitSchema failed: %v", err)
	}
	return db
}

func TestSaveProject(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	project := &models.Project{Code: "NB", Name: "Neubau Ost"}
	if err := SaveProject(db, project); err != nil {
		t.Fatalf("SaveProject failed: %v", err)
	}

	if project.ID == uuid.Nil {
		t.Error("Project ID was not set")
	}
	if project.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}

	found, err := GetProject(db, project.ID)
	if err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}
	if found.Code != "NB" || found.Name != "Neubau Ost" {
		t.Errorf("Unexpected project: %+v", found)
	}
}

func TestSaveProjectCodeRules(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := SaveProject(db, &models.Project{Code: "nb", Name: "x"}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected validation error for lowercase code, got %v", err)
	}
	if err := SaveProject(db, &models.Project{Code: "ABCDE", Name: "x"}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected validation error for long code, got %v", err)
	}

	first := &models.Project{Code: "NB", Name: "Erstes"}
	if err := SaveProject(db, first); err != nil {
		t.Fatalf("SaveProject failed: %v", err)
	}

	// Duplicate code among active projects is rejected.
	dup := &models.Project{Code: "NB", Name: "Zweites"}
	if err := SaveProject(db, dup); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Expected validation error for duplicate code, got %v", err)
	}

	// Updating the holder itself keeps its code.
	first.Name = "Umbenannt"
	if err := SaveProject(db, first); err != nil {
		t.Errorf("Updating project with own code failed: %v", err)
	}

	// A trashed project releases its code.
	if err := TrashProject(db, first.ID); err != nil {
		t.Fatalf("TrashProject failed: %v", err)
	}
	if err := SaveProject(db, dup); err != nil {
		t.Errorf("Expected code to be free after trash, got %v", err)
	}
}

func TestGetProjectNotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, err := GetProject(db, uuid.New())
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected not-found error, got %v", err)
	}
}

func TestTrashProjectCascades(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	project := &models.Project{Code: "NB", Name: "Neubau"}
	if err := SaveProject(db, project); err != nil {
		t.Fatalf("SaveProject failed: %v", err)
	}

	proto := &models.Protocol{
		ProjectID: project.ID,
		Type:      models.TypePlanung,
		Number:    1,
		Structure: models.DefaultStructure(models.TypePlanung),
	}
	if err := SaveProtocol(db, proto); err != nil {
		t.Fatalf("SaveProtocol failed: %v", err)
	}

	// One protocol trashed individually beforehand.
	solo := &models.Protocol{
		ProjectID: project.ID,
		Type:      models.TypeAktennotiz,
		Structure: models.DefaultStructure(models.TypeAktennotiz),
	}
	if err := SaveProtocol(db, solo); err != nil {
		t.Fatalf("SaveProtocol failed: %v", err)
	}
	if err := TrashProtocol(db, solo.ID); err != nil {
		t.Fatalf("TrashProtocol failed: %v", err)
	}

	if err := TrashProject(db, project.ID); err != nil {
		t.Fatalf("TrashProject failed: %v", err)
	}

	active, err := GetProtocolsByProject(db, project.ID)
	if err != nil {
		t.Fatalf("GetProtocolsByProject failed: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("Expected no active protocols after cascade, got %d", len(active))
	}

	// Restore brings back the project and the cascaded protocol, but not the
	// one trashed on its own.
	if err := RestoreProject(db, project.ID); err != nil {
		t.Fatalf("RestoreProject failed: %v", err)
	}

	active, err = GetProtocolsByProject(db, project.ID)
	if err != nil {
		t.Fatalf("GetProtocolsByProject failed: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("Expected 1 active protocol after restore, got %d", len(active))
	}
	if active[0].ID != proto.ID {
		t.Errorf("Wrong protocol restored: %v", active[0].ID)
	}
}

func TestPurgeProject(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	project := &models.Project{Code: "NB", Name: "Neubau"}
	if err := SaveProject(db, project); err != nil {
		t.Fatalf("SaveProject failed: %v", err)
	}
	proto := &models.Protocol{ProjectID: project.ID, Type: models.TypePlanung, Number: 1}
	if err := SaveProtocol(db, proto); err != nil {
		t.Fatalf("SaveProtocol failed: %v", err)
	}

	if err := PurgeProject(db, project.ID); err != nil {
		t.Fatalf("PurgeProject failed: %v", err)
	}

	if _, err := GetProject(db, project.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected project gone, got %v", err)
	}
	if _, err := GetProtocol(db, proto.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected protocol gone, got %v", err)
	}
}

func TestListProjects(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for _, code := range []string{"ZZ", "AA", "MM"} {
		if err := SaveProject(db, &models.Project{Code: code, Name: "P " + code}); err != nil {
			t.Fatalf("SaveProject failed: %v", err)
		}
	}

	projects, err := ListProjects(db)
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(projects) != 3 {
		t.Fatalf("Expected 3 projects, got %d", len(projects))
	}
	if projects[0].Code != "AA" || projects[2].Code != "ZZ" {
		t.Errorf("Expected code ordering, got %v %v %v", projects[0].Code, projects[1].Code, projects[2].Code)
	}
}
