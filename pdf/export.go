// ABOUTME: Store-aware PDF export wrapper
// ABOUTME: Loads protocol and project, renders and writes the named file
package pdf

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/oscarlimaalphafox/KADRA/db"
)

// Export renders a protocol into dir and returns the path of the written
// file.
func Export(sqlDB *sql.DB, protocolID uuid.UUID, hidden map[string]bool, dir string) (string, error) {
	protocol, err := db.GetProtocol(sqlDB, protocolID)
	if err != nil {
		return "", err
	}
	project, err := db.GetProject(sqlDB, protocol.ProjectID)
	if err != nil {
		return "", err
	}

	now := time.Now()
	path := filepath.Join(dir, Filename(project.Code, protocol, now))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := Render(f, project, protocol, hidden, now); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
