// ABOUTME: Shared CLI helpers for lookups, confirmation and protocol editing
// ABOUTME: Projects resolve by code or id, protocols by id
package cli

import (
	"bufio"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/oscarlimaalphafox/KADRA/db"
	"github.com/oscarlimaalphafox/KADRA/models"
)

// resolveProject accepts either a project code or a uuid.
func resolveProject(database *sql.DB, ref string) (*models.Project, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return db.GetProject(database, id)
	}
	return db.GetProjectByCode(database, ref)
}

func parseID(entity, ref string) (uuid.UUID, error) {
	id, err := uuid.Parse(ref)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s ID: %w", entity, err)
	}
	return id, nil
}

// confirm asks the user before a destructive operation. --yes skips the
// prompt for scripted use. Declining is a no-op.
func confirm(prompt string, yes bool) bool {
	if yes {
		return true
	}
	fmt.Printf("%s [j/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "j", "ja", "y", "yes":
		return true
	}
	return false
}

// editProtocol loads a protocol, applies fn and saves the result. Nothing is
// written when fn fails.
func editProtocol(database *sql.DB, ref string, fn func(*models.Protocol) error) (*models.Protocol, error) {
	id, err := parseID("protocol", ref)
	if err != nil {
		return nil, err
	}
	protocol, err := db.GetProtocol(database, id)
	if err != nil {
		return nil, err
	}
	if err := fn(protocol); err != nil {
		return nil, err
	}
	if err := db.SaveProtocol(database, protocol); err != nil {
		return nil, err
	}
	return protocol, nil
}

func protocolLabel(p *models.Protocol) string {
	name := p.SeriesName
	if name == "" {
		name = p.Title
	}
	if name == "" {
		name = p.Type
	}
	if p.IsMemo() {
		return name
	}
	return fmt.Sprintf("%s Nr. %02d", name, p.Number)
}
