// ABOUTME: Backup CLI commands
// ABOUTME: Export and import project and full-database JSON backups
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oscarlimaalphafox/KADRA/backup"
)

// ExportProjectCommand writes a single-project backup file.
func ExportProjectCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("export-project", flag.ExitOnError)
	output := fs.String("output", ".", "Output directory")
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("project code or ID is required")
	}
	project, err := resolveProject(database, fs.Args()[0])
	if err != nil {
		return err
	}

	data, err := backup.ExportProject(database, project.ID)
	if err != nil {
		return fmt.Errorf("failed to export project: %w", err)
	}

	path := filepath.Join(*output, backup.ProjectFilename(project.Code, time.Now()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	fmt.Printf("✓ Backup geschrieben: %s\n", path)
	return nil
}

// ImportProjectCommand restores a single-project backup.
func ImportProjectCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("import-project", flag.ExitOnError)
	force := fs.Bool("force", false, "Overwrite an existing project with the same ID")
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("backup file is required")
	}
	data, err := os.ReadFile(fs.Args()[0])
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}

	result, err := backup.ImportProject(database, data, *force)
	if err != nil {
		return fmt.Errorf("failed to import project: %w", err)
	}
	fmt.Printf("✓ Import abgeschlossen: %d Projekt, %d Protokoll(e)\n", result.Projects, result.Protocols)
	return nil
}

// ExportFullCommand writes a whole-database backup file.
func ExportFullCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("export-full", flag.ExitOnError)
	output := fs.String("output", ".", "Output directory")
	_ = fs.Parse(args)

	data, err := backup.ExportFull(database)
	if err != nil {
		return fmt.Errorf("failed to export database: %w", err)
	}

	path := filepath.Join(*output, backup.FullFilename(time.Now()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}
	fmt.Printf("✓ Backup geschrieben: %s\n", path)
	return nil
}

// ImportFullCommand restores a whole-database backup.
func ImportFullCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("import-full", flag.ExitOnError)
	yes := fs.Bool("yes", false, "Skip confirmation")
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("backup file is required")
	}

	if !confirm("Vollständiges Backup importieren? Bestehende Datensätze mit gleicher ID werden überschrieben.", *yes) {
		fmt.Println("Abgebrochen")
		return nil
	}

	data, err := os.ReadFile(fs.Args()[0])
	if err != nil {
		return fmt.Errorf("failed to read backup: %w", err)
	}

	result, err := backup.ImportFull(database, data)
	if err != nil {
		return fmt.Errorf("failed to import backup: %w", err)
	}
	fmt.Printf("✓ Import abgeschlossen: %d Projekt(e), %d Protokoll(e)\n", result.Projects, result.Protocols)
	return nil
}
