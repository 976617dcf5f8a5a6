// ABOUTME: Project CLI commands
// ABOUTME: Create, list, update, trash, restore and purge projects
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/oscarlimaalphafox/KADRA/db"
	"github.com/oscarlimaalphafox/KADRA/models"
)

// AddProjectCommand creates a new project.
func AddProjectCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-project", flag.ExitOnError)
	code := fs.String("code", "", "Project code, 2-4 uppercase letters (required)")
	name := fs.String("name", "", "Project name (required)")
	tenant := fs.String("tenant", "", "Tenant (Mieterin)")
	owner := fs.String("owner", "", "Owner (Vermieterin)")
	_ = fs.Parse(args)

	if *code == "" || *name == "" {
		return fmt.Errorf("--code and --name are required")
	}

	project := &models.Project{
		Code:   *code,
		Name:   *name,
		Tenant: *tenant,
		Owner:  *owner,
	}
	if err := db.SaveProject(database, project); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	fmt.Printf("✓ Projekt angelegt: %s — %s (ID: %s)\n", project.Code, project.Name, project.ID)
	return nil
}

// ListProjectsCommand lists projects.
func ListProjectsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-projects", flag.ExitOnError)
	trash := fs.Bool("trash", false, "List trashed projects instead")
	_ = fs.Parse(args)

	var projects []models.Project
	var err error
	if *trash {
		projects, err = db.ListTrashedProjects(database)
	} else {
		projects, err = db.ListProjects(database)
	}
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	if len(projects) == 0 {
		fmt.Println("Keine Projekte gefunden")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "CODE\tNAME\tMIETERIN\tVERMIETERIN\tID")
	_, _ = fmt.Fprintln(w, "----\t----\t--------\t-----------\t--")
	for _, p := range projects {
		tenant := p.Tenant
		if tenant == "" {
			tenant = "-"
		}
		owner := p.Owner
		if owner == "" {
			owner = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.Code, p.Name, tenant, owner, p.ID.String()[:8])
	}
	_ = w.Flush()

	fmt.Printf("\nGesamt: %d Projekt(e)\n", len(projects))
	return nil
}

// UpdateProjectCommand updates project fields.
func UpdateProjectCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("update-project", flag.ExitOnError)
	code := fs.String("code", "", "Project code")
	name := fs.String("name", "", "Project name")
	tenant := fs.String("tenant", "", "Tenant (Mieterin)")
	owner := fs.String("owner", "", "Owner (Vermieterin)")
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("project code or ID is required")
	}
	project, err := resolveProject(database, fs.Args()[0])
	if err != nil {
		return err
	}

	if *code != "" {
		project.Code = *code
	}
	if *name != "" {
		project.Name = *name
	}
	if *tenant != "" {
		project.Tenant = *tenant
	}
	if *owner != "" {
		project.Owner = *owner
	}

	if err := db.SaveProject(database, project); err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	fmt.Printf("✓ Projekt aktualisiert: %s\n", project.Code)
	return nil
}

// TrashProjectCommand soft-deletes a project and its protocols.
func TrashProjectCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("trash-project", flag.ExitOnError)
	yes := fs.Bool("yes", false, "Skip confirmation")
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("project code or ID is required")
	}
	project, err := resolveProject(database, fs.Args()[0])
	if err != nil {
		return err
	}

	if !confirm(fmt.Sprintf("Projekt %q mit allen Protokollen in den Papierkorb verschieben?", project.Code), *yes) {
		fmt.Println("Abgebrochen")
		return nil
	}

	if err := db.TrashProject(database, project.ID); err != nil {
		return fmt.Errorf("failed to trash project: %w", err)
	}
	fmt.Printf("✓ Projekt in den Papierkorb verschoben: %s\n", project.Code)
	return nil
}

// RestoreProjectCommand restores a project from the trash.
func RestoreProjectCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("restore-project", flag.ExitOnError)
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("project ID is required")
	}
	id, err := parseID("project", fs.Args()[0])
	if err != nil {
		return err
	}

	if err := db.RestoreProject(database, id); err != nil {
		return fmt.Errorf("failed to restore project: %w", err)
	}
	fmt.Printf("✓ Projekt wiederhergestellt: %s\n", id)
	return nil
}

// PurgeProjectCommand permanently deletes a project and its protocols.
func PurgeProjectCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("purge-project", flag.ExitOnError)
	yes := fs.Bool("yes", false, "Skip confirmation")
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("project ID is required")
	}
	id, err := parseID("project", fs.Args()[0])
	if err != nil {
		return err
	}

	if !confirm("Projekt endgültig löschen? Dies kann nicht rückgängig gemacht werden.", *yes) {
		fmt.Println("Abgebrochen")
		return nil
	}

	if err := db.PurgeProject(database, id); err != nil {
		return fmt.Errorf("failed to purge project: %w", err)
	}
	fmt.Printf("✓ Projekt endgültig gelöscht: %s\n", id)
	return nil
}
