// ABOUTME: Protocol CLI commands
// ABOUTME: Start, continue, duplicate, list, show, trash, restore and purge
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/oscarlimaalphafox/KADRA/db"
	"github.com/oscarlimaalphafox/KADRA/lifecycle"
	"github.com/oscarlimaalphafox/KADRA/models"
	"github.com/oscarlimaalphafox/KADRA/render"
	"github.com/oscarlimaalphafox/KADRA/series"
)

// NewProtocolCommand starts a new protocol series (or a memo).
func NewProtocolCommand(database *sql.DB, author models.Author, args []string) error {
	fs := flag.NewFlagSet("new-protocol", flag.ExitOnError)
	project := fs.String("project", "", "Project code or ID (required)")
	protocolType := fs.String("type", models.TypeBaubesprechung, "Protocol type")
	name := fs.String("name", "", "Series name (required)")
	_ = fs.Parse(args)

	if *project == "" || *name == "" {
		return fmt.Errorf("--project and --name are required")
	}

	p, err := resolveProject(database, *project)
	if err != nil {
		return err
	}

	protocol, err := series.Start(database, p.ID, *protocolType, *name, author)
	if err != nil {
		return fmt.Errorf("failed to start protocol: %w", err)
	}

	fmt.Printf("✓ %s angelegt (ID: %s)\n", protocolLabel(protocol), protocol.ID)
	return nil
}

// ContinueProtocolCommand creates the next revision of a series.
func ContinueProtocolCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("continue-protocol", flag.ExitOnError)
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("protocol ID is required")
	}
	id, err := parseID("protocol", fs.Args()[0])
	if err != nil {
		return err
	}

	prior, err := db.GetProtocol(database, id)
	if err != nil {
		return err
	}

	next, err := series.ContinueLatest(database, prior.SeriesID)
	if err != nil {
		return fmt.Errorf("failed to continue series: %w", err)
	}

	carried := 0
	for _, pt := range next.Points {
		if !pt.IsNew {
			carried++
		}
	}
	fmt.Printf("✓ %s angelegt, %d Punkte übernommen (ID: %s)\n", protocolLabel(next), carried, next.ID)
	return nil
}

// DuplicateProtocolCommand saves an independent copy under a new name.
func DuplicateProtocolCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("duplicate-protocol", flag.ExitOnError)
	name := fs.String("name", "", "Name of the copy (required)")
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("protocol ID is required")
	}
	if *name == "" {
		return fmt.Errorf("--name is required")
	}
	id, err := parseID("protocol", fs.Args()[0])
	if err != nil {
		return err
	}

	dup, err := series.DuplicateProtocol(database, id, *name)
	if err != nil {
		return fmt.Errorf("failed to duplicate protocol: %w", err)
	}
	fmt.Printf("✓ Kopie angelegt: %s (ID: %s)\n", protocolLabel(dup), dup.ID)
	return nil
}

// RenameProtocolCommand renames a protocol series.
func RenameProtocolCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("rename-protocol", flag.ExitOnError)
	name := fs.String("name", "", "New series name (required)")
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("protocol ID is required")
	}
	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	p, err := editProtocol(database, fs.Args()[0], func(p *models.Protocol) error {
		return lifecycle.Apply(p, lifecycle.SetSeriesName{Name: *name})
	})
	if err != nil {
		return err
	}
	fmt.Printf("✓ Umbenannt: %s\n", protocolLabel(p))
	return nil
}

// ListProtocolsCommand lists the protocols of a project.
func ListProtocolsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-protocols", flag.ExitOnError)
	project := fs.String("project", "", "Project code or ID (required)")
	trash := fs.Bool("trash", false, "List trashed protocols instead")
	_ = fs.Parse(args)

	var protocols []*models.Protocol
	var err error
	if *trash {
		protocols, err = db.ListTrashedProtocols(database)
	} else {
		if *project == "" {
			return fmt.Errorf("--project is required")
		}
		p, perr := resolveProject(database, *project)
		if perr != nil {
			return perr
		}
		protocols, err = db.GetProtocolsByProject(database, p.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to list protocols: %w", err)
	}

	if len(protocols) == 0 {
		fmt.Println("Keine Protokolle gefunden")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TYP\tNAME\tNR\tDATUM\tPUNKTE\tID")
	_, _ = fmt.Fprintln(w, "---\t----\t--\t-----\t------\t--")
	for _, p := range protocols {
		num := "-"
		if !p.IsMemo() {
			num = fmt.Sprintf("%02d", p.Number)
		}
		name := p.SeriesName
		if name == "" {
			name = p.Title
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			p.Type, name, num, p.Date, len(p.Points), p.ID.String()[:8])
	}
	_ = w.Flush()

	fmt.Printf("\nGesamt: %d Protokoll(e)\n", len(protocols))
	return nil
}

// ShowProtocolCommand prints the rendered document rows.
func ShowProtocolCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("show-protocol", flag.ExitOnError)
	hideDone := fs.Bool("hide-done", false, "Hide completed points")
	onlyOverdue := fs.Bool("only-overdue", false, "Show only overdue points")
	onlyNew := fs.Bool("only-new", false, "Show only new points")
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("protocol ID is required")
	}
	id, err := parseID("protocol", fs.Args()[0])
	if err != nil {
		return err
	}

	protocol, err := db.GetProtocol(database, id)
	if err != nil {
		return err
	}

	vs := render.NewViewState()
	vs.SetHideDone(*hideDone)
	if *onlyOverdue {
		vs.SetOnlyOverdue(true)
	}
	if *onlyNew {
		vs.SetOnlyNew(true)
	}

	fmt.Printf("%s — %s\n\n", protocolLabel(protocol), protocol.Date)
	rows := render.BuildRows(protocol, vs, time.Now())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		switch row.Kind {
		case render.RowChapter:
			_, _ = fmt.Fprintf(w, "%s - %s\t\t\t\n", row.Chapter.Key, strings.ToUpper(row.Chapter.Label))
		case render.RowSubchapter:
			_, _ = fmt.Fprintf(w, "  %s - %s\t\t\t\n", row.Subchapter.ID, row.Subchapter.Label)
		case render.RowTopic:
			_, _ = fmt.Fprintf(w, "    %s\t\t\t\n", row.Topic.Label)
		case render.RowPoint:
			_, _ = fmt.Fprintf(w, "    %s\t%s\t%s\t%s\n",
				row.Point.Point.ID, pointSummary(row.Point), row.Point.Point.Responsible, row.Point.Point.Deadline)
		}
	}
	_ = w.Flush()
	return nil
}

func pointSummary(pr *render.PointRow) string {
	content := strings.ReplaceAll(pr.Point.Content, "\n", " ")
	if len(content) > 60 {
		content = content[:57] + "..."
	}
	var marks []string
	if pr.Done {
		marks = append(marks, "erledigt")
	}
	if pr.IsNew {
		marks = append(marks, "neu")
	}
	if pr.Overdue {
		marks = append(marks, "überfällig")
	}
	if len(marks) > 0 {
		content += " [" + strings.Join(marks, ", ") + "]"
	}
	return content
}

// TrashProtocolCommand soft-deletes a protocol.
func TrashProtocolCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("trash-protocol", flag.ExitOnError)
	yes := fs.Bool("yes", false, "Skip confirmation")
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("protocol ID is required")
	}
	id, err := parseID("protocol", fs.Args()[0])
	if err != nil {
		return err
	}

	protocol, err := db.GetProtocol(database, id)
	if err != nil {
		return err
	}
	if !confirm(fmt.Sprintf("%q in den Papierkorb verschieben?", protocolLabel(protocol)), *yes) {
		fmt.Println("Abgebrochen")
		return nil
	}

	if err := db.TrashProtocol(database, id); err != nil {
		return fmt.Errorf("failed to trash protocol: %w", err)
	}
	fmt.Printf("✓ Protokoll in den Papierkorb verschoben: %s\n", id)
	return nil
}

// RestoreProtocolCommand restores a protocol from the trash.
func RestoreProtocolCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("restore-protocol", flag.ExitOnError)
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("protocol ID is required")
	}
	id, err := parseID("protocol", fs.Args()[0])
	if err != nil {
		return err
	}

	if err := db.RestoreProtocol(database, id); err != nil {
		return fmt.Errorf("failed to restore protocol: %w", err)
	}
	fmt.Printf("✓ Protokoll wiederhergestellt: %s\n", id)
	return nil
}

// PurgeProtocolCommand permanently deletes a protocol.
func PurgeProtocolCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("purge-protocol", flag.ExitOnError)
	yes := fs.Bool("yes", false, "Skip confirmation")
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("protocol ID is required")
	}
	id, err := parseID("protocol", fs.Args()[0])
	if err != nil {
		return err
	}

	if !confirm("Protokoll endgültig löschen? Dies kann nicht rückgängig gemacht werden.", *yes) {
		fmt.Println("Abgebrochen")
		return nil
	}

	if err := db.PurgeProtocol(database, id); err != nil {
		return fmt.Errorf("failed to purge protocol: %w", err)
	}
	fmt.Printf("✓ Protokoll endgültig gelöscht: %s\n", id)
	return nil
}
