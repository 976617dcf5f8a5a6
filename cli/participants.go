// ABOUTME: Participant and abbreviation CLI commands
// ABOUTME: Manage the roster and the custom abbreviation directory
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/oscarlimaalphafox/KADRA/db"
	"github.com/oscarlimaalphafox/KADRA/lifecycle"
	"github.com/oscarlimaalphafox/KADRA/models"
)

// AddParticipantCommand appends a roster entry.
func AddParticipantCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-participant", flag.ExitOnError)
	name := fs.String("name", "", "Participant name (required)")
	company := fs.String("company", "", "Company")
	abbr := fs.String("abbr", "", "Abbreviation")
	email := fs.String("email", "", "Email address")
	attended := fs.Bool("attended", false, "Mark as attended")
	inDistrib := fs.Bool("distrib", true, "Include in distribution list")
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("protocol ID is required")
	}
	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	_, err := editProtocol(database, fs.Args()[0], func(p *models.Protocol) error {
		return lifecycle.Apply(p, lifecycle.AddParticipant{
			Name:      *name,
			Company:   *company,
			Abbr:      *abbr,
			Email:     *email,
			Attended:  *attended,
			InDistrib: *inDistrib,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to add participant: %w", err)
	}
	fmt.Printf("✓ Teilnehmer hinzugefügt: %s\n", *name)
	return nil
}

// ListParticipantsCommand prints the roster.
func ListParticipantsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-participants", flag.ExitOnError)
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

	if len(protocol.Participants) == 0 {
		fmt.Println("Keine Teilnehmer")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tNAME\tFIRMA\tKÜRZEL\tE-MAIL\tTEILN.\tVERT.")
	for i, part := range protocol.Participants {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i, part.Name, part.Company, part.Abbr, part.Email,
			checkmark(part.Attended), checkmark(part.InDistrib))
	}
	_ = w.Flush()
	return nil
}

func checkmark(b bool) string {
	if b {
		return "x"
	}
	return "-"
}

// RemoveParticipantCommand drops a roster entry by index.
func RemoveParticipantCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("remove-participant", flag.ExitOnError)
	_ = fs.Parse(args)

	if len(fs.Args()) < 2 {
		return fmt.Errorf("protocol ID and participant index are required")
	}
	index, err := strconv.Atoi(fs.Args()[1])
	if err != nil {
		return fmt.Errorf("invalid participant index: %w", err)
	}

	_, err = editProtocol(database, fs.Args()[0], func(p *models.Protocol) error {
		return lifecycle.Apply(p, lifecycle.RemoveParticipant{Index: index})
	})
	if err != nil {
		return fmt.Errorf("failed to remove participant: %w", err)
	}
	fmt.Printf("✓ Teilnehmer entfernt: %d\n", index)
	return nil
}

// AddAbbreviationCommand adds a custom abbreviation.
func AddAbbreviationCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-abbreviation", flag.ExitOnError)
	abbr := fs.String("abbr", "", "Abbreviation (required)")
	name := fs.String("name", "", "Full name (required)")
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("protocol ID is required")
	}
	if *abbr == "" || *name == "" {
		return fmt.Errorf("--abbr and --name are required")
	}

	_, err := editProtocol(database, fs.Args()[0], func(p *models.Protocol) error {
		return lifecycle.Apply(p, lifecycle.AddAbbreviation{Abbr: *abbr, Name: *name})
	})
	if err != nil {
		return fmt.Errorf("failed to add abbreviation: %w", err)
	}
	fmt.Printf("✓ Abkürzung hinzugefügt: %s = %s\n", *abbr, *name)
	return nil
}

// RemoveAbbreviationCommand drops a custom abbreviation.
func RemoveAbbreviationCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("remove-abbreviation", flag.ExitOnError)
	_ = fs.Parse(args)

	if len(fs.Args()) < 2 {
		return fmt.Errorf("protocol ID and abbreviation are required")
	}
	abbr := fs.Args()[1]

	_, err := editProtocol(database, fs.Args()[0], func(p *models.Protocol) error {
		return lifecycle.Apply(p, lifecycle.RemoveAbbreviation{Abbr: abbr})
	})
	if err != nil {
		return fmt.Errorf("failed to remove abbreviation: %w", err)
	}
	fmt.Printf("✓ Abkürzung entfernt: %s\n", abbr)
	return nil
}
