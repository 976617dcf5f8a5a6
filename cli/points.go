// ABOUTME: Point CLI commands
// ABOUTME: Create, edit, complete, delete and reorder protocol points
package cli

import (
	"database/sql"
	"flag"
	"fmt"

	"github.com/oscarlimaalphafox/KADRA/lifecycle"
	"github.com/oscarlimaalphafox/KADRA/models"
)

// AddPointCommand creates a point under the given anchor.
func AddPointCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-point", flag.ExitOnError)
	chapter := fs.String("chapter", "", "Chapter key, e.g. A (required)")
	subchapter := fs.String("subchapter", "", "Subchapter ID, e.g. B.1")
	topic := fs.String("topic", "", "Topic ID")
	content := fs.String("content", "", "Point content")
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("protocol ID is required")
	}
	if *chapter == "" {
		return fmt.Errorf("--chapter is required")
	}

	var created string
	_, err := editProtocol(database, fs.Args()[0], func(p *models.Protocol) error {
		if err := lifecycle.Apply(p, lifecycle.AddPoint{Chapter: *chapter, Subchapter: *subchapter, Topic: *topic}); err != nil {
			return err
		}
		pt := &p.Points[len(p.Points)-1]
		created = pt.ID
		if *content != "" {
			return lifecycle.Apply(p, lifecycle.SetPointContent{ID: pt.ID, Content: *content})
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to add point: %w", err)
	}
	fmt.Printf("✓ Punkt angelegt: %s\n", created)
	return nil
}

// AddTopicCommand creates a topic with its first point.
func AddTopicCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-topic", flag.ExitOnError)
	subchapter := fs.String("subchapter", "", "Subchapter ID (required)")
	label := fs.String("label", "", "Topic label (required)")
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("protocol ID is required")
	}
	if *subchapter == "" || *label == "" {
		return fmt.Errorf("--subchapter and --label are required")
	}

	var created string
	_, err := editProtocol(database, fs.Args()[0], func(p *models.Protocol) error {
		if err := lifecycle.Apply(p, lifecycle.AddTopic{Subchapter: *subchapter, Label: *label}); err != nil {
			return err
		}
		created = p.Points[len(p.Points)-1].ID
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to add topic: %w", err)
	}
	fmt.Printf("✓ Thema %q angelegt, erster Punkt: %s\n", *label, created)
	return nil
}

// SetPointCommand edits point fields through the reducer.
func SetPointCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("set-point", flag.ExitOnError)
	content := fs.String("content", "", "Point content")
	category := fs.String("category", "", "Category (Aufgabe, Info, Festlegung, Freigabe erfordl)")
	responsible := fs.String("responsible", "", "Responsible abbreviations, '/'-joined")
	deadline := fs.String("deadline", "", "Deadline (free text)")
	done := fs.Bool("done", false, "Mark done")
	reopen := fs.Bool("reopen", false, "Reopen a completed point")
	_ = fs.Parse(args)

	if len(fs.Args()) < 2 {
		return fmt.Errorf("protocol ID and point ID are required")
	}
	pointID := fs.Args()[1]

	_, err := editProtocol(database, fs.Args()[0], func(p *models.Protocol) error {
		var actions []lifecycle.Action
		if *content != "" {
			actions = append(actions, lifecycle.SetPointContent{ID: pointID, Content: *content})
		}
		if *category != "" {
			actions = append(actions, lifecycle.SetPointCategory{ID: pointID, Category: *category})
		}
		if *responsible != "" {
			actions = append(actions, lifecycle.SetPointResponsible{ID: pointID, Responsible: *responsible})
		}
		if *deadline != "" {
			actions = append(actions, lifecycle.SetPointDeadline{ID: pointID, Deadline: *deadline})
		}
		if *done {
			actions = append(actions, lifecycle.SetPointDone{ID: pointID, Done: true})
		}
		if *reopen {
			actions = append(actions, lifecycle.SetPointDone{ID: pointID, Done: false})
		}
		if len(actions) == 0 {
			return fmt.Errorf("nothing to change")
		}
		for _, action := range actions {
			if err := lifecycle.Apply(p, action); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update point: %w", err)
	}
	fmt.Printf("✓ Punkt aktualisiert: %s\n", pointID)
	return nil
}

// DeletePointCommand removes a point permanently.
func DeletePointCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("delete-point", flag.ExitOnError)
	yes := fs.Bool("yes", false, "Skip confirmation")
	_ = fs.Parse(args)

	if len(fs.Args()) < 2 {
		return fmt.Errorf("protocol ID and point ID are required")
	}
	pointID := fs.Args()[1]

	if !confirm(fmt.Sprintf("Punkt %s löschen?", pointID), *yes) {
		fmt.Println("Abgebrochen")
		return nil
	}

	_, err := editProtocol(database, fs.Args()[0], func(p *models.Protocol) error {
		return lifecycle.Apply(p, lifecycle.DeletePoint{ID: pointID})
	})
	if err != nil {
		return fmt.Errorf("failed to delete point: %w", err)
	}
	fmt.Printf("✓ Punkt gelöscht: %s\n", pointID)
	return nil
}

// MovePointCommand reorders a point within its bucket.
func MovePointCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("move-point", flag.ExitOnError)
	target := fs.String("target", "", "Target point ID (required)")
	after := fs.Bool("after", false, "Insert after the target instead of before")
	_ = fs.Parse(args)

	if len(fs.Args()) < 2 {
		return fmt.Errorf("protocol ID and point ID are required")
	}
	if *target == "" {
		return fmt.Errorf("--target is required")
	}
	pointID := fs.Args()[1]

	_, err := editProtocol(database, fs.Args()[0], func(p *models.Protocol) error {
		return lifecycle.Apply(p, lifecycle.MovePoint{ID: pointID, Target: *target, After: *after})
	})
	if err != nil {
		return fmt.Errorf("failed to move point: %w", err)
	}
	fmt.Printf("✓ Punkt verschoben: %s\n", pointID)
	return nil
}
