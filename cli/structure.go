// ABOUTME: Structure CLI commands for chapters, subchapters and topics
// ABOUTME: All mutations run through the lifecycle reducer
package cli

import (
	"database/sql"
	"flag"
	"fmt"

	"github.com/oscarlimaalphafox/KADRA/lifecycle"
	"github.com/oscarlimaalphafox/KADRA/models"
)

// AddChapterCommand appends a user chapter under the lowest free letter.
func AddChapterCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-chapter", flag.ExitOnError)
	label := fs.String("label", "", "Chapter label (required)")
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("protocol ID is required")
	}
	if *label == "" {
		return fmt.Errorf("--label is required")
	}

	var key string
	_, err := editProtocol(database, fs.Args()[0], func(p *models.Protocol) error {
		if err := lifecycle.Apply(p, lifecycle.AddChapter{Label: *label}); err != nil {
			return err
		}
		key = p.Structure[len(p.Structure)-1].Key
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to add chapter: %w", err)
	}
	fmt.Printf("✓ Kapitel %s angelegt: %s\n", key, *label)
	return nil
}

// RenameChapterCommand relabels a chapter.
func RenameChapterCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("rename-chapter", flag.ExitOnError)
	label := fs.String("label", "", "New label (required)")
	_ = fs.Parse(args)

	if len(fs.Args()) < 2 {
		return fmt.Errorf("protocol ID and chapter key are required")
	}
	if *label == "" {
		return fmt.Errorf("--label is required")
	}
	key := fs.Args()[1]

	_, err := editProtocol(database, fs.Args()[0], func(p *models.Protocol) error {
		return lifecycle.Apply(p, lifecycle.RenameChapter{Key: key, Label: *label})
	})
	if err != nil {
		return fmt.Errorf("failed to rename chapter: %w", err)
	}
	fmt.Printf("✓ Kapitel %s umbenannt\n", key)
	return nil
}

// DeleteChapterCommand removes an empty user chapter.
func DeleteChapterCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("delete-chapter", flag.ExitOnError)
	yes := fs.Bool("yes", false, "Skip confirmation")
	_ = fs.Parse(args)

	if len(fs.Args()) < 2 {
		return fmt.Errorf("protocol ID and chapter key are required")
	}
	key := fs.Args()[1]

	if !confirm(fmt.Sprintf("Kapitel %s löschen?", key), *yes) {
		fmt.Println("Abgebrochen")
		return nil
	}

	_, err := editProtocol(database, fs.Args()[0], func(p *models.Protocol) error {
		return lifecycle.Apply(p, lifecycle.DeleteChapter{Key: key})
	})
	if err != nil {
		return fmt.Errorf("failed to delete chapter: %w", err)
	}
	fmt.Printf("✓ Kapitel %s gelöscht\n", key)
	return nil
}

// AddSubchapterCommand appends a subchapter to a chapter.
func AddSubchapterCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-subchapter", flag.ExitOnError)
	chapter := fs.String("chapter", "", "Chapter key (required)")
	label := fs.String("label", "", "Subchapter label (required)")
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("protocol ID is required")
	}
	if *chapter == "" || *label == "" {
		return fmt.Errorf("--chapter and --label are required")
	}

	var id string
	_, err := editProtocol(database, fs.Args()[0], func(p *models.Protocol) error {
		if err := lifecycle.Apply(p, lifecycle.AddSubchapter{Chapter: *chapter, Label: *label}); err != nil {
			return err
		}
		ch := p.Structure.Chapter(*chapter)
		id = ch.Subchapters[len(ch.Subchapters)-1].ID
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to add subchapter: %w", err)
	}
	fmt.Printf("✓ Unterkapitel %s angelegt: %s\n", id, *label)
	return nil
}

// RenameSubchapterCommand relabels a subchapter.
func RenameSubchapterCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("rename-subchapter", flag.ExitOnError)
	label := fs.String("label", "", "New label (required)")
	_ = fs.Parse(args)

	if len(fs.Args()) < 2 {
		return fmt.Errorf("protocol ID and subchapter ID are required")
	}
	if *label == "" {
		return fmt.Errorf("--label is required")
	}
	id := fs.Args()[1]

	_, err := editProtocol(database, fs.Args()[0], func(p *models.Protocol) error {
		return lifecycle.Apply(p, lifecycle.RenameSubchapter{ID: id, Label: *label})
	})
	if err != nil {
		return fmt.Errorf("failed to rename subchapter: %w", err)
	}
	fmt.Printf("✓ Unterkapitel %s umbenannt\n", id)
	return nil
}

// DeleteSubchapterCommand removes a subchapter with its points.
func DeleteSubchapterCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("delete-subchapter", flag.ExitOnError)
	yes := fs.Bool("yes", false, "Skip confirmation")
	_ = fs.Parse(args)

	if len(fs.Args()) < 2 {
		return fmt.Errorf("protocol ID and subchapter ID are required")
	}
	id := fs.Args()[1]

	if !confirm(fmt.Sprintf("Unterkapitel %s mit allen Punkten löschen?", id), *yes) {
		fmt.Println("Abgebrochen")
		return nil
	}

	_, err := editProtocol(database, fs.Args()[0], func(p *models.Protocol) error {
		return lifecycle.Apply(p, lifecycle.DeleteSubchapter{ID: id})
	})
	if err != nil {
		return fmt.Errorf("failed to delete subchapter: %w", err)
	}
	fmt.Printf("✓ Unterkapitel %s gelöscht\n", id)
	return nil
}

// RenameTopicCommand relabels a topic.
func RenameTopicCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("rename-topic", flag.ExitOnError)
	label := fs.String("label", "", "New label (required)")
	_ = fs.Parse(args)

	if len(fs.Args()) < 2 {
		return fmt.Errorf("protocol ID and topic ID are required")
	}
	if *label == "" {
		return fmt.Errorf("--label is required")
	}
	id := fs.Args()[1]

	_, err := editProtocol(database, fs.Args()[0], func(p *models.Protocol) error {
		return lifecycle.Apply(p, lifecycle.RenameTopic{ID: id, Label: *label})
	})
	if err != nil {
		return fmt.Errorf("failed to rename topic: %w", err)
	}
	fmt.Printf("✓ Thema %s umbenannt\n", id)
	return nil
}

// DeleteTopicCommand removes a topic with its points.
func DeleteTopicCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("delete-topic", flag.ExitOnError)
	yes := fs.Bool("yes", false, "Skip confirmation")
	_ = fs.Parse(args)

	if len(fs.Args()) < 2 {
		return fmt.Errorf("protocol ID and topic ID are required")
	}
	id := fs.Args()[1]

	if !confirm("Thema mit allen Punkten löschen?", *yes) {
		fmt.Println("Abgebrochen")
		return nil
	}

	_, err := editProtocol(database, fs.Args()[0], func(p *models.Protocol) error {
		return lifecycle.Apply(p, lifecycle.DeleteTopic{ID: id})
	})
	if err != nil {
		return fmt.Errorf("failed to delete topic: %w", err)
	}
	fmt.Printf("✓ Thema %s gelöscht\n", id)
	return nil
}
