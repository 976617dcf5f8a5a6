// ABOUTME: Attachment CLI commands
// ABOUTME: Add, caption, replace, export and delete protocol attachments
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/oscarlimaalphafox/KADRA/db"
	"github.com/oscarlimaalphafox/KADRA/lifecycle"
	"github.com/oscarlimaalphafox/KADRA/models"
)

func readAttachmentFile(path string) (name, fileType string, data []byte, err error) {
	data, err = os.ReadFile(path)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(data)) > models.MaxAttachmentSize {
		return "", "", nil, fmt.Errorf("file exceeds the 2MB attachment limit")
	}
	name = filepath.Base(path)
	fileType = mime.TypeByExtension(filepath.Ext(path))
	return name, fileType, data, nil
}

// AddAttachmentCommand appends an attachment, optionally with a file.
func AddAttachmentCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-attachment", flag.ExitOnError)
	caption := fs.String("caption", "", "Attachment caption")
	file := fs.String("file", "", "File to attach (max 2MB)")
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("protocol ID is required")
	}

	action := lifecycle.AddAttachment{Caption: *caption}
	if *file != "" {
		name, fileType, data, err := readAttachmentFile(*file)
		if err != nil {
			return err
		}
		action.FileName = name
		action.FileType = fileType
		action.FileData = data
	}

	var created string
	_, err := editProtocol(database, fs.Args()[0], func(p *models.Protocol) error {
		if err := lifecycle.Apply(p, action); err != nil {
			return err
		}
		created = p.Attachments[len(p.Attachments)-1].ID
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to add attachment: %w", err)
	}
	fmt.Printf("✓ Anlage angelegt: %s\n", created)
	return nil
}

// ListAttachmentsCommand lists the attachments of a protocol.
func ListAttachmentsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-attachments", flag.ExitOnError)
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

	if len(protocol.Attachments) == 0 {
		fmt.Println("Keine Anlagen")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tBEZEICHNUNG\tDATEI\tGRÖSSE")
	_, _ = fmt.Fprintln(w, "--\t-----------\t-----\t------")
	for _, att := range protocol.Attachments {
		file := att.FileName
		if file == "" {
			file = "-"
		}
		size := "-"
		if len(att.FileData) > 0 {
			size = fmt.Sprintf("%d KB", len(att.FileData)/1024)
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", att.ID, att.Caption, file, size)
	}
	_ = w.Flush()
	return nil
}

// SetAttachmentCommand changes caption or file payload.
func SetAttachmentCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("set-attachment", flag.ExitOnError)
	caption := fs.String("caption", "", "New caption")
	file := fs.String("file", "", "Replace the file payload (max 2MB)")
	removeFile := fs.Bool("remove-file", false, "Drop the file payload, keep the row")
	_ = fs.Parse(args)

	if len(fs.Args()) < 2 {
		return fmt.Errorf("protocol ID and attachment ID are required")
	}
	attID := fs.Args()[1]

	_, err := editProtocol(database, fs.Args()[0], func(p *models.Protocol) error {
		if *caption != "" {
			if err := lifecycle.Apply(p, lifecycle.SetAttachmentCaption{ID: attID, Caption: *caption}); err != nil {
				return err
			}
		}
		if *file != "" {
			name, fileType, data, err := readAttachmentFile(*file)
			if err != nil {
				return err
			}
			if err := lifecycle.Apply(p, lifecycle.ReplaceAttachmentFile{ID: attID, FileName: name, FileType: fileType, FileData: data}); err != nil {
				return err
			}
		}
		if *removeFile {
			if err := lifecycle.Apply(p, lifecycle.RemoveAttachmentFile{ID: attID}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update attachment: %w", err)
	}
	fmt.Printf("✓ Anlage aktualisiert: %s\n", attID)
	return nil
}

// SaveAttachmentCommand writes an attachment's file payload to disk.
func SaveAttachmentCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("save-attachment", flag.ExitOnError)
	output := fs.String("output", "", "Output path (default: original file name)")
	_ = fs.Parse(args)

	if len(fs.Args()) < 2 {
		return fmt.Errorf("protocol ID and attachment ID are required")
	}
	id, err := parseID("protocol", fs.Args()[0])
	if err != nil {
		return err
	}
	protocol, err := db.GetProtocol(database, id)
	if err != nil {
		return err
	}

	for _, att := range protocol.Attachments {
		if att.ID != fs.Args()[1] {
			continue
		}
		if len(att.FileData) == 0 {
			return fmt.Errorf("attachment %s has no file payload", att.ID)
		}
		path := *output
		if path == "" {
			path = att.FileName
		}
		if path == "" {
			return fmt.Errorf("--output is required for unnamed attachments")
		}
		if err := os.WriteFile(path, att.FileData, 0o644); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		fmt.Printf("✓ Datei geschrieben: %s\n", path)
		return nil
	}
	return fmt.Errorf("attachment not found: %s", fs.Args()[1])
}

// DeleteAttachmentCommand removes an attachment and resequences the rest.
func DeleteAttachmentCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("delete-attachment", flag.ExitOnError)
	yes := fs.Bool("yes", false, "Skip confirmation")
	_ = fs.Parse(args)

	if len(fs.Args()) < 2 {
		return fmt.Errorf("protocol ID and attachment ID are required")
	}
	attID := fs.Args()[1]

	if !confirm(fmt.Sprintf("Anlage %s löschen?", attID), *yes) {
		fmt.Println("Abgebrochen")
		return nil
	}

	_, err := editProtocol(database, fs.Args()[0], func(p *models.Protocol) error {
		return lifecycle.Apply(p, lifecycle.DeleteAttachment{ID: attID})
	})
	if err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	fmt.Printf("✓ Anlage gelöscht: %s\n", attID)
	return nil
}
