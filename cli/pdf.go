// ABOUTME: PDF export CLI command
// ABOUTME: Renders a protocol into the export directory
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"strings"

	"github.com/oscarlimaalphafox/KADRA/pdf"
)

// ExportPDFCommand renders a protocol to a PDF file.
func ExportPDFCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("export-pdf", flag.ExitOnError)
	output := fs.String("output", ".", "Output directory")
	hide := fs.String("hide-chapters", "", "Comma-separated chapter keys to leave out (empty chapters only)")
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("protocol ID is required")
	}
	id, err := parseID("protocol", fs.Args()[0])
	if err != nil {
		return err
	}

	hidden := map[string]bool{}
	for _, key := range strings.Split(*hide, ",") {
		key = strings.TrimSpace(key)
		if key != "" {
			hidden[key] = true
		}
	}

	path, err := pdf.Export(database, id, hidden, *output)
	if err != nil {
		return fmt.Errorf("failed to export PDF: %w", err)
	}
	fmt.Printf("✓ PDF geschrieben: %s\n", path)
	return nil
}
