// ABOUTME: Visualization CLI command
// ABOUTME: Renders a protocol's chapter structure as a graphviz graph
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/oscarlimaalphafox/KADRA/viz"
)

// VizStructureCommand renders the chapter tree of a protocol.
func VizStructureCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("viz-structure", flag.ExitOnError)
	output := fs.String("output", "", "Output file (default: stdout)")
	_ = fs.Parse(args)

	if len(fs.Args()) < 1 {
		return fmt.Errorf("protocol ID is required")
	}
	id, err := parseID("protocol", fs.Args()[0])
	if err != nil {
		return err
	}

	generator := viz.NewGraphGenerator(database)
	dot, err := generator.GenerateStructureGraph(id)
	if err != nil {
		return fmt.Errorf("failed to generate graph: %w", err)
	}

	if *output == "" {
		fmt.Println(dot)
		return nil
	}
	if err := os.WriteFile(*output, []byte(dot), 0o644); err != nil {
		return fmt.Errorf("failed to write graph: %w", err)
	}
	fmt.Printf("✓ Graph geschrieben: %s\n", *output)
	return nil
}
