// ABOUTME: Entry point for the KADRA protocol tool
// ABOUTME: Routes to MCP server, CLI commands or the interactive TUI
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/oscarlimaalphafox/KADRA/cli"
	"github.com/oscarlimaalphafox/KADRA/config"
	"github.com/oscarlimaalphafox/KADRA/db"
	"github.com/oscarlimaalphafox/KADRA/models"
	"github.com/oscarlimaalphafox/KADRA/tui"
)

const version = "0.1.0"

func main() {
	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Database path (default: ~/.local/share/kadra/kadra.db)")
	initOnly := flag.Bool("init", false, "Initialize database and exit")

	// Parse global flags but don't fail on unknown (for subcommands)
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("kadra version %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	author := models.Author{
		FirstName: cfg.AuthorFirstName,
		LastName:  cfg.AuthorLastName,
		Company:   cfg.AuthorCompany,
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	command := args[0]
	commandArgs := args[1:]

	finalDBPath := getDatabasePath(*dbPath, cfg)
	database, err := db.OpenDatabase(finalDBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	if *initOnly {
		log.Printf("Database initialized: %s", finalDBPath)
		os.Exit(0)
	}

	switch command {
	case "mcp":
		if err := cli.MCPCommand(database, author); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}

	case "tui":
		if len(commandArgs) == 0 {
			fmt.Println("Error: tui requires a protocol ID")
			os.Exit(1)
		}
		protocolID, err := uuid.Parse(commandArgs[0])
		if err != nil {
			log.Fatalf("Invalid protocol ID %q: %v", commandArgs[0], err)
		}
		if err := tui.Run(database, protocolID); err != nil {
			log.Fatalf("TUI failed: %v", err)
		}

	// Project commands
	case "add-project":
		run(cli.AddProjectCommand(database, commandArgs))
	case "list-projects":
		run(cli.ListProjectsCommand(database, commandArgs))
	case "update-project":
		run(cli.UpdateProjectCommand(database, commandArgs))
	case "trash-project":
		run(cli.TrashProjectCommand(database, commandArgs))
	case "restore-project":
		run(cli.RestoreProjectCommand(database, commandArgs))
	case "purge-project":
		run(cli.PurgeProjectCommand(database, commandArgs))

	// Protocol commands
	case "new-protocol":
		run(cli.NewProtocolCommand(database, author, commandArgs))
	case "continue-protocol":
		run(cli.ContinueProtocolCommand(database, commandArgs))
	case "duplicate-protocol":
		run(cli.DuplicateProtocolCommand(database, commandArgs))
	case "rename-protocol":
		run(cli.RenameProtocolCommand(database, commandArgs))
	case "list-protocols":
		run(cli.ListProtocolsCommand(database, commandArgs))
	case "show-protocol":
		run(cli.ShowProtocolCommand(database, commandArgs))
	case "trash-protocol":
		run(cli.TrashProtocolCommand(database, commandArgs))
	case "restore-protocol":
		run(cli.RestoreProtocolCommand(database, commandArgs))
	case "purge-protocol":
		run(cli.PurgeProtocolCommand(database, commandArgs))

	// Point commands
	case "add-point":
		run(cli.AddPointCommand(database, commandArgs))
	case "add-topic":
		run(cli.AddTopicCommand(database, commandArgs))
	case "set-point":
		run(cli.SetPointCommand(database, commandArgs))
	case "delete-point":
		run(cli.DeletePointCommand(database, commandArgs))
	case "move-point":
		run(cli.MovePointCommand(database, commandArgs))

	// Structure commands
	case "add-chapter":
		run(cli.AddChapterCommand(database, commandArgs))
	case "rename-chapter":
		run(cli.RenameChapterCommand(database, commandArgs))
	case "delete-chapter":
		run(cli.DeleteChapterCommand(database, commandArgs))
	case "add-subchapter":
		run(cli.AddSubchapterCommand(database, commandArgs))
	case "rename-subchapter":
		run(cli.RenameSubchapterCommand(database, commandArgs))
	case "delete-subchapter":
		run(cli.DeleteSubchapterCommand(database, commandArgs))
	case "rename-topic":
		run(cli.RenameTopicCommand(database, commandArgs))
	case "delete-topic":
		run(cli.DeleteTopicCommand(database, commandArgs))

	// Attachment commands
	case "add-attachment":
		run(cli.AddAttachmentCommand(database, commandArgs))
	case "list-attachments":
		run(cli.ListAttachmentsCommand(database, commandArgs))
	case "set-attachment":
		run(cli.SetAttachmentCommand(database, commandArgs))
	case "save-attachment":
		run(cli.SaveAttachmentCommand(database, commandArgs))
	case "delete-attachment":
		run(cli.DeleteAttachmentCommand(database, commandArgs))

	// Participant commands
	case "add-participant":
		run(cli.AddParticipantCommand(database, commandArgs))
	case "list-participants":
		run(cli.ListParticipantsCommand(database, commandArgs))
	case "remove-participant":
		run(cli.RemoveParticipantCommand(database, commandArgs))
	case "add-abbreviation":
		run(cli.AddAbbreviationCommand(database, commandArgs))
	case "remove-abbreviation":
		run(cli.RemoveAbbreviationCommand(database, commandArgs))

	// Backup commands
	case "export-project":
		run(cli.ExportProjectCommand(database, commandArgs))
	case "import-project":
		run(cli.ImportProjectCommand(database, commandArgs))
	case "export-full":
		run(cli.ExportFullCommand(database, commandArgs))
	case "import-full":
		run(cli.ImportFullCommand(database, commandArgs))

	// Export commands
	case "export-pdf":
		run(cli.ExportPDFCommand(database, commandArgs))
	case "viz-structure":
		run(cli.VizStructureCommand(database, commandArgs))

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func run(err error) {
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func getDatabasePath(dbPath string, cfg *config.Config) string {
	if dbPath != "" {
		return dbPath
	}
	if cfg.DBPath != "" {
		return cfg.DBPath
	}
	return config.DefaultDBPath()
}

func printUsage() {
	fmt.Printf(`kadra v%s - Protokollverwaltung für Bauprojekte

USAGE:
  kadra [global flags] <command> [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --db-path <path>       Database path (default: ~/.local/share/kadra/kadra.db)
  --init                 Initialize database and exit

SERVER & UI:
  kadra mcp              Start MCP server (stdio, for agent integration)
  kadra tui <protocol-id>  Open a protocol in the interactive editor

PROJECT COMMANDS:
  kadra add-project --code <code> --name <name>  Create a project
    --tenant <name>           Tenant (Mieterin)
    --owner <name>            Owner (Vermieterin)
  kadra list-projects         List active projects
    --trash                   List trashed projects instead
  kadra update-project [flags] <id-or-code>  Update project fields
  kadra trash-project <id-or-code>           Move project to trash
  kadra restore-project <id-or-code>         Restore from trash
  kadra purge-project <id-or-code>           Delete permanently (with protocols)

PROTOCOL COMMANDS:
  kadra new-protocol --project <id-or-code>  Start a series or memo
    --type <type>             Protocol type (default: Baubesprechung)
    --name <name>             Series name
  kadra continue-protocol <id>   Next revision, open points carried forward
  kadra duplicate-protocol <id>  Copy into a fresh series
    --name <name>             Name for the copy
  kadra rename-protocol <id> --name <name>  Rename a series
  kadra list-protocols --project <id-or-code>  List a project's protocols
    --trash                   List trashed protocols instead
  kadra show-protocol <id>    Print the document view
    --hide-done --only-overdue --only-new      Display filters
  kadra trash-protocol / restore-protocol / purge-protocol <id>

POINT COMMANDS:
  kadra add-point <protocol-id>  Add a point
    --chapter <key>           Chapter key (required)
    --subchapter <id>         Subchapter (e.g. B.1)
    --topic <label>           Topic within the subchapter
    --content <text>          Point text
  kadra add-topic <protocol-id> --subchapter <id> --label <label>
  kadra set-point <protocol-id> <point-id>  Update a point
    --content --category --responsible --deadline --done --reopen
  kadra delete-point <protocol-id> <point-id>  Delete (ID never reused)
  kadra move-point <protocol-id> <point-id>    Reorder within its bucket
    --target <bucket> --after <point-id>

STRUCTURE COMMANDS:
  kadra add-chapter <protocol-id> --label <label>
  kadra rename-chapter <protocol-id> <key> --label <label>
  kadra delete-chapter <protocol-id> <key>
  kadra add-subchapter <protocol-id> --chapter <key> --label <label>
  kadra rename-subchapter / delete-subchapter <protocol-id> <id>
  kadra rename-topic / delete-topic <protocol-id> <topic-id>

ATTACHMENTS & PARTICIPANTS:
  kadra add-attachment <protocol-id> --caption <text> [--file <path>]
  kadra list-attachments <protocol-id>
  kadra set-attachment <protocol-id> <attachment-id> [--caption|--file|--remove-file]
  kadra save-attachment <protocol-id> <attachment-id> [--output <path>]
  kadra delete-attachment <protocol-id> <attachment-id>
  kadra add-participant <protocol-id> --name <name> [--company --abbr --email --attended --distrib]
  kadra list-participants <protocol-id> / remove-participant <protocol-id> <index>
  kadra add-abbreviation <protocol-id> --abbr <abbr> --name <name>
  kadra remove-abbreviation <protocol-id> <abbr>

BACKUP & EXPORT:
  kadra export-project <id-or-code> [--output <dir>]  Project JSON backup
  kadra import-project <file> [--force]               Restore a project backup
  kadra export-full [--output <dir>]                  Full database backup
  kadra import-full <file> [--yes]                    Restore a full backup
  kadra export-pdf <protocol-id> [--output <dir>] [--hide-chapters A,C]
  kadra viz-structure <protocol-id> [--output <file>]

EXAMPLES:
  # Create a project and start a tenant jour fixe series
  kadra add-project --code NB --name "Neubau Quartier Nord" --tenant "Mieter GmbH"
  kadra new-protocol --project NB --type "JFx Mieter" --name "Jour Fixe Ausbau"

  # Work on points
  kadra add-point <protocol-id> --chapter B --content "Terminplan abstimmen"
  kadra set-point <protocol-id> "#01|B.0.01" --responsible "Fr. Berg" --deadline 2026-04-10

  # Close the meeting and open the next revision
  kadra export-pdf <protocol-id>
  kadra continue-protocol <protocol-id>

`, version)
}
