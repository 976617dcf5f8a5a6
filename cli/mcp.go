// ABOUTME: MCP server subcommand
// ABOUTME: Exposes project, protocol and point tools over stdio
package cli

import (
	"context"
	"database/sql"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oscarlimaalphafox/KADRA/handlers"
	"github.com/oscarlimaalphafox/KADRA/models"
)

// MCPCommand starts the MCP server on stdio.
func MCPCommand(db *sql.DB, author models.Author) error {
	log.Println("Starting KADRA MCP Server...")

	projectHandlers := handlers.NewProjectHandlers(db)
	protocolHandlers := handlers.NewProtocolHandlers(db, author)
	pointHandlers := handlers.NewPointHandlers(db)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "kadra",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_project",
		Description: "Create a new construction project",
	}, projectHandlers.AddProject)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_projects",
		Description: "List all active projects",
	}, projectHandlers.ListProjects)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_project",
		Description: "Look up a project by its code",
	}, projectHandlers.GetProject)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "start_protocol",
		Description: "Start a new protocol series or memo in a project",
	}, protocolHandlers.StartProtocol)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "continue_protocol",
		Description: "Create the next revision of a protocol series, carrying open points forward",
	}, protocolHandlers.ContinueProtocol)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_protocols",
		Description: "List the protocols of a project",
	}, protocolHandlers.ListProtocols)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "show_protocol",
		Description: "Show a protocol's points in document order with display flags",
	}, protocolHandlers.ShowProtocol)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_point",
		Description: "Add a point to a protocol chapter, subchapter or topic",
	}, pointHandlers.AddPoint)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_point",
		Description: "Update a point's content, category, responsible, deadline or done state",
	}, pointHandlers.UpdatePoint)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_point",
		Description: "Delete a point permanently; its ID is never reused",
	}, pointHandlers.DeletePoint)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "move_point",
		Description: "Reorder a point within its chapter/subchapter bucket",
	}, pointHandlers.MovePoint)

	ctx := context.Background()
	return server.Run(ctx, &mcp.StdioTransport{})
}
