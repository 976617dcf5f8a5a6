// ABOUTME: Project MCP tool handlers
// ABOUTME: Implements add_project, list_projects and get_project tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oscarlimaalphafox/KADRA/db"
	"github.com/oscarlimaalphafox/KADRA/models"
)

type ProjectHandlers struct {
	db *sql.DB
}

func NewProjectHandlers(database *sql.DB) *ProjectHandlers {
	return &ProjectHandlers{db: database}
}

type AddProjectInput struct {
	Code   string `json:"code" jsonschema:"Project code, 2-4 uppercase letters (required)"`
	Name   string `json:"name" jsonschema:"Project name (required)"`
	Tenant string `json:"tenant,omitempty" jsonschema:"Tenant (Mieterin)"`
	Owner  string `json:"owner,omitempty" jsonschema:"Owner (Vermieterin)"`
}

type ProjectOutput struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	Tenant    string `json:"tenant,omitempty"`
	Owner     string `json:"owner,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func projectToOutput(p *models.Project) ProjectOutput {
	return ProjectOutput{
		ID:        p.ID.String(),
		Code:      p.Code,
		Name:      p.Name,
		Tenant:    p.Tenant,
		Owner:     p.Owner,
		CreatedAt: p.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: p.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func (h *ProjectHandlers) AddProject(_ context.Context, request *mcp.CallToolRequest, input AddProjectInput) (*mcp.CallToolResult, ProjectOutput, error) {
	if input.Code == "" || input.Name == "" {
		return nil, ProjectOutput{}, fmt.Errorf("code and name are required")
	}

	project := &models.Project{
		Code:   input.Code,
		Name:   input.Name,
		Tenant: input.Tenant,
		Owner:  input.Owner,
	}
	if err := db.SaveProject(h.db, project); err != nil {
		return nil, ProjectOutput{}, fmt.Errorf("failed to create project: %w", err)
	}
	return nil, projectToOutput(project), nil
}

type ListProjectsInput struct{}

type ListProjectsOutput struct {
	Projects []ProjectOutput `json:"projects"`
}

func (h *ProjectHandlers) ListProjects(_ context.Context, request *mcp.CallToolRequest, input ListProjectsInput) (*mcp.CallToolResult, ListProjectsOutput, error) {
	projects, err := db.ListProjects(h.db)
	if err != nil {
		return nil, ListProjectsOutput{}, fmt.Errorf("failed to list projects: %w", err)
	}

	result := make([]ProjectOutput, len(projects))
	for i := range projects {
		result[i] = projectToOutput(&projects[i])
	}
	return nil, ListProjectsOutput{Projects: result}, nil
}

type GetProjectInput struct {
	Code string `json:"code" jsonschema:"Project code (required)"`
}

func (h *ProjectHandlers) GetProject(_ context.Context, request *mcp.CallToolRequest, input GetProjectInput) (*mcp.CallToolResult, ProjectOutput, error) {
	if input.Code == "" {
		return nil, ProjectOutput{}, fmt.Errorf("code is required")
	}

	project, err := db.GetProjectByCode(h.db, input.Code)
	if err != nil {
		return nil, ProjectOutput{}, fmt.Errorf("failed to get project: %w", err)
	}
	return nil, projectToOutput(project), nil
}
