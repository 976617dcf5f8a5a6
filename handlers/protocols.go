// ABOUTME: Protocol MCP tool handlers
// ABOUTME: Implements start_protocol, continue_protocol, list_protocols and show_protocol tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oscarlimaalphafox/KADRA/db"
	"github.com/oscarlimaalphafox/KADRA/models"
	"github.com/oscarlimaalphafox/KADRA/render"
	"github.com/oscarlimaalphafox/KADRA/series"
)

type ProtocolHandlers struct {
	db     *sql.DB
	author models.Author
}

func NewProtocolHandlers(database *sql.DB, author models.Author) *ProtocolHandlers {
	return &ProtocolHandlers{db: database, author: author}
}

type StartProtocolInput struct {
	ProjectCode string `json:"project_code" jsonschema:"Project code (required)"`
	Type        string `json:"type" jsonschema:"Protocol type: JFx Planung, JFx Mieter, JFx Bauherr, Baubesprechung or Aktennotiz (required)"`
	SeriesName  string `json:"series_name" jsonschema:"Series name (required)"`
}

type ProtocolOutput struct {
	ID         string `json:"id"`
	ProjectID  string `json:"project_id"`
	SeriesID   string `json:"series_id"`
	SeriesName string `json:"series_name"`
	Type       string `json:"type"`
	Number     int    `json:"number"`
	Date       string `json:"date"`
	Points     int    `json:"points"`
}

func protocolToOutput(p *models.Protocol) ProtocolOutput {
	return ProtocolOutput{
		ID:         p.ID.String(),
		ProjectID:  p.ProjectID.String(),
		SeriesID:   p.SeriesID,
		SeriesName: p.SeriesName,
		Type:       p.Type,
		Number:     p.Number,
		Date:       p.Date,
		Points:     len(p.Points),
	}
}

func (h *ProtocolHandlers) StartProtocol(_ context.Context, request *mcp.CallToolRequest, input StartProtocolInput) (*mcp.CallToolResult, ProtocolOutput, error) {
	if input.ProjectCode == "" || input.Type == "" || input.SeriesName == "" {
		return nil, ProtocolOutput{}, fmt.Errorf("project_code, type and series_name are required")
	}

	project, err := db.GetProjectByCode(h.db, input.ProjectCode)
	if err != nil {
		return nil, ProtocolOutput{}, fmt.Errorf("failed to get project: %w", err)
	}

	protocol, err := series.Start(h.db, project.ID, input.Type, input.SeriesName, h.author)
	if err != nil {
		return nil, ProtocolOutput{}, fmt.Errorf("failed to start protocol: %w", err)
	}
	return nil, protocolToOutput(protocol), nil
}

type ContinueProtocolInput struct {
	ProtocolID string `json:"protocol_id" jsonschema:"ID of any protocol in the series (required)"`
}

func (h *ProtocolHandlers) ContinueProtocol(_ context.Context, request *mcp.CallToolRequest, input ContinueProtocolInput) (*mcp.CallToolResult, ProtocolOutput, error) {
	id, err := uuid.Parse(input.ProtocolID)
	if err != nil {
		return nil, ProtocolOutput{}, fmt.Errorf("invalid protocol_id: %w", err)
	}

	prior, err := db.GetProtocol(h.db, id)
	if err != nil {
		return nil, ProtocolOutput{}, fmt.Errorf("failed to get protocol: %w", err)
	}

	next, err := series.ContinueLatest(h.db, prior.SeriesID)
	if err != nil {
		return nil, ProtocolOutput{}, fmt.Errorf("failed to continue series: %w", err)
	}
	return nil, protocolToOutput(next), nil
}

type ListProtocolsInput struct {
	ProjectCode string `json:"project_code" jsonschema:"Project code (required)"`
}

type ListProtocolsOutput struct {
	Protocols []ProtocolOutput `json:"protocols"`
}

func (h *ProtocolHandlers) ListProtocols(_ context.Context, request *mcp.CallToolRequest, input ListProtocolsInput) (*mcp.CallToolResult, ListProtocolsOutput, error) {
	project, err := db.GetProjectByCode(h.db, input.ProjectCode)
	if err != nil {
		return nil, ListProtocolsOutput{}, fmt.Errorf("failed to get project: %w", err)
	}

	protocols, err := db.GetProtocolsByProject(h.db, project.ID)
	if err != nil {
		return nil, ListProtocolsOutput{}, fmt.Errorf("failed to list protocols: %w", err)
	}

	result := make([]ProtocolOutput, len(protocols))
	for i, p := range protocols {
		result[i] = protocolToOutput(p)
	}
	return nil, ListProtocolsOutput{Protocols: result}, nil
}

type ShowProtocolInput struct {
	ProtocolID  string `json:"protocol_id" jsonschema:"Protocol ID (required)"`
	HideDone    bool   `json:"hide_done,omitempty" jsonschema:"Hide completed points"`
	OnlyOverdue bool   `json:"only_overdue,omitempty" jsonschema:"Show only overdue points"`
	OnlyNew     bool   `json:"only_new,omitempty" jsonschema:"Show only new points"`
}

type PointOutput struct {
	ID          string `json:"id"`
	Chapter     string `json:"chapter"`
	Subchapter  string `json:"subchapter,omitempty"`
	Topic       string `json:"topic,omitempty"`
	Content     string `json:"content"`
	Category    string `json:"category"`
	Responsible string `json:"responsible,omitempty"`
	Deadline    string `json:"deadline,omitempty"`
	Done        bool   `json:"done"`
	IsNew       bool   `json:"is_new"`
	Overdue     bool   `json:"overdue"`
	Amended     bool   `json:"amended"`
}

type ShowProtocolOutput struct {
	Protocol ProtocolOutput `json:"protocol"`
	Points   []PointOutput  `json:"points"`
}

func (h *ProtocolHandlers) ShowProtocol(_ context.Context, request *mcp.CallToolRequest, input ShowProtocolInput) (*mcp.CallToolResult, ShowProtocolOutput, error) {
	id, err := uuid.Parse(input.ProtocolID)
	if err != nil {
		return nil, ShowProtocolOutput{}, fmt.Errorf("invalid protocol_id: %w", err)
	}

	protocol, err := db.GetProtocol(h.db, id)
	if err != nil {
		return nil, ShowProtocolOutput{}, fmt.Errorf("failed to get protocol: %w", err)
	}

	vs := render.NewViewState()
	vs.SetHideDone(input.HideDone)
	if input.OnlyOverdue {
		vs.SetOnlyOverdue(true)
	}
	if input.OnlyNew {
		vs.SetOnlyNew(true)
	}

	var points []PointOutput
	for _, row := range render.BuildRows(protocol, vs, time.Now()) {
		if row.Kind != render.RowPoint {
			continue
		}
		pt := row.Point.Point
		points = append(points, PointOutput{
			ID:          pt.ID,
			Chapter:     pt.Chapter,
			Subchapter:  pt.Subchapter,
			Topic:       pt.Topic,
			Content:     pt.Content,
			Category:    pt.NormalizedCategory(),
			Responsible: pt.Responsible,
			Deadline:    pt.Deadline,
			Done:        row.Point.Done,
			IsNew:       row.Point.IsNew,
			Overdue:     row.Point.Overdue,
			Amended:     row.Point.ContentAmended || row.Point.DeadlineAmended,
		})
	}

	return nil, ShowProtocolOutput{Protocol: protocolToOutput(protocol), Points: points}, nil
}
