// ABOUTME: Point MCP tool handlers
// ABOUTME: Implements add_point, update_point, delete_point and move_point tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oscarlimaalphafox/KADRA/db"
	"github.com/oscarlimaalphafox/KADRA/lifecycle"
	"github.com/oscarlimaalphafox/KADRA/models"
)

type PointHandlers struct {
	db *sql.DB
}

func NewPointHandlers(database *sql.DB) *PointHandlers {
	return &PointHandlers{db: database}
}

// edit loads, mutates and saves a protocol. The save is skipped when the
// reducer rejects the action.
func (h *PointHandlers) edit(protocolID string, fn func(*models.Protocol) error) (*models.Protocol, error) {
	id, err := uuid.Parse(protocolID)
	if err != nil {
		return nil, fmt.Errorf("invalid protocol_id: %w", err)
	}
	protocol, err := db.GetProtocol(h.db, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get protocol: %w", err)
	}
	if err := fn(protocol); err != nil {
		return nil, err
	}
	if err := db.SaveProtocol(h.db, protocol); err != nil {
		return nil, fmt.Errorf("failed to save protocol: %w", err)
	}
	return protocol, nil
}

type AddPointInput struct {
	ProtocolID string `json:"protocol_id" jsonschema:"Protocol ID (required)"`
	Chapter    string `json:"chapter" jsonschema:"Chapter key, e.g. A (required)"`
	Subchapter string `json:"subchapter,omitempty" jsonschema:"Subchapter ID, e.g. B.1 (required when the chapter has subchapters)"`
	Topic      string `json:"topic,omitempty" jsonschema:"Topic ID"`
	Content    string `json:"content,omitempty" jsonschema:"Point content"`
}

type AddPointOutput struct {
	ID string `json:"id"`
}

func (h *PointHandlers) AddPoint(_ context.Context, request *mcp.CallToolRequest, input AddPointInput) (*mcp.CallToolResult, AddPointOutput, error) {
	if input.Chapter == "" {
		return nil, AddPointOutput{}, fmt.Errorf("chapter is required")
	}

	var created string
	_, err := h.edit(input.ProtocolID, func(p *models.Protocol) error {
		if err := lifecycle.Apply(p, lifecycle.AddPoint{Chapter: input.Chapter, Subchapter: input.Subchapter, Topic: input.Topic}); err != nil {
			return err
		}
		created = p.Points[len(p.Points)-1].ID
		if input.Content != "" {
			return lifecycle.Apply(p, lifecycle.SetPointContent{ID: created, Content: input.Content})
		}
		return nil
	})
	if err != nil {
		return nil, AddPointOutput{}, err
	}
	return nil, AddPointOutput{ID: created}, nil
}

type UpdatePointInput struct {
	ProtocolID  string `json:"protocol_id" jsonschema:"Protocol ID (required)"`
	PointID     string `json:"point_id" jsonschema:"Point ID, e.g. #02|B.1.01 (required)"`
	Content     string `json:"content,omitempty" jsonschema:"New content"`
	Category    string `json:"category,omitempty" jsonschema:"New category: Aufgabe, Info, Festlegung or Freigabe erfordl"`
	Responsible string `json:"responsible,omitempty" jsonschema:"Responsible abbreviations, '/'-joined"`
	Deadline    string `json:"deadline,omitempty" jsonschema:"Deadline, free text"`
	Done        *bool  `json:"done,omitempty" jsonschema:"Mark done or reopen"`
}

type UpdatePointOutput struct {
	ID string `json:"id"`
}

func (h *PointHandlers) UpdatePoint(_ context.Context, request *mcp.CallToolRequest, input UpdatePointInput) (*mcp.CallToolResult, UpdatePointOutput, error) {
	if input.PointID == "" {
		return nil, UpdatePointOutput{}, fmt.Errorf("point_id is required")
	}

	_, err := h.edit(input.ProtocolID, func(p *models.Protocol) error {
		var actions []lifecycle.Action
		if input.Content != "" {
			actions = append(actions, lifecycle.SetPointContent{ID: input.PointID, Content: input.Content})
		}
		if input.Category != "" {
			actions = append(actions, lifecycle.SetPointCategory{ID: input.PointID, Category: input.Category})
		}
		if input.Responsible != "" {
			actions = append(actions, lifecycle.SetPointResponsible{ID: input.PointID, Responsible: input.Responsible})
		}
		if input.Deadline != "" {
			actions = append(actions, lifecycle.SetPointDeadline{ID: input.PointID, Deadline: input.Deadline})
		}
		if input.Done != nil {
			actions = append(actions, lifecycle.SetPointDone{ID: input.PointID, Done: *input.Done})
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
		return nil, UpdatePointOutput{}, err
	}
	return nil, UpdatePointOutput{ID: input.PointID}, nil
}

type DeletePointInput struct {
	ProtocolID string `json:"protocol_id" jsonschema:"Protocol ID (required)"`
	PointID    string `json:"point_id" jsonschema:"Point ID (required)"`
}

type DeletePointOutput struct {
	Deleted bool `json:"deleted"`
}

func (h *PointHandlers) DeletePoint(_ context.Context, request *mcp.CallToolRequest, input DeletePointInput) (*mcp.CallToolResult, DeletePointOutput, error) {
	if input.PointID == "" {
		return nil, DeletePointOutput{}, fmt.Errorf("point_id is required")
	}

	_, err := h.edit(input.ProtocolID, func(p *models.Protocol) error {
		return lifecycle.Apply(p, lifecycle.DeletePoint{ID: input.PointID})
	})
	if err != nil {
		return nil, DeletePointOutput{}, err
	}
	return nil, DeletePointOutput{Deleted: true}, nil
}

type MovePointInput struct {
	ProtocolID string `json:"protocol_id" jsonschema:"Protocol ID (required)"`
	PointID    string `json:"point_id" jsonschema:"Point ID to move (required)"`
	TargetID   string `json:"target_id" jsonschema:"Target point ID in the same chapter/subchapter (required)"`
	After      bool   `json:"after,omitempty" jsonschema:"Insert after the target instead of before"`
}

type MovePointOutput struct {
	Moved bool `json:"moved"`
}

func (h *PointHandlers) MovePoint(_ context.Context, request *mcp.CallToolRequest, input MovePointInput) (*mcp.CallToolResult, MovePointOutput, error) {
	if input.PointID == "" || input.TargetID == "" {
		return nil, MovePointOutput{}, fmt.Errorf("point_id and target_id are required")
	}

	_, err := h.edit(input.ProtocolID, func(p *models.Protocol) error {
		return lifecycle.Apply(p, lifecycle.MovePoint{ID: input.PointID, Target: input.TargetID, After: input.After})
	})
	if err != nil {
		return nil, MovePointOutput{}, err
	}
	return nil, MovePointOutput{Moved: true}, nil
}
