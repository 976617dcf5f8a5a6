// ABOUTME: Graphviz rendering of a protocol's chapter structure
// ABOUTME: Chapters, subchapters and topics as a tree with point counts
package viz

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/google/uuid"

	"github.com/oscarlimaalphafox/KADRA/db"
	"github.com/oscarlimaalphafox/KADRA/models"
)

type GraphGenerator struct {
	db *sql.DB
}

func NewGraphGenerator(database *sql.DB) *GraphGenerator {
	return &GraphGenerator{db: database}
}

// GenerateStructureGraph renders the chapter tree of a protocol as DOT.
// Node labels carry the point count of each anchor.
func (g *GraphGenerator) GenerateStructureGraph(protocolID uuid.UUID) (string, error) {
	protocol, err := db.GetProtocol(g.db, protocolID)
	if err != nil {
		return "", fmt.Errorf("failed to load protocol: %w", err)
	}

	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz instance: %w", err)
	}
	defer gv.Close()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer graph.Close()

	graph.SetLayout("dot")
	graph.SetRankDir(cgraph.LRRank)

	rootLabel := protocol.SeriesName
	if rootLabel == "" {
		rootLabel = protocol.Type
	}
	root, err := graph.CreateNodeByName(rootLabel)
	if err != nil {
		return "", fmt.Errorf("failed to create root node: %w", err)
	}
	root.SetShape(cgraph.BoxShape)

	for i := range protocol.Structure {
		ch := &protocol.Structure[i]
		chNode, err := graph.CreateNodeByName(ch.Key + " " + ch.Label)
		if err != nil {
			return "", fmt.Errorf("failed to create chapter node: %w", err)
		}
		chNode.SetShape(cgraph.BoxShape)
		if n := countPoints(protocol.Points, func(pt *models.Point) bool {
			return pt.Chapter == ch.Key && pt.Subchapter == ""
		}); n > 0 {
			chNode.SetLabel(fmt.Sprintf("%s %s (%d)", ch.Key, ch.Label, n))
		}
		_, _ = graph.CreateEdgeByName("", root, chNode)

		for j := range ch.Subchapters {
			sub := &ch.Subchapters[j]
			subLabel := sub.ID + " " + sub.Label
			if n := countPoints(protocol.Points, func(pt *models.Point) bool {
				return pt.Subchapter == sub.ID && pt.Topic == ""
			}); n > 0 {
				subLabel = fmt.Sprintf("%s (%d)", subLabel, n)
			}
			subNode, err := graph.CreateNodeByName(subLabel)
			if err != nil {
				return "", fmt.Errorf("failed to create subchapter node: %w", err)
			}
			_, _ = graph.CreateEdgeByName("", chNode, subNode)

			for k := range sub.Topics {
				topic := &sub.Topics[k]
				label := topic.Label
				if n := countPoints(protocol.Points, func(pt *models.Point) bool {
					return pt.Topic == topic.ID
				}); n > 0 {
					label = fmt.Sprintf("%s (%d)", label, n)
				}
				topicNode, err := graph.CreateNodeByName(label)
				if err != nil {
					return "", fmt.Errorf("failed to create topic node: %w", err)
				}
				topicNode.SetShape(cgraph.EllipseShape)
				_, _ = graph.CreateEdgeByName("", subNode, topicNode)
			}
		}
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}
	return buf.String(), nil
}

func countPoints(points []models.Point, match func(*models.Point) bool) int {
	n := 0
	for i := range points {
		if match(&points[i]) {
			n++
		}
	}
	return n
}
