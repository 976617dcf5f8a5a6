// ABOUTME: Tests for the display row builder and view state
// ABOUTME: Covers ordering, collapse, filters and flag derivation
package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oscarlimaalphafox/KADRA/models"
)

var testDay = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func renderProtocol() *models.Protocol {
	p := &models.Protocol{
		Type:      models.TypeMieter,
		Number:    3,
		Structure: models.DefaultStructure(models.TypeMieter),
	}
	sub := p.Structure.Subchapter("B.1")
	sub.Topics = []models.Topic{{ID: "t1", Label: "Küchen"}}

	p.Points = []models.Point{
		{ID: "#03|A.01", Chapter: "A", Content: "direkt"},
		{ID: "#03|B.1.01", Chapter: "B", Subchapter: "B.1", Topic: "t1", Content: "im Thema"},
		{ID: "#03|B.1.02", Chapter: "B", Subchapter: "B.1", Content: "ohne Thema"},
		{ID: "#02|B.2.01", Chapter: "B", Subchapter: "B.2", Content: "alt", Done: true},
	}
	return p
}

func kinds(rows []Row) []RowKind {
	out := make([]RowKind, len(rows))
	for i, r := range rows {
		out[i] = r.Kind
	}
	return out
}

func TestBuildRowsOrder(t *testing.T) {
	p := renderProtocol()
	rows := BuildRows(p, nil, testDay)

	// A: header + direct point. B: header, B.1 header, topic, topic point,
	// topicless point, B.2 header, its point. C, D, E: bare headers.
	want := []RowKind{
		RowChapter, RowPoint,
		RowChapter, RowSubchapter, RowTopic, RowPoint, RowPoint, RowSubchapter, RowPoint,
		RowChapter, RowChapter, RowChapter,
	}
	assert.Equal(t, want, kinds(rows))

	// Topic points come before topicless ones in the same subchapter.
	assert.Equal(t, "#03|B.1.01", rows[5].Point.Point.ID)
	assert.Equal(t, "#03|B.1.02", rows[6].Point.Point.ID)
}

func TestBuildRowsRespectsDocumentOrder(t *testing.T) {
	p := renderProtocol()
	// Simulate a reorder: swap the two B.1 bucket points.
	p.Points[1], p.Points[2] = p.Points[2], p.Points[1]
	p.Points[1].Topic = "t1"
	p.Points[2].Topic = "t1"

	rows := BuildRows(p, nil, testDay)
	var got []string
	for _, r := range rows {
		if r.Kind == RowPoint && r.Point.Point.Chapter == "B" && r.Point.Point.Subchapter == "B.1" {
			got = append(got, r.Point.Point.ID)
		}
	}
	assert.Equal(t, []string{"#03|B.1.02", "#03|B.1.01"}, got)
}

func TestCollapse(t *testing.T) {
	p := renderProtocol()
	vs := NewViewState()

	vs.ToggleCollapseChapter("B")
	rows := BuildRows(p, vs, testDay)
	for _, r := range rows {
		if r.Kind == RowSubchapter {
			t.Fatalf("collapsed chapter must hide subchapters")
		}
	}

	vs.ToggleCollapseChapter("B") // expand again
	vs.ToggleCollapseSubchapter("B.1")
	rows = BuildRows(p, vs, testDay)
	var topicRows int
	var subRows int
	for _, r := range rows {
		if r.Kind == RowTopic {
			topicRows++
		}
		if r.Kind == RowSubchapter {
			subRows++
		}
	}
	assert.Zero(t, topicRows, "collapsed subchapter hides topics")
	assert.Equal(t, 2, subRows, "subchapter headers stay visible")
}

func TestPointFilters(t *testing.T) {
	p := renderProtocol()
	p.Points[0].IsNew = true
	p.Points[1].Deadline = "2026-03-01" // overdue at testDay

	vs := NewViewState()
	vs.SetHideDone(true)
	rows := BuildRows(p, vs, testDay)
	for _, r := range rows {
		if r.Kind == RowPoint {
			assert.False(t, r.Point.Done)
		}
	}

	vs = NewViewState()
	vs.SetOnlyOverdue(true)
	rows = BuildRows(p, vs, testDay)
	var pts int
	for _, r := range rows {
		if r.Kind == RowPoint {
			pts++
			assert.True(t, r.Point.Overdue)
		}
	}
	assert.Equal(t, 1, pts)

	vs.SetOnlyNew(true)
	assert.False(t, vs.Filters.OnlyOverdue, "filters are mutually exclusive")
	rows = BuildRows(p, vs, testDay)
	pts = 0
	for _, r := range rows {
		if r.Kind == RowPoint {
			pts++
			assert.True(t, r.Point.IsNew)
		}
	}
	assert.Equal(t, 1, pts)

	vs.SetOnlyOverdue(true)
	assert.False(t, vs.Filters.OnlyNew)
}

func TestChapterHiding(t *testing.T) {
	p := renderProtocol()
	vs := NewViewState()

	// Chapters with content refuse to hide.
	err := vs.SetChapterHidden(p, "A", true)
	assert.ErrorIs(t, err, models.ErrValidation)

	require.NoError(t, vs.SetChapterHidden(p, "C", true))
	rows := BuildRows(p, vs, testDay)
	for _, r := range rows {
		if r.Kind == RowChapter {
			assert.NotEqual(t, "C", r.Chapter.Key)
		}
	}

	require.NoError(t, vs.SetChapterHidden(p, "C", false))
	rows = BuildRows(p, vs, testDay)
	found := false
	for _, r := range rows {
		if r.Kind == RowChapter && r.Chapter.Key == "C" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestPointRowFlags(t *testing.T) {
	pt := &models.Point{
		Content:  "neu gefasst",
		Deadline: "2026-03-01",
		Category: models.CategoryTask,
		Snapshot: &models.PointSnapshot{Content: "alt", Deadline: "2026-03-01"},
	}
	pr := NewPointRow(pt, testDay)
	assert.True(t, pr.ContentAmended)
	assert.False(t, pr.DeadlineAmended)
	assert.True(t, pr.Overdue)
	assert.False(t, pr.ResponsibleDisabled)

	pt.Category = models.CategoryDecision
	pr = NewPointRow(pt, testDay)
	assert.True(t, pr.ResponsibleDisabled)

	pt.Done = true
	pr = NewPointRow(pt, testDay)
	assert.False(t, pr.Overdue, "done points are never overdue")
}
