// ABOUTME: Builds the ordered display row sequence for a protocol
// ABOUTME: Screen and PDF backends consume the identical rows
package render

import (
	"time"

	"github.com/oscarlimaalphafox/KADRA/models"
)

// RowKind tags a display row.
type RowKind int

const (
	RowChapter RowKind = iota
	RowSubchapter
	RowTopic
	RowPoint
)

// Row is one line of the rendered document. Exactly one of the payload
// fields matching Kind is set.
type Row struct {
	Kind       RowKind
	Chapter    *models.Chapter
	Subchapter *models.Subchapter
	Topic      *models.Topic
	Point      *PointRow
}

// PointRow pairs a point with its derived display flags. The flags are
// computed here once so every backend styles the same facts.
type PointRow struct {
	Point               *models.Point
	Done                bool
	IsNew               bool
	ContentAmended      bool
	DeadlineAmended     bool
	Overdue             bool
	ResponsibleDisabled bool
}

// NewPointRow derives the display flags for a point.
func NewPointRow(pt *models.Point, today time.Time) *PointRow {
	return &PointRow{
		Point:               pt,
		Done:                pt.Done,
		IsNew:               pt.IsNew,
		ContentAmended:      pt.ContentAmended(),
		DeadlineAmended:     pt.DeadlineAmended(),
		Overdue:             pt.Overdue(today),
		ResponsibleDisabled: models.CategoryLocksAssignment(pt.Category),
	}
}

// BuildRows flattens a protocol into display order: per chapter its header,
// the points anchored directly on the chapter, then each subchapter with its
// topics and their points, with topicless points last. Chapters keep their
// structure order; points keep their document order within each bucket.
//
// A nil view state renders everything, which is what the PDF export uses.
func BuildRows(p *models.Protocol, vs *ViewState, today time.Time) []Row {
	if vs == nil {
		vs = NewViewState()
	}

	var rows []Row
	for i := range p.Structure {
		ch := &p.Structure[i]
		if vs.HiddenChapters[ch.Key] && !ch.HasContent(p.Points) {
			continue
		}
		rows = append(rows, Row{Kind: RowChapter, Chapter: ch})
		if vs.ChapterCollapsed(ch.Key) {
			continue
		}

		rows = appendPointRows(rows, p, vs, today, func(pt *models.Point) bool {
			return pt.Chapter == ch.Key && pt.Subchapter == ""
		})

		for j := range ch.Subchapters {
			sub := &ch.Subchapters[j]
			rows = append(rows, Row{Kind: RowSubchapter, Subchapter: sub})
			if vs.SubchapterCollapsed(sub.ID) {
				continue
			}

			for k := range sub.Topics {
				topic := &sub.Topics[k]
				rows = append(rows, Row{Kind: RowTopic, Topic: topic})
				rows = appendPointRows(rows, p, vs, today, func(pt *models.Point) bool {
					return pt.Subchapter == sub.ID && pt.Topic == topic.ID
				})
			}

			rows = appendPointRows(rows, p, vs, today, func(pt *models.Point) bool {
				return pt.Subchapter == sub.ID && pt.Topic == ""
			})
		}
	}
	return rows
}

func appendPointRows(rows []Row, p *models.Protocol, vs *ViewState, today time.Time, match func(*models.Point) bool) []Row {
	for i := range p.Points {
		pt := &p.Points[i]
		if !match(pt) {
			continue
		}
		pr := NewPointRow(pt, today)
		if vs.Filters.HideDone && pr.Done {
			continue
		}
		if vs.Filters.OnlyOverdue && !pr.Overdue {
			continue
		}
		if vs.Filters.OnlyNew && !pr.IsNew {
			continue
		}
		rows = append(rows, Row{Kind: RowPoint, Point: pr})
	}
	return rows
}
