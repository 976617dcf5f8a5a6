// ABOUTME: Tests for deadline normalization and overdue detection
// ABOUTME: Free-text deadlines like calendar weeks must never be overdue
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeadlineISO(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2026-03-01", "2026-03-01"},
		{"01.03.2026", "2026-03-01"},
		{"1.3.2026", "2026-03-01"},
		{"01.03.26", "2026-03-01"},
		{"KW 5", ""},
		{"asap", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DeadlineISO(tt.in), "input %q", tt.in)
	}
}

func TestPointOverdue(t *testing.T) {
	today := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		point Point
		want  bool
	}{
		{"past deadline", Point{Deadline: "2026-03-01"}, true},
		{"past dotted deadline", Point{Deadline: "01.03.26"}, true},
		{"future deadline", Point{Deadline: "2026-04-01"}, false},
		{"today is not overdue", Point{Deadline: "2026-03-15"}, false},
		{"done suppresses overdue", Point{Deadline: "2026-03-01", Done: true}, false},
		{"calendar week never overdue", Point{Deadline: "KW 5"}, false},
		{"empty deadline", Point{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.point.Overdue(today))
		})
	}
}

func TestAmendmentFlags(t *testing.T) {
	p := Point{Content: "a", Deadline: "2026-01-01"}
	assert.False(t, p.ContentAmended(), "no snapshot means no amendment")
	assert.False(t, p.DeadlineAmended())

	p.Snapshot = &PointSnapshot{Content: "a", Deadline: "2026-01-01"}
	assert.False(t, p.ContentAmended())
	assert.False(t, p.DeadlineAmended())

	p.Content = "a (neu)"
	p.Deadline = "2026-02-01"
	assert.True(t, p.ContentAmended())
	assert.True(t, p.DeadlineAmended())

	// Reverting restores the unamended state.
	p.Content = "a"
	assert.False(t, p.ContentAmended())
}
