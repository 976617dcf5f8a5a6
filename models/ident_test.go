// ABOUTME: Tests for point and attachment id generation
// ABOUTME: Covers serial, memo and bucket sequencing forms
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointID(t *testing.T) {
	tests := []struct {
		name       string
		number     int
		chapter    string
		subchapter string
		seq        int
		want       string
	}{
		{"chapter only", 7, "A", "", 1, "#07|A.01"},
		{"with subchapter", 7, "B", "B.2", 3, "#07|B.2.03"},
		{"double digit number", 12, "C", "", 10, "#12|C.10"},
		{"user chapter", 1, "F", "F.1", 1, "#01|F.1.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PointID(tt.number, tt.chapter, tt.subchapter, tt.seq))
		})
	}
}

func TestMemoPointID(t *testing.T) {
	assert.Equal(t, "P.01", MemoPointID("P", 0, 1))
	assert.Equal(t, "N.02", MemoPointID("N", 0, 2))
	assert.Equal(t, "1.01", MemoPointID("A", 1, 1))
	assert.Equal(t, "2.05", MemoPointID("G", 2, 5))
}

func TestNewPointIDMemo(t *testing.T) {
	p := &Protocol{Type: TypeAktennotiz, Structure: DefaultStructure(TypeAktennotiz)}
	assert.Equal(t, "P.01", p.NewPointID("P", "", 1))
	assert.Equal(t, "1.01", p.NewPointID("A", "", 1))
	assert.Equal(t, "N.03", p.NewPointID("N", "", 3))
}

func TestNextPointSeq(t *testing.T) {
	p := &Protocol{
		Number: 3,
		Points: []Point{
			{ID: "#02|A.01", Chapter: "A", CreatedInProtocol: 2},
			{ID: "#03|A.01", Chapter: "A", CreatedInProtocol: 3},
			{ID: "#03|B.1.01", Chapter: "B", Subchapter: "B.1", CreatedInProtocol: 3},
		},
	}

	// Carried-over points do not occupy sequence slots.
	assert.Equal(t, 2, p.NextPointSeq("A", ""))
	assert.Equal(t, 2, p.NextPointSeq("B", "B.1"))
	assert.Equal(t, 1, p.NextPointSeq("B", "B.2"))
	assert.Equal(t, 1, p.NextPointSeq("C", ""))
}

func TestAttachmentID(t *testing.T) {
	assert.Equal(t, "#12.01", AttachmentID(12, 1))
	assert.Equal(t, "#01.10", AttachmentID(1, 10))
}
