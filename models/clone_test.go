// ABOUTME: Tests for deep-clone independence
// ABOUTME: Mutating a clone must never reach the original document
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneProtocolIndependence(t *testing.T) {
	orig := &Protocol{
		Type:      TypePlanung,
		Number:    2,
		Structure: DefaultStructure(TypePlanung),
		Participants: []Participant{
			{Name: "A. Muster", Abbr: "AM", Attended: true},
		},
		Points: []Point{
			{ID: "#01|A.01", Chapter: "A", Content: "alt", Snapshot: &PointSnapshot{Content: "alt"}},
		},
		Attachments: []Attachment{
			{ID: "#02.01", Caption: "Plan", FileData: []byte{1, 2, 3}},
		},
		CustomAbbreviations: []Abbreviation{{Abbr: "GU", Name: "Generalunternehmer"}},
	}

	clone := CloneProtocol(orig)

	clone.Structure.Chapter("B").Subchapters[0].Label = "geändert"
	clone.Points[0].Content = "neu"
	clone.Points[0].Snapshot.Content = "neu"
	clone.Participants[0].Name = "B. Muster"
	clone.Attachments[0].FileData[0] = 99
	clone.CustomAbbreviations[0].Abbr = "XX"

	assert.Equal(t, "Objektplanung", orig.Structure.Chapter("B").Subchapters[0].Label)
	assert.Equal(t, "alt", orig.Points[0].Content)
	assert.Equal(t, "alt", orig.Points[0].Snapshot.Content)
	assert.Equal(t, "A. Muster", orig.Participants[0].Name)
	assert.Equal(t, byte(1), orig.Attachments[0].FileData[0])
	assert.Equal(t, "GU", orig.CustomAbbreviations[0].Abbr)
}

func TestClonePointsNilInput(t *testing.T) {
	pts := ClonePoints(nil)
	require.NotNil(t, pts)
	assert.Empty(t, pts)
}

func TestValidateProject(t *testing.T) {
	p := &Project{Code: "AB", Name: "Neubau"}
	assert.NoError(t, ValidateProject(p))

	p.Code = "ABCDE"
	assert.Error(t, ValidateProject(p))

	p.Code = "ab"
	assert.Error(t, ValidateProject(p))

	p.Code = "AB"
	p.Name = ""
	assert.Error(t, ValidateProject(p))
}

func TestValidateAttachmentSize(t *testing.T) {
	assert.NoError(t, ValidateAttachmentSize(make([]byte, MaxAttachmentSize)))
	assert.ErrorIs(t, ValidateAttachmentSize(make([]byte, MaxAttachmentSize+1)), ErrValidation)
}
