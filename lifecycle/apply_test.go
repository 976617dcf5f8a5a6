// ABOUTME: Tests for the document action reducer
// ABOUTME: Covers anchoring, category side effects, reorder and attachments
package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oscarlimaalphafox/KADRA/models"
)

func testProtocol() *models.Protocol {
	return &models.Protocol{
		Type:                models.TypePlanung,
		Number:              2,
		Structure:           models.DefaultStructure(models.TypePlanung),
		Points:              []models.Point{},
		Attachments:         []models.Attachment{},
		Participants:        []models.Participant{},
		CustomAbbreviations: []models.Abbreviation{},
	}
}

func TestAddPoint(t *testing.T) {
	p := testProtocol()

	require.NoError(t, Apply(p, AddPoint{Chapter: "A"}))
	require.Len(t, p.Points, 1)

	pt := p.Points[0]
	assert.Equal(t, "#02|A.01", pt.ID)
	assert.Equal(t, models.CategoryTask, pt.Category)
	assert.True(t, pt.IsNew)
	assert.Equal(t, 2, pt.CreatedInProtocol)

	require.NoError(t, Apply(p, AddPoint{Chapter: "A"}))
	assert.Equal(t, "#02|A.02", p.Points[1].ID)

	require.NoError(t, Apply(p, AddPoint{Chapter: "B", Subchapter: "B.3"}))
	assert.Equal(t, "#02|B.3.01", p.Points[2].ID)
}

func TestAddPointRequiresSubchapterSelection(t *testing.T) {
	p := testProtocol()

	// Chapter B has subchapters, so a bare chapter anchor is rejected.
	err := Apply(p, AddPoint{Chapter: "B"})
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Empty(t, p.Points)

	assert.ErrorIs(t, Apply(p, AddPoint{Chapter: "X"}), models.ErrNotFound)
	assert.ErrorIs(t, Apply(p, AddPoint{Chapter: "B", Subchapter: "B.9"}), models.ErrNotFound)
}

func TestAddPointMemoIDs(t *testing.T) {
	p := &models.Protocol{
		Type:      models.TypeAktennotiz,
		Structure: models.DefaultStructure(models.TypeAktennotiz),
	}

	require.NoError(t, Apply(p, AddPoint{Chapter: "P"}))
	require.NoError(t, Apply(p, AddPoint{Chapter: "A"}))
	require.NoError(t, Apply(p, AddPoint{Chapter: "N"}))

	assert.Equal(t, "P.01", p.Points[0].ID)
	assert.Equal(t, "1.01", p.Points[1].ID)
	assert.Equal(t, "N.01", p.Points[2].ID)
}

func TestAddTopicCreatesFirstPoint(t *testing.T) {
	p := testProtocol()

	require.NoError(t, Apply(p, AddTopic{Subchapter: "B.1", Label: "Fassade"}))

	sub := p.Structure.Subchapter("B.1")
	require.Len(t, sub.Topics, 1)
	require.Len(t, p.Points, 1)
	assert.Equal(t, sub.Topics[0].ID, p.Points[0].Topic)
	assert.Equal(t, "#02|B.1.01", p.Points[0].ID)

	assert.ErrorIs(t, Apply(p, AddTopic{Subchapter: "B.1"}), models.ErrValidation)
}

func TestCategorySideEffects(t *testing.T) {
	p := testProtocol()
	require.NoError(t, Apply(p, AddPoint{Chapter: "A"}))
	id := p.Points[0].ID

	require.NoError(t, Apply(p, SetPointResponsible{ID: id, Responsible: "AM/BK"}))
	require.NoError(t, Apply(p, SetPointDeadline{ID: id, Deadline: "KW 12"}))

	// Switching to an informational category clears both fields.
	require.NoError(t, Apply(p, SetPointCategory{ID: id, Category: models.CategoryInfo}))
	assert.Empty(t, p.Points[0].Responsible)
	assert.Empty(t, p.Points[0].Deadline)

	// And locks them.
	assert.ErrorIs(t, Apply(p, SetPointResponsible{ID: id, Responsible: "AM"}), models.ErrValidation)
	assert.ErrorIs(t, Apply(p, SetPointDeadline{ID: id, Deadline: "KW 13"}), models.ErrValidation)

	// The legacy approval label is accepted and normalized.
	require.NoError(t, Apply(p, SetPointCategory{ID: id, Category: models.CategoryApprovalLegacy}))
	assert.Equal(t, models.CategoryApproval, p.Points[0].Category)

	assert.ErrorIs(t, Apply(p, SetPointCategory{ID: id, Category: "Sonstiges"}), models.ErrValidation)
}

func TestDeletePointDoesNotReuseSeq(t *testing.T) {
	p := testProtocol()
	require.NoError(t, Apply(p, AddPoint{Chapter: "A"}))
	require.NoError(t, Apply(p, AddPoint{Chapter: "A"}))

	require.NoError(t, Apply(p, DeletePoint{ID: "#02|A.01"}))
	require.Len(t, p.Points, 1)

	// Deleting never renumbers survivors, and the next id steps past the
	// surviving #02|A.02 instead of colliding with it.
	require.NoError(t, Apply(p, AddPoint{Chapter: "A"}))
	assert.Equal(t, "#02|A.02", p.Points[0].ID)
	assert.Equal(t, "#02|A.03", p.Points[1].ID)
}

func TestMovePoint(t *testing.T) {
	p := testProtocol()
	require.NoError(t, Apply(p, AddTopic{Subchapter: "B.1", Label: "Fassade"}))
	topicID := p.Structure.Subchapter("B.1").Topics[0].ID
	require.NoError(t, Apply(p, AddPoint{Chapter: "B", Subchapter: "B.1"}))
	require.NoError(t, Apply(p, AddPoint{Chapter: "A"}))

	first := p.Points[0].ID  // in topic
	second := p.Points[1].ID // topicless, same bucket
	other := p.Points[2].ID  // different bucket

	// Cross-bucket moves are rejected.
	err := Apply(p, MovePoint{ID: other, Target: first})
	assert.ErrorIs(t, err, models.ErrValidation)

	// Moving before the topic point adopts its topic.
	require.NoError(t, Apply(p, MovePoint{ID: second, Target: first}))
	assert.Equal(t, second, p.Points[0].ID)
	assert.Equal(t, topicID, p.Points[0].Topic, "moved point adopts target topic")
	assert.Equal(t, second, p.Points[0].ID, "id never changes on move")

	// Moving after works too.
	require.NoError(t, Apply(p, MovePoint{ID: second, Target: first, After: true}))
	assert.Equal(t, first, p.Points[0].ID)
	assert.Equal(t, second, p.Points[1].ID)
}

func TestChapterLifecycle(t *testing.T) {
	p := testProtocol()

	require.NoError(t, Apply(p, AddChapter{Label: "Brandschutz"}))
	require.Len(t, p.Structure, 6)
	assert.Equal(t, "F", p.Structure[5].Key)

	// Default chapters are undeletable.
	assert.ErrorIs(t, Apply(p, DeleteChapter{Key: "A"}), models.ErrStructureConflict)

	// Chapters with points are undeletable.
	require.NoError(t, Apply(p, AddPoint{Chapter: "F"}))
	assert.ErrorIs(t, Apply(p, DeleteChapter{Key: "F"}), models.ErrStructureConflict)

	require.NoError(t, Apply(p, DeletePoint{ID: p.Points[0].ID}))
	require.NoError(t, Apply(p, DeleteChapter{Key: "F"}))
	assert.Len(t, p.Structure, 5)

	require.NoError(t, Apply(p, RenameChapter{Key: "C", Label: "Kosten | Budget"}))
	assert.Equal(t, "Kosten | Budget", p.Structure.Chapter("C").Label)
}

func TestSubchapterAndTopicCascade(t *testing.T) {
	p := testProtocol()
	require.NoError(t, Apply(p, AddSubchapter{Chapter: "C", Label: "Nachträge"}))
	assert.Equal(t, "C.1", p.Structure.Chapter("C").Subchapters[0].ID)

	require.NoError(t, Apply(p, AddTopic{Subchapter: "C.1", Label: "NT-01"}))
	topicID := p.Structure.Subchapter("C.1").Topics[0].ID
	require.NoError(t, Apply(p, AddPoint{Chapter: "C", Subchapter: "C.1"}))
	require.Len(t, p.Points, 2)

	// Deleting the topic removes its point, the topicless one stays.
	require.NoError(t, Apply(p, DeleteTopic{ID: topicID}))
	require.Len(t, p.Points, 1)
	assert.Empty(t, p.Structure.Subchapter("C.1").Topics)

	// Deleting the subchapter removes everything anchored to it.
	require.NoError(t, Apply(p, DeleteSubchapter{ID: "C.1"}))
	assert.Empty(t, p.Points)
	assert.Empty(t, p.Structure.Chapter("C").Subchapters)
}

func TestAttachmentLifecycle(t *testing.T) {
	p := testProtocol()

	require.NoError(t, Apply(p, AddAttachment{Caption: "Lageplan", FileName: "plan.pdf", FileType: "application/pdf", FileData: []byte{1}}))
	require.NoError(t, Apply(p, AddAttachment{Caption: "Foto Rohbau"}))
	require.NoError(t, Apply(p, AddAttachment{Caption: "Bemusterung"}))

	assert.Equal(t, "#02.01", p.Attachments[0].ID)
	assert.Equal(t, "#02.03", p.Attachments[2].ID)

	// Oversized payloads are rejected before anything changes.
	err := Apply(p, AddAttachment{Caption: "groß", FileData: make([]byte, models.MaxAttachmentSize+1)})
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Len(t, p.Attachments, 3)

	// Deleting resequences the survivors.
	require.NoError(t, Apply(p, DeleteAttachment{ID: "#02.01"}))
	require.Len(t, p.Attachments, 2)
	assert.Equal(t, "#02.01", p.Attachments[0].ID)
	assert.Equal(t, "Foto Rohbau", p.Attachments[0].Caption)
	assert.Equal(t, "#02.02", p.Attachments[1].ID)

	require.NoError(t, Apply(p, ReplaceAttachmentFile{ID: "#02.01", FileName: "foto.jpg", FileType: "image/jpeg", FileData: []byte{2, 3}}))
	assert.Equal(t, "foto.jpg", p.Attachments[0].FileName)

	require.NoError(t, Apply(p, RemoveAttachmentFile{ID: "#02.01"}))
	assert.Empty(t, p.Attachments[0].FileName)
	assert.Nil(t, p.Attachments[0].FileData)
	assert.Equal(t, "Foto Rohbau", p.Attachments[0].Caption, "caption survives file removal")
}

func TestSeriesNameLock(t *testing.T) {
	p := testProtocol() // Number 2
	err := Apply(p, SetSeriesName{Name: "Neuer Name"})
	assert.ErrorIs(t, err, models.ErrValidation)

	p.Number = 1
	require.NoError(t, Apply(p, SetSeriesName{Name: "Neuer Name"}))
	assert.Equal(t, "Neuer Name", p.SeriesName)
	assert.Equal(t, "Neuer Name", p.Title)
}

func TestRosterAndAbbreviations(t *testing.T) {
	p := testProtocol()

	require.NoError(t, Apply(p, AddParticipant{Name: "A. Muster", Company: "Hopro", Abbr: "AM", Attended: true, InDistrib: true}))
	require.Len(t, p.Participants, 1)

	assert.ErrorIs(t, Apply(p, RemoveParticipant{Index: 5}), models.ErrNotFound)
	require.NoError(t, Apply(p, RemoveParticipant{Index: 0}))
	assert.Empty(t, p.Participants)

	require.NoError(t, Apply(p, AddAbbreviation{Abbr: "GU", Name: "Generalunternehmer"}))
	assert.ErrorIs(t, Apply(p, AddAbbreviation{}), models.ErrValidation)
	require.NoError(t, Apply(p, RemoveAbbreviation{Abbr: "GU"}))
	assert.ErrorIs(t, Apply(p, RemoveAbbreviation{Abbr: "GU"}), models.ErrNotFound)
}
