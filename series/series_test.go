// ABOUTME: Tests for series continuation, seeding and duplication
// ABOUTME: Covers two-step pruning, snapshots and clone independence
package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oscarlimaalphafox/KADRA/models"
)

var testDay = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func priorProtocol() *models.Protocol {
	return &models.Protocol{
		SeriesID:   "01ABC",
		SeriesName: "Jour Fixe Planung",
		Type:       models.TypePlanung,
		Number:     4,
		Structure:  models.DefaultStructure(models.TypePlanung),
		Participants: []models.Participant{
			{Name: "A. Muster", Abbr: "AM", Attended: true},
		},
		CustomAbbreviations: []models.Abbreviation{{Abbr: "GU", Name: "Generalunternehmer"}},
		Attachments:         []models.Attachment{{ID: "#04.01", Caption: "Plan"}},
		Points: []models.Point{
			// Open point: carried.
			{ID: "#03|A.01", Chapter: "A", Content: "offen", Done: false, CreatedInProtocol: 3},
			// Done for the first time: carried once more, flagged.
			{ID: "#03|A.02", Chapter: "A", Content: "frisch erledigt", Deadline: "KW 9", Done: true, CreatedInProtocol: 3},
			// Done and already shown as done last time: pruned.
			{ID: "#02|B.1.01", Chapter: "B", Subchapter: "B.1", Content: "alt", Done: true, DoneLastProtocol: true, CreatedInProtocol: 2},
			// Reopened point: doneLastProtocol true but done false, carried.
			{ID: "#02|C.01", Chapter: "C", Content: "wieder offen", Done: false, DoneLastProtocol: true, CreatedInProtocol: 2},
		},
	}
}

func TestContinueCarriesAndPrunes(t *testing.T) {
	prior := priorProtocol()
	next := Continue(prior, 5, testDay)

	assert.Equal(t, 5, next.Number)
	assert.Equal(t, prior.SeriesID, next.SeriesID)
	assert.Equal(t, prior.Type, next.Type)
	assert.Equal(t, "2026-03-01", next.Date)
	assert.Empty(t, next.Attachments, "attachments never carry over")

	require.Len(t, next.Points, 3, "twice-done point is pruned")

	ids := []string{next.Points[0].ID, next.Points[1].ID, next.Points[2].ID}
	assert.Equal(t, []string{"#03|A.01", "#03|A.02", "#02|C.01"}, ids, "ids survive unchanged")

	for _, pt := range next.Points {
		assert.False(t, pt.IsNew)
		require.NotNil(t, pt.Snapshot)
		assert.Equal(t, pt.Content, pt.Snapshot.Content)
		assert.Equal(t, pt.Deadline, pt.Snapshot.Deadline)
	}

	// doneLastProtocol reflects the predecessor's done state.
	assert.False(t, next.Points[0].DoneLastProtocol)
	assert.True(t, next.Points[1].DoneLastProtocol)
	assert.True(t, next.Points[1].Done, "done state itself carries")
	assert.False(t, next.Points[2].DoneLastProtocol)
}

func TestContinueTwiceDropsFinishedPoints(t *testing.T) {
	prior := priorProtocol()
	next := Continue(prior, 5, testDay)

	// The freshly-done point survives one more protocol, then disappears.
	after := Continue(next, 6, testDay)
	for _, pt := range after.Points {
		assert.NotEqual(t, "#03|A.02", pt.ID)
	}
	assert.Len(t, after.Points, 2)
}

func TestContinueIsDeepCopy(t *testing.T) {
	prior := priorProtocol()
	next := Continue(prior, 5, testDay)

	next.Structure.Chapter("B").Subchapters[0].Label = "geändert"
	next.Participants[0].Name = "B. Muster"
	next.Points[0].Content = "editiert"
	next.CustomAbbreviations[0].Abbr = "XX"

	assert.Equal(t, "Objektplanung", prior.Structure.Chapter("B").Subchapters[0].Label)
	assert.Equal(t, "A. Muster", prior.Participants[0].Name)
	assert.Equal(t, "offen", prior.Points[0].Content)
	assert.Equal(t, "GU", prior.CustomAbbreviations[0].Abbr)
}

func TestSeed(t *testing.T) {
	project := &models.Project{Code: "NB", Name: "Neubau", Tenant: "Mieter GmbH", Owner: "Eigentümer AG"}
	author := models.Author{FirstName: "Olaf", LastName: "Schüler", Company: "Hopro GmbH & Co. KG"}

	p := Seed(project, models.TypeBaubesprechung, "Baubesprechung Halle 3", 1, author, testDay)

	assert.NotEmpty(t, p.SeriesID)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, "Baubesprechung Halle 3", p.Title)
	assert.Equal(t, "Mieter GmbH", p.Tenant)
	assert.Equal(t, "Eigentümer AG", p.Landlord)
	assert.Len(t, p.Structure, 5)
	assert.Empty(t, p.Points)

	// Series ids are unique per seed.
	q := Seed(project, models.TypeBaubesprechung, "", 1, author, testDay)
	assert.NotEqual(t, p.SeriesID, q.SeriesID)
	assert.Equal(t, models.TypeBaubesprechung, q.Title, "title falls back to the type")
}

func TestDuplicate(t *testing.T) {
	source := priorProtocol()
	source.Points[0].Snapshot = &models.PointSnapshot{Content: "alt", Deadline: ""}

	dup := Duplicate(source, "Kopie Planung", testDay)

	assert.NotEqual(t, source.SeriesID, dup.SeriesID)
	assert.Equal(t, 1, dup.Number)
	assert.Equal(t, "Kopie Planung", dup.SeriesName)
	assert.Equal(t, "Kopie Planung", dup.Title)
	assert.Len(t, dup.Points, len(source.Points), "duplication never prunes")
	assert.Len(t, dup.Attachments, 1, "attachments are part of the copy")

	for _, pt := range dup.Points {
		assert.Nil(t, pt.Snapshot)
		assert.False(t, pt.IsNew)
		assert.False(t, pt.DoneLastProtocol)
	}

	// Source keeps its snapshot.
	assert.NotNil(t, source.Points[0].Snapshot)
}
