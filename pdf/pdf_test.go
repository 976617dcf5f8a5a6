// ABOUTME: Tests for the PDF renderer and export filenames
// ABOUTME: Verifies document output for full and edge-case protocols
package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oscarlimaalphafox/KADRA/models"
)

var testDay = time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)

func pdfProtocol() (*models.Project, *models.Protocol) {
	project := &models.Project{Code: "NB", Name: "Neubau Bürogebäude"}
	p := &models.Protocol{
		Type:       models.TypeMieter,
		Number:     4,
		SeriesName: "Jour Fixe Ausbau",
		Date:       "2026-03-15",
		Time:       "09:00",
		Location:   "Baustelle",
		Tenant:     "Mieter GmbH",
		Landlord:   "Vermieter AG",
		Author:     models.Author{FirstName: "Olaf", LastName: "Schüler", Company: "Hopro GmbH & Co. KG", Date: "15.03.2026"},
		Structure:  models.DefaultStructure(models.TypeMieter),
		Participants: []models.Participant{
			{Name: "Olaf Schüler", Company: "Hopro", Abbr: "HP", Attended: true, InDistrib: true},
			{Name: "Max Muster", Company: "Mieter GmbH", Abbr: "MI", InDistrib: true},
		},
		Points: []models.Point{
			{ID: "#04|A.01", Chapter: "A", Content: "Terminplan aktualisiert", Category: models.CategoryInfo, IsNew: true},
			{ID: "#03|B.1.01", Chapter: "B", Subchapter: "B.1", Content: "Küchenplanung abstimmen\n- Variante A prüfen\n- Variante B verwerfen",
				Category: models.CategoryTask, Responsible: "MI", Deadline: "01.03.2026",
				Snapshot: &models.PointSnapshot{Content: "Küchenplanung abstimmen", Deadline: "01.03.2026"}},
			{ID: "#02|B.2.01", Chapter: "B", Subchapter: "B.2", Content: "Altpunkt", Done: true, DoneLastProtocol: false},
		},
		Attachments: []models.Attachment{
			{ID: "#04.01", Caption: "Grundriss EG", FileName: "grundriss.pdf"},
		},
		CustomAbbreviations: []models.Abbreviation{{Abbr: "GU", Name: "Generalunternehmer"}},
	}
	return project, p
}

func TestRenderProducesDocument(t *testing.T) {
	project, protocol := pdfProtocol()

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, project, protocol, nil, testDay))

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output starts with a PDF header")
	assert.Greater(t, len(out), 1000)
}

func TestRenderEmptyProtocol(t *testing.T) {
	project := &models.Project{Code: "KA", Name: "Kita Anbau"}
	protocol := &models.Protocol{
		Type:       models.TypeAktennotiz,
		SeriesName: "Brandschutz",
		Structure:  models.DefaultStructure(models.TypeAktennotiz),
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, project, protocol, nil, testDay))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestRenderHiddenChapter(t *testing.T) {
	project, protocol := pdfProtocol()

	var full, hidden bytes.Buffer
	require.NoError(t, Render(&full, project, protocol, nil, testDay))
	require.NoError(t, Render(&hidden, project, protocol, map[string]bool{"C": true}, testDay))
	assert.NotEqual(t, full.Len(), hidden.Len(), "hiding an empty chapter changes the document")
}

func TestFilename(t *testing.T) {
	_, protocol := pdfProtocol()
	assert.Equal(t, "260315 NB_Jour Fixe Ausbau Nr.04.pdf", Filename("NB", protocol, testDay))

	memo := &models.Protocol{Type: models.TypeAktennotiz, SeriesName: "Brandschutz"}
	assert.Equal(t, "260315 KA_Brandschutz.pdf", Filename("KA", memo, testDay))

	bare := &models.Protocol{Type: models.TypeMieter}
	assert.Equal(t, "260315 NB_JFx Mieter Nr.01.pdf", Filename("NB", bare, testDay))
}
