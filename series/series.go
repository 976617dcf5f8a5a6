// ABOUTME: Series continuation engine for protocol documents
// ABOUTME: Builds successor, first-of-series and duplicate protocols
package series

import (
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/oscarlimaalphafox/KADRA/models"
)

// NewSeriesID mints the identifier a fresh series is keyed by.
func NewSeriesID() string {
	return ulid.Make().String()
}

// Seed builds the first protocol of a new series for a project. The caller
// supplies the number (memos carry none) and saves the result.
func Seed(project *models.Project, protocolType, seriesName string, number int, author models.Author, today time.Time) *models.Protocol {
	title := seriesName
	if title == "" {
		title = protocolType
	}
	return &models.Protocol{
		ProjectID:           project.ID,
		SeriesID:            NewSeriesID(),
		SeriesName:          seriesName,
		Title:               title,
		Type:                protocolType,
		Number:              number,
		Date:                today.Format("2006-01-02"),
		Tenant:              project.Tenant,
		Landlord:            project.Owner,
		Author:              author,
		Participants:        []models.Participant{},
		Structure:           models.DefaultStructure(protocolType),
		Points:              []models.Point{},
		Attachments:         []models.Attachment{},
		CustomAbbreviations: []models.Abbreviation{},
	}
}

// Continue builds the next revision of a series from its latest protocol.
//
// Points that were already done in the predecessor's predecessor are pruned;
// everything else is carried over with its id intact, marked as no longer
// new, and frozen into a snapshot so later edits show up as amendments.
// Attachments never carry over.
func Continue(prior *models.Protocol, number int, today time.Time) *models.Protocol {
	points := make([]models.Point, 0, len(prior.Points))
	for _, pt := range prior.Points {
		if pt.DoneLastProtocol && pt.Done {
			continue
		}
		carried := models.ClonePoint(pt)
		carried.IsNew = false
		carried.DoneLastProtocol = pt.Done
		carried.Snapshot = &models.PointSnapshot{Content: pt.Content, Deadline: pt.Deadline}
		points = append(points, carried)
	}

	return &models.Protocol{
		ProjectID:           prior.ProjectID,
		SeriesID:            prior.SeriesID,
		SeriesName:          prior.SeriesName,
		Title:               prior.Title,
		Type:                prior.Type,
		Number:              number,
		Date:                today.Format("2006-01-02"),
		Tenant:              prior.Tenant,
		Landlord:            prior.Landlord,
		Author:              prior.Author,
		Participants:        models.CloneParticipants(prior.Participants),
		Structure:           models.CloneStructure(prior.Structure),
		Points:              points,
		Attachments:         []models.Attachment{},
		CustomAbbreviations: models.CloneAbbreviations(prior.CustomAbbreviations),
	}
}

// Duplicate builds an independent copy of a protocol under a new name. The
// copy starts a series of its own at number 1; snapshots are stripped so the
// duplicate reads as an original document, not an amendment of one.
func Duplicate(source *models.Protocol, newName string, today time.Time) *models.Protocol {
	dup := models.CloneProtocol(source)
	dup.ID = uuid.Nil
	dup.SeriesID = NewSeriesID()
	dup.SeriesName = newName
	dup.Title = newName
	dup.Number = 1
	dup.Date = today.Format("2006-01-02")
	dup.DeletedAt = nil
	dup.CreatedAt = time.Time{}
	dup.UpdatedAt = time.Time{}

	for i := range dup.Points {
		dup.Points[i].Snapshot = nil
		dup.Points[i].IsNew = false
		dup.Points[i].DoneLastProtocol = false
	}
	return dup
}
