// ABOUTME: Reducer applying document actions to a protocol in memory
// ABOUTME: Validates each action fully before mutating; persistence is the caller's job
package lifecycle

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/oscarlimaalphafox/KADRA/models"
)

// Apply executes one action against the protocol. On error the document is
// untouched. The caller persists the protocol afterwards.
func Apply(p *models.Protocol, action Action) error {
	switch a := action.(type) {
	case AddPoint:
		return addPoint(p, a)
	case AddTopic:
		return addTopic(p, a)
	case SetPointContent:
		return withPoint(p, a.ID, func(pt *models.Point) error {
			pt.Content = a.Content
			return nil
		})
	case SetPointCategory:
		return setPointCategory(p, a)
	case SetPointResponsible:
		return withPoint(p, a.ID, func(pt *models.Point) error {
			if models.CategoryLocksAssignment(pt.Category) {
				return &models.ValidationError{Field: "responsible", Message: "Kategorie erlaubt keine Zuständigkeit"}
			}
			pt.Responsible = a.Responsible
			return nil
		})
	case SetPointDeadline:
		return withPoint(p, a.ID, func(pt *models.Point) error {
			if models.CategoryLocksAssignment(pt.Category) {
				return &models.ValidationError{Field: "deadline", Message: "Kategorie erlaubt keinen Termin"}
			}
			pt.Deadline = a.Deadline
			return nil
		})
	case SetPointDone:
		return withPoint(p, a.ID, func(pt *models.Point) error {
			pt.Done = a.Done
			return nil
		})
	case DeletePoint:
		return deletePoint(p, a)
	case MovePoint:
		return movePoint(p, a)
	case AddChapter:
		return addChapter(p, a)
	case RenameChapter:
		ch := p.Structure.Chapter(a.Key)
		if ch == nil {
			return &models.NotFoundError{Entity: "chapter", ID: a.Key}
		}
		ch.Label = a.Label
		return nil
	case DeleteChapter:
		return deleteChapter(p, a)
	case AddSubchapter:
		return addSubchapter(p, a)
	case RenameSubchapter:
		sub := p.Structure.Subchapter(a.ID)
		if sub == nil {
			return &models.NotFoundError{Entity: "subchapter", ID: a.ID}
		}
		sub.Label = a.Label
		return nil
	case DeleteSubchapter:
		return deleteSubchapter(p, a)
	case RenameTopic:
		return renameTopic(p, a)
	case DeleteTopic:
		return deleteTopic(p, a)
	case AddAttachment:
		return addAttachment(p, a)
	case SetAttachmentCaption:
		return withAttachment(p, a.ID, func(at *models.Attachment) error {
			at.Caption = a.Caption
			return nil
		})
	case ReplaceAttachmentFile:
		if err := models.ValidateAttachmentSize(a.FileData); err != nil {
			return err
		}
		return withAttachment(p, a.ID, func(at *models.Attachment) error {
			at.FileName = a.FileName
			at.FileType = a.FileType
			at.FileData = a.FileData
			return nil
		})
	case RemoveAttachmentFile:
		return withAttachment(p, a.ID, func(at *models.Attachment) error {
			at.FileName = ""
			at.FileType = ""
			at.FileData = nil
			return nil
		})
	case DeleteAttachment:
		return deleteAttachment(p, a)
	case AddParticipant:
		p.Participants = append(p.Participants, models.Participant{
			Name: a.Name, Company: a.Company, Abbr: a.Abbr, Email: a.Email,
			Attended: a.Attended, InDistrib: a.InDistrib,
		})
		return nil
	case RemoveParticipant:
		if a.Index < 0 || a.Index >= len(p.Participants) {
			return &models.NotFoundError{Entity: "participant", ID: fmt.Sprintf("%d", a.Index)}
		}
		p.Participants = append(p.Participants[:a.Index], p.Participants[a.Index+1:]...)
		return nil
	case AddAbbreviation:
		if a.Abbr == "" {
			return &models.ValidationError{Field: "abbr", Message: "Kürzel darf nicht leer sein"}
		}
		p.CustomAbbreviations = append(p.CustomAbbreviations, models.Abbreviation{Abbr: a.Abbr, Name: a.Name})
		return nil
	case RemoveAbbreviation:
		for i, ab := range p.CustomAbbreviations {
			if ab.Abbr == a.Abbr {
				p.CustomAbbreviations = append(p.CustomAbbreviations[:i], p.CustomAbbreviations[i+1:]...)
				return nil
			}
		}
		return &models.NotFoundError{Entity: "abbreviation", ID: a.Abbr}
	case SetSeriesName:
		if p.Number > 1 {
			return &models.ValidationError{Field: "seriesName", Message: "Serienname wird im ersten Protokoll festgelegt"}
		}
		p.SeriesName = a.Name
		p.Title = a.Name
		return nil
	default:
		return &models.ValidationError{Message: fmt.Sprintf("unbekannte Aktion %T", action)}
	}
}

// nextFreePointID assigns the count-based sequence for the bucket, then
// steps past ids still held by surviving points so a deletion can never make
// two live points share an id.
func nextFreePointID(p *models.Protocol, chapter, subchapter string) string {
	seq := p.NextPointSeq(chapter, subchapter)
	id := p.NewPointID(chapter, subchapter, seq)
	for findPoint(p, id) != nil {
		seq++
		id = p.NewPointID(chapter, subchapter, seq)
	}
	return id
}

func findPoint(p *models.Protocol, id string) *models.Point {
	for i := range p.Points {
		if p.Points[i].ID == id {
			return &p.Points[i]
		}
	}
	return nil
}

func withPoint(p *models.Protocol, id string, fn func(*models.Point) error) error {
	pt := findPoint(p, id)
	if pt == nil {
		return &models.NotFoundError{Entity: "point", ID: id}
	}
	return fn(pt)
}

func withAttachment(p *models.Protocol, id string, fn func(*models.Attachment) error) error {
	for i := range p.Attachments {
		if p.Attachments[i].ID == id {
			return fn(&p.Attachments[i])
		}
	}
	return &models.NotFoundError{Entity: "attachment", ID: id}
}

func addPoint(p *models.Protocol, a AddPoint) error {
	ch := p.Structure.Chapter(a.Chapter)
	if ch == nil {
		return &models.NotFoundError{Entity: "chapter", ID: a.Chapter}
	}
	if a.Subchapter == "" && len(ch.Subchapters) > 0 {
		return &models.ValidationError{Field: "subchapter", Message: "Kapitel hat Unterkapitel, bitte eines auswählen"}
	}
	if a.Subchapter != "" {
		sub := subchapterOf(ch, a.Subchapter)
		if sub == nil {
			return &models.NotFoundError{Entity: "subchapter", ID: a.Subchapter}
		}
		if a.Topic != "" && topicIn(sub, a.Topic) == nil {
			return &models.NotFoundError{Entity: "topic", ID: a.Topic}
		}
	} else if a.Topic != "" {
		return &models.ValidationError{Field: "topic", Message: "Thema erfordert ein Unterkapitel"}
	}

	p.Points = append(p.Points, models.Point{
		ID:                nextFreePointID(p, a.Chapter, a.Subchapter),
		Chapter:           a.Chapter,
		Subchapter:        a.Subchapter,
		Topic:             a.Topic,
		Category:          models.CategoryTask,
		Done:              false,
		IsNew:             true,
		DoneLastProtocol:  false,
		CreatedInProtocol: p.Number,
	})
	return nil
}

func addTopic(p *models.Protocol, a AddTopic) error {
	if a.Label == "" {
		return &models.ValidationError{Field: "label", Message: "Thema braucht einen Namen"}
	}
	sub := p.Structure.Subchapter(a.Subchapter)
	if sub == nil {
		return &models.NotFoundError{Entity: "subchapter", ID: a.Subchapter}
	}

	chapterKey := chapterKeyOfSubchapter(a.Subchapter)
	topicID := uuid.New().String()
	sub.Topics = append(sub.Topics, models.Topic{ID: topicID, Label: a.Label})

	p.Points = append(p.Points, models.Point{
		ID:                nextFreePointID(p, chapterKey, a.Subchapter),
		Chapter:           chapterKey,
		Subchapter:        a.Subchapter,
		Topic:             topicID,
		Category:          models.CategoryTask,
		IsNew:             true,
		CreatedInProtocol: p.Number,
	})
	return nil
}

func setPointCategory(p *models.Protocol, a SetPointCategory) error {
	category := a.Category
	if category == models.CategoryApprovalLegacy {
		category = models.CategoryApproval
	}
	switch category {
	case models.CategoryTask, models.CategoryInfo, models.CategoryDecision, models.CategoryApproval:
	default:
		return &models.ValidationError{Field: "category", Message: fmt.Sprintf("unbekannte Kategorie %q", a.Category)}
	}
	return withPoint(p, a.ID, func(pt *models.Point) error {
		pt.Category = category
		if models.CategoryLocksAssignment(category) {
			pt.Responsible = ""
			pt.Deadline = ""
		}
		return nil
	})
}

func deletePoint(p *models.Protocol, a DeletePoint) error {
	for i := range p.Points {
		if p.Points[i].ID == a.ID {
			p.Points = append(p.Points[:i], p.Points[i+1:]...)
			return nil
		}
	}
	return &models.NotFoundError{Entity: "point", ID: a.ID}
}

func movePoint(p *models.Protocol, a MovePoint) error {
	if a.ID == a.Target {
		return nil
	}
	src := findPoint(p, a.ID)
	dst := findPoint(p, a.Target)
	if src == nil {
		return &models.NotFoundError{Entity: "point", ID: a.ID}
	}
	if dst == nil {
		return &models.NotFoundError{Entity: "point", ID: a.Target}
	}
	if src.Chapter != dst.Chapter || src.Subchapter != dst.Subchapter {
		return &models.ValidationError{Field: "target", Message: "Punkte können nur innerhalb ihres Abschnitts verschoben werden"}
	}

	targetTopic := dst.Topic

	srcIdx := -1
	for i := range p.Points {
		if p.Points[i].ID == a.ID {
			srcIdx = i
			break
		}
	}
	moved := p.Points[srcIdx]
	p.Points = append(p.Points[:srcIdx], p.Points[srcIdx+1:]...)

	insertIdx := len(p.Points)
	for i := range p.Points {
		if p.Points[i].ID == a.Target {
			insertIdx = i
			break
		}
	}
	if a.After {
		insertIdx++
	}

	moved.Topic = targetTopic
	p.Points = append(p.Points, models.Point{})
	copy(p.Points[insertIdx+1:], p.Points[insertIdx:])
	p.Points[insertIdx] = moved
	return nil
}

func addChapter(p *models.Protocol, a AddChapter) error {
	if a.Label == "" {
		return &models.ValidationError{Field: "label", Message: "Kapitel braucht einen Namen"}
	}
	key, err := p.Structure.NextChapterKey()
	if err != nil {
		return err
	}
	p.Structure = append(p.Structure, models.Chapter{Key: key, Label: a.Label, Subchapters: []models.Subchapter{}})
	return nil
}

func deleteChapter(p *models.Protocol, a DeleteChapter) error {
	ch := p.Structure.Chapter(a.Key)
	if ch == nil {
		return &models.NotFoundError{Entity: "chapter", ID: a.Key}
	}
	if models.IsReservedChapter(a.Key) {
		return &models.StructureError{Message: fmt.Sprintf("Kapitel %s gehört zur Grundstruktur und kann nicht gelöscht werden", a.Key)}
	}
	if ch.HasContent(p.Points) {
		return &models.StructureError{Message: fmt.Sprintf("Kapitel %s enthält Themen oder Punkte", a.Key)}
	}
	for i := range p.Structure {
		if p.Structure[i].Key == a.Key {
			p.Structure = append(p.Structure[:i], p.Structure[i+1:]...)
			return nil
		}
	}
	return nil
}

func addSubchapter(p *models.Protocol, a AddSubchapter) error {
	if a.Label == "" {
		return &models.ValidationError{Field: "label", Message: "Unterkapitel braucht einen Namen"}
	}
	ch := p.Structure.Chapter(a.Chapter)
	if ch == nil {
		return &models.NotFoundError{Entity: "chapter", ID: a.Chapter}
	}
	ch.Subchapters = append(ch.Subchapters, models.Subchapter{
		ID: ch.NextSubchapterID(), Label: a.Label, Topics: []models.Topic{},
	})
	return nil
}

func deleteSubchapter(p *models.Protocol, a DeleteSubchapter) error {
	for i := range p.Structure {
		subs := p.Structure[i].Subchapters
		for j := range subs {
			if subs[j].ID == a.ID {
				p.Structure[i].Subchapters = append(subs[:j], subs[j+1:]...)
				removePointsWhere(p, func(pt *models.Point) bool { return pt.Subchapter == a.ID })
				return nil
			}
		}
	}
	return &models.NotFoundError{Entity: "subchapter", ID: a.ID}
}

func renameTopic(p *models.Protocol, a RenameTopic) error {
	for i := range p.Structure {
		for j := range p.Structure[i].Subchapters {
			topics := p.Structure[i].Subchapters[j].Topics
			for k := range topics {
				if topics[k].ID == a.ID {
					topics[k].Label = a.Label
					return nil
				}
			}
		}
	}
	return &models.NotFoundError{Entity: "topic", ID: a.ID}
}

func deleteTopic(p *models.Protocol, a DeleteTopic) error {
	for i := range p.Structure {
		for j := range p.Structure[i].Subchapters {
			topics := p.Structure[i].Subchapters[j].Topics
			for k := range topics {
				if topics[k].ID == a.ID {
					p.Structure[i].Subchapters[j].Topics = append(topics[:k], topics[k+1:]...)
					removePointsWhere(p, func(pt *models.Point) bool { return pt.Topic == a.ID })
					return nil
				}
			}
		}
	}
	return &models.NotFoundError{Entity: "topic", ID: a.ID}
}

func addAttachment(p *models.Protocol, a AddAttachment) error {
	if err := models.ValidateAttachmentSize(a.FileData); err != nil {
		return err
	}
	p.Attachments = append(p.Attachments, models.Attachment{
		ID:       models.AttachmentID(p.Number, len(p.Attachments)+1),
		Caption:  a.Caption,
		FileName: a.FileName,
		FileType: a.FileType,
		FileData: a.FileData,
	})
	return nil
}

func deleteAttachment(p *models.Protocol, a DeleteAttachment) error {
	idx := -1
	for i := range p.Attachments {
		if p.Attachments[i].ID == a.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return &models.NotFoundError{Entity: "attachment", ID: a.ID}
	}
	p.Attachments = append(p.Attachments[:idx], p.Attachments[idx+1:]...)
	// Attachment ids are positional and renumber after deletion.
	for i := range p.Attachments {
		p.Attachments[i].ID = models.AttachmentID(p.Number, i+1)
	}
	return nil
}

func removePointsWhere(p *models.Protocol, match func(*models.Point) bool) {
	kept := p.Points[:0]
	for i := range p.Points {
		if !match(&p.Points[i]) {
			kept = append(kept, p.Points[i])
		}
	}
	p.Points = kept
}

func subchapterOf(ch *models.Chapter, id string) *models.Subchapter {
	for i := range ch.Subchapters {
		if ch.Subchapters[i].ID == id {
			return &ch.Subchapters[i]
		}
	}
	return nil
}

func topicIn(sub *models.Subchapter, id string) *models.Topic {
	for i := range sub.Topics {
		if sub.Topics[i].ID == id {
			return &sub.Topics[i]
		}
	}
	return nil
}

func chapterKeyOfSubchapter(subID string) string {
	for i := 0; i < len(subID); i++ {
		if subID[i] == '.' {
			return subID[:i]
		}
	}
	return subID
}
