// ABOUTME: Explicit deep-clone functions for document entities
// ABOUTME: Continuation and duplication rely on fully independent copies
package models

// ClonePoint returns a deep copy of a point, including its snapshot.
func ClonePoint(p Point) Point {
	out := p
	if p.Snapshot != nil {
		snap := *p.Snapshot
		out.Snapshot = &snap
	}
	return out
}

// ClonePoints deep-copies a point slice. A nil input yields an empty slice.
func ClonePoints(points []Point) []Point {
	out := make([]Point, 0, len(points))
	for _, pt := range points {
		out = append(out, ClonePoint(pt))
	}
	return out
}

// CloneStructure deep-copies the chapter tree.
func CloneStructure(s Structure) Structure {
	out := make(Structure, 0, len(s))
	for _, ch := range s {
		subs := make([]Subchapter, 0, len(ch.Subchapters))
		for _, sub := range ch.Subchapters {
			topics := make([]Topic, len(sub.Topics))
			copy(topics, sub.Topics)
			subs = append(subs, Subchapter{ID: sub.ID, Label: sub.Label, Topics: topics})
		}
		out = append(out, Chapter{Key: ch.Key, Label: ch.Label, Subchapters: subs})
	}
	return out
}

// CloneParticipants copies the roster.
func CloneParticipants(ps []Participant) []Participant {
	out := make([]Participant, len(ps))
	copy(out, ps)
	return out
}

// CloneAbbreviations copies the custom abbreviation list.
func CloneAbbreviations(as []Abbreviation) []Abbreviation {
	out := make([]Abbreviation, len(as))
	copy(out, as)
	return out
}

// CloneAttachment deep-copies an attachment including its file bytes.
func CloneAttachment(a Attachment) Attachment {
	out := a
	if a.FileData != nil {
		out.FileData = make([]byte, len(a.FileData))
		copy(out.FileData, a.FileData)
	}
	return out
}

// CloneAttachments deep-copies an attachment slice.
func CloneAttachments(as []Attachment) []Attachment {
	out := make([]Attachment, 0, len(as))
	for _, a := range as {
		out = append(out, CloneAttachment(a))
	}
	return out
}

// CloneProtocol deep-copies a whole protocol document. The copy shares no
// mutable state with the original.
func CloneProtocol(p *Protocol) *Protocol {
	out := *p
	out.Participants = CloneParticipants(p.Participants)
	out.Structure = CloneStructure(p.Structure)
	out.Points = ClonePoints(p.Points)
	out.Attachments = CloneAttachments(p.Attachments)
	out.CustomAbbreviations = CloneAbbreviations(p.CustomAbbreviations)
	if p.DeletedAt != nil {
		t := *p.DeletedAt
		out.DeletedAt = &t
	}
	return &out
}
