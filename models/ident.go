// ABOUTME: Identifier generation for points and attachments
// ABOUTME: Implements the display id grammar and per-bucket sequencing
package models

import (
	"fmt"
	"strings"
)

// PointID builds a point id for a serial protocol.
// With a subchapter: "#07|B.2.03". Without: "#07|A.01". The subchapter part
// is the numeric suffix of the subchapter id ("B.2" -> "2").
func PointID(protocolNumber int, chapter, subchapterID string, seq int) string {
	if subchapterID != "" {
		subNum := subchapterID
		if i := strings.IndexByte(subchapterID, '.'); i >= 0 {
			subNum = subchapterID[i+1:]
		}
		return fmt.Sprintf("#%02d|%s.%s.%02d", protocolNumber, chapter, subNum, seq)
	}
	return fmt.Sprintf("#%02d|%s.%02d", protocolNumber, chapter, seq)
}

// MemoPointID builds a point id for an Aktennotiz. Memos carry no protocol
// number; the preamble and next-steps chapters keep their letters, interior
// sections use their ordinal: "P.01", "1.02", "N.01".
func MemoPointID(chapter string, sectionNumber, seq int) string {
	prefix := chapter
	if chapter != "P" && chapter != "N" {
		prefix = fmt.Sprintf("%d", sectionNumber)
	}
	return fmt.Sprintf("%s.%02d", prefix, seq)
}

// NewPointID picks the right id form for the protocol and anchor.
func (p *Protocol) NewPointID(chapter, subchapterID string, seq int) string {
	if p.IsMemo() {
		return MemoPointID(chapter, p.Structure.SectionNumber(chapter), seq)
	}
	return PointID(p.Number, chapter, subchapterID, seq)
}

// NextPointSeq returns the sequence number for the next point in the
// (chapter, subchapter) bucket: points created in earlier protocols of the
// series do not count, so ids stay unique across the series.
func (p *Protocol) NextPointSeq(chapter, subchapterID string) int {
	n := 0
	for _, pt := range p.Points {
		if pt.CreatedInProtocol == p.Number && pt.Chapter == chapter && pt.Subchapter == subchapterID {
			n++
		}
	}
	return n + 1
}

// AttachmentID builds an attachment id: "#12.01". Attachment ids are
// resequenced after deletion, unlike point ids.
func AttachmentID(protocolNumber, seq int) string {
	return fmt.Sprintf("#%02d.%02d", protocolNumber, seq)
}
