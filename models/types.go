// ABOUTME: Data models for protocol documents and their projects
// ABOUTME: Defines Project, Protocol, Point, Attachment and the structure tree
package models

import (
	"time"

	"github.com/google/uuid"
)

// Protocol types. Aktennotiz is a memo: it carries no series number.
const (
	TypePlanung        = "JFx Planung"
	TypeMieter         = "JFx Mieter"
	TypeBauherr        = "JFx Bauherr"
	TypeBaubesprechung = "Baubesprechung"
	TypeAktennotiz     = "Aktennotiz"
)

// Point categories. CategoryApprovalLegacy appears in old documents and is
// normalized to CategoryApproval on read.
const (
	CategoryTask           = "Aufgabe"
	CategoryInfo           = "Info"
	CategoryDecision       = "Festlegung"
	CategoryApproval       = "Freigabe erfordl"
	CategoryApprovalLegacy = "Freigabe"
)

// ProtocolTypes lists all valid protocol types.
var ProtocolTypes = []string{TypePlanung, TypeMieter, TypeBauherr, TypeBaubesprechung, TypeAktennotiz}

type Project struct {
	ID        uuid.UUID  `json:"id"`
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	Tenant    string     `json:"tenant,omitempty"`
	Owner     string     `json:"owner,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

type Protocol struct {
	ID                  uuid.UUID      `json:"id"`
	ProjectID           uuid.UUID      `json:"projectId"`
	SeriesID            string         `json:"seriesId,omitempty"`
	SeriesName          string         `json:"seriesName"`
	Title               string         `json:"title,omitempty"`
	Type                string         `json:"type"`
	Number              int            `json:"number"` // 0 for Aktennotiz
	Date                string         `json:"date,omitempty"`
	Time                string         `json:"time,omitempty"`
	Location            string         `json:"location,omitempty"`
	Tenant              string         `json:"tenant,omitempty"`
	Landlord            string         `json:"landlord,omitempty"`
	Author              Author         `json:"author"`
	Participants        []Participant  `json:"participants"`
	Structure           Structure      `json:"structure"`
	Points              []Point        `json:"points"`
	Attachments         []Attachment   `json:"attachments"`
	CustomAbbreviations []Abbreviation `json:"customAbbreviations"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
	DeletedAt           *time.Time     `json:"deletedAt,omitempty"`
}

// IsMemo reports whether the protocol is an Aktennotiz.
func (p *Protocol) IsMemo() bool {
	return p.Type == TypeAktennotiz
}

// Structure is the ordered chapter tree of a protocol. Order is significant
// and preserved through storage and backups.
type Structure []Chapter

type Chapter struct {
	Key         string       `json:"key"`
	Label       string       `json:"label"`
	Subchapters []Subchapter `json:"subchapters"`
}

type Subchapter struct {
	ID     string  `json:"id"` // e.g. "B.1"
	Label  string  `json:"label"`
	Topics []Topic `json:"topics"`
}

type Topic struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Point is a single tracked item. Its ID is assigned at creation and never
// changes, even when the point moves within its chapter or survives into the
// next protocol of the series.
type Point struct {
	ID                string         `json:"id"`
	Chapter           string         `json:"chapter"`
	Subchapter        string         `json:"subchapter,omitempty"`
	Topic             string         `json:"topic,omitempty"`
	Content           string         `json:"content"`
	Category          string         `json:"category"`
	Responsible       string         `json:"responsible"`
	Deadline          string         `json:"deadline"`
	Done              bool           `json:"done"`
	IsNew             bool           `json:"isNew"`
	DoneLastProtocol  bool           `json:"doneLastProtocol"`
	CreatedInProtocol int            `json:"createdInProtocol"`
	Snapshot          *PointSnapshot `json:"snapshot,omitempty"`
}

// PointSnapshot freezes content and deadline as they stood when the point was
// carried over from the previous protocol. Amendments are derived by
// comparison and never stored.
type PointSnapshot struct {
	Content  string `json:"content"`
	Deadline string `json:"deadline"`
}

// ContentAmended reports whether the content changed since carry-over.
func (p *Point) ContentAmended() bool {
	return p.Snapshot != nil && p.Content != p.Snapshot.Content
}

// DeadlineAmended reports whether the deadline changed since carry-over.
func (p *Point) DeadlineAmended() bool {
	return p.Snapshot != nil && p.Deadline != p.Snapshot.Deadline
}

// NormalizedCategory maps the legacy approval label onto its current form.
func (p *Point) NormalizedCategory() string {
	if p.Category == CategoryApprovalLegacy {
		return CategoryApproval
	}
	return p.Category
}

// CategoryLocksAssignment reports whether the category forbids a responsible
// party and deadline (informational categories).
func CategoryLocksAssignment(category string) bool {
	return category == CategoryInfo || category == CategoryDecision
}

type Attachment struct {
	ID       string `json:"id"` // e.g. "#12.01"
	Caption  string `json:"caption"`
	FileName string `json:"fileName,omitempty"`
	FileType string `json:"fileType,omitempty"`
	FileData []byte `json:"fileData,omitempty"`
	// FileDataBase64 marks exported payloads whose fileData field holds a
	// base64 string. Set by backup export, cleared on import.
	FileDataBase64 bool `json:"_fileDataBase64,omitempty"`
}

// MaxAttachmentSize is the hard cap for attachment payloads.
const MaxAttachmentSize = 2 * 1024 * 1024

type Participant struct {
	Name      string `json:"name"`
	Company   string `json:"company"`
	Abbr      string `json:"abbr"`
	Email     string `json:"email,omitempty"`
	Attended  bool   `json:"attended"`
	InDistrib bool   `json:"inDistrib"`
}

type Author struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Company   string `json:"company"`
	Date      string `json:"date,omitempty"`
}

type Abbreviation struct {
	Abbr string `json:"abbr"`
	Name string `json:"name"`
}
