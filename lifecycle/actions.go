// ABOUTME: Tagged action variants for protocol document mutations
// ABOUTME: Every edit goes through the single Apply reducer
package lifecycle

// Action is one document mutation. Each variant carries exactly the data its
// reducer case needs; Apply validates before touching the document.
type Action interface {
	isAction()
}

// AddPoint creates an empty task point under the given anchor. Chapters that
// have subchapters require one; the topic is optional.
type AddPoint struct {
	Chapter    string
	Subchapter string
	Topic      string
}

// AddTopic creates a topic inside a subchapter together with its first
// point.
type AddTopic struct {
	Subchapter string
	Label      string
}

// SetPointContent replaces a point's content text.
type SetPointContent struct {
	ID      string
	Content string
}

// SetPointCategory changes the category. Informational categories clear the
// responsible party and deadline as a side effect.
type SetPointCategory struct {
	ID       string
	Category string
}

// SetPointResponsible sets the responsible abbreviation list. Rejected for
// categories that lock assignment.
type SetPointResponsible struct {
	ID          string
	Responsible string
}

// SetPointDeadline sets the free-text deadline. Rejected for categories that
// lock assignment.
type SetPointDeadline struct {
	ID       string
	Deadline string
}

// SetPointDone marks a point done or reopens it.
type SetPointDone struct {
	ID   string
	Done bool
}

// DeletePoint removes a point. Its id is never reused.
type DeletePoint struct {
	ID string
}

// MovePoint reorders a point within its (chapter, subchapter) bucket,
// inserting before or after the target point. The moved point adopts the
// target's topic; its id stays untouched.
type MovePoint struct {
	ID     string
	Target string
	After  bool
}

// AddChapter appends a user chapter under the lowest free letter F-Z.
type AddChapter struct {
	Label string
}

// RenameChapter relabels a chapter. The key stays fixed.
type RenameChapter struct {
	Key   string
	Label string
}

// DeleteChapter removes an empty user chapter. Default chapters and chapters
// with content are protected.
type DeleteChapter struct {
	Key string
}

// AddSubchapter appends a subchapter with the next numeric id.
type AddSubchapter struct {
	Chapter string
	Label   string
}

// RenameSubchapter relabels a subchapter.
type RenameSubchapter struct {
	ID    string
	Label string
}

// DeleteSubchapter removes a subchapter and every point anchored to it.
type DeleteSubchapter struct {
	ID string
}

// RenameTopic relabels a topic.
type RenameTopic struct {
	ID    string
	Label string
}

// DeleteTopic removes a topic and every point assigned to it.
type DeleteTopic struct {
	ID string
}

// AddAttachment appends an attachment row, optionally with a file payload.
type AddAttachment struct {
	Caption  string
	FileName string
	FileType string
	FileData []byte
}

// SetAttachmentCaption changes an attachment's caption.
type SetAttachmentCaption struct {
	ID      string
	Caption string
}

// ReplaceAttachmentFile swaps the file payload of an attachment.
type ReplaceAttachmentFile struct {
	ID       string
	FileName string
	FileType string
	FileData []byte
}

// RemoveAttachmentFile drops the payload but keeps the attachment row.
type RemoveAttachmentFile struct {
	ID string
}

// DeleteAttachment removes an attachment; the remaining ones are
// resequenced.
type DeleteAttachment struct {
	ID string
}

// AddParticipant appends to the roster.
type AddParticipant struct {
	Name      string
	Company   string
	Abbr      string
	Email     string
	Attended  bool
	InDistrib bool
}

// RemoveParticipant drops the roster entry at the given index.
type RemoveParticipant struct {
	Index int
}

// AddAbbreviation appends a custom abbreviation for the directory section.
type AddAbbreviation struct {
	Abbr string
	Name string
}

// RemoveAbbreviation drops a custom abbreviation.
type RemoveAbbreviation struct {
	Abbr string
}

// SetSeriesName renames the series. Locked once the series has successors;
// the name is fixed in the first protocol.
type SetSeriesName struct {
	Name string
}

func (AddPoint) isAction()              {}
func (AddTopic) isAction()              {}
func (SetPointContent) isAction()       {}
func (SetPointCategory) isAction()      {}
func (SetPointResponsible) isAction()   {}
func (SetPointDeadline) isAction()      {}
func (SetPointDone) isAction()          {}
func (DeletePoint) isAction()           {}
func (MovePoint) isAction()             {}
func (AddChapter) isAction()            {}
func (RenameChapter) isAction()         {}
func (DeleteChapter) isAction()         {}
func (AddSubchapter) isAction()         {}
func (RenameSubchapter) isAction()      {}
func (DeleteSubchapter) isAction()      {}
func (RenameTopic) isAction()           {}
func (DeleteTopic) isAction()           {}
func (AddAttachment) isAction()         {}
func (SetAttachmentCaption) isAction()  {}
func (ReplaceAttachmentFile) isAction() {}
func (RemoveAttachmentFile) isAction()  {}
func (DeleteAttachment) isAction()      {}
func (AddParticipant) isAction()        {}
func (RemoveParticipant) isAction()     {}
func (AddAbbreviation) isAction()       {}
func (RemoveAbbreviation) isAction()    {}
func (SetSeriesName) isAction()         {}
