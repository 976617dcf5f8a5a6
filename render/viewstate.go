// ABOUTME: Explicit, serializable view state for document rendering
// ABOUTME: Collapse sets, point filters and the empty-chapter visibility filter
package render

import (
	"fmt"

	"github.com/oscarlimaalphafox/KADRA/models"
)

// Filters narrow the visible points. OnlyOverdue and OnlyNew are mutually
// exclusive; enabling one clears the other.
type Filters struct {
	HideDone    bool `json:"hideDone"`
	OnlyOverdue bool `json:"onlyOverdue"`
	OnlyNew     bool `json:"onlyNew"`
}

// ViewState holds everything about how a protocol is displayed, separate
// from the document itself. The zero value shows the full document.
type ViewState struct {
	HiddenChapters map[string]bool `json:"hiddenChapters,omitempty"`
	Collapsed      map[string]bool `json:"collapsed,omitempty"`
	Filters        Filters         `json:"filters"`
}

// NewViewState returns an empty view state.
func NewViewState() *ViewState {
	return &ViewState{
		HiddenChapters: map[string]bool{},
		Collapsed:      map[string]bool{},
	}
}

func chapterCollapseKey(key string) string   { return "chapter:" + key }
func subchapterCollapseKey(id string) string { return "subchapter:" + id }

// ToggleCollapseChapter flips a chapter's collapse state.
func (v *ViewState) ToggleCollapseChapter(key string) {
	v.toggle(chapterCollapseKey(key))
}

// ToggleCollapseSubchapter flips a subchapter's collapse state.
func (v *ViewState) ToggleCollapseSubchapter(id string) {
	v.toggle(subchapterCollapseKey(id))
}

func (v *ViewState) toggle(key string) {
	if v.Collapsed == nil {
		v.Collapsed = map[string]bool{}
	}
	if v.Collapsed[key] {
		delete(v.Collapsed, key)
	} else {
		v.Collapsed[key] = true
	}
}

// ChapterCollapsed reports whether a chapter's body is folded away.
func (v *ViewState) ChapterCollapsed(key string) bool {
	return v.Collapsed[chapterCollapseKey(key)]
}

// SubchapterCollapsed reports whether a subchapter's body is folded away.
func (v *ViewState) SubchapterCollapsed(id string) bool {
	return v.Collapsed[subchapterCollapseKey(id)]
}

// SetChapterHidden hides or shows a chapter. Only chapters without topics
// and points can be hidden.
func (v *ViewState) SetChapterHidden(p *models.Protocol, key string, hidden bool) error {
	ch := p.Structure.Chapter(key)
	if ch == nil {
		return &models.NotFoundError{Entity: "chapter", ID: key}
	}
	if hidden && ch.HasContent(p.Points) {
		return &models.ValidationError{Field: "chapter", Message: fmt.Sprintf("Kapitel %s enthält Inhalte und kann nicht ausgeblendet werden", key)}
	}
	if v.HiddenChapters == nil {
		v.HiddenChapters = map[string]bool{}
	}
	if hidden {
		v.HiddenChapters[key] = true
	} else {
		delete(v.HiddenChapters, key)
	}
	return nil
}

// SetHideDone switches the done filter.
func (v *ViewState) SetHideDone(on bool) {
	v.Filters.HideDone = on
}

// SetOnlyOverdue switches the overdue filter, dropping the new filter.
func (v *ViewState) SetOnlyOverdue(on bool) {
	v.Filters.OnlyOverdue = on
	if on {
		v.Filters.OnlyNew = false
	}
}

// SetOnlyNew switches the new filter, dropping the overdue filter.
func (v *ViewState) SetOnlyNew(on bool) {
	v.Filters.OnlyNew = on
	if on {
		v.Filters.OnlyOverdue = false
	}
}
