// ABOUTME: Document rendering for the protocol TUI
// ABOUTME: Styles each display row by its derived flags
package tui

import (
	"fmt"
	"strings"

	"github.com/oscarlimaalphafox/KADRA/render"
)

func (m Model) View() string {
	switch m.viewMode {
	case ViewEdit:
		return m.renderEditView()
	case ViewConfirmDelete:
		return m.renderConfirmDeleteView()
	}
	return m.renderDocumentView()
}

func (m Model) renderDocumentView() string {
	var s strings.Builder

	title := m.protocol.SeriesName
	if title == "" {
		title = m.protocol.Type
	}
	if !m.protocol.IsMemo() {
		title = fmt.Sprintf("%s Nr. %02d", title, m.protocol.Number)
	}
	s.WriteString(titleStyle.Render(title))
	s.WriteString("\n")
	s.WriteString(m.renderFilterLine())
	s.WriteString("\n\n")

	visible := m.visibleWindow()
	for i, row := range m.rows {
		if i < visible.start || i >= visible.end {
			continue
		}
		line := m.renderRow(&row)
		if i == m.cursor {
			line = cursorStyle.Render(line)
		}
		s.WriteString(line)
		s.WriteString("\n")
	}

	s.WriteString("\n")
	if m.err != nil {
		s.WriteString(errorStyle.Render(m.err.Error()))
		s.WriteString("\n")
	} else if m.status != "" {
		s.WriteString(statusStyle.Render(m.status))
		s.WriteString("\n")
	}
	s.WriteString(helpStyle.Render("↑/↓ bewegen · enter einklappen · leertaste erledigt · e bearbeiten · x löschen · d/o/n filter · q beenden"))
	return s.String()
}

func (m Model) renderFilterLine() string {
	var active []string
	if m.vs.Filters.HideDone {
		active = append(active, "erledigte ausgeblendet")
	}
	if m.vs.Filters.OnlyOverdue {
		active = append(active, "nur überfällige")
	}
	if m.vs.Filters.OnlyNew {
		active = append(active, "nur neue")
	}
	if len(active) == 0 {
		return helpStyle.Render("alle Punkte")
	}
	return helpStyle.Render("Filter: " + strings.Join(active, ", "))
}

type window struct {
	start, end int
}

// visibleWindow keeps the cursor inside the row viewport.
func (m Model) visibleWindow() window {
	avail := m.height - 8
	if avail < 5 {
		avail = 5
	}
	if len(m.rows) <= avail {
		return window{0, len(m.rows)}
	}
	start := m.cursor - avail/2
	if start < 0 {
		start = 0
	}
	end := start + avail
	if end > len(m.rows) {
		end = len(m.rows)
		start = end - avail
	}
	return window{start, end}
}

func (m Model) renderRow(row *render.Row) string {
	switch row.Kind {
	case render.RowChapter:
		label := fmt.Sprintf(" %s - %s ", row.Chapter.Key, row.Chapter.Label)
		if m.vs.ChapterCollapsed(row.Chapter.Key) {
			label += "[+] "
		}
		return chapterStyle.Render(label)

	case render.RowSubchapter:
		label := fmt.Sprintf("  %s - %s ", row.Subchapter.ID, row.Subchapter.Label)
		if m.vs.SubchapterCollapsed(row.Subchapter.ID) {
			label += "[+] "
		}
		return subchapterStyle.Render(label)

	case render.RowTopic:
		return topicStyle.Render("    " + row.Topic.Label)

	case render.RowPoint:
		return m.renderPointRow(row.Point)
	}
	return ""
}

func (m Model) renderPointRow(pr *render.PointRow) string {
	pt := pr.Point

	check := "[ ]"
	if pr.Done {
		check = "[x]"
	}

	content := strings.ReplaceAll(pt.Content, "\n", " ⏎ ")
	maxLen := m.width - 30
	if maxLen < 20 {
		maxLen = 20
	}
	if len(content) > maxLen {
		content = content[:maxLen-3] + "..."
	}

	deadline := pt.Deadline
	if deadline != "" {
		if pr.Overdue {
			deadline = overdueStyle.Render(deadline)
		} else if pr.DeadlineAmended && !pr.Done {
			deadline = amendedStyle.Render(deadline)
		}
		deadline = " ⏱ " + deadline
	}

	switch {
	case pr.Done:
		content = doneStyle.Render(content)
	case pr.ContentAmended:
		content = amendedStyle.Render(content)
	}
	if pr.IsNew && !pr.Done {
		content = newStyle.Render(content)
	}

	responsible := ""
	if pt.Responsible != "" {
		responsible = " → " + pt.Responsible
	}

	return fmt.Sprintf("    %s %s  %s%s%s", check, pt.ID, content, responsible, deadline)
}

func (m Model) renderEditView() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("Punkt bearbeiten: " + m.editTarget))
	s.WriteString("\n\n")
	s.WriteString(m.input.View())
	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("enter speichern · esc abbrechen"))
	return s.String()
}

func (m Model) renderConfirmDeleteView() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("Punkt löschen"))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("Punkt %s wirklich löschen? Die ID wird nicht neu vergeben.\n\n", m.deleteTarget))
	s.WriteString(helpStyle.Render("j löschen · esc abbrechen"))
	return s.String()
}
