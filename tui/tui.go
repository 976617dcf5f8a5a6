// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Interactive protocol editor with collapse, filters and inline edits
package tui

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/oscarlimaalphafox/KADRA/db"
	"github.com/oscarlimaalphafox/KADRA/lifecycle"
	"github.com/oscarlimaalphafox/KADRA/models"
	"github.com/oscarlimaalphafox/KADRA/render"
)

// ViewMode represents the current TUI view.
type ViewMode int

const (
	ViewDocument ViewMode = iota
	ViewEdit
	ViewConfirmDelete
)

// Model is the main bubbletea model.
type Model struct {
	db       *sql.DB
	protocol *models.Protocol
	vs       *render.ViewState
	rows     []render.Row
	today    time.Time

	viewMode ViewMode
	cursor   int

	input      textinput.Model
	editTarget string

	deleteTarget string

	status string
	width  int
	height int
	err    error
}

// NewModel loads a protocol and builds the initial document view.
func NewModel(database *sql.DB, protocolID uuid.UUID) (Model, error) {
	protocol, err := db.GetProtocol(database, protocolID)
	if err != nil {
		return Model{}, err
	}

	input := textinput.New()
	input.CharLimit = 0
	input.Width = 60

	m := Model{
		db:       database,
		protocol: protocol,
		vs:       render.NewViewState(),
		today:    time.Now(),
		input:    input,
		width:    80,
		height:   24,
	}
	m.rebuild()
	return m, nil
}

// Run starts the TUI program.
func Run(database *sql.DB, protocolID uuid.UUID) error {
	m, err := NewModel(database, protocolID)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func (m *Model) rebuild() {
	m.rows = render.BuildRows(m.protocol, m.vs, m.today)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// mutate applies an action and persists the document. Failed actions leave
// the document untouched and surface the error in the status line.
func (m *Model) mutate(action lifecycle.Action) {
	if err := lifecycle.Apply(m.protocol, action); err != nil {
		m.err = err
		return
	}
	if err := db.SaveProtocol(m.db, m.protocol); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.rebuild()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.viewMode {
	case ViewEdit:
		return m.handleEditKeys(msg)
	case ViewConfirmDelete:
		return m.handleConfirmKeys(msg)
	}
	return m.handleDocumentKeys(msg)
}

func (m Model) handleDocumentKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case "c", "enter":
		row := m.currentRow()
		if row == nil {
			break
		}
		switch row.Kind {
		case render.RowChapter:
			m.vs.ToggleCollapseChapter(row.Chapter.Key)
			m.rebuild()
		case render.RowSubchapter:
			m.vs.ToggleCollapseSubchapter(row.Subchapter.ID)
			m.rebuild()
		}

	case " ":
		if pt := m.currentPoint(); pt != nil {
			m.mutate(lifecycle.SetPointDone{ID: pt.ID, Done: !pt.Done})
			m.status = "Gespeichert"
		}

	case "e":
		if pt := m.currentPoint(); pt != nil {
			m.viewMode = ViewEdit
			m.editTarget = pt.ID
			m.input.SetValue(pt.Content)
			m.input.Focus()
			return m, textinput.Blink
		}

	case "x":
		if pt := m.currentPoint(); pt != nil {
			m.viewMode = ViewConfirmDelete
			m.deleteTarget = pt.ID
		}

	case "d":
		m.vs.SetHideDone(!m.vs.Filters.HideDone)
		m.rebuild()
	case "o":
		m.vs.SetOnlyOverdue(!m.vs.Filters.OnlyOverdue)
		m.rebuild()
	case "n":
		m.vs.SetOnlyNew(!m.vs.Filters.OnlyNew)
		m.rebuild()
	}
	return m, nil
}

func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = ViewDocument
		m.input.Blur()
		return m, nil
	case "enter":
		m.mutate(lifecycle.SetPointContent{ID: m.editTarget, Content: m.input.Value()})
		m.viewMode = ViewDocument
		m.input.Blur()
		m.status = "Gespeichert"
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "y":
		m.mutate(lifecycle.DeletePoint{ID: m.deleteTarget})
		m.status = fmt.Sprintf("Punkt %s gelöscht", m.deleteTarget)
		m.viewMode = ViewDocument
	case "esc", "n", "q":
		m.viewMode = ViewDocument
		m.status = "Abgebrochen"
	}
	return m, nil
}

func (m Model) currentRow() *render.Row {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return &m.rows[m.cursor]
}

func (m Model) currentPoint() *models.Point {
	row := m.currentRow()
	if row == nil || row.Kind != render.RowPoint {
		return nil
	}
	return row.Point.Point
}
