// ABOUTME: Tests for the protocol TUI model
// ABOUTME: Covers navigation, collapse, filters and done toggling
package tui

import (
	"database/sql"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oscarlimaalphafox/KADRA/db"
	"github.com/oscarlimaalphafox/KADRA/lifecycle"
	"github.com/oscarlimaalphafox/KADRA/models"
	"github.com/oscarlimaalphafox/KADRA/render"
	"github.com/oscarlimaalphafox/KADRA/series"
)

func setupModel(t *testing.T) (Model, *sql.DB) {
	t.Helper()
	store, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, db.InitSchema(store))

	project := &models.Project{Code: "NB", Name: "Neubau"}
	require.NoError(t, db.SaveProject(store, project))
	protocol, err := series.Start(store, project.ID, models.TypeMieter, "Jour Fixe", models.Author{})
	require.NoError(t, err)
	require.NoError(t, lifecycle.Apply(protocol, lifecycle.AddPoint{Chapter: "A"}))
	require.NoError(t, db.SaveProtocol(store, protocol))

	m, err := NewModel(store, protocol.ID)
	require.NoError(t, err)
	return m, store
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestNavigation(t *testing.T) {
	m, _ := setupModel(t)
	assert.Equal(t, 0, m.cursor)

	m = update(m, key("j"))
	assert.Equal(t, 1, m.cursor)
	m = update(m, key("k"))
	assert.Equal(t, 0, m.cursor)
	m = update(m, key("k"))
	assert.Equal(t, 0, m.cursor, "cursor stops at the top")
}

func TestCollapseChapter(t *testing.T) {
	m, _ := setupModel(t)
	before := len(m.rows)

	// Cursor starts on chapter A, which holds one point.
	m = update(m, key("enter"))
	assert.Len(t, m.rows, before-1)
	assert.True(t, m.vs.ChapterCollapsed("A"))

	m = update(m, key("enter"))
	assert.Len(t, m.rows, before)
}

func TestToggleDone(t *testing.T) {
	m, store := setupModel(t)

	m = update(m, key("j")) // point row under chapter A
	pt := m.currentPoint()
	require.NotNil(t, pt)
	require.False(t, pt.Done)

	m = update(m, key("space"))
	assert.True(t, m.rows[1].Point.Done)

	// The toggle is persisted.
	saved, err := db.GetProtocol(store, m.protocol.ID)
	require.NoError(t, err)
	assert.True(t, saved.Points[0].Done)
}

func TestFiltersAreMutuallyExclusive(t *testing.T) {
	m, _ := setupModel(t)

	m = update(m, key("o"))
	assert.True(t, m.vs.Filters.OnlyOverdue)
	m = update(m, key("n"))
	assert.True(t, m.vs.Filters.OnlyNew)
	assert.False(t, m.vs.Filters.OnlyOverdue)
}

func TestEditFlow(t *testing.T) {
	m, store := setupModel(t)

	m = update(m, key("j"))
	require.Equal(t, render.RowPoint, m.rows[m.cursor].Kind)
	pointID := m.currentPoint().ID

	m = update(m, key("e"))
	assert.Equal(t, ViewEdit, m.viewMode)

	m.input.SetValue("Terminplan abstimmen")
	m = update(m, key("enter"))
	assert.Equal(t, ViewDocument, m.viewMode)

	saved, err := db.GetProtocol(store, m.protocol.ID)
	require.NoError(t, err)
	assert.Equal(t, "Terminplan abstimmen", saved.Points[0].Content)
	assert.Equal(t, pointID, saved.Points[0].ID)
}
