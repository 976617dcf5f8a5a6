// ABOUTME: Tests for structure templates and chapter key allocation
// ABOUTME: Covers per-type defaults and the F-Z user chapter space
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStructure(t *testing.T) {
	s := DefaultStructure(TypePlanung)
	require.Len(t, s, 5)
	assert.Equal(t, "A", s[0].Key)
	assert.Equal(t, "E", s[4].Key)
	assert.Len(t, s.Chapter("B").Subchapters, 4)
	assert.Equal(t, "Objektplanung", s.Chapter("B").Subchapters[0].Label)

	s = DefaultStructure(TypeBaubesprechung)
	assert.Len(t, s.Chapter("B").Subchapters, 3)

	memo := DefaultStructure(TypeAktennotiz)
	require.Len(t, memo, 3)
	assert.Equal(t, "P", memo[0].Key)
	assert.Equal(t, "N", memo[2].Key)
}

func TestNextChapterKey(t *testing.T) {
	s := DefaultStructure(TypeMieter)
	key, err := s.NextChapterKey()
	require.NoError(t, err)
	assert.Equal(t, "F", key)

	// Gaps are filled lowest-first.
	s = append(s, Chapter{Key: "F"}, Chapter{Key: "H"})
	key, err = s.NextChapterKey()
	require.NoError(t, err)
	assert.Equal(t, "G", key)

	// Exhausting F-Z is an error.
	s = DefaultStructure(TypeMieter)
	for c := 'F'; c <= 'Z'; c++ {
		s = append(s, Chapter{Key: string(c)})
	}
	_, err = s.NextChapterKey()
	assert.ErrorIs(t, err, ErrStructureConflict)
}

func TestNextSubchapterID(t *testing.T) {
	ch := &Chapter{Key: "B"}
	assert.Equal(t, "B.1", ch.NextSubchapterID())

	ch.Subchapters = []Subchapter{{ID: "B.1"}, {ID: "B.3"}}
	assert.Equal(t, "B.4", ch.NextSubchapterID())
}

func TestChapterHasContent(t *testing.T) {
	ch := &Chapter{Key: "F"}
	assert.False(t, ch.HasContent(nil))

	points := []Point{{Chapter: "F"}}
	assert.True(t, ch.HasContent(points))

	ch = &Chapter{Key: "G", Subchapters: []Subchapter{{ID: "G.1", Topics: []Topic{{ID: "t1"}}}}}
	assert.True(t, ch.HasContent(nil))
}

func TestSectionNumber(t *testing.T) {
	s := DefaultStructure(TypeAktennotiz)
	assert.Equal(t, 1, s.SectionNumber("A"))
	assert.Equal(t, 0, s.SectionNumber("P"))
	assert.Equal(t, 0, s.SectionNumber("N"))

	s = append(s, Chapter{Key: "F", Label: "Abschnitt 2"})
	assert.Equal(t, 2, s.SectionNumber("F"))
}

func TestIsReservedChapter(t *testing.T) {
	for _, key := range []string{"A", "B", "C", "D", "E", "P", "N"} {
		assert.True(t, IsReservedChapter(key), key)
	}
	assert.False(t, IsReservedChapter("F"))
}
