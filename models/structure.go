// ABOUTME: Structure templates and chapter tree helpers
// ABOUTME: Provides per-type default chapters and key/id allocation rules
package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Reserved chapter keys. Default chapters can never be deleted.
var reservedKeys = map[string]bool{
	"A": true, "B": true, "C": true, "D": true, "E": true,
	"P": true, "N": true,
}

// IsReservedChapter reports whether key belongs to the default structure.
func IsReservedChapter(key string) bool {
	return reservedKeys[key]
}

// DefaultStructure returns the chapter tree a fresh protocol of the given
// type starts with. Aktennotiz uses its own three-section layout.
func DefaultStructure(protocolType string) Structure {
	if protocolType == TypeAktennotiz {
		return Structure{
			{Key: "P", Label: "Präambel", Subchapters: []Subchapter{}},
			{Key: "A", Label: "Abschnitt 1", Subchapters: []Subchapter{}},
			{Key: "N", Label: "Nächste Schritte", Subchapters: []Subchapter{}},
		}
	}

	var subB []Subchapter
	switch protocolType {
	case TypePlanung:
		subB = []Subchapter{
			{ID: "B.1", Label: "Objektplanung", Topics: []Topic{}},
			{ID: "B.2", Label: "Fachplanung IT | ELT | Medientechnik", Topics: []Topic{}},
			{ID: "B.3", Label: "Fachplanung HKLS", Topics: []Topic{}},
			{ID: "B.4", Label: "Genehmigung", Topics: []Topic{}},
		}
	case TypeMieter:
		subB = []Subchapter{
			{ID: "B.1", Label: "Mieterausbau", Topics: []Topic{}},
			{ID: "B.2", Label: "Planungsunterlagen", Topics: []Topic{}},
		}
	case TypeBauherr:
		subB = []Subchapter{
			{ID: "B.1", Label: "Planung", Topics: []Topic{}},
			{ID: "B.2", Label: "Ausführung", Topics: []Topic{}},
		}
	case TypeBaubesprechung:
		subB = []Subchapter{
			{ID: "B.1", Label: "Rohbau", Topics: []Topic{}},
			{ID: "B.2", Label: "Ausbau", Topics: []Topic{}},
			{ID: "B.3", Label: "Technische Anlagen", Topics: []Topic{}},
		}
	default:
		subB = []Subchapter{}
	}

	return Structure{
		{Key: "A", Label: "Organisation | Information", Subchapters: []Subchapter{}},
		{Key: "B", Label: "Qualitäten | Planung", Subchapters: subB},
		{Key: "C", Label: "Kosten", Subchapters: []Subchapter{}},
		{Key: "D", Label: "Termine", Subchapters: []Subchapter{}},
		{Key: "E", Label: "Vertragswesen | Rechtliche Themen | Versicherungen", Subchapters: []Subchapter{}},
	}
}

// Chapter returns the chapter with the given key, or nil.
func (s Structure) Chapter(key string) *Chapter {
	for i := range s {
		if s[i].Key == key {
			return &s[i]
		}
	}
	return nil
}

// Subchapter returns the subchapter with the given id anywhere in the tree,
// or nil.
func (s Structure) Subchapter(id string) *Subchapter {
	for i := range s {
		for j := range s[i].Subchapters {
			if s[i].Subchapters[j].ID == id {
				return &s[i].Subchapters[j]
			}
		}
	}
	return nil
}

// NextChapterKey allocates the lowest free user chapter letter. User chapters
// occupy F through Z; the 21 slots exhausted is an error.
func (s Structure) NextChapterKey() (string, error) {
	used := make(map[string]bool, len(s))
	for _, ch := range s {
		used[ch.Key] = true
	}
	for c := 'F'; c <= 'Z'; c++ {
		key := string(c)
		if !used[key] {
			return key, nil
		}
	}
	return "", &StructureError{Message: "alle Kapitel-Buchstaben (F-Z) sind vergeben"}
}

// NextSubchapterID allocates the next numeric id under a chapter, one past
// the highest existing suffix.
func (c *Chapter) NextSubchapterID() string {
	max := 0
	for _, sub := range c.Subchapters {
		parts := strings.SplitN(sub.ID, ".", 2)
		if len(parts) == 2 {
			if n, err := strconv.Atoi(parts[1]); err == nil && n > max {
				max = n
			}
		}
	}
	return fmt.Sprintf("%s.%d", c.Key, max+1)
}

// HasContent reports whether the chapter holds any topics or points. Chapters
// with content cannot be deleted or hidden.
func (c *Chapter) HasContent(points []Point) bool {
	for _, sub := range c.Subchapters {
		if len(sub.Topics) > 0 {
			return true
		}
	}
	for _, pt := range points {
		if pt.Chapter == c.Key {
			return true
		}
	}
	return false
}

// SectionNumber returns the 1-based ordinal of a memo chapter among the
// chapters that are neither preamble nor next-steps. Used for memo point ids.
func (s Structure) SectionNumber(key string) int {
	n := 0
	for _, ch := range s {
		if ch.Key == "P" || ch.Key == "N" {
			continue
		}
		n++
		if ch.Key == key {
			return n
		}
	}
	return 0
}
