// ABOUTME: Tests for protocol domain types
// ABOUTME: Covers memo detection, category normalization and assignment locks
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMemo(t *testing.T) {
	memo := &Protocol{Type: TypeAktennotiz}
	assert.True(t, memo.IsMemo())
	assert.Zero(t, memo.Number)

	series := &Protocol{Type: TypeBaubesprechung, Number: 3}
	assert.False(t, series.IsMemo())
}

func TestNormalizedCategory(t *testing.T) {
	legacy := &Point{Category: CategoryApprovalLegacy}
	assert.Equal(t, CategoryApproval, legacy.NormalizedCategory())

	current := &Point{Category: CategoryTask}
	assert.Equal(t, CategoryTask, current.NormalizedCategory())
}

func TestCategoryLocksAssignment(t *testing.T) {
	assert.True(t, CategoryLocksAssignment(CategoryInfo))
	assert.True(t, CategoryLocksAssignment(CategoryDecision))
	assert.False(t, CategoryLocksAssignment(CategoryTask))
	assert.False(t, CategoryLocksAssignment(CategoryApproval))
}

func TestProtocolTypesListed(t *testing.T) {
	assert.Contains(t, ProtocolTypes, TypeBaubesprechung)
	assert.Contains(t, ProtocolTypes, TypeAktennotiz)
	assert.Len(t, ProtocolTypes, 5)
}
