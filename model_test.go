package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestModelIsActiveRequiresBothFlags validates that a record is active only
// when flagged active and not soft-deleted.
func TestModelIsActiveRequiresBothFlags(t *testing.T) {
	m := Model{Active: true}
	assert.True(t, m.IsActive())
	assert.False(t, m.IsDeleted())

	m.Delete(time.Now())
	assert.True(t, m.IsDeleted())
	assert.False(t, m.IsActive(), "deleted record must not be active even with the flag set")

	inactive := Model{Active: false}
	assert.False(t, inactive.IsActive())
	assert.False(t, inactive.IsDeleted())
}

// TestModelDeleteSetsTimestamp validates the soft-delete marker.
func TestModelDeleteSetsTimestamp(t *testing.T) {
	m := Model{Active: true}
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	m.Delete(now)
	assert.NotNil(t, m.Deleted)
	assert.Equal(t, now, *m.Deleted)
}

// TestModelDeletedOmittedWhenAbsent validates that the deletion marker never
// appears in serialized output unless set.
func TestModelDeletedOmittedWhenAbsent(t *testing.T) {
	m := Model{ID: "rec-1", Active: true}

	data, err := json.Marshal(m)
	assert.NoError(t, err)
	assert.NotContains(t, string(data), "deleted")

	m.Delete(time.Now())
	data, err = json.Marshal(m)
	assert.NoError(t, err)
	assert.Contains(t, string(data), "deleted")
}

// TestNewIDUnique validates generated identifiers are unique.
func TestNewIDUnique(t *testing.T) {
	a := NewID()
	b := NewID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

// TestCheckRequiredReportsFirstMissing validates required-field validation.
func TestCheckRequiredReportsFirstMissing(t *testing.T) {
	set := map[string]bool{"id": true}

	err := checkRequired(set, "id", "email", "name")
	assert.Error(t, err)
	assert.True(t, IsMissingField(err))

	field, ok := MissingField(err)
	assert.True(t, ok)
	assert.Equal(t, "email", field)

	set["email"] = true
	set["name"] = true
	assert.NoError(t, checkRequired(set, "id", "email", "name"))
}
