package core

import (
	"time"

	"github.com/google/uuid"
)

// Model carries the lifecycle state every domain record shares. Embed it as
// the first field of a record type and the record picks up identity,
// timestamps, and soft-delete/active semantics.
//
// The structural rules, applied uniformly to every record type:
//
//   - optional scalar fields are pointers tagged ",omitempty": absent fields
//     serialize to nothing, and deserializing an absent field yields nil,
//     never a sentinel value
//   - collection and map fields are tagged ",omitempty": an empty collection
//     serializes to nothing, and an absent collection deserializes to the
//     canonical empty state (a nil slice/map, which ranges and appends like
//     an empty one)
//   - Deleted is the designated soft-delete marker; Active is the
//     activation marker; IsActive always consults IsDeleted first
//
// Records are immutable after construction except through their explicit
// update methods; physical removal is a storage concern, not handled here.
type Model struct {
	ID      string     `json:"id" bun:"id,pk"`
	Active  bool       `json:"active" bun:"active,notnull"`
	Created time.Time  `json:"created" bun:"created,notnull"`
	Updated time.Time  `json:"updated" bun:"updated,notnull"`
	Deleted *time.Time `json:"deleted,omitempty" bun:"deleted"`
}

// IsDeleted returns true iff the soft-delete marker is present.
func (m *Model) IsDeleted() bool {
	return m.Deleted != nil
}

// IsActive returns true iff the record is flagged active and not deleted.
// A deleted record is never active, regardless of the Active flag.
func (m *Model) IsActive() bool {
	return m.Active && !m.IsDeleted()
}

// Delete sets the soft-delete marker. Physical removal is a storage-layer
// concern; a deleted record stays addressable but is never active.
func (m *Model) Delete(now time.Time) {
	m.Deleted = &now
	m.Updated = now
}

// NewID returns a fresh record identifier.
func NewID() string {
	return uuid.NewString()
}

// checkRequired is the builder-side half of the record contract: every
// builder's Build calls it with the fields that were set and the fields its
// record type requires, so the missing-field rule cannot drift per type.
func checkRequired(set map[string]bool, required ...string) error {
	for _, field := range required {
		if !set[field] {
			return NewError(ErrMissingField, field).WithField(field)
		}
	}
	return nil
}
