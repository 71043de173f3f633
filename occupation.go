package core

import "time"

// Occupation names a kind of work members perform, e.g. "machinist". Labor
// costs are tracked against occupations, so the catalog of occupations is
// system-wide and curated.
type Occupation struct {
	Model

	// Label is the canonical name of the occupation.
	Label string `json:"label" bun:"label,notnull"`

	// Description of what the occupation entails.
	Description *string `json:"description,omitempty" bun:"description"`
}

// OccupationBuilder accumulates fields for one Occupation.
type OccupationBuilder struct {
	occupation Occupation
	set        map[string]bool
}

// NewOccupationBuilder creates a new OccupationBuilder.
func NewOccupationBuilder() *OccupationBuilder {
	return &OccupationBuilder{set: make(map[string]bool)}
}

// ID sets the occupation's identifier.
func (b *OccupationBuilder) ID(id string) *OccupationBuilder {
	b.occupation.ID = id
	b.set["id"] = true
	return b
}

// Label sets the occupation's canonical name.
func (b *OccupationBuilder) Label(label string) *OccupationBuilder {
	b.occupation.Label = label
	b.set["label"] = true
	return b
}

// Description sets the occupation's description. Defaults to absent.
func (b *OccupationBuilder) Description(description string) *OccupationBuilder {
	b.occupation.Description = &description
	return b
}

// Active sets the activation flag. Defaults to false.
func (b *OccupationBuilder) Active(active bool) *OccupationBuilder {
	b.occupation.Active = active
	return b
}

// Created sets the creation timestamp.
func (b *OccupationBuilder) Created(t time.Time) *OccupationBuilder {
	b.occupation.Created = t
	b.set["created"] = true
	return b
}

// Updated sets the last-update timestamp.
func (b *OccupationBuilder) Updated(t time.Time) *OccupationBuilder {
	b.occupation.Updated = t
	b.set["updated"] = true
	return b
}

// Deleted sets the soft-delete marker. Defaults to absent.
func (b *OccupationBuilder) Deleted(t time.Time) *OccupationBuilder {
	b.occupation.Deleted = &t
	return b
}

// Build finalizes the occupation.
// Fails with ErrMissingField if a required field was never set.
func (b *OccupationBuilder) Build() (*Occupation, error) {
	if err := checkRequired(b.set, "id", "label", "created", "updated"); err != nil {
		return nil, err
	}
	occupation := b.occupation
	return &occupation, nil
}
