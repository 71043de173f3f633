package core

import "time"

// Resource is a tracked economic resource held by a company. Its costs map
// records accumulated labor costs keyed by occupation label; amounts are
// opaque decimal strings, owned by the costing layer.
type Resource struct {
	Model

	// CompanyID is the company accountable for the resource.
	CompanyID string `json:"company_id" bun:"company_id,notnull"`

	// Description of the resource.
	Description *string `json:"description,omitempty" bun:"description"`

	// Costs accumulated into this resource, keyed by occupation label.
	Costs map[string]string `json:"costs,omitempty" bun:"costs,type:jsonb"`
}

// ResourceBuilder accumulates fields for one Resource.
type ResourceBuilder struct {
	resource Resource
	set      map[string]bool
}

// NewResourceBuilder creates a new ResourceBuilder.
func NewResourceBuilder() *ResourceBuilder {
	return &ResourceBuilder{set: make(map[string]bool)}
}

// ID sets the resource's identifier.
func (b *ResourceBuilder) ID(id string) *ResourceBuilder {
	b.resource.ID = id
	b.set["id"] = true
	return b
}

// CompanyID sets the accountable company.
func (b *ResourceBuilder) CompanyID(id string) *ResourceBuilder {
	b.resource.CompanyID = id
	b.set["company_id"] = true
	return b
}

// Description sets the resource's description. Defaults to absent.
func (b *ResourceBuilder) Description(description string) *ResourceBuilder {
	b.resource.Description = &description
	return b
}

// Costs sets the accumulated cost map. Defaults to empty.
func (b *ResourceBuilder) Costs(costs map[string]string) *ResourceBuilder {
	b.resource.Costs = costs
	return b
}

// Active sets the activation flag. Defaults to false.
func (b *ResourceBuilder) Active(active bool) *ResourceBuilder {
	b.resource.Active = active
	return b
}

// Created sets the creation timestamp.
func (b *ResourceBuilder) Created(t time.Time) *ResourceBuilder {
	b.resource.Created = t
	b.set["created"] = true
	return b
}

// Updated sets the last-update timestamp.
func (b *ResourceBuilder) Updated(t time.Time) *ResourceBuilder {
	b.resource.Updated = t
	b.set["updated"] = true
	return b
}

// Deleted sets the soft-delete marker. Defaults to absent.
func (b *ResourceBuilder) Deleted(t time.Time) *ResourceBuilder {
	b.resource.Deleted = &t
	return b
}

// Build finalizes the resource.
// Fails with ErrMissingField if a required field was never set.
func (b *ResourceBuilder) Build() (*Resource, error) {
	if err := checkRequired(b.set, "id", "company_id", "created", "updated"); err != nil {
		return nil, err
	}
	resource := b.resource
	return &resource, nil
}
