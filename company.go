package core

import "time"

// CompanyType describes how a company exists within the system. Different
// types behave differently and this is where the behaviors are differentiated.
type CompanyType string

const (
	// CompanyTransRegional is a planned company spanning multiple regions,
	// e.g. an organization managing infrastructure between regions.
	CompanyTransRegional CompanyType = "trans_regional"

	// CompanyRegional is a planned company within a single region, e.g. a
	// regional transit system.
	CompanyRegional CompanyType = "regional"

	// CompanySyndicate is a worker-owned company operating within the
	// network. Syndicates can still span regions via remote workers.
	CompanySyndicate CompanyType = "syndicate"

	// CompanyPrivate is a company existing outside the system.
	CompanyPrivate CompanyType = "private"
)

// Company is a group of one or more people working towards a common economic
// goal. Companies are where costs accumulate and disperse into outgoing
// products and services.
//
// Companies gate what their Members can do through company-scoped roles;
// a member of one company holds no authority in another.
type Company struct {
	Model

	// Type of company.
	Type CompanyType `json:"type" bun:"type,notnull"`

	// Email is the company's primary email address.
	Email string `json:"email" bun:"email,notnull"`

	// Name the company goes by.
	Name string `json:"name" bun:"name,notnull"`

	// Regions the company is planned in. Empty for syndicates and private
	// companies.
	Regions []string `json:"regions,omitempty" bun:"regions,type:jsonb"`
}

// CompanyBuilder accumulates fields for one Company.
type CompanyBuilder struct {
	company Company
	set     map[string]bool
}

// NewCompanyBuilder creates a new CompanyBuilder.
func NewCompanyBuilder() *CompanyBuilder {
	return &CompanyBuilder{set: make(map[string]bool)}
}

// ID sets the company's identifier.
func (b *CompanyBuilder) ID(id string) *CompanyBuilder {
	b.company.ID = id
	b.set["id"] = true
	return b
}

// Type sets the company type.
func (b *CompanyBuilder) Type(t CompanyType) *CompanyBuilder {
	b.company.Type = t
	b.set["type"] = true
	return b
}

// Email sets the company's primary email address.
func (b *CompanyBuilder) Email(email string) *CompanyBuilder {
	b.company.Email = email
	b.set["email"] = true
	return b
}

// Name sets the company's name.
func (b *CompanyBuilder) Name(name string) *CompanyBuilder {
	b.company.Name = name
	b.set["name"] = true
	return b
}

// Regions sets the region IDs the company is planned in. Defaults to empty.
func (b *CompanyBuilder) Regions(regionIDs ...string) *CompanyBuilder {
	b.company.Regions = regionIDs
	return b
}

// Active sets the activation flag. Defaults to false.
func (b *CompanyBuilder) Active(active bool) *CompanyBuilder {
	b.company.Active = active
	return b
}

// Created sets the creation timestamp.
func (b *CompanyBuilder) Created(t time.Time) *CompanyBuilder {
	b.company.Created = t
	b.set["created"] = true
	return b
}

// Updated sets the last-update timestamp.
func (b *CompanyBuilder) Updated(t time.Time) *CompanyBuilder {
	b.company.Updated = t
	b.set["updated"] = true
	return b
}

// Deleted sets the soft-delete marker. Defaults to absent.
func (b *CompanyBuilder) Deleted(t time.Time) *CompanyBuilder {
	b.company.Deleted = &t
	return b
}

// Build finalizes the company.
// Fails with ErrMissingField if a required field was never set.
func (b *CompanyBuilder) Build() (*Company, error) {
	if err := checkRequired(b.set, "id", "type", "email", "name", "created", "updated"); err != nil {
		return nil, err
	}
	company := b.company
	return &company, nil
}
