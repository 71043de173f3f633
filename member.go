package core

import "time"

// PayrollSchedule defines how often a member is paid.
type PayrollSchedule string

const (
	// PayrollBiWeekly pays once every two weeks.
	PayrollBiWeekly PayrollSchedule = "biweekly"

	// PayrollSemiMonthly pays twice a month, on the 15th and the last day.
	PayrollSemiMonthly PayrollSchedule = "semimonthly"
)

// Wage units.
const (
	WagePerHour = "hour"
	WagePerYear = "year"
)

// Compensation defines how a member is paid: wage, payment schedule, and the
// account payments land in. Amounts are opaque decimal strings; numeric and
// unit validation belongs to the layer consuming them.
type Compensation struct {
	// Wage is a measure of value per unit time.
	Wage string `json:"wage"`

	// Unit the wage is measured against: per hour or per year.
	Unit string `json:"unit"`

	// PayInto is the account payments are deposited to.
	PayInto string `json:"pay_into"`

	// Schedule is the payroll schedule.
	Schedule PayrollSchedule `json:"schedule"`

	// EstHoursPerWeek estimates hours worked per week when the wage is not
	// hourly, which keeps labor hours estimable and not just wage payments.
	EstHoursPerWeek *float64 `json:"est_hours_per_week,omitempty"`
}

// NewHourlyCompensation creates a standard hourly wage, paid biweekly.
func NewHourlyCompensation(wage, payInto string) Compensation {
	return NewHourlyCompensationWithSchedule(wage, payInto, PayrollBiWeekly)
}

// NewHourlyCompensationWithSchedule creates an hourly wage on a custom schedule.
func NewHourlyCompensationWithSchedule(wage, payInto string, schedule PayrollSchedule) Compensation {
	return Compensation{
		Wage:     wage,
		Unit:     WagePerHour,
		PayInto:  payInto,
		Schedule: schedule,
	}
}

// NewSalaryCompensation creates a standard yearly salary, paid semimonthly.
func NewSalaryCompensation(wage, payInto string, estHoursPerWeek float64) Compensation {
	return NewSalaryCompensationWithSchedule(wage, payInto, PayrollSemiMonthly, estHoursPerWeek)
}

// NewSalaryCompensationWithSchedule creates a salary on a custom schedule.
func NewSalaryCompensationWithSchedule(wage, payInto string, schedule PayrollSchedule, estHoursPerWeek float64) Compensation {
	return Compensation{
		Wage:            wage,
		Unit:            WagePerYear,
		PayInto:         payInto,
		Schedule:        schedule,
		EstHoursPerWeek: &estHoursPerWeek,
	}
}

// Member links a user to a company and carries the membership's occupation,
// company role, and compensation. Members perform labor into the company's
// processes, which earns them credits and adds costs to the company.
type Member struct {
	Model

	// UserID is the user side of the membership.
	UserID string `json:"user_id" bun:"user_id,notnull"`

	// CompanyID is the company side of the membership.
	CompanyID string `json:"company_id" bun:"company_id,notnull"`

	// OccupationID is the member's position in the company.
	OccupationID string `json:"occupation_id" bun:"occupation_id,notnull"`

	// Role is the member's company-scoped role, gating what they can do
	// within this company. Additive only.
	Role string `json:"role" bun:"role,notnull"`

	// Compensation describes how the member is paid for their labor. Must
	// be present for the member to perform labor.
	Compensation *Compensation `json:"compensation,omitempty" bun:"compensation,type:jsonb"`

	// Agreement is the URL of the agreement this membership takes place
	// under, if any.
	Agreement *string `json:"agreement,omitempty" bun:"agreement"`
}

// PrincipalID implements Principal. A member acts on behalf of its user.
func (m *Member) PrincipalID() string {
	return m.UserID
}

// RoleSet implements Principal: a single company-scoped binding.
func (m *Member) RoleSet() *RoleSet {
	rs := &RoleSet{}
	_ = rs.Assign(Binding{Role: m.Role, Scope: CompanyScope(m.CompanyID)})
	return rs
}

// Can determines if the member may perform an action within their company.
// An inactive or deleted membership grants nothing.
func (m *Member) Can(action, resource string, opts ...RequestOption) bool {
	if !m.IsActive() {
		return false
	}
	opts = append(opts, InContext(CompanyScope(m.CompanyID)))
	return NewChecker(DefaultRegistry(), m).Can(action, resource, opts...)
}

// AccessCheck verifies the member, acting as the given user, may perform an
// action on the given company. The identity pair must match the membership
// exactly; a mismatch denies regardless of role.
func (m *Member) AccessCheck(userID, companyID, action, resource string) error {
	if m.UserID != userID || m.CompanyID != companyID || !m.Can(action, resource) {
		return NewError(ErrInsufficientPrivileges, "").
			WithUser(userID).
			WithScope(ScopeCompany, companyID)
	}
	return nil
}

// MemberBuilder accumulates fields for one Member.
type MemberBuilder struct {
	member Member
	set    map[string]bool
}

// NewMemberBuilder creates a new MemberBuilder.
func NewMemberBuilder() *MemberBuilder {
	return &MemberBuilder{set: make(map[string]bool)}
}

// ID sets the membership's identifier.
func (b *MemberBuilder) ID(id string) *MemberBuilder {
	b.member.ID = id
	b.set["id"] = true
	return b
}

// UserID sets the user side of the membership.
func (b *MemberBuilder) UserID(id string) *MemberBuilder {
	b.member.UserID = id
	b.set["user_id"] = true
	return b
}

// CompanyID sets the company side of the membership.
func (b *MemberBuilder) CompanyID(id string) *MemberBuilder {
	b.member.CompanyID = id
	b.set["company_id"] = true
	return b
}

// OccupationID sets the member's occupation.
func (b *MemberBuilder) OccupationID(id string) *MemberBuilder {
	b.member.OccupationID = id
	b.set["occupation_id"] = true
	return b
}

// Role sets the member's company-scoped role.
func (b *MemberBuilder) Role(role string) *MemberBuilder {
	b.member.Role = role
	b.set["role"] = true
	return b
}

// Compensation sets how the member is paid. Defaults to absent.
func (b *MemberBuilder) Compensation(c Compensation) *MemberBuilder {
	b.member.Compensation = &c
	return b
}

// Agreement sets the agreement URL. Defaults to absent.
func (b *MemberBuilder) Agreement(url string) *MemberBuilder {
	b.member.Agreement = &url
	return b
}

// Active sets the activation flag. Defaults to false.
func (b *MemberBuilder) Active(active bool) *MemberBuilder {
	b.member.Active = active
	return b
}

// Created sets the creation timestamp.
func (b *MemberBuilder) Created(t time.Time) *MemberBuilder {
	b.member.Created = t
	b.set["created"] = true
	return b
}

// Updated sets the last-update timestamp.
func (b *MemberBuilder) Updated(t time.Time) *MemberBuilder {
	b.member.Updated = t
	b.set["updated"] = true
	return b
}

// Deleted sets the soft-delete marker. Defaults to absent.
func (b *MemberBuilder) Deleted(t time.Time) *MemberBuilder {
	b.member.Deleted = &t
	return b
}

// Build finalizes the membership.
// Fails with ErrMissingField if a required field was never set.
func (b *MemberBuilder) Build() (*Member, error) {
	if err := checkRequired(b.set, "id", "user_id", "company_id", "occupation_id", "role", "created", "updated"); err != nil {
		return nil, err
	}
	member := b.member
	return &member, nil
}
