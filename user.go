package core

import "time"

// User is the point of access to the entire system. Users hold global roles,
// own accounts, and are linked to companies via Member records. Every person
// in the system is represented by a User.
type User struct {
	Model

	// Email might be best set to a proxy address, since most of this data
	// will be fairly public.
	Email string `json:"email" bun:"email,notnull"`

	// Name is the user's full name.
	Name string `json:"name" bun:"name,notnull"`

	// Roles are the user's role bindings: what permissions they have
	// access to, and where. Unique per scope pair by construction.
	Roles []Binding `json:"roles,omitempty" bun:"roles,type:jsonb"`
}

// PrincipalID implements Principal.
func (u *User) PrincipalID() string {
	return u.ID
}

// RoleSet implements Principal. The returned set is a snapshot; mutating it
// does not touch the user record.
func (u *User) RoleSet() *RoleSet {
	rs := &RoleSet{}
	for _, b := range u.Roles {
		// Bindings are unique by construction; a duplicate here means the
		// record was mutated outside AssignRole, and the first binding wins.
		_ = rs.Assign(b)
	}
	return rs
}

// AssignRole adds a role binding to the user.
// Fails with ErrDuplicateAssignment if the scope pair already holds a role.
func (u *User) AssignRole(role string, scope Scope) error {
	set := u.RoleSet()
	if err := set.Assign(Binding{Role: role, Scope: scope}); err != nil {
		return err
	}
	u.Roles = append(u.Roles, Binding{Role: role, Scope: scope})
	return nil
}

// RevokeRole removes the role binding for a scope pair.
// Fails with ErrNotAssigned if the pair holds no role.
func (u *User) RevokeRole(scope Scope) error {
	for i, b := range u.Roles {
		if b.Scope == scope {
			u.Roles = append(u.Roles[:i], u.Roles[i+1:]...)
			return nil
		}
	}
	return NewError(ErrNotAssigned, "scope holds no role").
		WithScope(scope.Type, scope.ID).
		WithUser(u.ID)
}

// Can determines if the user may perform an action, based on their roles.
// An inactive or deleted user can do nothing.
func (u *User) Can(action, resource string, opts ...RequestOption) bool {
	if !u.IsActive() {
		return false
	}
	return NewChecker(DefaultRegistry(), u).Can(action, resource, opts...)
}

// AccessCheck verifies the user may perform an action, returning
// ErrInsufficientPrivileges on denial.
func (u *User) AccessCheck(action, resource string, opts ...RequestOption) error {
	if !u.Can(action, resource, opts...) {
		return NewError(ErrInsufficientPrivileges, "").WithUser(u.ID)
	}
	return nil
}

// UserBuilder accumulates fields for one User and produces a validated,
// immutable record. Builders are exclusively owned by the constructing call.
type UserBuilder struct {
	user User
	set  map[string]bool
}

// NewUserBuilder creates a new UserBuilder.
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{set: make(map[string]bool)}
}

// ID sets the user's identifier.
func (b *UserBuilder) ID(id string) *UserBuilder {
	b.user.ID = id
	b.set["id"] = true
	return b
}

// Email sets the user's email address.
func (b *UserBuilder) Email(email string) *UserBuilder {
	b.user.Email = email
	b.set["email"] = true
	return b
}

// Name sets the user's full name.
func (b *UserBuilder) Name(name string) *UserBuilder {
	b.user.Name = name
	b.set["name"] = true
	return b
}

// Active sets the activation flag. Defaults to false.
func (b *UserBuilder) Active(active bool) *UserBuilder {
	b.user.Active = active
	return b
}

// Created sets the creation timestamp.
func (b *UserBuilder) Created(t time.Time) *UserBuilder {
	b.user.Created = t
	b.set["created"] = true
	return b
}

// Updated sets the last-update timestamp.
func (b *UserBuilder) Updated(t time.Time) *UserBuilder {
	b.user.Updated = t
	b.set["updated"] = true
	return b
}

// Deleted sets the soft-delete marker. Defaults to absent.
func (b *UserBuilder) Deleted(t time.Time) *UserBuilder {
	b.user.Deleted = &t
	return b
}

// Roles sets the user's role bindings. Defaults to empty.
func (b *UserBuilder) Roles(bindings ...Binding) *UserBuilder {
	b.user.Roles = bindings
	return b
}

// Build finalizes the user.
// Fails with ErrMissingField if a required field was never set, and with
// ErrDuplicateAssignment if two role bindings target the same scope pair.
func (b *UserBuilder) Build() (*User, error) {
	if err := checkRequired(b.set, "id", "email", "name", "created", "updated"); err != nil {
		return nil, err
	}
	if _, err := NewRoleSet(b.user.Roles...); err != nil {
		return nil, err
	}
	user := b.user
	return &user, nil
}
