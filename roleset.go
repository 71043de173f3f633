package core

// Scope identifies a concrete permission boundary: a scope type plus the
// instance it applies to.
type Scope struct {
	Type string `json:"type"` // e.g., "global", "company"
	ID   string `json:"id"`   // e.g., "53aa806e-...", or "*" for all instances
}

// NewScope creates a new Scope.
func NewScope(scopeType, scopeID string) Scope {
	return Scope{Type: scopeType, ID: scopeID}
}

// GlobalScope returns the scope carried by global role bindings.
func GlobalScope() Scope {
	return Scope{Type: ScopeGlobal, ID: "*"}
}

// CompanyScope returns the scope for a specific company.
func CompanyScope(companyID string) Scope {
	return Scope{Type: ScopeCompany, ID: companyID}
}

// String returns a string representation of the scope.
func (s Scope) String() string {
	return s.Type + ":" + s.ID
}

// IsWildcard returns true if this scope matches all instances of its type.
func (s Scope) IsWildcard() bool {
	return s.ID == "*"
}

// Binding is one role held by a principal in one scope.
type Binding struct {
	Role  string `json:"role"`
	Scope Scope  `json:"scope"`
}

// RoleSet is the set of roles held by one principal, partitioned by scope.
// The invariant, held by construction: at most one binding per
// (scope type, scope ID) pair. Duplicates are rejected at assignment time
// with ErrDuplicateAssignment, never silently merged or overwritten.
//
// A RoleSet is a snapshot: callers must supply a consistent view of the
// principal's roles for one evaluation. It is not safe for concurrent
// mutation.
type RoleSet struct {
	bindings []Binding
}

// NewRoleSet creates a RoleSet from a list of bindings.
// Fails with ErrDuplicateAssignment if two bindings target the same scope pair.
func NewRoleSet(bindings ...Binding) (*RoleSet, error) {
	rs := &RoleSet{}
	for _, b := range bindings {
		if err := rs.Assign(b); err != nil {
			return nil, err
		}
	}
	return rs, nil
}

// Assign adds a binding to the set.
// Fails with ErrDuplicateAssignment if the (scope type, scope ID) pair
// already holds a role.
func (rs *RoleSet) Assign(b Binding) error {
	for _, existing := range rs.bindings {
		if existing.Scope == b.Scope {
			return NewError(ErrDuplicateAssignment, "scope already holds a role").
				WithScope(b.Scope.Type, b.Scope.ID).
				WithRole(existing.Role)
		}
	}
	rs.bindings = append(rs.bindings, b)
	return nil
}

// Revoke removes the binding for a scope pair.
// Fails with ErrNotAssigned if the pair holds no role.
func (rs *RoleSet) Revoke(scope Scope) error {
	for i, b := range rs.bindings {
		if b.Scope == scope {
			rs.bindings = append(rs.bindings[:i], rs.bindings[i+1:]...)
			return nil
		}
	}
	return NewError(ErrNotAssigned, "scope holds no role").
		WithScope(scope.Type, scope.ID)
}

// RoleIn returns the role held for a scope pair, if any.
func (rs *RoleSet) RoleIn(scope Scope) (string, bool) {
	for _, b := range rs.bindings {
		if b.Scope == scope {
			return b.Role, true
		}
	}
	return "", false
}

// HasRole checks if the set holds a specific role in a scope pair, also
// honoring wildcard bindings (scope ID "*").
func (rs *RoleSet) HasRole(role, scopeType, scopeID string) bool {
	for _, b := range rs.bindings {
		if b.Role != role || b.Scope.Type != scopeType {
			continue
		}
		if b.Scope.ID == scopeID || b.Scope.IsWildcard() {
			return true
		}
	}
	return false
}

// Bindings returns a copy of all bindings in the set.
func (rs *RoleSet) Bindings() []Binding {
	out := make([]Binding, len(rs.bindings))
	copy(out, rs.bindings)
	return out
}

// Len returns the number of bindings in the set.
func (rs *RoleSet) Len() int {
	return len(rs.bindings)
}

// IsEmpty returns true if the principal holds no roles.
func (rs *RoleSet) IsEmpty() bool {
	return len(rs.bindings) == 0
}

// ScopesWithRole returns all scope IDs of a type where the set holds a
// specific role.
func (rs *RoleSet) ScopesWithRole(role, scopeType string) []string {
	var ids []string
	for _, b := range rs.bindings {
		if b.Role == role && b.Scope.Type == scopeType {
			ids = append(ids, b.Scope.ID)
		}
	}
	return ids
}

// Principal is anything that can be authorized: it exposes an identity and
// a queryable RoleSet. User and Member are the built-in principal kinds;
// new kinds need no evaluator changes.
type Principal interface {
	// PrincipalID returns the stable identity of the principal.
	PrincipalID() string

	// RoleSet returns a read-only snapshot of the principal's roles.
	RoleSet() *RoleSet
}
