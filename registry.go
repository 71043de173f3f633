package core

import (
	"fmt"
	"sync"
)

// Registry holds all scope and role definitions for the application.
// It is created at startup and should be treated as immutable after
// initialization: a role's grants never change once defined.
type Registry struct {
	mu     sync.RWMutex
	scopes map[string]*ScopeDefinition
}

// ScopeDefinition defines a scope type (e.g., "global", "company") and all
// roles available within that scope.
type ScopeDefinition struct {
	name     string
	unscoped bool // roles grant independent of any context instance
	roles    map[string]*RoleDefinition
	registry *Registry
}

// RoleDefinition defines a role within a scope, including the permission
// grants it carries and which roles it can assign to others.
type RoleDefinition struct {
	name    string
	grants  []string // Grant patterns this role carries
	assigns []string // Roles this role can assign to others
	scope   *ScopeDefinition
}

// NewRegistry creates a new role registry.
func NewRegistry() *Registry {
	return &Registry{
		scopes: make(map[string]*ScopeDefinition),
	}
}

// DefineScope starts defining a new scope type.
// Returns a ScopeDefinition builder for fluent configuration.
//
// Example:
//
//	registry.DefineScope("company").
//	    Role("owner").Grants("*").CanAssign("*").
//	    Role("member").Grants("*.read")
func (r *Registry) DefineScope(name string) *ScopeDefinition {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.scopes[name]; ok {
		return existing
	}

	scope := &ScopeDefinition{
		name:     name,
		roles:    make(map[string]*RoleDefinition),
		registry: r,
	}
	r.scopes[name] = scope
	return scope
}

// GetScope returns the scope definition for a scope type.
// Returns nil if the scope is not defined.
func (r *Registry) GetScope(name string) *ScopeDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.scopes[name]
}

// GetScopes returns all defined scope type names.
func (r *Registry) GetScopes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.scopes))
	for name := range r.scopes {
		names = append(names, name)
	}
	return names
}

// ValidateScope checks if a scope type is defined.
func (r *Registry) ValidateScope(scopeType string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, exists := r.scopes[scopeType]; !exists {
		return fmt.Errorf("%w: scope type %q not defined", ErrInvalidScope, scopeType)
	}
	return nil
}

// ValidateRole checks if a role is defined for a scope type.
func (r *Registry) ValidateRole(role, scopeType string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scope, exists := r.scopes[scopeType]
	if !exists {
		return fmt.Errorf("%w: scope type %q not defined", ErrInvalidScope, scopeType)
	}
	if _, exists := scope.roles[role]; !exists {
		return fmt.Errorf("%w: role %q not defined for scope %q", ErrInvalidRoleDefinition, role, scopeType)
	}
	return nil
}

// Validate checks every role definition in the registry: each grant pattern
// must be well-formed. Surfaces configuration faults at startup instead of
// at evaluation time.
func (r *Registry) Validate() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for scopeName, scope := range r.scopes {
		for roleName, role := range scope.roles {
			for _, pattern := range role.grants {
				if err := ValidatePermission(pattern); err != nil {
					return fmt.Errorf("%w: role %q in scope %q: %v",
						ErrInvalidRoleDefinition, roleName, scopeName, err)
				}
			}
		}
	}
	return nil
}

// GetRole returns the role definition for a role in a scope.
func (r *Registry) GetRole(role, scopeType string) *RoleDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scope, exists := r.scopes[scopeType]
	if !exists {
		return nil
	}
	return scope.roles[role]
}

// GetGrants returns the grant patterns for a role in a scope.
func (r *Registry) GetGrants(role, scopeType string) []string {
	roleDef := r.GetRole(role, scopeType)
	if roleDef == nil {
		return nil
	}
	return roleDef.grants
}

// CanRoleAssign checks if a role can assign another role in the same scope.
func (r *Registry) CanRoleAssign(assignerRole, targetRole, scopeType string) bool {
	roleDef := r.GetRole(assignerRole, scopeType)
	if roleDef == nil {
		return false
	}
	for _, allowed := range roleDef.assigns {
		if allowed == "*" || allowed == targetRole {
			return true
		}
	}
	return false
}

// Unscoped marks this scope type as context-free: roles defined in it grant
// authority regardless of any context instance supplied with the request.
// The built-in "global" scope is unscoped; "company" is not.
func (s *ScopeDefinition) Unscoped() *ScopeDefinition {
	s.unscoped = true
	return s
}

// IsUnscoped reports whether roles in this scope grant context-free authority.
func (s *ScopeDefinition) IsUnscoped() bool {
	return s.unscoped
}

// Role starts defining a new role within this scope.
// Returns a RoleDefinition builder for fluent configuration.
//
// Example:
//
//	scope.Role("admin").
//	    Grants("member.*", "company.update").
//	    CanAssign("member")
func (s *ScopeDefinition) Role(name string) *RoleDefinition {
	role := &RoleDefinition{
		name:  name,
		scope: s,
	}
	s.roles[name] = role
	return role
}

// GetRole returns a role definition by name within this scope.
func (s *ScopeDefinition) GetRole(name string) *RoleDefinition {
	return s.roles[name]
}

// GetRoles returns all role names defined in this scope.
func (s *ScopeDefinition) GetRoles() []string {
	names := make([]string, 0, len(s.roles))
	for name := range s.roles {
		names = append(names, name)
	}
	return names
}

// Name returns the scope type name.
func (s *ScopeDefinition) Name() string {
	return s.name
}

// Grants adds permission grant patterns to this role.
// Grants only add authority; there is no deny pattern.
//
// Example:
//
//	role.Grants("company.create", "account.*")
func (r *RoleDefinition) Grants(patterns ...string) *RoleDefinition {
	r.grants = append(r.grants, patterns...)
	return r
}

// GrantsPerm adds structural permission grants to this role.
func (r *RoleDefinition) GrantsPerm(perms ...Permission) *RoleDefinition {
	for _, p := range perms {
		r.grants = append(r.grants, p.String())
	}
	return r
}

// CanAssign sets which roles this role can assign to other principals.
// Use "*" to allow assigning any role in the scope.
func (r *RoleDefinition) CanAssign(roles ...string) *RoleDefinition {
	r.assigns = append(r.assigns, roles...)
	return r
}

// Role continues defining roles in the parent scope (fluent API).
func (r *RoleDefinition) Role(name string) *RoleDefinition {
	return r.scope.Role(name)
}

// DefineScope continues defining scopes on the registry (fluent API).
func (r *RoleDefinition) DefineScope(name string) *ScopeDefinition {
	return r.scope.registry.DefineScope(name)
}

// GetGrants returns the grant patterns for this role.
func (r *RoleDefinition) GetGrants() []string {
	return r.grants
}

// GetCanAssign returns the roles this role can assign.
func (r *RoleDefinition) GetCanAssign() []string {
	return r.assigns
}

// Name returns the role name.
func (r *RoleDefinition) Name() string {
	return r.name
}

// ScopeName returns the scope type this role belongs to.
func (r *RoleDefinition) ScopeName() string {
	return r.scope.name
}
