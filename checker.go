package core

// Checker is the entry point callers use to ask "can this principal do X on
// Y?". It is polymorphic over the Principal capability (anything exposing a
// RoleSet) and delegates entirely to the Evaluator, so new principal kinds
// need no changes here or there.
type Checker struct {
	principal Principal
	registry  *Registry
	evaluator *Evaluator
}

// NewChecker creates a Checker for a principal over a role registry.
func NewChecker(registry *Registry, principal Principal) *Checker {
	return &Checker{
		principal: principal,
		registry:  registry,
		evaluator: NewEvaluator(registry),
	}
}

// PrincipalID returns the identity of the principal this checker is for.
func (c *Checker) PrincipalID() string {
	return c.principal.PrincipalID()
}

// Can checks if the principal may perform an action on a resource kind.
// Structural faults in the role configuration read as a denial here; use
// Decide to observe them.
//
// Example:
//
//	if checker.Can("create", "company") {
//	    // principal may create companies
//	}
//
//	if checker.Can("update", "member", core.InContext(core.CompanyScope(companyID))) {
//	    // principal may update members of this company
//	}
func (c *Checker) Can(action, resource string, opts ...RequestOption) bool {
	decision, err := c.Decide(action, resource, opts...)
	if err != nil {
		return false
	}
	return decision.Allowed
}

// Decide answers the request with a full Decision, including which role
// granted access, and surfaces configuration faults as errors.
func (c *Checker) Decide(action, resource string, opts ...RequestOption) (Decision, error) {
	return c.evaluator.Evaluate(c.principal.RoleSet(), NewRequest(action, resource, opts...))
}

// HasRole checks if the principal holds a specific role in a scope pair.
func (c *Checker) HasRole(role, scopeType, scopeID string) bool {
	return c.principal.RoleSet().HasRole(role, scopeType, scopeID)
}

// HasAnyRole checks if the principal holds any of the roles in a scope pair.
func (c *Checker) HasAnyRole(roles []string, scopeType, scopeID string) bool {
	for _, role := range roles {
		if c.HasRole(role, scopeType, scopeID) {
			return true
		}
	}
	return false
}

// RoleIn returns the role the principal holds for a scope pair, if any.
func (c *Checker) RoleIn(scope Scope) (string, bool) {
	return c.principal.RoleSet().RoleIn(scope)
}

// Grants returns the union of grant patterns the principal's bindings carry
// for a scope pair. Useful for displaying what a principal can do.
func (c *Checker) Grants(scopeType, scopeID string) []string {
	seen := make(map[string]bool)
	var patterns []string
	for _, b := range c.principal.RoleSet().Bindings() {
		if b.Scope.Type != scopeType {
			continue
		}
		if b.Scope.ID != scopeID && !b.Scope.IsWildcard() {
			continue
		}
		for _, g := range c.registry.GetGrants(b.Role, b.Scope.Type) {
			if !seen[g] {
				seen[g] = true
				patterns = append(patterns, g)
			}
		}
	}
	return patterns
}

// CanAssignRole checks if the principal can assign a role to another
// principal in a scope, per the CanAssign configuration of the role it
// holds there. Wildcard bindings count, and an unscoped role with
// CanAssign("*") carries assignment authority into every scope type.
func (c *Checker) CanAssignRole(targetRole, scopeType, scopeID string) bool {
	for _, b := range c.principal.RoleSet().Bindings() {
		if b.Scope.Type != scopeType {
			if c.assignsEverywhere(b) {
				return true
			}
			continue
		}
		if b.Scope.ID != scopeID && !b.Scope.IsWildcard() {
			continue
		}
		if c.registry.CanRoleAssign(b.Role, targetRole, scopeType) {
			return true
		}
	}
	return false
}

// assignsEverywhere reports whether a binding grants cross-scope assignment
// authority: its scope type is unscoped and its role can assign "*".
func (c *Checker) assignsEverywhere(b Binding) bool {
	scope := c.registry.GetScope(b.Scope.Type)
	if scope == nil || !scope.IsUnscoped() {
		return false
	}
	def := scope.GetRole(b.Role)
	if def == nil {
		return false
	}
	for _, target := range def.GetCanAssign() {
		if target == "*" {
			return true
		}
	}
	return false
}

// AssignableRoles returns all roles the principal can assign in a scope.
func (c *Checker) AssignableRoles(scopeType, scopeID string) []string {
	scope := c.registry.GetScope(scopeType)
	if scope == nil {
		return nil
	}

	assignable := make(map[string]bool)
	for _, b := range c.principal.RoleSet().Bindings() {
		if b.Scope.Type != scopeType {
			if c.assignsEverywhere(b) {
				for _, r := range scope.GetRoles() {
					assignable[r] = true
				}
			}
			continue
		}
		if b.Scope.ID != scopeID && !b.Scope.IsWildcard() {
			continue
		}
		def := scope.GetRole(b.Role)
		if def == nil {
			continue
		}
		for _, target := range def.GetCanAssign() {
			if target == "*" {
				for _, r := range scope.GetRoles() {
					assignable[r] = true
				}
			} else {
				assignable[target] = true
			}
		}
	}

	result := make([]string, 0, len(assignable))
	for r := range assignable {
		result = append(result, r)
	}
	return result
}

// IsEmpty returns true if the principal holds no roles at all.
func (c *Checker) IsEmpty() bool {
	return c.principal.RoleSet().IsEmpty()
}
