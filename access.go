package core

import "sync"

// Built-in scope types.
const (
	// ScopeGlobal carries system-wide authority, independent of any
	// context instance.
	ScopeGlobal = "global"

	// ScopeCompany carries authority tied to one company.
	ScopeCompany = "company"
)

// Built-in global roles.
const (
	RoleSuperAdmin    = "super_admin"
	RoleIdentityAdmin = "identity_admin"
	RoleCompanyAdmin  = "company_admin"
	RoleBank          = "bank"
	RoleUser          = "user"
	RoleGuest         = "guest"
)

// Built-in company roles.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RolePurser = "purser"
	RoleMember = "member"
)

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *Registry
)

// DefaultRegistry returns the stock Basis role catalog. The registry is
// built once and must be treated as immutable; applications that need their
// own catalog should build a fresh Registry instead of mutating this one.
//
// Everyone starts with no permissions. Grants are additive only: a role adds
// authority and nothing can subtract it.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = buildDefaultRegistry()
	})
	return defaultRegistry
}

func buildDefaultRegistry() *Registry {
	registry := NewRegistry()

	// System-wide roles. Generally these apply to users.
	registry.DefineScope(ScopeGlobal).Unscoped().
		Role(RoleSuperAdmin).
		Grants("*").
		CanAssign("*").
		Role(RoleIdentityAdmin).
		Grants(
			"user.update",
			"user.set_roles",
			"user.admin_create",
			"user.admin_update",
			"user.delete",
		).
		CanAssign(RoleUser, RoleGuest).
		Role(RoleCompanyAdmin).
		Grants(
			"company.admin_update",
			"company.admin_delete",
		).
		Role(RoleBank).
		Grants(
			"currency.create",
			"currency.update",
			"currency.delete",
		).
		Role(RoleUser).
		Grants(
			"user.update",
			"user.delete",
			"company.create",
			"company.delete",
			"company.payroll",
			"company.update",
			"agreement.update",
			"commitment.update",
			"intent.update",
			"member.update",
			"resource.update",
			"resource_spec.create",
			"resource_spec.update",
			"resource_spec.delete",
			"process.update",
			"process_spec.update",
			"account.create",
			"account.update",
			"account.set_owners",
			"account.transfer",
			"account.delete",
			"event.create",
			"event.update",
		).
		Role(RoleGuest).
		Grants("user.create")

	// Company roles. These gate what a member can do within the company
	// they belong to; a member of one company has no authority in another.
	registry.DefineScope(ScopeCompany).
		Role(RoleOwner).
		Grants("*").
		CanAssign("*").
		Role(RoleAdmin).
		Grants(
			"company.update",
			"member.*",
			"labor.*",
			"resource.*",
			"resource_spec.*",
			"process.*",
			"process_spec.*",
			"order.*",
		).
		CanAssign(RolePurser, RoleMember).
		Role(RolePurser).
		Grants(
			"labor.*",
			"member.set_compensation",
			"order.update_shipping",
		).
		Role(RoleMember).
		Grants(
			"*.read",
			"labor.set_clock",
		)

	return registry
}

// AccessCheck verifies a principal can perform an action on a resource kind,
// using the default registry. A denial surfaces as ErrInsufficientPrivileges;
// structural faults in the principal's roles propagate as-is.
func AccessCheck(p Principal, action, resource string, opts ...RequestOption) error {
	decision, err := NewChecker(DefaultRegistry(), p).Decide(action, resource, opts...)
	if err != nil {
		return err
	}
	if !decision.Allowed {
		return NewError(ErrInsufficientPrivileges, "").
			WithUser(p.PrincipalID())
	}
	return nil
}

// GuestCheck verifies an anonymous caller can perform an action, by the
// grants of the built-in guest role. Used for operations available before a
// user record exists (signup).
func GuestCheck(action, resource string) error {
	def := DefaultRegistry().GetRole(RoleGuest, ScopeGlobal)
	if def == nil {
		return NewError(ErrInvalidRoleDefinition, "guest role not defined")
	}
	if !DefaultMatcher.MatchAny(def.GetGrants(), Perm(resource, action).String()) {
		return NewError(ErrInsufficientPrivileges, "")
	}
	return nil
}
