// Package core provides the data-modeling and access-control substrate for
// Basis applications: uniform record lifecycle (builders, soft deletion,
// active-state derivation, optional/collection serialization rules) plus a
// role-based permission system that combines authority from global roles and
// company-scoped roles into a single decision.
//
// # Core Concepts
//
// Scope: a tuple of (Type, ID) identifying a permission boundary. The
// built-in scope types are "global" (system-wide authority, ID "*") and
// "company" (authority tied to one company). New scope types can be defined
// without touching the evaluator.
//
// Role: a named set of permission grants defined per scope type. The same
// role name can carry different grants in different scope types.
//
// Permission: a (resource, action) pair, written "resource.action".
// Grant patterns support wildcards: "*" (everything), "company.*" (all
// company actions), "*.read" (read on every resource).
//
// Binding: one role held by a principal in one scope. A principal holds at
// most one binding per (scope type, scope ID) pair; assigning a second role
// to the same pair is rejected with ErrDuplicateAssignment, never merged.
//
// Principal: anything that can expose a RoleSet: a User (global roles), a
// company Member (company-scoped role), or any other type implementing the
// Principal interface.
//
// Permissions are strictly additive. There is no deny grant: every request
// starts from nothing and is allowed only if at least one binding grants it.
// The decision is the union across all bindings, so binding order never
// changes the outcome.
//
// # Records
//
// Every domain record (User, Company, Member, Account, Resource, Occupation,
// Currency) embeds Model and follows the same structural contract:
//
//   - records are built only through their builder; Build fails with
//     ErrMissingField if a required field was never set
//   - optional scalar fields are pointers and are omitted from JSON when
//     absent; decoding an omitted field yields absence, never a sentinel
//   - collection and map fields are omitted from JSON when empty; an omitted
//     collection decodes to the canonical empty state
//   - IsDeleted is true iff the deletion timestamp is present; IsActive is
//     true iff the record is flagged active AND not deleted; deletion
//     always wins
//
// # Basic Usage
//
//	// 1. Build records through their builders
//	user, err := core.NewUserBuilder().
//	    ID(core.NewID()).
//	    Email("toady@basis.org").
//	    Name("Toady McButterpants").
//	    Active(true).
//	    Created(now).
//	    Updated(now).
//	    Build()
//
//	// 2. Assign roles (one role per scope pair)
//	err = user.AssignRole(core.RoleUser, core.GlobalScope())
//
//	// 3. Check access
//	checker := core.NewChecker(core.DefaultRegistry(), user)
//	if checker.Can("company", "create") {
//	    // user may create companies
//	}
//
//	// Company-scoped checks carry the company as context
//	checker = core.NewChecker(core.DefaultRegistry(), member)
//	if checker.Can("member", "update", core.InContext(core.CompanyScope(companyID))) {
//	    // member may update memberships in this company
//	}
//
// # Custom Role Catalogs
//
// DefaultRegistry ships the stock Basis roles, but applications can define
// their own:
//
//	registry := core.NewRegistry()
//	registry.DefineScope("global").Unscoped().
//	    Role("super_admin").Grants("*").CanAssign("*").
//	    Role("user").Grants("company.create", "account.*")
//	registry.DefineScope("company").
//	    Role("owner").Grants("*").CanAssign("*").
//	    Role("member").Grants("*.read")
//
// # Persistence
//
// The optional Service layer stores role bindings and an audit trail in
// PostgreSQL through dbkit/bun. It enforces the one-binding-per-scope
// invariant with a unique index so the RoleSet invariant holds even under
// concurrent assignment, and it supplies consistent RoleSet snapshots for
// evaluation:
//
//	service := core.NewService(registry, db)
//	err := service.Assign(ctx, userID, "owner", "company", companyID)
//	set, err := service.GetRoleSet(ctx, userID)
package core
