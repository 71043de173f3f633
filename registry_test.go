package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRegistryDefineScopeBasic validates scope definition and retrieval.
func TestRegistryDefineScopeBasic(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.GetScopes())

	scope := r.DefineScope("project")
	assert.NotNil(t, scope)
	assert.Equal(t, "project", scope.Name())
	assert.False(t, scope.IsUnscoped())

	retrieved := r.GetScope("project")
	assert.NotNil(t, retrieved)
	assert.Nil(t, r.GetScope("missing"))
}

// TestRegistryUnscopedMarker validates the unscoped scope marker.
func TestRegistryUnscopedMarker(t *testing.T) {
	r := NewRegistry()
	r.DefineScope("system").Unscoped().Role("root").Grants("*")

	assert.True(t, r.GetScope("system").IsUnscoped())
}

// TestRegistryFluentRoleDefinition validates chained role definitions.
func TestRegistryFluentRoleDefinition(t *testing.T) {
	r := NewRegistry()
	r.DefineScope("project").
		Role("lead").Grants("*").CanAssign("*").
		Role("contributor").Grants("project.read", "task.*").
		Role("viewer").Grants("project.read")

	scope := r.GetScope("project")
	assert.Len(t, scope.GetRoles(), 3)

	lead := scope.GetRole("lead")
	assert.NotNil(t, lead)
	assert.Equal(t, []string{"*"}, lead.GetGrants())
	assert.Equal(t, []string{"*"}, lead.GetCanAssign())

	contributor := scope.GetRole("contributor")
	assert.Len(t, contributor.GetGrants(), 2)
	assert.Empty(t, contributor.GetCanAssign())
	assert.Equal(t, "project", contributor.ScopeName())
}

// TestRegistryGrantsPerm validates defining grants from structural
// permissions.
func TestRegistryGrantsPerm(t *testing.T) {
	r := NewRegistry()
	r.DefineScope("project").
		Role("auditor").GrantsPerm(Perm("project", "read"), Perm("task", "read"))

	grants := r.GetGrants("auditor", "project")
	assert.ElementsMatch(t, []string{"project.read", "task.read"}, grants)
}

// TestRegistryValidation validates scope and role validation errors.
func TestRegistryValidation(t *testing.T) {
	r := NewRegistry()
	r.DefineScope("project").Role("lead").Grants("*")

	assert.NoError(t, r.ValidateScope("project"))
	assert.ErrorIs(t, r.ValidateScope("fleet"), ErrInvalidScope)

	assert.NoError(t, r.ValidateRole("lead", "project"))
	assert.ErrorIs(t, r.ValidateRole("intern", "project"), ErrInvalidRoleDefinition)
	assert.ErrorIs(t, r.ValidateRole("lead", "fleet"), ErrInvalidScope)
}

// TestRegistryCanRoleAssign validates assignment configuration lookups.
func TestRegistryCanRoleAssign(t *testing.T) {
	r := NewRegistry()
	r.DefineScope("project").
		Role("lead").Grants("*").CanAssign("*").
		Role("manager").Grants("task.*").CanAssign("contributor", "viewer").
		Role("contributor").Grants("task.update")

	assert.True(t, r.CanRoleAssign("lead", "manager", "project"))
	assert.True(t, r.CanRoleAssign("manager", "contributor", "project"))
	assert.True(t, r.CanRoleAssign("manager", "viewer", "project"))
	assert.False(t, r.CanRoleAssign("manager", "manager", "project"))
	assert.False(t, r.CanRoleAssign("contributor", "viewer", "project"))
	assert.False(t, r.CanRoleAssign("lead", "manager", "fleet"))
}

// TestRegistryGetRole validates role lookup across scopes.
func TestRegistryGetRole(t *testing.T) {
	r := NewRegistry()
	r.DefineScope("project").Role("lead").Grants("*")

	assert.NotNil(t, r.GetRole("lead", "project"))
	assert.Nil(t, r.GetRole("lead", "fleet"))
	assert.Nil(t, r.GetRole("intern", "project"))
	assert.Nil(t, r.GetGrants("intern", "project"))
}

// TestRegistryRedefiningScopeKeepsRoles validates that DefineScope returns
// the existing definition instead of clobbering it.
func TestRegistryRedefiningScopeKeepsRoles(t *testing.T) {
	r := NewRegistry()
	r.DefineScope("project").Role("lead").Grants("*")
	r.DefineScope("project").Role("viewer").Grants("project.read")

	assert.Len(t, r.GetScope("project").GetRoles(), 2)
}

// TestRegistryCrossScopeChaining validates starting a new scope from the
// middle of a role chain.
func TestRegistryCrossScopeChaining(t *testing.T) {
	r := NewRegistry()
	r.DefineScope("project").
		Role("lead").Grants("*").
		DefineScope("team").
		Role("captain").Grants("team.*")

	assert.NotNil(t, r.GetRole("lead", "project"))
	assert.NotNil(t, r.GetRole("captain", "team"))
}

// TestDefineTestRolesCatalog validates the auxiliary test catalog loads.
func TestDefineTestRolesCatalog(t *testing.T) {
	r := NewRegistry()
	defineTestRoles(r)

	assert.NoError(t, r.ValidateRole("lead", "project"))
	assert.True(t, r.CanRoleAssign("lead", "contributor", "project"))
}
