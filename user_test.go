package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func buildTestUser(t *testing.T, bindings ...Binding) *User {
	t.Helper()
	created, updated := testTimestamps()

	user, err := NewUserBuilder().
		ID("user-1").
		Email("jill@example.com").
		Name("Jill").
		Active(true).
		Created(created).
		Updated(updated).
		Roles(bindings...).
		Build()
	assert.NoError(t, err)
	return user
}

// TestUserAssignRole validates role binding management on a user record.
func TestUserAssignRole(t *testing.T) {
	user := buildTestUser(t)

	assert.NoError(t, user.AssignRole(RoleUser, GlobalScope()))
	assert.NoError(t, user.AssignRole(RoleMember, CompanyScope("co-1")))
	assert.Len(t, user.Roles, 2)

	err := user.AssignRole(RoleAdmin, CompanyScope("co-1"))
	assert.True(t, IsDuplicateAssignment(err), "a scope pair holds at most one role")
	assert.Len(t, user.Roles, 2)

	// A different company is a different scope pair.
	assert.NoError(t, user.AssignRole(RoleAdmin, CompanyScope("co-2")))
}

// TestUserRevokeRole validates revocation semantics.
func TestUserRevokeRole(t *testing.T) {
	user := buildTestUser(t, Binding{Role: RoleUser, Scope: GlobalScope()})

	assert.NoError(t, user.RevokeRole(GlobalScope()))
	assert.Empty(t, user.Roles)

	err := user.RevokeRole(GlobalScope())
	assert.ErrorIs(t, err, ErrNotAssigned)
}

// TestUserCanGlobalRole validates context-free global authority.
func TestUserCanGlobalRole(t *testing.T) {
	user := buildTestUser(t, Binding{Role: RoleUser, Scope: GlobalScope()})

	assert.True(t, user.Can("create", "company"))
	assert.True(t, user.Can("update", "user"))
	assert.False(t, user.Can("admin_update", "user"))

	// Global roles grant with or without a request context.
	assert.True(t, user.Can("create", "company", InContext(CompanyScope("co-1"))))
}

// TestUserCanUnionAcrossBindings validates that authority is the union of
// every held role.
func TestUserCanUnionAcrossBindings(t *testing.T) {
	user := buildTestUser(t,
		Binding{Role: RoleBank, Scope: GlobalScope()},
		Binding{Role: RoleMember, Scope: CompanyScope("co-1")},
	)

	// From the bank role.
	assert.True(t, user.Can("create", "currency"))
	// From the member role, only in its company.
	assert.True(t, user.Can("set_clock", "labor", InContext(CompanyScope("co-1"))))
	assert.False(t, user.Can("set_clock", "labor", InContext(CompanyScope("co-2"))))
	assert.False(t, user.Can("set_clock", "labor"))
	// From neither.
	assert.False(t, user.Can("delete", "user"))
}

// TestUserInactiveCanNothing validates that inactive and deleted users hold
// no effective authority.
func TestUserInactiveCanNothing(t *testing.T) {
	user := buildTestUser(t, Binding{Role: RoleSuperAdmin, Scope: GlobalScope()})
	assert.True(t, user.Can("delete", "user"))

	user.Active = false
	assert.False(t, user.Can("delete", "user"))

	user.Active = true
	user.Delete(time.Now())
	assert.False(t, user.Can("delete", "user"))
}

// TestUserAccessCheck validates the error-returning check variant.
func TestUserAccessCheck(t *testing.T) {
	user := buildTestUser(t, Binding{Role: RoleUser, Scope: GlobalScope()})

	assert.NoError(t, user.AccessCheck("create", "company"))

	err := user.AccessCheck("admin_update", "user")
	assert.True(t, IsInsufficientPrivileges(err))

	var rich *Error
	assert.ErrorAs(t, err, &rich)
	assert.Equal(t, "user-1", rich.UserID)
}
