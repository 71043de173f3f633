package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMatcherExact validates exact pattern matching.
func TestMatcherExact(t *testing.T) {
	m := NewMatcher()

	assert.True(t, m.Match("company.update", "company.update"))
	assert.False(t, m.Match("company.update", "company.delete"))
	assert.False(t, m.Match("company.update", "member.update"))
}

// TestMatcherWildcards validates the three wildcard pattern forms.
func TestMatcherWildcards(t *testing.T) {
	m := NewMatcher()

	// Full wildcard.
	assert.True(t, m.Match("*", "company.update"))
	assert.True(t, m.Match("*", "anything.at_all"))

	// Resource wildcard.
	assert.True(t, m.Match("company.*", "company.update"))
	assert.True(t, m.Match("company.*", "company.delete"))
	assert.False(t, m.Match("company.*", "member.update"))

	// Action wildcard.
	assert.True(t, m.Match("*.read", "account.read"))
	assert.True(t, m.Match("*.read", "company.read"))
	assert.False(t, m.Match("*.read", "account.update"))
}

// TestMatcherPartCountMustAgree validates that wildcards do not cross the
// dot boundary.
func TestMatcherPartCountMustAgree(t *testing.T) {
	m := NewMatcher()

	assert.False(t, m.Match("company.*", "company"))
	assert.False(t, m.Match("company.*", "company.sub.update"))
	assert.False(t, m.Match("company.update", "company"))
}

// TestMatcherMatchAny validates matching against a grant list.
func TestMatcherMatchAny(t *testing.T) {
	grants := []string{"labor.*", "member.set_compensation"}

	assert.True(t, MatchAnyPermission(grants, "labor.set_clock"))
	assert.True(t, MatchAnyPermission(grants, "member.set_compensation"))
	assert.False(t, MatchAnyPermission(grants, "member.delete"))
	assert.False(t, MatchAnyPermission(nil, "labor.set_clock"))
}

// TestMatcherExpand validates grant expansion for display.
func TestMatcherExpand(t *testing.T) {
	all := []Permission{
		Perm("company", "read"),
		Perm("company", "update"),
		Perm("member", "read"),
		Perm("labor", "set_clock"),
	}

	matched := DefaultMatcher.Expand([]string{"*.read", "labor.set_clock"}, all)
	assert.ElementsMatch(t, []Permission{
		Perm("company", "read"),
		Perm("member", "read"),
		Perm("labor", "set_clock"),
	}, matched)

	assert.Empty(t, DefaultMatcher.Expand(nil, all))
}

// TestPermissionString validates the dotted wire form.
func TestPermissionString(t *testing.T) {
	assert.Equal(t, "company.create", Perm("company", "create").String())
	assert.True(t, DefaultMatcher.MatchPerm("company.*", Perm("company", "create")))
}

// TestParsePermission validates parsing of the dotted form.
func TestParsePermission(t *testing.T) {
	p, err := ParsePermission("company.create")
	assert.NoError(t, err)
	assert.Equal(t, Perm("company", "create"), p)

	p, err = ParsePermission("*")
	assert.NoError(t, err)
	assert.Equal(t, Perm("*", "*"), p)

	_, err = ParsePermission("company")
	assert.ErrorIs(t, err, ErrInvalidPermission)

	_, err = ParsePermission("")
	assert.ErrorIs(t, err, ErrInvalidPermission)
}

// TestValidatePermission validates pattern string validation.
func TestValidatePermission(t *testing.T) {
	assert.NoError(t, ValidatePermission("*"))
	assert.NoError(t, ValidatePermission("company.*"))
	assert.NoError(t, ValidatePermission("*.read"))
	assert.NoError(t, ValidatePermission("resource_spec.create"))

	assert.Error(t, ValidatePermission(""))
	assert.Error(t, ValidatePermission("company"))
	assert.Error(t, ValidatePermission("company."))
	assert.Error(t, ValidatePermission(".update"))
	assert.Error(t, ValidatePermission("com pany.update"))
}
