package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestAuditLogFilterDefaults validates the constructor defaults.
func TestAuditLogFilterDefaults(t *testing.T) {
	f := NewAuditLogFilter()

	assert.Equal(t, 100, f.Limit)
	assert.Equal(t, 0, f.Offset)
	assert.Empty(t, f.ActorID)
	assert.Empty(t, f.Action)
	assert.True(t, f.Since.IsZero())
	assert.True(t, f.Until.IsZero())
}

// TestAuditLogFilterFluentChain validates building a filter by chaining.
func TestAuditLogFilterFluentChain(t *testing.T) {
	since := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	until := since.AddDate(0, 1, 0)

	f := NewAuditLogFilter().
		WithActor("admin-9").
		WithActorRole(RoleSuperAdmin).
		WithTargetUser("user-1").
		WithScope(ScopeCompany, "co-1").
		WithAction(AuditActionAssigned).
		WithRole(RoleMember).
		WithRequestID("req-42").
		WithTimeRange(since, until).
		WithPagination(25, 50)

	assert.Equal(t, "admin-9", f.ActorID)
	assert.Equal(t, RoleSuperAdmin, f.ActorRole)
	assert.Equal(t, "req-42", f.RequestID)
	assert.Equal(t, "user-1", f.TargetUserID)
	assert.Equal(t, ScopeCompany, f.ScopeType)
	assert.Equal(t, "co-1", f.ScopeID)
	assert.Equal(t, string(AuditActionAssigned), f.Action)
	assert.Equal(t, RoleMember, f.Role)
	assert.Equal(t, since, f.Since)
	assert.Equal(t, until, f.Until)
	assert.Equal(t, 25, f.Limit)
	assert.Equal(t, 50, f.Offset)
}

// TestAuditLogFilterValueSemantics validates that chaining never mutates the
// filter it was called on.
func TestAuditLogFilterValueSemantics(t *testing.T) {
	base := NewAuditLogFilter().WithScopeType(ScopeGlobal)

	derived := base.WithActor("admin-9").WithLimit(10)

	assert.Empty(t, base.ActorID)
	assert.Equal(t, 100, base.Limit)
	assert.Equal(t, "admin-9", derived.ActorID)
	assert.Equal(t, 10, derived.Limit)
	assert.Equal(t, ScopeGlobal, derived.ScopeType)
}

// TestAuditLogFilterPartialTimeRange validates the one-sided time setters.
func TestAuditLogFilterPartialTimeRange(t *testing.T) {
	since := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	f := NewAuditLogFilter().WithSince(since)
	assert.Equal(t, since, f.Since)
	assert.True(t, f.Until.IsZero())

	f = NewAuditLogFilter().WithUntil(since)
	assert.True(t, f.Since.IsZero())
	assert.Equal(t, since, f.Until)
}
