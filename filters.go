package core

import "time"

// AuditLogFilter narrows a GetAuditLog query. The zero value of every field
// means "do not filter on this"; combine conditions by chaining the With
// methods. Each method works on a copy, so a partially built filter can be
// reused as a base for several queries.
type AuditLogFilter struct {
	// Who performed and who received the action.
	ActorID      string
	TargetUserID string

	// The role the actor held when acting. Useful for answering "what did
	// company owners change last week" without enumerating owners.
	ActorRole string

	// Scope the action happened in.
	ScopeType string
	ScopeID   string

	// "assigned" or "revoked".
	Action string

	// The role that was assigned or revoked.
	Role string

	// Closed time window; either side may be left open.
	Since time.Time
	Until time.Time

	// Correlates all audit entries written during one request.
	RequestID string

	// Pagination, newest first.
	Limit  int
	Offset int
}

// NewAuditLogFilter returns an unrestricted filter capped at 100 entries.
func NewAuditLogFilter() AuditLogFilter {
	return AuditLogFilter{
		Limit: 100,
	}
}

// WithActor keeps only entries performed by this actor.
func (f AuditLogFilter) WithActor(actorID string) AuditLogFilter {
	f.ActorID = actorID
	return f
}

// WithActorRole keeps only entries performed while holding this role.
func (f AuditLogFilter) WithActorRole(role string) AuditLogFilter {
	f.ActorRole = role
	return f
}

// WithTargetUser keeps only entries whose target is this user.
func (f AuditLogFilter) WithTargetUser(userID string) AuditLogFilter {
	f.TargetUserID = userID
	return f
}

// WithScope keeps only entries in one scope instance.
func (f AuditLogFilter) WithScope(scopeType, scopeID string) AuditLogFilter {
	f.ScopeType = scopeType
	f.ScopeID = scopeID
	return f
}

// WithScopeType keeps only entries in scopes of one type, across all
// instances.
func (f AuditLogFilter) WithScopeType(scopeType string) AuditLogFilter {
	f.ScopeType = scopeType
	return f
}

// WithAction keeps only assignments or only revocations.
func (f AuditLogFilter) WithAction(action AuditAction) AuditLogFilter {
	f.Action = string(action)
	return f
}

// WithRole keeps only entries about this role.
func (f AuditLogFilter) WithRole(role string) AuditLogFilter {
	f.Role = role
	return f
}

// WithRequestID keeps only entries written during one request.
func (f AuditLogFilter) WithRequestID(requestID string) AuditLogFilter {
	f.RequestID = requestID
	return f
}

// WithTimeRange keeps only entries inside [since, until].
func (f AuditLogFilter) WithTimeRange(since, until time.Time) AuditLogFilter {
	f.Since = since
	f.Until = until
	return f
}

// WithSince drops entries older than since.
func (f AuditLogFilter) WithSince(since time.Time) AuditLogFilter {
	f.Since = since
	return f
}

// WithUntil drops entries newer than until.
func (f AuditLogFilter) WithUntil(until time.Time) AuditLogFilter {
	f.Until = until
	return f
}

// WithLimit caps the number of entries returned.
func (f AuditLogFilter) WithLimit(limit int) AuditLogFilter {
	f.Limit = limit
	return f
}

// WithOffset skips past entries already seen.
func (f AuditLogFilter) WithOffset(offset int) AuditLogFilter {
	f.Offset = offset
	return f
}

// WithPagination sets limit and offset together.
func (f AuditLogFilter) WithPagination(limit, offset int) AuditLogFilter {
	f.Limit = limit
	f.Offset = offset
	return f
}
