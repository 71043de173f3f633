package core

import (
	"time"

	"github.com/uptrace/bun"
)

// RoleAssignment is the stored form of one role binding: a principal's role
// in a specific scope. The table carries a unique index over
// (user_id, scope_type, scope_id), so the one-binding-per-scope invariant
// holds by construction even under concurrent assignment.
type RoleAssignment struct {
	bun.BaseModel `bun:"table:role_assignments,alias:ra"`

	ID        string    `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	UserID    string    `bun:"user_id,notnull"`
	Role      string    `bun:"role,notnull"`
	ScopeType string    `bun:"scope_type,notnull"`
	ScopeID   string    `bun:"scope_id,notnull"` // Can be "*" for wildcard
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Binding converts the stored assignment to an in-memory role binding.
func (a RoleAssignment) Binding() Binding {
	return Binding{
		Role:  a.Role,
		Scope: Scope{Type: a.ScopeType, ID: a.ScopeID},
	}
}

// RoleAuditLog records all role assignment changes for compliance and
// debugging.
type RoleAuditLog struct {
	bun.BaseModel `bun:"table:role_audit_log,alias:ral"`

	ID        string    `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Timestamp time.Time `bun:"timestamp,notnull,default:current_timestamp"`

	// Who performed the action
	ActorID string `bun:"actor_id,notnull"`

	// What action was performed
	Action string `bun:"action,notnull"` // "assigned", "revoked"

	// Target of the action
	TargetUserID string `bun:"target_user_id,notnull"`
	Role         string `bun:"role,notnull"`
	ScopeType    string `bun:"scope_type,notnull"`
	ScopeID      string `bun:"scope_id,notnull"`

	// Context: since a scope pair holds at most one role, before/after
	// state is a single role each ("" when the pair was or became empty).
	ActorRole    string `bun:"actor_role"`
	PreviousRole string `bun:"previous_role"`
	NewRole      string `bun:"new_role"`

	// Request metadata for forensics
	IPAddress string `bun:"ip_address"`
	UserAgent string `bun:"user_agent"`
	RequestID string `bun:"request_id"`

	// Additional context (JSON)
	Metadata map[string]any `bun:"metadata,type:jsonb"`
}

// AuditAction represents the type of action in the audit log.
type AuditAction string

const (
	AuditActionAssigned AuditAction = "assigned"
	AuditActionRevoked  AuditAction = "revoked"
)

// AuditEntry is used to create new audit log entries.
type AuditEntry struct {
	ActorID      string
	Action       AuditAction
	TargetUserID string
	Role         string
	ScopeType    string
	ScopeID      string
	ActorRole    string
	PreviousRole string
	NewRole      string
	IPAddress    string
	UserAgent    string
	RequestID    string
	Metadata     map[string]any
}

// ToModel converts an AuditEntry to a RoleAuditLog model.
func (e *AuditEntry) ToModel() *RoleAuditLog {
	return &RoleAuditLog{
		ActorID:      e.ActorID,
		Action:       string(e.Action),
		TargetUserID: e.TargetUserID,
		Role:         e.Role,
		ScopeType:    e.ScopeType,
		ScopeID:      e.ScopeID,
		ActorRole:    e.ActorRole,
		PreviousRole: e.PreviousRole,
		NewRole:      e.NewRole,
		IPAddress:    e.IPAddress,
		UserAgent:    e.UserAgent,
		RequestID:    e.RequestID,
		Metadata:     e.Metadata,
		Timestamp:    time.Now(),
	}
}
