package core

import (
	"github.com/fernandezvara/dbkit"
)

// MigrationService provides migration management as an extension to Service.
type MigrationService struct {
	*Service
}

// NewMigrationService creates a new migration service extension.
func NewMigrationService(service *Service) *MigrationService {
	return &MigrationService{Service: service}
}

// Migrations returns all database migrations required by the role store.
// Use dbkit.Migrate(ctx, db, service.Migrations()) to apply them.
//
// The unique index on (user_id, scope_type, scope_id) backs the invariant
// that a principal holds at most one role per scope pair; concurrent
// assignments race to the index rather than to application code.
func (ms *MigrationService) Migrations() []dbkit.Migration {
	return []dbkit.Migration{
		{
			ID:          "core-001",
			Description: "Create role_assignments table",
			SQL: `
                CREATE TABLE IF NOT EXISTS role_assignments (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    user_id TEXT NOT NULL,
                    role TEXT NOT NULL,
                    scope_type TEXT NOT NULL,
                    scope_id TEXT NOT NULL,
                    created_at TIMESTAMPTZ DEFAULT current_timestamp,
                    updated_at TIMESTAMPTZ DEFAULT current_timestamp
                )`,
		},
		{
			ID:          "core-002",
			Description: "Enforce one role per user and scope pair",
			SQL: `
                CREATE UNIQUE INDEX IF NOT EXISTS role_assignments_user_scope_uq
                    ON role_assignments (user_id, scope_type, scope_id)`,
		},
		{
			ID:          "core-003",
			Description: "Create role_audit_log table",
			SQL: `
                CREATE TABLE IF NOT EXISTS role_audit_log (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    timestamp TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    actor_id TEXT NOT NULL,
                    action TEXT NOT NULL,
                    target_user_id TEXT NOT NULL,
                    role TEXT NOT NULL,
                    scope_type TEXT NOT NULL,
                    scope_id TEXT NOT NULL,
                    actor_role TEXT,
                    previous_role TEXT,
                    new_role TEXT,
                    ip_address TEXT,
                    user_agent TEXT,
                    request_id TEXT,
                    metadata JSONB
                )`,
		},
		{
			ID:          "core-004",
			Description: "Index assignments and audit log for lookups",
			SQL: `
                CREATE INDEX IF NOT EXISTS role_assignments_scope_idx
                    ON role_assignments (scope_type, scope_id);
                CREATE INDEX IF NOT EXISTS role_audit_log_target_idx
                    ON role_audit_log (target_user_id, timestamp DESC)`,
		},
	}
}
