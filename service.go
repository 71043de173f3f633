package core

import (
	"context"

	"github.com/fernandezvara/dbkit"
	"github.com/rs/zerolog"
)

// Service provides role binding storage and permission checking on top of a
// PostgreSQL database through dbkit.
//
// The store is the authority for RoleSet snapshots: GetRoleSet reads all of
// a principal's assignments in one query, so one authorization decision
// always sees a consistent view. The one-binding-per-scope invariant is
// enforced twice: a pre-check that returns ErrDuplicateAssignment, and a
// unique index that catches concurrent writers.
//
// Error Handling:
// All database operations use dbkit's chainable error wrapping to provide
// detailed context about failed operations.
//
//	err := service.Assign(ctx, userID, role, scopeType, scopeID)
//	if err != nil {
//	    if core.IsDuplicateAssignment(err) {
//	        // scope pair already holds a role
//	    }
//	    var dbErr *dbkit.Error
//	    if errors.As(err, &dbErr) {
//	        fmt.Printf("Operation: %s, Table: %s\n", dbErr.Operation, dbErr.Table)
//	    }
//	}
type Service struct {
	db        dbkit.IDB
	registry  *Registry
	txMonitor *transactionMonitor
	log       zerolog.Logger
}

// ServiceOption configures the Service.
type ServiceOption func(*Service)

// WithLogger sets the logger the service emits operational events to
// (audit write failures, retries, migrations). Defaults to a no-op logger.
func WithLogger(log zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.log = log
	}
}

// NewService creates a new Service.
//
// Example:
//
//	registry := core.DefaultRegistry()
//	db, _ := dbkit.New(dbkit.Config{URL: "postgres://..."})
//	service := core.NewService(registry, db, core.WithLogger(logger))
func NewService(registry *Registry, db dbkit.IDB, opts ...ServiceOption) *Service {
	s := &Service{
		db:        db,
		registry:  registry,
		txMonitor: newTransactionMonitor(),
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry returns the role registry.
func (s *Service) Registry() *Registry {
	return s.registry
}

// GetAuditLog retrieves audit log entries with optional filters.
func (s *Service) GetAuditLog(ctx context.Context, filter AuditLogFilter) ([]RoleAuditLog, error) {
	var logs []RoleAuditLog
	q := s.handle(ctx).NewSelect().Model(&logs)
	if filter.ActorID != "" {
		q = q.Where("actor_id = ?", filter.ActorID)
	}
	if filter.ActorRole != "" {
		q = q.Where("actor_role = ?", filter.ActorRole)
	}
	if filter.TargetUserID != "" {
		q = q.Where("target_user_id = ?", filter.TargetUserID)
	}
	if filter.ScopeType != "" {
		q = q.Where("scope_type = ?", filter.ScopeType)
	}
	if filter.ScopeID != "" {
		q = q.Where("scope_id = ?", filter.ScopeID)
	}
	if filter.Role != "" {
		q = q.Where("role = ?", filter.Role)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if filter.RequestID != "" {
		q = q.Where("request_id = ?", filter.RequestID)
	}
	if !filter.Since.IsZero() {
		q = q.Where("timestamp >= ?", filter.Since)
	}
	if !filter.Until.IsZero() {
		q = q.Where("timestamp <= ?", filter.Until)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 100 // Default limit
	}
	q = q.Limit(limit)

	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	q = q.Order("timestamp DESC")
	err := dbkit.WithErr1(q.Scan(ctx), "GetAuditLog").Err()
	if err != nil {
		return nil, err
	}

	return logs, nil
}
