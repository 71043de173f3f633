package core

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/fernandezvara/dbkit"
)

// getScopeRole returns the role a principal holds in a scope pair, or ""
// when the pair is empty. At most one row can match thanks to the unique
// index.
func (s *Service) getScopeRole(ctx context.Context, userID, scopeType, scopeID string) (string, error) {
	var roles []string
	err := dbkit.WithErr1(s.handle(ctx).NewSelect().Table("role_assignments").Column("role").
		Where("user_id = ? AND scope_type = ? AND scope_id = ?", userID, scopeType, scopeID).
		Scan(ctx, &roles), "getScopeRole").Err()
	if err != nil {
		return "", err
	}
	if len(roles) == 0 {
		return "", nil
	}
	return roles[0], nil
}

// logAudit writes an audit log entry.
func (s *Service) logAudit(ctx context.Context, entry *AuditEntry) error {
	model := entry.ToModel()
	result, err := s.handle(ctx).NewInsert().Model(model).Exec(ctx)
	return dbkit.WithErr(result, err, "CreateAuditLog").Err()
}

// AssignDirect assigns a role without the actor authority check. Intended
// for bootstrap and system paths where no acting principal exists yet; still
// validates the role and enforces the one-binding-per-scope invariant, and
// still writes an audit entry (actor "system" unless context provides one).
func (s *Service) AssignDirect(ctx context.Context, userID, role, scopeType, scopeID string) error {
	if err := s.registry.ValidateRole(role, scopeType); err != nil {
		return err
	}

	previousRole, err := s.getScopeRole(ctx, userID, scopeType, scopeID)
	if err != nil {
		return err
	}
	if previousRole != "" {
		return NewError(ErrDuplicateAssignment, "scope already holds a role").
			WithScope(scopeType, scopeID).
			WithRole(previousRole).
			WithUser(userID)
	}

	assignment := &RoleAssignment{
		UserID:    userID,
		Role:      role,
		ScopeType: scopeType,
		ScopeID:   scopeID,
	}
	result, err := s.handle(ctx).NewInsert().Model(assignment).Exec(ctx)
	if err != nil {
		if dbkit.IsDuplicate(err) {
			return NewError(ErrDuplicateAssignment, "scope already holds a role").
				WithScope(scopeType, scopeID).
				WithUser(userID)
		}
		return dbkit.WithErr(result, err, "CreateRoleAssignment").Err()
	}

	actorID := GetActorID(ctx)
	if actorID == "" {
		actorID = "system"
	}
	audit := GetAuditContext(ctx)
	entry := &AuditEntry{
		ActorID:      actorID,
		Action:       AuditActionAssigned,
		TargetUserID: userID,
		Role:         role,
		ScopeType:    scopeType,
		ScopeID:      scopeID,
		NewRole:      role,
		IPAddress:    audit.IPAddress,
		UserAgent:    audit.UserAgent,
		RequestID:    audit.RequestID,
	}
	if err := s.logAudit(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("audit log write failed")
	}

	return nil
}

// AssignWithRetry assigns a role, retrying transient database failures with
// exponential backoff. Structural errors (duplicate assignment, invalid
// role) are never retried.
func (s *Service) AssignWithRetry(ctx context.Context, userID, role, scopeType, scopeID string) error {
	return s.assignWithRetry(ctx, userID, role, scopeType, scopeID, 3)
}

func (s *Service) assignWithRetry(ctx context.Context, userID, role, scopeType, scopeID string, maxAttempts int) error {
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := s.AssignDirect(ctx, userID, role, scopeType, scopeID)
		if err == nil {
			s.txMonitor.recordTransaction(0, true)
			return nil
		}

		lastErr = err

		if !isTransientError(err) {
			s.txMonitor.recordTransaction(0, false)
			return err
		}
		if attempt == maxAttempts-1 {
			break
		}

		backoff := time.Duration(1<<uint(attempt)) * time.Second
		jitter := time.Duration(float64(backoff) * 0.1 * (0.5 + rand.Float64()))
		s.log.Debug().Err(err).Int("attempt", attempt+1).Dur("backoff", backoff+jitter).
			Msg("retrying role assignment after transient error")
		time.Sleep(backoff + jitter)
	}

	s.txMonitor.recordTransaction(0, false)
	return lastErr
}

// AssignMultipleWithRetry assigns multiple roles, retrying the whole batch
// on transient failures.
func (s *Service) AssignMultipleWithRetry(ctx context.Context, assignments []RoleAssignment) error {
	var lastErr error

	for attempt := 0; attempt < 3; attempt++ {
		err := s.AssignMultiple(ctx, assignments)
		if err == nil {
			return nil
		}
		lastErr = err
		if !isTransientError(err) {
			return err
		}
		if attempt < 2 {
			time.Sleep(time.Duration(1<<uint(attempt)) * time.Second)
		}
	}

	return lastErr
}

// isTransientError reports whether an error is worth retrying: serialization
// failures, deadlocks, and connection hiccups. Structural errors never are.
func isTransientError(err error) bool {
	if err == nil {
		return false
	}
	if IsDuplicateAssignment(err) || IsInvalidRoleDefinition(err) || IsInvalidScope(err) {
		return false
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"serialization failure",
		"deadlock detected",
		"could not serialize",
		"connection reset",
		"connection refused",
		"timeout",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
