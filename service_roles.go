package core

import (
	"context"

	"github.com/fernandezvara/dbkit"
)

// ============================================================================
// ROLE ASSIGNMENT OPERATIONS
// ============================================================================

// Assign gives a principal a role in a scope. The scope pair must be empty:
// a second role for the same (scope type, scope ID) fails with
// ErrDuplicateAssignment and never overwrites the existing binding.
// The actor performing the assignment must have authority to assign
// this role.
//
// Example:
//
//	err := service.Assign(ctx, targetUserID, "admin", "company", companyID)
func (s *Service) Assign(ctx context.Context, userID, role, scopeType, scopeID string) error {
	// Validate role exists for scope
	if err := s.registry.ValidateRole(role, scopeType); err != nil {
		return err
	}

	actorID := GetActorID(ctx)
	if actorID == "" {
		return NewError(ErrNoActorID, "actor ID required for role assignment")
	}

	// Get actor's roles to check assignment authority
	actorSet, err := s.GetRoleSet(ctx, actorID)
	if err != nil {
		return err
	}
	actorRole, _ := actorSet.RoleIn(Scope{Type: scopeType, ID: scopeID})

	// Self-assignment is allowed during bootstrap; anyone else needs
	// CanAssign authority in the scope.
	if actorID != userID {
		checker := NewChecker(s.registry, &storedPrincipal{id: actorID, set: actorSet})
		if !checker.CanAssignRole(role, scopeType, scopeID) {
			return NewError(ErrCannotAssign, "actor cannot assign this role").
				WithScope(scopeType, scopeID).
				WithRole(role).
				WithActor(actorID)
		}
	}

	// Reject duplicates before touching the table; the unique index
	// backstops concurrent writers.
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
		err = dbkit.WithErr(result, err, "CreateRoleAssignment").Err()
		s.log.Error().Err(err).Str("user_id", userID).Str("scope", scopeType+":"+scopeID).
			Msg("role assignment failed")
		return NewError(ErrDatabaseError, "failed to create role assignment").
			WithScope(scopeType, scopeID).
			WithRole(role).
			WithUser(userID)
	}

	audit := GetAuditContext(ctx)
	entry := &AuditEntry{
		ActorID:      actorID,
		Action:       AuditActionAssigned,
		TargetUserID: userID,
		Role:         role,
		ScopeType:    scopeType,
		ScopeID:      scopeID,
		ActorRole:    actorRole,
		PreviousRole: "",
		NewRole:      role,
		IPAddress:    audit.IPAddress,
		UserAgent:    audit.UserAgent,
		RequestID:    audit.RequestID,
	}

	// Log audit failures but do not fail the assignment.
	if err := s.logAudit(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("audit log write failed")
	}

	return nil
}

// Revoke removes a principal's role in a scope.
// Fails with ErrNotAssigned if the principal does not hold the role there.
//
// Example:
//
//	err := service.Revoke(ctx, targetUserID, "admin", "company", companyID)
func (s *Service) Revoke(ctx context.Context, userID, role, scopeType, scopeID string) error {
	// Validate role exists for scope
	if err := s.registry.ValidateRole(role, scopeType); err != nil {
		return err
	}

	actorID := GetActorID(ctx)
	if actorID == "" {
		return NewError(ErrNoActorID, "actor ID required for role revocation")
	}

	actorSet, err := s.GetRoleSet(ctx, actorID)
	if err != nil {
		return err
	}
	actorRole, _ := actorSet.RoleIn(Scope{Type: scopeType, ID: scopeID})

	if actorID != userID {
		checker := NewChecker(s.registry, &storedPrincipal{id: actorID, set: actorSet})
		if !checker.CanAssignRole(role, scopeType, scopeID) {
			return NewError(ErrCannotAssign, "actor cannot revoke this role").
				WithScope(scopeType, scopeID).
				WithRole(role).
				WithActor(actorID)
		}
	}

	previousRole, err := s.getScopeRole(ctx, userID, scopeType, scopeID)
	if err != nil {
		return err
	}
	if previousRole != role {
		return NewError(ErrNotAssigned, "principal does not hold this role").
			WithScope(scopeType, scopeID).
			WithRole(role).
			WithUser(userID)
	}

	result, err := s.handle(ctx).NewDelete().Table("role_assignments").
		Where("user_id = ? AND role = ? AND scope_type = ? AND scope_id = ?", userID, role, scopeType, scopeID).
		Exec(ctx)
	err = dbkit.WithErr(result, err, "DeleteRoleAssignment").Err()
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return NewError(ErrNotAssigned, "principal does not hold this role").
			WithScope(scopeType, scopeID).
			WithRole(role).
			WithUser(userID)
	}

	audit := GetAuditContext(ctx)
	entry := &AuditEntry{
		ActorID:      actorID,
		Action:       AuditActionRevoked,
		TargetUserID: userID,
		Role:         role,
		ScopeType:    scopeType,
		ScopeID:      scopeID,
		ActorRole:    actorRole,
		PreviousRole: role,
		NewRole:      "",
		IPAddress:    audit.IPAddress,
		UserAgent:    audit.UserAgent,
		RequestID:    audit.RequestID,
	}

	if err := s.logAudit(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("audit log write failed")
	}

	return nil
}

// RevokeScope removes whatever role a principal holds in a scope pair.
// A no-op if the pair is empty.
//
// Example:
//
//	err := service.RevokeScope(ctx, targetUserID, "company", companyID)
func (s *Service) RevokeScope(ctx context.Context, userID, scopeType, scopeID string) error {
	role, err := s.getScopeRole(ctx, userID, scopeType, scopeID)
	if err != nil {
		return err
	}
	if role == "" {
		return nil
	}
	return s.Revoke(ctx, userID, role, scopeType, scopeID)
}

// RoleRevocation represents a role revocation operation for bulk operations.
type RoleRevocation struct {
	UserID    string
	Role      string
	ScopeType string
	ScopeID   string
}

// AssignMultiple assigns roles to several principals in one transaction.
// If any assignment fails, all of them roll back.
//
// Example:
//
//	assignments := []core.RoleAssignment{
//	    {UserID: "user1", Role: "owner", ScopeType: "company", ScopeID: "co1"},
//	    {UserID: "user2", Role: "member", ScopeType: "company", ScopeID: "co1"},
//	}
//	err := service.AssignMultiple(ctx, assignments)
func (s *Service) AssignMultiple(ctx context.Context, assignments []RoleAssignment) error {
	return s.Transaction(ctx, func(ctx context.Context) error {
		for _, a := range assignments {
			if err := s.Assign(ctx, a.UserID, a.Role, a.ScopeType, a.ScopeID); err != nil {
				return err
			}
		}
		return nil
	})
}

// RevokeMultiple revokes several roles in one transaction.
// If any revocation fails, all of them roll back.
func (s *Service) RevokeMultiple(ctx context.Context, revocations []RoleRevocation) error {
	return s.Transaction(ctx, func(ctx context.Context) error {
		for _, r := range revocations {
			if err := s.Revoke(ctx, r.UserID, r.Role, r.ScopeType, r.ScopeID); err != nil {
				return err
			}
		}
		return nil
	})
}
