package core

import (
	"context"

	"github.com/fernandezvara/dbkit"
)

// ============================================================================
// DATA RETRIEVAL
// ============================================================================

// storedPrincipal is the Principal view of a principal whose roles live in
// the store rather than on a record.
type storedPrincipal struct {
	id  string
	set *RoleSet
}

func (p *storedPrincipal) PrincipalID() string { return p.id }
func (p *storedPrincipal) RoleSet() *RoleSet   { return p.set }

// GetRoleSet retrieves a principal's role bindings as one consistent
// snapshot. The unique index guarantees the snapshot satisfies the RoleSet
// invariant, so construction cannot fail on stored data.
func (s *Service) GetRoleSet(ctx context.Context, userID string) (*RoleSet, error) {
	var assignments []RoleAssignment
	err := dbkit.WithErr1(s.handle(ctx).NewSelect().Model(&assignments).Where("user_id = ?", userID).Scan(ctx), "GetRoleSet").Err()
	if err != nil {
		return nil, err
	}

	bindings := make([]Binding, 0, len(assignments))
	for _, a := range assignments {
		bindings = append(bindings, a.Binding())
	}
	return NewRoleSet(bindings...)
}

// GetPrincipal returns a Principal backed by the principal's stored roles,
// usable anywhere a record-backed principal is.
func (s *Service) GetPrincipal(ctx context.Context, userID string) (Principal, error) {
	set, err := s.GetRoleSet(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &storedPrincipal{id: userID, set: set}, nil
}

// GetChecker creates a Checker over a principal's stored roles.
// This can be stored in context for efficient permission checking in handlers.
func (s *Service) GetChecker(ctx context.Context, userID string) (*Checker, error) {
	principal, err := s.GetPrincipal(ctx, userID)
	if err != nil {
		return nil, err
	}
	return NewChecker(s.registry, principal), nil
}

// GetCheckerFromContext creates a Checker using the user ID from context.
func (s *Service) GetCheckerFromContext(ctx context.Context) (*Checker, error) {
	userID := GetUserID(ctx)
	if userID == "" {
		return nil, ErrNoUserID
	}
	return s.GetChecker(ctx, userID)
}

// GetScopeMembers retrieves all principals with a role in a scope.
func (s *Service) GetScopeMembers(ctx context.Context, scopeType, scopeID string) ([]RoleAssignment, error) {
	var assignments []RoleAssignment
	err := dbkit.WithErr1(s.handle(ctx).NewSelect().Model(&assignments).Where("scope_type = ? AND scope_id = ?", scopeType, scopeID).Scan(ctx), "GetScopeMembers").Err()
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// GetScopeMembersWithRole retrieves all principals holding a specific role
// in a scope.
func (s *Service) GetScopeMembersWithRole(ctx context.Context, role, scopeType, scopeID string) ([]RoleAssignment, error) {
	var assignments []RoleAssignment
	err := dbkit.WithErr1(s.handle(ctx).NewSelect().Model(&assignments).Where("scope_type = ? AND scope_id = ? AND role = ?", scopeType, scopeID, role).Scan(ctx), "GetScopeMembersWithRole").Err()
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// GetScopesWithRole returns all scope IDs of a type where a principal holds
// a specific role.
//
// Example:
//
//	companyIDs, err := service.GetScopesWithRole(ctx, userID, "admin", "company")
func (s *Service) GetScopesWithRole(ctx context.Context, userID, role, scopeType string) ([]string, error) {
	var scopeIDs []string
	err := dbkit.WithErr1(s.handle(ctx).NewRaw("SELECT scope_id FROM role_assignments WHERE user_id = ? AND role = ? AND scope_type = ?", userID, role, scopeType).Scan(ctx, &scopeIDs), "GetScopesWithRole").Err()
	if err != nil {
		return nil, err
	}
	return scopeIDs, nil
}

// GetScopesWithAnyRole returns all scope IDs of a type where a principal
// holds any role.
func (s *Service) GetScopesWithAnyRole(ctx context.Context, userID, scopeType string) ([]string, error) {
	var scopeIDs []string
	err := dbkit.WithErr1(s.handle(ctx).NewRaw("SELECT DISTINCT scope_id FROM role_assignments WHERE user_id = ? AND scope_type = ?", userID, scopeType).Scan(ctx, &scopeIDs), "GetScopesWithAnyRole").Err()
	if err != nil {
		return nil, err
	}
	return scopeIDs, nil
}
