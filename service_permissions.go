package core

import "context"

// ============================================================================
// PERMISSION CHECKING
// ============================================================================

// HasRole checks if a principal holds a specific role in a scope.
//
// Example:
//
//	if service.HasRole(ctx, userID, "admin", "company", companyID) {
//	    // principal is a company admin
//	}
func (s *Service) HasRole(ctx context.Context, userID, role, scopeType, scopeID string) bool {
	set, err := s.GetRoleSet(ctx, userID)
	if err != nil {
		return false
	}
	return set.HasRole(role, scopeType, scopeID)
}

// Can checks if a principal may perform an action on a resource kind, using
// the principal's stored roles. Pass options to narrow the request.
//
// Example:
//
//	if service.Can(ctx, userID, "update", "member", core.InContext(core.CompanyScope(companyID))) {
//	    // principal may update members of this company
//	}
func (s *Service) Can(ctx context.Context, userID, action, resource string, opts ...RequestOption) bool {
	checker, err := s.GetChecker(ctx, userID)
	if err != nil {
		return false
	}
	return checker.Can(action, resource, opts...)
}

// Decide answers an authorization request against a principal's stored
// roles with a full Decision, surfacing configuration faults as errors.
func (s *Service) Decide(ctx context.Context, userID, action, resource string, opts ...RequestOption) (Decision, error) {
	checker, err := s.GetChecker(ctx, userID)
	if err != nil {
		return Decision{}, err
	}
	return checker.Decide(action, resource, opts...)
}

// CanAssignRole checks if a principal can assign a role to another principal
// in a scope.
func (s *Service) CanAssignRole(ctx context.Context, userID, targetRole, scopeType, scopeID string) bool {
	checker, err := s.GetChecker(ctx, userID)
	if err != nil {
		return false
	}
	return checker.CanAssignRole(targetRole, scopeType, scopeID)
}
