package core

import "fmt"

// Decision is the outcome of evaluating one request against a RoleSet.
// For diagnosability it names the first binding that granted access; the
// boolean itself is order-independent, since grants only ever add authority.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Role    string `json:"role,omitempty"`  // role that granted access, "" when denied
	Scope   *Scope `json:"scope,omitempty"` // scope of the granting binding
}

// Evaluator combines every role in a principal's RoleSet into one
// authorization decision. The model is union-only: the decision is the
// logical OR of per-binding grants, and there is no deny construct;
// absence of a granting role is the only way to deny.
type Evaluator struct {
	registry *Registry
}

// NewEvaluator creates an Evaluator over a role registry.
func NewEvaluator(registry *Registry) *Evaluator {
	return &Evaluator{registry: registry}
}

// Evaluate answers a request against a RoleSet snapshot.
//
// A denied request is a valid Decision{Allowed: false}, never an error.
// Errors mean the inputs are structurally broken: a malformed request, a
// binding with an empty scope type, or a role the registry does not define.
// Those are configuration faults, surfaced immediately rather than silently
// denying.
func (e *Evaluator) Evaluate(set *RoleSet, req Request) (Decision, error) {
	if req.Action == "" || req.Resource == "" {
		return Decision{}, NewError(ErrInvalidPermission, "request needs both action and resource kind")
	}

	bindings := set.Bindings()

	// Validate the whole set up front so configuration faults surface on
	// every evaluation, not only when a broken binding is reached first.
	defs := make([]*RoleDefinition, len(bindings))
	for i, b := range bindings {
		if b.Scope.Type == "" {
			return Decision{}, NewError(ErrInvalidRoleDefinition, "binding has no scope type").
				WithRole(b.Role)
		}
		scope := e.registry.GetScope(b.Scope.Type)
		if scope == nil {
			return Decision{}, fmt.Errorf("%w: scope type %q not defined", ErrInvalidRoleDefinition, b.Scope.Type)
		}
		def := scope.GetRole(b.Role)
		if def == nil {
			return Decision{}, fmt.Errorf("%w: role %q not defined for scope %q", ErrInvalidRoleDefinition, b.Role, b.Scope.Type)
		}
		defs[i] = def
	}

	for i, b := range bindings {
		if Grants(defs[i], b, req) {
			scope := b.Scope
			return Decision{Allowed: true, Role: b.Role, Scope: &scope}, nil
		}
	}

	return Decision{}, nil
}
