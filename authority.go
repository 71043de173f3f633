package core

// Request describes one authorization question: may the principal perform
// Action on resources of kind Resource, optionally narrowed to a specific
// resource instance, within an optional context instance.
type Request struct {
	Action   string
	Resource string

	// ResourceID optionally narrows the request to one resource instance.
	// Grants are kind-level, so a role that grants the (action, resource)
	// pair authorizes every instance of the kind; the ID travels with the
	// request for diagnostics and audit.
	ResourceID string

	// Context is the context instance the request happens in (e.g., which
	// company). Scoped roles contribute nothing without a matching context.
	Context *Scope
}

// Permission returns the structural permission the request asks for.
func (r Request) Permission() Permission {
	return Perm(r.Resource, r.Action)
}

// RequestOption configures optional request parameters.
type RequestOption func(*Request)

// OnInstance narrows the request to a specific resource instance.
func OnInstance(resourceID string) RequestOption {
	return func(r *Request) {
		r.ResourceID = resourceID
	}
}

// InContext supplies the context instance the request happens in.
func InContext(scope Scope) RequestOption {
	return func(r *Request) {
		r.Context = &scope
	}
}

// NewRequest builds a Request from an action, a resource kind, and options.
func NewRequest(action, resource string, opts ...RequestOption) Request {
	req := Request{Action: action, Resource: resource}
	for _, opt := range opts {
		opt(&req)
	}
	return req
}

// Grants answers, for a single role binding, whether it grants the request.
// It is a pure function of the role's stored grants and the request; no
// external state is consulted.
//
// Two scope behaviors exist:
//
//   - roles in an unscoped scope type ("global") grant independent of any
//     context instance
//   - roles in a scoped type ("company") grant only when the request carries
//     a matching context instance; with no context, or a context for a
//     different instance, the binding contributes nothing
func Grants(def *RoleDefinition, binding Binding, req Request) bool {
	if def == nil {
		return false
	}

	if !def.scope.IsUnscoped() {
		if req.Context == nil {
			return false
		}
		if req.Context.Type != binding.Scope.Type {
			return false
		}
		if !binding.Scope.IsWildcard() && binding.Scope.ID != req.Context.ID {
			return false
		}
	}

	return DefaultMatcher.MatchAny(def.grants, req.Permission().String())
}
