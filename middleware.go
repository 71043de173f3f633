package core

import (
	"net/http"
)

// Middleware provides HTTP middleware for role and permission checking.
// It is router-agnostic: the returned func(http.Handler) http.Handler shape
// works with chi, gorilla/mux, and the standard library mux alike.
type Middleware struct {
	service      *Service
	getUserID    func(*http.Request) string
	errorHandler func(http.ResponseWriter, *http.Request, error)
}

// MiddlewareOption configures the Middleware.
type MiddlewareOption func(*Middleware)

// NewMiddleware creates a new Middleware instance.
//
// Example:
//
//	mw := core.NewMiddleware(service,
//	    core.WithUserIDExtractor(func(r *http.Request) string {
//	        return r.Header.Get("X-User-ID")
//	    }),
//	)
func NewMiddleware(service *Service, opts ...MiddlewareOption) *Middleware {
	m := &Middleware{
		service:      service,
		getUserID:    defaultGetUserID,
		errorHandler: defaultErrorHandler,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// WithUserIDExtractor sets a custom function to extract the user ID from a
// request.
func WithUserIDExtractor(fn func(*http.Request) string) MiddlewareOption {
	return func(m *Middleware) {
		m.getUserID = fn
	}
}

// WithErrorHandler sets a custom error handler for middleware.
func WithErrorHandler(fn func(http.ResponseWriter, *http.Request, error)) MiddlewareOption {
	return func(m *Middleware) {
		m.errorHandler = fn
	}
}

func defaultGetUserID(r *http.Request) string {
	return GetUserID(r.Context())
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	if IsInsufficientPrivileges(err) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	if IsInvalidScope(err) || IsInvalidRoleDefinition(err) || IsInvalidPermission(err) {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// ScopeExtractor extracts scope information from an HTTP request.
type ScopeExtractor func(*http.Request) (scopeType, scopeID string, err error)

// ScopeFromParam creates a ScopeExtractor that reads the scope ID from URL
// parameters. Works with Go 1.22+ path values and with routers that store
// parameters in the request context.
//
// Example:
//
//	// For route /companies/{companyID}/members
//	mw.RequireRole(core.RoleAdmin, core.ScopeFromParam(core.ScopeCompany, "companyID"))
func ScopeFromParam(scopeType, paramName string) ScopeExtractor {
	return func(r *http.Request) (string, string, error) {
		scopeID := r.PathValue(paramName)
		if scopeID == "" {
			if v := r.Context().Value(paramName); v != nil {
				if s, ok := v.(string); ok {
					scopeID = s
				}
			}
		}
		if scopeID == "" {
			return "", "", NewError(ErrInvalidScope, "scope ID not found in request").
				WithScope(scopeType, "")
		}
		return scopeType, scopeID, nil
	}
}

// ScopeFromQuery creates a ScopeExtractor that reads the scope ID from a
// query parameter.
func ScopeFromQuery(scopeType, queryParam string) ScopeExtractor {
	return func(r *http.Request) (string, string, error) {
		scopeID := r.URL.Query().Get(queryParam)
		if scopeID == "" {
			return "", "", NewError(ErrInvalidScope, "scope ID not found in query").
				WithScope(scopeType, "")
		}
		return scopeType, scopeID, nil
	}
}

// ScopeFromHeader creates a ScopeExtractor that reads the scope ID from a
// header.
//
// Example:
//
//	mw.RequireRole(core.RoleMember, core.ScopeFromHeader(core.ScopeCompany, "X-Company-ID"))
func ScopeFromHeader(scopeType, headerName string) ScopeExtractor {
	return func(r *http.Request) (string, string, error) {
		scopeID := r.Header.Get(headerName)
		if scopeID == "" {
			return "", "", NewError(ErrInvalidScope, "scope ID not found in header").
				WithScope(scopeType, "")
		}
		return scopeType, scopeID, nil
	}
}

// StaticScope creates a ScopeExtractor that always returns the same scope.
// Useful for system-wide resources.
//
// Example:
//
//	mw.RequireRole(core.RoleSuperAdmin, core.StaticScope(core.ScopeGlobal, "*"))
func StaticScope(scopeType, scopeID string) ScopeExtractor {
	return func(r *http.Request) (string, string, error) {
		return scopeType, scopeID, nil
	}
}

// RequireRole creates middleware that requires a specific role in a scope.
//
// Example:
//
//	router.With(mw.RequireRole(core.RoleAdmin, core.ScopeFromParam(core.ScopeCompany, "companyID"))).
//	    Post("/companies/{companyID}/settings", updateSettingsHandler)
func (m *Middleware) RequireRole(role string, extractor ScopeExtractor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			userID := m.getUserID(r)
			if userID == "" {
				m.errorHandler(w, r, ErrNoUserID)
				return
			}

			scopeType, scopeID, err := extractor(r)
			if err != nil {
				m.errorHandler(w, r, err)
				return
			}

			if !m.service.HasRole(ctx, userID, role, scopeType, scopeID) {
				m.errorHandler(w, r, NewError(ErrInsufficientPrivileges, "missing required role").
					WithScope(scopeType, scopeID).
					WithRole(role).
					WithUser(userID))
				return
			}

			if checker, err := m.service.GetChecker(ctx, userID); err == nil {
				ctx = WithChecker(ctx, checker)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAnyRole creates middleware that requires any of the given roles in
// a scope.
func (m *Middleware) RequireAnyRole(roles []string, extractor ScopeExtractor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			userID := m.getUserID(r)
			if userID == "" {
				m.errorHandler(w, r, ErrNoUserID)
				return
			}

			scopeType, scopeID, err := extractor(r)
			if err != nil {
				m.errorHandler(w, r, err)
				return
			}

			checker, err := m.service.GetChecker(ctx, userID)
			if err != nil {
				m.errorHandler(w, r, err)
				return
			}

			if !checker.HasAnyRole(roles, scopeType, scopeID) {
				m.errorHandler(w, r, NewError(ErrInsufficientPrivileges, "missing required role").
					WithScope(scopeType, scopeID).
					WithUser(userID))
				return
			}

			ctx = WithChecker(ctx, checker)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePermission creates middleware that requires a "resource.action"
// permission in the extracted scope.
//
// Example:
//
//	router.With(mw.RequirePermission("member.create", core.ScopeFromParam(core.ScopeCompany, "companyID"))).
//	    Post("/companies/{companyID}/members", createMemberHandler)
func (m *Middleware) RequirePermission(permission string, extractor ScopeExtractor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			userID := m.getUserID(r)
			if userID == "" {
				m.errorHandler(w, r, ErrNoUserID)
				return
			}

			perm, err := ParsePermission(permission)
			if err != nil {
				m.errorHandler(w, r, err)
				return
			}

			scopeType, scopeID, err := extractor(r)
			if err != nil {
				m.errorHandler(w, r, err)
				return
			}

			if !m.service.Can(ctx, userID, perm.Action, perm.Resource, InContext(NewScope(scopeType, scopeID))) {
				m.errorHandler(w, r, NewError(ErrInsufficientPrivileges, "missing required permission").
					WithScope(scopeType, scopeID).
					WithUser(userID))
				return
			}

			if checker, err := m.service.GetChecker(ctx, userID); err == nil {
				ctx = WithChecker(ctx, checker)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAnyPermission creates middleware that requires any of the given
// "resource.action" permissions in the extracted scope.
func (m *Middleware) RequireAnyPermission(permissions []string, extractor ScopeExtractor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			userID := m.getUserID(r)
			if userID == "" {
				m.errorHandler(w, r, ErrNoUserID)
				return
			}

			scopeType, scopeID, err := extractor(r)
			if err != nil {
				m.errorHandler(w, r, err)
				return
			}

			checker, err := m.service.GetChecker(ctx, userID)
			if err != nil {
				m.errorHandler(w, r, err)
				return
			}

			allowed := false
			for _, permission := range permissions {
				perm, err := ParsePermission(permission)
				if err != nil {
					m.errorHandler(w, r, err)
					return
				}
				if checker.Can(perm.Action, perm.Resource, InContext(NewScope(scopeType, scopeID))) {
					allowed = true
					break
				}
			}

			if !allowed {
				m.errorHandler(w, r, NewError(ErrInsufficientPrivileges, "missing required permission").
					WithScope(scopeType, scopeID).
					WithUser(userID))
				return
			}

			ctx = WithChecker(ctx, checker)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoadChecker creates middleware that loads the user's Checker into context.
// Use this when permission checks belong in the handler rather than in
// middleware.
//
// Example:
//
//	router.With(mw.LoadChecker()).Get("/dashboard", dashboardHandler)
//
//	func dashboardHandler(w http.ResponseWriter, r *http.Request) {
//	    checker := core.CheckerFromContext(r.Context())
//	    if checker != nil && checker.HasRole(core.RoleAdmin, core.ScopeCompany, companyID) {
//	        // show admin features
//	    }
//	}
func (m *Middleware) LoadChecker() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			userID := m.getUserID(r)
			if userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			checker, err := m.service.GetChecker(ctx, userID)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx = WithChecker(ctx, checker)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// InjectAuditContext creates middleware that extracts audit information from
// the request and adds it to the context for role assignment operations.
//
// Example:
//
//	router.Use(mw.InjectAuditContext())
func (m *Middleware) InjectAuditContext() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			ip := r.Header.Get("X-Forwarded-For")
			if ip == "" {
				ip = r.Header.Get("X-Real-IP")
			}
			if ip == "" {
				ip = r.RemoteAddr
			}
			ctx = WithIPAddress(ctx, ip)
			ctx = WithUserAgent(ctx, r.UserAgent())

			if requestID := r.Header.Get("X-Request-ID"); requestID != "" {
				ctx = WithRequestID(ctx, requestID)
			}

			if userID := m.getUserID(r); userID != "" {
				ctx = WithActorID(ctx, userID)
				ctx = WithUserID(ctx, userID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
