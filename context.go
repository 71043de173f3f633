package core

import (
	"context"
)

// Context keys for values carried through request handling.
type contextKey string

const (
	contextKeyUserID    contextKey = "core:user_id"
	contextKeyActorID   contextKey = "core:actor_id"
	contextKeyIPAddress contextKey = "core:ip_address"
	contextKeyUserAgent contextKey = "core:user_agent"
	contextKeyRequestID contextKey = "core:request_id"
	contextKeyChecker   contextKey = "core:checker"
)

func stringFromContext(ctx context.Context, key contextKey) string {
	s, _ := ctx.Value(key).(string)
	return s
}

// WithUserID adds a user ID to the context. This is the principal being
// checked for permissions.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextKeyUserID, userID)
}

// GetUserID retrieves the user ID from context, or "" if not set.
func GetUserID(ctx context.Context) string {
	return stringFromContext(ctx, contextKeyUserID)
}

// MustGetUserID retrieves the user ID from context and panics if not set.
func MustGetUserID(ctx context.Context) string {
	userID := GetUserID(ctx)
	if userID == "" {
		panic("core: user ID not in context")
	}
	return userID
}

// WithActorID adds an actor ID to the context. This is the user performing
// the action, recorded for audit purposes. Usually the same as the user ID
// but can differ for administrative actions done on someone's behalf.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, contextKeyActorID, actorID)
}

// GetActorID retrieves the actor ID from context, falling back to the user
// ID when no actor is explicitly set.
func GetActorID(ctx context.Context) string {
	if actorID := stringFromContext(ctx, contextKeyActorID); actorID != "" {
		return actorID
	}
	return GetUserID(ctx)
}

// WithIPAddress adds the client IP address to the context (for audit).
func WithIPAddress(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, contextKeyIPAddress, ip)
}

// GetIPAddress retrieves the IP address from context.
func GetIPAddress(ctx context.Context) string {
	return stringFromContext(ctx, contextKeyIPAddress)
}

// WithUserAgent adds the user agent to the context (for audit).
func WithUserAgent(ctx context.Context, ua string) context.Context {
	return context.WithValue(ctx, contextKeyUserAgent, ua)
}

// GetUserAgent retrieves the user agent from context.
func GetUserAgent(ctx context.Context) string {
	return stringFromContext(ctx, contextKeyUserAgent)
}

// WithRequestID adds a request ID to the context (for audit correlation).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID, requestID)
}

// GetRequestID retrieves the request ID from context.
func GetRequestID(ctx context.Context) string {
	return stringFromContext(ctx, contextKeyRequestID)
}

// WithChecker adds a Checker to the context. Set by middleware so handlers
// can make further permission checks without another round trip.
func WithChecker(ctx context.Context, checker *Checker) context.Context {
	return context.WithValue(ctx, contextKeyChecker, checker)
}

// CheckerFromContext retrieves the Checker from context, or nil if not set.
func CheckerFromContext(ctx context.Context) *Checker {
	checker, _ := ctx.Value(contextKeyChecker).(*Checker)
	return checker
}

// AuditContext holds all audit-related information from context.
type AuditContext struct {
	ActorID   string
	IPAddress string
	UserAgent string
	RequestID string
}

// GetAuditContext extracts all audit information from context.
func GetAuditContext(ctx context.Context) AuditContext {
	return AuditContext{
		ActorID:   GetActorID(ctx),
		IPAddress: GetIPAddress(ctx),
		UserAgent: GetUserAgent(ctx),
		RequestID: GetRequestID(ctx),
	}
}

// WithAuditContext adds all audit information to context at once.
func WithAuditContext(ctx context.Context, ac AuditContext) context.Context {
	if ac.ActorID != "" {
		ctx = WithActorID(ctx, ac.ActorID)
	}
	if ac.IPAddress != "" {
		ctx = WithIPAddress(ctx, ac.IPAddress)
	}
	if ac.UserAgent != "" {
		ctx = WithUserAgent(ctx, ac.UserAgent)
	}
	if ac.RequestID != "" {
		ctx = WithRequestID(ctx, ac.RequestID)
	}
	return ctx
}
