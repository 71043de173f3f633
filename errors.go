package core

import (
	"errors"
	"fmt"
)

// Sentinel errors for core operations.
var (
	// ErrMissingField is returned when a builder is finalized before a
	// required field was set.
	ErrMissingField = errors.New("core: missing required field")

	// ErrDuplicateAssignment is returned when a principal is assigned a
	// second role for the same (scope type, scope ID) pair.
	ErrDuplicateAssignment = errors.New("core: duplicate scope assignment")

	// ErrInvalidRoleDefinition is returned when a role binding is
	// structurally broken: an empty scope type, or a role the registry
	// does not define for that scope. This is a configuration fault, not
	// an authorization outcome.
	ErrInvalidRoleDefinition = errors.New("core: invalid role definition")

	// ErrInvalidPermission is returned when a permission string is malformed.
	ErrInvalidPermission = errors.New("core: invalid permission")

	// ErrInvalidScope is returned when a scope type is not defined in the registry.
	ErrInvalidScope = errors.New("core: invalid scope")

	// ErrInsufficientPrivileges is returned by AccessCheck when a principal
	// lacks the requested permission.
	ErrInsufficientPrivileges = errors.New("core: insufficient privileges")

	// ErrCannotAssign is returned when an actor tries to assign or revoke a
	// role their own roles do not allow them to manage.
	ErrCannotAssign = errors.New("core: cannot assign role")

	// ErrNotAssigned is returned when revoking a role the principal does not hold.
	ErrNotAssigned = errors.New("core: role not assigned")

	// ErrNoActorID is returned when no actor ID is found in context for audit.
	ErrNoActorID = errors.New("core: no actor ID in context")

	// ErrNoUserID is returned when no user ID is found in context.
	ErrNoUserID = errors.New("core: no user ID in context")

	// ErrDatabaseError is returned when a database operation fails.
	ErrDatabaseError = errors.New("core: database error")
)

// Error wraps a sentinel error with additional context.
type Error struct {
	Err     error  // Underlying sentinel error
	Message string // Additional context
	Field   string // Record field involved (builders)
	Scope   string // Scope type involved
	ScopeID string // Scope ID involved
	Role    string // Role involved (if applicable)
	UserID  string // Principal involved (if applicable)
	ActorID string // Actor who triggered the error (if applicable)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is checks if the error matches a target error.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewError creates a new Error with context.
func NewError(err error, message string) *Error {
	return &Error{
		Err:     err,
		Message: message,
	}
}

// WithField adds the record field name to the error.
func (e *Error) WithField(field string) *Error {
	e.Field = field
	return e
}

// WithScope adds scope information to the error.
func (e *Error) WithScope(scopeType, scopeID string) *Error {
	e.Scope = scopeType
	e.ScopeID = scopeID
	return e
}

// WithRole adds role information to the error.
func (e *Error) WithRole(role string) *Error {
	e.Role = role
	return e
}

// WithUser adds principal information to the error.
func (e *Error) WithUser(userID string) *Error {
	e.UserID = userID
	return e
}

// WithActor adds actor information to the error.
func (e *Error) WithActor(actorID string) *Error {
	e.ActorID = actorID
	return e
}

// MissingField returns the name of the field a builder error is about.
// The second return is false if err is not a missing-field error.
func MissingField(err error) (string, bool) {
	if !errors.Is(err, ErrMissingField) {
		return "", false
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Field, true
	}
	return "", true
}

// IsMissingField checks if an error is a builder missing-field error.
func IsMissingField(err error) bool {
	return errors.Is(err, ErrMissingField)
}

// IsDuplicateAssignment checks if an error is a duplicate scope assignment.
func IsDuplicateAssignment(err error) bool {
	return errors.Is(err, ErrDuplicateAssignment)
}

// IsInvalidRoleDefinition checks if an error is a role configuration fault.
func IsInvalidRoleDefinition(err error) bool {
	return errors.Is(err, ErrInvalidRoleDefinition)
}

// IsInsufficientPrivileges checks if an error is an authorization failure.
func IsInsufficientPrivileges(err error) bool {
	return errors.Is(err, ErrInsufficientPrivileges)
}

// IsInvalidScope checks if an error is due to an undefined scope type.
func IsInvalidScope(err error) bool {
	return errors.Is(err, ErrInvalidScope)
}

// IsInvalidPermission checks if an error is a malformed permission.
func IsInvalidPermission(err error) bool {
	return errors.Is(err, ErrInvalidPermission)
}

// IsCannotAssign checks if an error is due to lacking assignment authority.
func IsCannotAssign(err error) bool {
	return errors.Is(err, ErrCannotAssign)
}
