package core

import (
	"strings"
)

// Permission identifies "may perform action on resources of this kind".
// Equality is structural: two permissions are the same iff both parts match.
type Permission struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// Perm builds a Permission from a resource kind and an action.
func Perm(resource, action string) Permission {
	return Permission{Resource: resource, Action: action}
}

// String returns the dotted wire form, e.g. "company.create".
func (p Permission) String() string {
	return p.Resource + "." + p.Action
}

// ParsePermission parses the dotted form back into a Permission.
func ParsePermission(s string) (Permission, error) {
	if err := ValidatePermission(s); err != nil {
		return Permission{}, err
	}
	if s == "*" {
		return Permission{Resource: "*", Action: "*"}, nil
	}
	idx := strings.LastIndex(s, ".")
	return Permission{Resource: s[:idx], Action: s[idx+1:]}, nil
}

// Matcher handles grant-pattern matching with wildcard support.
//
// Supported patterns:
//   - "*" matches all permissions
//   - "resource.*" matches all actions on a resource (e.g., "company.*" matches "company.update")
//   - "*.action" matches an action on all resources (e.g., "*.read" matches "account.read")
//   - "exact.match" matches exactly
type Matcher struct{}

// NewMatcher creates a new Matcher.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Match checks if a grant pattern matches a required permission.
//
// Examples:
//
//	Match("*", "company.update")              // true - wildcard matches all
//	Match("company.*", "company.update")      // true - resource wildcard
//	Match("*.read", "account.read")           // true - action wildcard
//	Match("company.update", "company.update") // true - exact match
//	Match("company.update", "company.delete") // false - no match
func (m *Matcher) Match(pattern, permission string) bool {
	if pattern == permission {
		return true
	}
	if pattern == "*" {
		return true
	}

	patternParts := strings.Split(pattern, ".")
	permParts := strings.Split(permission, ".")
	if len(patternParts) != len(permParts) {
		return false
	}

	for i, pp := range patternParts {
		if pp == "*" {
			continue
		}
		if pp != permParts[i] {
			return false
		}
	}
	return true
}

// MatchAny checks if any of the patterns match the required permission.
func (m *Matcher) MatchAny(patterns []string, permission string) bool {
	for _, pattern := range patterns {
		if m.Match(pattern, permission) {
			return true
		}
	}
	return false
}

// MatchPerm checks if a grant pattern matches a structural Permission.
func (m *Matcher) MatchPerm(pattern string, p Permission) bool {
	return m.Match(pattern, p.String())
}

// Expand returns all permissions from the known set that a list of grant
// patterns would allow. Useful for displaying what a role can do.
func (m *Matcher) Expand(patterns []string, all []Permission) []Permission {
	matched := make([]Permission, 0, len(all))
	for _, p := range all {
		if m.MatchAny(patterns, p.String()) {
			matched = append(matched, p)
		}
	}
	return matched
}

// ValidatePermission checks if a permission or grant pattern string is valid.
// A valid string is either "*" or a dot-separated pair of identifiers, where
// either part may be "*".
func ValidatePermission(permission string) error {
	if permission == "" {
		return NewError(ErrInvalidPermission, "permission cannot be empty")
	}
	if permission == "*" {
		return nil
	}

	parts := strings.Split(permission, ".")
	if len(parts) < 2 {
		return NewError(ErrInvalidPermission, "permission must have at least two parts (resource.action)")
	}
	for _, part := range parts {
		if part == "" {
			return NewError(ErrInvalidPermission, "permission parts cannot be empty")
		}
		if part == "*" {
			continue
		}
		for _, c := range part {
			if !isValidPermissionChar(c) {
				return NewError(ErrInvalidPermission, "permission contains invalid character")
			}
		}
	}
	return nil
}

func isValidPermissionChar(c rune) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '_'
}

// DefaultMatcher is the default grant matcher instance.
var DefaultMatcher = NewMatcher()

// MatchPermission is a convenience function using the default matcher.
func MatchPermission(pattern, permission string) bool {
	return DefaultMatcher.Match(pattern, permission)
}

// MatchAnyPermission is a convenience function using the default matcher.
func MatchAnyPermission(patterns []string, permission string) bool {
	return DefaultMatcher.MatchAny(patterns, permission)
}
