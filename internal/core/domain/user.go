package domain

import (
	"errors"
	"fmt"
	"time"
)

// Built-in role names seeded at bootstrap.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
	RoleViewer   = "viewer"
)

// Permissions checked by the authorization gate before administrative
// operations execute.
const (
	PermUsersRead  = "users.read"
	PermUsersWrite = "users.write"
	PermAuditRead  = "audit.read"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrRoleNotFound = errors.New("role not found")
var ErrUnauthenticated = errors.New("authentication required")
var ErrForbidden = errors.New("permission denied")

// ValidationError names the first field that failed validation so the
// caller can re-prompt for exactly that field. It is returned before any
// mutation; a rejected write never leaves a partial record behind.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// User is an administrable account. Deactivation stands in for deletion;
// records are never physically removed.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Active       bool      `json:"active"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Role is a named permission group. Storage supports many roles per user;
// the admin UI assigns zero or one.
type Role struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// Principal is the verified identity produced by authentication. The
// permission set is derived from the user's roles at login time and
// travels with the session.
type Principal struct {
	UserID      int64    `json:"user_id"`
	Username    string   `json:"username"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

// HasPermission reports whether perm is in the principal's derived set.
func (p *Principal) HasPermission(perm string) bool {
	for _, have := range p.Permissions {
		if have == perm {
			return true
		}
	}
	return false
}
