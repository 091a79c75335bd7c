package ports

import (
	"context"

	"github.com/assettracker/admin-console/internal/core/domain"
)

// AuthService verifies credentials against the credential store.
type AuthService interface {
	// Authenticate returns the principal for a valid username/password
	// pair. Unknown users, wrong passwords, and inactive accounts are all
	// reported as domain.ErrInvalidCredentials so callers cannot probe for
	// existing usernames.
	Authenticate(ctx context.Context, username, password string) (*domain.Principal, error)
}

// SessionManager issues, resolves, and revokes opaque session tokens.
type SessionManager interface {
	Create(ctx context.Context, principal *domain.Principal) (string, error)
	// Resolve returns (nil, nil) for unknown, expired, and revoked tokens.
	Resolve(ctx context.Context, token string) (*domain.Principal, error)
	Revoke(ctx context.Context, token string) error
}

// SessionStore persists sessions keyed by token. Put applies the session's
// remaining lifetime as storage TTL; the manager still checks the expiry
// timestamp on every read, so the TTL is a sweep, not the guarantee.
type SessionStore interface {
	Put(ctx context.Context, session *domain.Session) error
	// Get returns (nil, nil) when the token is unknown.
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
}

// Authorizer decides whether a principal may perform an operation. The
// zero-principal case and the missing-permission case are distinguishable
// so the transport can answer 401 vs 403.
type Authorizer interface {
	// Authorize returns nil when allowed, domain.ErrUnauthenticated when
	// principal is nil, and domain.ErrForbidden otherwise.
	Authorize(principal *domain.Principal, permission string) error
}
