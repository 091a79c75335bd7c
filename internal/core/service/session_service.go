package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/assettracker/admin-console/internal/core/domain"
	"github.com/assettracker/admin-console/internal/core/ports"
)

const (
	defaultSessionTTL = 14 * 24 * time.Hour
	tokenBytes        = 32
)

// SessionService implements the session lifecycle over a token store:
// Active -> Expired (absolute timeout) and Active -> Revoked (logout),
// both irreversible. Expiry is checked lazily on every resolve; the store
// TTL only cleans up behind it.
type SessionService struct {
	store  ports.SessionStore
	ttl    time.Duration
	logger zerolog.Logger

	// now is swapped out in tests.
	now func() time.Time
}

func NewSessionService(store ports.SessionStore, ttl time.Duration, logger zerolog.Logger) *SessionService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionService{store: store, ttl: ttl, logger: logger, now: time.Now}
}

// Create issues a cryptographically random token bound to the principal.
// The expiry is fixed at issuance and never refreshed on access.
func (s *SessionService) Create(ctx context.Context, principal *domain.Principal) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}

	now := s.now().UTC()
	session := &domain.Session{
		Token:     token,
		Principal: *principal,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.store.Put(ctx, session); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	s.logger.Info().
		Str("username", principal.Username).
		Time("expires_at", session.ExpiresAt).
		Msg("session issued")

	return token, nil
}

// Resolve maps a token back to its principal. Unknown, revoked, and
// expired tokens all yield (nil, nil); an expired record still present in
// the store is deleted on the way out but is never resolvable.
func (s *SessionService) Resolve(ctx context.Context, token string) (*domain.Principal, error) {
	if token == "" {
		return nil, nil
	}

	session, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		return nil, nil
	}

	if session.Expired(s.now().UTC()) {
		if err := s.store.Delete(ctx, token); err != nil {
			s.logger.Warn().Err(err).Msg("failed to drop expired session")
		}
		return nil, nil
	}

	principal := session.Principal
	return &principal, nil
}

// Revoke removes the session so subsequent resolves return no principal.
// Revoking an unknown token is a no-op.
func (s *SessionService) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.store.Delete(ctx, token); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
