package service

import (
	"context"
	"errors"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/assettracker/admin-console/internal/core/domain"
	"github.com/assettracker/admin-console/internal/core/ports"
)

// phantomHash is a valid bcrypt hash compared against when the username is
// unknown, so both failure paths cost one bcrypt comparison.
var phantomHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// AuthService verifies credentials and builds the principal handed to the
// session manager.
type AuthService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, roles ports.RoleRepository, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, roles: roles, logger: logger}
}

// Authenticate looks up the user, compares the bcrypt hash, and rejects
// inactive accounts. Every rejection is domain.ErrInvalidCredentials: the
// caller cannot tell an unknown username from a wrong password or a
// deactivated account.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.Principal, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(phantomHash, []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.logger.Debug().Str("username", username).Msg("password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	if !user.Active {
		s.logger.Info().Str("username", username).Msg("login attempt on inactive account")
		return nil, domain.ErrInvalidCredentials
	}

	perms, err := s.permissionsFor(ctx, user.Roles)
	if err != nil {
		return nil, err
	}

	return &domain.Principal{
		UserID:      user.ID,
		Username:    user.Username,
		Roles:       user.Roles,
		Permissions: perms,
	}, nil
}

// permissionsFor resolves role names to the union of their permissions.
// Roles deleted since the user was saved are skipped rather than failing
// the login.
func (s *AuthService) permissionsFor(ctx context.Context, roleNames []string) ([]string, error) {
	seen := make(map[string]struct{})
	for _, name := range roleNames {
		role, err := s.roles.FindByName(ctx, name)
		if err != nil {
			if errors.Is(err, domain.ErrRoleNotFound) {
				s.logger.Warn().Str("role", name).Msg("user references unknown role")
				continue
			}
			return nil, err
		}
		for _, perm := range role.Permissions {
			seen[perm] = struct{}{}
		}
	}

	perms := make([]string, 0, len(seen))
	for perm := range seen {
		perms = append(perms, perm)
	}
	sort.Strings(perms)
	return perms, nil
}
