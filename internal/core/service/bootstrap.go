package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/assettracker/admin-console/internal/core/domain"
	"github.com/assettracker/admin-console/internal/core/ports"
)

// BootstrapAdmin holds the credentials of the initial administrator
// account. An empty password disables account creation (roles are still
// seeded).
type BootstrapAdmin struct {
	Username string
	Email    string
	Password string
}

// builtinRoles is the seeded role catalog. Seeding never overwrites an
// existing definition, so operators can adjust permissions in storage.
func builtinRoles() []*domain.Role {
	return []*domain.Role{
		{Name: domain.RoleAdmin, Permissions: []string{domain.PermUsersRead, domain.PermUsersWrite, domain.PermAuditRead}},
		{Name: domain.RoleOperator, Permissions: []string{domain.PermUsersRead, domain.PermUsersWrite}},
		{Name: domain.RoleViewer, Permissions: []string{domain.PermUsersRead}},
	}
}

// Bootstrap seeds the built-in roles and guarantees an initial admin
// account, so a fresh deployment has a principal able to pass the gate.
// Safe to run on every startup.
func Bootstrap(ctx context.Context, users ports.UserRepository, roles ports.RoleRepository, admin BootstrapAdmin, logger zerolog.Logger) error {
	for _, role := range builtinRoles() {
		if err := roles.Seed(ctx, role); err != nil {
			return fmt.Errorf("seed role %s: %w", role.Name, err)
		}
	}

	if admin.Password == "" {
		logger.Warn().Msg("bootstrap admin password not set, skipping admin account creation")
		return nil
	}

	_, err := users.FindByUsername(ctx, admin.Username)
	if err == nil {
		logger.Debug().Str("username", admin.Username).Msg("bootstrap admin already exists")
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("look up bootstrap admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash bootstrap admin password: %w", err)
	}

	now := time.Now().UTC()
	created, err := users.Create(ctx, &domain.User{
		Username:     admin.Username,
		Email:        admin.Email,
		PasswordHash: string(hash),
		Active:       true,
		Roles:        []string{domain.RoleAdmin},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// Lost a race against a concurrent replica: the account exists.
		if errors.Is(err, domain.ErrUserExists) {
			return nil
		}
		return fmt.Errorf("create bootstrap admin: %w", err)
	}

	logger.Info().Str("username", created.Username).Int64("user_id", created.ID).Msg("bootstrap admin created")
	return nil
}
