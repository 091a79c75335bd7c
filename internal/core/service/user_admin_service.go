package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/assettracker/admin-console/internal/core/domain"
	"github.com/assettracker/admin-console/internal/core/ports"
)

const minPasswordLength = 8

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]{3,30}$`)

// UserAdminService implements administrative CRUD over user accounts.
// Every operation passes the gate before touching storage, and every
// validation failure happens before any mutation.
type UserAdminService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	gate   ports.Authorizer
	audit  ports.AuditSink
	logger zerolog.Logger
}

func NewUserAdminService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	gate ports.Authorizer,
	audit ports.AuditSink,
	logger zerolog.Logger,
) *UserAdminService {
	return &UserAdminService{users: users, roles: roles, gate: gate, audit: audit, logger: logger}
}

// CreateUser validates all fields, hashes the password, and stores the new
// account with zero or one role assigned.
func (s *UserAdminService) CreateUser(ctx context.Context, actor *domain.Principal, input ports.CreateUserInput) (*domain.User, error) {
	if err := s.gate.Authorize(actor, domain.PermUsersWrite); err != nil {
		return nil, err
	}
	if err := validateNewUser(input); err != nil {
		return nil, err
	}
	roles, err := s.resolveRole(ctx, input.Role)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Active:       true,
		Roles:        roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("username", created.Username).
		Int64("user_id", created.ID).
		Strs("roles", created.Roles).
		Str("actor", actor.Username).
		Msg("user created")
	s.emit(actor, domain.AuditUserCreated, created.ID, "username="+created.Username)

	return created, nil
}

// ListUsers returns every account, username ascending. No pagination: the
// console is an internal tool with a bounded user population.
func (s *UserAdminService) ListUsers(ctx context.Context, actor *domain.Principal) ([]*domain.User, error) {
	if err := s.gate.Authorize(actor, domain.PermUsersRead); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

// ListRoles returns the role catalog for the edit form.
func (s *UserAdminService) ListRoles(ctx context.Context, actor *domain.Principal) ([]*domain.Role, error) {
	if err := s.gate.Authorize(actor, domain.PermUsersRead); err != nil {
		return nil, err
	}
	return s.roles.List(ctx)
}

// UpdateUser applies the provided fields to an existing account. Username,
// password hash, id, and CreatedAt are never touched. A non-nil Role is a
// full replace of the role set: existing links are cleared, then the one
// given is added (or none, for an empty string).
func (s *UserAdminService) UpdateUser(ctx context.Context, actor *domain.Principal, id int64, input ports.UpdateUserInput) (*domain.User, error) {
	if err := s.gate.Authorize(actor, domain.PermUsersWrite); err != nil {
		return nil, err
	}

	if input.Email != nil {
		if err := validateEmail(*input.Email); err != nil {
			return nil, err
		}
	}
	var roles []string
	if input.Role != nil {
		resolved, err := s.resolveRole(ctx, *input.Role)
		if err != nil {
			return nil, err
		}
		roles = resolved
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Active != nil {
		user.Active = *input.Active
	}
	if input.Role != nil {
		user.Roles = roles
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("actor", actor.Username).
		Msg("user updated")
	s.emit(actor, domain.AuditUserUpdated, user.ID, "username="+user.Username)

	return user, nil
}

// Deactivate clears the active flag. Idempotent: deactivating an already
// inactive account succeeds.
func (s *UserAdminService) Deactivate(ctx context.Context, actor *domain.Principal, id int64) error {
	return s.setActive(ctx, actor, id, false, domain.AuditUserDeactivated)
}

// Reactivate restores the active flag, and with it the ability to
// authenticate with unchanged credentials.
func (s *UserAdminService) Reactivate(ctx context.Context, actor *domain.Principal, id int64) error {
	return s.setActive(ctx, actor, id, true, domain.AuditUserReactivated)
}

func (s *UserAdminService) setActive(ctx context.Context, actor *domain.Principal, id int64, active bool, action string) error {
	if err := s.gate.Authorize(actor, domain.PermUsersWrite); err != nil {
		return err
	}
	if err := s.users.SetActive(ctx, id, active); err != nil {
		return err
	}

	s.logger.Info().
		Int64("user_id", id).
		Bool("active", active).
		Str("actor", actor.Username).
		Msg("active flag changed")
	s.emit(actor, action, id, "")

	return nil
}

// resolveRole maps an optional role name to the stored role set. An empty
// name yields no roles; an unknown name is a field-level validation error.
func (s *UserAdminService) resolveRole(ctx context.Context, name string) ([]string, error) {
	if name == "" {
		return nil, nil
	}
	role, err := s.roles.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return nil, &domain.ValidationError{Field: "role", Msg: "unknown role"}
		}
		return nil, err
	}
	return []string{role.Name}, nil
}

func (s *UserAdminService) emit(actor *domain.Principal, action string, targetID int64, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(domain.AuditEvent{
		Actor:     actor.Username,
		Action:    action,
		TargetID:  targetID,
		Detail:    detail,
		Timestamp: time.Now().UTC(),
	})
}

func validateNewUser(input ports.CreateUserInput) error {
	if !usernamePattern.MatchString(input.Username) {
		return &domain.ValidationError{Field: "username", Msg: "must be 3-30 alphanumeric characters"}
	}
	if err := validateEmail(input.Email); err != nil {
		return err
	}
	if utf8.RuneCountInString(input.Password) < minPasswordLength {
		return &domain.ValidationError{Field: "password", Msg: fmt.Sprintf("must be at least %d characters", minPasswordLength)}
	}
	return nil
}

func validateEmail(email string) error {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t") {
		return &domain.ValidationError{Field: "email", Msg: "enter a valid email address"}
	}
	return nil
}
