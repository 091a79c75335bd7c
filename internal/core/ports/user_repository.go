package ports

import (
	"context"

	"github.com/assettracker/admin-console/internal/core/domain"
)

// UserRepository is the credential store: persistence of user records with
// username uniqueness enforced at write time. It owns no business logic
// beyond lookup and mutation.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// Create assigns the id and returns the stored record. A conflicting
	// username fails with domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Update persists mutable fields (email, names, active flag, roles).
	// Username, password hash, id, and creation timestamp are not written.
	Update(ctx context.Context, user *domain.User) error
	SetActive(ctx context.Context, id int64, active bool) error
	// List returns all users ordered by username ascending.
	List(ctx context.Context) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
}

// RoleRepository persists named permission groups.
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context) ([]*domain.Role, error)
	// Seed inserts the role if absent, leaving an existing definition alone.
	Seed(ctx context.Context, role *domain.Role) error
}
