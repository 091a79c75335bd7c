package ports

import (
	"context"

	"github.com/assettracker/admin-console/internal/core/domain"
)

// CreateUserInput carries all data needed to create a new account.
type CreateUserInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	// Role is optional; accounts hold zero or one role.
	Role string
}

// UpdateUserInput carries the mutable fields of an account. Nil pointers
// leave the current value untouched. Role is a full replace: a non-nil
// empty string clears the role set.
type UpdateUserInput struct {
	Email     *string
	FirstName *string
	LastName  *string
	Active    *bool
	Role      *string
}

// UserAdminService is the administrative CRUD surface over user records.
// Every operation authorizes the acting principal before touching storage.
type UserAdminService interface {
	CreateUser(ctx context.Context, actor *domain.Principal, input CreateUserInput) (*domain.User, error)
	// ListUsers returns all users ordered by username ascending.
	ListUsers(ctx context.Context, actor *domain.Principal) ([]*domain.User, error)
	ListRoles(ctx context.Context, actor *domain.Principal) ([]*domain.Role, error)
	// UpdateUser never changes username, password hash, id, or CreatedAt.
	UpdateUser(ctx context.Context, actor *domain.Principal, id int64, input UpdateUserInput) (*domain.User, error)
	Deactivate(ctx context.Context, actor *domain.Principal, id int64) error
	Reactivate(ctx context.Context, actor *domain.Principal, id int64) error
}
