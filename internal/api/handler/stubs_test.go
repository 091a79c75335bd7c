package handler

import (
	"context"
	"sync"

	"github.com/assettracker/admin-console/internal/core/domain"
	"github.com/assettracker/admin-console/internal/core/ports"
)

type stubAuthService struct {
	authenticateFn func(ctx context.Context, username, password string) (*domain.Principal, error)
}

func (s *stubAuthService) Authenticate(ctx context.Context, username, password string) (*domain.Principal, error) {
	return s.authenticateFn(ctx, username, password)
}

type stubSessionManager struct {
	createFn  func(ctx context.Context, principal *domain.Principal) (string, error)
	resolveFn func(ctx context.Context, token string) (*domain.Principal, error)
	revokeFn  func(ctx context.Context, token string) error
}

func (s *stubSessionManager) Create(ctx context.Context, principal *domain.Principal) (string, error) {
	return s.createFn(ctx, principal)
}

func (s *stubSessionManager) Resolve(ctx context.Context, token string) (*domain.Principal, error) {
	if s.resolveFn == nil {
		return nil, nil
	}
	return s.resolveFn(ctx, token)
}

func (s *stubSessionManager) Revoke(ctx context.Context, token string) error {
	if s.revokeFn == nil {
		return nil
	}
	return s.revokeFn(ctx, token)
}

type stubUserRepo struct {
	countFn func(ctx context.Context) (int64, error)
}

func (s *stubUserRepo) FindByUsername(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserRepo) FindByID(context.Context, int64) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	return user, nil
}

func (s *stubUserRepo) Update(context.Context, *domain.User) error { return nil }

func (s *stubUserRepo) SetActive(context.Context, int64, bool) error { return nil }

func (s *stubUserRepo) List(context.Context) ([]*domain.User, error) { return nil, nil }

func (s *stubUserRepo) Count(ctx context.Context) (int64, error) {
	if s.countFn == nil {
		return 0, nil
	}
	return s.countFn(ctx)
}

type stubAuditSink struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (s *stubAuditSink) Enqueue(event domain.AuditEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *stubAuditSink) all() []domain.AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AuditEvent, len(s.events))
	copy(out, s.events)
	return out
}

type stubUserAdminService struct {
	createFn     func(ctx context.Context, actor *domain.Principal, input ports.CreateUserInput) (*domain.User, error)
	listFn       func(ctx context.Context, actor *domain.Principal) ([]*domain.User, error)
	listRolesFn  func(ctx context.Context, actor *domain.Principal) ([]*domain.Role, error)
	updateFn     func(ctx context.Context, actor *domain.Principal, id int64, input ports.UpdateUserInput) (*domain.User, error)
	deactivateFn func(ctx context.Context, actor *domain.Principal, id int64) error
	reactivateFn func(ctx context.Context, actor *domain.Principal, id int64) error
}

func (s *stubUserAdminService) CreateUser(ctx context.Context, actor *domain.Principal, input ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, actor, input)
}

func (s *stubUserAdminService) ListUsers(ctx context.Context, actor *domain.Principal) ([]*domain.User, error) {
	return s.listFn(ctx, actor)
}

func (s *stubUserAdminService) ListRoles(ctx context.Context, actor *domain.Principal) ([]*domain.Role, error) {
	return s.listRolesFn(ctx, actor)
}

func (s *stubUserAdminService) UpdateUser(ctx context.Context, actor *domain.Principal, id int64, input ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, actor, id, input)
}

func (s *stubUserAdminService) Deactivate(ctx context.Context, actor *domain.Principal, id int64) error {
	return s.deactivateFn(ctx, actor, id)
}

func (s *stubUserAdminService) Reactivate(ctx context.Context, actor *domain.Principal, id int64) error {
	return s.reactivateFn(ctx, actor, id)
}
