package ports

import (
	"context"

	"github.com/assettracker/admin-console/internal/core/domain"
)

// AuditRepository persists the audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
	// ListRecent returns the newest events first, capped at limit.
	ListRecent(ctx context.Context, limit int) ([]*domain.AuditEvent, error)
}

// AuditService records and exposes the audit trail.
type AuditService interface {
	Process(ctx context.Context, event domain.AuditEvent) error
	ListRecent(ctx context.Context, actor *domain.Principal, limit int) ([]*domain.AuditEvent, error)
}

// AuditSink decouples event emitters from the worker pool draining them.
type AuditSink interface {
	Enqueue(event domain.AuditEvent)
}
