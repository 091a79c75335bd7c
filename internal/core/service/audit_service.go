package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/assettracker/admin-console/internal/core/domain"
	"github.com/assettracker/admin-console/internal/core/ports"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

type auditService struct {
	repo   ports.AuditRepository
	gate   ports.Authorizer
	logger zerolog.Logger
}

// NewAuditService returns an AuditService implementation backed by repo.
func NewAuditService(repo ports.AuditRepository, gate ports.Authorizer, logger zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, gate: gate, logger: logger}
}

// Process persists a single audit event. Called by the dispatcher workers,
// never directly by request handlers.
func (s *auditService) Process(ctx context.Context, event domain.AuditEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("persist audit event: %w", err)
	}

	s.logger.Debug().
		Str("actor", event.Actor).
		Str("action", event.Action).
		Int64("target_id", event.TargetID).
		Msg("audit event recorded")

	return nil
}

// ListRecent returns the newest events first. The limit is defaulted and
// capped so a single request cannot drag the whole trail into memory.
func (s *auditService) ListRecent(ctx context.Context, actor *domain.Principal, limit int) ([]*domain.AuditEvent, error) {
	if err := s.gate.Authorize(actor, domain.PermAuditRead); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}
	return s.repo.ListRecent(ctx, limit)
}
