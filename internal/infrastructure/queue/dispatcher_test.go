package queue

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/assettracker/admin-console/internal/core/domain"
)

type captureAuditService struct {
	mu     sync.Mutex
	events []domain.AuditEvent
	done   chan struct{}
	want   int
}

func newCaptureAuditService(want int) *captureAuditService {
	return &captureAuditService{done: make(chan struct{}), want: want}
}

func (s *captureAuditService) Process(_ context.Context, event domain.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if len(s.events) == s.want {
		close(s.done)
	}
	return nil
}

func (s *captureAuditService) ListRecent(context.Context, *domain.Principal, int) ([]*domain.AuditEvent, error) {
	return nil, nil
}

func (s *captureAuditService) wait(t *testing.T) []domain.AuditEvent {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %d events", s.want)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AuditEvent, len(s.events))
	copy(out, s.events)
	return out
}

func TestDispatcher_DeliversEvents(t *testing.T) {
	svc := newCaptureAuditService(3)
	d := NewDispatcher(2, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(domain.AuditEvent{Actor: "alice", Action: domain.AuditLogin})
	d.Enqueue(domain.AuditEvent{Actor: "bob", Action: domain.AuditLogin})
	d.Enqueue(domain.AuditEvent{Actor: "alice", Action: domain.AuditLogout})

	events := svc.wait(t)
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
}

func TestDispatcher_SameActorInOrder(t *testing.T) {
	const n = 20
	svc := newCaptureAuditService(n)
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < n; i++ {
		d.Enqueue(domain.AuditEvent{
			Actor:  "alice",
			Action: domain.AuditUserUpdated,
			Detail: strconv.Itoa(i),
		})
	}

	events := svc.wait(t)
	for i, event := range events {
		if event.Detail != strconv.Itoa(i) {
			t.Fatalf("event %d out of order: detail %s", i, event.Detail)
		}
	}
}

func TestDispatcher_ShardIsStablePerActor(t *testing.T) {
	d := NewDispatcher(4, newCaptureAuditService(1), zerolog.Nop())

	first := d.shardIndex("alice")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("alice"); got != first {
			t.Fatalf("shard index changed: %d vs %d", got, first)
		}
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, newCaptureAuditService(1), zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
