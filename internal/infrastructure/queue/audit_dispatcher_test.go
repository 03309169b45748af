package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/chooy/admin-console/internal/core/domain"
)

type recordingRepo struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (r *recordingRepo) Record(_ context.Context, entry *domain.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *recordingRepo) Recent(_ context.Context, limit int) ([]domain.AuditEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuditEntry, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

func (r *recordingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func TestAuditDispatcher_DeliversAllEntries(t *testing.T) {
	repo := &recordingRepo{}
	d := NewAuditDispatcher(4, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	const n = 40
	for i := 0; i < n; i++ {
		entry := &domain.AuditEntry{ActorID: "op1", Action: "user.activate", Resource: "user"}
		if err := d.Record(context.Background(), entry); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}

	deadline := time.Now().Add(2 * time.Second)
	for repo.count() < n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d entries delivered, got %d", n, repo.count())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestAuditDispatcher_SameActorKeepsOrder(t *testing.T) {
	repo := &recordingRepo{}
	d := NewAuditDispatcher(4, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	actions := []string{"user.activate", "user.deactivate", "user.role.staff"}
	for _, action := range actions {
		_ = d.Record(context.Background(), &domain.AuditEntry{ActorID: "op1", Action: action})
	}

	deadline := time.Now().Add(2 * time.Second)
	for repo.count() < len(actions) {
		if time.Now().After(deadline) {
			t.Fatalf("entries not delivered in time")
		}
		time.Sleep(5 * time.Millisecond)
	}

	got, _ := repo.Recent(context.Background(), 0)
	for i, action := range actions {
		if got[i].Action != action {
			t.Fatalf("per-actor order broken: %v", got)
		}
	}
}

func TestAuditDispatcher_RecentDelegates(t *testing.T) {
	repo := &recordingRepo{entries: []domain.AuditEntry{{Action: "book.create"}}}
	d := NewAuditDispatcher(1, repo, zerolog.Nop())

	got, err := d.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(got) != 1 || got[0].Action != "book.create" {
		t.Fatalf("unexpected entries: %+v", got)
	}
}
