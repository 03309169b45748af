package queue

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/chooy/admin-console/internal/api/metrics"
	"github.com/chooy/admin-console/internal/core/domain"
	"github.com/chooy/admin-console/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 10 * time.Second
)

// AuditDispatcher decouples request handlers from the audit write path.
// Entries are routed to a fixed set of workers by hashing the actor id, which
// preserves per-operator ordering of the trail. Implements
// ports.AuditRepository; reads pass straight through to the wrapped
// repository.
type AuditDispatcher struct {
	workers []chan *domain.AuditEntry
	repo    ports.AuditRepository
	log     zerolog.Logger
}

// NewAuditDispatcher creates a dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan *domain.AuditEntry, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan *domain.AuditEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues the entry without blocking the caller. When the worker
// buffer is full the entry is dropped and counted; the trail is best-effort
// and must never stall a mutation.
func (d *AuditDispatcher) Record(_ context.Context, entry *domain.AuditEntry) error {
	select {
	case d.workers[d.shardIndex(entry.ActorID)] <- entry:
	default:
		metrics.AuditWriteFailures.Inc()
		d.log.Warn().Str("actor_id", entry.ActorID).Str("action", entry.Action).Msg("audit buffer full, entry dropped")
	}
	return nil
}

// Recent delegates to the wrapped repository.
func (d *AuditDispatcher) Recent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	return d.repo.Recent(ctx, limit)
}

// shardIndex maps an actor id deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(actorID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actorID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan *domain.AuditEntry) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			writeCtx, cancel := context.WithTimeout(context.Background(), writeTimeout)
			if err := d.repo.Record(writeCtx, entry); err != nil {
				metrics.AuditWriteFailures.Inc()
				d.log.Error().Err(err).
					Str("action", entry.Action).
					Int("worker_id", id).
					Msg("audit write failed")
			}
			cancel()
		}
	}
}
