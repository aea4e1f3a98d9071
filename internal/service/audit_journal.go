package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/afterschool-console/internal/models"
	"github.com/noah-isme/afterschool-console/pkg/jobs"
)

// AuditJournal writes transition audit entries in the background so a slow
// journal never delays a transition.
type AuditJournal struct {
	queue *jobs.Queue[*models.AuditEntry]
}

// NewAuditJournal wraps store with a worker queue of the given size.
func NewAuditJournal(store auditRecorder, queueSize int, logger *zap.Logger) *AuditJournal {
	if logger == nil {
		logger = zap.NewNop()
	}
	handler := func(ctx context.Context, entry *models.AuditEntry) error {
		writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return store.Record(writeCtx, entry)
	}
	return &AuditJournal{
		queue: jobs.NewQueue[*models.AuditEntry]("audit", handler, jobs.QueueConfig{
			Workers:    1,
			BufferSize: queueSize,
			MaxRetries: 2,
			RetryDelay: 500 * time.Millisecond,
			Logger:     logger,
		}),
	}
}

// Start launches the writer.
func (j *AuditJournal) Start(ctx context.Context) {
	j.queue.Start(ctx)
}

// Stop flushes pending entries.
func (j *AuditJournal) Stop() {
	j.queue.Stop()
}

// Record enqueues entry; the error reports a full or stopped journal.
func (j *AuditJournal) Record(_ context.Context, entry *models.AuditEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	return j.queue.Enqueue(entry)
}
