package workers

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/lexisync/lexisync/internal/config"
	"github.com/lexisync/lexisync/internal/logger"
)

// PruneJob asks the worker to trim one account's snapshot lineage down
// to Keep versions.
type PruneJob struct {
	AccountID string
	Keep      int
}

// PruneWorker drains a bounded queue of prune jobs in the background.
//
// Pruning is best-effort maintenance: it must never block an upload
// response and its failures are logged, not surfaced. Scheduling on a
// full queue drops the job; the next upload for the same account will
// schedule it again.
type PruneWorker struct {
	pruner   Pruner
	jobs     chan PruneJob
	attempts uint64
	logger   *logger.Logger
}

// NewPruneWorker constructs a [PruneWorker] with the queue size and retry
// budget from cfg.
func NewPruneWorker(pruner Pruner, cfg config.Workers, log *logger.Logger) *PruneWorker {
	return &PruneWorker{
		pruner:   pruner,
		jobs:     make(chan PruneJob, cfg.PruneQueueSize),
		attempts: cfg.PruneRetryAttempts,
		logger:   log,
	}
}

// Schedule enqueues a prune job without blocking. Returns false when the
// queue is full and the job was dropped.
func (w *PruneWorker) Schedule(job PruneJob) bool {
	select {
	case w.jobs <- job:
		return true
	default:
		w.logger.Warn().
			Str("func", "PruneWorker.Schedule").
			Str("account_id", job.AccountID).
			Msg("prune queue full, dropping job")
		return false
	}
}

// Run implements [Worker]. It spawns the drain loop and returns
// immediately; the loop exits when [PruneWorker.Stop] closes the queue.
func (w *PruneWorker) Run() {
	go w.drain()
}

// Stop closes the queue. Jobs already enqueued are still processed.
func (w *PruneWorker) Stop() {
	close(w.jobs)
}

func (w *PruneWorker) drain() {
	for job := range w.jobs {
		w.process(job)
	}
}

func (w *PruneWorker) process(job PruneJob) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	backoff := retry.WithMaxRetries(w.attempts, retry.NewExponential(100*time.Millisecond))

	var deleted int
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var pruneErr error
		deleted, pruneErr = w.pruner.Prune(ctx, job.AccountID, job.Keep)
		if pruneErr != nil {
			return retry.RetryableError(pruneErr)
		}
		return nil
	})
	if err != nil {
		// Non-critical maintenance: log and move on.
		w.logger.Warn().
			Err(err).
			Str("func", "PruneWorker.process").
			Str("account_id", job.AccountID).
			Msg("snapshot prune abandoned after retries")
		return
	}

	if deleted > 0 {
		w.logger.Debug().
			Str("func", "PruneWorker.process").
			Str("account_id", job.AccountID).
			Int("deleted", deleted).
			Msg("snapshot history pruned")
	}
}
