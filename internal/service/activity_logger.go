package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/harshl7081/ecowaste/internal/domain/entity"
	"github.com/harshl7081/ecowaste/internal/domain/repository"
	"github.com/harshl7081/ecowaste/pkg/metrics"
)

// ActivityLogger decouples activity-log production from persistence with a
// bounded in-memory queue. Entries accumulate until either the flush
// interval elapses or the queue reaches the flush threshold, then a single
// bulk insert writes the batch.
//
// Delivery is at-least-once: a failed batch is put back in front of the
// queue and retried on the next flush. Entries still queued at shutdown
// without a forced final flush are lost, which is acceptable for an
// analytics log and why this must not carry audit-critical records.
type ActivityLogger struct {
	repo     repository.LogRepository
	logger   *zap.Logger
	registry *metrics.Registry

	interval  time.Duration
	threshold int
	opTimeout time.Duration

	mu    sync.Mutex
	queue []*entity.LogEntry

	// flushing guarantees a single in-flight flush; a flush request that
	// arrives while one runs is a no-op and the next tick picks up the rest.
	flushing atomic.Bool

	done    chan struct{}
	stopped atomic.Bool
	wg      sync.WaitGroup
}

// NewActivityLogger creates the logger. Call Start to begin the periodic
// flush loop and Stop to tear it down.
func NewActivityLogger(repo repository.LogRepository, interval time.Duration, threshold int, registry *metrics.Registry, logger *zap.Logger) *ActivityLogger {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if threshold <= 0 {
		threshold = 100
	}
	return &ActivityLogger{
		repo:      repo,
		logger:    logger.Named("activity_logger"),
		registry:  registry,
		interval:  interval,
		threshold: threshold,
		opTimeout: 10 * time.Second,
		done:      make(chan struct{}),
	}
}

// Start launches the periodic flush loop.
func (l *ActivityLogger) Start() {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		ticker := time.NewTicker(l.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.Flush(context.Background())
			case <-l.done:
				return
			}
		}
	}()
}

// Log queues an entry. It never fails and never blocks on the store: a
// handler's latency must not depend on log persistence. Content is taken
// as-is; nothing is validated or rejected.
func (l *ActivityLogger) Log(entry *entity.LogEntry) {
	if entry == nil {
		return
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if entry.Level == "" {
		entry.Level = entity.LogLevelInfo
	}

	l.mu.Lock()
	l.queue = append(l.queue, entry)
	depth := len(l.queue)
	l.mu.Unlock()

	if l.registry != nil {
		l.registry.ActivityEntriesQueued.Inc()
		l.registry.ActivityQueueDepth.Set(float64(depth))
	}

	if depth >= l.threshold && !l.stopped.Load() {
		go l.Flush(context.Background())
	}
}

// Flush attempts to persist everything queued. Only one flush runs at a
// time; concurrent calls return immediately. On failure the snapshot is
// pushed back in front of anything queued since, preserving overall FIFO
// order, and the error stays diagnostic.
func (l *ActivityLogger) Flush(ctx context.Context) {
	if !l.flushing.CompareAndSwap(false, true) {
		return
	}
	defer l.flushing.Store(false)

	l.flushLocked(ctx)
}

func (l *ActivityLogger) flushLocked(ctx context.Context) {
	l.mu.Lock()
	if len(l.queue) == 0 {
		l.mu.Unlock()
		return
	}
	snapshot := l.queue
	l.queue = nil
	l.mu.Unlock()

	if l.registry != nil {
		l.registry.ActivityFlushesTotal.Inc()
	}

	opCtx, cancel := context.WithTimeout(ctx, l.opTimeout)
	defer cancel()

	if err := l.repo.InsertMany(opCtx, snapshot); err != nil {
		l.logger.Warn("activity log flush failed, batch requeued",
			zap.Error(err), zap.Int("entries", len(snapshot)))
		if l.registry != nil {
			l.registry.ActivityFlushFailures.Inc()
		}

		l.mu.Lock()
		l.queue = append(snapshot, l.queue...)
		if l.registry != nil {
			l.registry.ActivityQueueDepth.Set(float64(len(l.queue)))
		}
		l.mu.Unlock()
		return
	}

	if l.registry != nil {
		l.registry.ActivityEntriesPersisted.Add(float64(len(snapshot)))
		l.mu.Lock()
		l.registry.ActivityQueueDepth.Set(float64(len(l.queue)))
		l.mu.Unlock()
	}
}

// QueueDepth reports the number of entries awaiting flush.
func (l *ActivityLogger) QueueDepth() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Stop ends the flush loop. With forceFlush a final synchronous flush
// drains the queue; entries that still fail to persist are dropped.
func (l *ActivityLogger) Stop(ctx context.Context, forceFlush bool) {
	if !l.stopped.CompareAndSwap(false, true) {
		return
	}
	close(l.done)
	l.wg.Wait()

	if forceFlush {
		// A threshold-triggered flush may still be in flight; its snapshot
		// excludes anything queued after it was taken, so the final drain
		// must run after it, not be swallowed by the re-entrancy guard.
		for !l.flushing.CompareAndSwap(false, true) {
			select {
			case <-ctx.Done():
				l.logger.Warn("activity log shutdown interrupted, entries dropped",
					zap.Int("entries", l.QueueDepth()))
				return
			case <-time.After(time.Millisecond):
			}
		}
		l.flushLocked(ctx)
		l.flushing.Store(false)

		if remaining := l.QueueDepth(); remaining > 0 {
			l.logger.Warn("activity log entries dropped at shutdown",
				zap.Int("entries", remaining))
		}
	}
}
