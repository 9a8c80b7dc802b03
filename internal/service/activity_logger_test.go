package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/harshl7081/ecowaste/internal/domain/entity"
	"github.com/harshl7081/ecowaste/internal/domain/repository"
)

// capturingLogRepo records every batch it receives and can be told to fail
// the first inserts.
type capturingLogRepo struct {
	mu        sync.Mutex
	batches   [][]*entity.LogEntry
	failFirst int
}

func (r *capturingLogRepo) InsertMany(_ context.Context, entries []*entity.LogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failFirst > 0 {
		r.failFirst--
		return errors.New("store unavailable")
	}
	batch := make([]*entity.LogEntry, len(entries))
	copy(batch, entries)
	r.batches = append(r.batches, batch)
	return nil
}

func (r *capturingLogRepo) List(context.Context, repository.LogFilter) ([]*entity.LogEntry, int64, error) {
	return nil, 0, nil
}

func (r *capturingLogRepo) persisted() []*entity.LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*entity.LogEntry
	for _, b := range r.batches {
		all = append(all, b...)
	}
	return all
}

func (r *capturingLogRepo) batchCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.batches)
}

func entryN(n int) *entity.LogEntry {
	return &entity.LogEntry{
		Message: fmt.Sprintf("entry-%d", n),
		Action:  "test",
	}
}

func TestActivityLogger_ThresholdFlush(t *testing.T) {
	repo := &capturingLogRepo{}
	logger := NewActivityLogger(repo, time.Hour, 10, nil, zap.NewNop())

	for i := 0; i < 10; i++ {
		logger.Log(entryN(i))
	}

	require.Eventually(t, func() bool {
		return logger.QueueDepth() == 0 && len(repo.persisted()) == 10
	}, time.Second, 10*time.Millisecond, "queue should drain once the threshold is reached")
}

func TestActivityLogger_IntervalFlushWithoutThreshold(t *testing.T) {
	repo := &capturingLogRepo{}
	logger := NewActivityLogger(repo, 20*time.Millisecond, 1000, nil, zap.NewNop())
	logger.Start()
	defer logger.Stop(context.Background(), false)

	logger.Log(entryN(1))
	logger.Log(entryN(2))

	require.Eventually(t, func() bool {
		return len(repo.persisted()) == 2
	}, time.Second, 10*time.Millisecond, "timer flush should persist entries below the threshold")
}

func TestActivityLogger_FailedFlushKeepsEntriesInOrder(t *testing.T) {
	repo := &capturingLogRepo{failFirst: 1}
	logger := NewActivityLogger(repo, time.Hour, 1000, nil, zap.NewNop())

	logger.Log(entryN(1))
	logger.Log(entryN(2))

	// First flush fails; both entries must survive.
	logger.Flush(context.Background())
	assert.Equal(t, 2, logger.QueueDepth())
	assert.Empty(t, repo.persisted())

	// An entry arriving after the failure must come out after the requeued
	// batch.
	logger.Log(entryN(3))

	logger.Flush(context.Background())
	assert.Equal(t, 0, logger.QueueDepth())

	persisted := repo.persisted()
	require.Len(t, persisted, 3)
	assert.Equal(t, "entry-1", persisted[0].Message)
	assert.Equal(t, "entry-2", persisted[1].Message)
	assert.Equal(t, "entry-3", persisted[2].Message)
	assert.Equal(t, 1, repo.batchCount(), "retried entries must not be written twice")
}

func TestActivityLogger_FlushEmptyQueueIsNoop(t *testing.T) {
	repo := &capturingLogRepo{}
	logger := NewActivityLogger(repo, time.Hour, 1000, nil, zap.NewNop())

	logger.Flush(context.Background())
	assert.Zero(t, repo.batchCount())
}

func TestActivityLogger_LogFillsDefaults(t *testing.T) {
	repo := &capturingLogRepo{}
	logger := NewActivityLogger(repo, time.Hour, 1000, nil, zap.NewNop())

	logger.Log(&entity.LogEntry{Message: "bare"})
	logger.Flush(context.Background())

	persisted := repo.persisted()
	require.Len(t, persisted, 1)
	assert.Equal(t, entity.LogLevelInfo, persisted[0].Level)
	assert.False(t, persisted[0].Timestamp.IsZero())
}

func TestActivityLogger_StopForceFlushDrains(t *testing.T) {
	repo := &capturingLogRepo{}
	logger := NewActivityLogger(repo, time.Hour, 1000, nil, zap.NewNop())
	logger.Start()

	for i := 0; i < 5; i++ {
		logger.Log(entryN(i))
	}

	logger.Stop(context.Background(), true)

	assert.Equal(t, 0, logger.QueueDepth())
	assert.Len(t, repo.persisted(), 5)
}

// blockingLogRepo holds every insert until released, signalling on entered
// when one begins.
type blockingLogRepo struct {
	capturingLogRepo
	entered chan struct{}
	release chan struct{}
}

func (r *blockingLogRepo) InsertMany(ctx context.Context, entries []*entity.LogEntry) error {
	r.entered <- struct{}{}
	<-r.release
	return r.capturingLogRepo.InsertMany(ctx, entries)
}

func TestActivityLogger_StopForceFlushWaitsForInFlightFlush(t *testing.T) {
	repo := &blockingLogRepo{
		entered: make(chan struct{}, 4),
		release: make(chan struct{}),
	}
	logger := NewActivityLogger(repo, time.Hour, 2, nil, zap.NewNop())
	logger.Start()

	// Reaching the threshold spawns a flush that parks inside the store.
	logger.Log(entryN(1))
	logger.Log(entryN(2))
	<-repo.entered

	// This entry misses the in-flight snapshot and sits in the queue.
	logger.Log(entryN(3))

	stopDone := make(chan struct{})
	go func() {
		logger.Stop(context.Background(), true)
		close(stopDone)
	}()

	select {
	case <-stopDone:
		t.Fatal("Stop returned while a flush was still in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(repo.release)
	<-repo.entered

	select {
	case <-stopDone:
	case <-time.After(time.Second):
		t.Fatal("Stop did not finish after the store unblocked")
	}

	assert.Equal(t, 0, logger.QueueDepth())
	require.Len(t, repo.persisted(), 3)
	assert.Equal(t, "entry-3", repo.persisted()[2].Message)
}

func TestActivityLogger_StopWithoutForceFlushKeepsQueue(t *testing.T) {
	repo := &capturingLogRepo{}
	logger := NewActivityLogger(repo, time.Hour, 1000, nil, zap.NewNop())
	logger.Start()

	logger.Log(entryN(1))
	logger.Stop(context.Background(), false)

	assert.Equal(t, 1, logger.QueueDepth())
	assert.Empty(t, repo.persisted())
}

func TestActivityLogger_StopIsIdempotent(t *testing.T) {
	repo := &capturingLogRepo{}
	logger := NewActivityLogger(repo, time.Hour, 1000, nil, zap.NewNop())
	logger.Start()

	logger.Stop(context.Background(), true)
	logger.Stop(context.Background(), true)
}

func TestActivityLogger_ConcurrentLogging(t *testing.T) {
	repo := &capturingLogRepo{}
	logger := NewActivityLogger(repo, time.Hour, 25, nil, zap.NewNop())
	logger.Start()

	var wg sync.WaitGroup
	const producers = 10
	const perProducer = 15
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				logger.Log(entryN(p*perProducer + i))
			}
		}(p)
	}
	wg.Wait()

	// Threshold flushes run asynchronously; drive the remainder out before
	// asserting.
	require.Eventually(t, func() bool {
		logger.Flush(context.Background())
		return logger.QueueDepth() == 0
	}, time.Second, 10*time.Millisecond)

	logger.Stop(context.Background(), true)

	assert.Len(t, repo.persisted(), producers*perProducer)
}
