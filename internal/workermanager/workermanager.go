// Package workermanager runs supervised worker goroutines.
//
// A worker is a WorkerFunc. Returning nil means the worker is finished and
// it is not restarted. Returning an error means it failed and it is started
// again after an exponential backoff delay. The manager's context is handed
// to every run and is cancelled by Stop, so a worker blocked on network I/O
// should also be unblocked by its owner (typically by closing the socket).
//
// Example usage for a UDP reader:
//
//	func (u *UDP) reader(ctx context.Context, id int) error {
//		for {
//			n, addr, err := u.conn.ReadFromUDPAddrPort(u.buf)
//			if errors.Is(err, net.ErrClosed) {
//				return nil // socket closed by Stop
//			}
//			if err != nil {
//				return err // restarted with backoff
//			}
//			u.handle(ctx, u.buf[:n], addr)
//		}
//	}
//
//	u.workerManager = workermanager.NewWorkerManager(u.logger, 1, u.reader)
//	u.workerManager.Start()
package workermanager

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

const (
	// DefaultInitialInterval is the delay before the first restart
	DefaultInitialInterval = 100 * time.Millisecond
	// DefaultMaxInterval caps the delay between restarts
	DefaultMaxInterval = 30 * time.Second
	// DefaultMaxElapsedTime is how long a worker may keep failing
	// before it is given up on
	DefaultMaxElapsedTime = 5 * time.Minute
)

// WorkerFunc is the body of a worker.
type WorkerFunc func(ctx context.Context, id int) error

// Option configures a WorkerManager.
type Option func(*WorkerManager)

// WithBackOff replaces the restart policy. newPolicy is called once per worker.
func WithBackOff(newPolicy func() backoff.BackOff) Option {
	return func(wm *WorkerManager) {
		wm.newPolicy = newPolicy
	}
}

// WorkerManager manages worker goroutines with restart on failure
type WorkerManager struct {
	logger        *zap.Logger
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
	workerFunc    WorkerFunc
	workerCount   int
	activeWorkers atomic.Int32
	newPolicy     func() backoff.BackOff
	done          chan struct{}
	startOnce     sync.Once
}

// NewWorkerManager creates a new worker manager
func NewWorkerManager(logger *zap.Logger, workerCount int, workerFunc WorkerFunc, opts ...Option) *WorkerManager {
	ctx, cancel := context.WithCancel(context.Background())

	wm := &WorkerManager{
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
		workerFunc:  workerFunc,
		workerCount: workerCount,
		newPolicy:   defaultPolicy,
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(wm)
	}
	return wm
}

func defaultPolicy() backoff.BackOff {
	return backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(DefaultInitialInterval),
		backoff.WithMaxInterval(DefaultMaxInterval),
		backoff.WithMultiplier(2),
		backoff.WithRandomizationFactor(0.1),
		backoff.WithMaxElapsedTime(DefaultMaxElapsedTime),
	)
}

// Start spawns the workers. Calling Start more than once has no effect.
func (wm *WorkerManager) Start() {
	wm.startOnce.Do(func() {
		wm.logger.Info("Starting worker manager", zap.Int("target_workers", wm.workerCount))

		for i := 0; i < wm.workerCount; i++ {
			wm.activeWorkers.Add(1)
			wm.wg.Add(1)
			go wm.runWorker(i)
		}

		go func() {
			wm.wg.Wait()
			close(wm.done)
		}()
	})
}

// Stop cancels the workers' context and waits for all workers to finish
func (wm *WorkerManager) Stop() {
	wm.logger.Info("Stopping worker manager")
	wm.cancel()
	wm.wg.Wait()
	wm.logger.Info("Worker manager stopped")
}

// Done returns a channel that is closed once every worker has exited,
// either through Stop, by returning nil, or by exhausting its retries.
// It is never closed if Start was not called.
func (wm *WorkerManager) Done() <-chan struct{} {
	return wm.done
}

// ActiveWorkers returns the current number of running workers
func (wm *WorkerManager) ActiveWorkers() int {
	return int(wm.activeWorkers.Load())
}

// runWorker runs a worker, restarting it with backoff while it fails
func (wm *WorkerManager) runWorker(id int) {
	defer wm.wg.Done()
	defer wm.activeWorkers.Add(-1)

	policy := wm.newPolicy()

	for {
		if wm.ctx.Err() != nil {
			wm.logger.Info("Worker exiting - context cancelled", zap.Int("worker_id", id))
			return
		}

		started := time.Now()
		err := wm.workerFunc(wm.ctx, id)
		if err == nil {
			wm.logger.Debug("Worker finished", zap.Int("worker_id", id))
			return
		}
		if wm.ctx.Err() != nil {
			wm.logger.Info("Worker exiting - context cancelled", zap.Int("worker_id", id))
			return
		}

		// A worker that ran for a while before failing starts over
		// with short delays instead of inheriting old failures.
		if time.Since(started) > DefaultMaxInterval {
			policy.Reset()
		}

		delay := policy.NextBackOff()
		if delay == backoff.Stop {
			wm.logger.Error("Worker failed permanently - retries exhausted",
				zap.Int("worker_id", id),
				zap.Error(err))
			return
		}

		wm.logger.Warn("Worker failed, retrying with backoff",
			zap.Int("worker_id", id),
			zap.Duration("delay", delay),
			zap.Error(err))

		timer := time.NewTimer(delay)
		select {
		case <-wm.ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}
