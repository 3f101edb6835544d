package pool

import (
	"context"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Config holds worker pool configuration.
type Config struct {
	// Workers is the maximum number of tasks running at once.
	// Recommendation: 10 workers for I/O-bound lookups
	Workers int

	// QueueSize is how many submitted tasks may wait for a worker before
	// Submit blocks.
	QueueSize int
}

// DefaultConfig returns the default pool configuration.
func DefaultConfig() Config {
	return Config{
		Workers:   10,
		QueueSize: 400,
	}
}

// Pool runs submitted tasks on a fixed number of worker goroutines.
type Pool struct {
	config Config
	logger zerolog.Logger

	jobs   chan func()
	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup

	// closing is closed at the start of Shutdown to release Submit calls
	// blocked on a full queue.
	closing     chan struct{}
	closingOnce sync.Once

	submitted atomic.Uint64
	completed atomic.Uint64
	failed    atomic.Uint64
}

// New creates a pool and starts its workers.
func New(config Config, logger zerolog.Logger) *Pool {
	d := DefaultConfig()
	if config.Workers <= 0 {
		config.Workers = d.Workers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = d.QueueSize
	}

	p := &Pool{
		config:  config,
		logger:  logger,
		jobs:    make(chan func(), config.QueueSize),
		closing: make(chan struct{}),
	}

	for i := 0; i < config.Workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	return p
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int {
	return p.config.Workers
}

// Shutdown stops the pool from accepting new tasks. Tasks that were already
// submitted still run to completion. Shutdown does not block; call Wait to
// block until the pool is drained. Submit calls blocked on a full queue
// return ErrPoolClosed. It is safe to call more than once.
func (p *Pool) Shutdown() {
	p.closingOnce.Do(func() { close(p.closing) })

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true
	close(p.jobs)

	p.logger.Debug().
		Uint64("submitted", p.submitted.Load()).
		Msg("Pool shutting down")
}

// Wait blocks until Shutdown has been called and every submitted task has
// finished.
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Stats returns the number of submitted tasks, finished tasks, and finished
// tasks that returned an error or panicked.
func (p *Pool) Stats() (submitted, completed, failed uint64) {
	return p.submitted.Load(), p.completed.Load(), p.failed.Load()
}

// worker runs tasks from the queue until it is closed and empty.
func (p *Pool) worker(workerID int) {
	defer p.wg.Done()
	tasksProcessed := 0

	for run := range p.jobs {
		QueueDepth.Dec()
		run()
		tasksProcessed++
	}

	if tasksProcessed > 0 {
		p.logger.Debug().
			Int("worker_id", workerID).
			Int("tasks_processed", tasksProcessed).
			Msg("Worker completed")
	}
}

// Submit queues fn for execution and returns its handle. fn receives ctx.
//
// Submit blocks while the queue is full. It returns ErrPoolClosed after
// Shutdown, or ctx.Err() if ctx ends before the task could be queued.
// A Submit blocked when Shutdown is called returns ErrPoolClosed.
func Submit[T any](ctx context.Context, p *Pool, fn func(context.Context) (T, error)) (*Handle[T], error) {
	h := &Handle[T]{done: make(chan struct{})}
	run := func() {
		runTask(ctx, p, h, fn)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return nil, ErrPoolClosed
	}

	QueueDepth.Inc()
	select {
	case p.jobs <- run:
	case <-ctx.Done():
		QueueDepth.Dec()
		return nil, ctx.Err()
	case <-p.closing:
		QueueDepth.Dec()
		return nil, ErrPoolClosed
	}

	p.submitted.Add(1)
	return h, nil
}

// runTask executes fn and moves h to its terminal state exactly once.
// A panic in fn is recovered and stored on h as a *PanicError.
func runTask[T any](ctx context.Context, p *Pool, h *Handle[T], fn func(context.Context) (T, error)) {
	start := time.Now()
	outcome := "panic"

	defer func() {
		if r := recover(); r != nil {
			h.err = &PanicError{Value: r, Stack: debug.Stack()}
			p.logger.Error().
				Interface("panic", r).
				Msg("Task panicked")
		}

		TaskDuration.Observe(time.Since(start).Seconds())
		TasksTotal.WithLabelValues(outcome).Inc()
		p.completed.Add(1)
		if h.err != nil {
			p.failed.Add(1)
		}

		close(h.done)
	}()

	value, err := fn(ctx)
	h.value, h.err = value, err
	if err != nil {
		outcome = "error"
	} else {
		outcome = "ok"
	}
}
