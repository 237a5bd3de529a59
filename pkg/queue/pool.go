package queue

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"VolSense/pkg/logger"
)

// ErrClosed is returned by Submit after the pool has been closed.
var ErrClosed = errors.New("worker pool closed")

// Task is a unit of CPU-bound work executed on a pool worker.
type Task func(ctx context.Context) error

// Config contains the configuration for the pool.
type Config struct {
	Workers   int // number of workers, defaults to GOMAXPROCS
	QueueSize int // pending task capacity, defaults to 2x workers
}

// Pool runs CPU-bound tasks on a fixed set of workers so long-running
// optimizations never serialize concurrent requests behind one goroutine.
// Submit blocks until a worker picks the task up or the caller's context
// expires, which bounds the request backlog.
type Pool struct {
	logger *logger.Logger
	tasks  chan job
	stopCh chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
}

type job struct {
	ctx  context.Context
	task Task
	done chan error
}

// NewPool creates and starts a worker pool.
func NewPool(lgr *logger.Logger, cfg *Config) *Pool {
	if cfg == nil {
		cfg = &Config{}
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 2 * workers
	}

	p := &Pool{
		logger: lgr,
		tasks:  make(chan job, queueSize),
		stopCh: make(chan struct{}),
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	if lgr != nil {
		lgr.Info("worker pool started", logger.Int("workers", workers), logger.Int("queue_size", queueSize))
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case j := <-p.tasks:
			if err := j.ctx.Err(); err != nil {
				j.done <- err
				continue
			}
			j.done <- j.task(j.ctx)
		case <-p.stopCh:
			return
		}
	}
}

// Submit runs task on a pool worker and waits for it to finish. It returns
// the task's error, or the context error if ctx expires first.
func (p *Pool) Submit(ctx context.Context, task Task) error {
	j := job{ctx: ctx, task: task, done: make(chan error, 1)}

	select {
	case p.tasks <- j:
	case <-ctx.Done():
		return ctx.Err()
	case <-p.stopCh:
		return ErrClosed
	}

	select {
	case err := <-j.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-p.stopCh:
		// The job may have finished just as the pool closed; prefer its
		// result over ErrClosed.
		select {
		case err := <-j.done:
			return err
		default:
			return ErrClosed
		}
	}
}

// Close stops the workers. Pending tasks that were not picked up are
// dropped; in-flight tasks finish.
func (p *Pool) Close() {
	p.once.Do(func() {
		close(p.stopCh)
	})
	p.wg.Wait()
}
