// Package workerpool runs fire-and-forget tasks on a bounded set of goroutines.
//
// A Pool keeps CoreWorkers goroutines alive for its whole life. Tasks wait in a
// queue of QueueCapacity slots. When the queue is full, an extra worker is
// started for the incoming task, up to MaxWorkers in total; extra workers
// exit after KeepAlive without work. When both the queue and the worker limit
// are exhausted, Submit fails with ErrQueueFull and the task is not run.
package workerpool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"orderflow/internal/pkg/errs"

	"golang.org/x/sync/semaphore"
)

const (
	DefaultCoreWorkers   = 2
	DefaultMaxWorkers    = 5
	DefaultQueueCapacity = 100
	DefaultKeepAlive     = 60 * time.Second
)

var (
	// ErrQueueFull is returned by Submit when no slot and no worker is free.
	ErrQueueFull = errors.New("worker pool queue is full")

	// ErrPoolClosed is returned by Submit after Shutdown.
	ErrPoolClosed = errors.New("worker pool is shut down")
)

// Task is one unit of work. ctx is cancelled when Shutdown gives up waiting.
type Task func(ctx context.Context)

type Config struct {
	CoreWorkers   int
	MaxWorkers    int
	QueueCapacity int
	KeepAlive     time.Duration
}

func DefaultConfig() Config {
	return Config{
		CoreWorkers:   DefaultCoreWorkers,
		MaxWorkers:    DefaultMaxWorkers,
		QueueCapacity: DefaultQueueCapacity,
		KeepAlive:     DefaultKeepAlive,
	}
}

func (c Config) Validate() error {
	var errList []error
	if c.CoreWorkers < 1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("coreWorkers", c.CoreWorkers, 1, c.MaxWorkers))
	}
	if c.MaxWorkers < c.CoreWorkers {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"maxWorkers", fmt.Errorf("%d is less than core workers %d", c.MaxWorkers, c.CoreWorkers)))
	}
	if c.QueueCapacity < 1 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"queueCapacity", fmt.Errorf("%d is not greater than 0", c.QueueCapacity)))
	}
	if c.KeepAlive <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"keepAlive", fmt.Errorf("%s is not positive", c.KeepAlive)))
	}
	return errors.Join(errList...)
}

// Stats is a point-in-time view of the pool.
type Stats struct {
	Workers int
	Busy    int
	Queued  int
}

type Pool struct {
	cfg    Config
	logger *slog.Logger

	queue chan Task
	extra *semaphore.Weighted

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
	// drained is closed once every worker has exited.
	drained chan struct{}

	workers atomic.Int32
	busy    atomic.Int32
}

// New validates cfg and starts the core workers.
func New(cfg Config, logger *slog.Logger) (*Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		cfg:    cfg,
		logger: logger.With("component", "WorkerPool"),
		queue:  make(chan Task, cfg.QueueCapacity),
		extra:  semaphore.NewWeighted(int64(cfg.MaxWorkers - cfg.CoreWorkers)),
		ctx:     ctx,
		cancel:  cancel,
		drained: make(chan struct{}),
	}

	for range cfg.CoreWorkers {
		p.start(p.coreLoop)
	}
	return p, nil
}

// Submit queues task without blocking.
func (p *Pool) Submit(task Task) error {
	if task == nil {
		return errs.NewValueIsRequiredError("task")
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.queue <- task:
		return nil
	default:
	}

	if !p.extra.TryAcquire(1) {
		return ErrQueueFull
	}
	p.start(func() {
		defer p.extra.Release(1)
		p.run(task)
		p.extraLoop()
	})
	return nil
}

// Stats reports the current number of workers, busy workers and queued tasks.
func (p *Pool) Stats() Stats {
	return Stats{
		Workers: int(p.workers.Load()),
		Busy:    int(p.busy.Load()),
		Queued:  len(p.queue),
	}
}

// Shutdown stops intake and lets the workers drain the queue. If ctx ends
// first, the task context is cancelled and ctx's error returned. Every call
// waits for the same drain, so a repeated call after a timed out one reports
// whether the cancelled tasks have finished yet.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
		go func() {
			p.wg.Wait()
			p.cancel()
			close(p.drained)
		}()
	}
	p.mu.Unlock()

	select {
	case <-p.drained:
		return nil
	case <-ctx.Done():
		p.cancel()
		p.logger.WarnContext(ctx, "shutdown deadline reached, cancelling pending tasks",
			"queued", len(p.queue))
		return ctx.Err()
	}
}

func (p *Pool) start(loop func()) {
	p.wg.Add(1)
	p.workers.Add(1)
	go func() {
		defer p.wg.Done()
		defer p.workers.Add(-1)
		loop()
	}()
}

func (p *Pool) coreLoop() {
	for task := range p.queue {
		p.run(task)
	}
}

func (p *Pool) extraLoop() {
	idle := time.NewTimer(p.cfg.KeepAlive)
	defer idle.Stop()

	for {
		select {
		case task, ok := <-p.queue:
			if !ok {
				return
			}
			p.run(task)
			idle.Reset(p.cfg.KeepAlive)
		case <-idle.C:
			return
		}
	}
}

func (p *Pool) run(task Task) {
	p.busy.Add(1)
	defer p.busy.Add(-1)
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("task panicked", "panic", r)
		}
	}()
	task(p.ctx)
}
