// Package pool schedules simulation runs across a fixed set of workers.
// Runs are embarrassingly parallel: one engine per worker, no cross-run
// state, results handed to the persistence collaborator as they complete.
package pool

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/zandis/emergence/internal/engine"
	"github.com/zandis/emergence/internal/entropy"
	"github.com/zandis/emergence/internal/particle"
	"github.com/zandis/emergence/internal/persistence"
)

// Job is one requested simulation run. A nil Seed selects the pool's
// default entropy source (snowflake mode); a set Seed makes the run
// deterministic.
type Job struct {
	ID             string
	Concentrations map[particle.Type]float64
	Seed           *int64
}

// Pool runs simulations on worker goroutines and persists results.
type Pool struct {
	cfg     engine.Config
	db      *persistence.DB
	source  entropy.Source
	workers int

	jobs chan Job
	wg   sync.WaitGroup

	mu     sync.Mutex
	active map[string]*engine.Engine

	completed atomic.Int64
	forced    atomic.Int64
	failed    atomic.Int64
}

// New creates a pool. source is the default entropy source for unseeded
// jobs; it must be safe for concurrent use (the true-randomness client and
// CryptoSource both are).
func New(cfg engine.Config, db *persistence.DB, source entropy.Source, workers, queueDepth int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueDepth < 1 {
		queueDepth = workers * 4
	}
	return &Pool{
		cfg:     cfg,
		db:      db,
		source:  source,
		workers: workers,
		jobs:    make(chan Job, queueDepth),
		active:  make(map[string]*engine.Engine),
	}
}

// Start launches the workers. They drain the queue until ctx is cancelled.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
	slog.Info("simulation pool started", "workers", p.workers)
}

// Wait blocks until all workers have exited.
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Submit enqueues a job, assigning an ID when absent. Returns an error when
// the queue is full rather than blocking the caller.
func (p *Pool) Submit(job Job) (string, error) {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	select {
	case p.jobs <- job:
		return job.ID, nil
	default:
		return "", fmt.Errorf("queue full (%d pending)", len(p.jobs))
	}
}

func (p *Pool) worker(ctx context.Context, n int) {
	defer p.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-p.jobs:
			p.runJob(ctx, job, n)
		}
	}
}

func (p *Pool) runJob(ctx context.Context, job Job, worker int) {
	src := p.source
	if job.Seed != nil {
		src = entropy.Seeded(*job.Seed)
	}

	eng, err := engine.New(p.cfg, job.Concentrations, src)
	if err != nil {
		p.failed.Add(1)
		slog.Error("run rejected", "job", job.ID, "error", err)
		return
	}

	p.mu.Lock()
	p.active[job.ID] = eng
	p.mu.Unlock()
	defer func() {
		p.mu.Lock()
		delete(p.active, job.ID)
		p.mu.Unlock()
	}()

	cfg, err := eng.Run(ctx)
	if err != nil {
		slog.Info("run cancelled", "job", job.ID, "worker", worker)
		return
	}

	p.completed.Add(1)
	if cfg.Forced {
		p.forced.Add(1)
	}

	if p.db != nil {
		if err := p.db.SaveConfiguration(cfg); err != nil {
			slog.Error("save failed", "job", job.ID, "error", err)
		}
	}
}

// ActiveSnapshots returns mid-run observations keyed by job ID.
func (p *Pool) ActiveSnapshots() map[string]engine.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	snaps := make(map[string]engine.Snapshot, len(p.active))
	for id, eng := range p.active {
		snaps[id] = eng.Snapshot()
	}
	return snaps
}

// Stats reports pool counters.
type Stats struct {
	Workers   int   `json:"workers"`
	Pending   int   `json:"pending"`
	Active    int   `json:"active"`
	Completed int64 `json:"completed"`
	Forced    int64 `json:"forced"`
	Failed    int64 `json:"failed"`
}

// Stats returns the current pool counters.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	active := len(p.active)
	p.mu.Unlock()
	return Stats{
		Workers:   p.workers,
		Pending:   len(p.jobs),
		Active:    active,
		Completed: p.completed.Load(),
		Forced:    p.forced.Load(),
		Failed:    p.failed.Load(),
	}
}
