// The simulation run loop: a self-contained, single-threaded, CPU-bound
// computation from seeded particle state to crystallized configuration.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/zandis/emergence/internal/emergence"
	"github.com/zandis/emergence/internal/entropy"
	"github.com/zandis/emergence/internal/particle"
)

// Engine owns one simulation run. It shares no mutable state with other
// runs; independent runs are embarrassingly parallel.
type Engine struct {
	cfg   Config
	store *particle.Store
	turb  *turbulence

	mu         sync.Mutex
	step       int
	elapsed    float64
	metrics    Metrics
	transition Transition
}

// Snapshot is a mid-run observation for monitoring collaborators.
type Snapshot struct {
	Step       int        `json:"step"`
	Elapsed    float64    `json:"elapsed"`
	Metrics    Metrics    `json:"metrics"`
	Transition Transition `json:"transition"`
}

// New validates the concentrations, seeds the particle store from the
// entropy source, and prepares a run. Validation failures are returned
// before any simulation work begins.
func New(cfg Config, concentrations map[particle.Type]float64, src entropy.Source) (*Engine, error) {
	store, err := particle.Seed(concentrations, src)
	if err != nil {
		return nil, fmt.Errorf("seed particles: %w", err)
	}

	return &Engine{
		cfg:        cfg,
		store:      store,
		turb:       newTurbulence(cfg.TurbulenceAmplitude, cfg.TurbulenceSeed),
		transition: NewTransition(cfg.CriticalThreshold, cfg.MinDwellTime),
	}, nil
}

// Run integrates until crystallization, budget exhaustion, or context
// cancellation. It blocks; run it on a dedicated goroutine. The returned
// configuration is always structurally valid unless the context was
// cancelled, in which case the context error is returned.
func (e *Engine) Run(ctx context.Context) (*emergence.Configuration, error) {
	for e.step < e.cfg.MaxIterations {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		e.mu.Lock()
		e.step++
		e.elapsed += e.cfg.Dt
		integrate(e.store, e.cfg, e.turb, e.elapsed)
		e.metrics = ComputeMetrics(e.store)
		crystallized := e.transition.Observe(e.metrics.OrderParameter, e.cfg.Dt)
		step, elapsed, metrics := e.step, e.elapsed, e.metrics
		e.mu.Unlock()

		if crystallized {
			slog.Info("phase transition detected",
				"step", step,
				"elapsed", fmt.Sprintf("%.2f", elapsed),
				"order_parameter", fmt.Sprintf("%.4f", metrics.OrderParameter),
				"entropy", fmt.Sprintf("%.4f", metrics.Entropy),
			)
			return emergence.Crystallize(e.store, elapsed, step, false), nil
		}

		if e.cfg.ReportEvery > 0 && step%e.cfg.ReportEvery == 0 {
			slog.Debug("simulation progress",
				"step", step,
				"order_parameter", fmt.Sprintf("%.4f", metrics.OrderParameter),
				"entropy", fmt.Sprintf("%.4f", metrics.Entropy),
				"chaos", fmt.Sprintf("%.4f", metrics.ChaosEstimate),
			)
		}
	}

	// Budget exhausted without a genuine transition: forced
	// crystallization, flagged for downstream consumers.
	e.mu.Lock()
	step, elapsed := e.step, e.elapsed
	e.mu.Unlock()
	slog.Warn("iteration budget exhausted, forcing crystallization",
		"steps", step,
		"elapsed", fmt.Sprintf("%.2f", elapsed),
	)
	return emergence.Crystallize(e.store, elapsed, step, true), nil
}

// Snapshot returns the current metrics and transition state. Safe to call
// from another goroutine while Run is in progress.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		Step:       e.step,
		Elapsed:    e.elapsed,
		Metrics:    e.metrics,
		Transition: e.transition,
	}
}
