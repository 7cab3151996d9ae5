package pool

import (
	"context"
	"testing"
	"time"

	"github.com/zandis/emergence/internal/engine"
	"github.com/zandis/emergence/internal/entropy"
	"github.com/zandis/emergence/internal/particle"
)

func testEngineConfig() engine.Config {
	cfg := engine.DefaultConfig()
	cfg.MaxIterations = 200
	cfg.CriticalThreshold = 2.0 // never reached: every run takes the budget path
	cfg.ReportEvery = 0
	return cfg
}

func testConcentrations() map[particle.Type]float64 {
	return map[particle.Type]float64{
		particle.Vital:          0.7,
		particle.Conscious:      0.8,
		particle.Creative:       0.6,
		particle.Connective:     0.5,
		particle.Transformative: 0.4,
	}
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestPoolRunsJobsInParallel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := New(testEngineConfig(), nil, entropy.CryptoSource{}, 3, 16)
	p.Start(ctx)

	const jobs = 8
	for i := int64(0); i < jobs; i++ {
		seed := i + 1
		if _, err := p.Submit(Job{Concentrations: testConcentrations(), Seed: &seed}); err != nil {
			t.Fatal(err)
		}
	}

	waitFor(t, 10*time.Second, func() bool {
		return p.Stats().Completed == jobs
	})

	stats := p.Stats()
	if stats.Forced != jobs {
		t.Errorf("forced = %d, want %d (unreachable threshold)", stats.Forced, jobs)
	}
	if stats.Failed != 0 {
		t.Errorf("failed = %d, want 0", stats.Failed)
	}

	cancel()
	p.Wait()
}

func TestPoolRejectsInvalidJob(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := New(testEngineConfig(), nil, entropy.CryptoSource{}, 1, 4)
	p.Start(ctx)

	bad := testConcentrations()
	bad[particle.Vital] = 9.0
	if _, err := p.Submit(Job{Concentrations: bad}); err != nil {
		t.Fatal(err) // enqueue succeeds; the worker rejects it
	}

	waitFor(t, 5*time.Second, func() bool {
		return p.Stats().Failed == 1
	})

	if p.Stats().Completed != 0 {
		t.Errorf("completed = %d, want 0", p.Stats().Completed)
	}
}

func TestPoolQueueFull(t *testing.T) {
	// No workers started: the queue fills and Submit must not block.
	p := New(testEngineConfig(), nil, entropy.CryptoSource{}, 1, 2)

	for i := 0; i < 2; i++ {
		if _, err := p.Submit(Job{Concentrations: testConcentrations()}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := p.Submit(Job{Concentrations: testConcentrations()}); err == nil {
		t.Error("full queue accepted a job")
	}
}

func TestPoolAssignsIDs(t *testing.T) {
	p := New(testEngineConfig(), nil, entropy.CryptoSource{}, 1, 4)

	id1, err := p.Submit(Job{Concentrations: testConcentrations()})
	if err != nil {
		t.Fatal(err)
	}
	id2, err := p.Submit(Job{Concentrations: testConcentrations()})
	if err != nil {
		t.Fatal(err)
	}
	if id1 == "" || id1 == id2 {
		t.Errorf("ids not unique: %q, %q", id1, id2)
	}

	custom, err := p.Submit(Job{ID: "my-run", Concentrations: testConcentrations()})
	if err != nil {
		t.Fatal(err)
	}
	if custom != "my-run" {
		t.Errorf("custom id not kept: %q", custom)
	}
}
