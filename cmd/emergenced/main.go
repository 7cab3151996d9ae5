// Command emergenced runs the chaotic emergence service: a worker pool of
// simulation runs, SQLite storage for crystallized configurations, and an
// HTTP API for submission and observation.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/zandis/emergence/internal/api"
	"github.com/zandis/emergence/internal/config"
	"github.com/zandis/emergence/internal/engine"
	"github.com/zandis/emergence/internal/entropy"
	"github.com/zandis/emergence/internal/persistence"
	"github.com/zandis/emergence/internal/pool"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(cfg.DBPath), 0755)
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database opened", "path", cfg.DBPath)

	// ── Entropy ───────────────────────────────────────────────────────
	trueClient := entropy.NewClient(cfg.RandomOrgKey)
	if trueClient.Enabled() {
		slog.Info("true randomness enabled (random.org)")
	} else {
		slog.Info("using crypto/rand entropy for unseeded runs")
	}

	// ── Engine + Pool ─────────────────────────────────────────────────
	engCfg := engine.DefaultConfig()
	engCfg.MaxIterations = cfg.MaxIterations
	engCfg.TurbulenceAmplitude = cfg.TurbulenceAmplitude
	engCfg.TurbulenceSeed = cfg.TurbulenceSeed

	ctx, cancel := context.WithCancel(context.Background())
	p := pool.New(engCfg, db, entropy.FromClient(trueClient), cfg.Workers, 0)
	p.Start(ctx)

	// ── HTTP API ──────────────────────────────────────────────────────
	if cfg.AdminKey == "" {
		slog.Warn("EMERGENCE_ADMIN_KEY not set — submission endpoint will be disabled")
	}

	apiServer := &api.Server{
		Pool:     p,
		DB:       db,
		Port:     cfg.APIPort,
		AdminKey: cfg.AdminKey,
	}
	apiServer.Start()

	fmt.Printf("Emergence engine online: %d workers, API on :%d\n", cfg.Workers, cfg.APIPort)

	// ── Shutdown ──────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	slog.Info("received signal, shutting down", "signal", sig)

	cancel()
	p.Wait()

	stats := p.Stats()
	slog.Info("pool drained", "completed", stats.Completed, "forced", stats.Forced, "failed", stats.Failed)
	fmt.Println("Emergence engine stopped.")
}
