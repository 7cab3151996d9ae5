// Package persistence provides SQLite-based storage for crystallized
// configurations. This is the boundary collaborator that receives the
// engine's output; it never participates in the simulation itself.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/zandis/emergence/internal/emergence"
)

// ErrNotFound is returned when a run ID has no stored configuration.
var ErrNotFound = errors.New("configuration not found")

// DB wraps a SQLite connection for configuration storage.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		signature TEXT NOT NULL,
		created_at TEXT NOT NULL,
		forced INTEGER NOT NULL,
		steps INTEGER NOT NULL,
		elapsed REAL NOT NULL,
		yang_intensity REAL NOT NULL,
		yin_intensity REAL NOT NULL,
		dominant_attractor INTEGER NOT NULL,
		hun_count INTEGER NOT NULL,
		po_count INTEGER NOT NULL,
		config_json TEXT NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_runs_signature ON runs(signature);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// RunSummary is the listing row for stored runs.
type RunSummary struct {
	ID            string    `json:"id"`
	Signature     string    `json:"signature"`
	CreatedAt     time.Time `json:"created_at"`
	Forced        bool      `json:"forced"`
	Steps         int       `json:"steps"`
	YangIntensity float64   `json:"yang_intensity"`
	YinIntensity  float64   `json:"yin_intensity"`
	HunCount      int       `json:"hun_count"`
	PoCount       int       `json:"po_count"`
}

// SaveConfiguration stores one crystallized configuration.
func (db *DB) SaveConfiguration(cfg *emergence.Configuration) error {
	blob, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal configuration: %w", err)
	}

	forced := 0
	if cfg.Forced {
		forced = 1
	}

	_, err = db.conn.Exec(`INSERT INTO runs
		(id, signature, created_at, forced, steps, elapsed,
		 yang_intensity, yin_intensity, dominant_attractor,
		 hun_count, po_count, config_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		cfg.ID, cfg.Signature, cfg.CreatedAt.Format(time.RFC3339Nano),
		forced, cfg.Steps, cfg.Elapsed,
		cfg.YangIntensity, cfg.YinIntensity, int(cfg.DominantAttractor),
		len(cfg.Hun), len(cfg.Po), string(blob),
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", cfg.ID, err)
	}

	slog.Info("configuration saved",
		"id", cfg.ID,
		"signature", cfg.Signature[:12],
		"forced", cfg.Forced,
		"hun", len(cfg.Hun),
		"po", len(cfg.Po),
	)
	return nil
}

// LoadConfiguration retrieves a full configuration by run ID.
func (db *DB) LoadConfiguration(id string) (*emergence.Configuration, error) {
	var blob string
	err := db.conn.Get(&blob, "SELECT config_json FROM runs WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", id, err)
	}

	var cfg emergence.Configuration
	if err := json.Unmarshal([]byte(blob), &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal run %s: %w", id, err)
	}
	return &cfg, nil
}

// RecentRuns returns the most recent N run summaries.
func (db *DB) RecentRuns(limit int) ([]RunSummary, error) {
	rows, err := db.conn.Queryx(`SELECT id, signature, created_at, forced, steps,
		yang_intensity, yin_intensity, hun_count, po_count
		FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var created string
		var forced int
		if err := rows.Scan(&r.ID, &r.Signature, &created, &forced, &r.Steps,
			&r.YangIntensity, &r.YinIntensity, &r.HunCount, &r.PoCount); err != nil {
			return nil, err
		}
		r.Forced = forced != 0
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// CountRuns returns total and forced run counts.
func (db *DB) CountRuns() (total, forced int, err error) {
	if err = db.conn.Get(&total, "SELECT COUNT(*) FROM runs"); err != nil {
		return 0, 0, err
	}
	if err = db.conn.Get(&forced, "SELECT COUNT(*) FROM runs WHERE forced = 1"); err != nil {
		return 0, 0, err
	}
	return total, forced, nil
}
