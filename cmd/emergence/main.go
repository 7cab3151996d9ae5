// Command emergence runs a single simulation to crystallization and prints
// the resulting configuration as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/zandis/emergence/internal/engine"
	"github.com/zandis/emergence/internal/entropy"
	"github.com/zandis/emergence/internal/particle"
)

func main() {
	var (
		seed       = flag.Int64("seed", 0, "deterministic seed (0 = snowflake mode)")
		vital      = flag.Float64("vital", 0.7, "vital concentration [0,1]")
		conscious  = flag.Float64("conscious", 0.8, "conscious concentration [0,1]")
		creative   = flag.Float64("creative", 0.6, "creative concentration [0,1]")
		connective = flag.Float64("connective", 0.5, "connective concentration [0,1]")
		transform  = flag.Float64("transformative", 0.4, "transformative concentration [0,1]")
		turbulence = flag.Float64("turbulence", 0, "turbulence amplitude (0 = off)")
		quiet      = flag.Bool("quiet", false, "suppress progress logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *quiet {
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	concentrations := map[particle.Type]float64{
		particle.Vital:          *vital,
		particle.Conscious:      *conscious,
		particle.Creative:       *creative,
		particle.Connective:     *connective,
		particle.Transformative: *transform,
	}

	var src entropy.Source = entropy.CryptoSource{}
	if *seed != 0 {
		src = entropy.Seeded(*seed)
	}

	engCfg := engine.DefaultConfig()
	engCfg.TurbulenceAmplitude = *turbulence
	engCfg.TurbulenceSeed = *seed

	eng, err := engine.New(engCfg, concentrations, src)
	if err != nil {
		slog.Error("invalid input", "error", err)
		os.Exit(1)
	}

	start := time.Now()
	cfg, err := eng.Run(context.Background())
	if err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}

	if !*quiet {
		mode := "crystallized"
		if cfg.Forced {
			mode = "forced (budget exhausted)"
		}
		fmt.Fprintf(os.Stderr, "%s after %s steps in %s: %d hun, %d po, signature %s…\n",
			mode,
			humanize.Comma(int64(cfg.Steps)),
			time.Since(start).Round(time.Millisecond),
			len(cfg.Hun), len(cfg.Po),
			cfg.Signature[:12],
		)
	}

	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")
	if err := out.Encode(cfg); err != nil {
		slog.Error("encode failed", "error", err)
		os.Exit(1)
	}
}
