// Package engine provides the simulation loop: per-step integration of
// chaotic flow, pairwise phase coupling, and attractor pull, with live
// metrics and phase-transition detection.
package engine

// Config holds every tunable of a simulation run. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	// Dt is the fixed integration step size. Not adaptive; stability
	// depends on it staying small relative to the Lorenz parameters.
	Dt float64

	// MaxIterations is the hard step budget. Exhausting it forces a
	// flagged, lower-confidence crystallization.
	MaxIterations int

	// CriticalThreshold is the order-parameter level the system must hold
	// before a transition is declared.
	CriticalThreshold float64

	// MinDwellTime is how long (in simulation time) the order parameter
	// must stay above the threshold before crystallization fires.
	MinDwellTime float64

	// Lorenz flow parameters. The defaults are the canonical values that
	// guarantee chaotic rather than periodic behavior.
	Sigma float64
	Rho   float64
	Beta  float64

	// TurbulenceAmplitude scales the optional simplex-noise velocity
	// jitter. Zero disables turbulence entirely.
	TurbulenceAmplitude float64

	// TurbulenceSeed seeds the noise layers when turbulence is enabled.
	TurbulenceSeed int64

	// ReportEvery emits a progress log line every N steps. Zero disables
	// progress reporting.
	ReportEvery int
}

// DefaultConfig returns the standard run configuration.
func DefaultConfig() Config {
	return Config{
		Dt:                0.01,
		MaxIterations:     50000,
		CriticalThreshold: 0.3,
		MinDwellTime:      1.0,
		Sigma:             10.0,
		Rho:               28.0,
		Beta:              8.0 / 3.0,
		ReportEvery:       10000,
	}
}
