// Live system metrics, recomputed wholly from the particle state each step.
package engine

import (
	"math"

	"github.com/zandis/emergence/internal/particle"
)

// Metrics is the per-step system measurement.
type Metrics struct {
	// Entropy is a disorder proxy in [0,1]: mean squared velocity
	// magnitude, normalized.
	Entropy float64 `json:"entropy"`

	// OrderParameter is the Kuramoto synchronization magnitude in [0,1].
	OrderParameter float64 `json:"order_parameter"`

	// ChaosEstimate is a crude divergence proxy in (-1,1), not a Lyapunov
	// exponent: mean deviation of adjacent pair distances from the
	// reference separation, tanh-compressed. Positive reads as more
	// chaotic.
	ChaosEstimate float64 `json:"chaos_estimate"`

	// CorrelationLength is derived directly as OrderParameter × 10.
	CorrelationLength float64 `json:"correlation_length"`
}

const (
	entropyNormalization = 100.0
	referenceSeparation  = 5.0
	correlationScale     = 10.0
)

// ComputeMetrics measures the current particle state from scratch.
func ComputeMetrics(store *particle.Store) Metrics {
	n := float64(particle.TypeCount)

	// Entropy: mean squared velocity magnitude over n·100, clamped.
	sumSq := 0.0
	for _, t := range particle.AllTypes() {
		v := store.Particles[t].Velocity
		sumSq += v.Dot(v)
	}
	entropy := sumSq / (n * entropyNormalization)
	if entropy > 1 {
		entropy = 1
	}

	// Order parameter: magnitude of the mean phase vector.
	sumCos, sumSin := 0.0, 0.0
	for _, t := range particle.AllTypes() {
		v := store.Particles[t].Velocity
		phase := math.Atan2(v.Y, v.X)
		sumCos += math.Cos(phase)
		sumSin += math.Sin(phase)
	}
	order := math.Hypot(sumCos, sumSin) / n

	// Chaos estimate over adjacent pairs in storage order.
	divergence := 0.0
	for i := 0; i < particle.TypeCount-1; i++ {
		a := store.Particles[i].Position
		b := store.Particles[i+1].Position
		divergence += math.Abs(a.Distance(b) - referenceSeparation)
	}
	chaos := math.Tanh(divergence / n)

	return Metrics{
		Entropy:           entropy,
		OrderParameter:    order,
		ChaosEstimate:     chaos,
		CorrelationLength: order * correlationScale,
	}
}
