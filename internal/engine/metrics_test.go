package engine

import (
	"math"
	"testing"

	"github.com/zandis/emergence/internal/particle"
	"github.com/zandis/emergence/internal/vec"
)

// storeWithVelocities builds a store whose particles have the given
// velocities and zero positions.
func storeWithVelocities(vels [particle.TypeCount]vec.Vec3) *particle.Store {
	s := &particle.Store{}
	for _, t := range particle.AllTypes() {
		s.Particles[t] = particle.State{Type: t, Velocity: vels[t]}
	}
	return s
}

func TestOrderParameterBounds(t *testing.T) {
	tests := []struct {
		name string
		vels [particle.TypeCount]vec.Vec3
		want float64 // -1 means "just check [0,1]"
	}{
		{
			name: "fully_aligned",
			vels: [particle.TypeCount]vec.Vec3{
				{X: 1}, {X: 2}, {X: 0.5}, {X: 3}, {X: 1.5},
			},
			want: 1.0,
		},
		{
			name: "mixed",
			vels: [particle.TypeCount]vec.Vec3{
				{X: 1}, {Y: 1}, {X: -1}, {Y: -1}, {X: 1, Y: 1},
			},
			want: -1,
		},
		{
			name: "opposed_pairs",
			vels: [particle.TypeCount]vec.Vec3{
				{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {X: 1},
			},
			want: 0.2, // four cancel, one remains: |1|/5
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ComputeMetrics(storeWithVelocities(tt.vels))
			if m.OrderParameter < 0 || m.OrderParameter > 1 {
				t.Fatalf("order parameter %v out of [0,1]", m.OrderParameter)
			}
			if tt.want >= 0 && math.Abs(m.OrderParameter-tt.want) > 1e-9 {
				t.Errorf("order parameter = %v, want %v", m.OrderParameter, tt.want)
			}
		})
	}
}

func TestEntropyClamped(t *testing.T) {
	// Huge velocities should clamp entropy to exactly 1.
	huge := [particle.TypeCount]vec.Vec3{
		{X: 1000}, {Y: 1000}, {Z: 1000}, {X: -1000}, {Y: -1000},
	}
	m := ComputeMetrics(storeWithVelocities(huge))
	if m.Entropy != 1 {
		t.Errorf("entropy = %v, want clamp to 1", m.Entropy)
	}

	// Stationary particles have zero entropy.
	m = ComputeMetrics(storeWithVelocities([particle.TypeCount]vec.Vec3{}))
	if m.Entropy != 0 {
		t.Errorf("entropy = %v, want 0", m.Entropy)
	}
}

func TestChaosEstimateBounded(t *testing.T) {
	s := &particle.Store{}
	for i, tp := range particle.AllTypes() {
		s.Particles[tp] = particle.State{
			Type:     tp,
			Position: vec.Vec3{X: float64(i) * 100}, // far from reference separation
		}
	}
	m := ComputeMetrics(s)
	if m.ChaosEstimate <= -1 || m.ChaosEstimate >= 1 {
		t.Errorf("chaos estimate %v out of (-1,1)", m.ChaosEstimate)
	}

	// Adjacent pairs exactly at the reference separation read as stable.
	for i, tp := range particle.AllTypes() {
		s.Particles[tp].Position = vec.Vec3{X: float64(i) * 5}
	}
	m = ComputeMetrics(s)
	if m.ChaosEstimate != 0 {
		t.Errorf("chaos estimate = %v, want 0 at reference separation", m.ChaosEstimate)
	}
}

func TestCorrelationLengthDerived(t *testing.T) {
	vels := [particle.TypeCount]vec.Vec3{{X: 1}, {X: 1}, {X: 1}, {X: 1}, {X: 1}}
	m := ComputeMetrics(storeWithVelocities(vels))
	if math.Abs(m.CorrelationLength-m.OrderParameter*10) > 1e-12 {
		t.Errorf("correlation length %v != orderParameter×10 (%v)", m.CorrelationLength, m.OrderParameter*10)
	}
}
