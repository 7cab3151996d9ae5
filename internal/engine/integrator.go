// One integration step: chaotic self-dynamics, pairwise phase coupling, and
// attractor pull, composed per particle in enumerated type order.
package engine

import (
	"math"

	"github.com/zandis/emergence/internal/attractor"
	"github.com/zandis/emergence/internal/particle"
)

// integrate advances every particle by one step of size cfg.Dt at elapsed
// simulation time t.
func integrate(store *particle.Store, cfg Config, tb *turbulence, t float64) {
	geometry := attractor.Geometry(t)

	// Phases are snapshotted before any velocity is touched so coupling
	// sees a consistent view of the whole system.
	var phases [particle.TypeCount]float64
	for _, pt := range particle.AllTypes() {
		v := store.Particles[pt].Velocity
		phases[pt] = math.Atan2(v.Y, v.X)
	}

	for _, pt := range particle.AllTypes() {
		p := &store.Particles[pt]

		applyChaoticFlow(p, cfg)
		applyCoupling(p, store, phases, cfg.Dt)
		applyAttractorPull(p, geometry, cfg.Dt)
		if tb != nil {
			p.Velocity = p.Velocity.Add(tb.sample(p.Position, t).Scale(cfg.Dt))
		}

		p.Position = p.Position.Add(p.Velocity.Scale(cfg.Dt))
	}
}

// applyChaoticFlow feeds the particle's position through the Lorenz system
// and integrates the resulting flow into its velocity.
func applyChaoticFlow(p *particle.State, cfg Config) {
	x, y, z := p.Position.X, p.Position.Y, p.Position.Z

	dx := cfg.Sigma * (y - x)
	dy := x*(cfg.Rho-z) - y
	dz := x*y - cfg.Beta*z

	p.Velocity.X += dx * cfg.Dt
	p.Velocity.Y += dy * cfg.Dt
	p.Velocity.Z += dz * cfg.Dt
}

// applyCoupling nudges the particle's planar velocity by a sinusoid of the
// phase difference against every particle, scaled by the interaction matrix
// and the particle's own coupling strength. Full O(n²) pass including the
// self-pair, whose zero phase difference feeds the diagonal interaction
// entry back through the cosine term.
func applyCoupling(p *particle.State, store *particle.Store, phases [particle.TypeCount]float64, dt float64) {
	i := p.Type
	for _, j := range particle.AllTypes() {
		diff := phases[j] - phases[i]
		k := store.Interaction[i][j] * p.CouplingStrength * dt
		p.Velocity.X += math.Sin(diff) * k
		p.Velocity.Y += math.Cos(diff) * k
	}
}

// applyAttractorPull adds a velocity increment toward each basin center,
// scaled by basin strength and the particle's affinity weight.
func applyAttractorPull(p *particle.State, geometry [attractor.KindCount]attractor.Basin, dt float64) {
	for k := 0; k < attractor.KindCount; k++ {
		basin := geometry[k]
		pull := basin.Center.Sub(p.Position).Scale(basin.Strength * p.AttractorInfluence[k] * dt)
		p.Velocity = p.Velocity.Add(pull)
	}
}
