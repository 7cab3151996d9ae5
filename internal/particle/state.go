// Particle state store: seeding from initial concentrations.
// Position, velocity, affinity weights, coupling strength, and the per-run
// interaction matrix are all drawn from the run's entropy source in a fixed
// order, so a seeded source reproduces the run exactly.
package particle

import (
	"errors"
	"fmt"

	"github.com/zandis/emergence/internal/attractor"
	"github.com/zandis/emergence/internal/entropy"
	"github.com/zandis/emergence/internal/vec"
)

// Seeding constants. Perturbation keeps near-identical concentrations
// distinguishable; coupling strength stays inside the stable Kuramoto band.
const (
	positionPerturbation = 0.0005
	velocityPerturbation = 0.05
	couplingMin          = 0.3
	couplingMax          = 0.8
	interactionDiagMin   = 0.2
	interactionDiagMax   = 1.0
	interactionOffRange  = 0.15
)

// Validation errors returned by Seed before any simulation work begins.
var (
	ErrMissingConcentration = errors.New("missing concentration")
	ErrConcentrationRange   = errors.New("concentration out of range [0,1]")
)

// State is the mutable per-type particle state. It is owned exclusively by
// one simulation run and mutated every integration step.
type State struct {
	Type     Type
	Position vec.Vec3
	Velocity vec.Vec3

	// AttractorInfluence holds one affinity weight per basin kind, each an
	// independent draw in [0,1). Weights are not normalized.
	AttractorInfluence [attractor.KindCount]float64

	// CouplingStrength scales this particle's response to pairwise phase
	// coupling. Drawn uniform in [0.3, 0.8].
	CouplingStrength float64
}

// Store holds all particle state for one run plus the run's interaction
// matrix. Particles are indexed by Type so iteration order is fixed.
type Store struct {
	Particles   [TypeCount]State
	Interaction [TypeCount][TypeCount]float64
}

// Seed validates the concentration map and builds a fresh store.
// Every type must be present with a value in [0,1]; violations are rejected
// before any random draws are made.
func Seed(concentrations map[Type]float64, src entropy.Source) (*Store, error) {
	for _, t := range AllTypes() {
		c, ok := concentrations[t]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingConcentration, t)
		}
		if c < 0 || c > 1 {
			return nil, fmt.Errorf("%w: %s=%g", ErrConcentrationRange, t, c)
		}
	}

	s := &Store{}
	for _, t := range AllTypes() {
		c := concentrations[t]
		p := State{Type: t}

		// Base position scales with concentration; a tiny independent
		// perturbation per axis makes every seeding a distinct point in
		// phase space.
		p.Position = vec.Vec3{
			X: c + entropy.Range(src, -positionPerturbation, positionPerturbation),
			Y: c*0.5 + entropy.Range(src, -positionPerturbation, positionPerturbation),
			Z: c*0.3 + entropy.Range(src, -positionPerturbation, positionPerturbation),
		}
		p.Velocity = vec.Vec3{
			X: entropy.Range(src, -velocityPerturbation, velocityPerturbation),
			Y: entropy.Range(src, -velocityPerturbation, velocityPerturbation),
			Z: entropy.Range(src, -velocityPerturbation, velocityPerturbation),
		}

		for k := 0; k < attractor.KindCount; k++ {
			p.AttractorInfluence[k] = src.Float()
		}
		p.CouplingStrength = entropy.Range(src, couplingMin, couplingMax)

		s.Particles[t] = p
	}

	// Interaction matrix: self-interaction is always positive, cross
	// interaction may be weakly attractive or repulsive.
	for i := 0; i < TypeCount; i++ {
		for j := 0; j < TypeCount; j++ {
			if i == j {
				s.Interaction[i][j] = entropy.Range(src, interactionDiagMin, interactionDiagMax)
			} else {
				s.Interaction[i][j] = entropy.Range(src, -interactionOffRange, interactionOffRange)
			}
		}
	}

	return s, nil
}
