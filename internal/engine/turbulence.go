// Optional turbulence field: three independent simplex noise layers sampled
// at particle position and simulation time, applied as a small velocity
// jitter. Off by default; the core dynamics are unchanged when disabled.
package engine

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/zandis/emergence/internal/vec"
)

// turbulence holds one noise layer per velocity axis.
type turbulence struct {
	amplitude float64
	nx        opensimplex.Noise
	ny        opensimplex.Noise
	nz        opensimplex.Noise
}

// newTurbulence returns nil when amplitude is zero.
func newTurbulence(amplitude float64, seed int64) *turbulence {
	if amplitude == 0 {
		return nil
	}
	return &turbulence{
		amplitude: amplitude,
		nx:        opensimplex.NewNormalized(seed),
		ny:        opensimplex.NewNormalized(seed + 1),
		nz:        opensimplex.NewNormalized(seed + 2),
	}
}

// sample returns the jitter vector at a position and time. Normalized noise
// is recentered from [0,1] to [-1,1] before scaling.
func (tb *turbulence) sample(pos vec.Vec3, t float64) vec.Vec3 {
	return vec.Vec3{
		X: (2*tb.nx.Eval4(pos.X, pos.Y, pos.Z, t) - 1) * tb.amplitude,
		Y: (2*tb.ny.Eval4(pos.X, pos.Y, pos.Z, t) - 1) * tb.amplitude,
		Z: (2*tb.nz.Eval4(pos.X, pos.Y, pos.Z, t) - 1) * tb.amplitude,
	}
}
