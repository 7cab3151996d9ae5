// Package attractor provides the four attractor basins that shape the phase
// space. Three are static; the strange basin orbits as a function of elapsed
// simulation time. Geometry is a pure function of time and is safe to call
// concurrently for different runs.
package attractor

import (
	"math"

	"github.com/zandis/emergence/internal/vec"
)

// Kind identifies an attractor basin.
type Kind uint8

const (
	// KindYangSpiral is the fixed expansive spiral: high yang polarity.
	KindYangSpiral Kind = iota
	// KindYinSpiral is the fixed contractive spiral: high yin polarity.
	KindYinSpiral
	// KindBalance is the neutral equilibrium point at the origin.
	KindBalance
	// KindStrange is the time-varying basin whose center orbits and whose
	// polarities oscillate in opposite phase.
	KindStrange

	// KindCount is the number of basin kinds.
	KindCount = 4
)

var kindNames = [KindCount]string{"yang_spiral", "yin_spiral", "balance", "strange"}

// String returns the lowercase basin name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Basin describes one attractor at a moment in simulation time.
// YangIntensity and YinIntensity are independent values in [0,1]; they are
// not complementary and do not sum to 1.
type Basin struct {
	Kind          Kind     `json:"kind"`
	Center        vec.Vec3 `json:"center"`
	Strength      float64  `json:"strength"`
	YangIntensity float64  `json:"yang_intensity"`
	YinIntensity  float64  `json:"yin_intensity"`
}

// Geometry returns all four basins at elapsed simulation time t.
func Geometry(t float64) [KindCount]Basin {
	return [KindCount]Basin{
		{
			Kind:          KindYangSpiral,
			Center:        vec.Vec3{X: 5, Y: 5, Z: 8},
			Strength:      1.2,
			YangIntensity: 0.9,
			YinIntensity:  0.2,
		},
		{
			Kind:          KindYinSpiral,
			Center:        vec.Vec3{X: -5, Y: -5, Z: -8},
			Strength:      1.2,
			YangIntensity: 0.2,
			YinIntensity:  0.9,
		},
		{
			Kind:          KindBalance,
			Center:        vec.Vec3{},
			Strength:      0.8,
			YangIntensity: 0.5,
			YinIntensity:  0.5,
		},
		{
			Kind: KindStrange,
			Center: vec.Vec3{
				X: 5 * math.Sin(0.1*t),
				Y: 5 * math.Cos(0.1*t),
				Z: 10 * math.Sin(0.05*t),
			},
			Strength:      1.5,
			YangIntensity: 0.5 + 0.3*math.Sin(0.2*t),
			YinIntensity:  0.5 - 0.3*math.Sin(0.2*t),
		},
	}
}
