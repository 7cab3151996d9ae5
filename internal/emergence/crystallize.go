// Crystallization: snapshot the final particle state, derive yang/yin
// intensities and entity counts, hash out per-entity influence, and sign the
// whole configuration with a content-addressed signature.
package emergence

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/zandis/emergence/internal/attractor"
	"github.com/zandis/emergence/internal/particle"
	"github.com/zandis/emergence/internal/vec"
)

// Entity count derivation: hunCount = 5 + floor(yang·4) ∈ [5,9],
// poCount = 4 + floor(yin·4) ∈ [4,8]. Counts depend only on the two
// intensities at crystallization time, never on iteration count.
const (
	hunBase  = 5
	poBase   = 4
	countSpn = 4
)

// SeedParticle is one particle's final state, kept in the configuration for
// reproducibility and debugging.
type SeedParticle struct {
	Type             particle.Type `json:"type"`
	Position         vec.Vec3      `json:"position"`
	Velocity         vec.Vec3      `json:"velocity"`
	CouplingStrength float64       `json:"coupling_strength"`
}

// Configuration is the crystallization output. Immutable once produced.
type Configuration struct {
	ID        string    `json:"id"`
	Signature string    `json:"signature"`
	CreatedAt time.Time `json:"created_at"`

	// Forced marks a timeout-forced crystallization: the iteration budget
	// ran out before a genuine phase transition. Downstream consumers
	// should treat forced output as lower confidence.
	Forced  bool    `json:"forced"`
	Steps   int     `json:"steps"`
	Elapsed float64 `json:"elapsed"`

	Centroid          vec.Vec3       `json:"centroid"`
	YangIntensity     float64        `json:"yang_intensity"`
	YinIntensity      float64        `json:"yin_intensity"`
	DominantAttractor attractor.Kind `json:"dominant_attractor"`

	Hun []HunEntity `json:"hun"`
	Po  []PoEntity  `json:"po"`

	Seed     []SeedParticle                       `json:"seed"`
	Geometry [attractor.KindCount]attractor.Basin `json:"geometry"`
}

// Crystallize converts the final particle state into a configuration.
// elapsed is the simulation time at crystallization; forced marks the
// timeout path. Crystallize always returns a structurally valid
// configuration; it has no failure mode.
func Crystallize(store *particle.Store, elapsed float64, steps int, forced bool) *Configuration {
	geometry := attractor.Geometry(elapsed)

	seed := make([]SeedParticle, 0, particle.TypeCount)
	for _, t := range particle.AllTypes() {
		p := store.Particles[t]
		seed = append(seed, SeedParticle{
			Type:             t,
			Position:         p.Position,
			Velocity:         p.Velocity,
			CouplingStrength: p.CouplingStrength,
		})
	}

	centroid := positionCentroid(seed)
	yang := yangIntensity(seed)
	yin := yinIntensity(seed)

	hunCount := hunBase + int(math.Floor(yang*countSpn))
	if hunCount > hunBase+countSpn {
		hunCount = hunBase + countSpn
	}
	poCount := poBase + int(math.Floor(yin*countSpn))
	if poCount > poBase+countSpn {
		poCount = poBase + countSpn
	}

	cfg := &Configuration{
		ID:                uuid.NewString(),
		Signature:         signature(seed),
		CreatedAt:         time.Now().UTC(),
		Forced:            forced,
		Steps:             steps,
		Elapsed:           elapsed,
		Centroid:          centroid,
		YangIntensity:     yang,
		YinIntensity:      yin,
		DominantAttractor: dominantAttractor(store),
		Geometry:          geometry,
		Seed:              seed,
	}

	for i := 0; i < hunCount; i++ {
		inf := influenceVector("hun", i, seed)
		name, function := hunName(i)
		cfg.Hun = append(cfg.Hun, HunEntity{
			ID:         uuid.NewString(),
			Name:       name,
			Function:   function,
			Strength:   squash(0.6*inf[particle.Vital] + 0.4*inf[particle.Transformative]),
			Purity:     squash(0.7*inf[particle.Conscious] + 0.3*inf[particle.Creative]),
			Connection: squash(0.5*inf[particle.Connective] + 0.3*inf[particle.Conscious] + 0.2*inf[particle.Vital]),
		})
	}

	for i := 0; i < poCount; i++ {
		// Complementary weighting: po entities draw from the inverted
		// influence components of the same seed state.
		inf := influenceVector("po", i, seed)
		name, function := poName(i)
		cfg.Po = append(cfg.Po, PoEntity{
			ID:         uuid.NewString(),
			Name:       name,
			Function:   function,
			Strength:   squash(0.6*(1-inf[particle.Transformative]) + 0.4*inf[particle.Vital]),
			Viscosity:  squash(0.7*(1-inf[particle.Creative]) + 0.3*(1-inf[particle.Conscious])),
			Connection: squash(0.5*inf[particle.Connective] + 0.5*(1-inf[particle.Vital])),
		})
	}

	return cfg
}

// squash compresses a non-negative weighted sum into [0,1).
func squash(x float64) float64 {
	if !(x > 0) {
		return 0
	}
	return math.Tanh(x)
}

func positionCentroid(seed []SeedParticle) vec.Vec3 {
	var c vec.Vec3
	for _, p := range seed {
		c = c.Add(p.Position)
	}
	return c.Scale(1.0 / float64(len(seed)))
}

// yangIntensity is the mean of each particle's normalized height and
// velocity magnitude, clamped to [0,1]. Height is mapped from the central
// [-10,10] band of the phase space.
func yangIntensity(seed []SeedParticle) float64 {
	total := 0.0
	for _, p := range seed {
		height := clamp01((p.Position.Z + 10) / 20)
		speed := clamp01(p.Velocity.Length() / 10)
		total += 0.6*height + 0.4*speed
	}
	return clamp01(total / float64(len(seed)))
}

// yinIntensity mirrors yangIntensity with normalized depth and inverse
// velocity magnitude.
func yinIntensity(seed []SeedParticle) float64 {
	total := 0.0
	for _, p := range seed {
		depth := clamp01((10 - p.Position.Z) / 20)
		stillness := clamp01(1 / (1 + p.Velocity.Length()))
		total += 0.6*depth + 0.4*stillness
	}
	return clamp01(total / float64(len(seed)))
}

// dominantAttractor returns the kind holding the single highest affinity
// weight across all particles. Ties keep the first encountered weight in
// enumerated particle-then-kind order.
func dominantAttractor(store *particle.Store) attractor.Kind {
	best := attractor.Kind(0)
	bestWeight := math.Inf(-1)
	for _, t := range particle.AllTypes() {
		p := store.Particles[t]
		for k := 0; k < attractor.KindCount; k++ {
			if p.AttractorInfluence[k] > bestWeight {
				bestWeight = p.AttractorInfluence[k]
				best = attractor.Kind(k)
			}
		}
	}
	return best
}

// influenceVector derives one influence component per particle for entity
// index i: the index is hashed against the particle's position, weighted by
// hex-similarity against the bare position hash, then by velocity magnitude,
// and squashed. Any change to any seed vector shifts every component.
func influenceVector(class string, i int, seed []SeedParticle) [particle.TypeCount]float64 {
	var inf [particle.TypeCount]float64
	for _, p := range seed {
		indexed := hashHex(class + ":" + strconv.Itoa(i) + ":" + vecKey(p.Position))
		base := hashHex(vecKey(p.Position))
		sim := hexSimilarity(indexed, base)
		inf[p.Type] = math.Tanh(sim * clamp01(p.Velocity.Length()/10+0.1) * 4)
	}
	return inf
}

// hexSimilarity is the fraction of positions where two equal-length hex
// strings agree. Random SHA-256 pairs agree on ~1/16 of positions, so the
// value concentrates near 0.0625 and is extremely sensitive to its inputs.
func hexSimilarity(a, b string) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}
	match := 0
	for i := 0; i < n; i++ {
		if a[i] == b[i] {
			match++
		}
	}
	return float64(match) / float64(n)
}

// signature hashes the concatenation of every seed particle's hashed
// position and velocity. Vectors are keyed by exact bit-level float
// formatting: bit-identical seed states sign identically, and any
// perturbation, however small, produces a different signature.
func signature(seed []SeedParticle) string {
	h := sha256.New()
	for _, p := range seed {
		h.Write([]byte(hashHex(vecKey(p.Position))))
		h.Write([]byte(hashHex(vecKey(p.Velocity))))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func hashHex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// vecKey renders a vector with the exact hexadecimal float format so the
// key round-trips every bit of the underlying float64s.
func vecKey(v vec.Vec3) string {
	return strconv.FormatFloat(v.X, 'x', -1, 64) + "," +
		strconv.FormatFloat(v.Y, 'x', -1, 64) + "," +
		strconv.FormatFloat(v.Z, 'x', -1, 64)
}

// clamp01 clamps to [0,1]. NaN maps to 0 so that a forced crystallization
// of a diverged run still yields in-range intensities and entity counts.
func clamp01(x float64) float64 {
	if !(x > 0) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
