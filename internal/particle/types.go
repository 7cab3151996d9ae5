// Package particle provides the five-type particle model and the per-run
// state store seeded from initial concentrations.
package particle

import "fmt"

// Type identifies one of the five fixed particle kinds. The set is closed;
// Type is used as the index into per-run state and the interaction matrix.
type Type uint8

const (
	Vital Type = iota
	Conscious
	Creative
	Connective
	Transformative

	// TypeCount is the number of particle types.
	TypeCount = 5
)

var typeNames = [TypeCount]string{"vital", "conscious", "creative", "connective", "transformative"}

// String returns the lowercase type name.
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// MarshalText encodes the type as its name for JSON keys and fields.
func (t Type) MarshalText() ([]byte, error) {
	if int(t) >= TypeCount {
		return nil, fmt.Errorf("invalid particle type %d", t)
	}
	return []byte(typeNames[t]), nil
}

// UnmarshalText decodes a type from its name.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseType returns the Type for a lowercase name.
func ParseType(name string) (Type, error) {
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("unknown particle type %q", name)
}

// AllTypes returns the particle types in their fixed enumerated order.
// Every per-particle loop in the simulation iterates in this order so that
// seeded runs are bit-reproducible.
func AllTypes() [TypeCount]Type {
	return [TypeCount]Type{Vital, Conscious, Creative, Connective, Transformative}
}
