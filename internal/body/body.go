// Package body defines the celestial bodies being simulated and the
// two-body orbital-element queries derived from their state.
package body

import (
	"fmt"

	"github.com/san-kum/trojansim/internal/vec"
)

// Physical constants in SI units.
const (
	// G is the Newtonian gravitational constant (m^3 kg^-1 s^-2).
	G = 6.6743e-11
	// SecondsPerDay is the length of a day in seconds.
	SecondsPerDay = 60 * 60 * 24
	// SecondsPerYear is the length of a Julian year (365.25 days) in seconds.
	SecondsPerYear = SecondsPerDay * 365.25
	// AU is the astronomical unit in meters.
	AU = 1.495978707e11
)

// Kind classifies a body. It has no effect on the physics except that the
// single Star in a system is the fixed reference the propagator never moves.
type Kind int

const (
	Star Kind = iota
	Giant
	Terrestrial
)

func (k Kind) String() string {
	switch k {
	case Star:
		return "STAR"
	case Giant:
		return "GIANT"
	case Terrestrial:
		return "TERRESTRIAL"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind converts the file-format token into a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "STAR":
		return Star, nil
	case "GIANT":
		return Giant, nil
	case "TERRESTRIAL":
		return Terrestrial, nil
	default:
		return 0, fmt.Errorf("body: unknown kind %q", s)
	}
}

// Body is one physical body. Position and Velocity are mutated in place by
// the propagator every step; all other fields are fixed after construction.
type Body struct {
	Name     string
	Kind     Kind
	Trojan   bool
	Mass     float64 // kg
	Radius   float64 // m, informational only
	Position vec.Vec3
	Velocity vec.Vec3
}

// IsStar reports whether this body is the fixed central reference. The
// propagator keys off the role tag, not the body's slice position.
func (b *Body) IsStar() bool {
	return b.Kind == Star
}
