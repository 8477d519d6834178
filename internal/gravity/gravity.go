// Package gravity evaluates the net gravitational field of a body list.
package gravity

import (
	"errors"
	"fmt"

	"github.com/san-kum/trojansim/internal/body"
	"github.com/san-kum/trojansim/internal/vec"
)

// ErrSingularity indicates two bodies at zero separation. The configuration
// is physically invalid (a collision) and the run must abort; callers must
// not clamp or continue.
var ErrSingularity = errors.New("gravity: zero separation between bodies")

// AccelerationAt computes the net gravitational acceleration at position p
// for the body at index target:
//
//	a(p) = -G * sum_{j != target} m_j * (p - p_j) / |p - p_j|^3
//
// p may differ from the target's stored position; intermediate integration
// stages pass candidate positions while the body list holds the pre-step
// snapshot. Every other body contributes, the star included.
func AccelerationAt(target int, p vec.Vec3, bodies []*body.Body) (vec.Vec3, error) {
	if target < 0 || target >= len(bodies) {
		return vec.Vec3{}, fmt.Errorf("gravity: target index %d out of range [0,%d)", target, len(bodies))
	}

	var acc vec.Vec3
	for j, src := range bodies {
		if j == target {
			continue
		}
		rel := p.Sub(src.Position)
		dist := rel.Norm()
		if dist == 0 {
			return vec.Vec3{}, fmt.Errorf("gravity: bodies %d and %d coincide: %w", target, j, ErrSingularity)
		}
		acc = acc.Add(rel.Scale(-body.G * src.Mass / (dist * dist * dist)))
	}
	return acc, nil
}
