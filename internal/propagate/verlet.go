package propagate

import (
	"github.com/san-kum/trojansim/internal/body"
	"github.com/san-kum/trojansim/internal/gravity"
	"github.com/san-kum/trojansim/internal/vec"
)

// Verlet is a velocity-Verlet (kick-drift-kick) propagator. It caches each
// body's acceleration between steps so the field is evaluated once per body
// per step after the first.
type Verlet struct {
	acc    []vec.Vec3
	pos    []vec.Vec3
	primed bool
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) ensureScratch(n int) {
	if len(v.acc) != n {
		v.acc = make([]vec.Vec3, n)
		v.pos = make([]vec.Vec3, n)
		v.primed = false
	}
}

func (v *Verlet) Step(bodies []*body.Body, dt float64) error {
	if err := validateStep(bodies, dt); err != nil {
		return err
	}

	n := len(bodies)
	v.ensureScratch(n)

	if !v.primed {
		for i, b := range bodies {
			if b.IsStar() {
				continue
			}
			a, err := gravity.AccelerationAt(i, b.Position, bodies)
			if err != nil {
				return err
			}
			v.acc[i] = a
		}
		v.primed = true
	}

	// Drift: new positions from the pre-step snapshot, committed together.
	half := 0.5 * dt * dt
	for i, b := range bodies {
		if b.IsStar() {
			continue
		}
		v.pos[i] = b.Position.Add(b.Velocity.Scale(dt)).Add(v.acc[i].Scale(half))
	}
	for i, b := range bodies {
		if b.IsStar() {
			continue
		}
		b.Position = v.pos[i]
	}

	// Kick: average of the old and the post-drift accelerations.
	for i, b := range bodies {
		if b.IsStar() {
			continue
		}
		a, err := gravity.AccelerationAt(i, b.Position, bodies)
		if err != nil {
			return err
		}
		b.Velocity = b.Velocity.Add(v.acc[i].Add(a).Scale(0.5 * dt))
		v.acc[i] = a
	}
	return nil
}
