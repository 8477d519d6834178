package propagate

import (
	"github.com/san-kum/trojansim/internal/body"
	"github.com/san-kum/trojansim/internal/gravity"
	"github.com/san-kum/trojansim/internal/vec"
)

// RK4 is the classical fixed-step 4th-order Runge-Kutta propagator.
type RK4 struct {
	pos []vec.Vec3
	vel []vec.Vec3
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.pos) != n {
		r.pos = make([]vec.Vec3, n)
		r.vel = make([]vec.Vec3, n)
	}
}

// Step advances every non-star body by dt. All four stages for every body
// are evaluated against the pre-step positions; the commit loop runs only
// after the last stage of the last body.
func (r *RK4) Step(bodies []*body.Body, dt float64) error {
	if err := validateStep(bodies, dt); err != nil {
		return err
	}

	n := len(bodies)
	r.ensureScratch(n)

	errs := make([]error, n)
	stage := func(start, end int) {
		for i := start; i < end; i++ {
			if bodies[i].IsStar() {
				continue
			}
			errs[i] = r.stageBody(i, bodies, dt)
		}
	}

	if n >= parallelThreshold {
		parallelFor(n, 4, stage)
	} else {
		stage(0, n)
	}

	if err := firstError(errs); err != nil {
		return err
	}

	for i, b := range bodies {
		if b.IsStar() {
			continue
		}
		b.Position = r.pos[i]
		b.Velocity = r.vel[i]
	}
	return nil
}

func (r *RK4) stageBody(i int, bodies []*body.Body, dt float64) error {
	p0 := bodies[i].Position
	v0 := bodies[i].Velocity

	a1, err := gravity.AccelerationAt(i, p0, bodies)
	if err != nil {
		return err
	}
	k1v := a1.Scale(dt)
	k1x := v0.Scale(dt)

	a2, err := gravity.AccelerationAt(i, p0.Add(k1x.Scale(0.5)), bodies)
	if err != nil {
		return err
	}
	k2v := a2.Scale(dt)
	k2x := v0.Add(k1v.Scale(0.5)).Scale(dt)

	a3, err := gravity.AccelerationAt(i, p0.Add(k2x.Scale(0.5)), bodies)
	if err != nil {
		return err
	}
	k3v := a3.Scale(dt)
	k3x := v0.Add(k2v.Scale(0.5)).Scale(dt)

	a4, err := gravity.AccelerationAt(i, p0.Add(k3x), bodies)
	if err != nil {
		return err
	}
	k4v := a4.Scale(dt)
	k4x := v0.Add(k3v).Scale(dt)

	r.vel[i] = v0.Add(k1v.Add(k2v.Scale(2)).Add(k3v.Scale(2)).Add(k4v).Scale(1.0 / 6.0))
	r.pos[i] = p0.Add(k1x.Add(k2x.Scale(2)).Add(k3x.Scale(2)).Add(k4x).Scale(1.0 / 6.0))
	return nil
}
