package propagate

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/trojansim/internal/body"
	"github.com/san-kum/trojansim/internal/gravity"
	"github.com/san-kum/trojansim/internal/vec"
)

const solarMass = 1.989e30

func makeStar() *body.Body {
	return &body.Body{Name: "Sol", Kind: body.Star, Mass: solarMass}
}

// makePlanet places a planet on the x-axis at radius r with a tangential
// velocity of speedFactor times the local circular speed.
func makePlanet(star *body.Body, name string, r, speedFactor float64) *body.Body {
	p := &body.Body{
		Name:     name,
		Kind:     body.Terrestrial,
		Mass:     1e3,
		Position: star.Position.Add(vec.New(r, 0, 0)),
	}
	p.Velocity = star.Velocity.Add(vec.New(0, speedFactor*p.CircularSpeed(star), 0))
	return p
}

func propagators(t *testing.T) map[string]Propagator {
	t.Helper()
	return map[string]Propagator{
		"rk4":    NewRK4(),
		"verlet": NewVerlet(),
	}
}

// A circular orbit must close: after one period the planet returns to its
// starting state.
func TestKeplerianRoundTrip(t *testing.T) {
	for name, prop := range propagators(t) {
		t.Run(name, func(t *testing.T) {
			star := makeStar()
			planet := makePlanet(star, "earth", body.AU, 1.0)
			bodies := []*body.Body{star, planet}

			p0 := planet.Position
			v0 := planet.Velocity
			period := planet.Period(star)

			steps := 5000
			dt := period / float64(steps)
			for i := 0; i < steps; i++ {
				if err := prop.Step(bodies, dt); err != nil {
					t.Fatalf("step %d: %v", i, err)
				}
			}

			posErr := planet.Position.Sub(p0).Norm() / body.AU
			if posErr > 1e-4 {
				t.Errorf("position error after one period: %g relative", posErr)
			}

			velErr := planet.Velocity.Sub(v0).Norm() / v0.Norm()
			if velErr > 1e-4 {
				t.Errorf("velocity error after one period: %g relative", velErr)
			}
		})
	}
}

func TestStarInvariance(t *testing.T) {
	for name, prop := range propagators(t) {
		t.Run(name, func(t *testing.T) {
			star := makeStar()
			star.Position = vec.New(1e9, -3e8, 2e7)
			star.Velocity = vec.New(12.5, -7.25, 3.125)
			planet := makePlanet(star, "p", body.AU, 1.0)
			bodies := []*body.Body{star, planet}

			wantPos := star.Position
			wantVel := star.Velocity

			for i := 0; i < 100; i++ {
				if err := prop.Step(bodies, 3600); err != nil {
					t.Fatalf("step %d: %v", i, err)
				}
			}

			// Bitwise: no arithmetic may touch the star.
			if star.Position != wantPos {
				t.Errorf("star position changed: %v -> %v", wantPos, star.Position)
			}
			if star.Velocity != wantVel {
				t.Errorf("star velocity changed: %v -> %v", wantVel, star.Velocity)
			}
		})
	}
}

// The star is role-tagged, not positional: a star that is not at index 0
// still stays fixed.
func TestStarInvariance_NotFirst(t *testing.T) {
	star := makeStar()
	planet := makePlanet(star, "p", body.AU, 1.0)
	bodies := []*body.Body{planet, star}

	prop := NewRK4()
	if err := prop.Step(bodies, 3600); err != nil {
		t.Fatalf("step: %v", err)
	}

	if star.Position != (vec.Vec3{}) || star.Velocity != (vec.Vec3{}) {
		t.Error("star moved despite not being at index 0")
	}
	if planet.Position == makePlanet(makeStar(), "p", body.AU, 1.0).Position {
		t.Error("planet did not move")
	}
}

func TestConservation_OnePeriod(t *testing.T) {
	for name, prop := range propagators(t) {
		t.Run(name, func(t *testing.T) {
			star := makeStar()
			planet := makePlanet(star, "p", body.AU, 1.05) // slightly eccentric
			bodies := []*body.Body{star, planet}

			eps0 := planet.SpecificOrbitalEnergy(star)
			h0 := planet.SpecificAngularMomentum(star)
			period := planet.Period(star)

			steps := 5000
			dt := period / float64(steps)
			for i := 0; i < steps; i++ {
				if err := prop.Step(bodies, dt); err != nil {
					t.Fatalf("step %d: %v", i, err)
				}
			}

			if drift := math.Abs(planet.SpecificOrbitalEnergy(star)-eps0) / math.Abs(eps0); drift > 1e-3 {
				t.Errorf("energy drift %g exceeds 0.1%%", drift)
			}
			if drift := math.Abs(planet.SpecificAngularMomentum(star)-h0) / h0; drift > 1e-3 {
				t.Errorf("|h| drift %g exceeds 0.1%%", drift)
			}
		})
	}
}

// Mirrored initial conditions must produce mirrored trajectories.
func TestMirrorSymmetry(t *testing.T) {
	star := makeStar()
	p1 := makePlanet(star, "a", body.AU, 1.0)
	p2 := makePlanet(star, "b", body.AU, 1.0)
	p2.Position = p2.Position.Scale(-1)
	p2.Velocity = p2.Velocity.Scale(-1)
	p1.Mass = 5.97e24
	p2.Mass = 5.97e24
	bodies := []*body.Body{star, p1, p2}

	prop := NewRK4()
	for i := 0; i < 500; i++ {
		if err := prop.Step(bodies, 3600); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	if d := p1.Position.Add(p2.Position).Norm() / body.AU; d > 1e-9 {
		t.Errorf("positions lost mirror symmetry: %g relative", d)
	}
	if d := p1.Velocity.Add(p2.Velocity).Norm() / p1.Velocity.Norm(); d > 1e-9 {
		t.Errorf("velocities lost mirror symmetry: %g relative", d)
	}
}

// With stage evaluation pinned to the pre-step snapshot, the order of the
// planets in the list cannot change the outcome of a step.
func TestStepOrderIndependence(t *testing.T) {
	build := func() (*body.Body, *body.Body, *body.Body) {
		star := makeStar()
		a := makePlanet(star, "a", body.AU, 1.0)
		b := makePlanet(star, "b", 1.3*body.AU, 0.95)
		a.Mass = 5.97e24
		b.Mass = 1.9e27
		return star, a, b
	}

	star1, a1, b1 := build()
	star2, a2, b2 := build()

	prop1 := NewRK4()
	prop2 := NewRK4()
	for i := 0; i < 50; i++ {
		if err := prop1.Step([]*body.Body{star1, a1, b1}, 3600); err != nil {
			t.Fatalf("step: %v", err)
		}
		if err := prop2.Step([]*body.Body{star2, b2, a2}, 3600); err != nil {
			t.Fatalf("step: %v", err)
		}
	}

	if a1.Position != a2.Position || b1.Position != b2.Position {
		t.Error("step outcome depends on body order")
	}
}

func TestStep_SingularityAborts(t *testing.T) {
	star := makeStar()
	p1 := makePlanet(star, "a", body.AU, 1.0)
	p2 := makePlanet(star, "b", body.AU, 1.0) // same position as p1
	bodies := []*body.Body{star, p1, p2}

	for name, prop := range propagators(t) {
		t.Run(name, func(t *testing.T) {
			err := prop.Step(bodies, 3600)
			if err == nil {
				t.Fatal("expected singularity error")
			}
			if !errors.Is(err, gravity.ErrSingularity) {
				t.Errorf("error %v does not wrap gravity.ErrSingularity", err)
			}
		})
	}
}

func TestStep_Validation(t *testing.T) {
	prop := NewRK4()
	star := makeStar()

	if err := prop.Step([]*body.Body{star}, 0); err == nil {
		t.Error("expected error for zero dt")
	}
	if err := prop.Step([]*body.Body{star}, -10); err == nil {
		t.Error("expected error for negative dt")
	}
	if err := prop.Step(nil, 1); err == nil {
		t.Error("expected error for empty body list")
	}
}

func TestNew(t *testing.T) {
	if _, err := New("rk4"); err != nil {
		t.Errorf("rk4: %v", err)
	}
	if _, err := New("verlet"); err != nil {
		t.Errorf("verlet: %v", err)
	}
	if _, err := New("rk45"); err == nil {
		t.Error("expected error for unknown propagator")
	}
}

// The parallel stage path must agree with the sequential one.
func TestParallelMatchesSequential(t *testing.T) {
	build := func() []*body.Body {
		star := makeStar()
		bodies := []*body.Body{star}
		for i := 0; i < parallelThreshold+3; i++ {
			r := body.AU * (1 + 0.1*float64(i))
			p := makePlanet(star, "p", r, 1.0)
			p.Mass = 1e24
			bodies = append(bodies, p)
		}
		return bodies
	}

	big := build()
	small := build()

	prop := NewRK4()
	if err := prop.Step(big, 3600); err != nil {
		t.Fatalf("parallel step: %v", err)
	}

	// Drive the sequential path directly.
	seq := NewRK4()
	seq.ensureScratch(len(small))
	errs := make([]error, len(small))
	for i := range small {
		if small[i].IsStar() {
			continue
		}
		errs[i] = seq.stageBody(i, small, 3600)
	}
	if err := firstError(errs); err != nil {
		t.Fatalf("sequential stages: %v", err)
	}
	for i, b := range small {
		if b.IsStar() {
			continue
		}
		b.Position = seq.pos[i]
		b.Velocity = seq.vel[i]
	}

	for i := range big {
		if big[i].Position != small[i].Position || big[i].Velocity != small[i].Velocity {
			t.Fatalf("body %d: parallel and sequential results differ", i)
		}
	}
}
