// Package propagate advances the bodies of a planetary system through fixed
// time steps. Propagators mutate positions and velocities in place; the
// system's star is the fixed reference and is never touched.
//
// Every propagator honors the same snapshot contract: all per-body stage
// computations for one step read the body list as it stood when the step
// began, and updates are committed only after every body's stages are done.
// A partially-updated list is never observable from outside Step.
package propagate

import (
	"fmt"

	"github.com/san-kum/trojansim/internal/body"
)

type Propagator interface {
	Step(bodies []*body.Body, dt float64) error
}

// New returns the propagator registered under the given name.
func New(name string) (Propagator, error) {
	switch name {
	case "rk4":
		return NewRK4(), nil
	case "verlet":
		return NewVerlet(), nil
	default:
		return nil, fmt.Errorf("propagate: unknown propagator %q (available: rk4, verlet)", name)
	}
}

func validateStep(bodies []*body.Body, dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("propagate: time step must be positive, got %g", dt)
	}
	if len(bodies) == 0 {
		return fmt.Errorf("propagate: empty body list")
	}
	return nil
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
