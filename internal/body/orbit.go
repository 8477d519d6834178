package body

import (
	"math"

	"github.com/san-kum/trojansim/internal/vec"
)

// Orbital-element queries relative to a central body. These are pure
// functions of the two body snapshots; they read state but never mutate it.

// RelativePosition returns the position of b relative to central, in meters.
func (b *Body) RelativePosition(central *Body) vec.Vec3 {
	return b.Position.Sub(central.Position)
}

// RelativeVelocity returns the velocity of b relative to central, in m/s.
func (b *Body) RelativeVelocity(central *Body) vec.Vec3 {
	return b.Velocity.Sub(central.Velocity)
}

// Mu returns the standard gravitational parameter of the pair,
// G*(m + M), in m^3/s^2.
func (b *Body) Mu(central *Body) float64 {
	return G * (b.Mass + central.Mass)
}

// SpecificAngularMomentum returns |h| where h = r x v, in m^2/s.
func (b *Body) SpecificAngularMomentum(central *Body) float64 {
	r := b.Position.Sub(central.Position)
	v := b.Velocity.Sub(central.Velocity)
	return r.Cross(v).Norm()
}

// SpecificOrbitalEnergy returns eps = v^2/2 - mu/|r|, in J/kg, using the
// true instantaneous relative speed.
func (b *Body) SpecificOrbitalEnergy(central *Body) float64 {
	r := b.Position.Sub(central.Position).Norm()
	v := b.Velocity.Sub(central.Velocity).Norm()
	return v*v/2 - b.Mu(central)/r
}

// SemiMajorAxis returns a = -mu/(2*eps), in meters. Negative for unbound
// (hyperbolic) trajectories.
func (b *Body) SemiMajorAxis(central *Body) float64 {
	return -b.Mu(central) / (2 * b.SpecificOrbitalEnergy(central))
}

// Eccentricity returns e = sqrt(1 + 2*eps*h^2/mu^2), dimensionless.
func (b *Body) Eccentricity(central *Body) float64 {
	h := b.SpecificAngularMomentum(central)
	mu := b.Mu(central)
	eps := b.SpecificOrbitalEnergy(central)
	arg := 1 + 2*eps*h*h/(mu*mu)
	if arg < 0 {
		// Round-off can push a near-circular orbit slightly negative.
		return 0
	}
	return math.Sqrt(arg)
}

// Period returns the orbital period T = 2*pi*sqrt(a^3/mu), in seconds.
func (b *Body) Period(central *Body) float64 {
	a := b.SemiMajorAxis(central)
	return 2 * math.Pi * math.Sqrt(a*a*a/b.Mu(central))
}

// CircularSpeed returns the local circular-orbit speed sqrt(G*M/|r|)
// around central, in m/s. Used to set up near-circular initial conditions.
func (b *Body) CircularSpeed(central *Body) float64 {
	r := b.Position.Sub(central.Position).Norm()
	return math.Sqrt(G * central.Mass / r)
}
