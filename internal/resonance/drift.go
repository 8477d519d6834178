package resonance

import (
	"math"

	"github.com/san-kum/trojansim/internal/body"
	"github.com/san-kum/trojansim/internal/system"
)

// DriftMonitor is an Observer that tracks the worst relative drift of each
// Trojan's specific orbital energy and angular momentum over a run. Large
// drift means the step size is too coarse for the configured orbits.
type DriftMonitor struct {
	star     *body.Body
	trojans  [2]*body.Body
	initEps  [2]float64
	initH    [2]float64
	maxEps   float64
	maxH     float64
	observed bool
}

func NewDriftMonitor(sys *system.System) *DriftMonitor {
	t1, t2 := sys.TrojanPair()
	return &DriftMonitor{star: sys.Star(), trojans: [2]*body.Body{t1, t2}}
}

func (d *DriftMonitor) OnYear(Sample) {
	if !d.observed {
		for i, t := range d.trojans {
			d.initEps[i] = t.SpecificOrbitalEnergy(d.star)
			d.initH[i] = t.SpecificAngularMomentum(d.star)
		}
		d.observed = true
		return
	}

	for i, t := range d.trojans {
		if d.initEps[i] != 0 {
			drift := math.Abs(t.SpecificOrbitalEnergy(d.star)-d.initEps[i]) / math.Abs(d.initEps[i])
			d.maxEps = math.Max(d.maxEps, drift)
		}
		if d.initH[i] != 0 {
			drift := math.Abs(t.SpecificAngularMomentum(d.star)-d.initH[i]) / math.Abs(d.initH[i])
			d.maxH = math.Max(d.maxH, drift)
		}
	}
}

// MaxEnergyDrift returns the largest relative specific-energy drift seen,
// taking the first yearly sample as the baseline.
func (d *DriftMonitor) MaxEnergyDrift() float64 { return d.maxEps }

// MaxAngularMomentumDrift returns the largest relative |h| drift seen.
func (d *DriftMonitor) MaxAngularMomentumDrift() float64 { return d.maxH }
