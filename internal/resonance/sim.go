// Package resonance drives the orbit propagator year over year and decides
// whether a co-orbital pair has stayed in 1:1 resonance.
package resonance

import (
	"context"
	"fmt"

	"github.com/san-kum/trojansim/internal/body"
	"github.com/san-kum/trojansim/internal/propagate"
	"github.com/san-kum/trojansim/internal/system"
)

// StopReason explains why a run left the Running state.
type StopReason string

const (
	// ReasonMarginExceeded means the Trojan periods diverged past the
	// configured margin at a yearly sample.
	ReasonMarginExceeded StopReason = "margin exceeded"
	// ReasonTimeLimit means the run reached the year cap still in margin.
	ReasonTimeLimit StopReason = "time limit"
)

// DefaultMaxYears is the year cap when none is configured.
const DefaultMaxYears = 10_000_000

type Config struct {
	// Step is the fixed propagation time step in seconds.
	Step float64
	// Margin is the allowed percent deviation between the Trojan periods.
	Margin float64
	// MaxYears caps the run; 0 means DefaultMaxYears.
	MaxYears int
}

// Sample is one yearly observation of the Trojan pair's periods, in days.
type Sample struct {
	Year int     `json:"year"`
	P1   float64 `json:"p1_days"`
	P2   float64 `json:"p2_days"`
}

// Result is the observable outcome of a run. Series grows by one sample per
// elapsed year and is safe to hand to plotting once the run finishes.
type Result struct {
	Years      int
	Reason     StopReason
	StepsTaken int
	Series     []Sample
}

// Observer receives each yearly sample as it is taken. Observers must not
// mutate the bodies.
type Observer interface {
	OnYear(sample Sample)
}

// Simulator owns the body list for the duration of a run.
type Simulator struct {
	sys       *system.System
	prop      propagate.Propagator
	observers []Observer
}

func New(sys *system.System, prop propagate.Propagator) *Simulator {
	return &Simulator{sys: sys, prop: prop}
}

func (s *Simulator) AddObserver(o Observer) {
	s.observers = append(s.observers, o)
}

// PercentDiff returns the percent difference between two periods relative
// to their mean.
func PercentDiff(p1, p2 float64) float64 {
	diff := p1 - p2
	if diff < 0 {
		diff = -diff
	}
	return diff / ((p1 + p2) / 2) * 100
}

// Run propagates the system until the Trojan pair drifts out of margin, the
// year cap is reached, or ctx is canceled. Periods are sampled and the
// margin evaluated once per elapsed Julian year.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validate(cfg); err != nil {
		return nil, err
	}

	maxYears := cfg.MaxYears
	if maxYears == 0 {
		maxYears = DefaultMaxYears
	}

	star := s.sys.Star()
	t1, t2 := s.sys.TrojanPair()

	result := &Result{}
	elapsed := 0.0
	years := 0

	for {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := s.prop.Step(s.sys.Bodies, cfg.Step); err != nil {
			return result, fmt.Errorf("step %d (year %d): %w", result.StepsTaken, years, err)
		}
		result.StepsTaken++
		elapsed += cfg.Step

		if int(elapsed/body.SecondsPerYear) <= years {
			continue
		}
		years++
		result.Years = years

		sample := Sample{
			Year: years,
			P1:   t1.Period(star) / body.SecondsPerDay,
			P2:   t2.Period(star) / body.SecondsPerDay,
		}
		result.Series = append(result.Series, sample)
		for _, o := range s.observers {
			o.OnYear(sample)
		}

		if PercentDiff(sample.P1, sample.P2) > cfg.Margin {
			result.Reason = ReasonMarginExceeded
			return result, nil
		}
		if years >= maxYears {
			result.Reason = ReasonTimeLimit
			return result, nil
		}
	}
}

func (s *Simulator) validate(cfg Config) error {
	if cfg.Step <= 0 {
		return fmt.Errorf("resonance: step must be positive, got %g", cfg.Step)
	}
	if cfg.Margin <= 0 {
		return fmt.Errorf("resonance: margin must be positive, got %g", cfg.Margin)
	}
	if cfg.MaxYears < 0 {
		return fmt.Errorf("resonance: max years must not be negative, got %d", cfg.MaxYears)
	}
	return nil
}
