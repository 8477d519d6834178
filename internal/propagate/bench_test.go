package propagate

import (
	"testing"

	"github.com/san-kum/trojansim/internal/body"
)

func benchSystem(n int) []*body.Body {
	star := makeStar()
	bodies := []*body.Body{star}
	for i := 0; i < n; i++ {
		r := body.AU * (1 + 0.2*float64(i))
		p := makePlanet(star, "p", r, 1.0)
		p.Mass = 1e24
		bodies = append(bodies, p)
	}
	return bodies
}

func BenchmarkRK4_3Planets(b *testing.B) {
	bodies := benchSystem(3)
	prop := NewRK4()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := prop.Step(bodies, 3600); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkVerlet_3Planets(b *testing.B) {
	bodies := benchSystem(3)
	prop := NewVerlet()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := prop.Step(bodies, 3600); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRK4_32Planets(b *testing.B) {
	bodies := benchSystem(32)
	prop := NewRK4()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := prop.Step(bodies, 3600); err != nil {
			b.Fatal(err)
		}
	}
}
