// Package system reads and writes the plain-text initial-condition format:
// one body per line, a kind token followed by whitespace-separated
// key=value pairs.
//
//	STAR name=Sol mass=1.989e30 radius=6.96e8 position=0,0,0 velocity=0,0,0
//	GIANT trojan=True name=Hektor mass=1.9e27 position=7.78e11,0,0 velocity=0,13070,0
//
// Missing keys default silently (zero mass and radius, origin position and
// velocity); unknown keys are fatal.
package system

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/san-kum/trojansim/internal/body"
	"github.com/san-kum/trojansim/internal/vec"
)

// System is a parsed planetary system. The star is always at index 0 of
// Bodies, wherever it appeared in the file, and Trojans holds the indices
// of the co-orbital pair after that reordering.
type System struct {
	Bodies  []*body.Body
	Trojans [2]int
}

// Star returns the fixed central body.
func (s *System) Star() *body.Body {
	return s.Bodies[0]
}

// TrojanPair returns the two bodies under study.
func (s *System) TrojanPair() (*body.Body, *body.Body) {
	return s.Bodies[s.Trojans[0]], s.Bodies[s.Trojans[1]]
}

// ParseFile reads an initial-condition file from disk.
func ParseFile(path string) (*System, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sys, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sys, nil
}

// Parse reads one body per non-blank line, validates the star and Trojan
// counts, and moves the star to index 0.
func Parse(r io.Reader) (*System, error) {
	scanner := bufio.NewScanner(r)

	var bodies []*body.Body
	starCount := 0
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		b, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if b.Kind == body.Star {
			starCount++
			if starCount > 1 {
				return nil, fmt.Errorf("line %d: %w", lineNum, ErrMultiStar)
			}
		}
		bodies = append(bodies, b)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if starCount == 0 {
		return nil, ErrNoStar
	}

	// Put the star in front, then locate the Trojan pair.
	if !bodies[0].IsStar() {
		for i, b := range bodies {
			if b.IsStar() {
				bodies[0], bodies[i] = bodies[i], bodies[0]
				break
			}
		}
	}

	sys := &System{Bodies: bodies}
	trojanCount := 0
	for i, b := range bodies {
		if b.Trojan {
			if trojanCount < 2 {
				sys.Trojans[trojanCount] = i
			}
			trojanCount++
		}
	}
	if trojanCount != 2 {
		return nil, fmt.Errorf("found %d trojan bodies: %w", trojanCount, ErrTrojanCount)
	}

	return sys, nil
}

// ParseLine constructs one body from a single line of the file format.
func ParseLine(line string) (*body.Body, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, ErrUnknownKind
	}

	kind, err := body.ParseKind(fields[0])
	if err != nil {
		return nil, fmt.Errorf("%q: %w", fields[0], ErrUnknownKind)
	}

	b := &body.Body{Kind: kind}
	for _, field := range fields[1:] {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return nil, fmt.Errorf("token %q is not key=value: %w", field, ErrBadValue)
		}

		switch key {
		case "trojan":
			switch value {
			case "True":
				b.Trojan = true
			case "False":
				b.Trojan = false
			default:
				return nil, fmt.Errorf("trojan must be True or False, got %q: %w", value, ErrBadValue)
			}
		case "name":
			b.Name = value
		case "mass":
			b.Mass, err = parseFloat(key, value)
		case "radius":
			b.Radius, err = parseFloat(key, value)
		case "position":
			b.Position, err = parseVec(value)
		case "velocity":
			b.Velocity, err = parseVec(value)
		default:
			return nil, fmt.Errorf("%q: %w", key, ErrUnknownKey)
		}
		if err != nil {
			return nil, err
		}
	}

	return b, nil
}

func parseFloat(key, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s=%q: %w", key, value, ErrBadValue)
	}
	return f, nil
}

func parseVec(value string) (vec.Vec3, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return vec.Vec3{}, fmt.Errorf("%q: %w", value, ErrVectorArity)
	}
	var out [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return vec.Vec3{}, fmt.Errorf("component %q: %w", p, ErrBadValue)
		}
		out[i] = f
	}
	return vec.New(out[0], out[1], out[2]), nil
}
