package system

import "errors"

// Parse failures are fatal; the simulation never starts on malformed input.
var (
	// ErrUnknownKind indicates a line that does not start with a valid
	// body-type token.
	ErrUnknownKind = errors.New("system: line must start with STAR, GIANT, or TERRESTRIAL")

	// ErrUnknownKey indicates an unrecognized key=value token.
	ErrUnknownKey = errors.New("system: unknown key")

	// ErrVectorArity indicates a position or velocity without exactly three
	// comma-separated components.
	ErrVectorArity = errors.New("system: vector must have three comma-separated components")

	// ErrBadValue indicates a token whose value failed to parse.
	ErrBadValue = errors.New("system: invalid value")

	// ErrMultiStar indicates more than one STAR line in a file.
	ErrMultiStar = errors.New("system: multi-star systems are not allowed")

	// ErrNoStar indicates a file with no STAR line.
	ErrNoStar = errors.New("system: system must contain a star")

	// ErrTrojanCount indicates a trojan=True count other than two.
	ErrTrojanCount = errors.New("system: system must have a single Trojan pair")
)
