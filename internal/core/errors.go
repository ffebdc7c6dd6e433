// Package core defines sentinel errors.
package core

import "errors"

var (
	// Telemetry codec errors
	ErrUnknownLineRate = errors.New("intsim: unknown line rate")
	ErrShortBuffer     = errors.New("intsim: short buffer")

	// Configuration errors
	ErrConfigInvalid = errors.New("intsim: invalid configuration")
	ErrInvalidRate   = errors.New("intsim: invalid line rate string")

	// Simulation errors
	ErrEmptyPath     = errors.New("intsim: path has no nodes")
	ErrDuplicateLink = errors.New("intsim: link state already cached")
)
