package models

import "errors"

// Sentinel errors shared across repositories and services.
var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidPolicy is returned when a detection policy fails range
	// validation. Fatal at load/update time, never surfaced per ping.
	ErrInvalidPolicy = errors.New("invalid detection policy")
)
