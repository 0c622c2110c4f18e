package prune

import "errors"

var (
	// ErrInvalidPattern is returned when an exception or include glob cannot be compiled
	ErrInvalidPattern = errors.New("invalid glob pattern")

	// ErrInvalidConfig is returned when the options are invalid
	ErrInvalidConfig = errors.New("invalid configuration")
)
