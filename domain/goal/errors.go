package goal

import "errors"

// Domain errors for goals.
var (
	// ErrEmptyName indicates a goal was created with an empty name.
	ErrEmptyName = errors.New("goal name cannot be empty")

	// ErrInvalidRequirement indicates a requirement holds an invalid variable.
	ErrInvalidRequirement = errors.New("invalid goal requirement")
)
