package action

import "errors"

// Domain errors for actions.
var (
	// ErrEmptyName indicates an action was created with an empty name.
	ErrEmptyName = errors.New("action name cannot be empty")

	// ErrInvalidCost indicates a negative or non-finite cost.
	ErrInvalidCost = errors.New("action cost must be finite and non-negative")

	// ErrInvalidVariable indicates a precondition or effect holds an invalid variable.
	ErrInvalidVariable = errors.New("invalid state variable")

	// ErrInvalidEffect indicates an effect with an unknown operation.
	ErrInvalidEffect = errors.New("invalid effect")
)
