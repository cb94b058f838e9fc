package world

import (
	"errors"
	"fmt"
)

// Domain errors for world state operations.
var (
	// ErrTypeMismatch indicates two variables of different kinds were compared.
	ErrTypeMismatch = errors.New("state variable type mismatch")

	// ErrUnsupportedValue indicates a Go value cannot be converted to a Variable.
	ErrUnsupportedValue = errors.New("unsupported state value")
)

// MismatchError describes a comparison between variables of different kinds.
type MismatchError struct {
	// Name is the variable name, when known.
	Name string
	// Have is the kind held by the compared state.
	Have Kind
	// Want is the kind of the reference value.
	Want Kind
}

// Error implements the error interface.
func (e *MismatchError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s: have %s, want %s", ErrTypeMismatch, e.Have, e.Want)
	}
	return fmt.Sprintf("%s: %q has %s, want %s", ErrTypeMismatch, e.Name, e.Have, e.Want)
}

// Unwrap returns ErrTypeMismatch.
func (e *MismatchError) Unwrap() error {
	return ErrTypeMismatch
}
