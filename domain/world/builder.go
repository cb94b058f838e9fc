package world

import (
	"errors"
	"fmt"
)

// Builder constructs a State fluently.
type Builder struct {
	state State
	errs  []error
}

// NewBuilder creates a state builder.
func NewBuilder() *Builder {
	return &Builder{state: NewState()}
}

// Bool sets a boolean variable.
func (b *Builder) Bool(name string, v bool) *Builder {
	b.state[name] = Bool(v)
	return b
}

// Int sets an integer variable.
func (b *Builder) Int(name string, v int64) *Builder {
	b.state[name] = Int(v)
	return b
}

// Decimal sets a decimal variable.
func (b *Builder) Decimal(name string, v float64) *Builder {
	b.state[name] = Decimal(v)
	return b
}

// Text sets a text variable.
func (b *Builder) Text(name string, v string) *Builder {
	b.state[name] = Text(v)
	return b
}

// Enum sets a text variable from an enumeration value.
func (b *Builder) Enum(name string, v fmt.Stringer) *Builder {
	b.state[name] = Enum(v)
	return b
}

// Value sets a variable converted with From. Conversion errors are
// reported by Build.
func (b *Builder) Value(name string, v any) *Builder {
	variable, err := From(v)
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("%s: %w", name, err))
		return b
	}
	b.state[name] = variable
	return b
}

// Build returns the state or the joined conversion errors.
func (b *Builder) Build() (State, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	return b.state.Clone(), nil
}

// MustBuild returns the state and panics on conversion errors.
func (b *Builder) MustBuild() State {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
