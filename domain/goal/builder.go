package goal

import (
	"fmt"

	"github.com/felixgeelhaar/goap-go/domain/world"
)

// Builder provides a fluent API for constructing goals.
type Builder struct {
	goal Goal
	err  error
}

// NewBuilder creates a new goal builder with the given name.
func NewBuilder(name string) *Builder {
	return &Builder{goal: New(name, nil, 0)}
}

// Requires adds a requirement. The value is converted with world.From.
func (b *Builder) Requires(name string, value any) *Builder {
	if b.err != nil {
		return b
	}
	v, err := world.From(value)
	if err != nil {
		b.err = fmt.Errorf("goal %q requires %q: %w", b.goal.Name, name, err)
		return b
	}
	b.goal.Desired[name] = v
	return b
}

// Priority sets the goal priority.
func (b *Builder) Priority(priority int) *Builder {
	if b.err != nil {
		return b
	}
	b.goal.Priority = priority
	return b
}

// Build validates and returns the goal.
func (b *Builder) Build() (Goal, error) {
	if b.err != nil {
		return Goal{}, b.err
	}
	if err := b.goal.Validate(); err != nil {
		return Goal{}, err
	}
	return b.goal.WithPriority(b.goal.Priority), nil
}

// MustBuild returns the goal or panics on error.
func (b *Builder) MustBuild() Goal {
	g, err := b.Build()
	if err != nil {
		panic(err)
	}
	return g
}
