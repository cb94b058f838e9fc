package action

import (
	"fmt"

	"github.com/felixgeelhaar/goap-go/domain/world"
)

// DefaultCost is the cost of an action built without an explicit cost.
const DefaultCost = 1.0

// Builder provides a fluent API for constructing actions.
type Builder struct {
	action Action
	err    error
}

// NewBuilder creates a new action builder with the given name.
func NewBuilder(name string) *Builder {
	return &Builder{action: New(name, DefaultCost, nil, nil)}
}

// Cost sets the action cost.
func (b *Builder) Cost(cost float64) *Builder {
	if b.err != nil {
		return b
	}
	b.action.Cost = cost
	return b
}

// Requires adds a precondition. The value is converted with world.From.
func (b *Builder) Requires(name string, value any) *Builder {
	if b.err != nil {
		return b
	}
	v, err := world.From(value)
	if err != nil {
		b.err = fmt.Errorf("action %q requires %q: %w", b.action.Name, name, err)
		return b
	}
	b.action.Preconditions[name] = v
	return b
}

// Sets adds an effect assigning value. The value is converted with world.From.
func (b *Builder) Sets(name string, value any) *Builder {
	if b.err != nil {
		return b
	}
	v, err := world.From(value)
	if err != nil {
		b.err = fmt.Errorf("action %q sets %q: %w", b.action.Name, name, err)
		return b
	}
	b.action.Effects[name] = world.Set(v)
	return b
}

// Adds adds an effect incrementing an integer or scaled decimal.
func (b *Builder) Adds(name string, delta int64) *Builder {
	if b.err != nil {
		return b
	}
	b.action.Effects[name] = world.Add(delta)
	return b
}

// Subtracts adds an effect decrementing an integer or scaled decimal.
func (b *Builder) Subtracts(name string, delta int64) *Builder {
	if b.err != nil {
		return b
	}
	b.action.Effects[name] = world.Subtract(delta)
	return b
}

// AddsFloat adds an effect incrementing a decimal.
func (b *Builder) AddsFloat(name string, delta float64) *Builder {
	if b.err != nil {
		return b
	}
	b.action.Effects[name] = world.AddFloat(delta)
	return b
}

// SubtractsFloat adds an effect decrementing a decimal.
func (b *Builder) SubtractsFloat(name string, delta float64) *Builder {
	if b.err != nil {
		return b
	}
	b.action.Effects[name] = world.SubtractFloat(delta)
	return b
}

// Build validates and returns the action.
func (b *Builder) Build() (Action, error) {
	if b.err != nil {
		return Action{}, b.err
	}
	if err := b.action.Validate(); err != nil {
		return Action{}, err
	}
	return New(b.action.Name, b.action.Cost, b.action.Preconditions.Clone(), cloneEffects(b.action.Effects)), nil
}

// MustBuild returns the action or panics on error.
func (b *Builder) MustBuild() Action {
	a, err := b.Build()
	if err != nil {
		panic(err)
	}
	return a
}

func cloneEffects(e world.Effects) world.Effects {
	out := make(world.Effects, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
