// Package action defines the actions a planner chains together.
package action

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/felixgeelhaar/goap-go/domain/world"
)

// Action is an immutable transition between world states.
//
// An action can run in any state that satisfies its preconditions, and
// running it applies its effects. Cost is non-negative and additive along
// a plan.
type Action struct {
	Name          string
	Cost          float64
	Preconditions world.State
	Effects       world.Effects
}

// New creates an action. Nil preconditions and effects are replaced by empty
// values.
func New(name string, cost float64, preconditions world.State, effects world.Effects) Action {
	if preconditions == nil {
		preconditions = world.NewState()
	}
	if effects == nil {
		effects = world.Effects{}
	}
	return Action{
		Name:          name,
		Cost:          cost,
		Preconditions: preconditions,
		Effects:       effects,
	}
}

// CanExecute reports whether state satisfies the preconditions.
func (a Action) CanExecute(state world.State) bool {
	return state.Satisfies(a.Preconditions)
}

// ApplyEffect returns a copy of state with the effects applied. It does not
// check CanExecute.
func (a Action) ApplyEffect(state world.State) world.State {
	next := state.Clone()
	next.Apply(a.Effects)
	return next
}

// Validate checks that the action can take part in planning.
func (a Action) Validate() error {
	if a.Name == "" {
		return ErrEmptyName
	}
	if math.IsNaN(a.Cost) || math.IsInf(a.Cost, 0) || a.Cost < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidCost, a.Cost)
	}
	for name, v := range a.Preconditions {
		if !v.IsValid() {
			return fmt.Errorf("%w: precondition %q", ErrInvalidVariable, name)
		}
	}
	for name, eff := range a.Effects {
		switch eff.Op() {
		case world.OpSet:
			if !eff.Value().IsValid() {
				return fmt.Errorf("%w: effect %q", ErrInvalidVariable, name)
			}
		case world.OpAdd, world.OpSubtract:
		default:
			return fmt.Errorf("%w: effect %q", ErrInvalidEffect, name)
		}
	}
	return nil
}

// Fingerprint returns a canonical encoding of the full action definition.
func (a Action) Fingerprint() string {
	var b strings.Builder
	b.WriteString(strconv.Quote(a.Name))
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(a.Cost, 'g', -1, 64))
	b.WriteByte('|')
	b.WriteString(a.Preconditions.Key())
	b.WriteByte('|')
	b.WriteString(a.Effects.Key())
	return b.String()
}

// String renders the action with its preconditions and effects.
func (a Action) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (cost: %.1f)", a.Name, a.Cost)
	if len(a.Preconditions) > 0 {
		b.WriteString(" requires ")
		b.WriteString(a.Preconditions.String())
	}
	if len(a.Effects) > 0 {
		b.WriteString(" effects {")
		for i, name := range a.Effects.Names() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(name)
			b.WriteByte(' ')
			b.WriteString(a.Effects[name].String())
		}
		b.WriteByte('}')
	}
	return b.String()
}
