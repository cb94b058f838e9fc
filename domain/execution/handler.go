package execution

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/world"
)

// Handler performs one action and returns the world observed afterwards.
// Handlers must not modify the state they are given.
type Handler interface {
	Execute(ctx context.Context, a action.Action, state world.State) (world.State, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, a action.Action, state world.State) (world.State, error)

// Execute calls f.
func (f HandlerFunc) Execute(ctx context.Context, a action.Action, state world.State) (world.State, error) {
	return f(ctx, a, state)
}

// Simulate applies the action's declared effects.
var Simulate HandlerFunc = func(ctx context.Context, a action.Action, state world.State) (world.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return a.ApplyEffect(state), nil
}

// Router dispatches actions to handlers by name.
type Router struct {
	handlers map[string]Handler
	fallback Handler
}

// NewRouter creates a router. A nil fallback makes unknown actions fail
// with ErrNoHandler.
func NewRouter(fallback Handler) *Router {
	return &Router{
		handlers: make(map[string]Handler),
		fallback: fallback,
	}
}

// Handle registers h for the named action.
func (r *Router) Handle(name string, h Handler) *Router {
	r.handlers[name] = h
	return r
}

// Execute dispatches to the handler registered for a.Name.
func (r *Router) Execute(ctx context.Context, a action.Action, state world.State) (world.State, error) {
	if h, ok := r.handlers[a.Name]; ok {
		return h.Execute(ctx, a, state)
	}
	if r.fallback != nil {
		return r.fallback.Execute(ctx, a, state)
	}
	return nil, fmt.Errorf("%w: %s", ErrNoHandler, a.Name)
}

var _ Handler = (*Router)(nil)
