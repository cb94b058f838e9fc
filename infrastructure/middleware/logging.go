// Package middleware provides composable middleware for action handlers.
package middleware

import (
	"context"
	"time"

	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/execution"
	"github.com/felixgeelhaar/goap-go/domain/world"
	"github.com/felixgeelhaar/goap-go/infrastructure/logging"
)

// LoggingConfig configures the logging middleware.
type LoggingConfig struct {
	// LogStates logs the world before and after each action (may be large).
	LogStates bool
}

// Logging returns middleware that logs every handler call.
func Logging(cfg LoggingConfig) execution.Middleware {
	return func(next execution.Handler) execution.Handler {
		return execution.HandlerFunc(func(ctx context.Context, a action.Action, state world.State) (world.State, error) {
			start := time.Now()

			entry := logging.Debug().
				Add(logging.Action(a.Name)).
				Add(logging.Cost(a.Cost))
			if cfg.LogStates {
				entry = entry.Add(logging.StateField("before", state))
			}
			entry.Msg("executing action")

			after, err := next.Execute(ctx, a, state)
			duration := time.Since(start)

			if err != nil {
				logging.Error().
					Add(logging.Action(a.Name)).
					Add(logging.ErrorField(err)).
					Add(logging.Duration(duration)).
					Msg("action failed")
				return after, err
			}

			done := logging.Info().
				Add(logging.Action(a.Name)).
				Add(logging.Duration(duration))
			if cfg.LogStates {
				done = done.Add(logging.StateField("after", after))
			}
			done.Msg("action executed")

			return after, nil
		})
	}
}
