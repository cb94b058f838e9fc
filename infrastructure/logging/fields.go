package logging

import (
	"strconv"
	"time"

	"github.com/felixgeelhaar/bolt/v3"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// Common field constructors for planning and execution logging.

// PlanID adds a plan ID field.
func PlanID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("plan_id", id)
	}
}

// ExecutionID adds an execution ID field.
func ExecutionID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("execution_id", id)
	}
}

// Goal adds a goal field.
func Goal(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("goal", name)
	}
}

// Priority adds a goal priority field.
func Priority(p int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("priority", p)
	}
}

// Action adds an action name field.
func Action(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("action", name)
	}
}

// Step adds a one-based plan step field.
func Step(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("step", n)
	}
}

// Cost adds a plan or action cost field, formatted with three decimals.
func Cost(c float64) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("cost", strconv.FormatFloat(c, 'f', 3, 64))
	}
}

// Steps adds a plan length field.
func Steps(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("steps", n)
	}
}

// Actions adds an available action count field.
func Actions(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("actions", n)
	}
}

// Expanded adds the number of expanded search states.
func Expanded(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("expanded", n)
	}
}

// Generated adds the number of generated search states.
func Generated(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("generated", n)
	}
}

// Phase adds an execution phase field.
func Phase(phase string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("phase", phase)
	}
}

// StateField adds a rendered world state field.
func StateField(key string, state interface{ String() string }) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, state.String())
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

// DurationNs adds a duration field in nanoseconds.
func DurationNs(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ns", d.Nanoseconds())
	}
}

// Cached adds a cached field.
func Cached(cached bool) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Bool("cached", cached)
	}
}

// Attempt adds a retry attempt field.
func Attempt(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("attempt", n)
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}

// Reason adds a reason field.
func Reason(reason string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("reason", reason)
	}
}

// Component adds a component field for categorization.
func Component(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("component", name)
	}
}

// Operation adds an operation field.
func Operation(op string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("operation", op)
	}
}

// Str adds a string field with custom key.
func Str(key, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, value)
	}
}
