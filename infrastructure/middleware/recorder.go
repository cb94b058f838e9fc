package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/felixgeelhaar/goap-go/domain/action"
	"github.com/felixgeelhaar/goap-go/domain/execution"
	"github.com/felixgeelhaar/goap-go/domain/world"
)

// Operation is one recorded handler call.
type Operation struct {
	Action    string    `json:"action"`
	Before    string    `json:"before"`
	After     string    `json:"after,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Recorder captures handler calls for later inspection.
type Recorder struct {
	operations []Operation
	mu         sync.RWMutex
}

// NewRecorder creates a new recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		operations: make([]Operation, 0),
	}
}

// Record adds an operation to the recorder.
func (r *Recorder) Record(op Operation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.operations = append(r.operations, op)
}

// Operations returns all recorded operations.
func (r *Recorder) Operations() []Operation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]Operation, len(r.operations))
	copy(result, r.operations)
	return result
}

// OperationsByAction returns operations for a specific action.
func (r *Recorder) OperationsByAction(name string) []Operation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []Operation
	for _, op := range r.operations {
		if op.Action == name {
			result = append(result, op)
		}
	}
	return result
}

// Count returns the number of recorded operations.
func (r *Recorder) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.operations)
}

// Clear removes all recorded operations.
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.operations = r.operations[:0]
}

// Recording returns middleware that records every call into rec.
func Recording(rec *Recorder) execution.Middleware {
	return func(next execution.Handler) execution.Handler {
		return execution.HandlerFunc(func(ctx context.Context, a action.Action, state world.State) (world.State, error) {
			op := Operation{
				Action:    a.Name,
				Before:    state.String(),
				Timestamp: time.Now(),
			}

			after, err := next.Execute(ctx, a, state)
			if err != nil {
				op.Error = err.Error()
			} else {
				op.After = after.String()
			}
			rec.Record(op)

			return after, err
		})
	}
}
