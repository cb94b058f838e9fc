package api

import (
	"github.com/felixgeelhaar/goap-go/domain/execution"
	inframw "github.com/felixgeelhaar/goap-go/infrastructure/middleware"
)

type (
	// Middleware wraps a Handler.
	Middleware = execution.Middleware

	// Recorder collects every handler call made through RecordingMiddleware.
	Recorder = inframw.Recorder

	// RecordedOperation is one handler call seen by a Recorder.
	RecordedOperation = inframw.Operation
)

// ChainMiddleware composes middleware; the first one is outermost.
func ChainMiddleware(middlewares ...Middleware) Middleware {
	return execution.Chain(middlewares...)
}

// LoggingMiddleware logs each action before and after it runs. With
// logStates the world before and after is included.
func LoggingMiddleware(logStates bool) Middleware {
	return inframw.Logging(inframw.LoggingConfig{LogStates: logStates})
}

func NewRecorder() *Recorder {
	return inframw.NewRecorder()
}

// RecordingMiddleware appends every call, including failed ones, to rec.
func RecordingMiddleware(rec *Recorder) Middleware {
	return inframw.Recording(rec)
}
