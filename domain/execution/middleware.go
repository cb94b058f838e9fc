package execution

// Middleware wraps a Handler with additional behavior. A middleware can act
// before or after the next handler, short-circuit it, or rewrite its result.
type Middleware func(next Handler) Handler

// Chain composes middleware so that Chain(A, B, C)(h) runs A -> B -> C -> h.
func Chain(middlewares ...Middleware) Middleware {
	return func(final Handler) Handler {
		handler := final
		for i := len(middlewares) - 1; i >= 0; i-- {
			handler = middlewares[i](handler)
		}
		return handler
	}
}

// Noop returns a middleware that passes through.
func Noop() Middleware {
	return func(next Handler) Handler {
		return next
	}
}
