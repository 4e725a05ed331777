package llm

import "context"

// Completer is the transport boundary for a completion endpoint.
// Implementations own connection handling and low-level retries for
// timeouts, connection failures and server errors; by the time a
// transport-class error surfaces from Complete, those retries are already
// exhausted. Implementations must be safe for concurrent use.
type Completer interface {
	Complete(ctx context.Context, req *Request) (*Completion, error)
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, req *Request) (*Completion, error)

// Complete calls the wrapped function.
func (f CompleterFunc) Complete(ctx context.Context, req *Request) (*Completion, error) {
	return f(ctx, req)
}
