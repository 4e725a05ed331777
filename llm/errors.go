package llm

import "errors"

// ErrorClass represents the category of a completion failure. The class
// decides the retry fate: rate_limit and refusal propagate immediately,
// transport failures were already retried by the transport itself, and
// only application failures are retried here.
type ErrorClass string

const (
	ClassRateLimit   ErrorClass = "rate_limit"
	ClassRefusal     ErrorClass = "refusal"
	ClassTransport   ErrorClass = "transport"
	ClassApplication ErrorClass = "application"
)

// Error represents a provider-neutral completion error.
type Error struct {
	Class       ErrorClass
	Message     string
	StatusCode  int
	ProviderErr error // Original provider-specific error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.ProviderErr != nil {
		return e.Message + ": " + e.ProviderErr.Error()
	}
	return e.Message
}

// Unwrap returns the underlying provider error.
func (e *Error) Unwrap() error {
	return e.ProviderErr
}

// Classify maps any failure to its error class. It is total and pure:
// tagged errors yield their class, everything else is application-level.
// The classification never depends on how many attempts preceded it.
func Classify(err error) ErrorClass {
	if err == nil {
		return ""
	}
	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr.Class
	}
	return ClassApplication
}

// IsRateLimit checks if an error is a rate limit error.
func IsRateLimit(err error) bool {
	return Classify(err) == ClassRateLimit
}

// IsRefusal checks if an error is a model refusal.
func IsRefusal(err error) bool {
	return Classify(err) == ClassRefusal
}

// IsTransport checks if an error is a transport-level failure (timeout,
// connection failure, internal server error).
func IsTransport(err error) bool {
	return Classify(err) == ClassTransport
}

// NewRateLimitError creates a new rate limit error.
func NewRateLimitError(message string, statusCode int, providerErr error) *Error {
	return &Error{
		Class:       ClassRateLimit,
		Message:     message,
		StatusCode:  statusCode,
		ProviderErr: providerErr,
	}
}

// NewRefusalError creates a new refusal error.
func NewRefusalError(message string, providerErr error) *Error {
	return &Error{
		Class:       ClassRefusal,
		Message:     message,
		ProviderErr: providerErr,
	}
}

// NewTransportError creates a new transport-level error.
func NewTransportError(message string, statusCode int, providerErr error) *Error {
	return &Error{
		Class:       ClassTransport,
		Message:     message,
		StatusCode:  statusCode,
		ProviderErr: providerErr,
	}
}

// NewApplicationError creates a new application-level error.
func NewApplicationError(message string, providerErr error) *Error {
	return &Error{
		Class:       ClassApplication,
		Message:     message,
		ProviderErr: providerErr,
	}
}
