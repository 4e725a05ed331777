package llm

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifyTaggedErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorClass
	}{
		{"rate limit", NewRateLimitError("quota exceeded", 429, nil), ClassRateLimit},
		{"refusal", NewRefusalError("declined", nil), ClassRefusal},
		{"transport", NewTransportError("timeout", 0, nil), ClassTransport},
		{"application", NewApplicationError("malformed", nil), ClassApplication},
	}
	for _, tc := range cases {
		if got := Classify(tc.err); got != tc.want {
			t.Errorf("%s: expected class %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestClassifyIsTotal(t *testing.T) {
	if got := Classify(errors.New("plain error")); got != ClassApplication {
		t.Errorf("Expected untagged errors to classify as application, got %v", got)
	}
	if got := Classify(nil); got != "" {
		t.Errorf("Expected empty class for nil error, got %v", got)
	}
}

func TestClassifyWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewRateLimitError("quota", 429, nil))
	if got := Classify(wrapped); got != ClassRateLimit {
		t.Errorf("Expected wrapped rate limit error to keep its class, got %v", got)
	}
}

func TestIsHelpers(t *testing.T) {
	if !IsRateLimit(NewRateLimitError("quota", 429, nil)) {
		t.Error("Expected IsRateLimit to return true for rate limit error")
	}
	if !IsRefusal(NewRefusalError("declined", nil)) {
		t.Error("Expected IsRefusal to return true for refusal error")
	}
	if !IsTransport(NewTransportError("timeout", 0, nil)) {
		t.Error("Expected IsTransport to return true for transport error")
	}
	appErr := NewApplicationError("malformed", nil)
	if IsRateLimit(appErr) || IsRefusal(appErr) || IsTransport(appErr) {
		t.Error("Expected application error to match no other class")
	}
}

func TestErrorUnwrap(t *testing.T) {
	originalErr := errors.New("original error")
	wrappedErr := NewApplicationError("wrapped", originalErr)
	if !errors.Is(wrappedErr, originalErr) {
		t.Error("Expected error to unwrap to original error")
	}
}

func TestErrorMessageIncludesProviderError(t *testing.T) {
	err := NewTransportError("connection failure", 0, errors.New("dial tcp: refused"))
	want := "connection failure: dial tcp: refused"
	if err.Error() != want {
		t.Errorf("Expected %q, got %q", want, err.Error())
	}

	bare := NewRefusalError("declined", nil)
	if bare.Error() != "declined" {
		t.Errorf("Expected %q, got %q", "declined", bare.Error())
	}
}
