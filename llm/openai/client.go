// Package openai implements the llm.Completer transport on top of an
// OpenAI-compatible chat completion endpoint.
//
// Transport-level retries (timeouts, connection failures, server errors)
// live here, behind an exponential backoff. By the time a transport-class
// error escapes Complete, those retries are exhausted; the llm.Client above
// must not loop on them again.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"

	"graphmem/llm"
)

const (
	// transportMaxRetries bounds the low-level retry loop for transient
	// network and server failures.
	transportMaxRetries = 3
	// initialBackoffInterval is the starting delay for transport retries.
	initialBackoffInterval = 500 * time.Millisecond
	// maxBackoffInterval caps the delay between transport retries.
	maxBackoffInterval = 10 * time.Second
)

// chatAPI is the slice of the go-openai client the transport uses.
// *openai.Client satisfies it; tests substitute a fake.
type chatAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

var _ chatAPI = (*openai.Client)(nil)

// Transport implements llm.Completer for OpenAI-compatible endpoints.
// It is safe for concurrent use; the underlying client carries no
// per-request state.
type Transport struct {
	api chatAPI
	log zerolog.Logger

	// policy builds the backoff schedule for one Complete call. Tests
	// substitute a zero-delay schedule.
	policy func() backoff.BackOff
}

// NewTransport creates a Transport for the given endpoint. If baseURL is
// empty the official OpenAI endpoint is used.
func NewTransport(apiKey, baseURL string, log zerolog.Logger) (*Transport, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key is required")
	}

	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &Transport{
		api:    openai.NewClientWithConfig(config),
		log:    log.With().Str("component", "openai_transport").Logger(),
		policy: defaultPolicy,
	}, nil
}

// Complete implements llm.Completer. Timeout, connection and server
// failures are retried with exponential backoff before surfacing as a
// single transport-class error; all other failures surface immediately.
func (t *Transport) Complete(ctx context.Context, req *llm.Request) (*llm.Completion, error) {
	if req == nil {
		return nil, llm.NewApplicationError("request is required", nil)
	}

	chatReq := toChatRequest(req)

	var resp openai.ChatCompletionResponse
	operation := func() error {
		r, err := t.api.CreateChatCompletion(ctx, chatReq)
		if err != nil {
			converted := convertError(err)
			if llm.IsTransport(converted) {
				t.log.Warn().Err(converted).Msg("transient transport failure, backing off")
				return converted
			}
			return backoff.Permanent(converted)
		}
		resp = r
		return nil
	}

	policy := t.policy
	if policy == nil {
		policy = defaultPolicy
	}
	if err := backoff.Retry(operation, backoff.WithContext(policy(), ctx)); err != nil {
		// Cancellation during a backoff wait surfaces as a raw context
		// error; tag it so classification upstream stays total.
		var llmErr *llm.Error
		if !errors.As(err, &llmErr) {
			err = convertError(err)
		}
		return nil, err
	}

	return fromChatResponse(resp)
}

func defaultPolicy() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initialBackoffInterval
	b.MaxInterval = maxBackoffInterval
	return backoff.WithMaxRetries(b, transportMaxRetries)
}

// convertError maps provider and network failures to the llm error
// taxonomy. It is pure over the error value.
func convertError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return classifyStatus(apiErr.HTTPStatusCode, apiErr.Message, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return classifyStatus(reqErr.HTTPStatusCode, reqErr.Error(), err)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return llm.NewTransportError("request timed out", 0, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return llm.NewTransportError("connection failure", 0, err)
	}

	return llm.NewApplicationError("completion request failed", err)
}

func classifyStatus(status int, message string, err error) error {
	switch status {
	case http.StatusTooManyRequests:
		return llm.NewRateLimitError(fmt.Sprintf("rate limit: %s", message), status, err)
	case http.StatusRequestTimeout,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return llm.NewTransportError(fmt.Sprintf("server error: %s", message), status, err)
	default:
		// 400s and anything unrecognized are application-level: the
		// request or response content was bad, not the connection.
		return &llm.Error{
			Class:       llm.ClassApplication,
			Message:     fmt.Sprintf("invalid request: %s", message),
			StatusCode:  status,
			ProviderErr: err,
		}
	}
}

// fromChatResponse converts the provider response into the neutral
// completion record, surfacing refusals as their own error class.
func fromChatResponse(resp openai.ChatCompletionResponse) (*llm.Completion, error) {
	if len(resp.Choices) == 0 {
		return nil, llm.NewApplicationError("no choices in response", nil)
	}

	choice := resp.Choices[0]
	if choice.Message.Refusal != "" {
		return nil, llm.NewRefusalError(choice.Message.Refusal, nil)
	}

	role := llm.MessageRole(choice.Message.Role)
	if role == "" {
		role = llm.RoleAssistant
	}

	return &llm.Completion{
		Role:         role,
		Content:      choice.Message.Content,
		Model:        resp.Model,
		FinishReason: string(choice.FinishReason),
	}, nil
}
