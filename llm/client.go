package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// manualDecodeMarker identifies model families without native structured
// output. Their completions are decoded out of raw text on a best-effort
// basis instead of being passed through.
const manualDecodeMarker = "deepseek"

// Client invokes a completion endpoint and recovers from application-level
// failures by appending corrective feedback to the conversation and
// retrying up to a fixed bound. Each call owns its own conversation copy
// and retry counter, so a single Client is safe for concurrent use as long
// as its transport is.
type Client struct {
	cfg       Config
	transport Completer
	log       zerolog.Logger
}

// NewClient creates a Client around the given transport.
func NewClient(cfg Config, transport Completer, log zerolog.Logger) (*Client, error) {
	if transport == nil {
		return nil, fmt.Errorf("transport is required")
	}
	cfg = cfg.withDefaults()
	return &Client{
		cfg:       cfg,
		transport: transport,
		log:       log.With().Str("component", "llm").Str("model", cfg.Model).Logger(),
	}, nil
}

// GenerateResponse submits the conversation and returns a normalized
// envelope. Rate-limit, refusal and transport failures propagate on first
// occurrence; any other failure is retried with a corrective user message
// appended to the conversation, up to MaxRetries extra attempts. After
// exhausting the bound the last application error is surfaced unchanged.
func (c *Client) GenerateResponse(ctx context.Context, conversation []Message, schema *ResponseSchema) (*Envelope, error) {
	convo := c.prepare(conversation)

	retryCount := 0
	var lastErr error

	for retryCount <= c.cfg.MaxRetries {
		completion, err := c.attempt(ctx, convo, schema)
		if err == nil {
			return c.normalize(completion, schema), nil
		}

		switch Classify(err) {
		case ClassRateLimit, ClassRefusal:
			// Never retried at this layer.
			return nil, err
		case ClassTransport:
			// The transport already exhausted its own retries before this
			// error surfaced; looping here would silently multiply them.
			return nil, err
		}

		lastErr = err
		if retryCount >= c.cfg.MaxRetries {
			c.log.Error().Err(err).Int("max_retries", c.cfg.MaxRetries).Msg("max retries exceeded")
			return nil, err
		}

		retryCount++
		convo = append(convo, correctiveMessage(err))
		c.log.Warn().Err(err).
			Int("attempt", retryCount).
			Int("max_retries", c.cfg.MaxRetries).
			Msg("retrying after application error")
	}

	// Unreachable: the loop always returns. Kept as a guard so a future
	// edit to the loop cannot silently return a nil envelope.
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, NewApplicationError("max retries exceeded with no recorded error", nil)
}

// attempt builds the outbound request and performs one transport call.
func (c *Client) attempt(ctx context.Context, convo []Message, schema *ResponseSchema) (*Completion, error) {
	return c.transport.Complete(ctx, c.buildRequest(convo, schema))
}

// prepare produces cleaned copies of the caller's messages. The caller's
// slice is never mutated; retries append to the copy only.
func (c *Client) prepare(conversation []Message) []Message {
	convo := make([]Message, 0, len(conversation))
	for _, m := range conversation {
		convo = append(convo, Message{Role: m.Role, Content: CleanText(m.Content)})
	}
	return convo
}

// buildRequest filters the conversation down to the roles the endpoint
// accepts and combines it with the client's model settings. Messages with
// other roles are dropped silently; only a debug line records the count.
func (c *Client) buildRequest(convo []Message, schema *ResponseSchema) *Request {
	kept := lo.Filter(convo, func(m Message, _ int) bool {
		return m.Role == RoleUser || m.Role == RoleSystem
	})
	if dropped := len(convo) - len(kept); dropped > 0 {
		c.log.Debug().Int("count", dropped).Msg("dropped messages with unsupported roles")
	}

	return &Request{
		Model:       c.cfg.Model,
		Messages:    kept,
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
		Schema:      schema,
	}
}

// normalize shapes a raw completion into the caller-facing envelope.
//
// Manual-decode models with a requested schema get their completion text
// parsed as JSON; on success the parsed mapping is returned, otherwise the
// raw text is wrapped under a "content" key. Everything else passes the
// full completion record through untouched.
func (c *Client) normalize(completion *Completion, schema *ResponseSchema) *Envelope {
	if schema != nil && isManualDecodeModel(c.cfg.Model) {
		var fields map[string]any
		if err := json.Unmarshal([]byte(completion.Content), &fields); err == nil {
			return &Envelope{Structured: fields}
		}
		c.log.Debug().Msg("completion is not valid JSON, wrapping raw text")
		return &Envelope{Structured: map[string]any{"content": completion.Content}}
	}
	return &Envelope{Message: completion}
}

// isManualDecodeModel reports whether the model belongs to a family whose
// structured output must be decoded manually.
func isManualDecodeModel(model string) bool {
	return strings.Contains(strings.ToLower(model), manualDecodeMarker)
}

// correctiveMessage synthesizes the user-role feedback appended to the
// conversation before an application-level retry.
func correctiveMessage(err error) Message {
	content := fmt.Sprintf(
		"The previous response attempt was invalid. Error type: %s. Error details: %s. "+
			"Please try again with a valid response, ensuring the output matches the expected format and constraints.",
		Classify(err), err.Error(),
	)
	return Message{Role: RoleUser, Content: content}
}
