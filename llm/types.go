package llm

// MessageRole represents the role of a message in a conversation.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleSystem    MessageRole = "system"
	RoleAssistant MessageRole = "assistant"
)

// Message represents a single message in a conversation. Messages are
// treated as immutable once submitted: the client works on cleaned copies
// and only ever appends to a conversation, never rewrites it.
type Message struct {
	Role    MessageRole
	Content string
}

// NewMessage creates a message with the given role and content.
func NewMessage(role MessageRole, content string) Message {
	return Message{Role: role, Content: content}
}

// DefaultModel is used when no model name is configured.
const DefaultModel = "deepseek"

// DefaultMaxRetries bounds how many corrective retries a client performs
// after application-level failures. Two retries means at most three
// transport invocations per call.
const DefaultMaxRetries = 2

// Config holds the per-client settings for a completion endpoint.
// MaxRetries is deliberately a config field rather than a package constant
// so independently configured clients cannot share a retry bound.
// A zero MaxRetries selects DefaultMaxRetries; a negative value disables
// corrective retries entirely (one attempt per call).
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	MaxRetries  int
}

// withDefaults returns a copy of the config with unset fields filled in.
func (c Config) withDefaults() Config {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	switch {
	case c.MaxRetries == 0:
		c.MaxRetries = DefaultMaxRetries
	case c.MaxRetries < 0:
		c.MaxRetries = 0
	}
	return c
}

// ResponseSchema describes the structured payload a caller wants extracted
// from the completion. Only its presence is load-bearing for normalization;
// the schema body is forwarded to providers that accept a JSON response
// format, and decoding stays best-effort either way.
type ResponseSchema struct {
	Name   string
	Schema map[string]any
}

// Request is the outbound shape handed to a Completer. Messages have
// already been sanitized and filtered to the roles the endpoint accepts.
type Request struct {
	Model       string
	Messages    []Message
	Temperature float32
	MaxTokens   int
	Schema      *ResponseSchema
}

// Completion is the full message record returned by a transport, including
// provider metadata.
type Completion struct {
	Role         MessageRole `json:"role"`
	Content      string      `json:"content"`
	Model        string      `json:"model,omitempty"`
	FinishReason string      `json:"finish_reason,omitempty"`
}

// Envelope is the normalized result of a generate call. Exactly one of the
// two fields is set: Structured when a manual-decode model produced a
// structured mapping, Message when the completion record passes through
// untouched.
type Envelope struct {
	Structured map[string]any
	Message    *Completion
}
