package config

import (
	"github.com/rs/zerolog"

	"graphmem/llm"
	llmopenai "graphmem/llm/openai"
)

// NewPrimaryClient creates a completion client for the primary endpoint.
func NewPrimaryClient(s *Settings, log zerolog.Logger) (*llm.Client, error) {
	return newClient(s.PrimaryLLM(), log)
}

// NewCompatibilityClient creates a completion client for the independently
// configured OpenAI-compatibility endpoint.
func NewCompatibilityClient(s *Settings, log zerolog.Logger) (*llm.Client, error) {
	return newClient(s.CompatibilityLLM(), log)
}

func newClient(cfg llm.Config, log zerolog.Logger) (*llm.Client, error) {
	transport, err := llmopenai.NewTransport(cfg.APIKey, cfg.BaseURL, log)
	if err != nil {
		return nil, err
	}
	return llm.NewClient(cfg, transport, log)
}
