// Package config loads settings for the completion clients and the graph
// store. A yaml file is optional; every field can be supplied or overridden
// through environment variables, and the result is validated once at
// process start.
package config

import (
	"fmt"
	"os"
	"strconv"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"

	"graphmem/llm"
)

const (
	// DefaultCompatibilityMaxTokens is the max-token default for the
	// OpenAI-compatibility endpoint profile.
	DefaultCompatibilityMaxTokens = 8192
	// DefaultCompatibilityTemperature is the temperature default for the
	// OpenAI-compatibility endpoint profile.
	DefaultCompatibilityTemperature = 0.5
)

// LLMProfile holds the settings for one completion endpoint.
type LLMProfile struct {
	APIKey      string  `yaml:"api_key,omitempty"`
	BaseURL     string  `yaml:"base_url,omitempty"`
	Model       string  `yaml:"model,omitempty"`
	Temperature float32 `yaml:"temperature,omitempty"`
	MaxTokens   int     `yaml:"max_tokens,omitempty"`
	MaxRetries  int     `yaml:"max_retries,omitempty"`
}

// Neo4jConfig holds the graph database connection settings.
type Neo4jConfig struct {
	URI      string `yaml:"uri,omitempty"`
	User     string `yaml:"user,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// Settings is the full configuration surface. The primary profile and the
// compatibility profile are configured independently; they never share
// defaults or retry bounds.
type Settings struct {
	LLM           LLMProfile  `yaml:"llm,omitempty"`
	Compatibility LLMProfile  `yaml:"compatibility,omitempty"`
	Neo4j         Neo4jConfig `yaml:"neo4j,omitempty"`
}

// Defaults returns the settings baseline before file and environment
// values are applied.
func Defaults() *Settings {
	return &Settings{
		Compatibility: LLMProfile{
			MaxTokens:   DefaultCompatibilityMaxTokens,
			Temperature: DefaultCompatibilityTemperature,
		},
	}
}

// Load reads settings from the optional yaml file at path, fills gaps from
// the defaults, then applies environment overrides. An empty path skips
// the file entirely.
func Load(path string) (*Settings, error) {
	s := Defaults()

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // user-specified config path is intentional
		switch {
		case err != nil && !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		case err == nil:
			var fileConfig Settings
			if err := yaml.Unmarshal(data, &fileConfig); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
			// File values take precedence over defaults.
			if err := mergo.Merge(s, fileConfig, mergo.WithOverride); err != nil {
				return nil, fmt.Errorf("failed to merge config file: %w", err)
			}
		}
	}

	if err := s.applyEnv(); err != nil {
		return nil, err
	}
	return s, nil
}

// applyEnv overrides settings from environment variables. Environment
// always wins over file values; a malformed value is a startup error, not
// a silent fallback.
func (s *Settings) applyEnv() error {
	setString(&s.LLM.APIKey, "OPENAI_API_KEY")
	setString(&s.LLM.BaseURL, "OPENAI_BASE_URL")
	setString(&s.LLM.Model, "MODEL_NAME")
	if err := setFloat(&s.LLM.Temperature, "TEMPERATURE"); err != nil {
		return err
	}
	if err := setInt(&s.LLM.MaxTokens, "MAX_TOKENS"); err != nil {
		return err
	}

	setString(&s.Compatibility.APIKey, "OPENAI_COMPATIBILITY_API_KEY")
	setString(&s.Compatibility.BaseURL, "OPENAI_COMPATIBILITY_BASE_URL")
	setString(&s.Compatibility.Model, "OPENAI_COMPATIBILITY_MODEL_NAME")
	if err := setFloat(&s.Compatibility.Temperature, "OPENAI_COMPATIBILITY_TEMPERATURE"); err != nil {
		return err
	}
	if err := setInt(&s.Compatibility.MaxTokens, "OPENAI_COMPATIBILITY_MAX_TOKENS"); err != nil {
		return err
	}

	setString(&s.Neo4j.URI, "NEO4J_URI")
	setString(&s.Neo4j.User, "NEO4J_USER")
	setString(&s.Neo4j.Password, "NEO4J_PASSWORD")
	return nil
}

// Validate checks the settings required at process start.
func (s *Settings) Validate() error {
	if s.LLM.APIKey == "" {
		return fmt.Errorf("llm api key is required (OPENAI_API_KEY)")
	}
	if s.Compatibility.APIKey == "" {
		return fmt.Errorf("compatibility api key is required (OPENAI_COMPATIBILITY_API_KEY)")
	}
	if s.Neo4j.URI == "" {
		return fmt.Errorf("neo4j uri is required (NEO4J_URI)")
	}
	if s.Neo4j.User == "" || s.Neo4j.Password == "" {
		return fmt.Errorf("neo4j credentials are required (NEO4J_USER, NEO4J_PASSWORD)")
	}
	return nil
}

// PrimaryLLM returns the llm client config for the primary endpoint.
func (s *Settings) PrimaryLLM() llm.Config {
	return s.LLM.clientConfig()
}

// CompatibilityLLM returns the llm client config for the
// OpenAI-compatibility endpoint.
func (s *Settings) CompatibilityLLM() llm.Config {
	return s.Compatibility.clientConfig()
}

func (p LLMProfile) clientConfig() llm.Config {
	return llm.Config{
		APIKey:      p.APIKey,
		BaseURL:     p.BaseURL,
		Model:       p.Model,
		Temperature: p.Temperature,
		MaxTokens:   p.MaxTokens,
		MaxRetries:  p.MaxRetries,
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid integer in %s: %q", key, v)
	}
	*dst = n
	return nil
}

func setFloat(dst *float32, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return fmt.Errorf("invalid number in %s: %q", key, v)
	}
	*dst = float32(f)
	return nil
}
