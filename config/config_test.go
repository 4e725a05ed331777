package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "sk-primary")
	t.Setenv("OPENAI_COMPATIBILITY_API_KEY", "sk-compat")
	t.Setenv("NEO4J_URI", "bolt://localhost:7687")
	t.Setenv("NEO4J_USER", "neo4j")
	t.Setenv("NEO4J_PASSWORD", "secret")
}

func TestLoadFromEnvironment(t *testing.T) {
	validEnv(t)
	t.Setenv("MODEL_NAME", "deepseek-chat")
	t.Setenv("OPENAI_COMPATIBILITY_MODEL_NAME", "qwen-plus")

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if s.LLM.APIKey != "sk-primary" {
		t.Errorf("Expected primary api key from env, got %q", s.LLM.APIKey)
	}
	if s.LLM.Model != "deepseek-chat" {
		t.Errorf("Expected model from env, got %q", s.LLM.Model)
	}
	if s.Compatibility.Model != "qwen-plus" {
		t.Errorf("Expected compatibility model from env, got %q", s.Compatibility.Model)
	}
}

func TestCompatibilityDefaults(t *testing.T) {
	validEnv(t)

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Compatibility.MaxTokens != DefaultCompatibilityMaxTokens {
		t.Errorf("Expected compatibility max tokens %d, got %d", DefaultCompatibilityMaxTokens, s.Compatibility.MaxTokens)
	}
	if s.Compatibility.Temperature != DefaultCompatibilityTemperature {
		t.Errorf("Expected compatibility temperature %v, got %v", DefaultCompatibilityTemperature, s.Compatibility.Temperature)
	}
	// Defaults for one profile never leak into the other.
	if s.LLM.MaxTokens != 0 || s.LLM.Temperature != 0 {
		t.Errorf("Primary profile picked up compatibility defaults: %+v", s.LLM)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	validEnv(t)
	t.Setenv("OPENAI_COMPATIBILITY_MAX_TOKENS", "4096")
	t.Setenv("OPENAI_COMPATIBILITY_TEMPERATURE", "0.9")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("llm:\n  model: file-model\ncompatibility:\n  max_tokens: 1024\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.LLM.Model != "file-model" {
		t.Errorf("Expected model from file, got %q", s.LLM.Model)
	}
	if s.Compatibility.MaxTokens != 4096 {
		t.Errorf("Expected env to override file max tokens, got %d", s.Compatibility.MaxTokens)
	}
	if s.Compatibility.Temperature != 0.9 {
		t.Errorf("Expected env to override temperature, got %v", s.Compatibility.Temperature)
	}
}

func TestLoadMissingFileFallsBack(t *testing.T) {
	validEnv(t)

	s, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load with missing file: %v", err)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadRejectsMalformedEnv(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"comma decimal temperature", "TEMPERATURE", "0,5"},
		{"non-numeric max tokens", "MAX_TOKENS", "lots"},
		{"malformed compatibility temperature", "OPENAI_COMPATIBILITY_TEMPERATURE", "warm"},
		{"malformed compatibility max tokens", "OPENAI_COMPATIBILITY_MAX_TOKENS", "8k"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			validEnv(t)
			t.Setenv(tc.key, tc.value)

			if _, err := Load(""); err == nil {
				t.Errorf("Expected Load to reject %s=%q", tc.key, tc.value)
			}
		})
	}
}

func TestValidateMissingKeys(t *testing.T) {
	cases := []struct {
		name  string
		unset string
	}{
		{"missing primary key", "OPENAI_API_KEY"},
		{"missing compatibility key", "OPENAI_COMPATIBILITY_API_KEY"},
		{"missing neo4j uri", "NEO4J_URI"},
		{"missing neo4j password", "NEO4J_PASSWORD"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			validEnv(t)
			t.Setenv(tc.unset, "")

			s, err := Load("")
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if err := s.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestProfileConversion(t *testing.T) {
	validEnv(t)
	t.Setenv("OPENAI_COMPATIBILITY_BASE_URL", "https://compat.example.com/v1")

	s, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	compat := s.CompatibilityLLM()
	if compat.APIKey != "sk-compat" {
		t.Errorf("Expected compatibility api key, got %q", compat.APIKey)
	}
	if compat.BaseURL != "https://compat.example.com/v1" {
		t.Errorf("Expected compatibility base url, got %q", compat.BaseURL)
	}
	if compat.MaxTokens != DefaultCompatibilityMaxTokens {
		t.Errorf("Expected default max tokens, got %d", compat.MaxTokens)
	}

	primary := s.PrimaryLLM()
	if primary.APIKey != "sk-primary" {
		t.Errorf("Expected primary api key, got %q", primary.APIKey)
	}
}
