package openai

import (
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"graphmem/llm"
)

func TestToChatRequest(t *testing.T) {
	req := &llm.Request{
		Model: "deepseek-chat",
		Messages: []llm.Message{
			llm.NewMessage(llm.RoleSystem, "rules"),
			llm.NewMessage(llm.RoleUser, "question"),
		},
		Temperature: 0.7,
		MaxTokens:   2048,
	}

	chatReq := toChatRequest(req)
	if chatReq.Model != "deepseek-chat" {
		t.Errorf("Expected model deepseek-chat, got %q", chatReq.Model)
	}
	if len(chatReq.Messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(chatReq.Messages))
	}
	if chatReq.Messages[0].Role != openai.ChatMessageRoleSystem {
		t.Errorf("Expected system role, got %q", chatReq.Messages[0].Role)
	}
	if chatReq.Messages[1].Role != openai.ChatMessageRoleUser {
		t.Errorf("Expected user role, got %q", chatReq.Messages[1].Role)
	}
	if chatReq.MaxTokens != 2048 {
		t.Errorf("Expected max tokens 2048, got %d", chatReq.MaxTokens)
	}
	if chatReq.Temperature != 0.7 {
		t.Errorf("Expected temperature 0.7, got %v", chatReq.Temperature)
	}
	if chatReq.ResponseFormat != nil {
		t.Error("Expected no response format without a schema")
	}
}

func TestToChatRequestWithSchema(t *testing.T) {
	req := &llm.Request{
		Model:    "gpt-4o",
		Messages: []llm.Message{llm.NewMessage(llm.RoleUser, "extract")},
		Schema:   &llm.ResponseSchema{Name: "entities"},
	}

	chatReq := toChatRequest(req)
	if chatReq.ResponseFormat == nil {
		t.Fatal("Expected JSON response format when a schema is requested")
	}
	if chatReq.ResponseFormat.Type != openai.ChatCompletionResponseFormatTypeJSONObject {
		t.Errorf("Expected json_object format, got %q", chatReq.ResponseFormat.Type)
	}
}
