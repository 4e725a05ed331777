package openai

import (
	openai "github.com/sashabaranov/go-openai"
	"github.com/samber/lo"

	"graphmem/llm"
)

// toChatRequest converts a neutral request to the provider's chat
// completion shape. Role filtering already happened upstream; the mapping
// here is mechanical.
func toChatRequest(req *llm.Request) openai.ChatCompletionRequest {
	chatReq := openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    toChatMessages(req.Messages),
		Temperature: req.Temperature,
	}

	if req.MaxTokens > 0 {
		chatReq.MaxTokens = req.MaxTokens
	}

	// Best-effort structured output: ask for a JSON object when the caller
	// supplied a schema. Models without native support ignore this and get
	// manually decoded by the llm client instead.
	if req.Schema != nil {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	return chatReq
}

func toChatMessages(msgs []llm.Message) []openai.ChatCompletionMessage {
	return lo.Map(msgs, func(m llm.Message, _ int) openai.ChatCompletionMessage {
		return openai.ChatCompletionMessage{
			Role:    toChatRole(m.Role),
			Content: m.Content,
		}
	})
}

func toChatRole(role llm.MessageRole) string {
	switch role {
	case llm.RoleSystem:
		return openai.ChatMessageRoleSystem
	case llm.RoleAssistant:
		return openai.ChatMessageRoleAssistant
	default:
		return openai.ChatMessageRoleUser
	}
}
