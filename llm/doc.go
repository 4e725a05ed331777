// Package llm provides a completion client for OpenAI-compatible language
// model endpoints with bounded, feedback-driven retries.
//
// The package defines provider-neutral conversation types, a four-class
// error taxonomy, and a Client that orchestrates retries around a Completer
// transport:
//
//  1. Messages: the Message type represents a single conversation message
//     with a role (user, system, assistant) and plain text content.
//
//  2. Completer Interface: the Completer interface is the transport
//     boundary. Implementations (see llm/openai) own connection handling
//     and low-level retries for timeouts, connection failures and server
//     errors; the Client never re-attempts those.
//
//  3. Errors: the Error type carries one of four classes (rate_limit,
//     refusal, transport, application). Classification is a pure function of
//     the error value. Only application-class failures are retried here,
//     and each retry appends a corrective user message to the conversation
//     before the next attempt.
//
//  4. Normalization: models in the manual-decode family (name contains
//     "deepseek") have structured results parsed out of the raw completion
//     text on a best-effort basis; every other model's completion record is
//     passed through untouched.
//
// Usage:
//
//	transport, err := openai.NewTransport(apiKey, baseURL, logger)
//	client, err := llm.NewClient(llm.Config{Model: "deepseek-chat"}, transport, logger)
//
//	envelope, err := client.GenerateResponse(ctx, []llm.Message{
//	    llm.NewMessage(llm.RoleSystem, "Extract entities as JSON."),
//	    llm.NewMessage(llm.RoleUser, episodeText),
//	}, &llm.ResponseSchema{Name: "entities"})
package llm
