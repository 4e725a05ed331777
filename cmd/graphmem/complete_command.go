package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"graphmem/config"
	"graphmem/llm"
)

func newCompleteCommand(ctx *commandContext) *cobra.Command {
	var (
		system     string
		structured bool
		compat     bool
	)

	cmd := &cobra.Command{
		Use:   "complete [prompt]",
		Short: "Run a completion through the retry client",
		Long: "Run a completion through the retry client and print the normalized " +
			"envelope as JSON. The prompt is taken from the argument, or from stdin " +
			"when no argument is given.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt, err := readPrompt(cmd, args)
			if err != nil {
				return err
			}

			client, err := newCompletionClient(ctx, compat)
			if err != nil {
				return err
			}

			conversation := []llm.Message{}
			if system != "" {
				conversation = append(conversation, llm.NewMessage(llm.RoleSystem, system))
			}
			conversation = append(conversation, llm.NewMessage(llm.RoleUser, prompt))

			var schema *llm.ResponseSchema
			if structured {
				schema = &llm.ResponseSchema{Name: "response"}
			}

			envelope, err := client.GenerateResponse(cmd.Context(), conversation, schema)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if envelope.Structured != nil {
				return enc.Encode(envelope.Structured)
			}
			return enc.Encode(envelope.Message)
		},
	}

	cmd.Flags().StringVar(&system, "system", "", "system prompt to prepend")
	cmd.Flags().BoolVar(&structured, "structured", false, "request a structured (JSON) result")
	cmd.Flags().BoolVar(&compat, "compat", false, "use the compatibility endpoint profile")
	return cmd
}

func newCompletionClient(ctx *commandContext, compat bool) (*llm.Client, error) {
	if compat {
		return config.NewCompatibilityClient(ctx.settings, ctx.log)
	}
	return config.NewPrimaryClient(ctx.settings, ctx.log)
}

func readPrompt(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read prompt from stdin: %w", err)
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", errors.New("empty prompt")
	}
	return prompt, nil
}
