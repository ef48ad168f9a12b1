package llm

import (
	"context"
	"fmt"

	openai "github.com/meguminnnnnnnnn/go-openai"

	"regwatch/internal/config"
)

// OpenAI is an LLM client for the OpenAI chat-completion API or any
// OpenAI-compatible deployment reachable through a custom base URL.
type OpenAI struct {
	client *openai.Client
	params config.CompletionConfig
}

// NewOpenAI creates a new OpenAI completion client. The request parameters
// are fixed at construction and never mutated afterwards.
func NewOpenAI(cfg config.OpenAIConfig, params config.CompletionConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is not configured")
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(clientCfg),
		params: params,
	}, nil
}

// Complete sends one chat-completion request and returns the generated text.
func (o *OpenAI) Complete(ctx context.Context, instruction, prompt string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if instruction != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: instruction,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})

	// The fork carries Temperature as a pointer so an explicit 0 survives.
	temperature := o.params.Temperature
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:            o.params.Model,
		Messages:         messages,
		Temperature:      &temperature,
		MaxTokens:        o.params.MaxTokens,
		TopP:             o.params.TopP,
		FrequencyPenalty: o.params.FrequencyPenalty,
		PresencePenalty:  o.params.PresencePenalty,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// compile-time check to ensure OpenAI implements the LLM interface
var _ LLM = (*OpenAI)(nil)
