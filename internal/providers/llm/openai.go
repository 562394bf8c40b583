package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAI goes through langchaingo's chat-completions client.
type OpenAI struct {
	client llms.Model
}

func NewOpenAI(apiKey, model string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	if model == "" {
		model = defaultOpenAIModel
	}
	c, err := openai.New(openai.WithToken(apiKey), openai.WithModel(model))
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}
	return &OpenAI{client: c}, nil
}

func (o *OpenAI) Name() string { return openAIProviderName }

func (o *OpenAI) Close() error { return nil }

func (o *OpenAI) Complete(ctx context.Context, req Request) (string, error) {
	var msgs []llms.MessageContent
	if req.System != "" {
		msgs = append(msgs, llms.TextParts(llms.ChatMessageTypeSystem, req.System))
	}
	msgs = append(msgs, llms.TextParts(llms.ChatMessageTypeHuman, req.Prompt))

	resp, err := o.client.GenerateContent(ctx, msgs,
		llms.WithTemperature(float64(req.Temperature)),
		llms.WithMaxTokens(maxTokens(req)),
	)
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return "", ErrEmptyResponse
	}
	return nonEmpty(resp.Choices[0].Content)
}
