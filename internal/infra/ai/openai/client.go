package openai

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"github.com/healthlens/healthlens-api/internal/domain/vision"
)

const maxTokens = 1024

const defaultModel = "gpt-4o"

// Client calls the OpenAI vision API. It implements vision.Client: soft
// failures (model refusals) come back as a Result with Success=false, hard
// failures (transport, credentials, empty choice list) as an error. Both
// paths log before returning; nothing panics past this boundary.
type Client struct {
	*openai.Client
	Model string
	log   zerolog.Logger
}

func NewClient(apiKey, model string, log zerolog.Logger) (*Client, error) {
	if apiKey == "" {
		return nil, vision.ErrMissingAPIKey
	}
	return &Client{Client: openai.NewClient(apiKey), Model: model, log: log}, nil
}

func (c *Client) Analyze(ctx context.Context, imageB64, prompt string) (vision.Result, error) {
	model := c.Model
	if model == "" {
		model = defaultModel
	}

	payload, contentType := vision.SplitDataURL(imageB64)
	req := openai.ChatCompletionRequest{
		Model:     model,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    fmt.Sprintf("data:%s;base64,%s", contentType, payload),
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		c.log.Error().Err(err).Str("model", model).Msg("vision completion failed")
		return vision.Result{}, fmt.Errorf("vision completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		c.log.Error().Str("model", model).Msg("vision completion returned no choices")
		return vision.Result{}, vision.ErrEmptyCompletion
	}

	text := resp.Choices[0].Message.Content
	if vision.IsRefusal(text) {
		c.log.Warn().Str("model", model).Str("refusal", text).Msg("model declined to analyze image")
		return vision.Result{Text: text, Success: false}, nil
	}
	return vision.Result{Text: text, Success: true}, nil
}
