// Package openai generates text through the OpenAI Responses API. It is the
// alternative narrative provider to the Anthropic client.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
)

const (
	defaultModel    = shared.ChatModelGPT4oMini
	maxOutputTokens = 1024
)

// Client generates text completions.
type Client struct {
	api   oai.Client
	model string
}

// NewClient builds a client. Extra request options (base URL, retries) are
// passed through to the SDK.
func NewClient(apiKey, model string, opts ...option.RequestOption) *Client {
	if model == "" {
		model = string(defaultModel)
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Client{api: oai.NewClient(opts...), model: model}
}

// Complete sends prompt with system as the instructions and returns the output text.
func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	params := responses.ResponseNewParams{
		Model:           shared.ResponsesModel(c.model),
		MaxOutputTokens: param.NewOpt[int64](maxOutputTokens),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
	}
	if system != "" {
		params.Instructions = param.NewOpt(system)
	}

	resp, err := c.api.Responses.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai responses error: %w", err)
	}

	text := resp.OutputText()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("empty response content")
	}
	return text, nil
}
