package openai

import (
	"context"
	"fmt"
	"strings"

	oa "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const DefaultModel = "gpt-4"

const systemPrompt = `You are a risk analyst commenting on a portfolio compared with a market benchmark.
You will receive the computed figures: total return, volatility of the normalized value curves,
one-day historical Value at Risk and the correlation of daily returns.

Write at most 4 short sentences of plain text:
- Say how the portfolio performed against the benchmark
- Interpret the volatility comparison and the VaR figure in everyday terms
- Mention what the correlation implies for diversification
Do not give buy or sell advice. Do not repeat every number. No markdown.`

// Commentator asks a chat model for a short prose reading of an analysis.
type Commentator struct {
	cli   oa.Client
	model string
}

func NewCommentator(apiKey, model string, opts ...option.RequestOption) *Commentator {
	if model == "" {
		model = DefaultModel
	}
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Commentator{cli: oa.NewClient(opts...), model: model}
}

// Comment returns the model's commentary on a plain-text analysis summary.
func (c *Commentator) Comment(ctx context.Context, summary string) (string, error) {
	resp, err := c.cli.Chat.Completions.New(ctx, oa.ChatCompletionNewParams{
		Model: c.model,
		Messages: []oa.ChatCompletionMessageParamUnion{
			oa.SystemMessage(systemPrompt),
			oa.UserMessage(summary),
		},
		MaxTokens:   oa.Int(300), // one Telegram message
		Temperature: oa.Float(0.3),
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
