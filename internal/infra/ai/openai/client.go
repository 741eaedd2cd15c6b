package openai

import (
	"context"
	"errors"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/bryanwahyu/labinterpreter/internal/domain/ai"
	"github.com/bryanwahyu/labinterpreter/internal/infra/ai/transport"
)

const (
	Vendor       = "openai"
	DefaultModel = "gpt-4o-mini"
	maxTokens    = 2048
)

// Client speaks the chat-completions protocol.
type Client struct {
	cfg ai.Config
}

func NewClient(cfg ai.Config) *Client {
	return &Client{cfg: cfg}
}

func (c *Client) Analyze(ctx context.Context, request string) (string, error) {
	if err := ai.Precheck(Vendor, c.cfg, request); err != nil {
		return "", err
	}
	model := c.cfg.Model
	if model == "" {
		model = DefaultModel
	}
	limit := c.cfg.MaxTokens
	if limit <= 0 {
		limit = maxTokens
	}

	rec := &transport.StatusRecorder{}
	oc := openai.DefaultConfig(c.cfg.APIKey)
	if c.cfg.BaseURL != "" {
		oc.BaseURL = c.cfg.BaseURL
	}
	oc.HTTPClient = rec.HTTPClient()
	cli := openai.NewClientWithConfig(oc)

	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: request},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens;
	// they also reject a custom temperature.
	if isReasoningModel(model) {
		req.MaxCompletionTokens = limit
	} else {
		req.MaxTokens = limit
		req.Temperature = c.cfg.TemperatureOrDefault()
	}

	resp, err := cli.CreateChatCompletion(ctx, req)
	if err != nil {
		status := rec.Status()
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
			status = apiErr.HTTPStatusCode
		}
		return "", ai.Classify(Vendor, status, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", &ai.AnalysisError{Kind: ai.KindEmptyResponse, Vendor: Vendor, StatusCode: rec.Status(), Err: ai.ErrNoContent}
	}
	return resp.Choices[0].Message.Content, nil
}

func isReasoningModel(model string) bool {
	for _, p := range []string{"o1", "o3", "o4", "gpt-5"} {
		if strings.HasPrefix(model, p) {
			return true
		}
	}
	return false
}
