package anthropic

import (
	"context"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/bryanwahyu/labinterpreter/internal/domain/ai"
	"github.com/bryanwahyu/labinterpreter/internal/infra/ai/transport"
)

const (
	Vendor       = "anthropic"
	DefaultModel = "claude-sonnet-4-20250514"
	maxTokens    = 2048
)

// Client calls the Anthropic Messages API.
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
	opts := []option.RequestOption{
		option.WithAPIKey(c.cfg.APIKey),
		option.WithHTTPClient(rec.HTTPClient()),
		// one attempt per analysis; the SDK retries twice by default
		option.WithMaxRetries(0),
	}
	if c.cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(c.cfg.BaseURL))
	}
	cli := anthropic.NewClient(opts...)

	msg, err := cli.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		MaxTokens:   int64(limit),
		Temperature: anthropic.Float(float64(c.cfg.TemperatureOrDefault())),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(request)),
		},
	})
	if err != nil {
		return "", ai.Classify(Vendor, rec.Status(), err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	text := b.String()
	if strings.TrimSpace(text) == "" {
		return "", &ai.AnalysisError{Kind: ai.KindEmptyResponse, Vendor: Vendor, StatusCode: rec.Status(), Err: ai.ErrNoContent}
	}
	return text, nil
}
