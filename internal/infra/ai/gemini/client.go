package gemini

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"github.com/bryanwahyu/labinterpreter/internal/domain/ai"
	"github.com/bryanwahyu/labinterpreter/internal/infra/ai/transport"
)

const (
	Vendor       = "gemini"
	DefaultModel = "gemini-2.5-pro"
)

// Client calls the Gemini generateContent API.
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

	rec := &transport.StatusRecorder{}
	cc := &genai.ClientConfig{
		APIKey:     c.cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: rec.HTTPClient(),
	}
	if c.cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = c.cfg.BaseURL
	}
	cli, err := genai.NewClient(ctx, cc)
	if err != nil {
		return "", ai.Classify(Vendor, 0, err)
	}

	gc := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.cfg.TemperatureOrDefault()),
	}
	if c.cfg.MaxTokens > 0 {
		gc.MaxOutputTokens = int32(c.cfg.MaxTokens)
	}

	resp, err := cli.Models.GenerateContent(ctx, model, genai.Text(request), gc)
	if err != nil {
		return "", ai.Classify(Vendor, rec.Status(), err)
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		// blocked prompts and safety stops come back as 200 with no text
		return "", &ai.AnalysisError{Kind: ai.KindEmptyResponse, Vendor: Vendor, StatusCode: rec.Status(), Err: ai.ErrNoContent}
	}
	return text, nil
}
