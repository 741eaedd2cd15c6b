package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/labinterpreter/internal/domain/ai"
)

type countingClient struct {
	calls int
	text  string
	err   error
	block bool
}

func (c *countingClient) Analyze(ctx context.Context, _ string) (string, error) {
	c.calls++
	if c.block {
		<-ctx.Done()
		return "", errors.New("connection reset")
	}
	return c.text, c.err
}

func TestAnalyzePassesThroughText(t *testing.T) {
	client := &countingClient{text: "All values within range."}
	svc := NewService(client, "gemini", "gemini-2.5-pro", time.Second)

	got, err := svc.Analyze(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "All values within range.", got)
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, "gemini", svc.Vendor())
	assert.Equal(t, "gemini-2.5-pro", svc.Model())
}

func TestAnalyzeDoesNotRetry(t *testing.T) {
	client := &countingClient{err: ai.NewError(ai.KindVendorError, "openai", errors.New("bad request"))}
	svc := NewService(client, "openai", "gpt-4o-mini", 0)

	_, err := svc.Analyze(context.Background(), "prompt")
	var ae *ai.AnalysisError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, ai.KindVendorError, ae.Kind)
	assert.Equal(t, 1, client.calls)
}

func TestAnalyzeTimeout(t *testing.T) {
	client := &countingClient{block: true}
	svc := NewService(client, "gemini", "m", 20*time.Millisecond)

	_, err := svc.Analyze(context.Background(), "prompt")
	var ae *ai.AnalysisError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, ai.KindTimeout, ae.Kind)
}

func TestAnalyzeNormalizesPlainErrors(t *testing.T) {
	svc := NewService(&countingClient{err: errors.New("dial tcp: no such host")}, "anthropic", "m", 0)

	_, err := svc.Analyze(context.Background(), "prompt")
	var ae *ai.AnalysisError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, ai.KindTransportFailure, ae.Kind)
	assert.Equal(t, "anthropic", ae.Vendor)
}
