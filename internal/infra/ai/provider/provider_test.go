package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/labinterpreter/internal/domain/ai"
	"github.com/bryanwahyu/labinterpreter/internal/infra/ai/anthropic"
	"github.com/bryanwahyu/labinterpreter/internal/infra/ai/gemini"
	"github.com/bryanwahyu/labinterpreter/internal/infra/ai/openai"
)

func TestNewSelectsVendor(t *testing.T) {
	c, err := New("gemini", ai.Config{APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &gemini.Client{}, c)

	c, err = New(" OpenAI ", ai.Config{APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &openai.Client{}, c)

	c, err = New("anthropic", ai.Config{APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &anthropic.Client{}, c)
}

func TestNewUnknownVendor(t *testing.T) {
	_, err := New("watson", ai.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic, gemini, openai")
}

func TestDefaultModel(t *testing.T) {
	assert.Equal(t, gemini.DefaultModel, DefaultModel("gemini"))
	assert.Equal(t, openai.DefaultModel, DefaultModel("openai"))
	assert.Equal(t, "", DefaultModel("nope"))
}
