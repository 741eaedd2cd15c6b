package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	boom := errors.New("boom")
	cases := []struct {
		name   string
		status int
		err    error
		want   Kind
	}{
		{"unauthorized", http.StatusUnauthorized, boom, KindAuthFailure},
		{"forbidden", http.StatusForbidden, boom, KindAuthFailure},
		{"rate limited", http.StatusTooManyRequests, boom, KindVendorError},
		{"bad request", http.StatusBadRequest, boom, KindVendorError},
		{"server error", http.StatusBadGateway, boom, KindVendorError},
		{"undecodable body", http.StatusOK, io.ErrUnexpectedEOF, KindEmptyResponse},
		{"no response", 0, boom, KindTransportFailure},
		{"deadline", 0, fmt.Errorf("post: %w", context.DeadlineExceeded), KindTimeout},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify("gemini", tc.status, tc.err)
			assert.Equal(t, tc.want, got.Kind)
			assert.Equal(t, "gemini", got.Vendor)
			assert.ErrorIs(t, got, tc.err)
		})
	}
}

func TestClassifyKeepsExistingAnalysisError(t *testing.T) {
	orig := NewError(KindEmptyResponse, "openai", ErrNoContent)
	got := Classify("openai", 500, fmt.Errorf("wrapped: %w", orig))
	assert.Same(t, orig, got)
}

func TestQuotaSentinel(t *testing.T) {
	err := error(Classify("openai", http.StatusTooManyRequests, errors.New("slow down")))
	assert.True(t, errors.Is(err, ErrQuotaExceeded))

	err = Classify("openai", http.StatusBadRequest, errors.New("bad"))
	assert.False(t, errors.Is(err, ErrQuotaExceeded))
}

func TestErrorStringOmitsVendorMessage(t *testing.T) {
	err := Classify("openai", http.StatusUnauthorized, errors.New("Incorrect API key provided: sk-secret"))
	assert.Equal(t, "ai: openai auth_failure (status 401)", err.Error())
	assert.NotContains(t, err.Error(), "sk-secret")
}

func TestPrecheck(t *testing.T) {
	err := Precheck("gemini", Config{}, "prompt")
	var ae *AnalysisError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, KindAuthFailure, ae.Kind)
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	err = Precheck("gemini", Config{APIKey: "k"}, "  \n")
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, KindVendorError, ae.Kind)
	assert.ErrorIs(t, err, ErrEmptyRequest)

	assert.NoError(t, Precheck("gemini", Config{APIKey: "k"}, "prompt"))
}

func TestConfigStringRedactsKey(t *testing.T) {
	cfg := Config{APIKey: "sk-live-123", Model: "gpt-4o-mini"}
	assert.NotContains(t, fmt.Sprintf("%v", cfg), "sk-live-123")
	assert.Contains(t, cfg.String(), "api_key=[redacted]")
	assert.Contains(t, Config{}.String(), "api_key=[empty]")
}

func TestTemperatureOrDefault(t *testing.T) {
	assert.Equal(t, DefaultTemperature, Config{}.TemperatureOrDefault())
	v := float32(0.7)
	assert.Equal(t, float32(0.7), Config{Temperature: &v}.TemperatureOrDefault())
}
