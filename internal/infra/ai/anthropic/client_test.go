package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/labinterpreter/internal/domain/ai"
)

type fakeVendor struct {
	*httptest.Server
	calls atomic.Int32
	last  atomic.Value
}

func newFakeVendor(t *testing.T, status int, body string) *fakeVendor {
	t.Helper()
	f := &fakeVendor{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.last.Store(req)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(f.Close)
	return f
}

func message(blocks ...map[string]any) string {
	b, _ := json.Marshal(map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"model":       DefaultModel,
		"content":     blocks,
		"stop_reason": "end_turn",
		"usage":       map[string]any{"input_tokens": 10, "output_tokens": 5},
	})
	return string(b)
}

func textBlock(s string) map[string]any { return map[string]any{"type": "text", "text": s} }

func analysisErr(t *testing.T, err error) *ai.AnalysisError {
	t.Helper()
	var ae *ai.AnalysisError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, Vendor, ae.Vendor)
	return ae
}

func TestAnalyzeSuccessJoinsTextBlocks(t *testing.T) {
	srv := newFakeVendor(t, http.StatusOK, message(textBlock("Part one. "), textBlock("Part two.")))
	c := NewClient(ai.Config{APIKey: "sk-ant-test", BaseURL: srv.URL})

	got, err := c.Analyze(context.Background(), "prompt text")
	require.NoError(t, err)
	assert.Equal(t, "Part one. Part two.", got)

	req := srv.last.Load().(map[string]any)
	assert.Equal(t, DefaultModel, req["model"])
	assert.EqualValues(t, maxTokens, req["max_tokens"])
	assert.InDelta(t, 0.2, req["temperature"], 0.0001)
}

func TestAnalyzeEmptyKeyMakesNoCall(t *testing.T) {
	srv := newFakeVendor(t, http.StatusOK, message(textBlock("never")))
	c := NewClient(ai.Config{BaseURL: srv.URL})

	_, err := c.Analyze(context.Background(), "prompt")
	assert.Equal(t, ai.KindAuthFailure, analysisErr(t, err).Kind)
	assert.EqualValues(t, 0, srv.calls.Load())
}

func TestAnalyzeFailuresAreNotRetried(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   ai.Kind
	}{
		{"unauthorized", http.StatusUnauthorized, `{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`, ai.KindAuthFailure},
		{"overloaded", 529, `{"type":"error","error":{"type":"overloaded_error","message":"Overloaded"}}`, ai.KindVendorError},
		{"rate limited", http.StatusTooManyRequests, `{"type":"error","error":{"type":"rate_limit_error","message":"slow"}}`, ai.KindVendorError},
		{"no text", http.StatusOK, message(), ai.KindEmptyResponse},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newFakeVendor(t, tc.status, tc.body)
			c := NewClient(ai.Config{APIKey: "sk-ant-test", BaseURL: srv.URL})

			_, err := c.Analyze(context.Background(), "prompt")
			assert.Equal(t, tc.want, analysisErr(t, err).Kind)
			assert.EqualValues(t, 1, srv.calls.Load())
		})
	}
}
