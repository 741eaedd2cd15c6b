package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/labinterpreter/internal/domain/ai"
)

type stubClient struct {
	text string
	err  error
}

func (s stubClient) Analyze(context.Context, string) (string, error) { return s.text, s.err }

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "labs.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func stubVendor(t *testing.T, c ai.Client, seen *ai.Config) {
	t.Helper()
	prev := newClient
	newClient = func(_ string, cfg ai.Config) (ai.Client, error) {
		if seen != nil {
			*seen = cfg
		}
		return c, nil
	}
	t.Cleanup(func() { newClient = prev })
}

const sample = "Test_Name,Result,Unit,Reference_Range\nGlucose,110,mg/dL,70-100\n"

func TestPreviewPrintsTableAndPrompt(t *testing.T) {
	out, _, err := run(t, "preview", writeCSV(t, sample))
	require.NoError(t, err)
	assert.Contains(t, out, "TEST")
	assert.Contains(t, out, "Glucose")
	assert.Contains(t, out, "Glucose: 110 mg/dL (Normal: 70-100)")
}

func TestPreviewInputError(t *testing.T) {
	_, errOut, err := run(t, "preview", writeCSV(t, "a,b\n1,2\n"))
	assert.Equal(t, exitError{code: 2}, err)
	assert.Contains(t, errOut, "Test_Name")
}

func TestAnalyzeWritesReport(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	var seen ai.Config
	stubVendor(t, stubClient{text: "All good."}, &seen)
	outFile := filepath.Join(t.TempDir(), "report.txt")

	out, _, err := run(t, "analyze", writeCSV(t, sample), "--vendor", "openai", "--out", outFile, "--temperature", "0.5")
	require.NoError(t, err)
	assert.Contains(t, out, "All good.")
	assert.Equal(t, "sk-test", seen.APIKey)
	assert.Equal(t, "gpt-4o-mini", seen.Model)
	require.NotNil(t, seen.Temperature)
	assert.InDelta(t, 0.5, *seen.Temperature, 1e-6)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, "All good.", string(data))
}

func TestAnalyzeFailureShowsMessage(t *testing.T) {
	stubVendor(t, stubClient{err: &ai.AnalysisError{Kind: ai.KindAuthFailure, Vendor: "gemini", StatusCode: 401}}, nil)
	outFile := filepath.Join(t.TempDir(), "report.txt")

	out, errOut, err := run(t, "analyze", writeCSV(t, sample), "--out", outFile)
	assert.Equal(t, exitError{code: 1}, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Authentication")
	assert.NoFileExists(t, outFile)
}

func TestAnalyzeUnknownVendor(t *testing.T) {
	_, _, err := run(t, "analyze", writeCSV(t, sample), "--vendor", "llama")
	assert.ErrorContains(t, err, "llama")
}

func TestPreviewMissingFile(t *testing.T) {
	_, errOut, err := run(t, "preview", filepath.Join(t.TempDir(), "nope.csv"))
	assert.Equal(t, exitError{code: 2}, err)
	assert.Contains(t, errOut, "could not be read")
}
