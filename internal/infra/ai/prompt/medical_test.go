package prompt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/labinterpreter/internal/domain/labresults"
)

func TestBuildPromptScenario(t *testing.T) {
	rows := []labresults.ResultRow{
		{TestName: "Glucose", Result: "110", Unit: "mg/dL", ReferenceRange: "70-100"},
		{TestName: "WBC", Result: "6.5", Unit: "10^3/uL", ReferenceRange: "4.0-11.0"},
	}
	got := BuildPrompt(rows)

	require.True(t, strings.HasPrefix(got, Preamble))
	assert.Equal(t, "Glucose: 110 mg/dL (Normal: 70-100)\nWBC: 6.5 10^3/uL (Normal: 4.0-11.0)", strings.TrimPrefix(got, Preamble))
}

func TestBuildPromptEmpty(t *testing.T) {
	assert.Equal(t, Preamble, BuildPrompt(nil))
	assert.Equal(t, Preamble, BuildPrompt([]labresults.ResultRow{}))
}

func TestBuildPromptOneLinePerRowInOrder(t *testing.T) {
	var rows []labresults.ResultRow
	for i := 0; i < 25; i++ {
		rows = append(rows, labresults.ResultRow{
			TestName:       fmt.Sprintf("T%02d", i),
			Result:         fmt.Sprintf("%d.0", i),
			Unit:           "u",
			ReferenceRange: "0-1",
		})
	}
	lines := strings.Split(strings.TrimPrefix(BuildPrompt(rows), Preamble), "\n")
	require.Len(t, lines, len(rows))
	for i, r := range rows {
		assert.Equal(t, fmt.Sprintf("%s: %s %s (Normal: %s)", r.TestName, r.Result, r.Unit, r.ReferenceRange), lines[i])
	}
}

func TestBuildPromptIdempotent(t *testing.T) {
	rows := []labresults.ResultRow{{TestName: "CRP", Result: "<0.5", Unit: "mg/L", ReferenceRange: "0-5"}}
	assert.Equal(t, BuildPrompt(rows), BuildPrompt(rows))
}

func TestPreambleNamesAllTasks(t *testing.T) {
	assert.Contains(t, Preamble, "Identify abnormal values")
	assert.Contains(t, Preamble, "health implications")
	assert.Contains(t, Preamble, "patient-friendly")
}
