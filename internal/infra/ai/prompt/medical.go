package prompt

import (
	"fmt"
	"strings"

	"github.com/bryanwahyu/labinterpreter/internal/domain/labresults"
)

// Version identifies the preamble wording; bump it whenever Preamble changes so
// archived reports can be traced back to the instructions that produced them.
const Version = "v1"

// Preamble lists the three analysis tasks. It ends with a blank line that
// separates it from the result lines.
const Preamble = "You are a medical assistant. Analyze the following test results:\n" +
	"1. Identify abnormal values.\n" +
	"2. Explain possible health implications.\n" +
	"3. Provide patient-friendly clinical suggestions.\n\n"

// FormatRow renders one result line. Values are interpolated verbatim.
func FormatRow(r labresults.ResultRow) string {
	return fmt.Sprintf("%s: %s %s (Normal: %s)", r.TestName, r.Result, r.Unit, r.ReferenceRange)
}

// RowLines is the result section of the prompt: one line per row, input order.
func RowLines(rows []labresults.ResultRow) string {
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = FormatRow(r)
	}
	return strings.Join(lines, "\n")
}

// BuildPrompt returns the full analysis request. With no rows it is exactly
// the preamble.
func BuildPrompt(rows []labresults.ResultRow) string {
	return Preamble + RowLines(rows)
}
