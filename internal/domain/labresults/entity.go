package labresults

// Column names expected in the uploaded table. Matching is exact and case
// sensitive; column order does not matter.
const (
	ColumnTestName       = "Test_Name"
	ColumnResult         = "Result"
	ColumnUnit           = "Unit"
	ColumnReferenceRange = "Reference_Range"
)

// RequiredColumns in the order they are reported to users.
var RequiredColumns = []string{
	ColumnTestName,
	ColumnResult,
	ColumnUnit,
	ColumnReferenceRange,
}

// ResultRow is one parsed test-result record. Values are kept as text so the
// original formatting (decimal places, ranges like "4.0-11.0") survives.
type ResultRow struct {
	TestName       string `json:"test_name"`
	Result         string `json:"result"`
	Unit           string `json:"unit"`
	ReferenceRange string `json:"reference_range"`
}

// Complete reports whether every field carries a value.
func (r ResultRow) Complete() bool {
	return r.TestName != "" && r.Result != "" && r.Unit != "" && r.ReferenceRange != ""
}
