package labcsv

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	domain "github.com/bryanwahyu/labinterpreter/internal/domain/labresults"
)

const utf8BOM = "\ufeff"

// Parse reads a results table. The header must contain every required column
// (exact names, any order); extra columns are ignored. Rows with an empty
// required field are rejected together: the error lists every offending row.
func Parse(r io.Reader) ([]domain.ResultRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &domain.InputError{Kind: domain.InputEmpty}
	}
	if err != nil {
		return nil, &domain.InputError{Kind: domain.InputUnreadable, Err: err}
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	var missing []string
	for _, col := range domain.RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &domain.InputError{Kind: domain.InputMissingColumns, Columns: missing}
	}

	field := func(rec []string, col string) string {
		i := index[col]
		if i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var (
		rows []domain.ResultRow
		bad  []int
	)
	for n := 1; ; n++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &domain.InputError{Kind: domain.InputUnreadable, Err: err}
		}
		if blank(rec) {
			// spreadsheet exports often end with ",,," lines
			continue
		}
		row := domain.ResultRow{
			TestName:       field(rec, domain.ColumnTestName),
			Result:         field(rec, domain.ColumnResult),
			Unit:           field(rec, domain.ColumnUnit),
			ReferenceRange: field(rec, domain.ColumnReferenceRange),
		}
		if !row.Complete() {
			bad = append(bad, n)
			continue
		}
		rows = append(rows, row)
	}
	if len(bad) > 0 {
		return nil, &domain.InputError{Kind: domain.InputMalformedRows, Rows: bad}
	}
	return rows, nil
}

// ParseFile is Parse over a file on disk.
func ParseFile(path string) ([]domain.ResultRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.InputError{Kind: domain.InputUnreadable, Err: err}
	}
	defer f.Close()
	return Parse(f)
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
