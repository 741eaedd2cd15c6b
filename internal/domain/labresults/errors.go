package labresults

import (
	"fmt"
	"strconv"
	"strings"
)

// InputKind classifies why an uploaded table could not be used.
type InputKind string

const (
	InputEmpty          InputKind = "empty"
	InputUnreadable     InputKind = "unreadable"
	InputMissingColumns InputKind = "missing_columns"
	InputMalformedRows  InputKind = "malformed_rows"
)

// InputError is returned for any problem with the uploaded table itself.
type InputError struct {
	Kind InputKind
	// Columns lists required columns absent from the header (MissingColumns).
	Columns []string
	// Rows lists 1-based data row indices with an empty field (MalformedRows).
	Rows []int
	Err  error
}

func (e *InputError) Error() string {
	switch e.Kind {
	case InputMissingColumns:
		return "input: missing columns: " + strings.Join(e.Columns, ", ")
	case InputMalformedRows:
		idx := make([]string, len(e.Rows))
		for i, r := range e.Rows {
			idx[i] = strconv.Itoa(r)
		}
		return "input: rows with empty fields: " + strings.Join(idx, ", ")
	case InputEmpty:
		return "input: table has no header"
	}
	if e.Err != nil {
		return fmt.Sprintf("input: %s: %v", e.Kind, e.Err)
	}
	return "input: " + string(e.Kind)
}

func (e *InputError) Unwrap() error { return e.Err }
