package labresults

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputErrorMessages(t *testing.T) {
	cases := []struct {
		name string
		err  *InputError
		want string
	}{
		{"missing", &InputError{Kind: InputMissingColumns, Columns: []string{"Unit", "Reference_Range"}}, "input: missing columns: Unit, Reference_Range"},
		{"rows", &InputError{Kind: InputMalformedRows, Rows: []int{2, 5}}, "input: rows with empty fields: 2, 5"},
		{"empty", &InputError{Kind: InputEmpty}, "input: table has no header"},
		{"unreadable", &InputError{Kind: InputUnreadable, Err: io.ErrUnexpectedEOF}, "input: unreadable: unexpected EOF"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestInputErrorUnwrap(t *testing.T) {
	err := error(&InputError{Kind: InputUnreadable, Err: io.ErrUnexpectedEOF})
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))

	var ie *InputError
	assert.True(t, errors.As(err, &ie))
	assert.Equal(t, InputUnreadable, ie.Kind)
}

func TestResultRowComplete(t *testing.T) {
	assert.True(t, ResultRow{"Glucose", "110", "mg/dL", "70-100"}.Complete())
	assert.False(t, ResultRow{"Glucose", "110", "", "70-100"}.Complete())
}
