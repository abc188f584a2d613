package validator

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"exportapi/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rows(n, cols int) [][]string {
	out := make([][]string, n)
	for i := range out {
		out[i] = make([]string, cols)
	}
	return out
}

func TestValidate(t *testing.T) {
	long := strings.Repeat("x", MaxCellLength+1)

	tests := []struct {
		name string
		doc  *model.Document
		want *Error
	}{
		{
			name: "valid",
			doc:  &model.Document{Headers: []string{"Name", "Age"}, Rows: [][]string{{"Ann", "30"}, {"Ben", "41"}}},
		},
		{
			name: "empty headers checked before rows",
			doc:  &model.Document{Headers: []string{}, Rows: [][]string{{"a", "b", "c"}}},
			want: &Error{Kind: KindEmptyHeaders},
		},
		{
			name: "empty headers and empty rows",
			doc:  &model.Document{},
			want: &Error{Kind: KindEmptyHeaders},
		},
		{
			name: "empty rows",
			doc:  &model.Document{Headers: []string{"A"}},
			want: &Error{Kind: KindEmptyRows},
		},
		{
			name: "too many rows regardless of format",
			doc:  &model.Document{Format: model.FormatPDF, Headers: []string{"A"}, Rows: rows(MaxRows+1, 1)},
			want: &Error{Kind: KindTooManyRows, Count: MaxRows + 1},
		},
		{
			name: "too many rows wins over mismatched rows",
			doc:  &model.Document{Headers: []string{"A", "B"}, Rows: rows(MaxRows+1, 3)},
			want: &Error{Kind: KindTooManyRows, Count: MaxRows + 1},
		},
		{
			name: "exactly max rows",
			doc:  &model.Document{Headers: []string{"A"}, Rows: rows(MaxRows, 1)},
		},
		{
			name: "column count mismatch reports 1-based row",
			doc:  &model.Document{Headers: []string{"A", "B"}, Rows: [][]string{{"1", "2", "3"}}},
			want: &Error{Kind: KindColumnCountMismatch, Row: 1, Expected: 2, Actual: 3},
		},
		{
			name: "mismatch in a later row",
			doc:  &model.Document{Headers: []string{"A", "B"}, Rows: [][]string{{"1", "2"}, {"3", "4"}, {"5"}}},
			want: &Error{Kind: KindColumnCountMismatch, Row: 3, Expected: 2, Actual: 1},
		},
		{
			name: "long cell in earlier row wins over later mismatch",
			doc:  &model.Document{Headers: []string{"A"}, Rows: [][]string{{long}, {"a", "b"}}},
			want: &Error{Kind: KindCellTooLong, Length: MaxCellLength + 1},
		},
		{
			name: "row mismatch wins over long header",
			doc:  &model.Document{Headers: []string{long}, Rows: [][]string{{"a", "b"}}},
			want: &Error{Kind: KindColumnCountMismatch, Row: 1, Expected: 1, Actual: 2},
		},
		{
			name: "long header checked last",
			doc:  &model.Document{Headers: []string{"ok", long + "y"}, Rows: [][]string{{"a", "b"}}},
			want: &Error{Kind: KindCellTooLong, Length: MaxCellLength + 2},
		},
		{
			name: "cell exactly at limit",
			doc:  &model.Document{Headers: []string{"A"}, Rows: [][]string{{strings.Repeat("x", MaxCellLength)}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.doc)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			var ve *Error
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.want, ve)
		})
	}
}

func TestError_Messages(t *testing.T) {
	assert.EqualError(t, &Error{Kind: KindEmptyHeaders}, "Empty data: Headers cannot be empty")
	assert.EqualError(t, &Error{Kind: KindEmptyRows}, "Empty data: Data rows cannot be empty")
	assert.EqualError(t, &Error{Kind: KindTooManyRows, Count: 10001}, "Too many rows: 10001 (max 10000)")
	assert.EqualError(t, &Error{Kind: KindColumnCountMismatch, Row: 1, Expected: 2, Actual: 3},
		"Row 1: column count mismatch (expected 2, got 3)")
	assert.EqualError(t, &Error{Kind: KindCellTooLong, Length: 1200}, "Cell content too long: 1200 chars")
}

func TestError_Sentinels(t *testing.T) {
	assert.ErrorIs(t, &Error{Kind: KindEmptyHeaders}, ErrEmptyHeaders)
	assert.ErrorIs(t, &Error{Kind: KindEmptyRows}, ErrEmptyRows)
	assert.ErrorIs(t, &Error{Kind: KindTooManyRows}, ErrTooManyRows)
	assert.ErrorIs(t, &Error{Kind: KindColumnCountMismatch}, ErrColumnCountMismatch)
	assert.ErrorIs(t, &Error{Kind: KindCellTooLong}, ErrCellTooLong)
}

func TestError_Details(t *testing.T) {
	d := (&Error{Kind: KindColumnCountMismatch, Row: 4, Expected: 2, Actual: 5}).Details()
	assert.Equal(t, map[string]any{"kind": "column_count_mismatch", "row": 4, "expected": 2, "actual": 5}, d)

	d = (&Error{Kind: KindTooManyRows, Count: 10001}).Details()
	assert.Equal(t, 10001, d["count"])
}

func TestValidate_Concurrent(t *testing.T) {
	doc := &model.Document{Headers: []string{"A", "B"}, Rows: [][]string{{"1", "2"}, {"3"}}}

	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = Validate(doc)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.EqualError(t, err, "Row 2: column count mismatch (expected 2, got 1)")
	}
}
