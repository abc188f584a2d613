// Package validator checks the structural invariants of an export document
// before any encoder sees it.
//
// Checks run in a fixed order and stop at the first violation:
//  1. headers non-empty
//  2. rows non-empty
//  3. row count within MaxRows
//  4. per row, in input order: column count, then cell lengths
//  5. header cell lengths
//
// The order is part of the contract: callers sending several problems at once
// always get the same single error back.
package validator

import (
	"errors"
	"fmt"

	"exportapi/internal/model"
)

const (
	MaxRows       = 10000
	MaxCellLength = 1000
)

// Kind identifies which invariant failed.
type Kind string

const (
	KindEmptyHeaders        Kind = "empty_headers"
	KindEmptyRows           Kind = "empty_rows"
	KindTooManyRows         Kind = "too_many_rows"
	KindColumnCountMismatch Kind = "column_count_mismatch"
	KindCellTooLong         Kind = "cell_too_long"
)

var (
	ErrEmptyHeaders        = errors.New("empty headers")
	ErrEmptyRows           = errors.New("empty rows")
	ErrTooManyRows         = errors.New("too many rows")
	ErrColumnCountMismatch = errors.New("column count mismatch")
	ErrCellTooLong         = errors.New("cell too long")
)

// Error is a failed invariant with the values needed to rebuild the message.
// Only the fields relevant to Kind are set.
type Error struct {
	Kind     Kind
	Count    int // rows, for KindTooManyRows
	Row      int // 1-based, for KindColumnCountMismatch
	Expected int
	Actual   int
	Length   int // bytes, for KindCellTooLong
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindEmptyHeaders:
		return "Empty data: Headers cannot be empty"
	case KindEmptyRows:
		return "Empty data: Data rows cannot be empty"
	case KindTooManyRows:
		return fmt.Sprintf("Too many rows: %d (max %d)", e.Count, MaxRows)
	case KindColumnCountMismatch:
		return fmt.Sprintf("Row %d: column count mismatch (expected %d, got %d)", e.Row, e.Expected, e.Actual)
	case KindCellTooLong:
		return fmt.Sprintf("Cell content too long: %d chars", e.Length)
	default:
		return "invalid document"
	}
}

// Unwrap lets callers match on the sentinel for the failed invariant.
func (e *Error) Unwrap() error {
	switch e.Kind {
	case KindEmptyHeaders:
		return ErrEmptyHeaders
	case KindEmptyRows:
		return ErrEmptyRows
	case KindTooManyRows:
		return ErrTooManyRows
	case KindColumnCountMismatch:
		return ErrColumnCountMismatch
	case KindCellTooLong:
		return ErrCellTooLong
	}
	return nil
}

// Details returns the structured context of the error for API responses.
func (e *Error) Details() map[string]any {
	d := map[string]any{"kind": string(e.Kind)}
	switch e.Kind {
	case KindTooManyRows:
		d["count"] = e.Count
		d["max"] = MaxRows
	case KindColumnCountMismatch:
		d["row"] = e.Row
		d["expected"] = e.Expected
		d["actual"] = e.Actual
	case KindCellTooLong:
		d["length"] = e.Length
		d["max"] = MaxCellLength
	}
	return d
}

// Validate returns nil when doc satisfies every invariant, otherwise the first *Error found.
// It holds no state and is safe for concurrent use.
func Validate(doc *model.Document) error {
	if len(doc.Headers) == 0 {
		return &Error{Kind: KindEmptyHeaders}
	}
	if len(doc.Rows) == 0 {
		return &Error{Kind: KindEmptyRows}
	}
	if len(doc.Rows) > MaxRows {
		return &Error{Kind: KindTooManyRows, Count: len(doc.Rows)}
	}

	want := len(doc.Headers)
	for i, row := range doc.Rows {
		if len(row) != want {
			return &Error{Kind: KindColumnCountMismatch, Row: i + 1, Expected: want, Actual: len(row)}
		}
		for _, cell := range row {
			if len(cell) > MaxCellLength {
				return &Error{Kind: KindCellTooLong, Length: len(cell)}
			}
		}
	}

	for _, h := range doc.Headers {
		if len(h) > MaxCellLength {
			return &Error{Kind: KindCellTooLong, Length: len(h)}
		}
	}
	return nil
}
