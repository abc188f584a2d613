// Package encoder turns a validated model.Document into the bytes of one file format.
//
// Encoders are pure: the same document always yields the same bytes and no
// state is shared between calls, so a single instance may serve concurrent requests.
// They assume the document already passed validator.Validate.
package encoder

import (
	"fmt"

	"exportapi/internal/model"
)

// Encoder converts a document into a binary payload of a single format.
type Encoder interface {
	Encode(doc *model.Document) ([]byte, error)
	Format() model.Format
}

// Error is an internal failure while encoding. It signals a defect, not bad input.
type Error struct {
	Format model.Format
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("encode %s: %v", e.Format, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrap(f model.Format, op string, err error) error {
	return &Error{Format: f, Err: fmt.Errorf("%s: %w", op, err)}
}
