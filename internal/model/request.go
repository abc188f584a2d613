package model

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrInvalidDelimiter = errors.New("delimiter must be a single character other than a quote or line break")
	ErrInvalidColor     = errors.New("header_background must be a hex colour such as #4F81BD")
	ErrInvalidColumn    = errors.New("unknown column_type")
)

// FormatError is returned when a request names a format outside the supported set.
type FormatError struct {
	Value string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("Invalid format: %s", e.Value)
}

// ExportRequest is the JSON body of POST /api/export.
type ExportRequest struct {
	Title          string           `json:"title"`
	Format         string           `json:"format" example:"csv"`
	Headers        []string         `json:"headers"`
	Rows           [][]string       `json:"rows"`
	Options        *Options         `json:"options,omitempty"`
	ColumnMetadata []ColumnMetadata `json:"column_metadata,omitempty"`
}

// ToDocument converts the request into a Document.
// Only the format tag and option values are checked here; structural invariants
// are the validator's job.
func (r *ExportRequest) ToDocument() (*Document, error) {
	format, err := ParseFormat(r.Format)
	if err != nil {
		return nil, err
	}
	if err := checkOptions(r.Options); err != nil {
		return nil, err
	}
	cols := make([]ColumnMetadata, len(r.ColumnMetadata))
	for i, c := range r.ColumnMetadata {
		if c.Type == "" {
			c.Type = ColumnText
		}
		c.Type = ColumnType(strings.ToLower(string(c.Type)))
		if !c.Type.Valid() {
			return nil, fmt.Errorf("column %d: %w %q", i+1, ErrInvalidColumn, c.Type)
		}
		cols[i] = c
	}

	return &Document{
		Title:   r.Title,
		Format:  format,
		Headers: r.Headers,
		Rows:    r.Rows,
		Options: r.Options,
		Columns: cols,
	}, nil
}

func checkOptions(o *Options) error {
	if o == nil {
		return nil
	}
	if o.Delimiter != nil {
		d := *o.Delimiter
		if utf8.RuneCountInString(d) != 1 {
			return ErrInvalidDelimiter
		}
		r, _ := utf8.DecodeRuneInString(d)
		if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
			return ErrInvalidDelimiter
		}
	}
	if o.HeaderBackground != nil {
		if _, err := NormalizeHexColor(*o.HeaderBackground); err != nil {
			return err
		}
	}
	return nil
}

// NormalizeHexColor accepts "#RRGGBB" or "RRGGBB" and returns upper-case "#RRGGBB".
func NormalizeHexColor(s string) (string, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return "", ErrInvalidColor
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", c) {
			return "", ErrInvalidColor
		}
	}
	return "#" + strings.ToUpper(s), nil
}
