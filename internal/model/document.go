package model

import "strings"

// Format identifies the artifact type produced for an export. It is a closed set:
// free-form strings are converted with ParseFormat before a Document is built.
type Format int

const (
	FormatExcel Format = iota + 1
	FormatCSV
	FormatPDF
)

// Formats lists every supported format in declaration order.
var Formats = []Format{FormatExcel, FormatCSV, FormatPDF}

// String returns the wire name used in requests ("excel", "csv", "pdf").
func (f Format) String() string {
	switch f {
	case FormatExcel:
		return "excel"
	case FormatCSV:
		return "csv"
	case FormatPDF:
		return "pdf"
	default:
		return "unknown"
	}
}

// Extension returns the file extension without the leading dot.
func (f Format) Extension() string {
	switch f {
	case FormatExcel:
		return "xlsx"
	case FormatCSV:
		return "csv"
	case FormatPDF:
		return "pdf"
	default:
		return "bin"
	}
}

// MimeType returns the Content-Type for the generated artifact.
func (f Format) MimeType() string {
	switch f {
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatCSV:
		return "text/csv"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// ParseFormat maps a request format tag to a Format, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "excel":
		return FormatExcel, nil
	case "csv":
		return FormatCSV, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return 0, &FormatError{Value: s}
	}
}

// ColumnType drives alignment and number formatting of a column.
type ColumnType string

const (
	ColumnText       ColumnType = "text"
	ColumnNumber     ColumnType = "number"
	ColumnCurrency   ColumnType = "currency"
	ColumnPercentage ColumnType = "percentage"
	ColumnDate       ColumnType = "date"
)

// Valid reports whether t is one of the known column types.
func (t ColumnType) Valid() bool {
	switch t {
	case ColumnText, ColumnNumber, ColumnCurrency, ColumnPercentage, ColumnDate:
		return true
	}
	return false
}

// RightAligned reports whether numeric content of this type is right-aligned in paginated output.
func (t ColumnType) RightAligned() bool {
	return t == ColumnNumber || t == ColumnCurrency || t == ColumnPercentage
}

// ColumnMetadata carries an optional presentation hint for one column.
type ColumnMetadata struct {
	Type      ColumnType `json:"column_type"`
	WidthHint *float64   `json:"width_hint,omitempty"`
}

// Options are the optional styling hints of an export.
// Nil pointers mean "not set" so encoders can apply their defaults.
type Options struct {
	FreezeHeaders    *bool   `json:"freeze_headers,omitempty"`
	AutoFitColumns   *bool   `json:"auto_fit_columns,omitempty"`
	HeaderBold       *bool   `json:"header_bold,omitempty"`
	HeaderBackground *string `json:"header_background,omitempty"`
	IncludeHeaderRow *bool   `json:"include_header_row,omitempty"`
	Delimiter        *string `json:"delimiter,omitempty"`
}

// Document is the in-memory representation of one export request.
// It is built per request, validated once and never mutated afterwards.
type Document struct {
	Title   string
	Format  Format
	Headers []string
	Rows    [][]string
	Options *Options
	Columns []ColumnMetadata
}

// IncludeHeaderRow defaults to true.
func (d *Document) IncludeHeaderRow() bool {
	if d.Options == nil || d.Options.IncludeHeaderRow == nil {
		return true
	}
	return *d.Options.IncludeHeaderRow
}

func (d *Document) FreezeHeaders() bool {
	return d.Options != nil && boolValue(d.Options.FreezeHeaders)
}

func (d *Document) AutoFitColumns() bool {
	return d.Options != nil && boolValue(d.Options.AutoFitColumns)
}

func (d *Document) HeaderBold() bool {
	return d.Options != nil && boolValue(d.Options.HeaderBold)
}

// HeaderBackground returns the header fill colour normalised to "#RRGGBB", or "" when unset.
func (d *Document) HeaderBackground() string {
	if d.Options == nil || d.Options.HeaderBackground == nil {
		return ""
	}
	c, err := NormalizeHexColor(*d.Options.HeaderBackground)
	if err != nil {
		return ""
	}
	return c
}

// Delimiter returns the field separator, ',' when unset.
func (d *Document) Delimiter() rune {
	if d.Options == nil || d.Options.Delimiter == nil {
		return ','
	}
	for _, r := range *d.Options.Delimiter {
		return r
	}
	return ','
}

// Column returns the metadata for column i, or a text column when no hint exists.
func (d *Document) Column(i int) (ColumnMetadata, bool) {
	if i < 0 || i >= len(d.Columns) {
		return ColumnMetadata{Type: ColumnText}, false
	}
	c := d.Columns[i]
	if c.Type == "" {
		c.Type = ColumnText
	}
	return c, true
}

// Filename is the download name, "<title>.<extension>", safe for a Content-Disposition header.
func (d *Document) Filename() string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return '_'
		case r == '"' || r == '/' || r == '\\' || r < 0x20 || r == 0x7f:
			return -1
		}
		return r
	}, strings.TrimSpace(d.Title))
	if name == "" {
		name = "export"
	}
	return name + "." + d.Format.Extension()
}

func boolValue(b *bool) bool {
	return b != nil && *b
}
