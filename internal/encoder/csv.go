package encoder

import (
	"bytes"
	"encoding/csv"

	"exportapi/internal/model"
)

// CSV writes delimited text: the header record (unless disabled) followed by
// every row, "\n" terminated. Fields containing the delimiter, a quote or a
// line break are quoted with inner quotes doubled.
type CSV struct{}

func NewCSV() *CSV { return &CSV{} }

func (CSV) Format() model.Format { return model.FormatCSV }

func (c CSV) Encode(doc *model.Document) ([]byte, error) {
	var buf bytes.Buffer
	w := &csvWriter{buf: &buf, w: csv.NewWriter(&buf)}
	w.w.Comma = doc.Delimiter()

	if doc.IncludeHeaderRow() {
		if err := w.Write(doc.Headers); err != nil {
			return nil, wrap(c.Format(), "write header", err)
		}
	}
	for _, row := range doc.Rows {
		if err := w.Write(row); err != nil {
			return nil, wrap(c.Format(), "write rows", err)
		}
	}
	if err := w.Flush(); err != nil {
		return nil, wrap(c.Format(), "write rows", err)
	}
	return buf.Bytes(), nil
}

// csvWriter quotes a record made of a single empty field. encoding/csv writes
// it as a blank line, which readers skip.
type csvWriter struct {
	buf *bytes.Buffer
	w   *csv.Writer
}

func (cw *csvWriter) Write(rec []string) error {
	if len(rec) != 1 || rec[0] != "" {
		return cw.w.Write(rec)
	}
	if err := cw.Flush(); err != nil {
		return err
	}
	cw.buf.WriteString("\"\"\n")
	return nil
}

func (cw *csvWriter) Flush() error {
	cw.w.Flush()
	return cw.w.Error()
}
