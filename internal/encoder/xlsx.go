package encoder

import (
	"github.com/mattn/go-runewidth"
	"github.com/xuri/excelize/v2"

	"exportapi/internal/model"
)

const (
	sheetName = "Sheet1"

	// DefaultColumnWidth is used for every column unless auto-fit or a width hint applies.
	DefaultColumnWidth = 20.0

	autoFitCharWidth = 1.2
	autoFitPadding   = 2.0
	minColumnWidth   = 8.0
	maxColumnWidth   = 255.0
)

// numFmts are presentation-only overlays; cells always hold the request's strings.
var numFmts = map[model.ColumnType]string{
	model.ColumnNumber:     "#,##0.00",
	model.ColumnCurrency:   `"$"#,##0.00`,
	model.ColumnPercentage: "0.00%",
	model.ColumnDate:       "yyyy-mm-dd",
}

// XLSX writes a single-sheet workbook.
type XLSX struct{}

func NewXLSX() *XLSX { return &XLSX{} }

func (*XLSX) Format() model.Format { return model.FormatExcel }

func (x *XLSX) Encode(doc *model.Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	cols := len(doc.Headers)
	row := 1
	if doc.IncludeHeaderRow() {
		if err := f.SetSheetRow(sheetName, "A1", &doc.Headers); err != nil {
			return nil, wrap(x.Format(), "write header", err)
		}
		if err := x.styleHeader(f, doc); err != nil {
			return nil, err
		}
		row++
	}

	firstData := row
	for _, r := range doc.Rows {
		for col, v := range r {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, wrap(x.Format(), "cell name", err)
			}
			if err := f.SetCellStr(sheetName, cell, v); err != nil {
				return nil, wrap(x.Format(), "write cell", err)
			}
		}
		row++
	}
	lastData := row - 1

	for col := 0; col < cols; col++ {
		if err := x.styleColumn(f, doc, col, firstData, lastData); err != nil {
			return nil, err
		}
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, wrap(x.Format(), "column name", err)
		}
		if err := f.SetColWidth(sheetName, name, name, columnWidth(doc, col)); err != nil {
			return nil, wrap(x.Format(), "column width", err)
		}
	}

	if doc.FreezeHeaders() && doc.IncludeHeaderRow() {
		err := f.SetPanes(sheetName, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		})
		if err != nil {
			return nil, wrap(x.Format(), "freeze panes", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, wrap(x.Format(), "write workbook", err)
	}
	return buf.Bytes(), nil
}

func (x *XLSX) styleHeader(f *excelize.File, doc *model.Document) error {
	bold, fill := doc.HeaderBold(), doc.HeaderBackground()
	if !bold && fill == "" {
		return nil
	}

	style := &excelize.Style{}
	if bold {
		style.Font = &excelize.Font{Bold: true}
	}
	if fill != "" {
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{fill}}
	}
	id, err := f.NewStyle(style)
	if err != nil {
		return wrap(x.Format(), "header style", err)
	}

	last, err := excelize.CoordinatesToCellName(len(doc.Headers), 1)
	if err != nil {
		return wrap(x.Format(), "cell name", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", last, id); err != nil {
		return wrap(x.Format(), "header style", err)
	}
	return nil
}

// styleColumn applies alignment and number format from a column hint to the data cells.
func (x *XLSX) styleColumn(f *excelize.File, doc *model.Document, col, first, last int) error {
	meta, ok := doc.Column(col)
	if !ok {
		return nil
	}

	style := &excelize.Style{Alignment: &excelize.Alignment{Horizontal: "left"}}
	if format, numeric := numFmts[meta.Type]; numeric {
		style.Alignment.Horizontal = "right"
		style.CustomNumFmt = &format
	}
	id, err := f.NewStyle(style)
	if err != nil {
		return wrap(x.Format(), "column style", err)
	}

	top, err := excelize.CoordinatesToCellName(col+1, first)
	if err != nil {
		return wrap(x.Format(), "cell name", err)
	}
	bottom, err := excelize.CoordinatesToCellName(col+1, last)
	if err != nil {
		return wrap(x.Format(), "cell name", err)
	}
	if err := f.SetCellStyle(sheetName, top, bottom, id); err != nil {
		return wrap(x.Format(), "column style", err)
	}
	return nil
}

// columnWidth resolves a column's width: explicit hint, then auto-fit, then the default.
func columnWidth(doc *model.Document, col int) float64 {
	if meta, ok := doc.Column(col); ok && meta.WidthHint != nil && *meta.WidthHint > 0 {
		return clampWidth(*meta.WidthHint)
	}
	if !doc.AutoFitColumns() {
		return DefaultColumnWidth
	}

	longest := 0
	if doc.IncludeHeaderRow() {
		longest = runewidth.StringWidth(doc.Headers[col])
	}
	for _, r := range doc.Rows {
		if w := runewidth.StringWidth(r[col]); w > longest {
			longest = w
		}
	}
	return clampWidth(float64(longest)*autoFitCharWidth + autoFitPadding)
}

func clampWidth(w float64) float64 {
	if w < minColumnWidth {
		return minColumnWidth
	}
	if w > maxColumnWidth {
		return maxColumnWidth
	}
	return w
}
