package encoder

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"exportapi/internal/model"
)

const pdfFont = "body"

// pdfEpoch pins the document creation date so identical input gives identical bytes.
var pdfEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// PDFConfig is the page geometry and typography of the paginated document.
// All lengths are millimetres, font sizes are points. Y grows downwards from the page top.
type PDFConfig struct {
	PageWidth  float64
	PageHeight float64

	MarginTop    float64
	MarginBottom float64
	MarginLeft   float64
	MarginRight  float64

	TitleSize      float64
	HeaderSize     float64
	BodySize       float64
	PageNumberSize float64
	LineHeight     float64

	TitleBottom      float64 // title baseline to header baseline
	HeaderLineOffset float64 // header baseline to separator rule
	HeaderToContent  float64 // header baseline to first row baseline
	CellPadding      float64
	PageNumberArea   float64 // reserved above the bottom margin for the footer
	ContentTopOffset float64 // below the top margin

	MinCharsPerCell int
	MaxCharsPerCell int

	// MaxRows caps how many data rows are rendered. Zero renders every row.
	// When the cap applies the document says so on its last page.
	MaxRows int

	// FontRegular and FontBold are TrueType data for body and bold text.
	// Empty values use the embedded DejaVu Sans faces.
	FontRegular []byte
	FontBold    []byte
}

// DefaultPDFConfig is an A4 portrait layout.
func DefaultPDFConfig() PDFConfig {
	return PDFConfig{
		PageWidth:        210,
		PageHeight:       297,
		MarginTop:        20,
		MarginBottom:     20,
		MarginLeft:       20,
		MarginRight:      20,
		TitleSize:        16,
		HeaderSize:       10,
		BodySize:         10,
		PageNumberSize:   8,
		LineHeight:       7,
		TitleBottom:      15,
		HeaderLineOffset: 4,
		HeaderToContent:  10,
		CellPadding:      2,
		PageNumberArea:   20,
		ContentTopOffset: 10,
		MinCharsPerCell:  5,
		MaxCharsPerCell:  50,
	}
}

func (c PDFConfig) contentWidth() float64 {
	return c.PageWidth - c.MarginLeft - c.MarginRight
}

func (c PDFConfig) contentTop() float64 {
	return c.MarginTop + c.ContentTopOffset
}

func (c PDFConfig) fonts() (regular, bold []byte) {
	regular, bold = c.FontRegular, c.FontBold
	if len(regular) == 0 {
		regular = defaultRegularFont
	}
	if len(bold) == 0 {
		bold = defaultBoldFont
	}
	return regular, bold
}

// bottomLimit is the lowest baseline a row may use before a new page starts.
func (c PDFConfig) bottomLimit() float64 {
	return c.PageHeight - c.MarginBottom - c.PageNumberArea
}

// placement is where one line of the document lands.
type placement struct {
	Page int
	Y    float64
}

// pdfLayout is the page plan for a document, computed before any drawing.
type pdfLayout struct {
	Title  placement
	Header *placement
	Rows   []placement // Rows[i] places doc.Rows[i]
	Note   *placement  // set when MaxRows truncated the rows
	Total  int
	Pages  int
}

// plan walks the document top to bottom with a cursor that advances one line
// per row and wraps to a fresh page past bottomLimit. The header is only drawn
// on the first page.
func (c PDFConfig) plan(doc *model.Document) pdfLayout {
	page, y := 1, c.contentTop()
	l := pdfLayout{Title: placement{Page: page, Y: y}, Total: len(doc.Rows)}
	y += c.TitleBottom

	if doc.IncludeHeaderRow() {
		l.Header = &placement{Page: page, Y: y}
		y += c.HeaderToContent
	}

	n := len(doc.Rows)
	if c.MaxRows > 0 && n > c.MaxRows {
		n = c.MaxRows
	}
	next := func() placement {
		if y > c.bottomLimit() {
			page++
			y = c.contentTop()
		}
		p := placement{Page: page, Y: y}
		y += c.LineHeight
		return p
	}

	l.Rows = make([]placement, n)
	for i := range l.Rows {
		l.Rows[i] = next()
	}
	if n < len(doc.Rows) {
		p := next()
		l.Note = &p
	}
	l.Pages = page
	return l
}

// columnWidths splits the content width evenly, or proportionally to the
// positive width hints. Columns without a hint get the mean of the given hints.
func (c PDFConfig) columnWidths(doc *model.Document) []float64 {
	n := len(doc.Headers)
	weights := make([]float64, n)
	var sum float64
	var hinted int
	for i := range weights {
		if col, ok := doc.Column(i); ok && col.WidthHint != nil && *col.WidthHint > 0 {
			weights[i] = *col.WidthHint
			sum += weights[i]
			hinted++
		}
	}

	fill := 1.0
	if hinted > 0 {
		fill = sum / float64(hinted)
	}
	sum = 0
	for i := range weights {
		if weights[i] == 0 {
			weights[i] = fill
		}
		sum += weights[i]
	}

	widths := make([]float64, n)
	for i, w := range weights {
		widths[i] = c.contentWidth() * w / sum
	}
	return widths
}

// PDF renders the document as a simple paginated table. Text is written with
// embedded UTF-8 TrueType fonts so non-Latin scripts keep their characters.
type PDF struct {
	cfg PDFConfig
}

func NewPDF(cfg PDFConfig) *PDF {
	return &PDF{cfg: cfg}
}

func (*PDF) Format() model.Format { return model.FormatPDF }

func (p *PDF) Encode(doc *model.Document) ([]byte, error) {
	cfg := p.cfg
	layout := cfg.plan(doc)
	widths := cfg.columnWidths(doc)

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: cfg.PageWidth, Ht: cfg.PageHeight},
	})
	regular, bold := cfg.fonts()
	if !isTrueType(regular) || !isTrueType(bold) {
		return nil, wrap(p.Format(), "load fonts", errNotTrueType)
	}
	pdf.AddUTF8FontFromBytes(pdfFont, "", regular)
	pdf.AddUTF8FontFromBytes(pdfFont, "B", bold)
	if err := pdf.Error(); err != nil {
		return nil, wrap(p.Format(), "load fonts", err)
	}

	pdf.SetCatalogSort(true)
	pdf.SetMargins(cfg.MarginLeft, cfg.MarginTop, cfg.MarginRight)
	pdf.SetAutoPageBreak(false, cfg.MarginBottom)
	pdf.SetCreationDate(pdfEpoch)
	pdf.SetModificationDate(pdfEpoch)
	pdf.SetCreator("exportapi", true)
	pdf.SetTitle(sanitize(doc.Title), true)

	pdf.SetFooterFunc(func() {
		pdf.SetFont(pdfFont, "", cfg.PageNumberSize)
		pdf.SetTextColor(0, 0, 0)
		pdf.Text(cfg.PageWidth/2-10, cfg.PageHeight-cfg.MarginBottom, fmt.Sprintf("Page %d", pdf.PageNo()))
	})

	current := 0
	gotoPage := func(page int) {
		for current < page {
			pdf.AddPage()
			current++
		}
	}

	gotoPage(layout.Title.Page)
	pdf.SetFont(pdfFont, "B", cfg.TitleSize)
	pdf.Text(cfg.MarginLeft, layout.Title.Y, sanitize(doc.Title))

	if layout.Header != nil {
		pdf.SetFont(pdfFont, "B", cfg.HeaderSize)
		x := cfg.MarginLeft
		for i, h := range doc.Headers {
			pdf.Text(x, layout.Header.Y, sanitize(h))
			x += widths[i]
		}
		ruleY := layout.Header.Y + cfg.HeaderLineOffset
		pdf.SetDrawColor(204, 204, 204)
		pdf.SetLineWidth(0.2)
		pdf.Line(cfg.MarginLeft, ruleY, cfg.PageWidth-cfg.MarginRight, ruleY)
	}

	rightAlign := make([]bool, len(doc.Headers))
	for i, h := range doc.Headers {
		if col, ok := doc.Column(i); ok {
			rightAlign[i] = col.Type.RightAligned()
		} else {
			rightAlign[i] = isNumericHeader(h)
		}
	}

	for i, pl := range layout.Rows {
		gotoPage(pl.Page)
		pdf.SetFont(pdfFont, "", cfg.BodySize)
		left := cfg.MarginLeft
		for col, cell := range doc.Rows[i] {
			limit := maxCharsForWidth(widths[col], cfg.BodySize, cfg.MinCharsPerCell, cfg.MaxCharsPerCell)
			text := sanitize(truncate(cell, limit))
			x := left
			if rightAlign[col] {
				x = left + widths[col] - pdf.GetStringWidth(text) - cfg.CellPadding
				if x < left {
					x = left
				}
			}
			pdf.Text(x, pl.Y, text)
			left += widths[col]
		}
	}

	if layout.Note != nil {
		gotoPage(layout.Note.Page)
		pdf.SetFont(pdfFont, "", cfg.BodySize)
		pdf.Text(cfg.MarginLeft, layout.Note.Y, fmt.Sprintf("Showing first %d of %d rows", len(layout.Rows), layout.Total))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, wrap(p.Format(), "write pdf", err)
	}
	return buf.Bytes(), nil
}
