package encoder

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "..."

// sanitize folds typographic punctuation to ASCII and turns control characters
// into spaces. Runes outside the Basic Multilingual Plane become '?' since PDF
// text is written as two-byte glyph codes.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '“', '”':
			return '"'
		case '‘', '’':
			return '\''
		case '–', '—':
			return '-'
		case '…':
			return '.'
		}
		if r <= unicode.MaxASCII && unicode.IsControl(r) {
			return ' '
		}
		if r > 0xFFFF {
			return '?'
		}
		return r
	}, s)
}

// truncate shortens s to at most max display columns, cutting at a word
// boundary and appending an ellipsis. A first word longer than the budget is
// cut mid-word.
func truncate(s string, max int) string {
	if runewidth.StringWidth(s) <= max {
		return s
	}
	if max <= len(ellipsis) {
		return runewidth.Truncate(s, max, "")
	}

	budget := max - len(ellipsis)
	var b strings.Builder
	for _, word := range strings.Fields(s) {
		next := word
		if b.Len() > 0 {
			next = " " + word
		}
		if runewidth.StringWidth(b.String())+runewidth.StringWidth(next) > budget {
			break
		}
		b.WriteString(next)
	}
	if b.Len() == 0 {
		return runewidth.Truncate(s, max, ellipsis)
	}
	return b.String() + ellipsis
}

// maxCharsForWidth estimates how many characters of the given font size fit a
// column of widthMM millimetres, clamped to [minChars, maxChars].
func maxCharsForWidth(widthMM, fontSize float64, minChars, maxChars int) int {
	const ptPerMM = 2.83465
	n := int(widthMM * ptPerMM / (fontSize * 0.6))
	if n < minChars {
		return minChars
	}
	if n > maxChars {
		return maxChars
	}
	return n
}

var numericHeaderKeywords = []string{
	"amount", "total", "sum", "count", "qty", "quantity",
	"price", "cost", "rate", "value", "number", "num", "#",
	"balance", "credit", "debit", "fee", "tax", "discount",
	"percent", "%", "score", "points", "weight", "height",
	"width", "length", "size", "age", "year", "month", "day",
	"จำนวน", "ราคา", "รวม", "ยอด", "เงิน", "บาท",
}

// isNumericHeader guesses whether a column holds numbers from its header text.
// Used only when the request carries no column hint.
func isNumericHeader(h string) bool {
	lower := strings.ToLower(h)
	for _, kw := range numericHeaderKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
