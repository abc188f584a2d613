package encoder

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
)

// DejaVu Sans covers Latin, Greek, Cyrillic and most European scripts. Scripts
// outside it, Thai included, need a TTF supplied through PDFConfig.
var (
	//go:embed fonts/DejaVuSans.ttf
	defaultRegularFont []byte

	//go:embed fonts/DejaVuSans-Bold.ttf
	defaultBoldFont []byte
)

var errNotTrueType = errors.New("not a TrueType font")

// isTrueType checks the sfnt version tag. fpdf only reports a bad font later,
// as an undefined font.
func isTrueType(b []byte) bool {
	return len(b) >= 12 && (bytes.HasPrefix(b, []byte{0, 1, 0, 0}) || bytes.HasPrefix(b, []byte("true")))
}

// LoadFonts reads TrueType files into the config. An empty path keeps the
// embedded face for that weight.
func (c *PDFConfig) LoadFonts(regularPath, boldPath string) error {
	for _, f := range []struct {
		path string
		dst  *[]byte
	}{
		{regularPath, &c.FontRegular},
		{boldPath, &c.FontBold},
	} {
		if f.path == "" {
			continue
		}
		data, err := os.ReadFile(f.path)
		if err != nil {
			return fmt.Errorf("read font %s: %w", f.path, err)
		}
		if !isTrueType(data) {
			return fmt.Errorf("read font %s: %w", f.path, errNotTrueType)
		}
		*f.dst = data
	}
	return nil
}
