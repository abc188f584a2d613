package encoder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFConfig_LoadFonts(t *testing.T) {
	dir := t.TempDir()
	regular := filepath.Join(dir, "thai-regular.ttf")
	require.NoError(t, os.WriteFile(regular, defaultBoldFont, 0o600))

	t.Run("empty paths keep embedded fonts", func(t *testing.T) {
		cfg := DefaultPDFConfig()
		require.NoError(t, cfg.LoadFonts("", ""))

		r, b := cfg.fonts()
		assert.Equal(t, defaultRegularFont, r)
		assert.Equal(t, defaultBoldFont, b)
	})

	t.Run("file replaces one weight", func(t *testing.T) {
		cfg := DefaultPDFConfig()
		require.NoError(t, cfg.LoadFonts(regular, ""))

		r, b := cfg.fonts()
		assert.Equal(t, defaultBoldFont, r)
		assert.Equal(t, defaultBoldFont, b)

		out, err := NewPDF(cfg).Encode(pdfDoc(2))
		require.NoError(t, err)
		assert.NotEmpty(t, out)
	})

	t.Run("not a font", func(t *testing.T) {
		bad := filepath.Join(dir, "notes.txt")
		require.NoError(t, os.WriteFile(bad, []byte("definitely not a font file"), 0o600))

		cfg := DefaultPDFConfig()
		err := cfg.LoadFonts(bad, "")

		assert.ErrorIs(t, err, errNotTrueType)
		assert.Nil(t, cfg.FontRegular)
	})

	t.Run("missing file", func(t *testing.T) {
		cfg := DefaultPDFConfig()
		err := cfg.LoadFonts("", filepath.Join(dir, "missing.ttf"))

		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
		assert.Nil(t, cfg.FontBold)
	})
}
