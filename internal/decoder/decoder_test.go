package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextPlainText(t *testing.T) {
	text, err := ExtractText([]byte("Sangeeth Perera\nSoftware Engineer"), ".txt")
	require.NoError(t, err)
	assert.Equal(t, "Sangeeth Perera\nSoftware Engineer", text)
}

func TestExtractTextExtensionNormalization(t *testing.T) {
	for _, ext := range []string{".txt", "txt", ".TXT", "TXT"} {
		_, err := ExtractText([]byte("hello"), ext)
		assert.NoError(t, err, "ext %q", ext)
	}
}

func TestExtractTextUnsupportedFormat(t *testing.T) {
	_, err := ExtractText([]byte("data"), ".odt")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = ExtractText([]byte("data"), ".png")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExtractTextCorruptPDF(t *testing.T) {
	_, err := ExtractText([]byte("this is not a pdf"), ".pdf")
	assert.ErrorIs(t, err, ErrReadError)
}

func TestExtractTextCorruptDocx(t *testing.T) {
	_, err := ExtractText([]byte("this is not a zip archive"), ".docx")
	assert.ErrorIs(t, err, ErrReadError)
}

func TestDocxExtractorStripsMarkup(t *testing.T) {
	content := `<w:p><w:r><w:t>Sangeeth Perera</w:t></w:r></w:p><w:p><w:r><w:t>Engineer &amp; Designer</w:t></w:r></w:p>`
	stripped := docxTagRe.ReplaceAllString(docxParaRe.ReplaceAllString(content, "\n"), "")
	assert.Equal(t, "Sangeeth Perera\nEngineer & Designer\n", docxEntity.Replace(stripped))
}
