// Package decoder turns uploaded CV files into plain text for the
// extraction pipeline.
package decoder

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

var (
	// ErrUnsupportedFormat is returned for file types the decoder does
	// not understand.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrReadError is returned when a supported file cannot be decoded.
	ErrReadError = errors.New("document could not be read")
)

// TextExtractor decodes one document format into plain text.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// ExtractText decodes a CV file by extension. The extension is matched
// case-insensitively with or without the leading dot.
func ExtractText(data []byte, fileExt string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(fileExt, "."))
	switch ext {
	case "txt":
		return string(data), nil
	case "pdf":
		return (PDFExtractor{}).ExtractText(data)
	case "docx", "doc":
		return (DocxExtractor{}).ExtractText(data)
	default:
		return "", fmt.Errorf("%w: .%s", ErrUnsupportedFormat, ext)
	}
}

// PDFExtractor reads PDF files page by page.
type PDFExtractor struct{}

// ExtractText concatenates the plain text of every page. Pages whose
// text cannot be decoded are skipped rather than failing the document.
func (PDFExtractor) ExtractText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: parsing pdf: %v", ErrReadError, err)
	}

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}

// DocxExtractor reads Word documents.
type DocxExtractor struct{}

var (
	docxParaRe = regexp.MustCompile(`</w:p>`)
	docxTagRe  = regexp.MustCompile(`<[^>]+>`)
	docxEntity = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'")
)

// ExtractText pulls the document body text out of the DOCX XML,
// treating paragraph ends as line breaks.
func (DocxExtractor) ExtractText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: parsing docx: %v", ErrReadError, err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = docxParaRe.ReplaceAllString(content, "\n")
	content = docxTagRe.ReplaceAllString(content, "")
	return docxEntity.Replace(content), nil
}
