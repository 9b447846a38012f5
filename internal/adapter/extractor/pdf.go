package extractor

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"study-deck/internal/domain"
	"study-deck/internal/logger"

	pdf "github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

const DefaultMaxPages = 20

// pageSource is the part of a parsed document the extractor reads from.
type pageSource interface {
	NumPage() int
	PageText(i int) (string, error)
}

type pdfDocument struct {
	r *pdf.Reader
}

func (d pdfDocument) NumPage() int { return d.r.NumPage() }

func (d pdfDocument) PageText(i int) (string, error) {
	p := d.r.Page(i)
	if p.V.IsNull() {
		return "", nil
	}
	return p.GetPlainText(nil)
}

// PDFExtractor reads plain text from the first MaxPages pages of a PDF.
type PDFExtractor struct {
	maxPages int
	open     func(data []byte) (pageSource, error)
}

func NewPDFExtractor(maxPages int) *PDFExtractor {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	return &PDFExtractor{maxPages: maxPages, open: openPDF}
}

func openPDF(data []byte) (pageSource, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("pdf reader: %w", err)
	}
	return pdfDocument{r: r}, nil
}

// Extract returns UNSUPPORTED_FORMAT for anything that is not a PDF and
// EXTRACTION_FAILED when a PDF cannot be parsed.
func (e *PDFExtractor) Extract(ctx context.Context, filename, contentType string, data []byte) (text string, err error) {
	if !claimsPDF(filename, contentType) && !hasPDFMagic(data) {
		return "", domain.NewUnsupportedFormatError(filename, contentType)
	}
	if !hasPDFMagic(data) {
		return "", domain.NewExtractionError(fmt.Errorf("file %s is missing the %%PDF header", filename))
	}

	// The parser panics on some malformed xref tables.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = domain.NewExtractionError(fmt.Errorf("pdf parse panic: %v", r))
		}
	}()

	doc, err := e.open(data)
	if err != nil {
		return "", domain.NewExtractionError(err)
	}
	text, err = e.readPages(ctx, doc)
	if err != nil {
		return "", err
	}

	logger.Get().Debug("Extracted PDF text",
		zap.String("filename", filename),
		zap.Int("pages", min(doc.NumPage(), e.maxPages)),
		zap.Int("chars", len(text)))
	return text, nil
}

// readPages joins per-page text with a trailing newline after each page.
func (e *PDFExtractor) readPages(ctx context.Context, doc pageSource) (string, error) {
	pages := min(doc.NumPage(), e.maxPages)
	var sb strings.Builder
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return "", domain.NewExtractionError(err)
		}
		pageText, err := doc.PageText(i)
		if err != nil {
			return "", domain.NewExtractionError(fmt.Errorf("page %d: %w", i, err))
		}
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func claimsPDF(filename, contentType string) bool {
	mt := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	return mt == "application/pdf" || strings.EqualFold(filepath.Ext(filename), ".pdf")
}

func hasPDFMagic(b []byte) bool {
	return len(b) >= 5 && string(b[:5]) == "%PDF-"
}
