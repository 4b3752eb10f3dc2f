// Package pdfdoc exposes an in-memory PDF as a port.Document.
//
// Text comes from ledongthuc/pdf, a pure Go reader, so no CGO or poppler
// install is needed to run the analyzer.
package pdfdoc

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"

	"sbcanalyzer/internal/domain"
)

// Document is a decoded PDF. It implements port.Document.
type Document struct {
	reader *pdf.Reader
	pages  int
}

// Open decodes a PDF held in memory.
func Open(data []byte) (doc *Document, err error) {
	if !IsPDF(data) {
		return nil, fmt.Errorf("%w: missing %%PDF- header", domain.ErrDecodeFailure)
	}

	// The reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("%w: opening pdf: %v", domain.ErrDecodeFailure, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: opening pdf: %v", domain.ErrDecodeFailure, err)
	}
	return &Document{reader: reader, pages: reader.NumPage()}, nil
}

// PageCount returns the number of pages in the PDF.
func (d *Document) PageCount() int {
	return d.pages
}

// PageText returns the plain text of page i (0-based). Pages without a
// content object yield "".
func (d *Document) PageText(i int) (text string, err error) {
	if i < 0 || i >= d.pages {
		return "", fmt.Errorf("%w: page %d out of range [0,%d)", domain.ErrDecodeFailure, i, d.pages)
	}

	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: page %d: %v", domain.ErrDecodeFailure, i, r)
		}
	}()

	page := d.reader.Page(i + 1)
	if page.V.IsNull() {
		return "", nil
	}
	text, err = page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("%w: page %d: %v", domain.ErrDecodeFailure, i, err)
	}
	return text, nil
}

// IsPDF checks the magic bytes at the start of data.
func IsPDF(data []byte) bool {
	return len(data) >= 5 && string(data[:5]) == "%PDF-"
}
