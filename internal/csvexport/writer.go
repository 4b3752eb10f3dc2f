package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"sbcanalyzer/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Question",
	"Answer",
	"Document Source",
	"Page Number",
}

// Writer wraps csv.Writer for exporting answer records as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRecords writes one row per answer record.
func (w *Writer) WriteRecords(records []domain.AnswerRecord) error {
	for i := range records {
		if err := w.csv.Write(recordToRow(&records[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// WriteOutcome writes BOM, header and every record of the outcome to out.
// An outcome without usable structured data yields a header-only file.
func WriteOutcome(out io.Writer, outcome *domain.ExtractionOutcome) error {
	if _, err := out.Write(BOM); err != nil {
		return err
	}
	w := NewWriter(out)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	if records, ok := outcome.Records(); ok {
		if err := w.WriteRecords(records); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func recordToRow(r *domain.AnswerRecord) []string {
	page := ""
	if r.PageNumberOfSource > 0 {
		page = strconv.Itoa(r.PageNumberOfSource)
	}
	return []string{r.Question, r.Answer, r.DocumentSource, page}
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename turns an uploaded file name into a safe Content-Disposition
// stem. The extension is dropped and the result is truncated to 100 chars.
func SanitizeFilename(name string) string {
	name = strings.TrimSuffix(name, filepath.Ext(name))
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "sbc"
	}
	return s
}

// BuildFilename returns "{stem}_answers_{YYYY-MM-DD}.{ext}".
func BuildFilename(sourceName, ext string) string {
	return fmt.Sprintf("%s_answers_%s.%s", SanitizeFilename(sourceName), time.Now().Format("2006-01-02"), ext)
}
