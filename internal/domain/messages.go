package domain

import (
	"fmt"
	"strings"
)

// Messages shown to a user when parts of an outcome are absent.
const (
	MsgNoText     = "The uploaded PDF does not contain any extractable text."
	MsgNoAnswers  = "No answers for the questions"
	MsgNoMarkdown = "No Markdown data found in the response."
)

// Warnings lists the user-facing messages for whatever the outcome lacks.
// Unparseable answers still come with their raw text, so only an absent or
// empty JSON region warns. An empty table region counts as missing.
func (o *ExtractionOutcome) Warnings() []string {
	if o.Status() == OutcomeNone {
		return []string{MsgNoText}
	}
	var out []string
	if isBlank(o.StructuredRawText) {
		out = append(out, MsgNoAnswers)
	}
	if isBlank(o.PresentationTable) {
		out = append(out, MsgNoMarkdown)
	}
	return out
}

func isBlank(s *string) bool {
	return s == nil || *s == ""
}

// ExportFormat selects how an outcome is rendered for a caller.
type ExportFormat string

const (
	FormatJSON     ExportFormat = "json"
	FormatCSV      ExportFormat = "csv"
	FormatXLSX     ExportFormat = "xlsx"
	FormatMarkdown ExportFormat = "markdown"
)

// ParseExportFormat accepts a format name, case-insensitively. Empty means JSON.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatCSV, FormatXLSX, FormatMarkdown:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q; allowed: json, csv, xlsx, markdown", s)
	}
}
