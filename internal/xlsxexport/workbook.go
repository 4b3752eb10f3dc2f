// Package xlsxexport renders an ExtractionOutcome as an Excel workbook.
package xlsxexport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"sbcanalyzer/internal/domain"
)

const (
	AnswersSheet = "Answers"
	SummarySheet = "Summary"
)

var header = []any{"Question", "Answer", "Document Source", "Page Number"}

// Build creates a workbook with an Answers sheet (one row per record) and a
// Summary sheet holding the outcome status and the presentation table.
func Build(outcome *domain.ExtractionOutcome) (*excelize.File, error) {
	f := excelize.NewFile()

	// NewFile starts with "Sheet1".
	if err := f.SetSheetName(f.GetSheetName(0), AnswersSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}
	if err := writeAnswers(f, outcome); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := writeSummary(f, outcome); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

// Write builds the workbook and streams it to w.
func Write(w io.Writer, outcome *domain.ExtractionOutcome) error {
	f, err := Build(outcome)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeAnswers(f *excelize.File, outcome *domain.ExtractionOutcome) error {
	if err := f.SetSheetRow(AnswersSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	records, _ := outcome.Records()
	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{r.Question, r.Answer, r.DocumentSource, nil}
		if r.PageNumberOfSource > 0 {
			row[3] = r.PageNumberOfSource
		}
		if err := f.SetSheetRow(AnswersSheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(AnswersSheet, "A", "A", 50)
	_ = f.SetColWidth(AnswersSheet, "B", "B", 25)
	_ = f.SetColWidth(AnswersSheet, "C", "C", 60)
	return nil
}

func writeSummary(f *excelize.File, outcome *domain.ExtractionOutcome) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}

	table := ""
	if outcome.PresentationTable != nil {
		table = *outcome.PresentationTable
	}
	rows := [][]any{
		{"Status", string(outcome.Status())},
		{"Structured Status", string(outcome.StructuredStatus)},
		{"Schema Issues", len(outcome.SchemaIssues)},
		{"Presentation Table", table},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return fmt.Errorf("writing summary row %d: %w", i+1, err)
		}
	}
	_ = f.SetColWidth(SummarySheet, "A", "A", 20)
	_ = f.SetColWidth(SummarySheet, "B", "B", 100)
	return nil
}
