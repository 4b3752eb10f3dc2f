package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sbcanalyzer/internal/csvexport"
	"sbcanalyzer/internal/domain"
	"sbcanalyzer/internal/handler"
	"sbcanalyzer/internal/service"
	"sbcanalyzer/internal/xlsxexport"
)

var (
	analyzeFormat string
	analyzeOutput string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.pdf|s3://bucket/key>",
	Short: "Analyze an SBC document",
	Long: `Extracts the text of an SBC, asks the configured model the benefit
questions and prints the answers. Missing parts of the reply are reported
as warnings on stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "json", "output format: json, markdown, csv or xlsx")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "write to this file instead of stdout")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzer == nil {
		return errors.New("analyzer not configured")
	}

	format, err := domain.ParseExportFormat(analyzeFormat)
	if err != nil {
		return err
	}
	if format == domain.FormatXLSX && analyzeOutput == "" {
		return errors.New("xlsx output needs --output")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	outcome, err := analyzeSource(ctx, args[0])
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	for _, w := range outcome.Warnings() {
		cmd.PrintErrln("warning: " + w)
	}

	var buf bytes.Buffer
	if err := render(&buf, format, outcome); err != nil {
		return err
	}
	if buf.Len() == 0 {
		return nil
	}

	if analyzeOutput == "" {
		_, err = cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(analyzeOutput, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", analyzeOutput, err)
	}
	cmd.PrintErrf("wrote %s\n", analyzeOutput)
	return nil
}

func analyzeSource(ctx context.Context, source string) (*domain.ExtractionOutcome, error) {
	if domain.IsObjectURI(source) {
		return analyzer.AnalyzeObject(ctx, source)
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return analyzer.AnalyzeUpload(ctx, service.UploadInput{
		FileName: filepath.Base(source),
		Size:     info.Size(),
		File:     f,
	})
}

func render(w io.Writer, format domain.ExportFormat, outcome *domain.ExtractionOutcome) error {
	switch format {
	case domain.FormatCSV:
		return csvexport.WriteOutcome(w, outcome)
	case domain.FormatXLSX:
		return xlsxexport.Write(w, outcome)
	case domain.FormatMarkdown:
		if outcome.PresentationTable != nil && *outcome.PresentationTable != "" {
			_, err := fmt.Fprintln(w, *outcome.PresentationTable)
			return err
		}
		return nil
	default:
		data, err := json.MarshalIndent(handler.NewAnalysisResponse(outcome), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal outcome: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
}
