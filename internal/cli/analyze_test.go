package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"sbcanalyzer/internal/domain"
	"sbcanalyzer/internal/service"
	"sbcanalyzer/mocks"
)

func strPtr(s string) *string { return &s }

func sampleOutcome() *domain.ExtractionOutcome {
	raw := `[{"question":"Q","answer":"$500","document_source":"Deductible: $500","page_number_of_source":1}]`
	var data any
	_ = json.Unmarshal([]byte(raw), &data)
	return &domain.ExtractionOutcome{
		StructuredData:    data,
		StructuredRawText: strPtr(raw),
		PresentationTable: strPtr("| Q | A |\n|---|---|\n| Deductible | $500 |"),
		StructuredStatus:  domain.StructuredParsed,
	}
}

// setupAnalyzer installs a mock analyzer and resets the analyze flags.
func setupAnalyzer(t *testing.T) *mocks.MockAnalyzerService {
	t.Helper()
	m := new(mocks.MockAnalyzerService)
	prev := analyzer
	SetAnalyzer(m)
	analyzeFormat = "json"
	analyzeOutput = ""
	t.Cleanup(func() {
		analyzer = prev
		analyzeFormat = "json"
		analyzeOutput = ""
		rootCmd.SetArgs(nil)
	})
	return m
}

func execute(args ...string) (stdout, stderr string, err error) {
	out := new(bytes.Buffer)
	errBuf := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errBuf)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), errBuf.String(), err
}

func writePDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n"), 0o600))
	return path
}

func TestAnalyzeCmd_RequiresExactlyOneArg(t *testing.T) {
	setupAnalyzer(t)

	_, _, err := execute("analyze")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestAnalyzeCmd_HasFormatFlag(t *testing.T) {
	flag := analyzeCmd.Flags().Lookup("format")
	require.NotNil(t, flag)
	assert.Equal(t, "f", flag.Shorthand)
	assert.Equal(t, "json", flag.DefValue)
}

func TestAnalyzeCmd_LocalFileJSON(t *testing.T) {
	m := setupAnalyzer(t)
	path := writePDF(t)
	m.On("AnalyzeUpload", mock.Anything, mock.MatchedBy(func(in service.UploadInput) bool {
		return in.FileName == "plan.pdf" && in.Size == int64(len("%PDF-1.4\n"))
	})).Return(sampleOutcome(), nil)

	stdout, stderr, err := execute("analyze", path)

	require.NoError(t, err)
	assert.Empty(t, stderr)
	var resp map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "full", resp["status"])
	assert.Equal(t, "parsed", resp["structured_status"])
	m.AssertExpectations(t)
}

func TestAnalyzeCmd_ObjectURI(t *testing.T) {
	m := setupAnalyzer(t)
	m.On("AnalyzeObject", mock.Anything, "s3://plans/2025/sbc.pdf").Return(sampleOutcome(), nil)

	stdout, _, err := execute("analyze", "--format", "markdown", "s3://plans/2025/sbc.pdf")

	require.NoError(t, err)
	assert.Contains(t, stdout, "| Deductible | $500 |")
	m.AssertNotCalled(t, "AnalyzeUpload", mock.Anything, mock.Anything)
}

func TestAnalyzeCmd_CSV(t *testing.T) {
	m := setupAnalyzer(t)
	m.On("AnalyzeObject", mock.Anything, "s3://plans/sbc.pdf").Return(sampleOutcome(), nil)

	stdout, _, err := execute("analyze", "-f", "csv", "s3://plans/sbc.pdf")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Question,Answer,Document Source,Page Number")
	assert.Contains(t, stdout, "Q,$500,Deductible: $500,1")
}

func TestAnalyzeCmd_WarningsOnEmptyOutcome(t *testing.T) {
	m := setupAnalyzer(t)
	m.On("AnalyzeObject", mock.Anything, "s3://plans/scan.pdf").Return(domain.EmptyOutcome(), nil)

	_, stderr, err := execute("analyze", "s3://plans/scan.pdf")

	require.NoError(t, err)
	assert.Contains(t, stderr, "warning: "+domain.MsgNoText)
}

func TestAnalyzeCmd_MarkdownMissingPrintsNothing(t *testing.T) {
	m := setupAnalyzer(t)
	outcome := sampleOutcome()
	outcome.PresentationTable = nil
	m.On("AnalyzeObject", mock.Anything, "s3://plans/sbc.pdf").Return(outcome, nil)

	stdout, stderr, err := execute("analyze", "-f", "markdown", "s3://plans/sbc.pdf")

	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, domain.MsgNoMarkdown)
}

func TestAnalyzeCmd_WritesOutputFile(t *testing.T) {
	m := setupAnalyzer(t)
	m.On("AnalyzeObject", mock.Anything, "s3://plans/sbc.pdf").Return(sampleOutcome(), nil)
	dest := filepath.Join(t.TempDir(), "answers.xlsx")

	stdout, stderr, err := execute("analyze", "-f", "xlsx", "-o", dest, "s3://plans/sbc.pdf")

	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "wrote "+dest)
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, []byte("PK"), data[:2])
}

func TestAnalyzeCmd_XLSXNeedsOutput(t *testing.T) {
	setupAnalyzer(t)

	_, _, err := execute("analyze", "-f", "xlsx", "s3://plans/sbc.pdf")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output")
}

func TestAnalyzeCmd_InvalidFormat(t *testing.T) {
	setupAnalyzer(t)

	_, _, err := execute("analyze", "-f", "yaml", "s3://plans/sbc.pdf")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestAnalyzeCmd_MissingFile(t *testing.T) {
	setupAnalyzer(t)

	_, _, err := execute("analyze", filepath.Join(t.TempDir(), "nope.pdf"))

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAnalyzeCmd_ServiceError(t *testing.T) {
	m := setupAnalyzer(t)
	m.On("AnalyzeObject", mock.Anything, "s3://plans/sbc.pdf").Return(nil, domain.ErrBackendFailure)

	_, _, err := execute("analyze", "s3://plans/sbc.pdf")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrBackendFailure)
	assert.Contains(t, err.Error(), "analysis failed")
}

func TestAnalyzeCmd_NoAnalyzer(t *testing.T) {
	setupAnalyzer(t)
	analyzer = nil

	_, _, err := execute("analyze", "s3://plans/sbc.pdf")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "analyzer not configured")
}

func TestAnalyzeCmd_MalformedAnswersPrintRawText(t *testing.T) {
	m := setupAnalyzer(t)
	outcome := sampleOutcome()
	outcome.StructuredData = nil
	outcome.StructuredRawText = strPtr(`[{"answer":"$5`)
	outcome.StructuredStatus = domain.StructuredMalformed
	m.On("AnalyzeObject", mock.Anything, "s3://plans/sbc.pdf").Return(outcome, nil)

	stdout, stderr, err := execute("analyze", "s3://plans/sbc.pdf")

	require.NoError(t, err)
	assert.NotContains(t, stderr, domain.MsgNoAnswers)
	assert.Contains(t, stdout, `"structured_status": "malformed"`)
}
