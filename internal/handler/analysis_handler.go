package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"sbcanalyzer/internal/csvexport"
	"sbcanalyzer/internal/domain"
	"sbcanalyzer/internal/prompt"
	"sbcanalyzer/internal/service"
	"sbcanalyzer/internal/xlsxexport"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AnalysisHandler handles SBC analysis endpoints.
type AnalysisHandler struct {
	analyzer service.AnalyzerService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analyzer service.AnalyzerService) *AnalysisHandler {
	return &AnalysisHandler{analyzer: analyzer}
}

// Questions handles GET /api/v1/questions
// @Summary List the benefit questions
// @Description Returns the fixed questions asked of every SBC together with the example answers given to the model.
// @Tags analyses
// @Produce json
// @Success 200 {object} Response{data=QuestionsResponse}
// @Router /questions [get]
func (h *AnalysisHandler) Questions(c *gin.Context) {
	RespondOK(c, QuestionsResponse{
		Questions:      prompt.Questions(),
		ExampleAnswers: prompt.ExampleAnswers(),
	})
}

// Analyze handles POST /api/v1/analyses
// @Summary Analyze an uploaded SBC
// @Description Upload a Summary of Benefits and Coverage PDF and get the answers to the benefit questions.
// @Tags analyses
// @Accept multipart/form-data
// @Produce json,text/csv,text/markdown,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param file formData file true "SBC document (PDF)"
// @Param format query string false "Output format" Enums(json, csv, xlsx, markdown) default(json)
// @Success 200 {object} Response{data=AnalysisResponse}
// @Failure 400 {object} ErrorResponseBody "Missing file, bad format or unsupported type"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 422 {object} ErrorResponseBody "PDF text could not be decoded"
// @Failure 429 {object} ErrorResponseBody "Backend rate limited"
// @Failure 502 {object} ErrorResponseBody "Backend failure"
// @Router /analyses [post]
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	format, ok := parseFormat(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	outcome, err := h.analyzer.AnalyzeUpload(c.Request.Context(), service.UploadInput{
		FileName: header.Filename,
		Size:     header.Size,
		File:     file,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	h.render(c, format, header.Filename, outcome)
}

// AnalyzeObject handles POST /api/v1/analyses/object
// @Summary Analyze an SBC stored in S3
// @Tags analyses
// @Accept json
// @Produce json,text/csv,text/markdown,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param request body AnalyzeObjectRequest true "Object reference"
// @Param format query string false "Output format" Enums(json, csv, xlsx, markdown) default(json)
// @Success 200 {object} Response{data=AnalysisResponse}
// @Failure 400 {object} ErrorResponseBody "Invalid request or uri"
// @Failure 422 {object} ErrorResponseBody "PDF text could not be decoded"
// @Failure 429 {object} ErrorResponseBody "Backend rate limited"
// @Failure 501 {object} ErrorResponseBody "Object storage not configured"
// @Failure 502 {object} ErrorResponseBody "Backend failure"
// @Router /analyses/object [post]
func (h *AnalysisHandler) AnalyzeObject(c *gin.Context) {
	format, ok := parseFormat(c)
	if !ok {
		return
	}

	var req AnalyzeObjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "uri is required")
		return
	}

	outcome, err := h.analyzer.AnalyzeObject(c.Request.Context(), req.URI)
	if err != nil {
		HandleError(c, err)
		return
	}

	h.render(c, format, path.Base(req.URI), outcome)
}

// NewAnalysisResponse converts an outcome to its JSON rendering.
func NewAnalysisResponse(outcome *domain.ExtractionOutcome) AnalysisResponse {
	return AnalysisResponse{
		Status:            outcome.Status(),
		StructuredStatus:  outcome.StructuredStatus,
		StructuredData:    outcome.StructuredJSON(),
		StructuredRawText: outcome.StructuredRawText,
		PresentationTable: outcome.PresentationTable,
		SchemaIssues:      outcome.SchemaIssues,
		Message:           strings.Join(outcome.Warnings(), " "),
	}
}

func (h *AnalysisHandler) render(c *gin.Context, format domain.ExportFormat, sourceName string, outcome *domain.ExtractionOutcome) {
	switch format {
	case domain.FormatCSV:
		var buf bytes.Buffer
		if err := csvexport.WriteOutcome(&buf, outcome); err != nil {
			HandleError(c, fmt.Errorf("rendering csv: %w", err))
			return
		}
		attach(c, csvexport.BuildFilename(sourceName, "csv"))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())

	case domain.FormatXLSX:
		var buf bytes.Buffer
		if err := xlsxexport.Write(&buf, outcome); err != nil {
			HandleError(c, fmt.Errorf("rendering xlsx: %w", err))
			return
		}
		attach(c, csvexport.BuildFilename(sourceName, "xlsx"))
		c.Data(http.StatusOK, xlsxContentType, buf.Bytes())

	case domain.FormatMarkdown:
		if outcome.PresentationTable == nil || *outcome.PresentationTable == "" {
			RespondError(c, http.StatusUnprocessableEntity, "MARKDOWN_MISSING", domain.MsgNoMarkdown)
			return
		}
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(*outcome.PresentationTable))

	default:
		RespondOK(c, NewAnalysisResponse(outcome))
	}
}

func parseFormat(c *gin.Context) (domain.ExportFormat, bool) {
	format, err := domain.ParseExportFormat(c.Query("format"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", err.Error())
		return "", false
	}
	return format, true
}

func attach(c *gin.Context, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
}
