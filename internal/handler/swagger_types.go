package handler

import (
	"encoding/json"

	"sbcanalyzer/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// AnalyzeObjectRequest represents the analyze-by-reference request body.
type AnalyzeObjectRequest struct {
	URI string `json:"uri" binding:"required" example:"s3://benefits-docs/2025/gold-ppo-sbc.pdf"`
}

// --- Response Types ---

// AnalysisResponse is the JSON rendering of one ExtractionOutcome.
type AnalysisResponse struct {
	Status            domain.OutcomeStatus    `json:"status" example:"full"`
	StructuredStatus  domain.StructuredStatus `json:"structured_status" example:"parsed"`
	StructuredData    json.RawMessage         `json:"structured_data" swaggertype:"array,object"`
	StructuredRawText *string                 `json:"structured_raw_text"`
	PresentationTable *string                 `json:"presentation_table" example:"| Question | Answer |\n|---|---|\n| Overall deductible | $500 |"`
	SchemaIssues      []string                `json:"schema_issues,omitempty"`
	Message           string                  `json:"message,omitempty" example:"No Markdown data found in the response."`
}

// QuestionsResponse lists the fixed questions asked of every SBC.
type QuestionsResponse struct {
	Questions      []string `json:"questions"`
	ExampleAnswers []string `json:"example_answers"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"generation backend not configured"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
