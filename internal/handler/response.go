package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sbcanalyzer/internal/domain"
	"sbcanalyzer/internal/generation"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var rle *generation.RateLimitError
	switch {
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrDecodeFailure):
		return http.StatusUnprocessableEntity, "DECODE_FAILURE", "document text could not be extracted"
	case errors.Is(err, domain.ErrInvalidObjectURI):
		return http.StatusBadRequest, "INVALID_OBJECT_URI", "uri must have the form s3://bucket/key"
	case errors.Is(err, domain.ErrStorageNotConfigured):
		return http.StatusNotImplemented, "STORAGE_NOT_CONFIGURED", "object storage is not configured on this server"
	case errors.As(err, &rle):
		return http.StatusTooManyRequests, "RATE_LIMITED", "generation backend is rate limited; retry later"
	case errors.Is(err, domain.ErrBackendFailure):
		return http.StatusBadGateway, "BACKEND_FAILURE", "generation backend failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)

	var rle *generation.RateLimitError
	if errors.As(err, &rle) {
		c.Header("Retry-After", strconv.Itoa(int(rle.RetryAfter.Seconds())))
	}

	if status >= 500 {
		requestID, _ := c.Get("request_id")
		zap.L().Error("request failed",
			zap.Any("request_id", requestID),
			zap.Int("status", status),
			zap.Error(err),
		)
	}
	RespondError(c, status, code, msg)
}
