package domain

import "errors"

var (
	ErrDecodeFailure        = errors.New("document text could not be decoded")
	ErrBackendFailure       = errors.New("generation backend failed")
	ErrUnsupportedFileType  = errors.New("unsupported file type")
	ErrFileTooLarge         = errors.New("file exceeds maximum allowed size")
	ErrInvalidObjectURI     = errors.New("invalid object uri")
	ErrStorageNotConfigured = errors.New("object storage is not configured")
	ErrInvalidOptions       = errors.New("invalid generation options")
)
