package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"sbcanalyzer/internal/domain"
	"sbcanalyzer/internal/extract"
	"sbcanalyzer/internal/flatten"
	"sbcanalyzer/internal/generation"
	"sbcanalyzer/internal/metrics"
	"sbcanalyzer/internal/pdfdoc"
	"sbcanalyzer/internal/port"
	"sbcanalyzer/internal/prompt"
)

// UploadInput is the DTO for an uploaded SBC.
type UploadInput struct {
	FileName string
	Size     int64
	File     io.Reader
}

// AnalyzerService answers the fixed benefit questions for one SBC at a time.
type AnalyzerService interface {
	Analyze(ctx context.Context, doc port.Document) (*domain.ExtractionOutcome, error)
	AnalyzePDF(ctx context.Context, data []byte) (*domain.ExtractionOutcome, error)
	AnalyzeUpload(ctx context.Context, input UploadInput) (*domain.ExtractionOutcome, error)
	AnalyzeObject(ctx context.Context, uri string) (*domain.ExtractionOutcome, error)
}

type analyzerService struct {
	builder   *prompt.Builder
	invoker   *generation.Invoker
	extractor *extract.Extractor
	storage   port.ObjectStorage
	maxBytes  int64
	logger    *zap.Logger
}

// NewAnalyzerService creates a new AnalyzerService implementation. storage may
// be nil, in which case AnalyzeObject fails with ErrStorageNotConfigured. A nil
// invoker still answers for text-less documents and fails everything else
// with ErrBackendFailure.
// maxBytes bounds uploads; 0 disables the check.
func NewAnalyzerService(
	builder *prompt.Builder,
	invoker *generation.Invoker,
	extractor *extract.Extractor,
	storage port.ObjectStorage,
	maxBytes int64,
	logger *zap.Logger,
) AnalyzerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &analyzerService{
		builder:   builder,
		invoker:   invoker,
		extractor: extractor,
		storage:   storage,
		maxBytes:  maxBytes,
		logger:    logger,
	}
}

func (s *analyzerService) Analyze(ctx context.Context, doc port.Document) (*domain.ExtractionOutcome, error) {
	text, err := flatten.Flatten(doc)
	if err != nil {
		s.fail("decode", err)
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		s.logger.Info("analyzerService.Analyze: document has no extractable text",
			zap.Int("pages", doc.PageCount()))
		out := domain.EmptyOutcome()
		metrics.AnalysesTotal.WithLabelValues(string(out.Status())).Inc()
		return out, nil
	}

	if s.invoker == nil {
		err := fmt.Errorf("%w: no generation client configured", domain.ErrBackendFailure)
		s.fail("backend", err)
		return nil, err
	}

	s.logger.Info("analyzerService.Analyze: invoking backend",
		zap.Int("pages", doc.PageCount()), zap.Int("text_len", len(text)))

	_, reply, err := s.invoker.Invoke(ctx, s.builder.Build(text))
	if err != nil {
		reason := "backend"
		var rle *generation.RateLimitError
		if errors.As(err, &rle) {
			reason = "rate_limited"
		}
		s.fail(reason, err)
		return nil, err
	}

	out := s.extractor.Extract(reply)
	metrics.AnalysesTotal.WithLabelValues(string(out.Status())).Inc()
	s.logger.Info("analyzerService.Analyze: done",
		zap.String("status", string(out.Status())),
		zap.String("structured_status", string(out.StructuredStatus)))
	return out, nil
}

func (s *analyzerService) AnalyzePDF(ctx context.Context, data []byte) (*domain.ExtractionOutcome, error) {
	doc, err := pdfdoc.Open(data)
	if err != nil {
		s.fail("decode", err)
		return nil, err
	}
	return s.Analyze(ctx, doc)
}

func (s *analyzerService) AnalyzeUpload(ctx context.Context, input UploadInput) (*domain.ExtractionOutcome, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.FileName), "."))
	if _, ok := domain.AllowedExtensions[ext]; !ok {
		s.fail("unsupported_type", domain.ErrUnsupportedFileType)
		return nil, domain.ErrUnsupportedFileType
	}
	if s.maxBytes > 0 && input.Size > s.maxBytes {
		s.fail("too_large", domain.ErrFileTooLarge)
		return nil, domain.ErrFileTooLarge
	}

	var r io.Reader = input.File
	if s.maxBytes > 0 {
		r = io.LimitReader(input.File, s.maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		s.fail("too_large", domain.ErrFileTooLarge)
		return nil, domain.ErrFileTooLarge
	}

	// Magic-byte check, the extension alone is not trusted.
	if http.DetectContentType(data) != domain.ContentTypePDF {
		s.fail("unsupported_type", domain.ErrUnsupportedFileType)
		return nil, domain.ErrUnsupportedFileType
	}

	s.logger.Info("analyzerService.AnalyzeUpload: analyzing upload",
		zap.String("file", input.FileName), zap.Int("bytes", len(data)))
	return s.AnalyzePDF(ctx, data)
}

func (s *analyzerService) AnalyzeObject(ctx context.Context, uri string) (*domain.ExtractionOutcome, error) {
	ref, err := domain.ParseObjectURI(uri)
	if err != nil {
		s.fail("invalid_uri", err)
		return nil, err
	}
	if s.storage == nil {
		s.fail("no_storage", domain.ErrStorageNotConfigured)
		return nil, domain.ErrStorageNotConfigured
	}

	s.logger.Info("analyzerService.AnalyzeObject: downloading", zap.Stringer("object", ref))
	data, err := s.storage.Download(ctx, ref.Bucket, ref.Key)
	if err != nil {
		s.fail("download", err)
		if errors.Is(err, domain.ErrFileTooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("downloading %s: %w", ref, err)
	}
	return s.AnalyzePDF(ctx, data)
}

func (s *analyzerService) fail(reason string, err error) {
	metrics.AnalysesFailed.WithLabelValues(reason).Inc()
	s.logger.Warn("analyzerService: analysis aborted", zap.String("reason", reason), zap.Error(err))
}
