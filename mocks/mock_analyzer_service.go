package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sbcanalyzer/internal/domain"
	"sbcanalyzer/internal/port"
	"sbcanalyzer/internal/service"
)

// MockAnalyzerService is a mock implementation of service.AnalyzerService.
type MockAnalyzerService struct {
	mock.Mock
}

func (m *MockAnalyzerService) Analyze(ctx context.Context, doc port.Document) (*domain.ExtractionOutcome, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionOutcome), args.Error(1)
}

func (m *MockAnalyzerService) AnalyzePDF(ctx context.Context, data []byte) (*domain.ExtractionOutcome, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionOutcome), args.Error(1)
}

func (m *MockAnalyzerService) AnalyzeUpload(ctx context.Context, input service.UploadInput) (*domain.ExtractionOutcome, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionOutcome), args.Error(1)
}

func (m *MockAnalyzerService) AnalyzeObject(ctx context.Context, uri string) (*domain.ExtractionOutcome, error) {
	args := m.Called(ctx, uri)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionOutcome), args.Error(1)
}
