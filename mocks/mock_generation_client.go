package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sbcanalyzer/internal/port"
)

// MockGenerationClient is a mock implementation of port.GenerationClient.
type MockGenerationClient struct {
	mock.Mock
}

func (m *MockGenerationClient) Invoke(ctx context.Context, req port.GenerationRequest) (*port.GenerationResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.GenerationResponse), args.Error(1)
}
