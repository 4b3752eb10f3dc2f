package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sbcanalyzer/internal/domain"
	"sbcanalyzer/internal/extract"
	"sbcanalyzer/internal/generation"
	"sbcanalyzer/internal/port"
	"sbcanalyzer/internal/prompt"
	"sbcanalyzer/internal/service"
	"sbcanalyzer/mocks"
)

type textDoc []string

func (d textDoc) PageCount() int { return len(d) }
func (d textDoc) PageText(i int) (string, error) { return d[i], nil }

type failingDoc struct{}

func (failingDoc) PageCount() int { return 1 }
func (failingDoc) PageText(int) (string, error) { return "", errors.New("corrupt page") }

const deductibleReply = `<json>[{"question":"What is the overall deductible? - Individual","answer":"$500","document_source":"Deductible: $500 individual","page_number_of_source":1}]</json>` +
	"<markdown>| Question | Answer |\n|---|---|\n| Deductible (Individual) | $500 |</markdown>"

func reply(text string) *port.GenerationResponse {
	return &port.GenerationResponse{Content: []port.ContentBlock{{Type: "text", Text: text}}}
}

func newService(t *testing.T, client *mocks.MockGenerationClient, storage port.ObjectStorage) service.AnalyzerService {
	t.Helper()
	var inv *generation.Invoker
	if client != nil {
		var err error
		inv, err = generation.NewInvoker(client, "mock", generation.DefaultOptions(), zap.NewNop())
		require.NoError(t, err)
	}
	return service.NewAnalyzerService(
		prompt.DefaultBuilder(),
		inv,
		extract.NewExtractor(zap.NewNop()),
		storage,
		1024*1024,
		zap.NewNop(),
	)
}

func TestAnalyze_WhitespaceShortCircuits(t *testing.T) {
	client := new(mocks.MockGenerationClient)
	svc := newService(t, client, nil)

	out, err := svc.Analyze(context.Background(), textDoc{"   \n", "\t "})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNone, out.Status())
	assert.Nil(t, out.StructuredData)
	assert.Nil(t, out.StructuredRawText)
	assert.Nil(t, out.PresentationTable)
	client.AssertNotCalled(t, "Invoke", mock.Anything, mock.Anything)
}

func TestAnalyze_NoPagesShortCircuits(t *testing.T) {
	client := new(mocks.MockGenerationClient)
	svc := newService(t, client, nil)

	out, err := svc.Analyze(context.Background(), textDoc{})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNone, out.Status())
	client.AssertNotCalled(t, "Invoke", mock.Anything, mock.Anything)
}

func TestAnalyze_EmptyDocumentWithoutBackend(t *testing.T) {
	svc := newService(t, nil, nil)

	out, err := svc.Analyze(context.Background(), textDoc{" "})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNone, out.Status())
}

func TestAnalyze_NoBackendConfigured(t *testing.T) {
	svc := newService(t, nil, nil)

	_, err := svc.Analyze(context.Background(), textDoc{"Deductible: $500"})

	assert.ErrorIs(t, err, domain.ErrBackendFailure)
}

func TestAnalyze_DeductibleScenario(t *testing.T) {
	flattened := "Deductible: $500 individual..."
	client := new(mocks.MockGenerationClient)
	client.On("Invoke", mock.Anything, mock.MatchedBy(func(req port.GenerationRequest) bool {
		return len(req.Messages) == 1 && req.Messages[0].Content[0].Text == flattened
	})).Return(reply(deductibleReply), nil).Once()
	svc := newService(t, client, nil)

	out, err := svc.Analyze(context.Background(), textDoc{"Deductible: $500 ", "individual..."})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeFull, out.Status())
	records, ok := out.Records()
	require.True(t, ok)
	require.Len(t, records, 1)
	assert.Equal(t, "$500", records[0].Answer)
	require.NotNil(t, out.PresentationTable)
	assert.Contains(t, *out.PresentationTable, "| Deductible (Individual) | $500 |")
	client.AssertExpectations(t)
}

func TestAnalyze_MalformedReplyDoesNotFail(t *testing.T) {
	client := new(mocks.MockGenerationClient)
	client.On("Invoke", mock.Anything, mock.Anything).Return(reply("<json>[{\"a\":\"x\ny\"}]</json>"), nil)
	svc := newService(t, client, nil)

	out, err := svc.Analyze(context.Background(), textDoc{"text"})

	require.NoError(t, err)
	assert.Equal(t, domain.StructuredMalformed, out.StructuredStatus)
	assert.Equal(t, domain.OutcomePartial, out.Status())
}

func TestAnalyze_BackendFailurePropagates(t *testing.T) {
	client := new(mocks.MockGenerationClient)
	client.On("Invoke", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))
	svc := newService(t, client, nil)

	out, err := svc.Analyze(context.Background(), textDoc{"text"})

	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrBackendFailure)
	client.AssertNumberOfCalls(t, "Invoke", 1)
}

func TestAnalyze_DecodeFailurePropagates(t *testing.T) {
	client := new(mocks.MockGenerationClient)
	svc := newService(t, client, nil)

	_, err := svc.Analyze(context.Background(), failingDoc{})

	assert.ErrorIs(t, err, domain.ErrDecodeFailure)
	client.AssertNotCalled(t, "Invoke", mock.Anything, mock.Anything)
}

func TestAnalyzeUpload_Validation(t *testing.T) {
	svc := newService(t, new(mocks.MockGenerationClient), nil)

	tests := []struct {
		name  string
		input service.UploadInput
		want  error
	}{
		{"wrong extension", service.UploadInput{FileName: "plan.docx", Size: 10, File: bytes.NewReader([]byte("%PDF-1.4"))}, domain.ErrUnsupportedFileType},
		{"declared too large", service.UploadInput{FileName: "plan.pdf", Size: 2 * 1024 * 1024, File: bytes.NewReader(nil)}, domain.ErrFileTooLarge},
		{"actually too large", service.UploadInput{FileName: "plan.pdf", Size: 10, File: bytes.NewReader(make([]byte, 1024*1024+1))}, domain.ErrFileTooLarge},
		{"not a pdf inside", service.UploadInput{FileName: "plan.pdf", Size: 11, File: bytes.NewReader([]byte("hello world"))}, domain.ErrUnsupportedFileType},
		{"corrupt pdf", service.UploadInput{FileName: "PLAN.PDF", Size: 20, File: bytes.NewReader([]byte("%PDF-1.4 not really"))}, domain.ErrDecodeFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AnalyzeUpload(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAnalyzeObject_InvalidURI(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	svc := newService(t, new(mocks.MockGenerationClient), storage)

	_, err := svc.AnalyzeObject(context.Background(), "https://example.com/plan.pdf")

	assert.ErrorIs(t, err, domain.ErrInvalidObjectURI)
	storage.AssertNotCalled(t, "Download", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalyzeObject_NoStorage(t *testing.T) {
	svc := newService(t, new(mocks.MockGenerationClient), nil)

	_, err := svc.AnalyzeObject(context.Background(), "s3://bucket/plan.pdf")

	assert.ErrorIs(t, err, domain.ErrStorageNotConfigured)
}

func TestAnalyzeObject_DownloadError(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	storage.On("Download", mock.Anything, "bucket", "2025/plan.pdf").Return(nil, errors.New("access denied"))
	svc := newService(t, new(mocks.MockGenerationClient), storage)

	_, err := svc.AnalyzeObject(context.Background(), "s3://bucket/2025/plan.pdf")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
	storage.AssertExpectations(t)
}

func TestAnalyzeObject_TooLarge(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	storage.On("Download", mock.Anything, "bucket", "plan.pdf").Return(nil, domain.ErrFileTooLarge)
	svc := newService(t, new(mocks.MockGenerationClient), storage)

	_, err := svc.AnalyzeObject(context.Background(), "s3://bucket/plan.pdf")

	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestAnalyzeObject_DecodesDownloadedBytes(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	storage.On("Download", mock.Anything, "bucket", "plan.pdf").Return([]byte("not a pdf"), nil)
	client := new(mocks.MockGenerationClient)
	svc := newService(t, client, storage)

	_, err := svc.AnalyzeObject(context.Background(), "s3://bucket/plan.pdf")

	assert.ErrorIs(t, err, domain.ErrDecodeFailure)
	client.AssertNotCalled(t, "Invoke", mock.Anything, mock.Anything)
}
