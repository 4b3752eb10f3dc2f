// Package extract recovers the structured answer set and the summary table
// from a free-form generation reply.
//
// Both regions are searched independently and every function here is total:
// a missing or malformed region only nulls out its own fields.
package extract

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"go.uber.org/zap"

	"sbcanalyzer/internal/domain"
	"sbcanalyzer/internal/metrics"
)

// Extract parses a raw reply into an ExtractionOutcome.
func Extract(raw string) *domain.ExtractionOutcome {
	out := &domain.ExtractionOutcome{StructuredStatus: domain.StructuredMissing}

	if inner, ok := FindTagged(raw, domain.TagJSON); ok {
		text := inner
		out.StructuredRawText = &text

		if v, err := decodeStrict(inner); err != nil {
			out.StructuredStatus = domain.StructuredMalformed
		} else {
			out.StructuredData = v
			out.StructuredStatus = domain.StructuredParsed
			out.SchemaIssues = SchemaIssues(v)
		}
	}

	if inner, ok := FindTagged(raw, domain.TagMarkdown); ok {
		table := inner
		out.PresentationTable = &table
	}

	return out
}

// decodeStrict parses exactly one JSON value. Numbers are kept as json.Number
// so large integers survive a round trip.
func decodeStrict(text string) (any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return v, nil
}

// Extractor is Extract with logging and region metrics.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates an Extractor. A nil logger discards output.
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// Extract parses raw and records what was found.
func (e *Extractor) Extract(raw string) *domain.ExtractionOutcome {
	out := Extract(raw)

	metrics.ExtractionRegions.WithLabelValues(domain.TagJSON, string(out.StructuredStatus)).Inc()
	tableState := "missing"
	if out.PresentationTable != nil {
		tableState = "present"
	}
	metrics.ExtractionRegions.WithLabelValues(domain.TagMarkdown, tableState).Inc()

	switch out.StructuredStatus {
	case domain.StructuredMissing:
		e.logger.Warn("extract.Extract: no json region in reply", zap.Int("reply_len", len(raw)))
	case domain.StructuredMalformed:
		e.logger.Warn("extract.Extract: json region failed to parse, keeping raw text",
			zap.Int("raw_len", len(*out.StructuredRawText)))
	}
	if len(out.SchemaIssues) > 0 {
		e.logger.Info("extract.Extract: structured data deviates from answer schema",
			zap.Strings("issues", out.SchemaIssues))
	}
	if out.PresentationTable == nil {
		e.logger.Warn("extract.Extract: no markdown region in reply")
	}
	return out
}
