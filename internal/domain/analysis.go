package domain

import "encoding/json"

// AnswerRecord is one question/answer/citation tuple returned by the model.
type AnswerRecord struct {
	Question           string `json:"question"`
	Answer             string `json:"answer"`
	DocumentSource     string `json:"document_source"`
	PageNumberOfSource int    `json:"page_number_of_source"`
}

// ExtractionOutcome is the result of analyzing one document.
//
// The three core fields are nil when absent. StructuredData holds whatever
// JSON value the model placed inside the <json> region; it is usually an
// array of AnswerRecord-shaped objects but nothing guarantees that.
type ExtractionOutcome struct {
	StructuredData    any
	StructuredRawText *string
	PresentationTable *string

	StructuredStatus StructuredStatus
	SchemaIssues     []string
}

// EmptyOutcome returns the all-null outcome used when a document has no text.
func EmptyOutcome() *ExtractionOutcome {
	return &ExtractionOutcome{StructuredStatus: StructuredMissing}
}

// Status classifies the outcome as none, partial or full.
func (o *ExtractionOutcome) Status() OutcomeStatus {
	present := 0
	if o.StructuredData != nil {
		present++
	}
	if o.StructuredRawText != nil {
		present++
	}
	if o.PresentationTable != nil {
		present++
	}
	switch present {
	case 0:
		return OutcomeNone
	case 3:
		return OutcomeFull
	default:
		return OutcomePartial
	}
}

// Records decodes StructuredData into typed answer records. ok is false when
// there is no structured data or it is not an array of record-shaped objects.
func (o *ExtractionOutcome) Records() (records []AnswerRecord, ok bool) {
	if o.StructuredData == nil {
		return nil, false
	}
	if _, isArray := o.StructuredData.([]any); !isArray {
		return nil, false
	}
	b, err := json.Marshal(o.StructuredData)
	if err != nil {
		return nil, false
	}
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, false
	}
	return records, true
}

// StructuredJSON re-encodes StructuredData, or returns nil when it is absent.
func (o *ExtractionOutcome) StructuredJSON() json.RawMessage {
	if o.StructuredData == nil {
		return nil
	}
	b, err := json.Marshal(o.StructuredData)
	if err != nil {
		return nil
	}
	return b
}
