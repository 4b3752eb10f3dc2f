package domain

// OutcomeStatus tells a caller how much of an ExtractionOutcome is usable.
type OutcomeStatus string

const (
	OutcomeNone    OutcomeStatus = "none"
	OutcomePartial OutcomeStatus = "partial"
	OutcomeFull    OutcomeStatus = "full"
)

// StructuredStatus records what happened to the <json> region of a reply.
type StructuredStatus string

const (
	StructuredMissing   StructuredStatus = "missing"
	StructuredMalformed StructuredStatus = "malformed"
	StructuredParsed    StructuredStatus = "parsed"
)

// ContentTypePDF is the only upload type the analyzer accepts.
const ContentTypePDF = "application/pdf"

// AllowedExtensions maps accepted upload extensions (without dot) to a MIME type.
var AllowedExtensions = map[string]string{
	"pdf": ContentTypePDF,
}

// Tags delimiting the two payloads a generation reply is expected to carry.
const (
	TagJSON     = "json"
	TagMarkdown = "markdown"
)
