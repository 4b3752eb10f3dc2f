package extract

import (
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// answerSetSchema describes the array of answer records the model is asked for.
const answerSetSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["question", "answer"],
    "properties": {
      "question": {"type": "string", "minLength": 1},
      "answer": {"type": "string"},
      "document_source": {"type": "string"},
      "page_number_of_source": {"type": "integer", "minimum": 0}
    }
  }
}`

var answerSet = jsonschema.MustCompileString("answer_set.json", answerSetSchema)

// SchemaIssues validates a decoded JSON value against the answer-set schema
// and returns one line per violation. A conforming value yields nil.
func SchemaIssues(v any) []string {
	err := answerSet.Validate(v)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []string{err.Error()}
	}

	var issues []string
	collectLeaves(ve, &issues)
	if len(issues) == 0 {
		issues = append(issues, ve.Error())
	}
	return issues
}

// collectLeaves appends the innermost causes of ve; the outer nodes only
// repeat "does not validate" for their children.
func collectLeaves(ve *jsonschema.ValidationError, out *[]string) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*out = append(*out, fmt.Sprintf("%s: %s", loc, ve.Message))
		return
	}
	for _, c := range ve.Causes {
		collectLeaves(c, out)
	}
}
