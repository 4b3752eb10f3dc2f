package prompt

import (
	"strings"

	"sbcanalyzer/internal/domain"
	"sbcanalyzer/internal/port"
)

// Builder assembles the generation request for a flattened SBC.
type Builder struct {
	questions []string
	examples  []string
	system    string
}

// NewBuilder creates a Builder over the given question and example lists.
// The lists are copied; later changes by the caller have no effect.
func NewBuilder(questions, examples []string) *Builder {
	b := &Builder{
		questions: append([]string(nil), questions...),
		examples:  append([]string(nil), examples...),
	}
	b.system = renderSystemPrompt(b.questions, b.examples)
	return b
}

// DefaultBuilder returns a Builder over the fixed SBC questions.
func DefaultBuilder() *Builder {
	return NewBuilder(Questions(), ExampleAnswers())
}

// SystemPrompt returns the instruction block sent as the system role.
func (b *Builder) SystemPrompt() string {
	return b.system
}

// Build returns a request carrying text verbatim as the only user content.
// Model and sampling parameters are left for the invoker to fill in.
func (b *Builder) Build(text string) port.GenerationRequest {
	return port.GenerationRequest{
		System: b.system,
		Messages: []port.Message{
			{
				Role:    "user",
				Content: []port.ContentBlock{{Type: "text", Text: text}},
			},
		},
	}
}

func renderSystemPrompt(questions, examples []string) string {
	var sb strings.Builder
	sb.WriteString("You are a benefits admin helper. You are given a Summary of Benefits and Coverage, and you need to help answer a set of questions\n\n")

	sb.WriteString("<questions>\n")
	for _, q := range questions {
		sb.WriteString(q)
		sb.WriteString("\n")
	}
	sb.WriteString("</questions>\n\n")

	sb.WriteString("based on what is in the document. Your answers should either be a dollar amount or a % value based on what the beneficiary should pay. Some examples are the following:\n\n")

	sb.WriteString("<example_answers>\n")
	for _, a := range examples {
		sb.WriteString(a)
		sb.WriteString("\n")
	}
	sb.WriteString("</example_answers>\n\n")

	sb.WriteString(`Structure your response as a JSON code block with the following fields
question
answer
document_source (The text in the document you derived your answer from)
page_number_of_source

and put it between the <` + domain.TagJSON + `></` + domain.TagJSON + `> tags

Then provide a markdown table with the Question and Answer from SBC in a customer presentation format (What you would show to a consumer of the medical benefits), and put it between the <` + domain.TagMarkdown + `></` + domain.TagMarkdown + `> tags.
`)
	return sb.String()
}
