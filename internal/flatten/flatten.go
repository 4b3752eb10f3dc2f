// Package flatten reduces a paginated document to a single text blob.
package flatten

import (
	"errors"
	"fmt"
	"strings"

	"sbcanalyzer/internal/domain"
	"sbcanalyzer/internal/port"
)

// Flatten concatenates the text of every page in order. No separators are
// inserted and nothing is normalised. Any page failure aborts the whole
// document.
func Flatten(doc port.Document) (string, error) {
	var b strings.Builder
	for i := 0; i < doc.PageCount(); i++ {
		text, err := doc.PageText(i)
		if err != nil {
			if errors.Is(err, domain.ErrDecodeFailure) {
				return "", fmt.Errorf("flatten page %d: %w", i, err)
			}
			return "", fmt.Errorf("flatten page %d: %w: %w", i, domain.ErrDecodeFailure, err)
		}
		b.WriteString(text)
	}
	return b.String(), nil
}
