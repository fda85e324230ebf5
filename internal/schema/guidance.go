package schema

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/eykd/rubriclint-go/internal/artifact"
)

// MinGuidanceLength is the recommended minimum length of guidance.md in
// characters. Shorter guidance still works, it just tends to produce
// vague feedback, so it warns rather than errors.
const MinGuidanceLength = 100

// ValidateGuidance checks the free-text guidance document. Guidance is
// free text by design: there are no structural checks beyond length.
func ValidateGuidance(content string) []artifact.Finding {
	trimmed := strings.TrimSpace(content)
	length := utf8.RuneCountInString(trimmed)
	if length < MinGuidanceLength {
		return []artifact.Finding{artifact.Warning(artifact.ClassSchema,
			fmt.Sprintf("file is very short (%d characters), consider providing more detailed guidance for the AI", length))}
	}
	return nil
}
