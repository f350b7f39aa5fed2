package writer

import (
	"fmt"
	"strings"
)

// ValidationError represents a single validation error for a generated draft.
type ValidationError struct {
	DraftIndex int    // Index of the draft in the response; -1 for response-level errors
	Field      string // "body" or "count"
	Message    string
}

// String returns a formatted error message.
func (e ValidationError) String() string {
	if e.DraftIndex < 0 {
		return fmt.Sprintf("%s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("Draft %d: %s - %s", e.DraftIndex, e.Field, e.Message)
}

// ValidationResult contains the result of validating a model response.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// FormatErrors returns a formatted string of all validation errors for LLM feedback.
func (r ValidationResult) FormatErrors() string {
	if len(r.Errors) == 0 {
		return ""
	}

	result := "Your response had these errors:\n"
	for _, e := range r.Errors {
		result += fmt.Sprintf("- %s\n", e.String())
	}
	result += "\nPlease correct these issues and respond again with valid JSON."
	return result
}

// validateDrafts checks a model response against the request:
// - exactly the requested number of drafts
// - non-empty bodies
// - bodies within the length cap
// - no duplicate bodies
func validateDrafts(drafts []Draft, want int) ValidationResult {
	result := ValidationResult{Valid: true}

	if len(drafts) != want {
		result.Errors = append(result.Errors, ValidationError{
			DraftIndex: -1,
			Field:      "count",
			Message:    fmt.Sprintf("expected %d drafts, got %d", want, len(drafts)),
		})
	}

	seen := make(map[string]int)
	for i, d := range drafts {
		body := strings.TrimSpace(d.Body)
		if body == "" {
			result.Errors = append(result.Errors, ValidationError{
				DraftIndex: i,
				Field:      "body",
				Message:    "draft body is empty",
			})
			continue
		}
		if len(body) > MaxBodyLength {
			result.Errors = append(result.Errors, ValidationError{
				DraftIndex: i,
				Field:      "body",
				Message:    fmt.Sprintf("draft is %d characters, maximum is %d", len(body), MaxBodyLength),
			})
		}
		if first, dup := seen[body]; dup {
			result.Errors = append(result.Errors, ValidationError{
				DraftIndex: i,
				Field:      "body",
				Message:    fmt.Sprintf("duplicate of draft %d", first),
			})
		} else {
			seen[body] = i
		}
	}

	result.Valid = len(result.Errors) == 0
	return result
}
