package roadmap

import (
	"fmt"
	"unicode/utf8"
)

// previewRunes bounds how much of a raw response is echoed in diagnostics.
const previewRunes = 500

// FailureKind classifies why the default roadmap was used.
type FailureKind string

const (
	// FailureLLM means the model could not be reached or refused the request.
	FailureLLM FailureKind = "llm_unavailable"
	// FailureDecode means the model answered but no JSON object could be decoded.
	FailureDecode FailureKind = "decode_failed"
)

// Failure describes a generation stage that fell back to the default roadmap.
type Failure struct {
	Kind    FailureKind
	Err     error
	Preview string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Preview truncates a raw response for display.
func Preview(raw string) (preview string) {
	if utf8.RuneCountInString(raw) <= previewRunes {
		preview = raw
		return preview
	}
	runes := []rune(raw)
	preview = string(runes[:previewRunes]) + "..."
	return preview
}
