// Package critique parses free-text model critiques into structured sections
package critique

import "strings"

// Sentinel values substituted for a section when its heading was located
// but the content could not be isolated. They are distinct from both an
// unset field (empty string) and a normally extracted value, so callers
// can tell "model omitted the section" from "model included it but the
// formatting broke extraction".
const (
	SentinelErrorDetails  = "[Parsing Error: Could not isolate Error Details section]"
	SentinelNoCodeBlock   = "[Parsing Error: Found 'Corrected Code' heading but no valid code block immediately after it]"
	SentinelNoCodeHeading = "[Parsing Error: Could not find '## Corrected Code' heading]"
	SentinelSuggestions   = "[Parsing Error: Could not isolate Suggestions section]"

	// NoSuggestions is the placeholder used when the Suggestions heading is
	// present but nothing follows it. Not a failure.
	NoSuggestions = "[No specific suggestions provided.]"

	diagnosticPrefix = "[Parsing Error:"
)

// Result holds the sections extracted from one model reply.
// An empty string means the section is unset. Constructed once per reply
// and not modified afterwards.
type Result struct {
	ErrorDetails  string
	CorrectedCode string
	Suggestions   string
	Success       bool
}

// IsDiagnostic reports whether a field value is a parsing-error sentinel
// rather than content extracted from the reply.
func IsDiagnostic(value string) bool {
	return strings.HasPrefix(value, diagnosticPrefix)
}

// HasErrorDetails reports whether the error details field is set,
// including the diagnostic sentinel case.
func (r *Result) HasErrorDetails() bool {
	return r.ErrorDetails != ""
}

// HasCorrectedCode reports whether the corrected code field is set,
// including the diagnostic sentinel case.
func (r *Result) HasCorrectedCode() bool {
	return r.CorrectedCode != ""
}

// HasSuggestions reports whether the suggestions field is set.
func (r *Result) HasSuggestions() bool {
	return r.Suggestions != ""
}
