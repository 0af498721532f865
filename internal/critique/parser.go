package critique

import (
	"regexp"
	"strings"

	"github.com/tildaslashalef/bugfix/internal/loggy"
)

// The headings are anchors, not a grammar. Each section is searched for
// independently so a missing or reordered heading does not cascade into
// losing the sections after it. The one exception is Corrected Code: its
// fence search is restricted to the text after its own heading so a code
// block belonging to an earlier section is never captured by mistake.
var (
	errorDetailsRe = regexp.MustCompile(`(?is)##\s*error details\s*(.*?)\s*(?:##\s*corrected code|##\s*suggestions|\z)`)
	codeHeadingRe  = regexp.MustCompile(`(?i)##\s*corrected code\s*`)
	codeFenceRe    = regexp.MustCompile("(?s)```(?:[a-zA-Z]*\n)?(.*?)\n```")
	suggestionsRe  = regexp.MustCompile(`(?is)##\s*suggestions\s*(.*)`)
)

// Parser extracts critique sections from a raw model reply.
type Parser struct {
	logger *loggy.Logger
}

// NewParser creates a new Parser
func NewParser(logger *loggy.Logger) *Parser {
	return &Parser{
		logger: logger,
	}
}

// Parse splits a raw reply into Error Details, Corrected Code and
// Suggestions. It never fails: malformed input is encoded in the
// returned Result as unset fields, diagnostic sentinels, or a false
// success flag. The second return value mirrors Result.Success for
// callers that only care about the overall outcome.
//
// Error Details and Corrected Code are mandatory; Suggestions is
// optional and never affects the success flag.
func (p *Parser) Parse(raw string) (*Result, bool) {
	result := &Result{Success: true}
	lower := strings.ToLower(raw)

	// Error Details: everything between the heading and the next
	// recognized heading (or end of input).
	if m := errorDetailsRe.FindStringSubmatch(raw); m != nil {
		result.ErrorDetails = strings.TrimSpace(m[1])
	} else {
		if strings.Contains(lower, "error details") {
			// The model likely attempted the section but the heading
			// format didn't match.
			result.ErrorDetails = SentinelErrorDetails
		}
		result.Success = false
	}

	// Corrected Code: first fenced block after the heading. Searching
	// before the heading risks capturing a fence from an earlier section.
	if loc := codeHeadingRe.FindStringIndex(raw); loc != nil {
		rest := raw[loc[1]:]
		if m := codeFenceRe.FindStringSubmatch(rest); m != nil {
			result.CorrectedCode = strings.TrimSpace(m[1])
		} else {
			p.logger.Debug("corrected code heading present but no fenced block followed")
			result.CorrectedCode = SentinelNoCodeBlock
			result.Success = false
		}
	} else {
		if strings.Contains(lower, "corrected code") {
			result.CorrectedCode = SentinelNoCodeHeading
		}
		result.Success = false
	}

	// Suggestions: everything after the heading to end of input. Absent
	// or empty suggestions are not a failure.
	if m := suggestionsRe.FindStringSubmatch(raw); m != nil {
		result.Suggestions = strings.TrimSpace(m[1])
		if result.Suggestions == "" {
			result.Suggestions = NoSuggestions
		}
	} else if strings.Contains(lower, "suggestions") {
		result.Suggestions = SentinelSuggestions
	}

	// Non-empty input that produced nothing at all is a fundamentally
	// non-conforming reply.
	if raw != "" && !result.HasErrorDetails() && !result.HasCorrectedCode() && !result.HasSuggestions() {
		result.Success = false
	}

	if !result.Success {
		p.logger.Debug("critique parse incomplete",
			"error_details", result.HasErrorDetails(),
			"corrected_code", result.HasCorrectedCode(),
			"suggestions", result.HasSuggestions(),
			"input_length", len(raw))
	}

	return result, result.Success
}
