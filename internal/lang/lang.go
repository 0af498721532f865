// Package lang detects the programming language of a code snippet so
// the prompt and rendering can name it.
package lang

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/tildaslashalef/bugfix/internal/loggy"
)

// Unknown is returned when no language could be determined
const Unknown = "Unknown"

// fenceTags maps detected language names to markdown fence tags
var fenceTags = map[string]string{
	"Go":         "go",
	"Python":     "python",
	"JavaScript": "javascript",
	"TypeScript": "typescript",
	"Java":       "java",
	"C":          "c",
	"C++":        "cpp",
	"C#":         "csharp",
	"Ruby":       "ruby",
	"PHP":        "php",
	"Rust":       "rust",
	"Swift":      "swift",
	"Kotlin":     "kotlin",
	"Shell":      "bash",
	"SQL":        "sql",
	"HTML":       "html",
	"CSS":        "css",
}

// Detector determines the programming language of a snippet
type Detector struct {
	logger *loggy.Logger
}

// NewDetector creates a new language detector
func NewDetector(logger *loggy.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the language of a snippet from its filename and
// content. Either may be empty; content-based classification is used
// when the filename alone is not conclusive.
func (d *Detector) Detect(filename, content string) string {
	name := filepath.Base(filename)
	data := []byte(content)

	if language := enry.GetLanguage(name, data); language != "" {
		d.logger.Debug("detected snippet language", "filename", name, "language", language)
		return language
	}

	if filename != "" {
		if language, safe := enry.GetLanguageByExtension(filename); safe && language != "" {
			d.logger.Debug("fallback to extension detection", "filename", name, "language", language)
			return language
		}
		if language, safe := enry.GetLanguageByFilename(name); safe && language != "" {
			return language
		}
	}

	if len(data) > 0 {
		if candidates := enry.GetLanguagesByClassifier("", data, nil); len(candidates) > 0 {
			d.logger.Debug("classifier detection", "language", candidates[0])
			return candidates[0]
		}
	}

	return Unknown
}

// FenceTag returns the markdown code fence tag for a language name,
// or the empty string when none is known.
func FenceTag(language string) string {
	if tag, ok := fenceTags[language]; ok {
		return tag
	}
	if language == "" || language == Unknown {
		return ""
	}
	return strings.ToLower(language)
}
