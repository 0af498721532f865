package analyze

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/tildaslashalef/bugfix/internal/lang"
)

const fence = "```"

// The reply template is a contract with the parser in internal/critique:
// the three headings below are the anchors it searches for.
const promptTemplate = `Analyze the following {{.Language}} code snippet for errors. Provide a detailed explanation of the errors found.
Then, provide the corrected version of the code.
Finally, offer suggestions for potential enhancements or best practices related to the code.

**IMPORTANT:** Structure your response *exactly* like this, using these specific markdown headings:

## Error Details
[Your detailed explanation of errors found. Be clear and concise.]

## Corrected Code
{{.Fence}}{{.FenceTag}}
[ONLY the corrected version of the original input code goes here. Do NOT add example usage or other code blocks in this section.]
{{.Fence}}

## Suggestions
[Your suggestions for enhancement or best practices. Explain your points clearly. Avoid putting full code examples here unless absolutely necessary for illustration, and if so, keep them brief.]

---
Code to analyze:
{{.Fence}}{{.FenceTag}}
{{.Code}}
{{.Fence}}
---
`

// BuildPrompt renders the fixed three-heading analysis prompt for a
// snippet in the given language.
func BuildPrompt(code, language string) (string, error) {
	tmpl, err := template.New("analyze").Parse(promptTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing prompt template: %w", err)
	}

	displayLang := language
	if displayLang == "" || displayLang == lang.Unknown {
		displayLang = "code"
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]string{
		"Language": displayLang,
		"Fence":    fence,
		"FenceTag": lang.FenceTag(language),
		"Code":     code,
	}); err != nil {
		return "", fmt.Errorf("executing prompt template: %w", err)
	}

	return buf.String(), nil
}
