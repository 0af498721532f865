package analyze

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tildaslashalef/bugfix/internal/lang"
)

func TestBuildPrompt(t *testing.T) {
	prompt, err := BuildPrompt("def add(a, b):\n    return a + b", "Python")
	require.NoError(t, err)

	// The headings the parser anchors on must survive templating verbatim
	assert.Contains(t, prompt, "## Error Details")
	assert.Contains(t, prompt, "## Corrected Code")
	assert.Contains(t, prompt, "## Suggestions")

	assert.Contains(t, prompt, "Python code snippet")
	assert.Contains(t, prompt, "```python\ndef add(a, b):\n    return a + b\n```")
}

func TestBuildPromptUnknownLanguage(t *testing.T) {
	prompt, err := BuildPrompt("???", lang.Unknown)
	require.NoError(t, err)

	assert.Contains(t, prompt, "following code code snippet")
	// No fence tag for an unknown language
	assert.Contains(t, prompt, "```\n???\n```")
}

func TestBuildPromptKeepsSnippetVerbatim(t *testing.T) {
	snippet := "fmt.Println(\"{{.Language}}\")"
	prompt, err := BuildPrompt(snippet, "Go")
	require.NoError(t, err)

	assert.True(t, strings.Contains(prompt, snippet), "template syntax inside the snippet must not be expanded")
}
