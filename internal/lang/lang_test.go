package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tildaslashalef/bugfix/internal/loggy"
)

func TestDetect(t *testing.T) {
	d := NewDetector(loggy.NewNoopLogger())

	t.Run("by filename", func(t *testing.T) {
		assert.Equal(t, "Go", d.Detect("main.go", "package main\n\nfunc main() {}\n"))
		assert.Equal(t, "Python", d.Detect("script.py", "def main():\n    pass\n"))
		assert.Equal(t, "JavaScript", d.Detect("app.js", "const x = 1;\n"))
	})

	t.Run("filename wins over ambiguous content", func(t *testing.T) {
		assert.Equal(t, "Ruby", d.Detect("lib/thing.rb", "x = 1\n"))
	})

	t.Run("content only still resolves", func(t *testing.T) {
		snippet := "#!/usr/bin/env python\nimport sys\n\ndef main():\n    print(sys.argv)\n"
		got := d.Detect("", snippet)
		assert.NotEqual(t, Unknown, got)
	})

	t.Run("nothing to go on", func(t *testing.T) {
		assert.Equal(t, Unknown, d.Detect("", ""))
	})
}

func TestFenceTag(t *testing.T) {
	tests := []struct {
		language string
		want     string
	}{
		{"Go", "go"},
		{"Python", "python"},
		{"C++", "cpp"},
		{"C#", "csharp"},
		{"Shell", "bash"},
		{"Unknown", ""},
		{"", ""},
		{"Zig", "zig"}, // not in the table, lowercased as-is
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FenceTag(tt.language), "language %q", tt.language)
	}
}
