package ulid

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	id := New("req")
	require.True(t, strings.HasPrefix(id, "req-"))
	assert.Len(t, id, len("req-")+26)

	bare := New("")
	assert.Len(t, bare, 26)
	assert.NotContains(t, bare, PrefixSeparator)
}

func TestNewIsUniqueAndOrdered(t *testing.T) {
	const n = 1000

	ids := make([]string, n)
	seen := make(map[string]struct{}, n)
	for i := range ids {
		ids[i] = New("")
		seen[ids[i]] = struct{}{}
	}

	assert.Len(t, seen, n, "ids must be unique")
	assert.True(t, sort.StringsAreSorted(ids), "ids must be lexicographically increasing")
}

func TestAnalysisID(t *testing.T) {
	id := AnalysisID()
	assert.True(t, HasPrefix(id, PrefixAnalysis))
	assert.False(t, HasPrefix(id, "other"))
}

func TestHasPrefix(t *testing.T) {
	assert.True(t, HasPrefix("ana-01H000000000000000000000", "ana"))
	assert.False(t, HasPrefix("analysis01H0", "ana"), "prefix must be followed by the separator")
	assert.False(t, HasPrefix("", "ana"))
}
