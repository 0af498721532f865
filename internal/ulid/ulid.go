// Package ulid generates prefixed, lexicographically sortable request
// identifiers on top of github.com/oklog/ulid/v2.
package ulid

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	// PrefixAnalysis is used for code-analysis request IDs
	PrefixAnalysis = "ana"

	// PrefixSeparator separates the prefix from the ULID
	PrefixSeparator = "-"
)

var (
	entropy     = ulid.Monotonic(rand.Reader, 0)
	entropyLock sync.Mutex
)

// New generates a new ULID string with the given prefix.
// An empty prefix yields a bare ULID.
func New(prefix string) string {
	entropyLock.Lock()
	id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
	entropyLock.Unlock()

	if prefix == "" {
		return id.String()
	}
	return prefix + PrefixSeparator + id.String()
}

// AnalysisID generates an ID for one analysis request
func AnalysisID() string {
	return New(PrefixAnalysis)
}

// HasPrefix reports whether id carries the given prefix
func HasPrefix(id, prefix string) bool {
	return strings.HasPrefix(id, prefix+PrefixSeparator)
}
