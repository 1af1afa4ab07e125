package lspserver

import (
	"sync"

	"github.com/lang-tools/zls-core/internal/syntaxcheck"
)

// diagnosticCache remembers the last syntax-check result computed for a
// document version, so textDocument/codeAction's quick fixes can reuse what
// publishDiagnostics already computed instead of invoking the external
// checker a second time for the same buffer. The fixAll paths
// (computeFixEdits) always run the checker again.
type diagnosticCache struct {
	mu      sync.Mutex
	entries map[string]diagnosticCacheEntry
}

type diagnosticCacheEntry struct {
	version int32
	issues  []syntaxcheck.Issue
}

func newDiagnosticCache() *diagnosticCache {
	return &diagnosticCache{entries: make(map[string]diagnosticCacheEntry)}
}

// get returns the cached issues for uri if they were computed against
// version, and whether the cache had a matching entry.
func (c *diagnosticCache) get(uri string, version int32) ([]syntaxcheck.Issue, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[uri]
	if !ok || entry.version != version {
		return nil, false
	}
	return entry.issues, true
}

func (c *diagnosticCache) set(uri string, version int32, issues []syntaxcheck.Issue) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[uri] = diagnosticCacheEntry{version: version, issues: issues}
}

func (c *diagnosticCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]diagnosticCacheEntry)
}
