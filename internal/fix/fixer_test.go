package fix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lang-tools/zls-core/internal/protocol"
)

func pos(line, char uint32) protocol.Position { return protocol.Position{Line: line, Character: char} }

func rng(startLine, startChar, endLine, endChar uint32) protocol.Range {
	return protocol.Range{Start: pos(startLine, startChar), End: pos(endLine, endChar)}
}

func TestMergeAcceptsNonOverlappingEdits(t *testing.T) {
	candidates := []Candidate{
		{Edits: []protocol.TextEdit{{Range: rng(0, 0, 0, 3), NewText: "foo"}}, Safety: Safe},
		{Edits: []protocol.TextEdit{{Range: rng(1, 0, 1, 3), NewText: "bar"}}, Safety: Safe},
	}

	result := Merge(candidates, Suggestion)
	require.Len(t, result.Edits, 2)
	assert.Empty(t, result.Skipped)
}

func TestMergeSkipsOverlappingCandidate(t *testing.T) {
	candidates := []Candidate{
		{Edits: []protocol.TextEdit{{Range: rng(0, 0, 0, 5), NewText: "aaaaa"}}, Safety: Safe},
		{Edits: []protocol.TextEdit{{Range: rng(0, 2, 0, 7), NewText: "bbbbb"}}, Safety: Safe},
	}

	result := Merge(candidates, Suggestion)
	require.Len(t, result.Edits, 1)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, SkipConflict, result.Skipped[0].Reason)
}

func TestMergeSkipsBelowSafetyThreshold(t *testing.T) {
	candidates := []Candidate{
		{Edits: []protocol.TextEdit{{Range: rng(0, 0, 0, 3), NewText: "foo"}}, Safety: Unsafe},
	}

	result := Merge(candidates, Safe)
	assert.Empty(t, result.Edits)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, SkipSafety, result.Skipped[0].Reason)
}

func TestMergeSkipsCandidateWithNoEdits(t *testing.T) {
	candidates := []Candidate{{Safety: Safe}}

	result := Merge(candidates, Suggestion)
	assert.Empty(t, result.Edits)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, SkipNoEdits, result.Skipped[0].Reason)
}
