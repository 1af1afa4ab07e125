package fix

import "sort"

// Merge combines candidates into a single non-conflicting edit set,
// accepting fixes at or below threshold and in ascending document order,
// skipping anything that overlaps an already-accepted edit (spec.md
// §4.8's fixAll semantics: every accepted edit in the result applies
// cleanly against the original document in one pass).
//
// This keeps the teacher's atomic-candidate, conflict-by-overlap approach
// (internal/fix/fixer.go's applyFixesToFile) but drops the two-phase
// sync/async split and direct byte-content mutation: the LSP client, not
// this server, applies the resulting WorkspaceEdit.
func Merge(candidates []Candidate, threshold Safety) *Result {
	result := &Result{}

	ordered := make([]Candidate, len(candidates))
	copy(ordered, candidates)
	sort.Slice(ordered, func(i, j int) bool {
		return rangeBefore(editsSpan(ordered[i].Edits), editsSpan(ordered[j].Edits))
	})

	var accepted []protocolRange
	for _, c := range ordered {
		if len(c.Edits) == 0 {
			result.Skipped = append(result.Skipped, Skipped{Diagnostic: c.Diagnostic, Reason: SkipNoEdits})
			continue
		}
		if c.Safety > threshold {
			result.Skipped = append(result.Skipped, Skipped{Diagnostic: c.Diagnostic, Reason: SkipSafety})
			continue
		}

		span := editsSpan(c.Edits)
		conflict := false
		for _, a := range accepted {
			if rangesOverlap(span, a) {
				conflict = true
				break
			}
		}
		if conflict {
			result.Skipped = append(result.Skipped, Skipped{Diagnostic: c.Diagnostic, Reason: SkipConflict})
			continue
		}

		accepted = append(accepted, span)
		result.Edits = append(result.Edits, c.Edits...)
	}

	return result
}
