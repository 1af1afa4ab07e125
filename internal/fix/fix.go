// Package fix implements the autofix engine behind spec.md §4.8: merging
// the text edits carried by a set of diagnostics into a single
// non-conflicting edit set for one document, grounded on the teacher's
// two-phase conflict-aware fixer (internal/fix/fixer.go), generalized
// from Dockerfile-rule violations to the generic Diagnostic model.
package fix

import "github.com/lang-tools/zls-core/internal/protocol"

// Safety is how confident a suggested edit is, mirroring the teacher's
// FixSafety levels (internal/fix/fix.go).
type Safety int

const (
	// Safe fixes never change program behavior.
	Safe Safety = iota
	// Suggestion fixes are likely correct but worth a human glance.
	Suggestion
	// Unsafe fixes may change behavior and require an explicit opt-in.
	Unsafe
)

// Candidate pairs a diagnostic with the edit it proposes.
type Candidate struct {
	Diagnostic protocol.Diagnostic
	Edits      []protocol.TextEdit
	Safety     Safety
}

// SkipReason explains why a candidate was not applied.
type SkipReason int

const (
	SkipConflict SkipReason = iota
	SkipSafety
	SkipNoEdits
)

func (r SkipReason) String() string {
	switch r {
	case SkipConflict:
		return "conflicts with another fix"
	case SkipSafety:
		return "below safety threshold"
	case SkipNoEdits:
		return "no edits in fix"
	default:
		return "unknown reason"
	}
}

// Skipped records a candidate that could not be applied.
type Skipped struct {
	Diagnostic protocol.Diagnostic
	Reason     SkipReason
}

// Result is the outcome of merging a document's fix candidates.
type Result struct {
	Edits   []protocol.TextEdit
	Skipped []Skipped
}
