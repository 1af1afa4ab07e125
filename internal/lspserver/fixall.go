package lspserver

import (
	"context"

	"github.com/lang-tools/zls-core/internal/fix"
	"github.com/lang-tools/zls-core/internal/protocol"
	"github.com/lang-tools/zls-core/internal/syntaxcheck"
)

// fixAllCodeAction builds the source.fixAll code action for a document by
// merging every checker-provided fix into one non-conflicting edit set.
func (s *Server) fixAllCodeAction(ctx context.Context, doc *Document) *protocol.CodeAction {
	edits := s.computeFixEdits(ctx, doc.URI, []byte(doc.Content), fix.Safe)
	if len(edits) == 0 {
		return nil
	}

	return &protocol.CodeAction{
		Title:       "Fix all auto-fixable problems",
		Kind:        protocol.PtrTo(protocol.CodeActionKindSourceFixAll),
		IsPreferred: protocol.PtrTo(true),
		Edit: &protocol.WorkspaceEdit{
			Changes: map[protocol.DocumentUri][]*protocol.TextEdit{
				protocol.DocumentUri(doc.URI): edits,
			},
		},
	}
}

// computeFixEdits runs the syntax checker against content and merges
// whatever in-place fixes it reports into one edit set at or below safety,
// per spec.md §4.8's fixAll semantics.
func (s *Server) computeFixEdits(ctx context.Context, docURI string, content []byte, safety fix.Safety) []*protocol.TextEdit {
	issues, err := s.checker.Check(ctx, uriToPath(docURI), content)
	if err != nil {
		return nil
	}

	candidates := issueFixCandidates(content, issues)
	if len(candidates) == 0 {
		return nil
	}

	result := fix.Merge(candidates, safety)
	if len(result.Edits) == 0 {
		return nil
	}

	edits := make([]*protocol.TextEdit, len(result.Edits))
	for i := range result.Edits {
		edits[i] = &result.Edits[i]
	}
	return edits
}

// issueFixCandidates pairs each issue carrying a checker-produced fix with
// the minimal edit that turns content into the fixed text. The checker
// reports a fix as the whole corrected document, so every candidate's edit
// is derived from a prefix/suffix diff against the original buffer
// (internal/lspserver's minimalTextEdit), not a per-issue range.
func issueFixCandidates(content []byte, issues []syntaxcheck.Issue) []fix.Candidate {
	diagnostics := convertDiagnostics(issues)
	candidates := make([]fix.Candidate, 0, len(issues))
	for i, issue := range issues {
		if issue.FixedText == nil {
			continue
		}
		edits := minimalTextEdit(content, []byte(*issue.FixedText))
		if len(edits) == 0 {
			continue
		}
		protoEdits := make([]protocol.TextEdit, len(edits))
		for j, e := range edits {
			protoEdits[j] = *e
		}
		candidates = append(candidates, fix.Candidate{
			Diagnostic: *diagnostics[i],
			Edits:      protoEdits,
			Safety:     fix.Safe,
		})
	}
	return candidates
}
