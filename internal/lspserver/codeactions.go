package lspserver

import (
	"context"
	"strings"

	"github.com/lang-tools/zls-core/internal/dispatch"
	"github.com/lang-tools/zls-core/internal/protocol"
)

// handleCodeAction returns quick-fix and fix-all code actions for the
// requested range, reusing the checker results publishDiagnostics already
// cached for the document's current version when available.
func (s *Server) handleCodeAction(ctx context.Context, _ *dispatch.Arena, params *protocol.CodeActionParams) ([]protocol.CodeAction, error) {
	doc := s.documents.Get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}

	includeQuickFix := true
	includeFixAll := true
	if params.Context.Only != nil {
		includeQuickFix = kindRequested(params.Context.Only, protocol.CodeActionKindQuickFix)
		includeFixAll = kindRequested(params.Context.Only, protocol.CodeActionKindSourceFixAll)
	}

	content := []byte(doc.Content)
	issues, ok := s.lintCache.get(doc.URI, doc.Version)
	if !ok {
		var err error
		issues, err = s.checkDocument(ctx, doc.URI, content)
		if err != nil {
			return nil, nil
		}
		s.lintCache.set(doc.URI, doc.Version, issues)
	}

	var actions []protocol.CodeAction

	if includeQuickFix {
		diagnostics := convertDiagnostics(issues)
		for i, issue := range issues {
			if issue.FixedText == nil {
				continue
			}
			if !rangesOverlap(issueRange(issue), params.Range) {
				continue
			}
			edits := minimalTextEdit(content, []byte(*issue.FixedText))
			if len(edits) == 0 {
				continue
			}
			actions = append(actions, protocol.CodeAction{
				Title:       issue.Message,
				Kind:        protocol.PtrTo(protocol.CodeActionKindQuickFix),
				Diagnostics: protocol.PtrTo([]*protocol.Diagnostic{diagnostics[i]}),
				Edit: &protocol.WorkspaceEdit{
					Changes: map[protocol.DocumentUri][]*protocol.TextEdit{
						params.TextDocument.URI: edits,
					},
				},
			})
		}
	}

	if includeFixAll {
		if action := s.fixAllCodeAction(ctx, doc); action != nil {
			actions = append(actions, *action)
		}
	}

	return actions, nil
}

func kindRequested(only *[]protocol.CodeActionKind, kind protocol.CodeActionKind) bool {
	if only == nil {
		return true
	}
	for _, requested := range *only {
		if requested == kind {
			return true
		}
		if requested != "" && strings.HasPrefix(string(kind), string(requested)+".") {
			return true
		}
	}
	return false
}

// rangesOverlap reports whether two LSP ranges overlap. LSP ranges are
// half-open [start, end), so touching ranges (a.End == b.Start) do not
// overlap.
func rangesOverlap(a, b protocol.Range) bool {
	if a.End.Line < b.Start.Line || (a.End.Line == b.Start.Line && a.End.Character <= b.Start.Character) {
		return false
	}
	if b.End.Line < a.Start.Line || (b.End.Line == a.Start.Line && b.End.Character <= a.Start.Character) {
		return false
	}
	return true
}
