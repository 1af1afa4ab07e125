package lspserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/lang-tools/zls-core/internal/dispatch"
	"github.com/lang-tools/zls-core/internal/protocol"
	"github.com/lang-tools/zls-core/internal/syntaxcheck"
)

// publishDiagnostics runs the syntax checker against a document and pushes
// the result over textDocument/publishDiagnostics (spec.md §4.6's push
// model). Callers are expected to have already confirmed push mode is
// active.
func (s *Server) publishDiagnostics(ctx context.Context, doc *Document) {
	issues, err := s.checkDocument(ctx, doc.URI, []byte(doc.Content))
	if err != nil {
		s.logf(logrus.WarnLevel, protocol.MethodTextDocumentPublishDiagnostics, nil, "check failed for %s: %v", doc.URI, err)
		return
	}
	s.lintCache.set(doc.URI, doc.Version, issues)

	diagnostics := convertDiagnostics(issues)
	if err := lspNotify(ctx, s.conn, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentUri(doc.URI),
		Diagnostics: diagnostics,
	}); err != nil {
		s.logf(logrus.WarnLevel, protocol.MethodTextDocumentPublishDiagnostics, nil, "publish failed for %s: %v", doc.URI, err)
	}
}

// clearDiagnostics sends an empty diagnostics array for docURI, used on
// textDocument/didClose so a closed document's problems do not linger in
// the client's UI.
func (s *Server) clearDiagnostics(ctx context.Context, docURI string) {
	if err := lspNotify(ctx, s.conn, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentUri(docURI),
		Diagnostics: []*protocol.Diagnostic{},
	}); err != nil {
		s.logf(logrus.WarnLevel, protocol.MethodTextDocumentPublishDiagnostics, nil, "clear failed for %s: %v", docURI, err)
	}
}

// handleDiagnostic implements textDocument/diagnostic, the pull-model
// counterpart to publishDiagnostics (spec.md §4.6).
func (s *Server) handleDiagnostic(ctx context.Context, _ *dispatch.Arena, params *protocol.DocumentDiagnosticParams) (*protocol.DocumentDiagnosticResponse, error) {
	uri := string(params.TextDocument.URI)

	if doc := s.documents.Get(uri); doc != nil {
		resultID := fmt.Sprintf("v%d", doc.Version)
		if params.PreviousResultID != nil && *params.PreviousResultID == resultID {
			return &protocol.DocumentDiagnosticResponse{
				Unchanged: &protocol.RelatedUnchangedDocumentDiagnosticReport{Kind: "unchanged", ResultID: resultID},
			}, nil
		}

		issues, err := s.checkDocument(ctx, uri, []byte(doc.Content))
		if err != nil {
			return nil, protocol.NewTaxonomyError(protocol.ErrorCodeRequestFailed)
		}
		s.lintCache.set(uri, doc.Version, issues)

		return &protocol.DocumentDiagnosticResponse{
			Full: &protocol.RelatedFullDocumentDiagnosticReport{
				Kind:     "full",
				ResultID: protocol.PtrTo(resultID),
				Items:    convertDiagnostics(issues),
			},
		}, nil
	}

	return s.pullDiagnosticsFromDisk(ctx, uriToPath(uri), params.PreviousResultID)
}

// pullDiagnosticsFromDisk reads content from disk and checks it, for a
// document the client is pulling diagnostics for without having opened it.
func (s *Server) pullDiagnosticsFromDisk(ctx context.Context, filePath string, previousResultID *string) (*protocol.DocumentDiagnosticResponse, error) {
	content, err := os.ReadFile(filePath) //nolint:gosec // filePath derives from a client-supplied document URI
	if err != nil {
		return &protocol.DocumentDiagnosticResponse{
			Full: &protocol.RelatedFullDocumentDiagnosticReport{Kind: "full", Items: []*protocol.Diagnostic{}},
		}, nil
	}

	resultID := contentHash(content)
	if previousResultID != nil && *previousResultID == resultID {
		return &protocol.DocumentDiagnosticResponse{
			Unchanged: &protocol.RelatedUnchangedDocumentDiagnosticReport{Kind: "unchanged", ResultID: resultID},
		}, nil
	}

	issues, err := s.checker.Check(ctx, filePath, content)
	if err != nil {
		return &protocol.DocumentDiagnosticResponse{
			Full: &protocol.RelatedFullDocumentDiagnosticReport{Kind: "full", Items: []*protocol.Diagnostic{}},
		}, nil
	}

	return &protocol.DocumentDiagnosticResponse{
		Full: &protocol.RelatedFullDocumentDiagnosticReport{
			Kind:     "full",
			ResultID: protocol.PtrTo(resultID),
			Items:    convertDiagnostics(issues),
		},
	}, nil
}

// contentHash returns a truncated SHA-256 hex digest of content (16 hex
// chars), used as a pull-diagnostics result id for documents not open in
// the editor.
func contentHash(content []byte) string {
	h := sha256.Sum256(content)
	return hex.EncodeToString(h[:8])
}

// checkDocument runs the external syntax checker against a document's
// in-memory content, routing the document's own URI to a filesystem path
// the checker can report against.
func (s *Server) checkDocument(ctx context.Context, docURI string, content []byte) ([]syntaxcheck.Issue, error) {
	return s.checker.Check(ctx, uriToPath(docURI), content)
}

// convertDiagnostics converts syntax-checker issues into LSP diagnostics.
func convertDiagnostics(issues []syntaxcheck.Issue) []*protocol.Diagnostic {
	diagnostics := make([]*protocol.Diagnostic, 0, len(issues))
	for _, issue := range issues {
		diagnostics = append(diagnostics, &protocol.Diagnostic{
			Range:    issueRange(issue),
			Severity: protocol.PtrTo(severityToLSP(issue.Severity)),
			Source:   protocol.PtrTo(serverName),
			Message:  issue.Message,
		})
	}
	return diagnostics
}

// issueRange converts a syntax-checker issue's 1-based line and unshifted
// column into an LSP Range. Issues are point locations; the range is widened to the rest
// of the line so the diagnostic is visible in editors that squiggle only
// the reported range.
func issueRange(issue syntaxcheck.Issue) protocol.Range {
	line := clampUint32(int(issue.Line) - 1)
	char := clampUint32(int(issue.Column))
	return protocol.Range{
		Start: protocol.Position{Line: line, Character: char},
		End:   protocol.Position{Line: line, Character: char + 1000}, // clients clamp to the actual line length
	}
}

// severityToLSP converts a syntax-checker Severity to an LSP
// DiagnosticSeverity.
func severityToLSP(s syntaxcheck.Severity) protocol.DiagnosticSeverity {
	if s == syntaxcheck.SeverityWarning {
		return protocol.DiagnosticSeverityWarning
	}
	return protocol.DiagnosticSeverityError
}

// clampUint32 safely converts an int to uint32, clamping negative values to 0.
func clampUint32(v int) uint32 {
	if v < 0 {
		return 0
	}
	return uint32(v) //nolint:gosec // line/column numbers are well within uint32 range
}

// uriToPath converts a file:// URI to a local file path.
func uriToPath(docURI string) string {
	parsed, err := url.Parse(docURI)
	if err != nil {
		return strings.TrimPrefix(docURI, "file://")
	}
	path := parsed.Path
	// On Windows, file URIs look like file:///C:/path, so Path is /C:/path.
	if runtime.GOOS == "windows" && len(path) > 2 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}
	return filepath.FromSlash(path)
}
