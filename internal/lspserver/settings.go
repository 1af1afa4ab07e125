package lspserver

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lang-tools/zls-core/internal/dispatch"
	"github.com/lang-tools/zls-core/internal/protocol"
)

// handleDidChangeConfiguration implements workspace/didChangeConfiguration
// (spec.md §4.5's push model): the payload overrides the live configuration
// via the shared Subsystem.ApplyPush coercion rules, then diagnostics are
// either republished (push mode) or the client is asked to refresh its
// pulled diagnostics (pull mode). This core tracks a single workspace, not
// per-folder settings trees.
func (s *Server) handleDidChangeConfiguration(ctx context.Context, _ *dispatch.Arena, params *protocol.DidChangeConfigurationParams) {
	for _, w := range s.cfg.ApplyPush(params.Settings) {
		s.logf(logrus.WarnLevel, protocol.MethodWorkspaceDidChangeConfiguration, nil, "%s", w.String())
	}

	s.lintCache.clear()

	if s.pushDiagnosticsEnabled() {
		for _, doc := range s.documents.All() {
			s.publishDiagnostics(ctx, doc)
		}
		return
	}

	if s.diagnosticRefreshSupported() {
		reqCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		var discard any
		if err := s.conn.Call(reqCtx, protocol.MethodWorkspaceDiagnosticRefresh, nil).Await(reqCtx, &discard); err != nil {
			s.logf(logrus.WarnLevel, protocol.MethodWorkspaceDiagnosticRefresh, nil, "refresh request failed: %v", err)
		}
	}
}
