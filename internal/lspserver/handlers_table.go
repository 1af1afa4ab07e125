package lspserver

import (
	"github.com/lang-tools/zls-core/internal/dispatch"
	"github.com/lang-tools/zls-core/internal/protocol"
)

// buildHandlerTable assembles the static (method, handler) table spec.md
// §4.7 describes, binding every method the dispatcher routes to the
// corresponding method on s. This is the single place every handler in the
// package gets wired to the wire protocol.
func buildHandlerTable(s *Server) *dispatch.Table {
	t := dispatch.NewTable()

	dispatch.RegisterRequest(t, protocol.MethodInitialize, s.handleInitialize)
	dispatch.RegisterNotification(t, protocol.MethodInitialized, s.handleInitialized)
	dispatch.RegisterRequest(t, protocol.MethodShutdown, s.handleShutdown)
	dispatch.RegisterNotification(t, protocol.MethodExit, s.handleExit)
	dispatch.RegisterNotification(t, protocol.MethodSetTrace, s.handleSetTrace)
	dispatch.RegisterNotification(t, protocol.MethodProgress, s.handleProgress)

	dispatch.RegisterNotification(t, protocol.MethodTextDocumentDidOpen, s.handleDidOpen)
	dispatch.RegisterNotification(t, protocol.MethodTextDocumentDidChange, s.handleDidChange)
	dispatch.RegisterNotification(t, protocol.MethodTextDocumentDidSave, s.handleDidSave)
	dispatch.RegisterNotification(t, protocol.MethodTextDocumentDidClose, s.handleDidClose)
	dispatch.RegisterRequest(t, protocol.MethodTextDocumentWillSaveWaitUntil, s.handleWillSaveWaitUntil)

	dispatch.RegisterRequest(t, protocol.MethodTextDocumentDiagnostic, s.handleDiagnostic)
	dispatch.RegisterRequest(t, protocol.MethodTextDocumentCodeAction, s.handleCodeAction)
	dispatch.RegisterRequest(t, protocol.MethodTextDocumentFormatting, s.handleFormatting)
	dispatch.RegisterRequest(t, protocol.MethodWorkspaceExecuteCommand, s.handleExecuteCommand)
	dispatch.RegisterNotification(t, protocol.MethodWorkspaceDidChangeConfiguration, s.handleDidChangeConfiguration)

	dispatch.RegisterRequest(t, protocol.MethodTextDocumentCompletion, s.handleCompletion)
	dispatch.RegisterRequest(t, protocol.MethodTextDocumentHover, s.handleHover)
	dispatch.RegisterRequest(t, protocol.MethodTextDocumentSignatureHelp, s.handleSignatureHelp)
	dispatch.RegisterRequest(t, protocol.MethodTextDocumentDefinition, s.handleDefinition)
	dispatch.RegisterRequest(t, protocol.MethodTextDocumentTypeDefinition, s.handleTypeDefinition)
	dispatch.RegisterRequest(t, protocol.MethodTextDocumentImplementation, s.handleImplementation)
	dispatch.RegisterRequest(t, protocol.MethodTextDocumentDeclaration, s.handleDeclaration)
	dispatch.RegisterRequest(t, protocol.MethodTextDocumentReferences, s.handleReferences)
	dispatch.RegisterRequest(t, protocol.MethodTextDocumentRename, s.handleRename)
	dispatch.RegisterRequest(t, protocol.MethodTextDocumentDocumentHighlight, s.handleDocumentHighlight)
	dispatch.RegisterRequest(t, protocol.MethodTextDocumentDocumentSymbol, s.handleDocumentSymbol)
	dispatch.RegisterRequest(t, protocol.MethodTextDocumentFoldingRange, s.handleFoldingRange)
	dispatch.RegisterRequest(t, protocol.MethodTextDocumentSelectionRange, s.handleSelectionRange)
	dispatch.RegisterRequest(t, protocol.MethodTextDocumentSemanticTokensFull, s.handleSemanticTokensFull)
	dispatch.RegisterRequest(t, protocol.MethodTextDocumentSemanticTokensRange, s.handleSemanticTokensRange)
	dispatch.RegisterRequest(t, protocol.MethodTextDocumentInlayHint, s.handleInlayHint)

	return t
}
