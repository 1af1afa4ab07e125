package protocol

// Method name constants for the surface the dispatcher routes (spec.md §6).
// Client -> server.
const (
	MethodInitialize          = "initialize"
	MethodInitialized         = "initialized"
	MethodShutdown            = "shutdown"
	MethodExit                = "exit"
	MethodCancelRequest       = "$/cancelRequest"
	MethodSetTrace            = "$/setTrace"
	MethodProgress            = "$/progress"

	MethodTextDocumentDidOpen             = "textDocument/didOpen"
	MethodTextDocumentDidChange           = "textDocument/didChange"
	MethodTextDocumentDidSave             = "textDocument/didSave"
	MethodTextDocumentDidClose            = "textDocument/didClose"
	MethodTextDocumentWillSaveWaitUntil   = "textDocument/willSaveWaitUntil"
	MethodTextDocumentSemanticTokensFull  = "textDocument/semanticTokens/full"
	MethodTextDocumentSemanticTokensRange = "textDocument/semanticTokens/range"
	MethodTextDocumentInlayHint           = "textDocument/inlayHint"
	MethodTextDocumentCompletion          = "textDocument/completion"
	MethodTextDocumentSignatureHelp       = "textDocument/signatureHelp"
	MethodTextDocumentDefinition          = "textDocument/definition"
	MethodTextDocumentTypeDefinition      = "textDocument/typeDefinition"
	MethodTextDocumentImplementation      = "textDocument/implementation"
	MethodTextDocumentDeclaration         = "textDocument/declaration"
	MethodTextDocumentHover               = "textDocument/hover"
	MethodTextDocumentDocumentSymbol      = "textDocument/documentSymbol"
	MethodTextDocumentFormatting          = "textDocument/formatting"
	MethodTextDocumentRename              = "textDocument/rename"
	MethodTextDocumentReferences          = "textDocument/references"
	MethodTextDocumentDocumentHighlight   = "textDocument/documentHighlight"
	MethodTextDocumentCodeAction          = "textDocument/codeAction"
	MethodTextDocumentFoldingRange        = "textDocument/foldingRange"
	MethodTextDocumentSelectionRange      = "textDocument/selectionRange"
	MethodTextDocumentDiagnostic          = "textDocument/diagnostic"
	MethodTextDocumentPublishDiagnostics  = "textDocument/publishDiagnostics"

	MethodWorkspaceDidChangeConfiguration = "workspace/didChangeConfiguration"
	MethodWorkspaceExecuteCommand         = "workspace/executeCommand"
	MethodWorkspaceApplyEdit              = "workspace/applyEdit"
	MethodWorkspaceConfiguration          = "workspace/configuration"
	MethodWorkspaceDiagnosticRefresh      = "workspace/diagnostic/refresh"

	MethodClientRegisterCapability = "client/registerCapability"
	MethodWindowShowMessage        = "window/showMessage"
)

// Well-known correlation ids for server-originated requests (spec.md §6).
const (
	WellKnownIDApplyEdit       = "apply_edit"
	WellKnownIDConfiguration   = "i_haz_configuration"
	registerCapabilityIDPrefix = "register-"
)

// RegisterCapabilityID builds the well-known id for a capability
// registration request for the given method.
func RegisterCapabilityID(method string) string {
	return registerCapabilityIDPrefix + method
}

// IsRegisterCapabilityID reports whether id is a `register-<method>` id and,
// if so, returns the method name.
func IsRegisterCapabilityID(id string) (method string, ok bool) {
	if len(id) <= len(registerCapabilityIDPrefix) {
		return "", false
	}
	if id[:len(registerCapabilityIDPrefix)] != registerCapabilityIDPrefix {
		return "", false
	}
	return id[len(registerCapabilityIDPrefix):], true
}
