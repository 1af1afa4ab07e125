package lspserver

import (
	"context"
	jsonv2 "encoding/json/v2"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/lang-tools/zls-core/internal/capability"
	"github.com/lang-tools/zls-core/internal/dispatch"
	"github.com/lang-tools/zls-core/internal/lifecycle"
	"github.com/lang-tools/zls-core/internal/protocol"
)

// The trigger characters below and the rest of the server's advertised
// capability set are constants, not configuration: spec.md §4.4 pins
// signature help and completion trigger characters and the fixed set of
// provider flags every client is told about regardless of negotiation.
var (
	signatureHelpTriggerChars = []string{"(", ","}
	completionTriggerChars    = []string{".", ":", "@", "]", "/"}
	semanticTokenTypes        = []string{"namespace", "type", "function", "variable", "parameter", "keyword", "comment", "string", "number", "operator"}
	semanticTokenModifiers    = []string{"declaration", "readonly", "deprecated"}
)

// handleInitialize runs the capability negotiator (internal/capability)
// exactly once, transitions the lifecycle machine, and advertises this
// server's fixed capability set (spec.md §4.4).
func (s *Server) handleInitialize(ctx context.Context, arena *dispatch.Arena, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	s.lifecycle.BeginInitialize()

	snap := capability.Negotiate(params)
	s.setCapabilities(snap)

	// Default: prefer pull diagnostics (LSP 3.17) over push when the client
	// supports textDocument/diagnostic, to avoid duplicate diagnostics in
	// editors that implement both. InitializationOptions.DisablePushDiagnostics
	// always wins when explicitly set.
	push := !snap.SupportsDiagnosticPull
	if params.InitializationOptions != nil && params.InitializationOptions.DisablePushDiagnostics != nil {
		push = !*params.InitializationOptions.DisablePushDiagnostics
	}
	s.diagMu.Lock()
	s.pushDiagnostics = push
	s.supportsDiagnosticPullMode = snap.SupportsDiagnosticPull
	s.supportsDiagnosticRefresh = snap.SupportsDiagnosticRefresh
	s.diagMu.Unlock()

	ver := serverVersion()
	result := &protocol.InitializeResult{
		ServerInfo: &protocol.ServerInfo{Name: serverName, Version: &ver},
		Capabilities: &protocol.ServerCapabilities{
			PositionEncoding: string(snap.OffsetEncoding),
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose:         true,
				Change:            protocol.TextDocumentSyncKindIncremental,
				WillSave:          true,
				WillSaveWaitUntil: true,
				Save:              &protocol.SaveOptions{IncludeText: false},
			},
			CompletionProvider:        &protocol.CompletionOptions{TriggerCharacters: completionTriggerChars},
			HoverProvider:             true,
			SignatureHelpProvider:     &protocol.SignatureHelpOptions{TriggerCharacters: signatureHelpTriggerChars},
			DeclarationProvider:       true,
			DefinitionProvider:        true,
			TypeDefinitionProvider:    true,
			ImplementationProvider:    true,
			ReferencesProvider:        true,
			DocumentHighlightProvider: true,
			DocumentSymbolProvider:    true,
			CodeActionProvider: &protocol.CodeActionOptions{
				CodeActionKinds: []protocol.CodeActionKind{protocol.CodeActionKindQuickFix, protocol.CodeActionKindSourceFixAll},
			},
			DocumentFormattingProvider: true,
			RenameProvider:             true,
			FoldingRangeProvider:       true,
			SelectionRangeProvider:     true,
			InlayHintProvider:          true,
			ExecuteCommandProvider:     &protocol.ExecuteCommandOptions{Commands: []string{commandApplyAllFixes}},
			DiagnosticProvider: &protocol.DiagnosticOptions{
				Identifier:            serverName,
				InterFileDependencies: false,
				WorkspaceDiagnostics:  false,
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{TokenTypes: semanticTokenTypes, TokenModifiers: semanticTokenModifiers},
				Full:   true,
				Range:  true,
			},
		},
	}

	s.logf(logrus.InfoLevel, "initialize", logrus.Fields{
		"client":     clientInfoString(params),
		"session_id": s.sessionID,
	}, "negotiated session")

	return result, nil
}

// handleInitialized completes the lifecycle transition, registers for
// configuration-change notifications when the client needs dynamic
// registration, and kicks off the configuration pull (§4.5) when
// supported.
func (s *Server) handleInitialized(ctx context.Context, arena *dispatch.Arena, _ *struct{}) {
	s.lifecycle.CompleteInitialized()

	snap := s.capabilities()
	if snap.SupportsDidChangeConfigDynamicRegistration {
		s.registerCapability(ctx, protocol.MethodWorkspaceDidChangeConfiguration)
	}
	if snap.SupportsConfigurationPull && !s.cfg.Recording {
		s.pullConfiguration(ctx)
	}
}

// handleShutdown transitions to the shutdown state. Per spec.md §4.3 this
// is the only request allowed to do so; it always answers with a null
// result.
func (s *Server) handleShutdown(ctx context.Context, arena *dispatch.Arena, _ *struct{}) (protocol.Null, error) {
	s.lifecycle.BeginShutdown()
	return protocol.Null{}, nil
}

// handleExit applies the lifecycle's exit transition (none outside
// initialized/shutdown) and signals RunStdio to close the connection; only
// an exit after shutdown is logged with exit code 0.
func (s *Server) handleExit(ctx context.Context, arena *dispatch.Arena, _ *struct{}) {
	status := s.lifecycle.Exit()
	exitCode := 0
	if status != lifecycle.StatusExitingSuccess {
		exitCode = 1
	}
	s.logf(logrus.InfoLevel, "exit", logrus.Fields{"exit_code": exitCode}, "server exiting")
	close(s.exitCh)
}

// handleSetTrace updates the session's trace flag.
func (s *Server) handleSetTrace(ctx context.Context, arena *dispatch.Arena, params *protocol.SetTraceParams) {
	s.capsMu.Lock()
	s.caps.TraceEnabled = params.Value != protocol.TraceOff
	s.capsMu.Unlock()
}

// handleProgress accepts $/progress during initializing (lifecycle §4.3
// allows it) but this core does not surface progress tokens anywhere.
func (s *Server) handleProgress(ctx context.Context, arena *dispatch.Arena, _ *protocol.ProgressParams) {
}

func (s *Server) registerCapability(ctx context.Context, method string) {
	id := protocol.RegisterCapabilityID(method)
	params := &protocol.RegistrationParams{Registrations: []protocol.Registration{{ID: id, Method: method}}}
	raw, err := jsonv2.Marshal(params)
	if err != nil {
		return
	}
	go func() {
		var discard any
		_ = s.conn.Call(ctx, protocol.MethodClientRegisterCapability, rawParams(raw)).Await(ctx, &discard)
	}()
}

// pullConfiguration issues the workspace/configuration request through
// conn.Call (which assigns the request id) and applies the awaited result
// with ApplyPullResult.
func (s *Server) pullConfiguration(ctx context.Context) {
	params := s.cfg.BuildPullParams()
	raw, err := jsonv2.Marshal(params)
	if err != nil {
		return
	}
	go func() {
		var values []any
		if err := s.conn.Call(ctx, protocol.MethodWorkspaceConfiguration, rawParams(raw)).Await(ctx, &values); err != nil {
			s.logf(logrus.WarnLevel, "workspace/configuration", nil, "pull failed: %v", err)
			return
		}
		s.cfg.ApplyPullResult(values)
	}()
}

func clientInfoString(params *protocol.InitializeParams) string {
	if params == nil || params.ClientInfo == nil {
		return "unknown"
	}
	if params.ClientInfo.Version != nil {
		return params.ClientInfo.Name + " " + *params.ClientInfo.Version
	}
	return params.ClientInfo.Name
}

// newSessionID generates the recording-session correlator named in
// spec.md §6 ("persisted state: a recording session path").
func newSessionID() string {
	return uuid.NewString()
}
