package protocol

import "encoding/json/jsontext"

// This file models the nested portion of the client's advertised capability
// tree that the negotiator in internal/capability reads defensively (every
// group optional), following the same nested-pointer-struct convention the
// teacher's generated protocol package uses for LSP's deeply optional trees.

type ClientCapabilities struct {
	Workspace    *WorkspaceClientCapabilities    `json:"workspace,omitzero"`
	TextDocument *TextDocumentClientCapabilities `json:"textDocument,omitzero"`
	General      *GeneralClientCapabilities      `json:"general,omitzero"`
}

type WorkspaceClientCapabilities struct {
	ApplyEdit              *bool                            `json:"applyEdit,omitzero"`
	Configuration          *bool                             `json:"configuration,omitzero"`
	DidChangeConfiguration *DidChangeConfigurationClientCaps `json:"didChangeConfiguration,omitzero"`
	Diagnostics            *WorkspaceDiagnosticClientCaps    `json:"diagnostics,omitzero"`
}

type DidChangeConfigurationClientCaps struct {
	DynamicRegistration *bool `json:"dynamicRegistration,omitzero"`
}

type WorkspaceDiagnosticClientCaps struct {
	RefreshSupport *bool `json:"refreshSupport,omitzero"`
}

type TextDocumentClientCapabilities struct {
	Synchronization *TextDocumentSyncClientCaps `json:"synchronization,omitzero"`
	Completion      *CompletionClientCaps       `json:"completion,omitzero"`
	Hover           *HoverClientCaps            `json:"hover,omitzero"`
	CodeAction      *CodeActionClientCaps       `json:"codeAction,omitzero"`
	Diagnostic      *DiagnosticClientCaps       `json:"diagnostic,omitzero"`
	PositionEncoding *[]string                  `json:"positionEncoding,omitzero"`
}

type TextDocumentSyncClientCaps struct {
	WillSave            *bool `json:"willSave,omitzero"`
	WillSaveWaitUntil   *bool `json:"willSaveWaitUntil,omitzero"`
	DidSave             *bool `json:"didSave,omitzero"`
}

type CompletionClientCaps struct {
	CompletionItem *CompletionItemClientCaps `json:"completionItem,omitzero"`
}

type CompletionItemClientCaps struct {
	SnippetSupport          *bool     `json:"snippetSupport,omitzero"`
	DocumentationFormat     *[]string `json:"documentationFormat,omitzero"`
	LabelDetailsSupport     *bool     `json:"labelDetailsSupport,omitzero"`
}

type HoverClientCaps struct {
	ContentFormat *[]string `json:"contentFormat,omitzero"`
}

type CodeActionClientCaps struct {
	CodeActionLiteralSupport *CodeActionLiteralSupport `json:"codeActionLiteralSupport,omitzero"`
}

type CodeActionLiteralSupport struct {
	CodeActionKind *CodeActionKindValueSet `json:"codeActionKind,omitzero"`
}

type CodeActionKindValueSet struct {
	ValueSet []CodeActionKind `json:"valueSet,omitzero"`
}

type DiagnosticClientCaps struct{}

type GeneralClientCapabilities struct {
	PositionEncodings *[]string `json:"positionEncodings,omitzero"`
}

type ClientInfo struct {
	Name    string  `json:"name"`
	Version *string `json:"version,omitzero"`
}

type InitializationOptions struct {
	DisablePushDiagnostics *bool `json:"disablePushDiagnostics,omitzero"`
	AutofixMode            *string `json:"autofixMode,omitzero"`
}

type TraceValue string

const (
	TraceOff      TraceValue = "off"
	TraceMessages TraceValue = "messages"
	TraceVerbose  TraceValue = "verbose"
)

type IntegerOrNull struct {
	Integer *int64
}

func (v IntegerOrNull) MarshalJSONTo(enc *jsontext.Encoder) error {
	if v.Integer == nil {
		return enc.WriteToken(jsontext.Null)
	}
	return enc.WriteToken(jsontext.Int(*v.Integer))
}

func (v *IntegerOrNull) UnmarshalJSONFrom(dec *jsontext.Decoder) error {
	tok, err := dec.ReadToken()
	if err != nil {
		return err
	}
	if tok.Kind() == '0' {
		n := tok.Int()
		v.Integer = &n
		return nil
	}
	v.Integer = nil
	return nil
}

type InitializeParams struct {
	ProcessId             IntegerOrNull           `json:"processId,omitzero"`
	ClientInfo            *ClientInfo             `json:"clientInfo,omitzero"`
	Capabilities          *ClientCapabilities      `json:"capabilities,omitzero"`
	InitializationOptions *InitializationOptions  `json:"initializationOptions,omitzero"`
	Trace                 *TraceValue             `json:"trace,omitzero"`
}

// ServerInfo identifies this server in the InitializeResult (spec.md
// scenario 1 expects name == "zls").
type ServerInfo struct {
	Name    string  `json:"name"`
	Version *string `json:"version,omitzero"`
}

type InitializeResult struct {
	Capabilities *ServerCapabilities `json:"capabilities"`
	ServerInfo   *ServerInfo         `json:"serverInfo,omitzero"`
}

// ServerCapabilities is the fixed set the negotiator advertises (§4.4).
type ServerCapabilities struct {
	PositionEncoding           string                                   `json:"positionEncoding"`
	TextDocumentSync           *TextDocumentSyncOptions                 `json:"textDocumentSync,omitzero"`
	CompletionProvider         *CompletionOptions                       `json:"completionProvider,omitzero"`
	HoverProvider              bool                                     `json:"hoverProvider,omitzero"`
	SignatureHelpProvider      *SignatureHelpOptions                    `json:"signatureHelpProvider,omitzero"`
	DeclarationProvider        bool                                     `json:"declarationProvider,omitzero"`
	DefinitionProvider         bool                                     `json:"definitionProvider,omitzero"`
	TypeDefinitionProvider     bool                                     `json:"typeDefinitionProvider,omitzero"`
	ImplementationProvider     bool                                     `json:"implementationProvider,omitzero"`
	ReferencesProvider         bool                                     `json:"referencesProvider,omitzero"`
	DocumentHighlightProvider  bool                                     `json:"documentHighlightProvider,omitzero"`
	DocumentSymbolProvider     bool                                     `json:"documentSymbolProvider,omitzero"`
	CodeActionProvider         *CodeActionOptions                       `json:"codeActionProvider,omitzero"`
	DocumentFormattingProvider bool                                     `json:"documentFormattingProvider,omitzero"`
	RenameProvider             bool                                     `json:"renameProvider,omitzero"`
	FoldingRangeProvider       bool                                     `json:"foldingRangeProvider,omitzero"`
	SelectionRangeProvider     bool                                     `json:"selectionRangeProvider,omitzero"`
	InlayHintProvider          bool                                     `json:"inlayHintProvider,omitzero"`
	ExecuteCommandProvider     *ExecuteCommandOptions                   `json:"executeCommandProvider,omitzero"`
	DiagnosticProvider         *DiagnosticOptions                       `json:"diagnosticProvider,omitzero"`
	SemanticTokensProvider     *SemanticTokensOptions                   `json:"semanticTokensProvider,omitzero"`
}

type TextDocumentSyncOptions struct {
	OpenClose         bool                `json:"openClose,omitzero"`
	Change            int                 `json:"change"`
	WillSave          bool                `json:"willSave,omitzero"`
	WillSaveWaitUntil bool                `json:"willSaveWaitUntil,omitzero"`
	Save              *SaveOptions        `json:"save,omitzero"`
}

const TextDocumentSyncKindIncremental = 2

type SaveOptions struct {
	IncludeText bool `json:"includeText,omitzero"`
}

type CompletionOptions struct {
	TriggerCharacters []string `json:"triggerCharacters,omitzero"`
}

type SignatureHelpOptions struct {
	TriggerCharacters []string `json:"triggerCharacters,omitzero"`
}

type CodeActionKind string

const (
	CodeActionKindQuickFix CodeActionKind = "quickfix"
	CodeActionKindSourceFixAll CodeActionKind = "source.fixAll"
)

type CodeActionOptions struct {
	CodeActionKinds []CodeActionKind `json:"codeActionKinds,omitzero"`
}

type ExecuteCommandOptions struct {
	Commands []string `json:"commands"`
}

type DiagnosticOptions struct {
	Identifier            string `json:"identifier,omitzero"`
	InterFileDependencies bool   `json:"interFileDependencies,omitzero"`
	WorkspaceDiagnostics  bool   `json:"workspaceDiagnostics,omitzero"`
}

type SemanticTokensLegend struct {
	TokenTypes     []string `json:"tokenTypes"`
	TokenModifiers []string `json:"tokenModifiers"`
}

type SemanticTokensOptions struct {
	Legend SemanticTokensLegend `json:"legend"`
	Full   bool                 `json:"full,omitzero"`
	Range  bool                 `json:"range,omitzero"`
}
