package protocol

// Types for the feature-provider surface named in spec.md §6: the
// dispatcher decodes params into these and the handler table's stub
// handlers (internal/lspserver/featureproviders.go) pass them through to
// the optional per-feature provider interfaces declared there, consumed
// only through those contracts per spec.md §1 ("deliberately out of scope ... each individual
// feature provider").

type CompletionContext struct {
	TriggerCharacter *string `json:"triggerCharacter,omitzero"`
}

type CompletionParams struct {
	TextDocumentPositionParams
	Context *CompletionContext `json:"context,omitzero"`
}

type MarkupContent struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

type CompletionItem struct {
	Label         string         `json:"label"`
	Kind          *int           `json:"kind,omitzero"`
	Detail        *string        `json:"detail,omitzero"`
	Documentation *MarkupContent `json:"documentation,omitzero"`
	InsertText    *string        `json:"insertText,omitzero"`
}

type CompletionList struct {
	IsIncomplete bool             `json:"isIncomplete"`
	Items        []CompletionItem `json:"items"`
}

type SignatureHelpParams struct {
	TextDocumentPositionParams
}

type ParameterInformation struct {
	Label string `json:"label"`
}

type SignatureInformation struct {
	Label      string                 `json:"label"`
	Parameters []ParameterInformation `json:"parameters,omitzero"`
}

type SignatureHelp struct {
	Signatures      []SignatureInformation `json:"signatures"`
	ActiveSignature *uint32                `json:"activeSignature,omitzero"`
	ActiveParameter *uint32                `json:"activeParameter,omitzero"`
}

type Hover struct {
	Contents MarkupContent `json:"contents"`
	Range    *Range        `json:"range,omitzero"`
}

type DeclarationParams struct{ TextDocumentPositionParams }
type DefinitionParams struct{ TextDocumentPositionParams }
type TypeDefinitionParams struct{ TextDocumentPositionParams }
type ImplementationParams struct{ TextDocumentPositionParams }
type HoverParams struct{ TextDocumentPositionParams }

type ReferenceContext struct {
	IncludeDeclaration bool `json:"includeDeclaration"`
}

type ReferenceParams struct {
	TextDocumentPositionParams
	Context ReferenceContext `json:"context"`
}

type RenameParams struct {
	TextDocumentPositionParams
	NewName string `json:"newName"`
}

type DocumentHighlightParams struct{ TextDocumentPositionParams }

type DocumentHighlightKind int

type DocumentHighlight struct {
	Range Range                  `json:"range"`
	Kind  *DocumentHighlightKind `json:"kind,omitzero"`
}

type DocumentSymbolParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

type DocumentSymbol struct {
	Name           string           `json:"name"`
	Kind           int              `json:"kind"`
	Range          Range            `json:"range"`
	SelectionRange Range            `json:"selectionRange"`
	Children       []DocumentSymbol `json:"children,omitzero"`
}

type FoldingRangeParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

type FoldingRangeKind string

type FoldingRange struct {
	StartLine uint32            `json:"startLine"`
	EndLine   uint32            `json:"endLine"`
	Kind      *FoldingRangeKind `json:"kind,omitzero"`
}

type SelectionRangeParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Positions    []Position             `json:"positions"`
}

type SelectionRange struct {
	Range  Range           `json:"range"`
	Parent *SelectionRange `json:"parent,omitzero"`
}

type SemanticTokensParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

type SemanticTokensRangeParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Range        Range                  `json:"range"`
}

type SemanticTokens struct {
	Data []uint32 `json:"data"`
}

type InlayHintParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Range        Range                  `json:"range"`
}

type InlayHint struct {
	Position Position `json:"position"`
	Label    string   `json:"label"`
}

// CancelParams decodes the payload of $/cancelRequest (design note §9).
type CancelParams struct {
	ID RequestID `json:"id"`
}

// SetTraceParams decodes the payload of $/setTrace.
type SetTraceParams struct {
	Value TraceValue `json:"value"`
}

// ProgressParams decodes the payload of $/progress, accepted during
// initializing per spec.md §4.3 but otherwise inert in this core.
type ProgressParams struct {
	Token IntegerOrString `json:"token"`
	Value any             `json:"value"`
}
