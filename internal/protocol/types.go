package protocol

import (
	jsonv2 "encoding/json/v2"

	"encoding/json/jsontext"
)

// Position, Range, and the document-sync/diagnostic/code-action/workspace
// types used across the handler table. Field shapes mirror the teacher's
// internal/lsp/protocol conventions (pointer-optional fields, plain JSON
// tags, encoding/json/v2 throughout).

type Position struct {
	Line      uint32 `json:"line"`
	Character uint32 `json:"character"`
}

type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type Location struct {
	URI   DocumentUri `json:"uri"`
	Range Range       `json:"range"`
}

type TextDocumentIdentifier struct {
	URI DocumentUri `json:"uri"`
}

type TextDocumentItem struct {
	URI        DocumentUri `json:"uri"`
	LanguageID string      `json:"languageId"`
	Version    int32       `json:"version"`
	Text       string      `json:"text"`
}

type VersionedTextDocumentIdentifier struct {
	TextDocumentIdentifier
	Version int32 `json:"version"`
}

type TextDocumentPositionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

type WorkspaceEdit struct {
	Changes map[DocumentUri][]*TextEdit `json:"changes,omitzero"`
}

// DidOpen/Change/Save/Close params.

type DidOpenTextDocumentParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

// TextDocumentContentChangeEvent is a single entry of contentChanges. Range
// is nil for a whole-document replacement (the only mode this server
// advertises via TextDocumentSyncKindIncremental's sibling "full" option in
// older clients); when non-nil, the core still treats the change as a
// whole-document replacement, since it owns no diff engine (out of scope
// per spec.md §1) and can only hand the document store full buffers.
type TextDocumentContentChangeEvent struct {
	Range *Range `json:"range,omitzero"`
	Text  string `json:"text"`
}

// IsWholeDocument reports whether this change event replaces the entire
// document (no Range given).
func (e TextDocumentContentChangeEvent) IsWholeDocument() bool { return e.Range == nil }

type DidChangeTextDocumentParams struct {
	TextDocument   VersionedTextDocumentIdentifier  `json:"textDocument"`
	ContentChanges []TextDocumentContentChangeEvent `json:"contentChanges"`
}

type DidSaveTextDocumentParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Text         *string                `json:"text,omitzero"`
}

type DidCloseTextDocumentParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

type WillSaveTextDocumentParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Reason       int                    `json:"reason"`
}

// Diagnostics.

type DiagnosticSeverity int

const (
	DiagnosticSeverityError       DiagnosticSeverity = 1
	DiagnosticSeverityWarning     DiagnosticSeverity = 2
	DiagnosticSeverityInformation DiagnosticSeverity = 3
	DiagnosticSeverityHint        DiagnosticSeverity = 4
)

type IntegerOrString struct {
	Integer *int64
	String  *string
}

func (v IntegerOrString) MarshalJSONTo(enc *jsontext.Encoder) error {
	assertAtMostOne("IntegerOrString: at most one of Integer/String may be set", v.Integer != nil, v.String != nil)
	switch {
	case v.String != nil:
		return enc.WriteToken(jsontext.String(*v.String))
	case v.Integer != nil:
		return enc.WriteToken(jsontext.Int(*v.Integer))
	default:
		return enc.WriteToken(jsontext.Null)
	}
}

func (v *IntegerOrString) UnmarshalJSONFrom(dec *jsontext.Decoder) error {
	tok, err := dec.ReadToken()
	if err != nil {
		return err
	}
	switch tok.Kind() {
	case '"':
		s := tok.String()
		v.String = &s
	case '0':
		n := tok.Int()
		v.Integer = &n
	default:
		*v = IntegerOrString{}
	}
	return nil
}

type CodeDescription struct {
	Href URI `json:"href"`
}

type Diagnostic struct {
	Range           Range              `json:"range"`
	Severity        *DiagnosticSeverity `json:"severity,omitzero"`
	Code            *IntegerOrString   `json:"code,omitzero"`
	CodeDescription *CodeDescription   `json:"codeDescription,omitzero"`
	Source          *string            `json:"source,omitzero"`
	Message         string             `json:"message"`
}

type PublishDiagnosticsParams struct {
	URI         DocumentUri   `json:"uri"`
	Version     *int32        `json:"version,omitzero"`
	Diagnostics []*Diagnostic `json:"diagnostics"`
}

type DocumentDiagnosticParams struct {
	TextDocument     TextDocumentIdentifier `json:"textDocument"`
	PreviousResultID *string                `json:"previousResultId,omitzero"`
}

type RelatedFullDocumentDiagnosticReport struct {
	Kind     string        `json:"kind"`
	ResultID *string       `json:"resultId,omitzero"`
	Items    []*Diagnostic `json:"items"`
}

type RelatedUnchangedDocumentDiagnosticReport struct {
	Kind     string `json:"kind"`
	ResultID string `json:"resultId"`
}

// DocumentDiagnosticResponse is the textDocument/diagnostic result union:
// exactly one of Full or Unchanged is set, mirroring the IntegerOrString/
// IntegerOrNull oneof convention used elsewhere in this package.
type DocumentDiagnosticResponse struct {
	Full      *RelatedFullDocumentDiagnosticReport
	Unchanged *RelatedUnchangedDocumentDiagnosticReport
}

func (v DocumentDiagnosticResponse) MarshalJSONTo(enc *jsontext.Encoder) error {
	assertOnlyOne("DocumentDiagnosticResponse: exactly one of Full/Unchanged must be set", v.Full != nil, v.Unchanged != nil)
	if v.Full != nil {
		return jsonv2.MarshalEncode(enc, v.Full)
	}
	return jsonv2.MarshalEncode(enc, v.Unchanged)
}

// Code actions.

type CodeActionContext struct {
	Diagnostics []*Diagnostic     `json:"diagnostics"`
	Only        *[]CodeActionKind `json:"only,omitzero"`
}

type CodeActionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Range        Range                  `json:"range"`
	Context      CodeActionContext      `json:"context"`
}

type CodeAction struct {
	Title       string            `json:"title"`
	Kind        *CodeActionKind   `json:"kind,omitzero"`
	Diagnostics *[]*Diagnostic    `json:"diagnostics,omitzero"`
	IsPreferred *bool             `json:"isPreferred,omitzero"`
	Edit        *WorkspaceEdit    `json:"edit,omitzero"`
	Command     *Command          `json:"command,omitzero"`
}

type Command struct {
	Title     string `json:"title"`
	Command   string `json:"command"`
	Arguments []any  `json:"arguments,omitzero"`
}

type ExecuteCommandParams struct {
	Command   string `json:"command"`
	Arguments []any  `json:"arguments,omitzero"`
}

type DocumentFormattingParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// Configuration pull/push.

type ConfigurationItem struct {
	Section *string `json:"section,omitzero"`
}

type ConfigurationParams struct {
	Items []ConfigurationItem `json:"items"`
}

type DidChangeConfigurationParams struct {
	Settings any `json:"settings"`
}

// Workspace edit application, capability registration, user messages.

type ApplyWorkspaceEditParams struct {
	Label *string        `json:"label,omitzero"`
	Edit  *WorkspaceEdit `json:"edit"`
}

type ApplyWorkspaceEditResult struct {
	Applied bool `json:"applied"`
}

type Registration struct {
	ID     string `json:"id"`
	Method string `json:"method"`
}

type RegistrationParams struct {
	Registrations []Registration `json:"registrations"`
}

type MessageType int

const (
	MessageTypeError   MessageType = 1
	MessageTypeWarning MessageType = 2
	MessageTypeInfo    MessageType = 3
	MessageTypeLog     MessageType = 4
)

type ShowMessageParams struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}
