// Package capability implements the capability negotiator from spec.md
// §4.4: it reads the client's advertised tree defensively (every nested
// group optional) and collapses it into a flat, read-only snapshot for the
// session, grounded on the defensive-capability-tree-reading pattern in the
// teacher's internal/lspserver/diagnostic_mode.go.
package capability

import (
	"strings"

	"github.com/lang-tools/zls-core/internal/protocol"
)

// OffsetEncoding is the position-measurement unit (spec.md §3).
type OffsetEncoding string

const (
	OffsetEncodingUTF8  OffsetEncoding = "utf-8"
	OffsetEncodingUTF16 OffsetEncoding = "utf-16"
	OffsetEncodingUTF32 OffsetEncoding = "utf-32"
)

// Snapshot is the flat boolean/enum capability record derived once during
// `initialize` and frozen thereafter (spec.md §3, "ClientCapabilities").
type Snapshot struct {
	OffsetEncoding                             OffsetEncoding
	SupportsSnippets                           bool
	SupportsApplyEdit                          bool
	SupportsWillSave                           bool
	SupportsWillSaveWaitUntil                  bool
	SupportsPublishDiagnostics                 bool
	SupportsCodeActionFixAll                   bool
	HoverMarkdown                              bool
	CompletionDocMarkdown                      bool
	SupportsLabelDetails                       bool
	SupportsConfigurationPull                  bool
	SupportsDidChangeConfigDynamicRegistration bool
	SupportsDiagnosticPull                     bool
	SupportsDiagnosticRefresh                  bool
	TraceEnabled                               bool

	// MaxDetailLength is a tuning knob the client-quirk table may adjust
	// (design note §9).
	MaxDetailLength int
}

// Negotiate derives a Snapshot from the client's advertised capabilities,
// applying offset-encoding preference, hover/completion markup-ordering
// rules, and the client-quirk table, in that order (§4.4).
func Negotiate(params *protocol.InitializeParams) Snapshot {
	snap := Snapshot{
		OffsetEncoding:  chooseOffsetEncoding(params),
		MaxDetailLength: defaultMaxDetailLength,
	}

	if params == nil || params.Capabilities == nil {
		return applyQuirks(params, snap)
	}
	caps := params.Capabilities

	if ws := caps.Workspace; ws != nil {
		snap.SupportsApplyEdit = boolVal(ws.ApplyEdit)
		snap.SupportsConfigurationPull = boolVal(ws.Configuration)
		if dcc := ws.DidChangeConfiguration; dcc != nil {
			snap.SupportsDidChangeConfigDynamicRegistration = boolVal(dcc.DynamicRegistration)
		}
		if diag := ws.Diagnostics; diag != nil {
			snap.SupportsDiagnosticRefresh = boolVal(diag.RefreshSupport)
		}
	}

	if td := caps.TextDocument; td != nil {
		if sync := td.Synchronization; sync != nil {
			snap.SupportsWillSave = boolVal(sync.WillSave)
			snap.SupportsWillSaveWaitUntil = boolVal(sync.WillSaveWaitUntil)
			snap.SupportsPublishDiagnostics = true
		}
		snap.SupportsDiagnosticPull = td.Diagnostic != nil
		if comp := td.Completion; comp != nil && comp.CompletionItem != nil {
			snap.SupportsSnippets = boolVal(comp.CompletionItem.SnippetSupport)
			snap.SupportsLabelDetails = boolVal(comp.CompletionItem.LabelDetailsSupport)
			snap.CompletionDocMarkdown = prefersMarkdownFirst(comp.CompletionItem.DocumentationFormat)
		}
		if hover := td.Hover; hover != nil {
			snap.HoverMarkdown = prefersMarkdownFirst(hover.ContentFormat)
		}
		if ca := td.CodeAction; ca != nil && ca.CodeActionLiteralSupport != nil && ca.CodeActionLiteralSupport.CodeActionKind != nil {
			for _, k := range ca.CodeActionLiteralSupport.CodeActionKind.ValueSet {
				if strings.HasPrefix(string(k), "source.fixAll") {
					snap.SupportsCodeActionFixAll = true
				}
			}
		}
	}

	if params.Trace != nil && *params.Trace != protocol.TraceOff {
		snap.TraceEnabled = true
	}

	return applyQuirks(params, snap)
}

const defaultMaxDetailLength = 1 << 16

func boolVal(p *bool) bool { return p != nil && *p }

// prefersMarkdownFirst implements "markdown iff the client lists markdown
// before plaintext in its ordered preference list" (§4.4).
func prefersMarkdownFirst(formats *[]string) bool {
	if formats == nil {
		return false
	}
	for _, f := range *formats {
		switch f {
		case "markdown":
			return true
		case "plaintext":
			return false
		}
	}
	return false
}

// chooseOffsetEncoding implements "prefer utf-8 if offered, else utf-32,
// else default utf-16" (§4.4) over the client's advertised
// general.positionEncodings list.
func chooseOffsetEncoding(params *protocol.InitializeParams) OffsetEncoding {
	if params == nil || params.Capabilities == nil || params.Capabilities.General == nil {
		return OffsetEncodingUTF16
	}
	offered := params.Capabilities.General.PositionEncodings
	if offered == nil {
		return OffsetEncodingUTF16
	}
	hasUTF32 := false
	for _, enc := range *offered {
		switch enc {
		case string(OffsetEncodingUTF8):
			return OffsetEncodingUTF8
		case string(OffsetEncodingUTF32):
			hasUTF32 = true
		}
	}
	if hasUTF32 {
		return OffsetEncodingUTF32
	}
	return OffsetEncodingUTF16
}
