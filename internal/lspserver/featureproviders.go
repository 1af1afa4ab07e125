package lspserver

import (
	"context"

	"github.com/lang-tools/zls-core/internal/dispatch"
	"github.com/lang-tools/zls-core/internal/protocol"
)

// The per-feature provider interfaces below are the collaborators spec.md
// §1 calls out as deliberately out of scope for this core: "each
// individual feature provider" (completion, hover, go-to-definition, and
// so on) is a pluggable implementation the embedder supplies. Features is
// any so an embedder can satisfy only the interfaces it has an
// implementation for — the classic Go optional-interface pattern (mirrors
// io.Hijacker-style capability detection) rather than one interface with a
// fixed method set every embedder must implement in full.
//
// When Features implements none of a handler's interface, the handler
// returns a null result, per spec.md §4.7 ("unknown URIs return a null
// result, not an error" generalizes to "no provider wired").

type CompletionProvider interface {
	Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error)
}

type HoverProvider interface {
	Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error)
}

type SignatureHelpProvider interface {
	SignatureHelp(ctx context.Context, params *protocol.SignatureHelpParams) (*protocol.SignatureHelp, error)
}

type DefinitionProvider interface {
	Definition(ctx context.Context, params *protocol.DefinitionParams) ([]protocol.Location, error)
}

type TypeDefinitionProvider interface {
	TypeDefinition(ctx context.Context, params *protocol.TypeDefinitionParams) ([]protocol.Location, error)
}

type ImplementationProvider interface {
	Implementation(ctx context.Context, params *protocol.ImplementationParams) ([]protocol.Location, error)
}

type DeclarationProvider interface {
	Declaration(ctx context.Context, params *protocol.DeclarationParams) ([]protocol.Location, error)
}

type ReferencesProvider interface {
	References(ctx context.Context, params *protocol.ReferenceParams) ([]protocol.Location, error)
}

type RenameProvider interface {
	Rename(ctx context.Context, params *protocol.RenameParams) (*protocol.WorkspaceEdit, error)
}

type DocumentHighlightProvider interface {
	DocumentHighlight(ctx context.Context, params *protocol.DocumentHighlightParams) ([]protocol.DocumentHighlight, error)
}

type DocumentSymbolProvider interface {
	DocumentSymbol(ctx context.Context, params *protocol.DocumentSymbolParams) ([]protocol.DocumentSymbol, error)
}

type FoldingRangeProvider interface {
	FoldingRange(ctx context.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error)
}

type SelectionRangeProvider interface {
	SelectionRange(ctx context.Context, params *protocol.SelectionRangeParams) ([]protocol.SelectionRange, error)
}

type SemanticTokensProvider interface {
	SemanticTokensFull(ctx context.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error)
	SemanticTokensRange(ctx context.Context, params *protocol.SemanticTokensRangeParams) (*protocol.SemanticTokens, error)
}

type InlayHintProvider interface {
	InlayHint(ctx context.Context, params *protocol.InlayHintParams) ([]protocol.InlayHint, error)
}

func (s *Server) handleCompletion(ctx context.Context, _ *dispatch.Arena, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	if p, ok := s.features.(CompletionProvider); ok {
		return p.Completion(ctx, params)
	}
	return nil, nil
}

func (s *Server) handleHover(ctx context.Context, _ *dispatch.Arena, params *protocol.HoverParams) (*protocol.Hover, error) {
	if p, ok := s.features.(HoverProvider); ok {
		return p.Hover(ctx, params)
	}
	return nil, nil
}

func (s *Server) handleSignatureHelp(ctx context.Context, _ *dispatch.Arena, params *protocol.SignatureHelpParams) (*protocol.SignatureHelp, error) {
	if p, ok := s.features.(SignatureHelpProvider); ok {
		return p.SignatureHelp(ctx, params)
	}
	return nil, nil
}

func (s *Server) handleDefinition(ctx context.Context, _ *dispatch.Arena, params *protocol.DefinitionParams) ([]protocol.Location, error) {
	if p, ok := s.features.(DefinitionProvider); ok {
		return p.Definition(ctx, params)
	}
	return nil, nil
}

func (s *Server) handleTypeDefinition(ctx context.Context, _ *dispatch.Arena, params *protocol.TypeDefinitionParams) ([]protocol.Location, error) {
	if p, ok := s.features.(TypeDefinitionProvider); ok {
		return p.TypeDefinition(ctx, params)
	}
	return nil, nil
}

func (s *Server) handleImplementation(ctx context.Context, _ *dispatch.Arena, params *protocol.ImplementationParams) ([]protocol.Location, error) {
	if p, ok := s.features.(ImplementationProvider); ok {
		return p.Implementation(ctx, params)
	}
	return nil, nil
}

func (s *Server) handleDeclaration(ctx context.Context, _ *dispatch.Arena, params *protocol.DeclarationParams) ([]protocol.Location, error) {
	if p, ok := s.features.(DeclarationProvider); ok {
		return p.Declaration(ctx, params)
	}
	return nil, nil
}

func (s *Server) handleReferences(ctx context.Context, _ *dispatch.Arena, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	if p, ok := s.features.(ReferencesProvider); ok {
		return p.References(ctx, params)
	}
	return nil, nil
}

func (s *Server) handleRename(ctx context.Context, _ *dispatch.Arena, params *protocol.RenameParams) (*protocol.WorkspaceEdit, error) {
	if p, ok := s.features.(RenameProvider); ok {
		return p.Rename(ctx, params)
	}
	return nil, nil
}

func (s *Server) handleDocumentHighlight(ctx context.Context, _ *dispatch.Arena, params *protocol.DocumentHighlightParams) ([]protocol.DocumentHighlight, error) {
	if p, ok := s.features.(DocumentHighlightProvider); ok {
		return p.DocumentHighlight(ctx, params)
	}
	return nil, nil
}

func (s *Server) handleDocumentSymbol(ctx context.Context, _ *dispatch.Arena, params *protocol.DocumentSymbolParams) ([]protocol.DocumentSymbol, error) {
	if p, ok := s.features.(DocumentSymbolProvider); ok {
		return p.DocumentSymbol(ctx, params)
	}
	return nil, nil
}

func (s *Server) handleFoldingRange(ctx context.Context, _ *dispatch.Arena, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	if p, ok := s.features.(FoldingRangeProvider); ok {
		return p.FoldingRange(ctx, params)
	}
	return nil, nil
}

func (s *Server) handleSelectionRange(ctx context.Context, _ *dispatch.Arena, params *protocol.SelectionRangeParams) ([]protocol.SelectionRange, error) {
	if p, ok := s.features.(SelectionRangeProvider); ok {
		return p.SelectionRange(ctx, params)
	}
	return nil, nil
}

func (s *Server) handleSemanticTokensFull(ctx context.Context, _ *dispatch.Arena, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	if p, ok := s.features.(SemanticTokensProvider); ok {
		return p.SemanticTokensFull(ctx, params)
	}
	return nil, nil
}

func (s *Server) handleSemanticTokensRange(ctx context.Context, _ *dispatch.Arena, params *protocol.SemanticTokensRangeParams) (*protocol.SemanticTokens, error) {
	if p, ok := s.features.(SemanticTokensProvider); ok {
		return p.SemanticTokensRange(ctx, params)
	}
	return nil, nil
}

func (s *Server) handleInlayHint(ctx context.Context, _ *dispatch.Arena, params *protocol.InlayHintParams) ([]protocol.InlayHint, error) {
	if p, ok := s.features.(InlayHintProvider); ok {
		return p.InlayHint(ctx, params)
	}
	return nil, nil
}
