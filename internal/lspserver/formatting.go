package lspserver

import (
	"bytes"
	"context"
	"unicode/utf8"

	"github.com/lang-tools/zls-core/internal/dispatch"
	"github.com/lang-tools/zls-core/internal/fix"
	"github.com/lang-tools/zls-core/internal/protocol"
)

// handleFormatting implements textDocument/formatting by applying every
// safe auto-fix the syntax checker reports and returning the minimal edit
// that turns the original document into the fixed output (ESLint-style),
// rather than replacing the whole buffer.
func (s *Server) handleFormatting(ctx context.Context, _ *dispatch.Arena, params *protocol.DocumentFormattingParams) ([]*protocol.TextEdit, error) {
	doc := s.documents.Get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}

	content := []byte(doc.Content)
	edits := s.computeFixEdits(ctx, doc.URI, content, fix.Safe)
	if len(edits) == 0 {
		return nil, nil
	}
	return edits, nil
}

func minimalTextEdit(original, modified []byte) []*protocol.TextEdit {
	start, end, replacement, ok := minimalReplacement(original, modified)
	if !ok {
		return nil
	}

	return []*protocol.TextEdit{
		{
			Range: protocol.Range{
				Start: positionAtOffset(original, start),
				End:   positionAtOffset(original, end),
			},
			NewText: string(replacement),
		},
	}
}

func minimalReplacement(original, modified []byte) (int, int, []byte, bool) {
	if bytes.Equal(original, modified) {
		return 0, 0, nil, false
	}

	prefix := 0
	for prefix < len(original) && prefix < len(modified) {
		if original[prefix] != modified[prefix] {
			break
		}
		prefix++
	}
	// Back off to a rune boundary in both buffers so the edit never starts
	// inside a multi-byte UTF-8 sequence.
	for prefix > 0 && ((prefix < len(original) && !utf8.RuneStart(original[prefix])) || (prefix < len(modified) && !utf8.RuneStart(modified[prefix]))) {
		prefix--
	}

	suffix := 0
	for suffix < len(original)-prefix && suffix < len(modified)-prefix {
		origIdx := len(original) - 1 - suffix
		modIdx := len(modified) - 1 - suffix
		if original[origIdx] != modified[modIdx] {
			break
		}
		suffix++
	}
	// Likewise shrink the shared suffix until it begins on a rune boundary.
	for suffix > 0 && (!utf8.RuneStart(original[len(original)-suffix]) || !utf8.RuneStart(modified[len(modified)-suffix])) {
		suffix--
	}

	start := prefix
	end := len(original) - suffix
	replStart := prefix
	replEnd := len(modified) - suffix
	replacement := modified[replStart:replEnd]
	return start, end, replacement, true
}

func positionAtOffset(content []byte, offset int) protocol.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(content) {
		offset = len(content)
	}

	line := uint32(0)
	utf16Char := 0

	for i := 0; i < offset; {
		r, size := utf8.DecodeRune(content[i:])
		next := i + size
		// offset is a byte offset; don't decode past it.
		if next > offset {
			break
		}

		if r == '\n' {
			line++
			utf16Char = 0
			i = next
			continue
		}

		switch {
		case r == utf8.RuneError && size == 1:
			utf16Char += 1
		case r > 0xFFFF:
			utf16Char += 2 // surrogate pair in UTF-16
		default:
			utf16Char += 1
		}
		i = next
	}

	return protocol.Position{Line: line, Character: clampUint32(utf16Char)}
}
