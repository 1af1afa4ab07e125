package fix

import "github.com/lang-tools/zls-core/internal/protocol"

type protocolRange = protocol.Range

// editsSpan returns the smallest range covering every edit, used as the
// conflict-detection key for a multi-edit candidate.
func editsSpan(edits []protocol.TextEdit) protocolRange {
	span := edits[0].Range
	for _, e := range edits[1:] {
		if positionBefore(e.Range.Start, span.Start) {
			span.Start = e.Range.Start
		}
		if positionBefore(span.End, e.Range.End) {
			span.End = e.Range.End
		}
	}
	return span
}

func positionBefore(a, b protocol.Position) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Character < b.Character
}

func rangeBefore(a, b protocolRange) bool {
	return positionBefore(a.Start, b.Start)
}

func rangesOverlap(a, b protocolRange) bool {
	return positionBefore(a.Start, b.End) && positionBefore(b.Start, a.End)
}
