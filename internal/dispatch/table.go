package dispatch

import (
	"context"
	jsonv2 "encoding/json/v2"

	"encoding/json/jsontext"

	"github.com/lang-tools/zls-core/internal/protocol"
)

// HandlerFunc is the uniform handler signature from spec.md §4.7:
// "(server, arena, params) → result_or_error", with the server dependency
// closed over by the registering package rather than threaded explicitly
// (internal/lspserver owns the Table and captures itself in each closure).
type HandlerFunc func(ctx context.Context, arena *Arena, raw jsontext.Value) (any, error)

// Entry is one row of the static handler table.
type Entry struct {
	Kind protocol.Kind
	Call HandlerFunc
}

// Table is the static (method_name, handler) table from spec.md §4.7,
// held as a map keyed by method name.
type Table struct {
	entries map[string]Entry
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{entries: make(map[string]Entry)}
}

// Lookup returns the entry registered for method, if any.
func (t *Table) Lookup(method string) (Entry, bool) {
	e, ok := t.entries[method]
	return e, ok
}

// RegisterRequest registers a request handler whose params decode into P
// and whose result is R, ignoring unknown JSON fields (§4.6 step 6) and
// translating decode failure to ParseError (§4.6 step 6, §7).
func RegisterRequest[P any, R any](t *Table, method string, fn func(ctx context.Context, arena *Arena, params *P) (R, error)) {
	t.entries[method] = Entry{
		Kind: protocol.KindRequest,
		Call: func(ctx context.Context, arena *Arena, raw jsontext.Value) (any, error) {
			var params P
			if len(raw) > 0 && string(raw) != "null" {
				if err := jsonv2.Unmarshal(raw, &params); err != nil {
					return nil, protocol.NewTaxonomyError(protocol.ErrorCodeParseError)
				}
			}
			return fn(ctx, arena, &params)
		},
	}
}

// RegisterNotification registers a notification handler whose params
// decode into P. A decode failure is logged and dropped by the
// dispatcher, never surfaced as a response (notifications have none).
func RegisterNotification[P any](t *Table, method string, fn func(ctx context.Context, arena *Arena, params *P)) {
	t.entries[method] = Entry{
		Kind: protocol.KindNotification,
		Call: func(ctx context.Context, arena *Arena, raw jsontext.Value) (any, error) {
			var params P
			if len(raw) > 0 && string(raw) != "null" {
				if err := jsonv2.Unmarshal(raw, &params); err != nil {
					return nil, protocol.NewTaxonomyError(protocol.ErrorCodeParseError)
				}
			}
			fn(ctx, arena, &params)
			return nil, nil
		},
	}
}
