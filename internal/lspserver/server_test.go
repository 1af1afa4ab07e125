package lspserver

import (
	"context"
	"encoding/json/jsontext"
	"path/filepath"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/jsonrpc2"

	"github.com/lang-tools/zls-core/internal/protocol"
	"github.com/lang-tools/zls-core/internal/syntaxcheck"
)

func TestIssueRangeConversion(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		issue    syntaxcheck.Issue
		expected protocol.Range
	}{
		{
			name:  "line 1 col 0 (point)",
			issue: syntaxcheck.Issue{Line: 1, Column: 0},
			expected: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End:   protocol.Position{Line: 0, Character: 1000},
			},
		},
		{
			name:  "line 3 col 5",
			issue: syntaxcheck.Issue{Line: 3, Column: 5},
			expected: protocol.Range{
				Start: protocol.Position{Line: 2, Character: 5},
				End:   protocol.Position{Line: 2, Character: 1005},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := issueRange(tt.issue)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSeverityConversion(t *testing.T) {
	t.Parallel()
	snaps.WithConfig(
		snaps.JSON(snaps.JSONConfig{
			SortKeys: true,
			Indent:   " ",
		}),
	).MatchStandaloneJSON(t, map[string]protocol.DiagnosticSeverity{
		"error":   severityToLSP(syntaxcheck.SeverityError),
		"warning": severityToLSP(syntaxcheck.SeverityWarning),
	})
}

func TestURIToPath(t *testing.T) {
	t.Parallel()
	path := uriToPath("file:///tmp/main.zig")
	assert.Equal(t, filepath.FromSlash("/tmp/main.zig"), path)
}

func TestCancelPreempter_HandlesCancelRequest(t *testing.T) {
	t.Parallel()

	p := &cancelPreempter{log: nil}

	// Missing "id" field — params.ID stays zero, no-op.
	req := &jsonrpc2.Request{
		Method: "$/cancelRequest",
		Params: jsontext.Value(`{}`),
	}
	result, err := p.Preempt(context.Background(), req)
	assert.Nil(t, result)
	require.NoError(t, err, "malformed $/cancelRequest should not return an error")

	// Unrecognized ID type (bool) — silently ignored.
	req2 := &jsonrpc2.Request{
		Method: "$/cancelRequest",
		Params: jsontext.Value(`{"id":true}`),
	}
	result, err = p.Preempt(context.Background(), req2)
	assert.Nil(t, result)
	require.NoError(t, err, "unrecognized ID type should be silently ignored")

	// Unparseable JSON — silently ignored.
	req3 := &jsonrpc2.Request{
		Method: "$/cancelRequest",
		Params: jsontext.Value(`not-json`),
	}
	result, err = p.Preempt(context.Background(), req3)
	assert.Nil(t, result)
	require.NoError(t, err, "invalid JSON should be silently ignored")
}

func TestCancelPreempter_ValidID(t *testing.T) {
	t.Parallel()

	log := logrus.New()
	p := &cancelPreempter{log: log}

	// Numeric ID.
	req := &jsonrpc2.Request{
		Method: "$/cancelRequest",
		Params: jsontext.Value(`{"id":42}`),
	}
	result, err := p.Preempt(context.Background(), req)
	assert.Nil(t, result)
	require.NoError(t, err)

	// String ID.
	req2 := &jsonrpc2.Request{
		Method: "$/cancelRequest",
		Params: jsontext.Value(`{"id":"req-1"}`),
	}
	result, err = p.Preempt(context.Background(), req2)
	assert.Nil(t, result)
	require.NoError(t, err)
}

func TestCancelPreempter_PassesThroughOtherMethods(t *testing.T) {
	t.Parallel()

	p := &cancelPreempter{log: nil}

	req := &jsonrpc2.Request{
		Method: "textDocument/didOpen",
		Params: jsontext.Value(`{}`),
	}
	result, err := p.Preempt(context.Background(), req)
	assert.Nil(t, result)
	require.ErrorIs(t, err, jsonrpc2.ErrNotHandled)
}
