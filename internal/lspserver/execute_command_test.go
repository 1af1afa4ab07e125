package lspserver

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lang-tools/zls-core/internal/config"
	"github.com/lang-tools/zls-core/internal/dispatch"
	"github.com/lang-tools/zls-core/internal/protocol"
	"github.com/lang-tools/zls-core/internal/syntaxcheck"
)

// fakeChecker reports a fixed set of issues for any path, letting tests
// exercise the fixAll pipeline without a real toolchain install.
type fakeChecker struct {
	issues []syntaxcheck.Issue
	err    error
}

func (f *fakeChecker) Check(context.Context, string, []byte) ([]syntaxcheck.Issue, error) {
	return f.issues, f.err
}

func newTestServer(t *testing.T, checker syntaxcheck.Checker) *Server {
	t.Helper()
	log := logrus.New()
	log.SetOutput(os.Stderr)
	return New(checker, config.NewSubsystem(config.Default(), log), log)
}

func TestParseApplyAllFixesArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       *[]any
		wantURI    string
		wantUnsafe bool
		wantOK     bool
	}{
		{
			name:       "nil args",
			args:       nil,
			wantURI:    "",
			wantUnsafe: false,
			wantOK:     false,
		},
		{
			name:       "empty args",
			args:       &[]any{},
			wantURI:    "",
			wantUnsafe: false,
			wantOK:     false,
		},
		{
			name:       "string uri only",
			args:       &[]any{"file:///tmp/main.zig"},
			wantURI:    "file:///tmp/main.zig",
			wantUnsafe: false,
			wantOK:     true,
		},
		{
			name:       "string uri with unsafe bool",
			args:       &[]any{"file:///tmp/main.zig", true},
			wantURI:    "file:///tmp/main.zig",
			wantUnsafe: true,
			wantOK:     true,
		},
		{
			name:       "string uri with non-bool unsafe",
			args:       &[]any{"file:///tmp/main.zig", "nope"},
			wantURI:    "file:///tmp/main.zig",
			wantUnsafe: false,
			wantOK:     true,
		},
		{
			name:       "string empty uri",
			args:       &[]any{""},
			wantURI:    "",
			wantUnsafe: false,
			wantOK:     false,
		},
		{
			name:       "map uri only",
			args:       &[]any{map[string]any{"uri": "file:///tmp/main.zig"}},
			wantURI:    "file:///tmp/main.zig",
			wantUnsafe: false,
			wantOK:     true,
		},
		{
			name:       "map uri with unsafe bool",
			args:       &[]any{map[string]any{"uri": "file:///tmp/main.zig", "unsafe": true}},
			wantURI:    "file:///tmp/main.zig",
			wantUnsafe: true,
			wantOK:     true,
		},
		{
			name:       "map missing uri",
			args:       &[]any{map[string]any{"unsafe": true}},
			wantURI:    "",
			wantUnsafe: false,
			wantOK:     false,
		},
		{
			name:       "map uri wrong type",
			args:       &[]any{map[string]any{"uri": 123}},
			wantURI:    "",
			wantUnsafe: false,
			wantOK:     false,
		},
		{
			name:       "map uri empty",
			args:       &[]any{map[string]any{"uri": ""}},
			wantURI:    "",
			wantUnsafe: false,
			wantOK:     false,
		},
		{
			name:       "map unsafe wrong type",
			args:       &[]any{map[string]any{"uri": "file:///tmp/main.zig", "unsafe": "nope"}},
			wantURI:    "file:///tmp/main.zig",
			wantUnsafe: false,
			wantOK:     true,
		},
		{
			name:       "unsupported arg type",
			args:       &[]any{123},
			wantURI:    "",
			wantUnsafe: false,
			wantOK:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gotURI, gotUnsafe, gotOK := parseApplyAllFixesArgs(tt.args)
			assert.Equal(t, tt.wantURI, gotURI)
			assert.Equal(t, tt.wantUnsafe, gotUnsafe)
			assert.Equal(t, tt.wantOK, gotOK)
		})
	}
}

func TestContentForURI_ReturnsOpenDocumentContent(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, &fakeChecker{})
	uri := "file:///tmp/main.zig"
	s.documents.Open(uri, "zig", 1, "const x = 1;\n")

	content, err := s.contentForURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "const x = 1;\n", string(content))
}

func TestContentForURI_ReadsFromDiskWhenNotOpen(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, &fakeChecker{})
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "main.zig")
	require.NoError(t, os.WriteFile(path, []byte("const x = 1;\n"), 0o644))

	uri := fileURIFromPath(path)
	content, err := s.contentForURI(uri)
	require.NoError(t, err)
	assert.Equal(t, "const x = 1;\n", string(content))
}

func TestHandleExecuteCommand_NilParams(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, &fakeChecker{})
	result, err := s.handleExecuteCommand(context.Background(), dispatch.NewArena(), nil)
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestHandleExecuteCommand_UnknownCommand(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, &fakeChecker{})
	result, err := s.handleExecuteCommand(context.Background(), dispatch.NewArena(), &protocol.ExecuteCommandParams{Command: "unknown"})
	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestHandleExecuteCommand_InvalidArguments(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, &fakeChecker{})
	result, err := s.handleExecuteCommand(context.Background(), dispatch.NewArena(), &protocol.ExecuteCommandParams{
		Command:   commandApplyAllFixes,
		Arguments: nil,
	})
	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid command arguments")
}

func TestHandleExecuteCommand_GracefullyReturnsNoEditsWhenFileCantBeRead(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, &fakeChecker{})
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "main.zig") // file does not exist
	uri := fileURIFromPath(path)

	args := []any{uri}
	result, err := s.handleExecuteCommand(context.Background(), dispatch.NewArena(), &protocol.ExecuteCommandParams{
		Command:   commandApplyAllFixes,
		Arguments: &args,
	})
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestHandleExecuteCommand_NoEditsWhenNoFixableChanges(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, &fakeChecker{})
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "main.zig")
	uri := fileURIFromPath(path)
	s.documents.Open(uri, "zig", 1, "const x = 1;\n")

	args := []any{uri}
	result, err := s.handleExecuteCommand(context.Background(), dispatch.NewArena(), &protocol.ExecuteCommandParams{
		Command:   commandApplyAllFixes,
		Arguments: &args,
	})
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestHandleExecuteCommand_ReturnsWorkspaceEdit_Unsafe(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "main.zig")
	uri := fileURIFromPath(path)

	fixed := "const x = 1;\n"
	checker := &fakeChecker{issues: []syntaxcheck.Issue{
		{Line: 1, Column: 11, Severity: syntaxcheck.SeverityError, Message: "missing semicolon", FixedText: &fixed},
	}}
	s := newTestServer(t, checker)
	s.documents.Open(uri, "zig", 1, "const x = 1\n")

	args := []any{uri, true}
	result, err := s.handleExecuteCommand(context.Background(), dispatch.NewArena(), &protocol.ExecuteCommandParams{
		Command:   commandApplyAllFixes,
		Arguments: &args,
	})
	require.NoError(t, err)

	edit, ok := result.(*protocol.WorkspaceEdit)
	require.True(t, ok, "expected *protocol.WorkspaceEdit result")
	require.NotNil(t, edit.Changes)

	edits := edit.Changes[protocol.DocumentUri(uri)]
	require.NotEmpty(t, edits, "expected returned edits")
}

func fileURIFromPath(path string) string {
	uriPath := filepath.ToSlash(path)
	if !strings.HasPrefix(uriPath, "/") {
		uriPath = "/" + uriPath
	}
	return (&url.URL{Scheme: "file", Path: uriPath}).String()
}
