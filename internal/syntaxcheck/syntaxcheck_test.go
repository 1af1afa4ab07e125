package syntaxcheck

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIssues(t *testing.T) {
	output := "doc.zig:3:5: error: expected ';' after statement\n" +
		"doc.zig:7:1: warning: unused variable 'x'\n" +
		"garbage line with no fields\n"

	issues := parseIssues(output)
	require.Len(t, issues, 2)

	assert.Equal(t, uint32(3), issues[0].Line)
	assert.Equal(t, uint32(5), issues[0].Column)
	assert.Equal(t, SeverityError, issues[0].Severity)
	assert.Equal(t, "expected ';' after statement", issues[0].Message)

	assert.Equal(t, uint32(7), issues[1].Line)
	assert.Equal(t, SeverityWarning, issues[1].Severity)
	assert.Equal(t, "unused variable 'x'", issues[1].Message)
}

func writeFakeChecker(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake checker script requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "fake-checker.sh")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestProcessChecker_ParsesCheckerOutput(t *testing.T) {
	script := "#!/bin/sh\n" +
		"echo \"$1:2:3: error: missing semicolon\"\n" +
		"exit 0\n"
	exe := writeFakeChecker(t, script)

	c := NewProcessChecker(exe, nil, nil)
	issues, err := c.Check(context.Background(), "doc.zig", []byte("var x = 1"))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, uint32(2), issues[0].Line)
	assert.Equal(t, "missing semicolon", issues[0].Message)
}

func TestProcessChecker_EmptyOutputMeansNoIssues(t *testing.T) {
	script := "#!/bin/sh\nexit 0\n"
	exe := writeFakeChecker(t, script)

	c := NewProcessChecker(exe, nil, nil)
	issues, err := c.Check(context.Background(), "doc.zig", []byte("const x = 1;"))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestProcessChecker_MissingExecutableIsUnavailable(t *testing.T) {
	c := NewProcessChecker("", nil, nil)
	_, err := c.Check(context.Background(), "doc.zig", []byte("x"))
	assert.ErrorIs(t, err, ErrCheckerUnavailable)
}

func TestProcessChecker_NonexistentExecutableReturnsUnavailable(t *testing.T) {
	c := NewProcessChecker(filepath.Join(t.TempDir(), "does-not-exist"), nil, nil)
	_, err := c.Check(context.Background(), "doc.zig", []byte("x"))
	assert.ErrorIs(t, err, ErrCheckerUnavailable)
}
