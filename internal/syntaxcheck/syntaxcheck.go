// Package syntaxcheck implements the external syntax-checker collaborator:
// the single process boundary this core crosses to turn a document buffer
// into diagnostics (spec.md §1, "a document's syntax/semantic diagnostics
// are produced by an external collaborator this core does not implement").
// The dispatcher-facing handlers only ever see the Checker interface, so
// tests can substitute a fake instead of depending on a real toolchain
// install, following the teacher's dependency-injected resolver pattern
// (internal/registry/async_resolver.go's ImageResolver collaborator).
package syntaxcheck

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v5"
	"github.com/sirupsen/logrus"
)

// Issue is one syntax or semantic problem reported against a document,
// located by line and column as parsed from the checker's output.
type Issue struct {
	Line      uint32 // 1-based, as emitted by the toolchain
	Column    uint32 // used unshifted as the LSP character offset
	Severity  Severity
	Message   string
	FixedText *string // replacement text for the whole document, if the checker can fix this in place
}

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Checker produces diagnostics for one document's content. Implementations
// must not retain content beyond the call.
type Checker interface {
	Check(ctx context.Context, path string, content []byte) ([]Issue, error)
}

// ErrCheckerUnavailable is returned when the configured toolchain
// executable cannot be located or spawned at all (distinct from the
// checker running and reporting issues).
var ErrCheckerUnavailable = fmt.Errorf("syntaxcheck: checker executable unavailable")

// ProcessChecker runs the configured language toolchain's AST-check mode
// as a subprocess per invocation, grounded on the teacher's subprocess
// lifecycle in internal/ai/acp/runner.go (start, pipe stdin, read stdout,
// bounded by context) but simplified to one-shot request/response instead
// of a long-lived session, since a syntax check has no interactive
// protocol of its own.
type ProcessChecker struct {
	// ExePath is the toolchain executable (spec.md §3's Config.ZigExePath).
	ExePath string
	// Args are extra arguments appended before the checked file path, e.g.
	// ["ast-check"].
	Args []string
	// Timeout bounds a single invocation; zero means no extra timeout
	// beyond ctx.
	Timeout time.Duration
	Log     *logrus.Logger
}

// NewProcessChecker returns a checker invoking exePath with args ahead of
// the per-call file path.
func NewProcessChecker(exePath string, args []string, log *logrus.Logger) *ProcessChecker {
	return &ProcessChecker{ExePath: exePath, Args: args, Log: log}
}

// Check spawns the toolchain against a temp copy of content and parses its
// diagnostic output. Spawn failures (executable missing, permission
// denied) are retried with backoff since they can be transient during a
// toolchain install or PATH update; parse/diagnostic output is never
// retried, it is simply returned.
func (c *ProcessChecker) Check(ctx context.Context, path string, content []byte) ([]Issue, error) {
	if c.ExePath == "" {
		return nil, ErrCheckerUnavailable
	}

	tmp, err := c.writeTemp(path, content)
	if err != nil {
		return nil, fmt.Errorf("syntaxcheck: stage temp file: %w", err)
	}
	defer os.Remove(tmp)

	runCtx := ctx
	var cancel context.CancelFunc
	if c.Timeout > 0 {
		runCtx, cancel = context.WithTimeout(runCtx, c.Timeout)
		defer cancel()
	}

	out, runErr := backoff.Retry(runCtx, func() ([]byte, error) {
		stdout, stderr, spawnErr := c.run(runCtx, tmp)
		if spawnErr != nil {
			var exitErr *exec.ExitError
			if errors.As(spawnErr, &exitErr) {
				// A nonzero exit is a completed diagnostic run, not a failure.
				return stdout, nil
			}
			if isSpawnFailure(spawnErr) {
				return nil, spawnErr
			}
			return nil, backoff.Permanent(spawnErr)
		}
		_ = stderr
		return stdout, nil
	},
		backoff.WithBackOff(newCheckerBackoff()),
		backoff.WithMaxTries(3),
	)
	if runErr != nil {
		c.logf(logrus.WarnLevel, "checker invocation failed: %v", runErr)
		return nil, fmt.Errorf("%w: %v", ErrCheckerUnavailable, runErr)
	}

	return parseIssues(string(out)), nil
}

func (c *ProcessChecker) run(ctx context.Context, tmpPath string) (stdout, stderr []byte, err error) {
	args := append(append([]string{}, c.Args...), tmpPath)
	cmd := exec.CommandContext(ctx, c.ExePath, args...) //nolint:gosec // ExePath is explicit user configuration.

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	runErr := cmd.Run()
	return outBuf.Bytes(), errBuf.Bytes(), runErr
}

func (c *ProcessChecker) writeTemp(path string, content []byte) (string, error) {
	f, err := os.CreateTemp("", "zls-syntaxcheck-*"+tempSuffix(path))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := f.Write(content); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func tempSuffix(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i:]
	}
	return ""
}

func (c *ProcessChecker) logf(level logrus.Level, format string, args ...any) {
	if c.Log == nil {
		return
	}
	logrus.NewEntry(c.Log).Logf(level, format, args...)
}

func newCheckerBackoff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 50 * time.Millisecond
	b.MaxInterval = 500 * time.Millisecond
	b.Multiplier = 2.0
	return b
}

// isSpawnFailure distinguishes "could not even start the process" (worth
// retrying: a transient PATH or filesystem hiccup) from any other error,
// which includes a normal nonzero-exit diagnostic run.
func isSpawnFailure(err error) bool {
	var pathErr *os.PathError
	if ok := asPathError(err, &pathErr); ok {
		return true
	}
	return false
}

func asPathError(err error, target **os.PathError) bool {
	for err != nil {
		if pe, ok := err.(*os.PathError); ok {
			*target = pe
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// parseIssues parses the toolchain's "file:line:col: severity: message"
// line-oriented diagnostic format, the conventional compiler-output shape
// shared by most systems-language toolchains.
func parseIssues(output string) []Issue {
	var issues []Issue
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		issue, ok := parseIssueLine(line)
		if !ok {
			continue
		}
		issues = append(issues, issue)
	}
	return issues
}

func parseIssueLine(line string) (Issue, bool) {
	// <path>:<line>:<col>: <severity>: <message>
	parts := strings.SplitN(line, ":", 5)
	if len(parts) < 5 {
		return Issue{}, false
	}
	lineNo, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 32)
	if err != nil {
		return Issue{}, false
	}
	colNo, err := strconv.ParseUint(strings.TrimSpace(parts[2]), 10, 32)
	if err != nil {
		return Issue{}, false
	}
	sev := SeverityError
	if strings.TrimSpace(parts[3]) == "warning" {
		sev = SeverityWarning
	}
	return Issue{
		Line:     uint32(lineNo),
		Column:   uint32(colNo),
		Severity: sev,
		Message:  strings.TrimSpace(parts[4]),
	}, true
}
