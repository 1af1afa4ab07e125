// Package lspserver wires the protocol, lifecycle, capability, config,
// dispatch, and syntaxcheck packages into a running Language Server
// Protocol server for a statically-typed systems language toolchain.
//
// Transport: stdio only. Protocol: JSON-RPC 2.0 via golang.org/x/exp/jsonrpc2,
// framed with its HeaderFramer, grounded on the teacher's own stdio
// transport plumbing (internal/lspserver/server.go's stdioDialer/stdioRWC).
package lspserver

import (
	"context"
	stdjson "encoding/json"
	jsonv2 "encoding/json/v2"
	"io"
	"os"
	"sync"

	"encoding/json/jsontext"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/jsonrpc2"

	"github.com/lang-tools/zls-core/internal/capability"
	"github.com/lang-tools/zls-core/internal/config"
	"github.com/lang-tools/zls-core/internal/dispatch"
	"github.com/lang-tools/zls-core/internal/lifecycle"
	"github.com/lang-tools/zls-core/internal/protocol"
	"github.com/lang-tools/zls-core/internal/syntaxcheck"
	"github.com/lang-tools/zls-core/internal/version"
)

const serverName = "zls"

// jsonNull is the explicit JSON null result value. golang.org/x/exp/jsonrpc2
// treats a (nil, nil) handler return as "no response at all", so an actual
// LSP null result (e.g. "no code actions") must be this sentinel instead.
var jsonNull = stdjson.RawMessage("null")

// Server is the running language server: the Message/lifecycle/capability/
// config/dispatch modules bound together with document storage and the
// external syntax-checker collaborator.
type Server struct {
	conn      *jsonrpc2.Connection
	exitCh    chan struct{}
	sessionID string

	documents *DocumentStore
	table     *dispatch.Table
	lifecycle *lifecycle.Machine
	cfg       *config.Subsystem
	checker   syntaxcheck.Checker
	log       *logrus.Logger

	// features is an optional collaborator implementing any subset of the
	// per-feature provider interfaces in featureproviders.go.
	features any

	capsMu sync.RWMutex
	caps   capability.Snapshot

	diagMu                     sync.RWMutex
	pushDiagnostics            bool
	supportsDiagnosticRefresh  bool
	supportsDiagnosticPullMode bool

	lintCache *diagnosticCache
}

// New builds a Server around the given syntax checker and configuration
// subsystem. log defaults to a stderr-only logger (stdout is reserved for
// the wire, matching the teacher's stdio-only transport contract).
func New(checker syntaxcheck.Checker, cfg *config.Subsystem, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.New()
		log.SetOutput(os.Stderr)
	}
	s := &Server{
		exitCh:          make(chan struct{}),
		sessionID:       newSessionID(),
		documents:       NewDocumentStore(),
		lifecycle:       lifecycle.NewMachine(),
		cfg:             cfg,
		checker:         checker,
		log:             log,
		pushDiagnostics: true,
		lintCache:       newDiagnosticCache(),
	}
	s.table = buildHandlerTable(s)
	return s
}

// RunStdio starts the server on stdin/stdout, blocking until the
// connection closes or ctx is cancelled.
func (s *Server) RunStdio(ctx context.Context) error {
	conn, err := jsonrpc2.Dial(ctx, stdioDialer{}, &serverBinder{server: s})
	if err != nil {
		return err
	}

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-s.exitCh:
			_ = conn.Close()
		case <-done:
		}
	}()
	defer close(done)

	return conn.Wait()
}

type serverBinder struct {
	server *Server
}

func (b *serverBinder) Bind(_ context.Context, conn *jsonrpc2.Connection) (jsonrpc2.ConnectionOptions, error) {
	b.server.conn = conn
	return jsonrpc2.ConnectionOptions{
		Framer:    jsonrpc2.HeaderFramer(),
		Handler:   jsonrpc2.HandlerFunc(b.server.handle),
		Preempter: &cancelPreempter{log: b.server.log},
	}, nil
}

// handle looks the method up in the static table, enforces the lifecycle
// machine, invokes the handler against a fresh per-message arena, and
// renders the result back through golang.org/x/exp/jsonrpc2's own
// request/response bookkeeping (spec.md §4.6-§4.7; the independent
// Message-model Dispatcher in internal/dispatch exercises the same pipeline
// directly against raw bytes for the well-known-id response path).
func (s *Server) handle(ctx context.Context, req *jsonrpc2.Request) (any, error) {
	entry, ok := s.table.Lookup(req.Method)
	if !ok {
		return nil, jsonrpc2.NewError(int64(protocol.ErrorCodeMethodNotFound), "method not supported: "+req.Method)
	}

	if lerr := s.lifecycle.Allow(req.Method); lerr != nil {
		re := protocol.ToResponseError(lerr)
		return nil, jsonrpc2.NewError(re.Code, re.Message)
	}

	arena := dispatch.NewArena()
	defer arena.Reset()

	result, err := entry.Call(ctx, arena, jsontext.Value(req.Params))
	if err != nil {
		re := protocol.ToResponseError(err)
		return nil, jsonrpc2.NewError(re.Code, re.Message)
	}
	if entry.Kind == protocol.KindNotification {
		return nil, nil //nolint:nilnil // LSP: notifications never have a result
	}
	if dispatch.IsNilResult(result) {
		return jsonNull, nil
	}

	raw, merr := jsonv2.Marshal(result)
	if merr != nil {
		return nil, merr
	}
	return stdjson.RawMessage(raw), nil
}

// lspNotify pre-marshals params with encoding/json/v2 (so union types with
// MarshalJSONTo serialize correctly) and sends via conn.Notify.
func lspNotify(ctx context.Context, conn *jsonrpc2.Connection, method string, params any) error {
	raw, err := jsonv2.Marshal(params)
	if err != nil {
		return err
	}
	return conn.Notify(ctx, method, stdjson.RawMessage(raw))
}

func (s *Server) capabilities() capability.Snapshot {
	s.capsMu.RLock()
	defer s.capsMu.RUnlock()
	return s.caps
}

func (s *Server) setCapabilities(snap capability.Snapshot) {
	s.capsMu.Lock()
	s.caps = snap
	s.capsMu.Unlock()
}

func (s *Server) pushDiagnosticsEnabled() bool {
	s.diagMu.RLock()
	defer s.diagMu.RUnlock()
	return s.pushDiagnostics
}

func (s *Server) diagnosticRefreshSupported() bool {
	s.diagMu.RLock()
	defer s.diagMu.RUnlock()
	return s.supportsDiagnosticPullMode && s.supportsDiagnosticRefresh
}

// logf emits a structured log entry tagged with the session id and the
// triggering method, the convention every handler in this package uses
// instead of reaching for the stdlib log package directly.
func (s *Server) logf(level logrus.Level, method string, fields logrus.Fields, format string, args ...any) {
	if s.log == nil {
		return
	}
	entry := logrus.NewEntry(s.log).WithField("method", method).WithField("session_id", s.sessionID)
	if fields != nil {
		entry = entry.WithFields(fields)
	}
	entry.Logf(level, format, args...)
}

// rawParams wraps already-marshaled JSON bytes so golang.org/x/exp/jsonrpc2
// sends them verbatim as the request's params, instead of marshaling a Go
// value itself (which would defeat encoding/json/v2's union-type
// MarshalJSONTo methods).
func rawParams(raw []byte) any { return stdjson.RawMessage(raw) }

func serverVersion() string { return version.RawVersion() }

// SetFeatures installs the optional feature-provider collaborator. Safe to
// call only before RunStdio starts routing messages.
func (s *Server) SetFeatures(features any) { s.features = features }

// cancelPreempter handles $/cancelRequest per design note §9: the handler
// is intentionally empty. It is accepted, logged, and never cancels a
// running handler — this core has no in-flight-request bookkeeping to
// cancel against. Preempting (rather than routing through the table) keeps
// the no-op hot path off the lifecycle/arena machinery entirely.
type cancelPreempter struct {
	log *logrus.Logger
}

func (p *cancelPreempter) Preempt(_ context.Context, req *jsonrpc2.Request) (any, error) {
	if req.Method != protocol.MethodCancelRequest {
		return nil, jsonrpc2.ErrNotHandled
	}

	var params protocol.CancelParams
	if len(req.Params) > 0 {
		_ = jsonv2.Unmarshal(req.Params, &params) // malformed payloads are accepted and ignored
	}
	if p.log != nil && !params.ID.IsZero() {
		logrus.NewEntry(p.log).WithField("id", params.ID.String_()).Debug("cancelRequest received (no-op)")
	}
	return nil, nil //nolint:nilnil // $/cancelRequest is a notification; no result either way
}

// stdioDialer implements jsonrpc2.Dialer for stdin/stdout communication. It
// uses an io.Pipe intermediary so Close reliably interrupts a blocked read
// on every platform (closing os.Stdin directly does not unblock a
// concurrent read on macOS).
type stdioDialer struct{}

func (stdioDialer) Dial(_ context.Context) (io.ReadWriteCloser, error) {
	pr, pw := io.Pipe()
	go io.Copy(pw, os.Stdin) //nolint:errcheck // exits when pipe or stdin closes
	return &stdioRWC{pr: pr, pw: pw}, nil
}

type stdioRWC struct {
	pr *io.PipeReader
	pw *io.PipeWriter
}

func (s *stdioRWC) Read(p []byte) (int, error)  { return s.pr.Read(p) }
func (s *stdioRWC) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (s *stdioRWC) Close() error {
	_ = s.pw.Close()
	return s.pr.Close()
}
