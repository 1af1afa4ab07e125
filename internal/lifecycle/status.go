// Package lifecycle implements the LSP lifecycle state machine from
// spec.md §4.3: a fixed DAG of states with no back-edges, consulted by the
// dispatcher before every method invocation.
package lifecycle

import (
	"fmt"
	"sync"

	"github.com/lang-tools/zls-core/internal/protocol"
)

// Status is the lifecycle state (spec.md §3).
type Status int

const (
	StatusUninitialized Status = iota
	StatusInitializing
	StatusInitialized
	StatusShutdown
	StatusExitingSuccess
	StatusExitingFailure
)

func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusInitializing:
		return "initializing"
	case StatusInitialized:
		return "initialized"
	case StatusShutdown:
		return "shutdown"
	case StatusExitingSuccess:
		return "exiting_success"
	case StatusExitingFailure:
		return "exiting_failure"
	default:
		return "unknown"
	}
}

// Machine enforces the transitions in spec.md §4.3. It is owned by the
// Server aggregate and consulted once per dispatched message; mutation only
// ever happens from the lifecycle handlers (initialize/initialized/
// shutdown/exit), never from feature handlers.
type Machine struct {
	mu     sync.RWMutex
	status Status
}

// NewMachine returns a Machine starting in StatusUninitialized.
func NewMachine() *Machine {
	return &Machine{status: StatusUninitialized}
}

// Status returns the current state.
func (m *Machine) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Allow reports whether method may be dispatched in the current state, and
// if not, which taxonomy error applies. Exiting states are unreachable
// during dispatch by contract (design note §9): any message arriving there
// is a programmer error.
func (m *Machine) Allow(method string) error {
	status := m.Status()

	switch status {
	case StatusExitingSuccess, StatusExitingFailure:
		panic(fmt.Sprintf("lifecycle: dispatch invoked in terminal state %s for method %q", status, method))

	case StatusUninitialized:
		if method == protocol.MethodInitialize || method == protocol.MethodExit {
			return nil
		}
		if method == protocol.MethodShutdown {
			return protocol.NewTaxonomyError(protocol.ErrorCodeInvalidRequest)
		}
		return protocol.NewTaxonomyError(protocol.ErrorCodeServerNotInitialized)

	case StatusInitializing:
		switch method {
		case protocol.MethodInitialized, protocol.MethodProgress, protocol.MethodExit:
			return nil
		default:
			return protocol.NewTaxonomyError(protocol.ErrorCodeInvalidRequest)
		}

	case StatusInitialized:
		return nil

	case StatusShutdown:
		if method == protocol.MethodExit {
			return nil
		}
		return protocol.NewTaxonomyError(protocol.ErrorCodeInvalidRequest)

	default:
		panic(fmt.Sprintf("lifecycle: unknown status %d", status))
	}
}

// BeginInitialize transitions uninitialized -> initializing. Called by the
// `initialize` handler as its first step, so that a later `initialize` is
// rejected by Allow.
func (m *Machine) BeginInitialize() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status == StatusUninitialized {
		m.status = StatusInitializing
	}
}

// CompleteInitialized transitions initializing -> initialized, driven by
// the `initialized` notification.
func (m *Machine) CompleteInitialized() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status == StatusInitializing {
		m.status = StatusInitialized
	}
}

// BeginShutdown transitions initialized -> shutdown.
func (m *Machine) BeginShutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.status == StatusInitialized {
		m.status = StatusShutdown
	}
}

// Exit transitions shutdown -> exiting_success, or initialized ->
// exiting_failure (exit without a prior shutdown); in any other state the
// status is left unchanged. Returns the resulting status so the caller can
// pick a process exit code.
func (m *Machine) Exit() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.status {
	case StatusShutdown:
		m.status = StatusExitingSuccess
	case StatusInitialized:
		m.status = StatusExitingFailure
	}
	return m.status
}
