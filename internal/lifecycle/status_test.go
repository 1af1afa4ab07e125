package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lang-tools/zls-core/internal/protocol"
)

func TestAllowUninitialized(t *testing.T) {
	m := NewMachine()

	assert.NoError(t, m.Allow(protocol.MethodInitialize))
	assert.NoError(t, m.Allow(protocol.MethodExit))

	err := m.Allow(protocol.MethodShutdown)
	require.Error(t, err)
	assert.EqualValues(t, protocol.ErrorCodeInvalidRequest, protocol.ToResponseError(err).Code)

	err = m.Allow(protocol.MethodTextDocumentHover)
	require.Error(t, err)
	assert.EqualValues(t, protocol.ErrorCodeServerNotInitialized, protocol.ToResponseError(err).Code)
}

func TestAllowInitializing(t *testing.T) {
	m := NewMachine()
	m.BeginInitialize()

	assert.NoError(t, m.Allow(protocol.MethodInitialized))
	assert.NoError(t, m.Allow(protocol.MethodProgress))
	assert.NoError(t, m.Allow(protocol.MethodExit))

	err := m.Allow(protocol.MethodTextDocumentHover)
	require.Error(t, err)
	assert.EqualValues(t, protocol.ErrorCodeInvalidRequest, protocol.ToResponseError(err).Code)
}

func TestAllowInitializedAllowsEverything(t *testing.T) {
	m := NewMachine()
	m.BeginInitialize()
	m.CompleteInitialized()

	assert.NoError(t, m.Allow(protocol.MethodTextDocumentHover))
	assert.NoError(t, m.Allow(protocol.MethodShutdown))
}

func TestAllowShutdownOnlyExit(t *testing.T) {
	m := NewMachine()
	m.BeginInitialize()
	m.CompleteInitialized()
	m.BeginShutdown()

	assert.NoError(t, m.Allow(protocol.MethodExit))

	err := m.Allow(protocol.MethodTextDocumentHover)
	require.Error(t, err)
	assert.EqualValues(t, protocol.ErrorCodeInvalidRequest, protocol.ToResponseError(err).Code)
}

func TestExitTransitions(t *testing.T) {
	t.Run("shutdown then exit succeeds", func(t *testing.T) {
		m := NewMachine()
		m.BeginInitialize()
		m.CompleteInitialized()
		m.BeginShutdown()
		assert.Equal(t, StatusExitingSuccess, m.Exit())
	})

	t.Run("exit without shutdown fails", func(t *testing.T) {
		m := NewMachine()
		m.BeginInitialize()
		m.CompleteInitialized()
		assert.Equal(t, StatusExitingFailure, m.Exit())
	})
}

func TestAllowPanicsInTerminalStates(t *testing.T) {
	m := NewMachine()
	m.BeginInitialize()
	m.CompleteInitialized()
	m.BeginShutdown()
	m.Exit()

	assert.Panics(t, func() { _ = m.Allow(protocol.MethodTextDocumentHover) })
}
