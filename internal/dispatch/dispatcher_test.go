package dispatch

import (
	"context"
	"encoding/json/jsontext"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lang-tools/zls-core/internal/lifecycle"
	"github.com/lang-tools/zls-core/internal/protocol"
)

type pingParams struct {
	Name string `json:"name"`
}

type pingResult struct {
	Greeting string `json:"greeting"`
}

func newTestDispatcher() (*Dispatcher, *Table, *lifecycle.Machine) {
	table := NewTable()
	machine := lifecycle.NewMachine()

	RegisterRequest(table, protocol.MethodInitialize, func(ctx context.Context, arena *Arena, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
		machine.BeginInitialize()
		return &protocol.InitializeResult{}, nil
	})
	RegisterNotification(table, protocol.MethodInitialized, func(ctx context.Context, arena *Arena, params *struct{}) {
		machine.CompleteInitialized()
	})
	RegisterRequest(table, protocol.MethodShutdown, func(ctx context.Context, arena *Arena, params *struct{}) (any, error) {
		machine.BeginShutdown()
		return nil, nil
	})
	RegisterNotification(table, protocol.MethodExit, func(ctx context.Context, arena *Arena, params *struct{}) {
		machine.Exit()
	})
	RegisterRequest(table, "ping", func(ctx context.Context, arena *Arena, params *pingParams) (*pingResult, error) {
		return &pingResult{Greeting: "hello " + params.Name}, nil
	})
	RegisterRequest(table, "nullres", func(ctx context.Context, arena *Arena, params *struct{}) (*pingResult, error) {
		var r *pingResult
		return r, nil
	})

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	return &Dispatcher{Table: table, Lifecycle: machine, Log: log, Quiet: true}, table, machine
}

func TestDispatch_LifecycleHappyPath(t *testing.T) {
	d, _, machine := newTestDispatcher()
	ctx := context.Background()

	frame, hasResp := d.Dispatch(ctx, []byte(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`))
	require.True(t, hasResp)
	assert.Contains(t, string(frame), `"id":1`)
	assert.Equal(t, lifecycle.StatusInitializing, machine.Status())

	_, hasResp = d.Dispatch(ctx, []byte(`{"jsonrpc":"2.0","method":"initialized","params":{}}`))
	assert.False(t, hasResp)
	assert.Equal(t, lifecycle.StatusInitialized, machine.Status())

	frame, hasResp = d.Dispatch(ctx, []byte(`{"jsonrpc":"2.0","id":2,"method":"ping","params":{"name":"world"}}`))
	require.True(t, hasResp)
	assert.Contains(t, string(frame), "hello world")

	frame, hasResp = d.Dispatch(ctx, []byte(`{"jsonrpc":"2.0","id":3,"method":"shutdown"}`))
	require.True(t, hasResp)
	assert.Equal(t, lifecycle.StatusShutdown, machine.Status())

	_, hasResp = d.Dispatch(ctx, []byte(`{"jsonrpc":"2.0","method":"exit"}`))
	assert.False(t, hasResp)
	assert.Equal(t, lifecycle.StatusExitingSuccess, machine.Status())
}

func TestDispatch_RejectsBeforeInitialize(t *testing.T) {
	d, _, _ := newTestDispatcher()
	ctx := context.Background()

	frame, hasResp := d.Dispatch(ctx, []byte(`{"jsonrpc":"2.0","id":7,"method":"ping","params":{"name":"x"}}`))
	require.True(t, hasResp)
	assert.Contains(t, string(frame), `-32002`)
}

func TestDispatch_UnknownMethod(t *testing.T) {
	d, _, machine := newTestDispatcher()
	machine.BeginInitialize()
	machine.CompleteInitialized()
	ctx := context.Background()

	frame, hasResp := d.Dispatch(ctx, []byte(`{"jsonrpc":"2.0","id":9,"method":"textDocument/bogus","params":{}}`))
	require.True(t, hasResp)
	assert.Contains(t, string(frame), `-32601`)
}

func TestDispatch_MalformedFrameDropped(t *testing.T) {
	d, _, _ := newTestDispatcher()
	ctx := context.Background()

	frame, hasResp := d.Dispatch(ctx, []byte(`not json`))
	assert.False(t, hasResp)
	assert.Nil(t, frame)
}

func TestDispatch_TypedNilResultEncodesAsNull(t *testing.T) {
	d, _, machine := newTestDispatcher()
	machine.BeginInitialize()
	machine.CompleteInitialized()
	ctx := context.Background()

	frame, hasResp := d.Dispatch(ctx, []byte(`{"jsonrpc":"2.0","id":4,"method":"nullres","params":{}}`))
	require.True(t, hasResp)
	assert.Contains(t, string(frame), `"result":null`)
}

func TestDispatch_ResponseRoutesConfigurationCorrelation(t *testing.T) {
	d, _, machine := newTestDispatcher()
	machine.BeginInitialize()
	machine.CompleteInitialized()
	ctx := context.Background()

	var gotResult jsontext.Value
	var gotErr *protocol.ResponseError
	d.OnConfigurationResponse = func(result jsontext.Value, respErr *protocol.ResponseError) {
		gotResult = result
		gotErr = respErr
	}

	_, hasResp := d.Dispatch(ctx, []byte(`{"jsonrpc":"2.0","id":"i_haz_configuration","result":[{"lineLength":100}]}`))
	assert.False(t, hasResp)
	assert.Nil(t, gotErr)
	assert.Equal(t, `[{"lineLength":100}]`, string(gotResult))
}

func TestDispatch_NotificationErrorsAreSwallowed(t *testing.T) {
	table := NewTable()
	machine := lifecycle.NewMachine()
	machine.BeginInitialize()
	machine.CompleteInitialized()

	RegisterNotification(table, "noisy", func(ctx context.Context, arena *Arena, params *struct{ Bad int }) {})

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	d := &Dispatcher{Table: table, Lifecycle: machine, Log: log, Quiet: true}

	frame, hasResp := d.Dispatch(context.Background(), []byte(`{"jsonrpc":"2.0","method":"noisy","params":"not-an-object"}`))
	assert.False(t, hasResp)
	assert.Nil(t, frame)
}
