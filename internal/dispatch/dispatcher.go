package dispatch

import (
	"context"
	"encoding/json/jsontext"
	jsonv2 "encoding/json/v2"
	"reflect"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lang-tools/zls-core/internal/lifecycle"
	"github.com/lang-tools/zls-core/internal/protocol"
)

// ConfigurationResponseHandler routes a response correlated by the
// well-known `i_haz_configuration` id (spec.md §4.6 step 3) back to the
// configuration subsystem.
type ConfigurationResponseHandler func(result jsontext.Value, respErr *protocol.ResponseError)

// Dispatcher runs the full request-dispatch pipeline of spec.md §4.6: it
// classifies a raw inbound frame through the Message model, enforces the
// lifecycle machine, looks up and invokes the registered handler, and
// renders the reply back through EncodeMessage. It operates on raw bytes
// so it can be driven directly by the testable-property scenarios in
// spec.md §8 as well as adapted to any real transport.
type Dispatcher struct {
	Table     *Table
	Lifecycle *lifecycle.Machine
	Log       *logrus.Logger

	// OnConfigurationResponse handles the i_haz_configuration correlation;
	// nil is a no-op.
	OnConfigurationResponse ConfigurationResponseHandler

	// Quiet suppresses the per-method elapsed-time line (§4.6 step 9,
	// "when not running under the test harness"). Tests set this to true.
	Quiet bool
}

// Dispatch runs the pipeline for one inbound frame. It returns the encoded
// response frame and true when a reply must be written back to the
// client; it returns (nil, false) for notifications, for dropped/malformed
// input, and for responses (which are consumed, never answered).
func (d *Dispatcher) Dispatch(ctx context.Context, raw []byte) ([]byte, bool) {
	start := time.Now()

	msg, err := protocol.DecodeMessage(raw)
	if err != nil {
		d.logf(logrus.WarnLevel, "", "dropping malformed message: %v", err)
		return nil, false
	}

	switch msg.Kind {
	case protocol.KindResponse:
		d.dispatchResponse(msg)
		return nil, false
	case protocol.KindNotification:
		d.dispatchMethod(ctx, msg, start)
		return nil, false
	case protocol.KindRequest:
		return d.dispatchMethod(ctx, msg, start)
	default:
		return nil, false
	}
}

// dispatchResponse implements spec.md §4.6 step 3: responses are
// correlated only by well-known id prefixes.
func (d *Dispatcher) dispatchResponse(msg *protocol.Message) {
	id := msg.ID.String_()

	if method, ok := protocol.IsRegisterCapabilityID(id); ok {
		if msg.Err != nil {
			d.logf(logrus.WarnLevel, method, "capability registration failed: %s", msg.Err.Message)
		}
		return
	}

	switch id {
	case protocol.WellKnownIDApplyEdit:
		// Fire-and-forget: the core does not act on the client's applied
		// flag beyond what the handler already did.
	case protocol.WellKnownIDConfiguration:
		if d.OnConfigurationResponse != nil {
			d.OnConfigurationResponse(msg.Result, msg.Err)
		}
	default:
		d.logf(logrus.WarnLevel, "", "unmatched response id=%q", id)
	}
}

// dispatchMethod implements spec.md §4.6 steps 4-9 for both requests and
// notifications. For requests it returns the encoded response frame and
// true; for notifications it always returns (nil, false) after handling
// side effects.
func (d *Dispatcher) dispatchMethod(ctx context.Context, msg *protocol.Message, start time.Time) ([]byte, bool) {
	isRequest := msg.Kind == protocol.KindRequest

	entry, ok := d.Table.Lookup(msg.Method)
	if !ok || entry.Kind != msg.Kind {
		return d.reject(msg, isRequest, protocol.NewTaxonomyError(protocol.ErrorCodeMethodNotFound),
			"method not registered for this message kind")
	}

	if lerr := d.Lifecycle.Allow(msg.Method); lerr != nil {
		return d.reject(msg, isRequest, lerr, "rejected by lifecycle")
	}

	arena := NewArena()
	defer arena.Reset()

	result, herr := entry.Call(ctx, arena, msg.Params)
	d.logElapsed(msg.Method, start)

	if !isRequest {
		if herr != nil {
			d.logf(logrus.WarnLevel, msg.Method, "notification handler error (swallowed): %v", herr)
		}
		return nil, false
	}

	if herr != nil {
		return d.encodeErrorResponse(msg, herr), true
	}
	return d.encodeResultResponse(msg, result), true
}

// reject renders a taxonomy error for a request, or logs and drops it for
// a notification (spec.md §7: "suppressed for notifications").
func (d *Dispatcher) reject(msg *protocol.Message, isRequest bool, taxErr error, reason string) ([]byte, bool) {
	if !isRequest {
		d.logf(logrus.WarnLevel, msg.Method, "%s: %v", reason, taxErr)
		return nil, false
	}
	return d.encodeErrorResponse(msg, taxErr), true
}

func (d *Dispatcher) encodeErrorResponse(msg *protocol.Message, err error) []byte {
	resp := &protocol.Message{Kind: protocol.KindResponse, ID: msg.ID, Err: protocol.ToResponseError(err)}
	frame, encErr := protocol.EncodeMessage(resp)
	if encErr != nil {
		d.logf(logrus.ErrorLevel, msg.Method, "failed to encode error response: %v", encErr)
		return nil
	}
	return frame
}

// encodeResultResponse renders a handler's typed result through the wire
// writer. A nil result — including a typed-nil pointer/slice/map, the Go
// equivalent of the source's explicit "null payload" sentinel (§4.2) —
// always serializes as an explicit JSON null.
func (d *Dispatcher) encodeResultResponse(msg *protocol.Message, result any) []byte {
	var raw jsontext.Value
	switch {
	case IsNilResult(result):
		raw = jsontext.Value("null")
	default:
		if rv, ok := result.(jsontext.Value); ok {
			raw = rv
			break
		}
		encoded, err := jsonv2.Marshal(result)
		if err != nil {
			d.logf(logrus.ErrorLevel, msg.Method, "failed to marshal result: %v", err)
			return d.encodeErrorResponse(msg, protocol.NewTaxonomyError(protocol.ErrorCodeInternalError))
		}
		raw = encoded
	}

	resp := &protocol.Message{Kind: protocol.KindResponse, ID: msg.ID, Result: raw}
	frame, err := protocol.EncodeMessage(resp)
	if err != nil {
		d.logf(logrus.ErrorLevel, msg.Method, "failed to encode response: %v", err)
		return nil
	}
	return frame
}

// IsNilResult reports whether v is a nil interface or a nil pointer/slice/
// map/chan/func held in a non-nil interface, the classic Go "typed nil"
// case every handler returning e.g. (*Hover)(nil) hits. Shared with any
// transport adapter that marshals a handler's result outside this package.
func IsNilResult(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

func (d *Dispatcher) logf(level logrus.Level, method string, format string, args ...any) {
	if d.Log == nil {
		return
	}
	entry := logrus.NewEntry(d.Log)
	if method != "" {
		entry = entry.WithField("method", method)
	}
	entry.Logf(level, format, args...)
}

// logElapsed implements spec.md §4.6 step 9: "measure and log elapsed
// milliseconds per method when not running under the test harness."
func (d *Dispatcher) logElapsed(method string, start time.Time) {
	if d.Quiet || d.Log == nil {
		return
	}
	logrus.NewEntry(d.Log).WithFields(logrus.Fields{
		"method":     method,
		"elapsed_ms": time.Since(start).Milliseconds(),
	}).Debug("dispatch")
}
