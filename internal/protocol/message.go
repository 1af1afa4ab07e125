// Package protocol implements the JSON-RPC 2.0 message model and the LSP
// wire types the dispatcher routes. Decoding and encoding follow the same
// encoding/json/v2 + jsontext conventions the rest of this pack's protocol
// packages use for union-shaped LSP values.
package protocol

import (
	"encoding/json/jsontext"
	"encoding/json/v2"
	"fmt"
)

// Kind classifies a decoded Message per §4.1: Request (id+method),
// Notification (method only), or Response (id + result-xor-error).
type Kind int

const (
	KindRequest Kind = iota
	KindNotification
	KindResponse
)

func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindNotification:
		return "notification"
	case KindResponse:
		return "response"
	default:
		return "unknown"
	}
}

// RequestID is the {integer, string} correlator variant from §3. Exactly one
// field is populated; the zero value is the invalid id (neither set).
type RequestID struct {
	Integer *int64
	String  *string
}

// NewIntID builds an integer RequestID.
func NewIntID(v int64) RequestID { return RequestID{Integer: &v} }

// NewStringID builds a string RequestID.
func NewStringID(v string) RequestID { return RequestID{String: &v} }

// IsZero reports whether neither variant is populated.
func (id RequestID) IsZero() bool { return id.Integer == nil && id.String == nil }

// Key returns a value usable as a map key for response correlation.
func (id RequestID) Key() any {
	switch {
	case id.String != nil:
		return *id.String
	case id.Integer != nil:
		return *id.Integer
	default:
		return nil
	}
}

func (id RequestID) String_() string {
	switch {
	case id.String != nil:
		return *id.String
	case id.Integer != nil:
		return fmt.Sprintf("%d", *id.Integer)
	default:
		return ""
	}
}

func (id RequestID) MarshalJSONTo(enc *jsontext.Encoder) error {
	assertAtMostOne("RequestID: at most one of Integer/String may be set", id.Integer != nil, id.String != nil)
	switch {
	case id.String != nil:
		return enc.WriteToken(jsontext.String(*id.String))
	case id.Integer != nil:
		return enc.WriteToken(jsontext.Int(*id.Integer))
	default:
		return enc.WriteToken(jsontext.Null)
	}
}

func (id *RequestID) UnmarshalJSONFrom(dec *jsontext.Decoder) error {
	tok, err := dec.ReadToken()
	if err != nil {
		return err
	}
	switch tok.Kind() {
	case '"':
		s := tok.String()
		id.String = &s
	case '0':
		n := tok.Int()
		id.Integer = &n
	case 'n':
		*id = RequestID{}
	default:
		return fmt.Errorf("protocol: request id must be string, number, or null, got kind %q", tok.Kind())
	}
	return nil
}

// ResponseError is the error body surfaced to the client (§3).
type ResponseError struct {
	Code    int64          `json:"code"`
	Message string         `json:"message"`
	Data    jsontext.Value `json:"data,omitzero"`
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("protocol error %d: %s", e.Code, e.Message)
}

// Message is the decoded tagged-variant envelope from §3/§4.1.
type Message struct {
	Kind   Kind
	ID     RequestID
	Method string
	Params jsontext.Value
	Result jsontext.Value
	Err    *ResponseError
}

// wireEnvelope is the raw-field shape every inbound JSON value is first
// unmarshaled into, before classification.
type wireEnvelope struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *RequestID      `json:"id,omitzero"`
	Method  *string         `json:"method,omitzero"`
	Params  jsontext.Value  `json:"params,omitzero"`
	Result  *jsontext.Value `json:"result,omitzero"`
	Error   *ResponseError  `json:"error,omitzero"`
}

// DecodeMessage classifies and decodes a single JSON value per §4.1:
//
//   - id present, method present  -> Request (params default to JSON null)
//   - id present, method absent   -> Response (exactly one of result/error)
//   - id absent,  method present  -> Notification (params default to JSON null)
//   - anything else               -> ParseError
func DecodeMessage(raw []byte) (*Message, error) {
	var env wireEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	hasID := env.ID != nil
	hasMethod := env.Method != nil && *env.Method != ""

	switch {
	case hasID && hasMethod:
		msg := &Message{Kind: KindRequest, ID: *env.ID, Method: *env.Method, Params: env.Params}
		if len(msg.Params) == 0 {
			msg.Params = jsontext.Value("null")
		}
		return msg, nil

	case hasID && !hasMethod:
		hasResult := env.Result != nil && string(*env.Result) != "null" && len(*env.Result) > 0
		hasError := env.Error != nil
		if hasResult && hasError {
			return nil, fmt.Errorf("%w: response carries both result and error", ErrParse)
		}
		msg := &Message{Kind: KindResponse, ID: *env.ID}
		if hasResult {
			msg.Result = *env.Result
		}
		if hasError {
			msg.Err = env.Error
		}
		return msg, nil

	case !hasID && hasMethod:
		msg := &Message{Kind: KindNotification, Method: *env.Method, Params: env.Params}
		if len(msg.Params) == 0 {
			msg.Params = jsontext.Value("null")
		}
		return msg, nil

	default:
		return nil, fmt.Errorf("%w: message has neither id nor method", ErrParse)
	}
}

// EncodeMessage renders a Message back to its wire JSON form (§4.2). Every
// frame begins with the version tag; exactly one payload key follows,
// `result`/`params`, or nothing for a pure error response.
func EncodeMessage(msg *Message) ([]byte, error) {
	env := wireEnvelope{JSONRPC: "2.0"}
	if !msg.ID.IsZero() || msg.Kind == KindResponse {
		id := msg.ID
		env.ID = &id
	}
	if msg.Method != "" {
		env.Method = &msg.Method
	}

	switch msg.Kind {
	case KindRequest, KindNotification:
		if len(msg.Params) > 0 {
			env.Params = msg.Params
		}
	case KindResponse:
		if msg.Err != nil {
			env.Error = msg.Err
		} else {
			result := msg.Result
			if len(result) == 0 {
				result = jsontext.Value("null")
			}
			env.Result = &result
		}
	}

	return json.Marshal(&env)
}
