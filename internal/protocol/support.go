package protocol

import "encoding/json/jsontext"

// DocumentUri is an LSP document URI.
//
//nolint:staticcheck // Keep LSP spec naming for generated compatibility.
type DocumentUri string

// URI is a generic LSP URI (used by CodeDescription.Href and similar).
type URI string

// PtrTo returns a pointer to a copy of v, the idiomatic stand-in for the
// teacher's inline `new(v)` composite-literal helper when the value itself
// is not addressable.
func PtrTo[T any](v T) *T { return &v }

// assertOnlyOne panics unless exactly one of values is true, guarding the
// union-type invariant that a OneOf wire type populates exactly one field.
func assertOnlyOne(message string, values ...bool) {
	count := 0
	for _, v := range values {
		if v {
			count++
		}
	}
	if count != 1 {
		panic(message)
	}
}

// assertAtMostOne panics if more than one of values is true.
func assertAtMostOne(message string, values ...bool) {
	count := 0
	for _, v := range values {
		if v {
			count++
		}
	}
	if count > 1 {
		panic(message)
	}
}

// Null marshals to and requires JSON null, used by handlers whose result
// is always empty on success.
type Null struct{}

func (Null) UnmarshalJSONFrom(dec *jsontext.Decoder) error {
	tok, err := dec.ReadToken()
	if err != nil {
		return err
	}
	if tok.Kind() != 'n' {
		return &ResponseError{Code: int64(ErrorCodeParseError), Message: "expected null"}
	}
	return nil
}

func (Null) MarshalJSONTo(enc *jsontext.Encoder) error {
	return enc.WriteToken(jsontext.Null)
}
