package contract

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// ErrorKind identifies the failure condition of a contract call.
type ErrorKind uint8

const (
	// InvalidInput means the request was rejected before anything was
	// recorded.
	InvalidInput ErrorKind = iota + 1

	// SerializationFailure means the response could not be encoded.
	SerializationFailure
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	case SerializationFailure:
		return "SerializationFailure"
	}

	return "Unknown"
}

// Error is the structured error value returned by the contract. Only Msg is
// part of the wire format.
type Error struct {
	Kind ErrorKind `json:"-"`
	Msg  string    `json:"msg"`
}

// NewError returns an error of the given kind.
func NewError(kind ErrorKind, msg string) *Error {
	return &Error{
		Kind: kind,
		Msg:  msg,
	}
}

func (e *Error) Error() string {
	return e.Msg
}

// MarshalError encodes an error as {"msg": ...}. Errors that did not come
// from the contract keep their text.
func MarshalError(err error) []byte {
	e, ok := errors.Cause(err).(*Error)
	if !ok {
		e = &Error{Msg: err.Error()}
	}

	b, jerr := json.Marshal(e)
	if jerr != nil {
		return []byte(`{"msg":"Serialization error"}`)
	}

	return b
}

// IsInvalidInput returns true if the cause of err is an InvalidInput error.
func IsInvalidInput(err error) bool {
	return kindOf(err) == InvalidInput
}

// IsSerializationFailure returns true if the cause of err is a
// SerializationFailure error.
func IsSerializationFailure(err error) bool {
	return kindOf(err) == SerializationFailure
}

func kindOf(err error) ErrorKind {
	if err == nil {
		return 0
	}

	e, ok := errors.Cause(err).(*Error)
	if !ok {
		return 0
	}

	return e.Kind
}
