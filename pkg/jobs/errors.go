package jobs

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/parse"
)

// ErrorKind is the closed set of failures reported by the module
type ErrorKind int

const (
	KindInvalidRequest ErrorKind = iota + 1
	KindInvalidResponse
	KindDataLoading
	KindJSONDecoding
	KindNoInternetConnection
	KindUnspecified
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidRequest:
		return "InvalidRequest"
	case KindInvalidResponse:
		return "InvalidResponse"
	case KindDataLoading:
		return "DataLoading"
	case KindJSONDecoding:
		return "JSONDecoding"
	case KindNoInternetConnection:
		return "NoInternetConnection"
	case KindUnspecified:
		return "Unspecified"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a network failure translated into the module's vocabulary
type Error struct {
	Kind ErrorKind
	// StatusCode and Data describe a KindDataLoading failure
	StatusCode int
	Data       []byte
	// Err is the underlying cause, if any
	Err error
}

var (
	ErrInvalidRequest       = &Error{Kind: KindInvalidRequest}
	ErrInvalidResponse      = &Error{Kind: KindInvalidResponse}
	ErrJSONDecoding         = &Error{Kind: KindJSONDecoding}
	ErrNoInternetConnection = &Error{Kind: KindNoInternetConnection}
	ErrUnspecified          = &Error{Kind: KindUnspecified}
)

// Error returns the user-facing description
func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidRequest:
		return "There is a network problem: invalid request!"
	case KindInvalidResponse:
		return "There is a network problem: invalid response!"
	case KindDataLoading:
		return fmt.Sprintf("There is a network problem: data loading failed with status code %d: %d bytes", e.StatusCode, len(e.Data))
	case KindJSONDecoding:
		if debugDescriptions && e.Err != nil {
			return fmt.Sprintf("There is a network problem: JSON decoding: %v", e.Err)
		}
		return "There is a network problem with JSON decoding"
	case KindNoInternetConnection:
		return "There is a network problem: internet connection failure!"
	default:
		return "There is an unspecified network problem!"
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports equality within the taxonomy. Decoding failures are equal
// regardless of cause; data loading failures need the same status and body.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return Equal(e, t)
}

// Equal compares two errors by the taxonomy's equality rules
func Equal(a, b *Error) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind == KindDataLoading {
		return a.StatusCode == b.StatusCode && bytes.Equal(a.Data, b.Data)
	}
	return true
}

// KindOf returns the taxonomy kind of err, or 0 when err is not an *Error
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// TranslateError maps a transport failure onto the taxonomy. Anything the
// transport vocabulary does not name becomes KindUnspecified.
func TranslateError(err error) *Error {
	if err == nil {
		return nil
	}

	var own *Error
	if errors.As(err, &own) {
		return own
	}

	var netErr *parse.NetworkError
	if !errors.As(err, &netErr) {
		return &Error{Kind: KindUnspecified, Err: err}
	}

	switch netErr.Kind {
	case parse.KindInvalidRequest:
		return &Error{Kind: KindInvalidRequest, Err: netErr}
	case parse.KindInvalidResponse:
		return &Error{Kind: KindInvalidResponse, Err: netErr}
	case parse.KindDataLoading:
		return &Error{Kind: KindDataLoading, StatusCode: netErr.StatusCode, Data: netErr.Data, Err: netErr}
	case parse.KindJSONDecoding:
		return &Error{Kind: KindJSONDecoding, Err: netErr.Err}
	case parse.KindNoInternetConnection:
		return &Error{Kind: KindNoInternetConnection, Err: netErr}
	default:
		return &Error{Kind: KindUnspecified, Err: netErr}
	}
}
