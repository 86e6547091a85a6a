package parse

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"syscall"

	goerrors "github.com/go-errors/errors"
)

// ErrBodyTooLarge reports a response exceeding the client's size limit
var ErrBodyTooLarge = errors.New("response body too large")

// ErrorKind enumerates the failures a Fetch can report
type ErrorKind int

const (
	KindInvalidRequest ErrorKind = iota + 1
	KindInvalidResponse
	KindDataLoading
	KindJSONDecoding
	KindNoInternetConnection
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid request"
	case KindInvalidResponse:
		return "invalid response"
	case KindDataLoading:
		return "data loading"
	case KindJSONDecoding:
		return "json decoding"
	case KindNoInternetConnection:
		return "no internet connection"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// NetworkError is the transport's error vocabulary
type NetworkError struct {
	Kind ErrorKind
	// StatusCode and Data are set for KindDataLoading only
	StatusCode int
	Data       []byte
	Err        error
	stack      []byte
}

func (e *NetworkError) Error() string {
	switch {
	case e.Kind == KindDataLoading:
		return fmt.Sprintf("parse: %s: status %d (%d bytes)", e.Kind, e.StatusCode, len(e.Data))
	case e.Err != nil:
		return fmt.Sprintf("parse: %s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("parse: %s", e.Kind)
	}
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Stack returns the stack captured where the error was raised
func (e *NetworkError) Stack() []byte {
	return e.stack
}

func newNetworkError(kind ErrorKind, err error) *NetworkError {
	var stack []byte
	if err != nil {
		stack = goerrors.Wrap(err, 2).Stack()
	} else {
		stack = goerrors.New(kind.String()).Stack()
	}
	return &NetworkError{Kind: kind, Err: err, stack: stack}
}

func dataLoadingError(status int, body []byte) *NetworkError {
	e := newNetworkError(KindDataLoading, nil)
	e.StatusCode = status
	e.Data = body
	return e
}

// classifyTransportError maps an http.Client.Do failure onto the vocabulary.
// Cancellation or expiry of the caller's ctx is not a network condition and
// is returned as is; client timeouts count as lost connectivity.
func classifyTransportError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return err
	}
	if isConnectivityError(err) {
		return newNetworkError(KindNoInternetConnection, err)
	}
	return newNetworkError(KindInvalidResponse, err)
}

func isConnectivityError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH) {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	return false
}
