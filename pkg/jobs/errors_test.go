package jobs

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/parse"
)

func TestTranslateError(t *testing.T) {
	decodeCause := errors.New("unexpected end of JSON input")

	cases := []struct {
		name string
		in   error
		want ErrorKind
	}{
		{"invalid request", &parse.NetworkError{Kind: parse.KindInvalidRequest}, KindInvalidRequest},
		{"invalid response", &parse.NetworkError{Kind: parse.KindInvalidResponse}, KindInvalidResponse},
		{"data loading", &parse.NetworkError{Kind: parse.KindDataLoading, StatusCode: 500}, KindDataLoading},
		{"json decoding", &parse.NetworkError{Kind: parse.KindJSONDecoding, Err: decodeCause}, KindJSONDecoding},
		{"no internet", &parse.NetworkError{Kind: parse.KindNoInternetConnection}, KindNoInternetConnection},
		{"wrapped network error", fmt.Errorf("fetch: %w", &parse.NetworkError{Kind: parse.KindInvalidRequest}), KindInvalidRequest},
		{"unknown network kind", &parse.NetworkError{Kind: parse.ErrorKind(99)}, KindUnspecified},
		{"canceled", context.Canceled, KindUnspecified},
		{"foreign", errors.New("boom"), KindUnspecified},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TranslateError(tc.in)
			if got == nil || got.Kind != tc.want {
				t.Fatalf("expected %s, got %+v", tc.want, got)
			}
		})
	}
}

func TestTranslateErrorKeepsDetails(t *testing.T) {
	if TranslateError(nil) != nil {
		t.Fatal("expected nil for nil error")
	}

	body := []byte(`{"code":101,"error":"Object not found."}`)
	got := TranslateError(&parse.NetworkError{Kind: parse.KindDataLoading, StatusCode: 404, Data: body})
	if got.StatusCode != 404 || string(got.Data) != string(body) {
		t.Fatalf("data loading details lost: %+v", got)
	}

	cause := errors.New("invalid character")
	got = TranslateError(&parse.NetworkError{Kind: parse.KindJSONDecoding, Err: cause})
	if !errors.Is(got, cause) {
		t.Fatalf("expected decoding cause to be kept, got %v", got.Err)
	}

	own := &Error{Kind: KindNoInternetConnection}
	if TranslateError(fmt.Errorf("wrapped: %w", own)) != own {
		t.Fatal("expected an existing *Error to pass through")
	}

	if !errors.Is(TranslateError(context.DeadlineExceeded), context.DeadlineExceeded) {
		t.Fatal("expected unspecified error to wrap its cause")
	}
}

func TestErrorEquality(t *testing.T) {
	cases := []struct {
		name string
		a, b *Error
		want bool
	}{
		{"same kind", &Error{Kind: KindInvalidRequest}, ErrInvalidRequest, true},
		{"different kind", ErrInvalidRequest, ErrInvalidResponse, false},
		{"decoding ignores cause", &Error{Kind: KindJSONDecoding, Err: errors.New("a")}, &Error{Kind: KindJSONDecoding, Err: errors.New("b")}, true},
		{"loading same status and body", &Error{Kind: KindDataLoading, StatusCode: 500, Data: []byte("x")}, &Error{Kind: KindDataLoading, StatusCode: 500, Data: []byte("x")}, true},
		{"loading different status", &Error{Kind: KindDataLoading, StatusCode: 500}, &Error{Kind: KindDataLoading, StatusCode: 502}, false},
		{"loading different body", &Error{Kind: KindDataLoading, StatusCode: 500, Data: []byte("x")}, &Error{Kind: KindDataLoading, StatusCode: 500, Data: []byte("y")}, false},
		{"nil vs nil", nil, nil, true},
		{"nil vs value", nil, ErrUnspecified, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Equal(tc.a, tc.b); got != tc.want {
				t.Fatalf("Equal = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestErrorsIsUsesTaxonomy(t *testing.T) {
	err := fmt.Errorf("list: %w", &Error{Kind: KindNoInternetConnection, Err: errors.New("dial tcp")})
	if !errors.Is(err, ErrNoInternetConnection) {
		t.Fatal("expected errors.Is to match the sentinel")
	}
	if errors.Is(err, ErrInvalidResponse) {
		t.Fatal("did not expect a match on another kind")
	}
	if KindOf(err) != KindNoInternetConnection {
		t.Fatalf("unexpected kind %s", KindOf(err))
	}
	if KindOf(errors.New("plain")) != 0 {
		t.Fatal("expected zero kind for foreign errors")
	}
}

func TestErrorDescriptions(t *testing.T) {
	cases := []struct {
		err  *Error
		want string
	}{
		{ErrInvalidRequest, "There is a network problem: invalid request!"},
		{ErrInvalidResponse, "There is a network problem: invalid response!"},
		{&Error{Kind: KindDataLoading, StatusCode: 503, Data: []byte("down")}, "There is a network problem: data loading failed with status code 503: 4 bytes"},
		{ErrNoInternetConnection, "There is a network problem: internet connection failure!"},
		{ErrUnspecified, "There is an unspecified network problem!"},
	}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.err.Kind, got, tc.want)
		}
	}
}
