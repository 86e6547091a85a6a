package parse

import (
	"context"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/logging"
)

// Header names understood by Parse Server
const (
	HeaderApplicationID = "X-Parse-Application-Id"
	HeaderClientKey     = "X-Parse-Client-Key"
	HeaderSessionToken  = "X-Parse-Session-Token"
	HeaderRequestID     = "X-Parse-Request-Id"
)

// Config defines Parse client settings
type Config struct {
	BaseURL       string
	ApplicationID string
	ClientKey     string
	// Headers are sent with every class and function request in addition to
	// the application id and client key.
	Headers    map[string]string
	HTTPClient *http.Client
	// RequestsPerSecond <= 0 disables client-side rate limiting
	RequestsPerSecond float64
	Burst             int
	// MaxBodyBytes caps class and function responses, MaxFileBytes file
	// downloads. Zero selects the defaults. A larger body fails with
	// ErrBodyTooLarge and is never decoded.
	MaxBodyBytes int64
	MaxFileBytes int64
	Logger       *logging.Logger
}

// Client talks to a Parse Server over HTTP
type Client struct {
	baseURL    string
	headers    map[string]string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxBody    int64
	maxFile    int64
	logger     *logging.Logger
}

// Resource describes one remote call: how to build the HTTP request and how
// to decode a successful response body into out.
type Resource interface {
	NewRequest(ctx context.Context) (*http.Request, error)
	Decode(body []byte, out any) error
}

// binaryResource marks resources whose body is raw file content
type binaryResource interface {
	binaryBody()
}
