package parse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/logging"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultMaxBodyBytes = 64 << 20
	defaultMaxFileBytes = 64 << 20
	maxErrorBodyBytes   = 1 << 20
)

var tracer = otel.Tracer("github.com/Klingenstadt-Solingen/osca-jobs/pkg/parse")

// NewClient instantiates a Parse Server client
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("parse: base url is required")
	}
	if _, err := joinURL(baseURL); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if cfg.ApplicationID == "" {
		return nil, fmt.Errorf("parse: application id is required")
	}

	headers := make(map[string]string, len(cfg.Headers)+2)
	for k, v := range cfg.Headers {
		headers[k] = v
	}
	headers[HeaderApplicationID] = cfg.ApplicationID
	if cfg.ClientKey != "" {
		headers[HeaderClientKey] = cfg.ClientKey
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	maxFile := cfg.MaxFileBytes
	if maxFile <= 0 {
		maxFile = defaultMaxFileBytes
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	return &Client{
		baseURL:    baseURL,
		headers:    headers,
		httpClient: httpClient,
		limiter:    limiter,
		maxBody:    maxBody,
		maxFile:    maxFile,
		logger:     logger.Named("parse"),
	}, nil
}

// BaseURL returns the configured server URL without trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Headers returns a copy of the default request headers
func (c *Client) Headers() map[string]string {
	out := make(map[string]string, len(c.headers))
	for k, v := range c.headers {
		out[k] = v
	}
	return out
}

// Fetch performs the call described by res and decodes the body into out.
// Failures are *NetworkError except for context cancellation.
func (c *Client) Fetch(ctx context.Context, res Resource, out any) error {
	if c == nil {
		return fmt.Errorf("parse: client is nil")
	}

	ctx, span := tracer.Start(ctx, "parse.Fetch", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	err := c.fetch(ctx, span, res, out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (c *Client) fetch(ctx context.Context, span trace.Span, res Resource, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("parse: rate limiter: %w", err)
		}
	}

	if res == nil {
		return newNetworkError(KindInvalidRequest, fmt.Errorf("resource is nil"))
	}
	req, err := res.NewRequest(ctx)
	if err != nil {
		return newNetworkError(KindInvalidRequest, err)
	}

	requestID := uuid.NewString()
	req.Header.Set(HeaderRequestID, requestID)

	span.SetAttributes(
		attribute.String("http.method", req.Method),
		attribute.String("http.url", req.URL.String()),
		attribute.String("parse.request_id", requestID),
	)
	log := c.logger.With("method", req.Method, "path", req.URL.Path, "request_id", requestID)
	log.Debug("parse request started")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("parse request failed", "err", err)
		return classifyTransportError(ctx, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		log.Warn("parse request rejected", "status", resp.StatusCode, "body_bytes", len(body))
		return dataLoadingError(resp.StatusCode, body)
	}

	limit := c.maxBody
	if _, ok := res.(binaryResource); ok {
		limit = c.maxFile
	}
	body, err := readBody(resp.Body, limit)
	if err != nil {
		log.Warn("parse response read failed", "err", err)
		if errors.Is(err, ErrBodyTooLarge) {
			return newNetworkError(KindInvalidResponse, err)
		}
		return classifyTransportError(ctx, err)
	}

	if err := res.Decode(body, out); err != nil {
		log.Warn("parse response decode failed", "err", err)
		return newNetworkError(KindJSONDecoding, err)
	}

	log.Debug("parse request finished",
		"status", resp.StatusCode,
		"body_bytes", len(body),
		"elapsed", time.Since(started),
	)
	return nil
}

// readBody reads at most limit bytes and fails instead of truncating
func readBody(r io.Reader, limit int64) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, limit)
	}
	return body, nil
}
