package jobs

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/logging"
	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/parse"
	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/settings"
)

const (
	// SessionTokenKey is the settings key holding the Parse session token
	SessionTokenKey = "SessionToken"
	DefaultLimit    = 1000
	DefaultIndex    = "job_posting"
	DefaultOrder    = "-date"
)

// Transport is the subset of the Parse client used by the module
type Transport interface {
	BaseURL() string
	Headers() map[string]string
	Fetch(ctx context.Context, res parse.Resource, out any) error
}

// SessionStore is a read-only view on persisted user settings
type SessionStore interface {
	String(ctx context.Context, key string) (string, error)
}

// Analytics receives one event per issued request
type Analytics interface {
	LogEvent(ctx context.Context, name string, params map[string]string)
}

// Dependencies are the collaborators a Module is built from
type Dependencies struct {
	Transport Transport
	Store     SessionStore
	Bundle    *Bundle
	Analytics Analytics       // optional
	Logger    *logging.Logger // optional
}

// Module fetches job postings from a Parse server. It is immutable and safe
// for concurrent use.
type Module struct {
	transport Transport
	store     SessionStore
	bundle    *Bundle
	analytics Analytics
	logger    *logging.Logger
}

// New builds a Module from fully constructed dependencies
func New(deps Dependencies) (*Module, error) {
	if deps.Transport == nil {
		return nil, fmt.Errorf("jobs: transport is required")
	}
	if deps.Store == nil {
		return nil, fmt.Errorf("jobs: session store is required")
	}
	if deps.Bundle == nil {
		return nil, fmt.Errorf("jobs: module bundle is required")
	}

	logger := deps.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	return &Module{
		transport: deps.Transport,
		store:     deps.Store,
		bundle:    deps.Bundle,
		analytics: deps.Analytics,
		logger:    logger.Named("jobs").With("module", deps.Bundle.Identifier),
	}, nil
}

// Version is the module's semantic version
func (m *Module) Version() string {
	return m.bundle.Version
}

// BundlePrefix is the module's reverse-DNS identifier
func (m *Module) BundlePrefix() string {
	return m.bundle.Identifier
}

// Bundle returns the resolved asset bundle
func (m *Module) Bundle() *Bundle {
	return m.bundle
}

// ListOption configures JobPostings
type ListOption func(*listConfig)

type listConfig struct {
	limit int
	query map[string]string
}

// WithLimit caps the number of postings returned
func WithLimit(limit int) ListOption {
	return func(c *listConfig) {
		c.limit = limit
	}
}

// WithQuery replaces the default {"order": "-date"} query parameters
func WithQuery(query map[string]string) ListOption {
	return func(c *listConfig) {
		c.query = query
	}
}

// SearchOption configures ElasticSearch
type SearchOption func(*searchConfig)

type searchConfig struct {
	index string
}

// WithIndex selects the elastic search index
func WithIndex(index string) SearchOption {
	return func(c *searchConfig) {
		c.index = index
	}
}

// JobPostings downloads job postings. The channel delivers exactly one
// Result and is then closed.
func (m *Module) JobPostings(ctx context.Context, opts ...ListOption) <-chan Result[[]JobPosting] {
	cfg := listConfig{
		limit: DefaultLimit,
		query: map[string]string{"order": DefaultOrder},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	parameters := make(map[string]string, len(cfg.query)+1)
	for k, v := range cfg.query {
		parameters[k] = v
	}
	parameters["limit"] = strconv.Itoa(cfg.limit)

	m.logEvent(ctx, "jobs_list", map[string]string{"limit": parameters["limit"]})

	return run(ctx, m, "list job postings", func(ctx context.Context) ([]JobPosting, error) {
		req := JobPostingRequest(m.transport.BaseURL(), m.headers(ctx), parameters)

		var postings []JobPosting
		if err := m.transport.Fetch(ctx, req, &postings); err != nil {
			return nil, err
		}
		return postings, nil
	})
}

// JobPostingImage downloads the image fileName+mimeType below baseURL for
// the posting objectID.
func (m *Module) JobPostingImage(ctx context.Context, objectID, baseURL, fileName, mimeType string) <-chan Result[JobPostingImageData] {
	m.logEvent(ctx, "jobs_image", map[string]string{"object_id": objectID})

	return run(ctx, m, "fetch job posting image", func(ctx context.Context) (JobPostingImageData, error) {
		req := JobPostingImageDataRequest(objectID, baseURL, fileName, mimeType)

		var data []byte
		if err := m.transport.Fetch(ctx, req, &data); err != nil {
			return JobPostingImageData{}, err
		}
		return JobPostingImageData{ObjectID: req.ObjectID, ImageData: data}, nil
	})
}

// ElasticSearch runs a full text search through the elastic-search cloud
// function. An empty query or index yields a channel that is closed without
// a value and no request is made.
func (m *Module) ElasticSearch(ctx context.Context, query string, opts ...SearchOption) <-chan Result[[]JobPosting] {
	cfg := searchConfig{index: DefaultIndex}
	for _, opt := range opts {
		opt(&cfg)
	}

	if query == "" || cfg.index == "" {
		out := make(chan Result[[]JobPosting])
		close(out)
		return out
	}

	m.logEvent(ctx, "jobs_search", map[string]string{"index": cfg.index})

	return run(ctx, m, "elastic search", func(ctx context.Context) ([]JobPosting, error) {
		req := ElasticSearchRequest(m.transport.BaseURL(), m.headers(ctx), ElasticSearchQuery{
			Index: cfg.index,
			Query: query,
		})

		var postings []JobPosting
		if err := m.transport.Fetch(ctx, req, &postings); err != nil {
			return nil, err
		}
		return postings, nil
	})
}

// headers returns the transport defaults plus the session token, if any
func (m *Module) headers(ctx context.Context) map[string]string {
	headers := m.transport.Headers()
	if headers == nil {
		headers = make(map[string]string, 1)
	}

	token, err := m.store.String(ctx, SessionTokenKey)
	switch {
	case err == nil && token != "":
		headers[parse.HeaderSessionToken] = token
	case err != nil && !errors.Is(err, settings.ErrNotFound):
		m.logger.Warn("session token lookup failed", "err", err)
	}
	return headers
}

func (m *Module) logEvent(ctx context.Context, name string, params map[string]string) {
	if m.analytics != nil {
		m.analytics.LogEvent(ctx, name, params)
	}
}

// run executes fn on its own goroutine and delivers the translated outcome
// on a buffered channel, so an abandoned channel never blocks the worker.
func run[T any](ctx context.Context, m *Module, op string, fn func(context.Context) (T, error)) <-chan Result[T] {
	out := make(chan Result[T], 1)

	go func() {
		defer close(out)

		value, err := fn(ctx)
		if err != nil {
			jerr := TranslateError(err)
			m.logger.Warn(op+" failed", "kind", jerr.Kind.String(), "err", err)
			out <- Result[T]{Err: jerr}
			return
		}

		m.logger.Debug(op + " succeeded")
		out <- Result[T]{Value: value}
	}()

	return out
}
