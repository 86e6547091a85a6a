package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/jobs"
	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/logging"
)

// ElasticSearchParams defines the arguments for the elastic_search tool
type ElasticSearchParams struct {
	Query string `json:"query" jsonschema:"Full text search query"`
	Index string `json:"index,omitempty" jsonschema:"Search index, default job_posting"`
	Lang  string `json:"lang,omitempty" jsonschema:"Label language for employment types (de or en)"`
}

type elasticSearchTool struct {
	jobs   JobsService
	logger *logging.Logger
}

// WithElasticSearch registers the elastic_search tool
func WithElasticSearch(svc JobsService) Option {
	return func(reg *registry) {
		handler := elasticSearchTool{jobs: svc, logger: reg.logger}
		addTool(reg, &sdkmcp.Tool{
			Name:        "elastic_search",
			Description: "Full text search over job postings via the elastic-search cloud function",
		}, handler.handle)
	}
}

func (t elasticSearchTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params ElasticSearchParams) (*sdkmcp.CallToolResult, any, error) {
	t.logger.Debug("elastic_search called", "query", params.Query, "index", params.Index)

	var opts []jobs.SearchOption
	if params.Index != "" {
		opts = append(opts, jobs.WithIndex(params.Index))
	}

	postings, ok, err := jobs.Await(t.jobs.ElasticSearch(ctx, params.Query, opts...))
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}
	if !ok {
		return textResult("no search performed: query is empty"), JobPostingsResult{Postings: []jobs.JobPosting{}}, nil
	}

	result := JobPostingsResult{Count: len(postings), Postings: postings}
	return textResult(summarize(postings, t.jobs.Bundle(), params.Lang)), result, nil
}
