package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/jobs"
	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/logging"
)

// JobsService is the jobs module as seen by the tools
type JobsService interface {
	JobPostings(ctx context.Context, opts ...jobs.ListOption) <-chan jobs.Result[[]jobs.JobPosting]
	JobPostingImage(ctx context.Context, objectID, baseURL, fileName, mimeType string) <-chan jobs.Result[jobs.JobPostingImageData]
	ElasticSearch(ctx context.Context, query string, opts ...jobs.SearchOption) <-chan jobs.Result[[]jobs.JobPosting]
	Bundle() *jobs.Bundle
}

// JobPostingsParams defines the arguments for the job_postings tool
type JobPostingsParams struct {
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of postings, default 1000"`
	Order string `json:"order,omitempty" jsonschema:"Parse order expression, default -date"`
	Lang  string `json:"lang,omitempty" jsonschema:"Label language for employment types (de or en)"`
}

// JobPostingsResult is the structured response of job_postings and elastic_search
type JobPostingsResult struct {
	Count    int               `json:"count"`
	Postings []jobs.JobPosting `json:"postings"`
}

type jobPostingsTool struct {
	jobs   JobsService
	logger *logging.Logger
}

// WithJobPostings registers the job_postings tool
func WithJobPostings(svc JobsService) Option {
	return func(reg *registry) {
		handler := jobPostingsTool{jobs: svc, logger: reg.logger}
		addTool(reg, &sdkmcp.Tool{
			Name:        "job_postings",
			Description: "List job postings from the OSCA Parse server, newest first",
		}, handler.handle)
	}
}

func (t jobPostingsTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params JobPostingsParams) (*sdkmcp.CallToolResult, any, error) {
	t.logger.Debug("job_postings called", "limit", params.Limit, "order", params.Order)

	postings, _, err := jobs.Await(t.jobs.JobPostings(ctx, listOptions(params.Limit, params.Order)...))
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}

	result := JobPostingsResult{Count: len(postings), Postings: postings}
	return textResult(summarize(postings, t.jobs.Bundle(), params.Lang)), result, nil
}

func listOptions(limit int, order string) []jobs.ListOption {
	var opts []jobs.ListOption
	if limit > 0 {
		opts = append(opts, jobs.WithLimit(limit))
	}
	if order != "" {
		opts = append(opts, jobs.WithQuery(map[string]string{"order": order}))
	}
	return opts
}

// summarize renders one line per posting
func summarize(postings []jobs.JobPosting, bundle *jobs.Bundle, lang string) string {
	if len(postings) == 0 {
		return "no job postings found"
	}
	if lang == "" {
		lang = "de"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d job posting(s)\n", len(postings))
	for _, p := range postings {
		fmt.Fprintf(&b, "- [%s] %s", p.ObjectID, p.Title)
		if p.HiringOrganization != nil && p.HiringOrganization.Name != "" {
			fmt.Fprintf(&b, " @ %s", p.HiringOrganization.Name)
		}
		if p.EmploymentType != "" {
			fmt.Fprintf(&b, " (%s)", p.EmploymentType.Label(bundle, lang))
		}
		if p.DatePosted != nil {
			fmt.Fprintf(&b, ", posted %s", p.DatePosted.Format("2006-01-02"))
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}
