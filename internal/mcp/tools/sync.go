package tools

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Klingenstadt-Solingen/osca-jobs/internal/repository"
	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/jobs"
	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/logging"
)

// JobPostingsSyncParams defines the arguments for the job_postings_sync tool
type JobPostingsSyncParams struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum number of postings to sync, default 1000"`
}

// JobPostingsSyncResult summarizes a sync run
type JobPostingsSyncResult struct {
	Fetched int `json:"fetched"`
	Synced  int `json:"synced"`
}

type jobPostingsSyncTool struct {
	jobs   JobsService
	repo   repository.JobPostingRepository
	logger *logging.Logger
}

// WithJobPostingsSync registers the job_postings_sync tool. A nil repo keeps
// the tool visible but every call reports that storage is not configured.
func WithJobPostingsSync(svc JobsService, repo repository.JobPostingRepository) Option {
	return func(reg *registry) {
		handler := jobPostingsSyncTool{jobs: svc, repo: repo, logger: reg.logger}
		addTool(reg, &sdkmcp.Tool{
			Name:        "job_postings_sync",
			Description: "Copy job postings into the Neo4j catalog, linked to their hiring organizations",
		}, handler.handle)
	}
}

func (t jobPostingsSyncTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params JobPostingsSyncParams) (*sdkmcp.CallToolResult, any, error) {
	if t.repo == nil {
		return errorResult("job_postings_sync: Neo4j is not configured (NEO4J_URI not set)"), nil, nil
	}

	postings, _, err := jobs.Await(t.jobs.JobPostings(ctx, listOptions(params.Limit, "")...))
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}

	synced, err := t.repo.UpsertJobPostings(ctx, postings)
	if err != nil {
		t.logger.Error("job posting sync failed", "err", err)
		return errorResult(fmt.Sprintf("job_postings_sync: storing postings failed: %v", err)), nil, nil
	}

	t.logger.Info("job postings synced", "fetched", len(postings), "synced", synced)

	result := JobPostingsSyncResult{Fetched: len(postings), Synced: synced}
	return textResult(fmt.Sprintf("synced %d of %d job posting(s)", synced, len(postings))), result, nil
}

// StoredJobPostingsParams defines the arguments for the stored_job_postings tool
type StoredJobPostingsParams struct {
	ObjectIDs []string `json:"object_ids" jsonschema:"Object IDs of previously synced job postings"`
	Lang      string   `json:"lang,omitempty" jsonschema:"Label language for employment types (de or en)"`
}

type storedJobPostingsTool struct {
	jobs   JobsService
	repo   repository.JobPostingRepository
	logger *logging.Logger
}

// WithStoredJobPostings registers the stored_job_postings tool, which reads
// postings back from the Neo4j catalog
func WithStoredJobPostings(svc JobsService, repo repository.JobPostingRepository) Option {
	return func(reg *registry) {
		handler := storedJobPostingsTool{jobs: svc, repo: repo, logger: reg.logger}
		addTool(reg, &sdkmcp.Tool{
			Name:        "stored_job_postings",
			Description: "Look up job postings in the Neo4j catalog by object ID",
		}, handler.handle)
	}
}

func (t storedJobPostingsTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params StoredJobPostingsParams) (*sdkmcp.CallToolResult, any, error) {
	if t.repo == nil {
		return errorResult("stored_job_postings: Neo4j is not configured (NEO4J_URI not set)"), nil, nil
	}

	ids := make([]string, 0, len(params.ObjectIDs))
	for _, id := range params.ObjectIDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return errorResult("stored_job_postings: object_ids must not be empty"), nil, nil
	}

	postings, err := t.repo.FindByObjectIDs(ctx, ids)
	if err != nil {
		t.logger.Error("stored job posting lookup failed", "err", err)
		return errorResult(fmt.Sprintf("stored_job_postings: lookup failed: %v", err)), nil, nil
	}

	result := JobPostingsResult{Count: len(postings), Postings: postings}
	return textResult(summarize(postings, t.jobs.Bundle(), params.Lang)), result, nil
}
