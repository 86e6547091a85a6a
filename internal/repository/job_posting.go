package repository

import (
	"context"

	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/jobs"
)

// JobPostingRepository persists job postings fetched from Parse
type JobPostingRepository interface {
	UpsertJobPostings(ctx context.Context, postings []jobs.JobPosting) (int, error)
	FindByObjectIDs(ctx context.Context, ids []string) ([]jobs.JobPosting, error)
}
