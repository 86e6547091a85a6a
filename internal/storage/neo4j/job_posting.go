package neo4j

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/Klingenstadt-Solingen/osca-jobs/internal/repository"
	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/jobs"
	pkgneo4j "github.com/Klingenstadt-Solingen/osca-jobs/pkg/neo4j"
)

// Ensure JobPostingRepository implements repository.JobPostingRepository
var _ repository.JobPostingRepository = (*JobPostingRepository)(nil)

const upsertJobPostingsQuery = `
	UNWIND $postings AS posting
	MERGE (j:JobPosting {objectId: posting.objectId})
	SET j.title = posting.title,
	    j.url = posting.url,
	    j.employmentType = posting.employmentType,
	    j.createdAt = CASE WHEN posting.createdAt IS NULL THEN null ELSE datetime({epochMillis: posting.createdAt}) END,
	    j.updatedAt = CASE WHEN posting.updatedAt IS NULL THEN null ELSE datetime({epochMillis: posting.updatedAt}) END,
	    j.datePosted = CASE WHEN posting.datePosted IS NULL THEN null ELSE datetime({epochMillis: posting.datePosted}) END,
	    j.syncedAt = datetime()
	WITH j, posting
	WHERE posting.organization IS NOT NULL
	MERGE (o:Organization {name: posting.organization.name})
	SET o.imageUrl = posting.organization.imageUrl,
	    o.branch = posting.organization.branch
	MERGE (j)-[:POSTED_BY]->(o)
`

const findJobPostingsQuery = `
	MATCH (j:JobPosting)
	WHERE j.objectId IN $ids
	OPTIONAL MATCH (j)-[:POSTED_BY]->(o:Organization)
	RETURN j, o
	ORDER BY j.datePosted DESC
`

// JobPostingRepository implements repository.JobPostingRepository with Neo4j
type JobPostingRepository struct {
	client *pkgneo4j.Client
}

// NewJobPostingRepository creates a JobPostingRepository with a Neo4j client
func NewJobPostingRepository(client *pkgneo4j.Client) *JobPostingRepository {
	return &JobPostingRepository{
		client: client,
	}
}

// UpsertJobPostings merges postings keyed by objectId and links each to its
// hiring organization. Postings without objectId are skipped; the number
// written is returned.
func (r *JobPostingRepository) UpsertJobPostings(ctx context.Context, postings []jobs.JobPosting) (int, error) {
	params := postingParams(postings)
	if len(params) == 0 {
		return 0, nil
	}

	_, err := r.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, upsertJobPostingsQuery, map[string]any{"postings": params})
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		return 0, err
	}

	return len(params), nil
}

// FindByObjectIDs loads postings by their Parse object id
func (r *JobPostingRepository) FindByObjectIDs(ctx context.Context, ids []string) ([]jobs.JobPosting, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	result, err := r.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, findJobPostingsQuery, map[string]any{"ids": ids})
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, err
	}

	records := result.([]*neo4j.Record)
	postings := make([]jobs.JobPosting, 0, len(records))

	for _, record := range records {
		jobVal, ok := record.Get("j")
		if !ok {
			continue
		}
		jobNode, ok := jobVal.(neo4j.Node)
		if !ok {
			continue
		}

		var orgProps map[string]any
		if orgVal, ok := record.Get("o"); ok {
			if orgNode, ok := orgVal.(neo4j.Node); ok {
				orgProps = orgNode.Props
			}
		}

		postings = append(postings, postingFromProps(jobNode.Props, orgProps))
	}

	return postings, nil
}

// postingParams maps postings onto the query parameters of the upsert
func postingParams(postings []jobs.JobPosting) []map[string]any {
	params := make([]map[string]any, 0, len(postings))

	for _, p := range postings {
		if p.ObjectID == "" {
			continue
		}

		var org any
		if p.HiringOrganization != nil && p.HiringOrganization.Name != "" {
			org = map[string]any{
				"name":     p.HiringOrganization.Name,
				"imageUrl": p.HiringOrganization.ImageURL,
				"branch":   p.HiringOrganization.Branch,
			}
		}

		params = append(params, map[string]any{
			"objectId":       p.ObjectID,
			"title":          p.Title,
			"url":            p.URL,
			"employmentType": string(p.EmploymentType),
			"createdAt":      epochMillis(p.CreatedAt),
			"updatedAt":      epochMillis(p.UpdatedAt),
			"datePosted":     epochMillis(p.DatePosted),
			"organization":   org,
		})
	}

	return params
}

func postingFromProps(props, orgProps map[string]any) jobs.JobPosting {
	p := jobs.JobPosting{
		ObjectID:       stringProp(props, "objectId"),
		Title:          stringProp(props, "title"),
		URL:            stringProp(props, "url"),
		EmploymentType: jobs.EmploymentType(stringProp(props, "employmentType")),
		CreatedAt:      timeProp(props, "createdAt"),
		UpdatedAt:      timeProp(props, "updatedAt"),
		DatePosted:     timeProp(props, "datePosted"),
	}

	if name := stringProp(orgProps, "name"); name != "" {
		p.HiringOrganization = &jobs.HiringOrganization{
			Name:     name,
			ImageURL: stringProp(orgProps, "imageUrl"),
			Branch:   stringProp(orgProps, "branch"),
		}
	}

	return p
}

func epochMillis(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UnixMilli()
}

func stringProp(props map[string]any, key string) string {
	s, _ := props[key].(string)
	return s
}

func timeProp(props map[string]any, key string) *time.Time {
	switch v := props[key].(type) {
	case time.Time:
		return &v
	case neo4j.LocalDateTime:
		t := v.Time()
		return &t
	default:
		return nil
	}
}
