package mcp

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Klingenstadt-Solingen/osca-jobs/internal/mcp/tools"
	"github.com/Klingenstadt-Solingen/osca-jobs/internal/repository"
	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/jobs"
	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/logging"
)

// Resources are the collaborators the MCP tools run against
type Resources struct {
	Jobs *jobs.Module
	// Postings is nil when Neo4j is not configured
	Postings repository.JobPostingRepository
	// Sheets is nil when Google Sheets is not configured
	Sheets tools.SheetsExporter
}

// registerTools installs every tool backed by res into server
func registerTools(server *sdkmcp.Server, res *Resources, logger *logging.Logger) []string {
	return tools.Register(server, logger,
		tools.WithJobPostings(res.Jobs),
		tools.WithJobPostingImage(res.Jobs),
		tools.WithElasticSearch(res.Jobs),
		tools.WithJobPostingsSync(res.Jobs, res.Postings),
		tools.WithStoredJobPostings(res.Jobs, res.Postings),
		tools.WithSheetsExport(res.Jobs, res.Sheets),
	)
}
