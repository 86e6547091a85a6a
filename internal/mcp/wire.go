//go:build wireinject
// +build wireinject

package mcp

import (
	"context"

	"github.com/google/wire"

	"github.com/Klingenstadt-Solingen/osca-jobs/internal/config"
	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/jobs"
	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/logging"
	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/parse"
	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/settings"
)

var jobsSet = wire.NewSet(
	// Infrastructure - Parse
	provideParseConfig,
	parse.NewClient,

	// Session token store
	provideSettingsStore,

	// Module
	jobs.LoadBundle,
	provideAnalytics,
	provideJobsModule,
)

// InitializeResources creates Resources with all resources wired up
func InitializeResources(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Resources, func(), error) {
	wire.Build(
		jobsSet,

		// Infrastructure - Neo4j
		provideJobPostingRepository,

		// Infrastructure - Google Sheets
		provideSheetsExporter,

		newResources,
	)

	return nil, nil, nil
}

// InitializeJobs creates the jobs module alone, for command line use
func InitializeJobs(ctx context.Context, cfg config.Config, logger *logging.Logger) (*jobs.Module, func(), error) {
	wire.Build(jobsSet)

	return nil, nil, nil
}

// InitializeSettings opens the session token store alone
func InitializeSettings(ctx context.Context, cfg config.Config, logger *logging.Logger) (settings.Writer, func(), error) {
	wire.Build(provideSettingsStore)

	return nil, nil, nil
}
