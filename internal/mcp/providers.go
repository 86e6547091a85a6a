package mcp

import (
	"context"
	"fmt"

	"github.com/Klingenstadt-Solingen/osca-jobs/internal/config"
	"github.com/Klingenstadt-Solingen/osca-jobs/internal/mcp/tools"
	"github.com/Klingenstadt-Solingen/osca-jobs/internal/repository"
	storage "github.com/Klingenstadt-Solingen/osca-jobs/internal/storage/neo4j"
	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/jobs"
	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/logging"
	n4j "github.com/Klingenstadt-Solingen/osca-jobs/pkg/neo4j"
	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/parse"
	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/settings"
	sheetsclient "github.com/Klingenstadt-Solingen/osca-jobs/pkg/sheets"
)

// provideParseConfig extracts Parse config from main config
func provideParseConfig(cfg config.Config, logger *logging.Logger) parse.Config {
	return parse.Config{
		BaseURL:           cfg.Parse.BaseURL,
		ApplicationID:     cfg.Parse.ApplicationID,
		ClientKey:         cfg.Parse.ClientKey,
		RequestsPerSecond: cfg.Parse.RequestsPerSecond,
		Burst:             cfg.Parse.Burst,
		Logger:            logger,
	}
}

// provideSettingsStore opens the configured session token backend
func provideSettingsStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (settings.Writer, func(), error) {
	noop := func() {}

	switch cfg.Settings.Backend {
	case config.BackendKeyring:
		return settings.NewKeyring(cfg.Settings.KeyringService), noop, nil

	case config.BackendRedis:
		store := settings.NewRedis(settings.RedisOptions{
			Addr:     cfg.Settings.Redis.Addr,
			Password: cfg.Settings.Redis.Password,
			DB:       cfg.Settings.Redis.DB,
			Prefix:   "osca:jobs:",
		})
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("settings: redis %s unreachable: %w", cfg.Settings.Redis.Addr, err)
		}
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Warn("closing redis settings store failed", "err", err)
			}
		}, nil

	case config.BackendSQLite:
		store, err := settings.OpenSQLite(ctx, cfg.Settings.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Warn("closing sqlite settings store failed", "err", err)
			}
		}, nil

	default:
		seed := map[string]string{}
		if cfg.Settings.SessionToken != "" {
			seed[jobs.SessionTokenKey] = cfg.Settings.SessionToken
		}
		return settings.NewMemory(seed), noop, nil
	}
}

// provideJobsModule assembles the jobs module from its collaborators
func provideJobsModule(client *parse.Client, store settings.Writer, bundle *jobs.Bundle, analytics jobs.Analytics, logger *logging.Logger) (*jobs.Module, error) {
	return jobs.New(jobs.Dependencies{
		Transport: client,
		Store:     store,
		Bundle:    bundle,
		Analytics: analytics,
		Logger:    logger,
	})
}

// provideJobPostingRepository connects to Neo4j when configured. Without
// NEO4J_URI it returns a nil repository and the sync tool stays disabled.
func provideJobPostingRepository(ctx context.Context, cfg config.Config, logger *logging.Logger) (repository.JobPostingRepository, func(), error) {
	if !cfg.Neo4jEnabled() {
		logger.Info("Neo4j not configured, job_postings_sync disabled")
		return nil, func() {}, nil
	}

	client, err := n4j.NewClient(ctx, n4j.Config{
		URI:      cfg.Neo4j.URI,
		Username: cfg.Neo4j.Username,
		Password: cfg.Neo4j.Password,
	})
	if err != nil {
		return nil, nil, err
	}

	logger.Info("Neo4j client initialized", "uri", cfg.Neo4j.URI)
	return storage.NewJobPostingRepository(client), func() {
		if err := client.Close(context.Background()); err != nil {
			logger.Warn("closing Neo4j client failed", "err", err)
		}
	}, nil
}

// provideSheetsExporter builds the Sheets exporter when credentials are set
func provideSheetsExporter(ctx context.Context, cfg config.Config, bundle *jobs.Bundle, logger *logging.Logger) (tools.SheetsExporter, error) {
	if cfg.SheetsCredentialsPath == "" {
		logger.Info("Google Sheets not configured, sheets_export disabled")
		return nil, nil
	}

	client, err := sheetsclient.NewClient(ctx, sheetsclient.Config{CredentialsPath: cfg.SheetsCredentialsPath})
	if err != nil {
		return nil, err
	}

	logger.Info("Google Sheets client initialized")
	return &sheetsClientAdapter{client: client, bundle: bundle}, nil
}

// newResources creates Resources struct
func newResources(module *jobs.Module, postings repository.JobPostingRepository, exporter tools.SheetsExporter) *Resources {
	return &Resources{
		Jobs:     module,
		Postings: postings,
		Sheets:   exporter,
	}
}
