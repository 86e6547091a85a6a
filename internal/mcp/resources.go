package mcp

import (
	"context"

	"github.com/Klingenstadt-Solingen/osca-jobs/internal/config"
	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/logging"
)

// Bootstrap wires every resource and builds the HTTP server around them.
// The returned cleanup releases storage connections.
func Bootstrap(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Server, func(), error) {
	res, cleanup, err := InitializeResources(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize resources", "err", err)
		return nil, nil, err
	}

	logger.Info("resources initialized",
		"module", res.Jobs.BundlePrefix(),
		"version", res.Jobs.Version(),
		"parse_url", cfg.Parse.BaseURL,
		"settings_backend", cfg.Settings.Backend,
		"neo4j", res.Postings != nil,
		"sheets", res.Sheets != nil,
	)

	return NewServer(logger, cfg, res), cleanup, nil
}
