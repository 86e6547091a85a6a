package mcp

import (
	"context"

	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/jobs"
	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/logging"
)

// logAnalytics records module events in the structured log
type logAnalytics struct {
	logger *logging.Logger
}

func provideAnalytics(logger *logging.Logger) jobs.Analytics {
	return logAnalytics{logger: logger.Named("analytics")}
}

func (a logAnalytics) LogEvent(_ context.Context, name string, params map[string]string) {
	keyvals := make([]any, 0, 2+2*len(params))
	keyvals = append(keyvals, "event", name)
	for k, v := range params {
		keyvals = append(keyvals, k, v)
	}
	a.logger.Info("analytics event", keyvals...)
}
