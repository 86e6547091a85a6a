package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"

	"github.com/Klingenstadt-Solingen/osca-jobs/internal/config"
	"github.com/Klingenstadt-Solingen/osca-jobs/internal/mcp"
	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/logging"
)

const usage = `jobsctl talks to the OSCA jobs Parse server.

Usage:
  jobsctl [-log-level level] <command> [flags] [args]

Commands:
  list    [-limit n] [-order expr] [-lang de|en]
  search  [-index name] [-lang de|en] <query>
  image   -object-id id -base-url url [-mime .png] [-out dir] <file>...
  token   set [token] | clear | status
          set without a token reads it from standard input

Configuration is read from the environment (PARSE_BASE_URL,
PARSE_APPLICATION_ID, SETTINGS_BACKEND, ...) and OSCA_JOBS_CONFIG.
`

func main() {
	logLevel := flag.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*logLevel, flag.Arg(0), flag.Args()[1:]); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func run(logLevel, command string, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.NewDevelopment(logLevel)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if command == "token" {
		store, cleanup, err := mcp.InitializeSettings(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()
		if cfg.Settings.Backend == config.BackendMemory {
			pterm.Warning.Println("SETTINGS_BACKEND is memory, the token is not kept after this command")
		}
		return tokenCommand(ctx, store, os.Stdin, args)
	}

	module, cleanup, err := mcp.InitializeJobs(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	switch command {
	case "list":
		return listCommand(ctx, module, args)
	case "search":
		return searchCommand(ctx, module, args)
	case "image":
		return imageCommand(ctx, module, args)
	default:
		return fmt.Errorf("unknown command %q, run jobsctl -h for help", command)
	}
}
