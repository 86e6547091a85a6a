package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/jobs"
	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/settings"
)

// tokenCommand manages the Parse session token in the configured store.
// "set" without a value reads the token from in.
func tokenCommand(ctx context.Context, store settings.Writer, in io.Reader, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("token: expected set, clear or status")
	}

	switch args[0] {
	case "set":
		token, err := tokenArg(in, args[1:])
		if err != nil {
			return err
		}
		if err := store.Set(ctx, jobs.SessionTokenKey, token); err != nil {
			return fmt.Errorf("token: store: %w", err)
		}
		pterm.Success.Printfln("session token stored (%s)", maskToken(token))
		return nil

	case "clear":
		if err := store.Delete(ctx, jobs.SessionTokenKey); err != nil {
			return fmt.Errorf("token: delete: %w", err)
		}
		pterm.Success.Println("session token removed")
		return nil

	case "status":
		token, err := store.String(ctx, jobs.SessionTokenKey)
		switch {
		case errors.Is(err, settings.ErrNotFound):
			pterm.Info.Println("no session token stored, requests are sent anonymously")
			return nil
		case err != nil:
			return fmt.Errorf("token: lookup: %w", err)
		}
		pterm.Info.Printfln("session token %s", maskToken(token))
		return nil

	default:
		return fmt.Errorf("token: unknown action %q", args[0])
	}
}

func tokenArg(in io.Reader, args []string) (string, error) {
	var token string
	if len(args) > 0 {
		token = args[0]
	} else if in != nil {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("token: read stdin: %w", err)
		}
		token = line
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("token: session token is empty")
	}
	return token, nil
}

// maskToken keeps the first four characters
func maskToken(token string) string {
	if len(token) <= 4 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-4)
}
