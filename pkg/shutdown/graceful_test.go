package shutdown

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/logging"
)

func TestShutdownAllRunsEveryStoppable(t *testing.T) {
	var order []string
	boom := errors.New("boom")

	err := shutdownAll(time.Second, logging.Nop(),
		StopFunc(func(ctx context.Context) error {
			if _, ok := ctx.Deadline(); !ok {
				t.Error("expected a deadline on the shutdown context")
			}
			order = append(order, "server")
			return nil
		}),
		StopFunc(func(context.Context) error {
			order = append(order, "store")
			return boom
		}),
		StopFunc(func(context.Context) error {
			order = append(order, "graph")
			return nil
		}),
	)

	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error to contain boom, got %v", err)
	}
	if len(order) != 3 || order[0] != "server" || order[2] != "graph" {
		t.Fatalf("unexpected shutdown order %v", order)
	}
}

func TestShutdownAllWithoutErrors(t *testing.T) {
	if err := shutdownAll(time.Second, logging.Nop()); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}
