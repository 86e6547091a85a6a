package mcp

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Klingenstadt-Solingen/osca-jobs/internal/config"
	"github.com/Klingenstadt-Solingen/osca-jobs/internal/mcp/tools"
	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/jobs"
	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/logging"
	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/parse"
	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/settings"
)

type stubTransport struct{}

func (stubTransport) BaseURL() string            { return "https://parse.example.org/parse" }
func (stubTransport) Headers() map[string]string { return map[string]string{} }
func (stubTransport) Fetch(context.Context, parse.Resource, any) error {
	return nil
}

func testResources(t *testing.T) *Resources {
	t.Helper()

	bundle, err := jobs.LoadBundle()
	if err != nil {
		t.Fatalf("LoadBundle: %v", err)
	}
	module, err := jobs.New(jobs.Dependencies{
		Transport: stubTransport{},
		Store:     settings.NewMemory(nil),
		Bundle:    bundle,
	})
	if err != nil {
		t.Fatalf("jobs.New: %v", err)
	}
	return newResources(module, nil, nil)
}

func TestServerHealthz(t *testing.T) {
	srv := NewServer(logging.Nop(), config.Config{Host: "127.0.0.1", Port: "0"}, testResources(t))

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected response %d %q", resp.StatusCode, body)
	}
}

func TestServerListsTools(t *testing.T) {
	srv := NewServer(logging.Nop(), config.Config{Host: "127.0.0.1", Port: "0"}, testResources(t))

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	ctx := context.Background()
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.StreamableClientTransport{Endpoint: ts.URL + "/mcp/stream"}, nil)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer session.Close()

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	sort.Strings(names)

	want := "elastic_search,job_posting_image,job_postings,job_postings_sync,sheets_export,stored_job_postings"
	if got := strings.Join(names, ","); got != want {
		t.Fatalf("unexpected tools %s", got)
	}
}

func TestLogAnalytics(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	analytics := provideAnalytics(logging.FromZap(zap.New(core)))

	analytics.LogEvent(context.Background(), "jobs_list", map[string]string{"limit": "5"})

	entries := logs.FilterMessage("analytics event").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["event"] != "jobs_list" || fields["limit"] != "5" {
		t.Fatalf("unexpected fields %v", fields)
	}
}

type fakeSheetsWriter struct {
	cleared  []string
	appended [][]any
	updated  [][]any
	rng      string
}

func (w *fakeSheetsWriter) AppendValues(_ context.Context, _, rng string, values [][]any) (int, error) {
	w.rng = rng
	w.appended = append(w.appended, values...)
	return len(values), nil
}

func (w *fakeSheetsWriter) UpdateValues(_ context.Context, _, rng string, values [][]any) (int, error) {
	w.rng = rng
	w.updated = append(w.updated, values...)
	return len(values), nil
}

func (w *fakeSheetsWriter) ClearValues(_ context.Context, _, rng string) error {
	w.cleared = append(w.cleared, rng)
	return nil
}

func TestSheetsAdapterExport(t *testing.T) {
	bundle, err := jobs.LoadBundle()
	if err != nil {
		t.Fatalf("LoadBundle: %v", err)
	}
	writer := &fakeSheetsWriter{}
	adapter := &sheetsClientAdapter{client: writer, bundle: bundle}

	result, err := adapter.Export(context.Background(), tools.SheetsExportRequest{
		SpreadsheetID: "sheet-123",
		ClearTab:      true,
		Postings: []jobs.JobPosting{
			{ObjectID: "jp1", Title: "Elektriker", EmploymentType: jobs.Contract},
		},
	})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	if result.Tab != "Sheet1" || result.WrittenRows != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(writer.cleared) != 1 || writer.cleared[0] != "'Sheet1'!A:Z" {
		t.Fatalf("unexpected clear calls %v", writer.cleared)
	}
	if writer.rng != "'Sheet1'!A1" {
		t.Fatalf("unexpected write range %s", writer.rng)
	}
	if len(writer.appended) != 0 {
		t.Fatalf("cleared tab must be rewritten, not appended: %v", writer.appended)
	}
	if writer.updated[0][0] != "Object ID" || writer.updated[1][4] != "Befristet" {
		t.Fatalf("unexpected rows %v", writer.updated)
	}
}

func TestSheetsAdapterAppends(t *testing.T) {
	writer := &fakeSheetsWriter{}
	adapter := &sheetsClientAdapter{client: writer}

	result, err := adapter.Export(context.Background(), tools.SheetsExportRequest{
		SpreadsheetID: "sheet-123",
		Tab:           "Jobs",
		Postings:      []jobs.JobPosting{{ObjectID: "jp1"}, {ObjectID: "jp2"}},
	})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if result.WrittenRows != 2 || len(writer.appended) != 2 || len(writer.updated) != 0 || len(writer.cleared) != 0 {
		t.Fatalf("unexpected export %+v, writer %+v", result, writer)
	}
	if writer.appended[0][0] != "jp1" {
		t.Fatalf("unexpected rows %v", writer.appended)
	}
}

func TestSheetsAdapterNothingToExport(t *testing.T) {
	writer := &fakeSheetsWriter{}
	adapter := &sheetsClientAdapter{client: writer}

	result, err := adapter.Export(context.Background(), tools.SheetsExportRequest{SpreadsheetID: "sheet-123", Tab: "Jobs"})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if result.WrittenRows != 0 || result.Message != "no rows to export" || len(writer.appended) != 0 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestProvideSettingsStore(t *testing.T) {
	ctx := context.Background()

	var cfg config.Config
	cfg.Settings.Backend = config.BackendMemory
	cfg.Settings.SessionToken = "r:seeded"

	store, cleanup, err := provideSettingsStore(ctx, cfg, logging.Nop())
	if err != nil {
		t.Fatalf("memory: %v", err)
	}
	cleanup()
	if got, _ := store.String(ctx, jobs.SessionTokenKey); got != "r:seeded" {
		t.Fatalf("expected seeded token, got %q", got)
	}

	cfg.Settings.Backend = config.BackendSQLite
	cfg.Settings.SQLitePath = t.TempDir() + "/settings.db"
	store, cleanup, err = provideSettingsStore(ctx, cfg, logging.Nop())
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	defer cleanup()
	if _, err := store.String(ctx, jobs.SessionTokenKey); err != settings.ErrNotFound {
		t.Fatalf("expected ErrNotFound from fresh sqlite store, got %v", err)
	}
}

func TestOptionalResourcesAreNilWhenUnconfigured(t *testing.T) {
	ctx := context.Background()
	var cfg config.Config

	repo, cleanup, err := provideJobPostingRepository(ctx, cfg, logging.Nop())
	if err != nil {
		t.Fatalf("provideJobPostingRepository: %v", err)
	}
	cleanup()
	if repo != nil {
		t.Fatal("expected nil repository without NEO4J_URI")
	}

	exporter, err := provideSheetsExporter(ctx, cfg, nil, logging.Nop())
	if err != nil {
		t.Fatalf("provideSheetsExporter: %v", err)
	}
	if exporter != nil {
		t.Fatal("expected nil exporter without credentials")
	}
}
