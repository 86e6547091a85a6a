package tools

import (
	"context"
	"fmt"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/jobs"
	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/logging"
)

// SheetsExporter writes job postings into a spreadsheet
type SheetsExporter interface {
	Export(ctx context.Context, req SheetsExportRequest) (SheetsExportResult, error)
}

// SheetsExportParams defines the arguments for the sheets_export tool
type SheetsExportParams struct {
	SpreadsheetID string `json:"spreadsheet_id" jsonschema:"Google Sheets document ID"`
	Tab           string `json:"tab,omitempty" jsonschema:"Tab name to write to, default Sheet1"`
	Limit         int    `json:"limit,omitempty" jsonschema:"Maximum number of postings to export"`
	ClearTab      bool   `json:"clear_tab,omitempty" jsonschema:"If true, clears the tab and rewrites the header first"`
	Lang          string `json:"lang,omitempty" jsonschema:"Label language for employment types (de or en)"`
}

// SheetsExportRequest is what the exporter receives
type SheetsExportRequest struct {
	SpreadsheetID string
	Tab           string
	ClearTab      bool
	Lang          string
	Postings      []jobs.JobPosting
}

// SheetsExportResult describes the summary returned after export
type SheetsExportResult struct {
	SpreadsheetID string    `json:"spreadsheet_id" jsonschema:"Target spreadsheet ID"`
	Tab           string    `json:"tab,omitempty" jsonschema:"Target tab name"`
	WrittenRows   int       `json:"written_rows" jsonschema:"How many rows were written"`
	CompletedAt   time.Time `json:"completed_at" jsonschema:"Timestamp when export finished"`
	Message       string    `json:"message,omitempty" jsonschema:"Optional status message"`
}

type sheetsExportTool struct {
	jobs     JobsService
	exporter SheetsExporter
	logger   *logging.Logger
}

// WithSheetsExport registers the sheets_export tool. A nil exporter keeps the
// tool visible but every call reports that Sheets is not configured.
func WithSheetsExport(svc JobsService, exporter SheetsExporter) Option {
	return func(reg *registry) {
		handler := sheetsExportTool{jobs: svc, exporter: exporter, logger: reg.logger}
		addTool(reg, &sdkmcp.Tool{
			Name:        "sheets_export",
			Description: "Export job postings to Google Sheets",
		}, handler.handle)
	}
}

func (t sheetsExportTool) handle(ctx context.Context, _ *sdkmcp.CallToolRequest, params SheetsExportParams) (*sdkmcp.CallToolResult, any, error) {
	if t.exporter == nil {
		return errorResult("sheets_export: Google Sheets is not configured (GOOGLE_SHEETS_CREDENTIALS_PATH not set)"), nil, nil
	}
	if params.SpreadsheetID == "" {
		return errorResult("sheets_export: spreadsheet_id is required"), nil, nil
	}

	postings, _, err := jobs.Await(t.jobs.JobPostings(ctx, listOptions(params.Limit, "")...))
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}

	result, err := t.exporter.Export(ctx, SheetsExportRequest{
		SpreadsheetID: params.SpreadsheetID,
		Tab:           params.Tab,
		ClearTab:      params.ClearTab,
		Lang:          params.Lang,
		Postings:      postings,
	})
	if err != nil {
		t.logger.Error("sheets export failed", "spreadsheet_id", params.SpreadsheetID, "err", err)
		return errorResult(fmt.Sprintf("sheets_export: %v", err)), nil, nil
	}

	msg := fmt.Sprintf("[sheets_export] %s (spreadsheet_id=%q tab=%q)", result.Message, result.SpreadsheetID, result.Tab)
	return textResult(msg), result, nil
}
