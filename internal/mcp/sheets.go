package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/Klingenstadt-Solingen/osca-jobs/internal/mcp/tools"
	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/jobs"
	sheetsclient "github.com/Klingenstadt-Solingen/osca-jobs/pkg/sheets"
)

// sheetsWriter is the subset of the Sheets client used for exports
type sheetsWriter interface {
	AppendValues(ctx context.Context, spreadsheetID, rng string, values [][]any) (int, error)
	UpdateValues(ctx context.Context, spreadsheetID, rng string, values [][]any) (int, error)
	ClearValues(ctx context.Context, spreadsheetID, rng string) error
}

type sheetsClientAdapter struct {
	client sheetsWriter
	bundle *jobs.Bundle
}

func (a *sheetsClientAdapter) Export(ctx context.Context, req tools.SheetsExportRequest) (tools.SheetsExportResult, error) {
	tab := req.Tab
	if tab == "" {
		tab = sheetsclient.DefaultTab
	}

	result := tools.SheetsExportResult{
		SpreadsheetID: req.SpreadsheetID,
		Tab:           tab,
	}

	lang := req.Lang
	if lang == "" {
		lang = "de"
	}
	values := sheetsclient.JobPostingRows(req.Postings, a.bundle, lang)

	if len(values) == 0 && !req.ClearTab {
		result.CompletedAt = time.Now().UTC()
		result.Message = "no rows to export"
		return result, nil
	}

	var (
		written int
		err     error
	)
	if req.ClearTab {
		// rewrite the tab from A1, header first
		if err := a.client.ClearValues(ctx, req.SpreadsheetID, sheetsclient.A1(tab, "A:Z")); err != nil {
			return result, fmt.Errorf("sheets: failed to clear sheet: %w", err)
		}
		values = append([][]any{sheetsclient.JobPostingHeader}, values...)
		written, err = a.client.UpdateValues(ctx, req.SpreadsheetID, sheetsclient.A1(tab, "A1"), values)
		if err != nil {
			return result, fmt.Errorf("sheets: failed to write rows: %w", err)
		}
	} else {
		written, err = a.client.AppendValues(ctx, req.SpreadsheetID, sheetsclient.A1(tab, "A1"), values)
		if err != nil {
			return result, fmt.Errorf("sheets: failed to append rows: %w", err)
		}
	}

	result.WrittenRows = written
	result.CompletedAt = time.Now().UTC()
	result.Message = fmt.Sprintf("successfully exported %d row(s)", written)

	return result, nil
}
