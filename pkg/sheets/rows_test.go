package sheets

import (
	"testing"
	"time"

	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/jobs"
)

func TestJobPostingRows(t *testing.T) {
	bundle, err := jobs.LoadBundle()
	if err != nil {
		t.Fatalf("LoadBundle: %v", err)
	}
	posted := time.Date(2024, 2, 20, 9, 0, 0, 0, time.UTC)

	rows := JobPostingRows([]jobs.JobPosting{
		{
			ObjectID:           "jp1",
			Title:              "Elektriker",
			URL:                "https://jobs.example.org/1",
			DatePosted:         &posted,
			EmploymentType:     jobs.PartTime,
			HiringOrganization: &jobs.HiringOrganization{Name: "Stadtwerke Solingen", Branch: "Versorgung"},
		},
		{ObjectID: "jp2"},
	}, bundle, "de")

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if len(rows[0]) != len(JobPostingHeader) {
		t.Fatalf("row width %d does not match header width %d", len(rows[0]), len(JobPostingHeader))
	}

	want := []any{"jp1", "Elektriker", "Stadtwerke Solingen", "Versorgung", "Teilzeit", "2024-02-20", "https://jobs.example.org/1"}
	for i := range want {
		if rows[0][i] != want[i] {
			t.Errorf("column %d: got %v, want %v", i, rows[0][i], want[i])
		}
	}

	for i, v := range rows[1][1:] {
		if v != "" {
			t.Errorf("sparse posting column %d: expected empty, got %v", i+1, v)
		}
	}
}

func TestA1(t *testing.T) {
	if got := A1("", "A1"); got != "'Sheet1'!A1" {
		t.Fatalf("unexpected range %s", got)
	}
	if got := A1("Offene Stellen", "A2:Z"); got != "'Offene Stellen'!A2:Z" {
		t.Fatalf("unexpected range %s", got)
	}
}
