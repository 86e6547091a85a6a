package sheets

import (
	"fmt"
	"time"

	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/jobs"
)

// DefaultTab is used when no tab name is given
const DefaultTab = "Sheet1"

// JobPostingHeader names the columns written by JobPostingRows
var JobPostingHeader = []any{
	"Object ID", "Title", "Organization", "Branch", "Employment Type", "Date Posted", "URL",
}

// JobPostingRows renders postings as sheet rows. Employment types are
// labelled in lang from the bundle.
func JobPostingRows(postings []jobs.JobPosting, bundle *jobs.Bundle, lang string) [][]any {
	rows := make([][]any, 0, len(postings))
	for _, p := range postings {
		var org, branch string
		if p.HiringOrganization != nil {
			org = p.HiringOrganization.Name
			branch = p.HiringOrganization.Branch
		}

		var posted string
		if p.DatePosted != nil {
			posted = p.DatePosted.UTC().Format(time.DateOnly)
		}

		var employment string
		if p.EmploymentType != "" {
			employment = p.EmploymentType.Label(bundle, lang)
		}

		rows = append(rows, []any{p.ObjectID, p.Title, org, branch, employment, posted, p.URL})
	}
	return rows
}

// A1 builds an A1 notation range such as "Jobs!A1"
func A1(tab, cells string) string {
	if tab == "" {
		tab = DefaultTab
	}
	return fmt.Sprintf("'%s'!%s", tab, cells)
}
