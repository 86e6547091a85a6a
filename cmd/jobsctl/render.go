package main

import (
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/jobs"
)

// namedImage keeps the requested file name next to the downloaded data
type namedImage struct {
	FileName string
	jobs.JobPostingImageData
}

func (n namedImage) Less(other namedImage) bool {
	return n.JobPostingImageData.Less(other.JobPostingImageData)
}

// sortImages orders images like jobs.SortImageData
func sortImages(images []namedImage) {
	sort.SliceStable(images, func(i, j int) bool {
		return images[i].Less(images[j])
	})
}

func postingTable(postings []jobs.JobPosting, bundle *jobs.Bundle, lang string, now time.Time) pterm.TableData {
	data := pterm.TableData{{"Title", "Organization", "Type", "Posted", "Object ID"}}

	for _, p := range postings {
		var org string
		if p.HiringOrganization != nil {
			org = p.HiringOrganization.Name
		}

		var kind string
		if p.EmploymentType != "" {
			kind = p.EmploymentType.Label(bundle, lang)
		}

		posted := "-"
		if p.DatePosted != nil {
			posted = humanize.RelTime(*p.DatePosted, now, "ago", "from now")
		}

		data = append(data, []string{p.Title, org, kind, posted, p.ObjectID})
	}

	return data
}

func imageTable(images []namedImage) pterm.TableData {
	data := pterm.TableData{{"File", "Object ID", "Size"}}

	for _, img := range images {
		size := "absent"
		if img.ImageData != nil {
			size = humanize.Bytes(uint64(len(img.ImageData)))
		}
		data = append(data, []string{img.FileName, img.ObjectID, size})
	}

	return data
}

func renderPostings(postings []jobs.JobPosting, bundle *jobs.Bundle, lang string) error {
	if len(postings) == 0 {
		pterm.Info.Println("no job postings found")
		return nil
	}

	pterm.Info.Printfln("%s job posting(s)", humanize.Comma(int64(len(postings))))
	return pterm.DefaultTable.WithHasHeader().WithData(postingTable(postings, bundle, lang, time.Now())).Render()
}

func renderImages(images []namedImage) error {
	return pterm.DefaultTable.WithHasHeader().WithData(imageTable(images)).Render()
}
