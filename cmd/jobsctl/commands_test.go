package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/jobs"
)

type fakeModule struct {
	images map[string][]byte
	calls  atomic.Int32
}

func result[T any](v T, err error) <-chan jobs.Result[T] {
	ch := make(chan jobs.Result[T], 1)
	ch <- jobs.Result[T]{Value: v, Err: err}
	close(ch)
	return ch
}

func (f *fakeModule) JobPostings(context.Context, ...jobs.ListOption) <-chan jobs.Result[[]jobs.JobPosting] {
	return result([]jobs.JobPosting{{ObjectID: "jp1"}}, nil)
}

func (f *fakeModule) JobPostingImage(_ context.Context, objectID, _, fileName, _ string) <-chan jobs.Result[jobs.JobPostingImageData] {
	f.calls.Add(1)
	data, ok := f.images[fileName]
	if !ok {
		return result(jobs.JobPostingImageData{}, error(&jobs.Error{Kind: jobs.KindDataLoading, StatusCode: 404}))
	}
	return result(jobs.JobPostingImageData{ObjectID: objectID, ImageData: data}, nil)
}

func (f *fakeModule) ElasticSearch(context.Context, string, ...jobs.SearchOption) <-chan jobs.Result[[]jobs.JobPosting] {
	ch := make(chan jobs.Result[[]jobs.JobPosting])
	close(ch)
	return ch
}

func (f *fakeModule) Bundle() *jobs.Bundle { return nil }

func TestFetchImagesSorted(t *testing.T) {
	module := &fakeModule{images: map[string][]byte{
		"large": make([]byte, 2048),
		"small": make([]byte, 10),
		"none":  nil,
	}}

	images, err := fetchImages(context.Background(), module, "jp1", "https://files.example.org", ".png", []string{"large", "small", "none"})
	if err != nil {
		t.Fatalf("fetchImages: %v", err)
	}
	sortImages(images)

	var order []string
	for _, img := range images {
		order = append(order, img.FileName)
	}
	if got := strings.Join(order, ","); got != "none,small,large" {
		t.Fatalf("unexpected order %s", got)
	}
	if module.calls.Load() != 3 {
		t.Fatalf("expected 3 downloads, got %d", module.calls.Load())
	}

	table := imageTable(images)
	if table[1][2] != "absent" || table[3][2] != "2.0 kB" {
		t.Fatalf("unexpected table %v", table)
	}
}

func TestFetchImagesFailsOnMissingFile(t *testing.T) {
	module := &fakeModule{images: map[string][]byte{"logo": {1}}}

	_, err := fetchImages(context.Background(), module, "jp1", "https://files.example.org", ".png", []string{"logo", "missing"})
	if err == nil || !strings.Contains(err.Error(), "missing.png") {
		t.Fatalf("expected error naming the missing file, got %v", err)
	}
	if jobs.KindOf(err) != jobs.KindDataLoading {
		t.Fatalf("expected DataLoading kind, got %v", jobs.KindOf(err))
	}
}

func TestWriteImages(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	images := []namedImage{{FileName: "logo", JobPostingImageData: jobs.JobPostingImageData{ObjectID: "jp1", ImageData: []byte("png")}}}

	if err := writeImages(dir, ".png", images); err != nil {
		t.Fatalf("writeImages: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(dir, "logo.png"))
	if err != nil || string(raw) != "png" {
		t.Fatalf("unexpected file content %q (%v)", raw, err)
	}
}

func TestPostingTable(t *testing.T) {
	bundle, err := jobs.LoadBundle()
	if err != nil {
		t.Fatalf("LoadBundle: %v", err)
	}
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	posted := now.Add(-72 * time.Hour)

	table := postingTable([]jobs.JobPosting{
		{
			ObjectID:           "jp1",
			Title:              "Elektriker",
			DatePosted:         &posted,
			EmploymentType:     jobs.FullTime,
			HiringOrganization: &jobs.HiringOrganization{Name: "Stadtwerke Solingen"},
		},
		{ObjectID: "jp2"},
	}, bundle, "en", now)

	if len(table) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(table))
	}
	row := table[1]
	if row[0] != "Elektriker" || row[1] != "Stadtwerke Solingen" || row[2] != "Full-time" || row[3] != "3 days ago" {
		t.Fatalf("unexpected row %v", row)
	}
	if table[2][3] != "-" {
		t.Fatalf("expected placeholder for missing date, got %q", table[2][3])
	}
}

func TestSearchCommandEmptyQuery(t *testing.T) {
	if err := searchCommand(context.Background(), &fakeModule{}, nil); err != nil {
		t.Fatalf("empty search should not fail: %v", err)
	}
}

func TestImageCommandRequiresFlags(t *testing.T) {
	if err := imageCommand(context.Background(), &fakeModule{}, []string{"logo"}); err == nil {
		t.Fatal("expected error without -object-id and -base-url")
	}
}
