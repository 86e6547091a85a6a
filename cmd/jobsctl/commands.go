package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pterm/pterm"
	"golang.org/x/sync/errgroup"

	"github.com/Klingenstadt-Solingen/osca-jobs/pkg/jobs"
)

// maxParallelDownloads bounds concurrent image fetches
const maxParallelDownloads = 4

// jobsModule is the part of the jobs module the commands use
type jobsModule interface {
	JobPostings(ctx context.Context, opts ...jobs.ListOption) <-chan jobs.Result[[]jobs.JobPosting]
	JobPostingImage(ctx context.Context, objectID, baseURL, fileName, mimeType string) <-chan jobs.Result[jobs.JobPostingImageData]
	ElasticSearch(ctx context.Context, query string, opts ...jobs.SearchOption) <-chan jobs.Result[[]jobs.JobPosting]
	Bundle() *jobs.Bundle
}

func listCommand(ctx context.Context, module jobsModule, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	limit := fs.Int("limit", jobs.DefaultLimit, "Maximum number of postings")
	order := fs.String("order", jobs.DefaultOrder, "Parse order expression")
	lang := fs.String("lang", "de", "Label language")
	if err := fs.Parse(args); err != nil {
		return err
	}

	postings, _, err := jobs.Await(module.JobPostings(ctx,
		jobs.WithLimit(*limit),
		jobs.WithQuery(map[string]string{"order": *order}),
	))
	if err != nil {
		return err
	}

	return renderPostings(postings, module.Bundle(), *lang)
}

func searchCommand(ctx context.Context, module jobsModule, args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	index := fs.String("index", jobs.DefaultIndex, "Elastic search index")
	lang := fs.String("lang", "de", "Label language")
	if err := fs.Parse(args); err != nil {
		return err
	}

	query := strings.Join(fs.Args(), " ")
	postings, ok, err := jobs.Await(module.ElasticSearch(ctx, query, jobs.WithIndex(*index)))
	if err != nil {
		return err
	}
	if !ok {
		pterm.Warning.Println("nothing to search for: query and index must not be empty")
		return nil
	}

	return renderPostings(postings, module.Bundle(), *lang)
}

func imageCommand(ctx context.Context, module jobsModule, args []string) error {
	fs := flag.NewFlagSet("image", flag.ContinueOnError)
	objectID := fs.String("object-id", "", "Object id of the job posting")
	baseURL := fs.String("base-url", "", "Base URL the files are stored below")
	mimeType := fs.String("mime", ".png", "File extension including the dot")
	outDir := fs.String("out", "", "Directory to write the images to")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *objectID == "" || *baseURL == "" || fs.NArg() == 0 {
		return fmt.Errorf("image: -object-id, -base-url and at least one file name are required")
	}

	images, err := fetchImages(ctx, module, *objectID, *baseURL, *mimeType, fs.Args())
	if err != nil {
		return err
	}
	sortImages(images)

	if *outDir != "" {
		if err := writeImages(*outDir, *mimeType, images); err != nil {
			return err
		}
	}

	return renderImages(images)
}

// fetchImages downloads every file concurrently. The first failure cancels
// the remaining downloads.
func fetchImages(ctx context.Context, module jobsModule, objectID, baseURL, mimeType string, fileNames []string) ([]namedImage, error) {
	images := make([]namedImage, len(fileNames))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelDownloads)

	for i, name := range fileNames {
		g.Go(func() error {
			data, _, err := jobs.Await(module.JobPostingImage(gctx, objectID, baseURL, name, mimeType))
			if err != nil {
				return fmt.Errorf("%s%s: %w", name, mimeType, err)
			}
			images[i] = namedImage{FileName: name, JobPostingImageData: data}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}

func writeImages(dir, mimeType string, images []namedImage) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, img := range images {
		path := filepath.Join(dir, filepath.Base(img.FileName)+mimeType)
		if err := os.WriteFile(path, img.ImageData, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}
